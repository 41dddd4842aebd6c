// Package errors provides the coded error type shared by lazykit packages.
// Codes are grouped into families (KEY_NOT_FOUND is a VALUE_NOT_FOUND,
// UNHASHABLE is a TYPE_MISMATCH) so callers can match broadly with errors.Is.
package errors
