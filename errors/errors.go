package errors

import (
	stderrors "errors"
	"fmt"
)

// AppError is the unified error type for container and configuration failures.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Sentinels for errors.Is checks. Matching is by code family, so
// errors.Is(KeyNotFound("x"), ErrValueNotFound) holds.
var (
	ErrOutOfRange      = &AppError{Code: ErrCodeOutOfRange}
	ErrValueNotFound   = &AppError{Code: ErrCodeValueNotFound}
	ErrKeyNotFound     = &AppError{Code: ErrCodeKeyNotFound}
	ErrTypeMismatch    = &AppError{Code: ErrCodeTypeMismatch}
	ErrUnhashable      = &AppError{Code: ErrCodeUnhashable}
	ErrConstruction    = &AppError{Code: ErrCodeConstruction}
	ErrInvalidArgument = &AppError{Code: ErrCodeInvalidArgument}
	ErrInvalidConfig   = &AppError{Code: ErrCodeInvalidConfig}
)

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is an AppError of the same code, or a sentinel
// for the family this error's code belongs to.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return t.Code == e.Code || t.Code == FamilyOf(e.Code)
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Constructors ---

// OutOfRange creates an error for an index outside [0, length).
func OutOfRange(op string, index, length int) *AppError {
	return &AppError{
		Code: ErrCodeOutOfRange, Message: fmt.Sprintf("%s index out of range", op),
		Details: map[string]any{"index": index, "length": length},
	}
}

// Empty creates an error for an operation that needs at least one element.
func Empty(op string) *AppError {
	return &AppError{
		Code: ErrCodeOutOfRange, Message: fmt.Sprintf("%s from empty list", op),
	}
}

// ValueNotFound creates an error for a value absent from a sequence.
func ValueNotFound(op string, value any) *AppError {
	return &AppError{
		Code: ErrCodeValueNotFound, Message: fmt.Sprintf("%s: %v is not in list", op, value),
		Details: map[string]any{"value": value},
	}
}

// KeyNotFound creates an error for a key absent from a mapping.
func KeyNotFound(key any) *AppError {
	return &AppError{
		Code: ErrCodeKeyNotFound, Message: fmt.Sprintf("key %v not found", key),
		Details: map[string]any{"key": key},
	}
}

// TypeMismatch creates an error for an ordering between incompatible types.
func TypeMismatch(op string, left, right any) *AppError {
	return &AppError{
		Code: ErrCodeTypeMismatch,
		Message: fmt.Sprintf("%s not supported between instances of '%s' and '%s'",
			op, typeName(left), typeName(right)),
	}
}

// Unhashable creates an error for hashing a mutable container.
func Unhashable(kind string) *AppError {
	return &AppError{
		Code: ErrCodeUnhashable, Message: fmt.Sprintf("unhashable type: '%s'", kind),
	}
}

// Construction creates an error for a malformed initializer.
func Construction(reason string) *AppError {
	return &AppError{Code: ErrCodeConstruction, Message: reason}
}

// InvalidArgument creates an error for an argument outside its domain.
func InvalidArgument(field, reason string) *AppError {
	details := make(map[string]any)
	if field != "" {
		details["field"] = field
	}
	return &AppError{
		Code: ErrCodeInvalidArgument, Message: fmt.Sprintf("invalid argument: %s", reason),
		Details: details,
	}
}

// InvalidConfig creates an error for configuration that failed validation.
func InvalidConfig(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidConfig, Message: message}
}

// --- Inspection ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// HasCode reports whether err is an AppError carrying code or a code of
// that family.
func HasCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	if !ok {
		return false
	}
	return appErr.Code == code || FamilyOf(appErr.Code) == code
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
