// Package validation provides input validation helpers that report
// failures as INVALID_ARGUMENT errors.
//
// It supports both struct tag validation (using the validator library) and
// programmatic validation with error collection.
//
// # Struct Tag Validation
//
//	type Source struct {
//	    Kind string `mapstructure:"kind" validate:"required,oneof=slice range"`
//	}
//	err := validation.Struct(src)
//
// # Programmatic Validation
//
//	v := validation.New()
//	v.Required("key", cfg.Key).Min("page_size", cfg.PageSize, 1)
//	err := v.Validate()
package validation
