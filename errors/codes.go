package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Access errors
const (
	// ErrCodeOutOfRange indicates an index beyond the materializable length.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
	// ErrCodeValueNotFound indicates a searched value is absent.
	ErrCodeValueNotFound ErrorCode = "VALUE_NOT_FOUND"
	// ErrCodeKeyNotFound indicates a mapping key is absent.
	ErrCodeKeyNotFound ErrorCode = "KEY_NOT_FOUND"
)

// Type errors
const (
	// ErrCodeTypeMismatch indicates an ordering between incomparable types.
	ErrCodeTypeMismatch ErrorCode = "TYPE_MISMATCH"
	// ErrCodeUnhashable indicates a hash was requested for a mutable container.
	ErrCodeUnhashable ErrorCode = "UNHASHABLE"
)

// Input errors
const (
	// ErrCodeConstruction indicates a malformed initializer.
	ErrCodeConstruction ErrorCode = "CONSTRUCTION_ERROR"
	// ErrCodeInvalidArgument indicates an argument outside its domain.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig indicates configuration failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// families groups codes that callers may test as one kind.
var families = map[ErrorCode]ErrorCode{
	ErrCodeKeyNotFound: ErrCodeValueNotFound,
	ErrCodeUnhashable:  ErrCodeTypeMismatch,
}

// FamilyOf returns the broader kind a code belongs to. Codes without a
// family are their own family.
func FamilyOf(code ErrorCode) ErrorCode {
	if f, ok := families[code]; ok {
		return f
	}
	return code
}
