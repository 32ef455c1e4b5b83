package validators

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrValidation matches every *ValidationError via errors.Is.
	ErrValidation = errors.New("validation failed")

	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// Field-level messages reported inside a ValidationError.
const (
	MsgRequired        = "is required"
	MsgMustBeString    = "must be a string"
	MsgMustBeBoolean   = "must be a boolean"
	MsgEmpty           = "must not be empty"
	MsgInvalidEmail    = "is not a valid email address"
	MsgPasswordShort   = "must be at least 7 characters long"
	MsgPasswordContent = `must not contain "password"`
	MsgNotAllowed      = "is not an updatable field"
	MsgMustBeTrueFalse = `must be "true" or "false"`
	MsgMustBeNonNegInt = "must be a non-negative integer"
)

// ValidationError reports every offending field of an input.
type ValidationError struct {
	// Fields maps a field name to what is wrong with it.
	Fields map[string]string
}

// NewValidationError returns an empty error ready to collect field problems.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

// Add records a problem with field. The first problem per field wins.
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Fields[field]; !exists {
		e.Fields[field] = message
	}
}

// OrNil returns e when it holds at least one problem, nil otherwise.
func (e *ValidationError) OrNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Error lists the offending fields in a stable order.
func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+" "+e.Fields[name])
	}

	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) true for any *ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
