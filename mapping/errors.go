package mapping

import (
	"errors"
	"fmt"
)

// ErrInvalidConfiguration is the base error for rejected field mappings.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// ConfigError represents a rejected mapping parameter.
type ConfigError struct {
	Field   string // Mapped field name, if known
	Param   string // Mapping parameter, e.g. "null_value"
	Message string // Human-readable message
	Err     error  // Underlying error, if any
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	msg := e.Message
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Field != "" {
		return fmt.Sprintf("%v: field %s, parameter %s: %s", ErrInvalidConfiguration, e.Field, e.Param, msg)
	}
	return fmt.Sprintf("%v: parameter %s: %s", ErrInvalidConfiguration, e.Param, msg)
}

// Unwrap returns the base error and the cause.
func (e *ConfigError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrInvalidConfiguration, e.Err}
	}
	return []error{ErrInvalidConfiguration}
}
