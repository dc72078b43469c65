// Package validation provides custom validation rules for the application.
package validation

import (
	"strings"

	validation "github.com/jellydator/validation"

	apperrors "github.com/nexusai/backoffice/internal/errors"
)

// WrapValidationError wraps validation errors as domain ErrInvalidInput
func WrapValidationError(err error) error {
	if err == nil {
		return nil
	}
	return apperrors.Wrap(apperrors.ErrInvalidInput, err.Error())
}

// NotBlank validates that a string is not empty after trimming whitespace
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)

// NoWhitespace validates that string doesn't contain leading/trailing whitespace
var NoWhitespace = validation.NewStringRuleWithError(
	func(s string) bool {
		return s == strings.TrimSpace(s)
	},
	validation.NewError("validation_no_whitespace", "must not contain leading or trailing whitespace"),
)

// Hostname validates a hostname or address: non-blank and free of characters
// that would corrupt a connection URL.
var Hostname = validation.NewStringRuleWithError(
	func(s string) bool {
		s = strings.TrimSpace(s)
		if s == "" {
			return false
		}
		return !strings.ContainsAny(s, " /@")
	},
	validation.NewError("validation_hostname", "must be a valid hostname"),
)

// Port validates a TCP port number.
type Port struct{}

// Validate checks that the value is an integer in the range 1-65535.
func (p Port) Validate(value interface{}) error {
	port, ok := value.(int)
	if !ok {
		return validation.NewError("validation_port", "port must be an integer")
	}
	if port < 1 || port > 65535 {
		return validation.NewError("validation_port_range", "port must be between 1 and 65535")
	}
	return nil
}
