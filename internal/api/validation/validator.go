package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var (
	// local@domain.tld with no whitespace; looser than RFC 5322
	emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// RegisterValidators registers custom validators
func RegisterValidators(v *validator.Validate) error {
	if err := v.RegisterValidation("email", validateEmail); err != nil {
		return fmt.Errorf("failed to register email validator: %w", err)
	}
	if err := v.RegisterValidation("notblank", validateNotBlank); err != nil {
		return fmt.Errorf("failed to register notblank validator: %w", err)
	}
	return nil
}

// New returns a validator with the custom rules registered that reports
// fields by their json name. It panics if a rule cannot be registered.
func New() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(jsonFieldName)
	if err := RegisterValidators(v); err != nil {
		panic(err)
	}
	return v
}

func jsonFieldName(field reflect.StructField) string {
	name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// validateEmail checks the address has the basic local@domain.tld shape
func validateEmail(fl validator.FieldLevel) bool {
	return IsEmail(fl.Field().String())
}

// validateNotBlank rejects strings made only of whitespace
func validateNotBlank(fl validator.FieldLevel) bool {
	return strings.TrimSpace(fl.Field().String()) != ""
}

// IsEmail reports whether s looks like an email address
func IsEmail(s string) bool {
	return emailRegex.MatchString(s)
}

// MissingFields returns the fields that failed a presence rule, in struct
// declaration order.
func MissingFields(err error) []string {
	var missing []string
	if validationErrors, ok := asValidationErrors(err); ok {
		for _, e := range validationErrors {
			if e.Tag() == "required" || e.Tag() == "notblank" {
				missing = append(missing, e.Field())
			}
		}
	}
	return missing
}

// HasTag reports whether any field failed the given rule
func HasTag(err error, tag string) bool {
	if validationErrors, ok := asValidationErrors(err); ok {
		for _, e := range validationErrors {
			if e.Tag() == tag {
				return true
			}
		}
	}
	return false
}

func asValidationErrors(err error) (validator.ValidationErrors, bool) {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return validationErrors, true
	}
	return nil, false
}
