package validator

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// New creates a validator instance with the custom validations registered.
// This ensures consistent validation across the application and tests.
func New() *validator.Validate {
	v := validator.New()

	// "notblank" rejects whitespace-only strings. Used for names, codes and
	// other fields that must have meaningful content.
	_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		str, ok := fl.Field().Interface().(string)
		if !ok {
			return true // Not a string, let other validators handle it
		}
		return strings.TrimSpace(str) != ""
	})

	// "future" requires a time strictly after now. Used for event start
	// times and coupon expiry dates.
	_ = v.RegisterValidation("future", func(fl validator.FieldLevel) bool {
		t, ok := fl.Field().Interface().(time.Time)
		if !ok {
			return true
		}
		return t.After(time.Now())
	})

	return v
}
