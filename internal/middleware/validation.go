package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/braxton0054/eavisystem/internal/pkg/validation"
)

// RegisterValidators installs the admissions rules on gin's validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	return validation.RegisterRules(v)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	case "numeric":
		return e.Field() + " must be a number"
	case "datetime":
		return e.Field() + " must be a date in YYYY-MM-DD format"
	case "phone":
		return e.Field() + " must be a valid phone number"
	case "kcsegrade":
		return e.Field() + " must be a KCSE grade (A to E) or " + validation.NotProvided
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
