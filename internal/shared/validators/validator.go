package validators

import (
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Validate is a type alias for validator.Validate.
type Validate = validator.Validate

// ValidationErrors is a type alias for validator.ValidationErrors.
type ValidationErrors = validator.ValidationErrors

// FieldError is a type alias for validator.FieldError.
type FieldError = validator.FieldError

// TagLogLevel validates that a string is a level zerolog understands.
const TagLogLevel = "loglevel"

// New creates a new validator instance with the custom tags registered.
func New() *Validate {
	validate := validator.New()
	_ = validate.RegisterValidation(TagLogLevel, validateLogLevel)
	return validate
}

func validateLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	if level == "" {
		return false
	}
	_, err := zerolog.ParseLevel(level)
	return err == nil
}
