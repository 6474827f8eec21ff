package rest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks request DTOs against their `validate` tags.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New(validator.WithRequiredStructEnabled())}
}

func (v *Validator) Validate(i any) error {
	return v.validate.Struct(i)
}

// ValidationDetails renders validator errors as "field: rule" pairs for ErrorResponse.Details.
func ValidationDetails(err error) string {
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err.Error()
	}
	details := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		if fieldErr.Param() != "" {
			details = append(details, fmt.Sprintf("%s: %s=%s", fieldErr.Field(), fieldErr.Tag(), fieldErr.Param()))
		} else {
			details = append(details, fmt.Sprintf("%s: %s", fieldErr.Field(), fieldErr.Tag()))
		}
	}
	return strings.Join(details, "; ")
}
