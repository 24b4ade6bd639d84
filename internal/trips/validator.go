package trips

import (
	"errors"
	"fmt"

	"mounti/pkg/model"

	"github.com/go-playground/validator/v10"
)

type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	return &Validator{validate: validator.New()}
}

func (v *Validator) ValidateCreate(input *model.TripCreate) error {
	return translate(v.validate.Struct(input))
}

func (v *Validator) ValidateUpdate(input *model.TripUpdate) error {
	return translate(v.validate.Struct(input))
}

func translate(err error) error {
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}

	fields := map[string]any{}
	for _, fe := range validationErrs {
		switch fe.Tag() {
		case "required":
			fields[fe.Field()] = fmt.Sprintf("%s is required", fe.Field())
		case "oneof":
			fields[fe.Field()] = fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
		default:
			fields[fe.Field()] = fe.Error()
		}
	}

	return &ValidationError{Fields: fields}
}

type ValidationError struct {
	Fields map[string]any
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("trip validation failed: %d field(s)", len(e.Fields))
}
