package services

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator checks payloads against their struct tags and reports
// violations using JSON field names.
type Validator struct {
	validate *validator.Validate
}

func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return &Validator{validate: v}
}

// Struct validates s, returning a *ValidationError on violations.
func (v *Validator) Struct(s any) error {
	if err := v.validate.Struct(s); err != nil {
		return fromValidator(err)
	}
	return nil
}
