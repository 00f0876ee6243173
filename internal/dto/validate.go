package dto

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/patinhas/adoption-api/internal/models"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries the field-level detail of a rejected payload.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fe.Field+" "+fe.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// NewValidationError builds a single-field validation error.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Errors: []FieldError{{Field: field, Message: message}}}
}

var zipCodePattern = regexp.MustCompile(`^\d{5}-?\d{3}$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, key := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	_ = v.RegisterValidation("zipcode", func(fl validator.FieldLevel) bool {
		return zipCodePattern.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("uf", func(fl validator.FieldLevel) bool {
		return models.IsBrazilianState(fl.Field().String())
	})
	_ = v.RegisterValidation("species", func(fl validator.FieldLevel) bool {
		return models.IsKnownSpecies(fl.Field().String())
	})
	_ = v.RegisterValidation("gender", func(fl validator.FieldLevel) bool {
		_, ok := models.ParseGender(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("petsize", func(fl validator.FieldLevel) bool {
		_, ok := models.ParsePetSize(fl.Field().String())
		return ok
	})
	_ = v.RegisterValidation("adoption_status", func(fl validator.FieldLevel) bool {
		return models.AdoptionStatus(fl.Field().String()).Valid()
	})
	return v
}

// Validate checks s against its struct tags and returns a *ValidationError
// listing every failing field, or nil.
func Validate(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	out := &ValidationError{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return out
}

// fieldPath drops the root struct name: "CreateAdoptionRequest.answers[0].question_id"
// becomes "answers[0].question_id".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required", "required_without":
		return "is required"
	case "min":
		if isString {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		if fe.Kind() == reflect.Slice {
			return fmt.Sprintf("must contain at least %s item(s)", fe.Param())
		}
		return "must be greater than or equal to " + fe.Param()
	case "max":
		if isString {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be less than or equal to " + fe.Param()
	case "email":
		return "must be a valid email"
	case "uuid":
		return "must be a valid UUID"
	case "alphanum":
		return "must contain only letters and digits"
	case "oneof":
		return "must be one of [" + fe.Param() + "]"
	case "eqfield":
		return "must match " + strings.ToLower(fe.Param())
	case "zipcode":
		return "must match the pattern 00000-000"
	case "uf":
		return "must be a valid Brazilian state code"
	case "species":
		return "must be one of [dog cat other]"
	case "gender":
		return "must be one of [male female unknown]"
	case "petsize":
		return "must be one of [small medium large]"
	case "adoption_status":
		return "must be one of [pending approved rejected cancelled]"
	}
	return "is invalid"
}
