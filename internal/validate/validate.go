// Package validate checks request DTOs and reports failures as 422 field errors.
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hongminglow/finance-be/internal/apperr"
)

// MaxPasswordBytes is the longest password bcrypt accepts.
const MaxPasswordBytes = 72

// Validator is safe for concurrent use; build one at startup and share it.
type Validator struct {
	v *validator.Validate
}

func New() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// bcrypt limits bytes, not runes, so "max" is not enough for passwords.
	_ = v.RegisterValidation("bcryptlen", func(fl validator.FieldLevel) bool {
		return len(fl.Field().String()) <= MaxPasswordBytes
	})
	return &Validator{v: v}
}

// normalizer is implemented by DTOs that clean their input before validation.
type normalizer interface {
	Normalize()
}

// Struct normalizes s when it knows how, then validates it. Field failures
// come back as an *apperr.Error of kind validation; anything else (e.g.
// passing a non-struct) is returned as is.
func (v *Validator) Struct(s any) error {
	if n, ok := s.(normalizer); ok {
		n.Normalize()
	}
	err := v.v.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]apperr.FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, apperr.FieldError{
			Loc:  []string{"body", fe.Field()},
			Msg:  message(fe),
			Type: fe.Tag(),
		})
	}
	return apperr.Validation(fields...)
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "uuid":
		return "value is not a valid uuid"
	case "oneof":
		return fmt.Sprintf("value must be one of: %s", fe.Param())
	case "min":
		return fmt.Sprintf("length must be at least %s", fe.Param())
	case "max":
		return fmt.Sprintf("length must be at most %s", fe.Param())
	case "len":
		return fmt.Sprintf("length must be exactly %s", fe.Param())
	case "bcryptlen":
		return fmt.Sprintf("length must be at most %d bytes", MaxPasswordBytes)
	case "gte":
		return fmt.Sprintf("value must be greater than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed on the %q rule", fe.Tag())
	}
}
