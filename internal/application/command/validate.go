package command

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"blog-service/internal/domain/entities"
	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// Validate checks the struct tags of a command and reports the first failing
// field as an *entities.ValidationError.
func Validate(cmd interface{}) error {
	err := validate.Struct(cmd)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return entities.NewValidationError("", err.Error())
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return entities.NewValidationError(fe.Field(), "is required")
	case "min":
		return entities.NewValidationError(fe.Field(), fmt.Sprintf("must be at least %s characters", fe.Param()))
	case "max":
		return entities.NewValidationError(fe.Field(), fmt.Sprintf("must be at most %s characters", fe.Param()))
	case "email":
		return entities.NewValidationError(fe.Field(), "must be a valid email address")
	default:
		return entities.NewValidationError(fe.Field(), "failed "+fe.Tag()+" check")
	}
}
