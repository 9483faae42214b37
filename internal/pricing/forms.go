package pricing

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/spec-kit/easybuy-tracker/pkg/util"
)

var validate = validator.New()

// LoginForm carries the login page inputs.
type LoginForm struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

// AccountForm carries the admin/user creation inputs.
type AccountForm struct {
	FirstName string `validate:"required,min=2,max=50"`
	LastName  string `validate:"required,min=2,max=50"`
	Email     string `validate:"required,email"`
	Password  string `validate:"required,min=6"`
}

// PublicRequestForm carries the anonymous purchase request inputs.
type PublicRequestForm struct {
	FullName    string `validate:"required,min=3,max=100"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"required,min=7,max=20"`
	IphoneModel string `validate:"required"`
	Capacity    string `validate:"required"`
	Plan        string `validate:"required,oneof=Monthly Weekly"`
}

// ValidateForm checks a form struct and, on failure, returns a
// validation error naming the first offending field.
func ValidateForm(form any) error {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var fieldErrors validator.ValidationErrors
	if !errors.As(err, &fieldErrors) || len(fieldErrors) == 0 {
		return util.NewValidationError("Check the form and try again")
	}
	return util.NewValidationError(fieldMessage(fieldErrors[0]))
}

func fieldMessage(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldErr.Field())
	case "email":
		return "Enter a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldErr.Field(), fieldErr.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldErr.Field(), fieldErr.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fieldErr.Field(), fieldErr.Param())
	default:
		return fmt.Sprintf("%s is invalid", fieldErr.Field())
	}
}
