package domain

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

var fieldLabels = map[string]string{
	"firstName":      "First name",
	"lastName":       "Last name",
	"email":          "Email",
	"linkedIn":       "LinkedIn profile",
	"profilePic":     "Profile picture",
	"role":           "Role",
	"stage":          "Stage",
	"commitment":     "Commitment",
	"bio":            "Bio",
	"status":         "Status",
	"views":          "Views",
	"likes":          "Likes",
	"superpower":     "Superpower prompt",
	"obsession":      "Obsession prompt",
	"cofounder_type": "Co-founder type prompt",
	"looking_for":    "Looking for prompt",
	"dealbreaker":    "Dealbreaker prompt",
}

// ValidateProfile checks p against the rules declared on Profile and returns
// a *ValidationError describing every failing field.
func ValidateProfile(p *Profile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate profile: %w", err)
	}

	verr := &ValidationError{}
	for _, fe := range fieldErrs {
		verr.add(fe.Namespace(), fieldMessage(fe))
	}
	return verr
}

func fieldMessage(fe validator.FieldError) string {
	label, ok := fieldLabels[fe.Field()]
	if !ok {
		label = fe.Field()
	}

	switch fe.Tag() {
	case "required":
		return label + " is required"
	case "email":
		return "Please enter a valid email"
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", label, fe.Param())
	case "min":
		return label + " cannot be negative"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", label, strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return label + " is invalid"
	}
}
