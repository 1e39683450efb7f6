package validator

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"mailhub/internal/domain"
)

var (
	accountNameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]+$`)
	upperRe       = regexp.MustCompile(`[A-Z]`)
	lowerRe       = regexp.MustCompile(`[a-z]`)
	numberRe      = regexp.MustCompile(`[0-9]`)
	specialRe     = regexp.MustCompile(`[!@#$%^&*()_+\-=\[\]{};':"\\|,.<>\/?]`)
)

// Validator wraps the go-playground validator with mailhub-specific rules.
type Validator struct {
	validator *validator.Validate
}

// New creates a new validator instance with custom rules registered.
func New() *Validator {
	validate := validator.New()
	registerCustomValidators(validate)

	// Use JSON field names in validation error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	return &Validator{validator: validate}
}

// Struct validates a struct and returns a *domain.ValidationError describing
// every offending field, or nil when the value is valid.
func (v *Validator) Struct(i interface{}) error {
	err := v.validator.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		fields[fe.Field()] = messageFor(fe)
	}
	return &domain.ValidationError{Fields: fields}
}

// messageFor renders a user-actionable message for a failed rule.
func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "fqdn":
		return fmt.Sprintf("%s must be a valid domain name", fe.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters long", fe.Field(), fe.Param())
	case "account_name":
		return "username must be 3-30 characters of letters, numbers, dots, hyphens and underscores"
	case "account_role":
		return "role must be one of admin, user, readonly"
	case "account_password":
		return "password must contain at least 8 characters with uppercase, lowercase, number and special character"
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// registerCustomValidators registers mailhub account rules.
func registerCustomValidators(validate *validator.Validate) {
	validate.RegisterValidation("account_name", func(fl validator.FieldLevel) bool {
		name := fl.Field().String()
		return accountNameRe.MatchString(name) && len(name) >= 3 && len(name) <= 30
	})

	validate.RegisterValidation("account_role", func(fl validator.FieldLevel) bool {
		switch fl.Field().String() {
		case domain.RoleAdmin, domain.RoleUser, domain.RoleReadonly:
			return true
		}
		return false
	})

	validate.RegisterValidation("account_password", func(fl validator.FieldLevel) bool {
		password := fl.Field().String()
		if len(password) < 8 {
			return false
		}
		return upperRe.MatchString(password) &&
			lowerRe.MatchString(password) &&
			numberRe.MatchString(password) &&
			specialRe.MatchString(password)
	})
}
