// internal/utils/validator.go
package utils

import (
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("promocode", validatePromoCode)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

// Promo codes are uppercase alphanumeric (plus - and _), 3-32 characters.
// The uppercase requirement also keeps codes clear of the reserved
// ":counter" key suffix in the store layout.
func validatePromoCode(fl validator.FieldLevel) bool {
	code := fl.Field().String()

	if len(code) < 3 || len(code) > 32 {
		return false
	}

	matched, _ := regexp.MatchString("^[A-Z0-9_-]+$", code)
	return matched
}

type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func GetValidationErrors(err error) []ValidationError {
	var validationErrors []ValidationError

	if validationErrs, ok := err.(validator.ValidationErrors); ok {
		for _, e := range validationErrs {
			validationErrors = append(validationErrors, ValidationError{
				Field:   strings.ToLower(e.Field()),
				Tag:     e.Tag(),
				Message: getValidationMessage(e),
			})
		}
	}

	return validationErrors
}

func getValidationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "promocode":
		return "Promo code must be 3-32 characters of uppercase letters, digits, - or _"
	default:
		return e.Field() + " is invalid"
	}
}
