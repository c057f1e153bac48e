package contract

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FirstInvalidField translates a binding error into the {message, field}
// detail of the 400 contract. Only the first failing field is reported.
// For errors that are not field-level validation failures (malformed JSON,
// wrong types) the field is empty and the message is generic.
func FirstInvalidField(err error) ValidationErrorResponse {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(fe.Field())
		return ValidationErrorResponse{
			Message: validationMessage(field, fe),
			Field:   field,
		}
	}
	return ValidationErrorResponse{Message: "Invalid request body"}
}

// validationMessage produces a human-readable description of a single
// failed validation tag.
func validationMessage(field string, fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "datetime":
		return fmt.Sprintf("%s must be a date in YYYY-MM-DD format", field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", field)
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonFieldName converts a Go struct field name to its JSON spelling.
// The request structs use lowerCamelCase JSON tags, so lowering the first
// rune and the trailing "ID" acronym is sufficient.
func jsonFieldName(name string) string {
	if name == "" {
		return name
	}
	if strings.HasSuffix(name, "ID") {
		name = name[:len(name)-2] + "Id"
	}
	runes := []rune(name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}
