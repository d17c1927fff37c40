// Package validation wraps go-playground/validator to produce itemized,
// JSON-friendly field errors and provides the input sanitization helpers
// used at the HTTP boundary.
package validation

import (
	"fmt"
	"html"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	inst *validator.Validate
	once sync.Once
)

func engine() *validator.Validate {
	once.Do(func() {
		inst = validator.New()
		// Report fields by their json name so error details match the wire format.
		inst.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return inst
}

// FieldError is one itemized validation violation.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Struct validates s and returns every violation, not just the first.
// A nil return means s is valid.
func Struct(s any) []FieldError {
	err := engine().Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Field: "", Message: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Field: fe.Field(), Message: message(fe)})
	}
	return out
}

// message translates a tag violation into the human-readable form the API
// documents.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "max":
		if fe.Kind().String() == "string" {
			return fmt.Sprintf("%s must not exceed %s characters", fe.Field(), fe.Param())
		}
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", fe.Field(), fe.Param())
	case "lte":
		return fmt.Sprintf("%s must not exceed %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}

// IsUUID reports whether s is a well-formed UUID.
func IsUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// Sanitize trims surrounding whitespace and escapes HTML entities so stored
// text can never smuggle markup into an HTML-rendering consumer.
func Sanitize(s string) string {
	return html.EscapeString(strings.TrimSpace(s))
}

// Trim is Sanitize without escaping, for fields that are stored verbatim.
func Trim(s string) string {
	return strings.TrimSpace(s)
}
