// Package validate wraps go-playground/validator with readable messages.
//
// Field names are taken from the `form` tag, then the `json` tag, so the
// messages match what the user typed into:
//
//	type ProductInput struct {
//	    ProductName string `form:"product_name" validate:"required,max=255"`
//	    Price       string `form:"price"        validate:"required,numeric"`
//	}
//
//	if errs := validate.Struct(in); validate.HasErrors(errs) { ... }
package validate

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func engine() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(fieldName)
	})
	return v
}

// Struct validates s and returns a map of field name → first error message.
// An empty map means s is valid.
func Struct(s interface{}) map[string]string {
	errs := make(map[string]string)

	err := engine().Struct(s)
	if err == nil {
		return errs
	}

	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		errs["_"] = err.Error()
		return errs
	}
	for _, fe := range ve {
		if _, seen := errs[fe.Field()]; !seen {
			errs[fe.Field()] = message(fe)
		}
	}
	return errs
}

// HasErrors returns true when the errs map is non-empty.
func HasErrors(errs map[string]string) bool { return len(errs) > 0 }

// Messages flattens errs into a stable, field-ordered list.
func Messages(errs map[string]string) []string {
	fields := make([]string, 0, len(errs))
	for f := range errs {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(errs))
	for _, f := range fields {
		out = append(out, errs[f])
	}
	return out
}

// Failed reports whether any field of s fails the given tag, e.g. Failed(in, "required").
func Failed(s interface{}, tag string) bool {
	var ve validator.ValidationErrors
	if !errors.As(engine().Struct(s), &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Tag() == tag {
			return true
		}
	}
	return false
}

func fieldName(f reflect.StructField) string {
	for _, key := range []string{"form", "json"} {
		name, _, _ := strings.Cut(f.Tag.Get(key), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func message(fe validator.FieldError) string {
	field := strings.ReplaceAll(fe.Field(), "_", " ")
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("The %s field is required.", field)
	case "email":
		return fmt.Sprintf("The %s must be a valid email address.", field)
	case "numeric", "number":
		return fmt.Sprintf("The %s must be a number.", field)
	case "min", "gte":
		return fmt.Sprintf("The %s must be at least %s.", field, fe.Param())
	case "max", "lte":
		return fmt.Sprintf("The %s may not be greater than %s.", field, fe.Param())
	case "eqfield":
		return fmt.Sprintf("The %s does not match.", field)
	case "oneof":
		return fmt.Sprintf("The %s must be one of: %s.", field, fe.Param())
	default:
		return fmt.Sprintf("The %s is invalid.", field)
	}
}
