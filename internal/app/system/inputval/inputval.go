// Package inputval validates form input with struct tags.
//
// Handlers declare a small input struct per form:
//
//	type regionInput struct {
//		Name string `validate:"required,max=120" label:"Region name"`
//	}
//
// and call Validate. The label tag names the field in user-facing messages.
package inputval

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			if l := f.Tag.Get("label"); l != "" {
				return l
			}
			return f.Name
		})
		_ = v.RegisterValidation("loose_email", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || IsValidEmail(s)
		})
	})
	return v
}

// FieldError is one failed rule, already rendered as a sentence.
type FieldError struct {
	Field   string
	Message string
}

// Result collects the failures from one Validate call.
type Result struct {
	Errors []FieldError
}

// HasErrors reports whether any rule failed.
func (r Result) HasErrors() bool { return len(r.Errors) > 0 }

// First returns the first message, or "" when valid.
func (r Result) First() string {
	if len(r.Errors) == 0 {
		return ""
	}
	return r.Errors[0].Message
}

// Validate runs the struct's validate tags.
func Validate(s any) Result {
	err := instance().Struct(s)
	if err == nil {
		return Result{}
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return Result{Errors: []FieldError{{Message: err.Error()}}}
	}
	out := Result{Errors: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Errors = append(out.Errors, FieldError{
			Field:   fe.StructField(),
			Message: message(fe),
		})
	}
	return out
}

func message(fe validator.FieldError) string {
	label := fe.Field()
	switch fe.Tag() {
	case "required":
		return label + " is required."
	case "max":
		return fmt.Sprintf("%s must be at most %s characters.", label, fe.Param())
	case "loose_email":
		return label + " does not look like an email address."
	default:
		return label + " is invalid."
	}
}

// emailRE is a shape check only: something@something.something, no spaces.
var emailRE = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// IsValidEmail is a best-effort email shape check.
func IsValidEmail(s string) bool {
	return emailRE.MatchString(strings.TrimSpace(s))
}
