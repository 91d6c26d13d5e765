// Package inputval validates structured input with waffle/pantry/validate
// and turns failures into readable messages.
//
// Define a struct with validate tags and optional label tags, fill it, and
// call Validate:
//
//	type oauth2Settings struct {
//	    TokenURL string `validate:"required,httpurl" label:"oauth2_token_url"`
//	}
//	if res := inputval.Validate(oauth2Settings{TokenURL: u}); res.HasErrors() {
//	    return errors.New(res.All())
//	}
package inputval

import (
	"net/mail"
	"net/url"
	"reflect"
	"strings"
	"sync"

	"github.com/dalemusser/waffle/pantry/validate"
)

// Result holds validation results with user-friendly messages.
type Result struct {
	Errors []FieldError
}

// FieldError represents a validation error for a single field.
type FieldError struct {
	Field   string
	Label   string
	Message string
}

// HasErrors returns true if there are any validation errors.
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// First returns the first error message, or empty string if no errors.
func (r *Result) First() string {
	if len(r.Errors) > 0 {
		return r.Errors[0].Message
	}
	return ""
}

// All returns all error messages joined with "; ".
func (r *Result) All() string {
	msgs := make([]string, len(r.Errors))
	for i, e := range r.Errors {
		msgs[i] = e.Message
	}
	return strings.Join(msgs, "; ")
}

var (
	validator     *validate.Validator
	validatorOnce sync.Once
)

func getValidator() *validate.Validator {
	validatorOnce.Do(func() {
		validator = validate.New()

		// httpurl: absolute http or https URL
		validator.RegisterRuleFunc("httpurl", func(value any) bool {
			s, ok := value.(string)
			return ok && IsValidHTTPURL(s)
		}, "httpurl")
	})
	return validator
}

// Validate checks s against its validate tags. Beyond the pantry/validate
// rules (required, email, oneof, min, max) it understands httpurl.
// Every failing field is reported.
func Validate(s any) *Result {
	result := &Result{}

	err := getValidator().Struct(s)
	if err == nil {
		return result
	}

	labels := fieldLabels(s)
	if errs, ok := err.(validate.Errors); ok {
		for _, e := range errs {
			label := labels[e.Field]
			if label == "" {
				label = e.Field
			}
			result.Errors = append(result.Errors, FieldError{
				Field:   e.Field,
				Label:   label,
				Message: message(label, e.Rule, e.Param),
			})
		}
	}
	return result
}

// fieldLabels maps field names (json name when tagged) to label tags.
func fieldLabels(s any) map[string]string {
	labels := make(map[string]string)

	val := reflect.ValueOf(s)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}
	if val.Kind() != reflect.Struct {
		return labels
	}

	typ := val.Type()
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		name := field.Name
		if tag, _, _ := strings.Cut(field.Tag.Get("json"), ","); tag != "" && tag != "-" {
			name = tag
		}
		if label := field.Tag.Get("label"); label != "" {
			labels[name] = label
		}
	}
	return labels
}

func message(label, rule, param string) string {
	switch rule {
	case "required":
		return label + " is required."
	case "email":
		return label + " must be a valid email address."
	case "oneof", "enum":
		return label + " must be one of: " + strings.ReplaceAll(param, " ", ", ") + "."
	case "min":
		return label + " must be at least " + param + " characters."
	case "max":
		return label + " must be at most " + param + " characters."
	case "httpurl":
		return label + " must be a URL starting with http:// or https://."
	default:
		return label + " is invalid."
	}
}

// IsValidEmail reports whether email is a bare RFC 5322 address.
func IsValidEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	addr, err := mail.ParseAddress(email)
	if err != nil {
		return false
	}
	// ParseAddress also accepts "Name <addr>".
	return addr.Address == email
}

// IsValidHTTPURL reports whether s is an absolute http or https URL with a
// host.
func IsValidHTTPURL(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
