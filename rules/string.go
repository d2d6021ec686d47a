package rules

import (
	"strings"

	"github.com/asaskevich/govalidator"
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type stringRule struct {
	validation.StringRule
	format string
	desc   string
}

// NewStringRule returns a rule that checks strings with validator. desc is
// used both as the error message and as the schema description.
func NewStringRule(validator func(string) bool, desc string) Rule {
	return stringRule{StringRule: validation.NewStringRule(validator, desc), desc: desc}
}

// URL checks that a non-empty string is an absolute http(s) URL.
var URL Rule = stringRule{
	StringRule: validation.NewStringRule(isAbsoluteURL, "must be a valid URL"),
	format:     "uri",
}

// Email checks that a non-empty string is an email address.
var Email Rule = stringRule{
	StringRule: validation.NewStringRule(govalidator.IsEmail, "must be a valid email address"),
	format:     "email",
}

func isAbsoluteURL(s string) bool {
	if !govalidator.IsURL(s) {
		return false
	}
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

func (r stringRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	if r.format != "" {
		ref.Value.Format = r.format
	}
	appendDescription(ref, r.desc)
	return nil
}
