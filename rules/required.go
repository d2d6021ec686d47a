package rules

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type requiredRule struct {
	validation.RequiredRule
}

// Required checks that a value is not empty and lists the field as required.
var Required Rule = requiredRule{validation.Required}

func (requiredRule) Describe(name string, schema *openapi3.Schema, _ *openapi3.SchemaRef) error {
	for _, n := range schema.Required {
		if n == name {
			return nil
		}
	}
	schema.Required = append(schema.Required, name)
	return nil
}
