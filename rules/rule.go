package rules

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type (
	// Rule validates a value and describes its constraint into a schema.
	Rule interface {
		Validate(value any) error
		Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error
	}

	// Ruler is implemented by struct types that carry their own field rules.
	Ruler interface {
		Rules() []*FieldRules
	}

	// FieldRules binds a struct field pointer to its rules.
	FieldRules struct {
		fieldPtr any
		tag      string
		rules    []Rule
	}
)

// Errors maps field names to their validation errors.
// It is an alias for [validation.Errors] so callers can type-assert results
// of [Validate] without importing ozzo-validation.
type Errors = validation.Errors

// Field creates a FieldRules binding fieldPtr to rules.
func Field[T any](fieldPtr *T, rules ...Rule) *FieldRules {
	return &FieldRules{
		fieldPtr: fieldPtr,
		rules:    rules,
	}
}

func appendDescription(ref *openapi3.SchemaRef, desc string) {
	if desc == "" {
		return
	}
	if ref.Value.Description != "" {
		ref.Value.Description += " "
	}
	ref.Value.Description += desc
}
