package rules

import (
	"github.com/getkin/kin-openapi/openapi3"
)

type docRule struct {
	apply func(ref *openapi3.SchemaRef)
}

func (r docRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	r.apply(ref)
	return nil
}

func (docRule) Validate(_ any) error {
	return nil
}

// Describe returns a documentation-only rule that appends desc to the schema description.
func Describe(desc string) Rule {
	return docRule{func(ref *openapi3.SchemaRef) { appendDescription(ref, desc) }}
}

// Deprecate returns a documentation-only rule that marks the field deprecated.
func Deprecate() Rule {
	return docRule{func(ref *openapi3.SchemaRef) { ref.Value.Deprecated = true }}
}

// Example returns a documentation-only rule that sets the schema example.
func Example(ex any) Rule {
	return docRule{func(ref *openapi3.SchemaRef) { ref.Value.Example = ex }}
}
