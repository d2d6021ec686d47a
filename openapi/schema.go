package openapi

import (
	"reflect"

	"github.com/Gobd/apidocs/rules"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Customizer adjusts a generated schema; see [openapi3gen.SchemaCustomizerFn].
type Customizer = openapi3gen.SchemaCustomizerFn

// Chain runs customizers in order and stops at the first error.
func Chain(cs ...Customizer) Customizer {
	return func(name string, t reflect.Type, tag reflect.StructTag, schema *openapi3.Schema) error {
		for _, c := range cs {
			if c == nil {
				continue
			}
			if err := c(name, t, tag, schema); err != nil {
				return err
			}
		}
		return nil
	}
}

// NewSchemaRefForValue generates an inline schema for value. Rules of
// [rules.Ruler] types are applied first, then extra customizers.
func NewSchemaRefForValue(value any, extra ...Customizer) (*openapi3.SchemaRef, error) {
	cs := append([]Customizer{rules.SchemaCustomizer()}, extra...)
	g := openapi3gen.NewGenerator(openapi3gen.SchemaCustomizer(Chain(cs...)))
	return g.NewSchemaRefForValue(value, nil)
}
