package rules

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type eachRule struct {
	validation.EachRule
	rules []Rule
}

// Each applies rules to every element of a slice, array or map. The rules
// describe the array's items schema when there is one.
func Each(rules ...Rule) Rule {
	vr := make([]validation.Rule, len(rules))
	for i, r := range rules {
		vr[i] = r
	}
	return &eachRule{
		EachRule: validation.Each(vr...),
		rules:    rules,
	}
}

func (r *eachRule) Describe(name string, schema *openapi3.Schema, ref *openapi3.SchemaRef) error {
	target := ref
	if ref.Value.Items != nil && ref.Value.Items.Value != nil {
		// A required element is a non-empty one, not a required property.
		schema = openapi3.NewSchema()
		target = ref.Value.Items
	}
	for _, rule := range r.rules {
		if err := rule.Describe(name, schema, target); err != nil {
			return err
		}
	}
	return nil
}
