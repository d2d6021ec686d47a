// Package rules validates values and documents the same constraints in
// OpenAPI schemas.
//
// A type lists its constraints by implementing [Ruler]:
//
//	func (o *Order) Rules() []*rules.FieldRules {
//	    return []*rules.FieldRules{
//	        rules.Field(&o.ID, rules.Required),
//	        rules.Field(&o.Contact, rules.Email),
//	    }
//	}
//
// [Validate] checks a value against those rules, and [SchemaCustomizer] plugs
// the same rules into kin-openapi's schema generator so that the generated
// documentation reports them (required, enum, min/max, format, description).
package rules
