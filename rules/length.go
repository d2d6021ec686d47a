package rules

import (
	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type lengthRule struct {
	validation.LengthRule
	min, max uint64
}

// Length checks that a string's rune length is within [lo, hi].
// A zero hi means no upper bound.
func Length(lo, hi int) Rule {
	return &lengthRule{
		LengthRule: validation.RuneLength(lo, hi),
		min:        uint64(max(lo, 0)),
		max:        uint64(max(hi, 0)),
	}
}

func (r *lengthRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.MinLength = r.min
	if r.max > 0 {
		hi := r.max
		ref.Value.MaxLength = &hi
	}
	return nil
}
