package rules

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type inRule struct {
	validation.InRule
	values []any
}

// In checks that a value is one of values and documents them as an enum.
func In(values ...any) Rule {
	want := make([]string, len(values))
	for i := range values {
		want[i] = fmt.Sprintf("'%v'", values[i])
	}
	return &inRule{
		InRule: validation.In(values...).Error(fmt.Sprintf("must be one of %s", strings.Join(want, ", "))),
		values: values,
	}
}

func (r *inRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.Enum = r.values
	return nil
}
