package rules

import (
	"fmt"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

type thresholdRule struct {
	validation.ThresholdRule
	threshold any
	min       bool
}

// Min checks that a value is greater than or equal to threshold.
func Min(threshold any) Rule {
	return thresholdRule{validation.Min(threshold), threshold, true}
}

// Max checks that a value is less than or equal to threshold.
func Max(threshold any) Rule {
	return thresholdRule{validation.Max(threshold), threshold, false}
}

func (r thresholdRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	f, err := toFloat(r.threshold)
	if err != nil {
		return err
	}
	if r.min {
		ref.Value.Min = &f
	} else {
		ref.Value.Max = &f
	}
	return nil
}

var floatType = reflect.TypeOf(float64(0))

func toFloat(v any) (float64, error) {
	rv := reflect.Indirect(reflect.ValueOf(v))
	if !rv.IsValid() || !rv.Type().ConvertibleTo(floatType) {
		return 0, fmt.Errorf("cannot convert %T to float64", v)
	}
	return rv.Convert(floatType).Float(), nil
}
