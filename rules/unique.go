package rules

import (
	"errors"
	"reflect"

	"github.com/getkin/kin-openapi/openapi3"
)

type uniqueRule struct{}

// Unique checks that a slice or array holds no equal elements and marks
// the schema uniqueItems. Elements must be comparable.
var Unique Rule = uniqueRule{}

func (uniqueRule) Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || ((rv.Kind() == reflect.Ptr || rv.Kind() == reflect.Interface) && rv.IsNil()) {
		return nil
	}
	rv = reflect.Indirect(rv)

	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if !rv.Type().Elem().Comparable() {
			return errors.New("elements are not comparable")
		}
		seen := make(map[any]struct{}, rv.Len())
		for i := range rv.Len() {
			v := rv.Index(i).Interface()
			if _, ok := seen[v]; ok {
				return errors.New("must not contain duplicates")
			}
			seen[v] = struct{}{}
		}
		return nil
	default:
		return errors.New("must be a slice")
	}
}

func (uniqueRule) Describe(_ string, _ *openapi3.Schema, ref *openapi3.SchemaRef) error {
	ref.Value.UniqueItems = true
	return nil
}
