package rules

import (
	"reflect"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Validate checks value against its rules.
// Values that implement [Ruler] (directly or through a pointer) have every
// field validated and nested Ruler fields validated recursively; any other
// value is accepted as is. A failure is returned as [Errors].
func Validate(value any) error {
	rv := reflect.ValueOf(value)
	if !rv.IsValid() || (rv.Kind() == reflect.Ptr && rv.IsNil()) {
		return nil
	}

	if r, ok := value.(Ruler); ok {
		return validation.ValidateStruct(value, toOzzo(r.Rules())...)
	}

	// Struct values reach here when ozzo hands a field value to nestedRule.
	if rv.Kind() == reflect.Struct {
		ptr := reflect.New(rv.Type())
		ptr.Elem().Set(rv)
		if r, ok := ptr.Interface().(Ruler); ok {
			return validation.ValidateStruct(ptr.Interface(), toOzzo(r.Rules())...)
		}
	}

	if rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array {
		errs := Errors{}
		for i := range rv.Len() {
			if err := Validate(rv.Index(i).Interface()); err != nil {
				errs[strconv.Itoa(i)] = err
			}
		}
		if len(errs) > 0 {
			return errs
		}
	}

	return nil
}

// ValidateStruct validates structPtr with explicit field rules.
func ValidateStruct(structPtr any, fields ...*FieldRules) error {
	return validation.ValidateStruct(structPtr, toOzzo(fields)...)
}

// nestedRule recurses into Ruler values held by a field.
type nestedRule struct{}

func (nestedRule) Validate(value any) error {
	if value == nil {
		return nil
	}
	return Validate(value)
}

func toOzzo(fields []*FieldRules) []*validation.FieldRules {
	out := make([]*validation.FieldRules, len(fields))
	for i, fr := range fields {
		vr := make([]validation.Rule, 0, len(fr.rules)+1)
		for _, r := range fr.rules {
			vr = append(vr, r)
		}
		vr = append(vr, nestedRule{})
		out[i] = validation.Field(fr.fieldPtr, vr...)
	}
	return out
}
