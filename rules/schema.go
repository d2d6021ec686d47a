package rules

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// SchemaCustomizer returns an openapi3gen customizer that describes the
// rules of [Ruler] types into their generated schemas. Fields tagged
// docs:"skip" are removed from the schema.
func SchemaCustomizer() openapi3gen.SchemaCustomizerFn {
	return func(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct {
			return nil
		}
		inst := reflect.New(t)
		r, ok := inst.Interface().(Ruler)
		if !ok {
			return nil
		}

		removeSkippedFields(t, schema)

		fields := r.Rules()
		if err := mapFieldsToTags(fields, inst.Elem()); err != nil {
			return err
		}
		return applyRules(fields, schema)
	}
}

func removeSkippedFields(t reflect.Type, schema *openapi3.Schema) {
	for i := range t.NumField() {
		sf := t.Field(i)
		if strings.Split(sf.Tag.Get("docs"), ",")[0] != "skip" {
			continue
		}
		delete(schema.Properties, jsonName(sf))
	}
}

// mapFieldsToTags resolves each rule target to its JSON property name by
// comparing field addresses.
func mapFieldsToTags(fields []*FieldRules, structVal reflect.Value) error {
	for i, fr := range fields {
		fv := reflect.ValueOf(fr.fieldPtr)
		if fv.Kind() != reflect.Ptr {
			return fmt.Errorf("rule target %d must be a pointer, got %s", i, fv.Kind())
		}
		sf, ok := structFieldFor(structVal, fv)
		if !ok {
			return fmt.Errorf("rule target %d not found in struct %s", i, structVal.Type())
		}
		fields[i].tag = jsonName(sf)
	}
	return nil
}

func structFieldFor(structVal reflect.Value, fieldPtr reflect.Value) (reflect.StructField, bool) {
	for i := range structVal.NumField() {
		f := structVal.Field(i)
		if f.CanAddr() && f.Addr().Pointer() == fieldPtr.Pointer() && f.Type() == fieldPtr.Type().Elem() {
			return structVal.Type().Field(i), true
		}
	}
	return reflect.StructField{}, false
}

func applyRules(fields []*FieldRules, schema *openapi3.Schema) error {
	for _, f := range fields {
		propRef, ok := schema.Properties[f.tag]
		if !ok || propRef == nil || propRef.Value == nil {
			continue
		}
		for _, rule := range f.rules {
			if err := rule.Describe(f.tag, schema, propRef); err != nil {
				return err
			}
		}
	}
	return nil
}

// jsonName returns the JSON property name of a struct field, falling back to
// the Go field name the way encoding/json does.
func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return sf.Name
	}
	return name
}
