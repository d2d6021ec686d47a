package xmldoc

import (
	"reflect"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3gen"
)

// Type returns the documentation of the type named typeName. Members are
// matched on their last name segment, so "Order" finds "T:Shop.Models.Order".
func (c *Comments) Type(typeName string) (*Member, bool) {
	return c.find(func(m *Member) bool {
		return m.Kind == KindType && lastSegment(m.Name) == typeName
	})
}

// Property returns the documentation of field on typeName, looking at both
// properties and fields.
func (c *Comments) Property(typeName, field string) (*Member, bool) {
	return c.find(func(m *Member) bool {
		if m.Kind != KindProperty && m.Kind != KindField {
			return false
		}
		owner, name := splitLast(m.Name)
		return name == field && lastSegment(owner) == typeName
	})
}

// Operation returns the documentation of the method whose name equals
// operationID, ignoring case and parameter lists.
func (c *Comments) Operation(operationID string) (*Member, bool) {
	return c.find(func(m *Member) bool {
		if m.Kind != KindMethod {
			return false
		}
		name := m.Name
		if i := strings.Index(name, "("); i >= 0 {
			name = name[:i]
		}
		return strings.EqualFold(lastSegment(name), operationID)
	})
}

func (c *Comments) find(match func(*Member) bool) (*Member, bool) {
	if c == nil {
		return nil, false
	}
	var best *Member
	for key, m := range c.members {
		if !match(m) {
			continue
		}
		// Map order is random; pick the lexically smallest key for stable output.
		if best == nil || key < string(best.Kind)+":"+best.Name {
			best = m
		}
	}
	return best, best != nil
}

// SchemaCustomizer returns an openapi3gen customizer that fills empty type
// and property descriptions from the comments.
func (c *Comments) SchemaCustomizer() openapi3gen.SchemaCustomizerFn {
	return func(_ string, t reflect.Type, _ reflect.StructTag, schema *openapi3.Schema) error {
		if c.Len() == 0 {
			return nil
		}
		for t.Kind() == reflect.Ptr {
			t = t.Elem()
		}
		if t.Kind() != reflect.Struct || t.Name() == "" {
			return nil
		}

		if schema.Description == "" {
			if m, ok := c.Type(t.Name()); ok {
				schema.Description = m.Summary
			}
		}

		for i := range t.NumField() {
			sf := t.Field(i)
			if !sf.IsExported() || sf.Anonymous {
				continue
			}
			prop, ok := schema.Properties[jsonName(sf)]
			if !ok || prop == nil || prop.Value == nil || prop.Value.Description != "" {
				continue
			}
			if m, ok := c.Property(t.Name(), sf.Name); ok {
				prop.Value.Description = m.Summary
			}
		}
		return nil
	}
}

// ApplyOperation fills an empty summary and description of op from the
// method documented under op.OperationID.
func (c *Comments) ApplyOperation(op *openapi3.Operation) {
	if op == nil || op.OperationID == "" {
		return
	}
	m, ok := c.Operation(op.OperationID)
	if !ok {
		return
	}
	if op.Summary == "" {
		op.Summary = m.Summary
	}
	if op.Description == "" {
		op.Description = m.Remarks
	}
}

func lastSegment(name string) string {
	_, last := splitLast(name)
	return last
}

func splitLast(name string) (string, string) {
	i := strings.LastIndex(name, ".")
	if i < 0 {
		return "", name
	}
	return name[:i], name[i+1:]
}

func jsonName(sf reflect.StructField) string {
	name := strings.Split(sf.Tag.Get("json"), ",")[0]
	if name == "" {
		return sf.Name
	}
	return name
}
