package openapi

import (
	"errors"
	"net/http"
	"slices"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Version is the OpenAPI version written into generated documents.
const Version = "3.0.3"

const jsonContent = "application/json"

// ErrNoValues is returned when a request or response has no body types.
var ErrNoValues = errors.New("no values given")

// Response describes an HTTP response with a description and body types.
type Response struct {
	Desc   string
	Bodies []any
}

// Endpoint describes a single API operation.
type Endpoint struct {
	Summary     string
	Description string
	Tags        []string
	Deprecated  bool
	Parameters  openapi3.Parameters // path parameters not listed here are added as strings
	Request     any                 // single request body type
	Requests    []any               // several request body types (oneOf)
	Response    any                 // single 200 response type
	Responses   map[string]Response // full response map; overrides Response
}

// DocBase returns an empty OpenAPI document carrying info.
func DocBase(info *openapi3.Info) *openapi3.T {
	return &openapi3.T{
		OpenAPI: Version,
		Info:    info,
		Paths:   openapi3.NewPaths(),
	}
}

// NewRequest generates a JSON request body from the given value types.
// Several types are combined with oneOf.
func NewRequest(vs []any, cs ...Customizer) (*openapi3.RequestBodyRef, error) {
	if len(vs) == 0 {
		return nil, ErrNoValues
	}
	schema, err := bodySchema(vs, cs)
	if err != nil {
		return nil, err
	}
	return &openapi3.RequestBodyRef{
		Value: openapi3.NewRequestBody().WithJSONSchemaRef(schema),
	}, nil
}

// NewResponse creates a responses object keyed by status code ("200", "4xx").
func NewResponse(vs map[string]Response, cs ...Customizer) (*openapi3.Responses, error) {
	if len(vs) == 0 {
		return nil, ErrNoValues
	}

	codes := make([]string, 0, len(vs))
	for code := range vs {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	opts := make([]openapi3.NewResponsesOption, 0, len(codes))
	for _, code := range codes {
		desc := vs[code].Desc
		resp := &openapi3.Response{Description: &desc}
		if len(vs[code].Bodies) > 0 {
			schema, err := bodySchema(vs[code].Bodies, cs)
			if err != nil {
				return nil, err
			}
			resp.Content = openapi3.Content{jsonContent: &openapi3.MediaType{Schema: schema}}
		}
		opts = append(opts, openapi3.WithName(code, resp))
	}

	return openapi3.NewResponses(opts...), nil
}

func bodySchema(vs []any, cs []Customizer) (*openapi3.SchemaRef, error) {
	refs := make(openapi3.SchemaRefs, 0, len(vs))
	for _, v := range vs {
		ref, err := NewSchemaRefForValue(v, cs...)
		if err != nil {
			return nil, err
		}
		refs = append(refs, ref)
	}
	if len(refs) == 1 {
		return refs[0], nil
	}
	return &openapi3.SchemaRef{Value: &openapi3.Schema{OneOf: refs}}, nil
}

// NewOperation builds an operation from ep. Schemas are generated with cs.
func NewOperation(operationID string, ep Endpoint, cs ...Customizer) (*openapi3.Operation, error) {
	op := &openapi3.Operation{
		OperationID: operationID,
		Summary:     ep.Summary,
		Description: ep.Description,
		Tags:        ep.Tags,
		Deprecated:  ep.Deprecated,
		Parameters:  slices.Clone(ep.Parameters),
	}

	var err error
	switch {
	case len(ep.Requests) > 0:
		op.RequestBody, err = NewRequest(ep.Requests, cs...)
	case ep.Request != nil:
		op.RequestBody, err = NewRequest([]any{ep.Request}, cs...)
	}
	if err != nil {
		return nil, err
	}

	responses := ep.Responses
	if responses == nil && ep.Response != nil {
		responses = map[string]Response{
			"200": {Desc: "OK", Bodies: []any{ep.Response}},
		}
	}
	if responses == nil {
		desc := "OK"
		op.Responses = openapi3.NewResponses(openapi3.WithName("200", &openapi3.Response{Description: &desc}))
		return op, nil
	}
	if op.Responses, err = NewResponse(responses, cs...); err != nil {
		return nil, err
	}
	return op, nil
}

// AddPath sets op on doc at path for method. Path parameters of the
// template that op does not declare are added as required strings.
func AddPath(doc *openapi3.T, path, method string, op *openapi3.Operation) {
	for _, name := range pathParams(path) {
		if op.Parameters.GetByInAndName(openapi3.ParameterInPath, name) == nil {
			op.Parameters = append(op.Parameters, &openapi3.ParameterRef{
				Value: openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()),
			})
		}
	}

	p := doc.Paths.Value(path)
	if p == nil {
		p = &openapi3.PathItem{}
	}

	switch method {
	case http.MethodGet:
		p.Get = op
	case http.MethodPost:
		p.Post = op
	case http.MethodPut:
		p.Put = op
	case http.MethodPatch:
		p.Patch = op
	case http.MethodDelete:
		p.Delete = op
	}

	doc.Paths.Set(path, p)
}

// pathParams returns the {name} placeholders of a path template.
func pathParams(path string) []string {
	var names []string
	for _, seg := range strings.Split(path, "/") {
		if strings.HasPrefix(seg, "{") && strings.HasSuffix(seg, "}") && len(seg) > 2 {
			names = append(names, seg[1:len(seg)-1])
		}
	}
	return names
}
