package openapi_test

import (
	"context"
	"net/http"
	"reflect"
	"testing"

	"github.com/Gobd/apidocs/openapi"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiError struct {
	Message string `json:"message"`
}

func TestNewOperation_RequestAndResponses(t *testing.T) {
	op, err := openapi.NewOperation("createItem", openapi.Endpoint{
		Summary: "Create",
		Tags:    []string{"items"},
		Request: Item{},
		Responses: map[string]openapi.Response{
			"201": {Desc: "Created", Bodies: []any{Item{}}},
			"400": {Desc: "Bad request", Bodies: []any{apiError{}}},
			"204": {Desc: "Nothing"},
		},
	})
	require.NoError(t, err)

	require.NotNil(t, op.RequestBody)
	body := op.RequestBody.Value.Content.Get("application/json")
	require.NotNil(t, body)
	assert.ElementsMatch(t, []string{"name", "price"}, body.Schema.Value.Required)

	assert.Equal(t, "Created", *op.Responses.Value("201").Value.Description)
	assert.Contains(t, op.Responses.Value("400").Value.Content.Get("application/json").Schema.Value.Properties, "message")
	assert.Nil(t, op.Responses.Value("204").Value.Content)
	assert.Equal(t, []string{"items"}, op.Tags)
}

func TestNewOperation_MultipleRequestsUseOneOf(t *testing.T) {
	op, err := openapi.NewOperation("upsert", openapi.Endpoint{
		Requests: []any{Item{}, apiError{}},
	})
	require.NoError(t, err)

	schema := op.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.Len(t, schema.OneOf, 2)
}

func TestNewOperation_DefaultResponse(t *testing.T) {
	op, err := openapi.NewOperation("ping", openapi.Endpoint{})
	require.NoError(t, err)
	require.NotNil(t, op.Responses.Value("200"))
	assert.Nil(t, op.RequestBody)
}

func TestNewResponse_NoValues(t *testing.T) {
	_, err := openapi.NewResponse(nil)
	assert.ErrorIs(t, err, openapi.ErrNoValues)

	_, err = openapi.NewRequest(nil)
	assert.ErrorIs(t, err, openapi.ErrNoValues)
}

func TestNewSchemaRefForValue_ExtraCustomizer(t *testing.T) {
	stamp := func(_ string, typ reflect.Type, _ reflect.StructTag, s *openapi3.Schema) error {
		if typ == reflect.TypeOf(Item{}) {
			s.Description = "An item."
		}
		return nil
	}

	ref, err := openapi.NewSchemaRefForValue(Item{}, stamp)
	require.NoError(t, err)
	assert.Equal(t, "An item.", ref.Value.Description)
	assert.Contains(t, ref.Value.Required, "name")
}

func TestAddPath_MergesMethods(t *testing.T) {
	doc := openapi.DocBase(&openapi3.Info{Title: "Shop API", Version: "1.0"})

	get, err := openapi.NewOperation("listItems", openapi.Endpoint{Response: []Item{}})
	require.NoError(t, err)
	post, err := openapi.NewOperation("createItem", openapi.Endpoint{Request: Item{}})
	require.NoError(t, err)

	openapi.AddPath(doc, "/items", http.MethodGet, get)
	openapi.AddPath(doc, "/items", http.MethodPost, post)

	item := doc.Paths.Value("/items")
	require.NotNil(t, item)
	assert.Equal(t, "listItems", item.Get.OperationID)
	assert.Equal(t, "createItem", item.Post.OperationID)
	require.NoError(t, doc.Validate(context.Background()))
}

func TestAddPath_AddsPathParameters(t *testing.T) {
	doc := openapi.DocBase(&openapi3.Info{Title: "Shop API", Version: "1.0"})

	declared := &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter("shop").WithSchema(openapi3.NewIntegerSchema()),
	}
	op, err := openapi.NewOperation("getItem", openapi.Endpoint{
		Parameters: openapi3.Parameters{declared},
		Response:   Item{},
	})
	require.NoError(t, err)

	openapi.AddPath(doc, "/shops/{shop}/items/{id}", http.MethodGet, op)

	require.Len(t, op.Parameters, 2)
	assert.Same(t, declared, op.Parameters[0])
	id := op.Parameters.GetByInAndName(openapi3.ParameterInPath, "id")
	require.NotNil(t, id)
	assert.True(t, id.Required)
	require.NoError(t, doc.Validate(context.Background()))
}

func TestAddPath_OperationsDoNotShareParameters(t *testing.T) {
	params := make(openapi3.Parameters, 0, 4)
	params = append(params, &openapi3.ParameterRef{Value: openapi3.NewQueryParameter("limit")})
	ep := openapi.Endpoint{Parameters: params}

	v1 := openapi.DocBase(&openapi3.Info{Title: "Shop", Version: "1.0"})
	v2 := openapi.DocBase(&openapi3.Info{Title: "Shop", Version: "2.0"})

	op1, err := openapi.NewOperation("getOrder", ep)
	require.NoError(t, err)
	openapi.AddPath(v1, "/orders/{id}", http.MethodGet, op1)

	op2, err := openapi.NewOperation("getOrder", ep)
	require.NoError(t, err)
	openapi.AddPath(v2, "/orders/{orderId}", http.MethodGet, op2)

	require.Len(t, op1.Parameters, 2)
	require.Len(t, op2.Parameters, 2)
	assert.Equal(t, "id", op1.Parameters[1].Value.Name)
	assert.Equal(t, "orderId", op2.Parameters[1].Value.Name)
	assert.Len(t, params, 1)
}
