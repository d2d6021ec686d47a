// Package openapi builds OpenAPI 3 documents: a base document from
// metadata, operations from [Endpoint] descriptions, and request/response
// schemas generated from Go types.
//
// Schemas are generated with kin-openapi's openapi3gen; rule descriptions
// from the rules package are always applied, and further customizers (for
// example XML comment text) can be chained in:
//
//	doc := openapi.DocBase(&openapi3.Info{Title: "Shop API", Version: "1.0"})
//	op, err := openapi.NewOperation("createOrder", openapi.Endpoint{
//	    Request:  Order{},
//	    Response: Order{},
//	})
//	openapi.AddPath(doc, "/orders", http.MethodPost, op)
package openapi
