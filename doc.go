// Package apidocs generates and serves OpenAPI documentation for a
// versioned HTTP API.
//
// Register one document per API version, let XML comment files enrich the
// generated schemas, then serve every document and a browsable UI:
//
//	provider, _ := apidocs.NewProvider(
//	    apidocs.NewDescription(apidocs.MustParseVersion("1.0"), true),
//	    apidocs.NewDescription(apidocs.MustParseVersion("2.0"), false),
//	)
//	g := apidocs.NewGenerator()
//	_ = apidocs.Register(g, provider, apidocs.DefaultInfoOptions())
//	g.Post("/orders", "createOrder", openapi.Endpoint{Request: Order{}, Response: Order{}})
//
//	docs, _ := g.Build(ctx)
//	r := chi.NewRouter()
//	_ = apidocs.UseCustomSwaggerUI(r, docs, "/shop", provider)
//
// Documents are served at api-docs/{documentName}/swagger.json with their
// servers rewritten to the scheme and host of each request followed by the
// given prefix; the UI lives at api-docs/.
//
// Sub-packages:
//   - openapi – document, operation and schema builders
//   - rules – validation rules that also describe themselves in schemas
//   - xmldoc – discovery and parsing of XML comment files
package apidocs
