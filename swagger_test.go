package apidocs_test

import (
	"context"
	"crypto/tls"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Gobd/apidocs"
	"github.com/Gobd/apidocs/openapi"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerURL(t *testing.T) {
	tests := []struct {
		name   string
		target string
		tls    bool
		prefix string
		want   string
	}{
		{"https with prefix", "https://api.example.com/api-docs/v1/swagger.json", true, "/v1", "https://api.example.com/v1"},
		{"http empty prefix", "http://localhost:8080/x", false, "", "http://localhost:8080"},
		{"gateway prefix", "http://gw.internal/x", false, "/shop/api", "http://gw.internal/shop/api"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, tt.target, nil)
			r.URL.Scheme = "" // server-side requests carry no scheme
			if tt.tls {
				r.TLS = &tls.ConnectionState{}
			} else {
				r.TLS = nil
			}
			assert.Equal(t, tt.want, apidocs.ServerURL(r, tt.prefix))
		})
	}
}

func TestServerURL_ExplicitScheme(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/x", nil)
	r.URL.Scheme = "https"
	r.Host = "api.example.com"
	assert.Equal(t, "https://api.example.com/v1", apidocs.ServerURL(r, "/v1"))
}

func TestServerRewriteFilter(t *testing.T) {
	doc := &openapi3.T{Servers: openapi3.Servers{{URL: "http://a"}, {URL: "http://b"}}}
	r := httptest.NewRequest(http.MethodGet, "http://api.example.com/x", nil)

	apidocs.ServerRewriteFilter("/v1")(doc, r)

	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "http://api.example.com/v1", doc.Servers[0].URL)
}

func newTestRouter(t *testing.T, prefix string) (*chi.Mux, *apidocs.Docs) {
	t.Helper()
	g, _ := newTestGenerator(t)
	p := testProvider(t)
	require.NoError(t, apidocs.Register(g, p, apidocs.DefaultInfoOptions()))
	g.Get("/orders", "listOrders", openapi.Endpoint{Response: []Order{}})

	docs, err := g.Build(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	require.NoError(t, apidocs.UseCustomSwaggerUI(r, docs, prefix, p))
	return r, docs
}

func get(t *testing.T, h http.Handler, target string) *http.Response {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec.Result()
}

func TestUseCustomSwaggerUI_DocumentJSON(t *testing.T) {
	r, docs := newTestRouter(t, "/shop")

	resp := get(t, r, "http://api.example.com/api-docs/v2/swagger.json")
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json; charset=utf-8", resp.Header.Get("Content-Type"))

	var doc openapi3.T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "2.0", doc.Info.Version)
	require.Len(t, doc.Servers, 1)
	assert.Equal(t, "http://api.example.com/shop", doc.Servers[0].URL)
	assert.NotNil(t, doc.Paths.Value("/orders"))

	// The built document is left untouched.
	built, err := docs.Document("v2")
	require.NoError(t, err)
	assert.Empty(t, built.Servers)
}

func TestUseCustomSwaggerUI_ServerFollowsRequestHost(t *testing.T) {
	r, _ := newTestRouter(t, "")

	for _, host := range []string{"one.example.com", "two.example.com:8443"} {
		resp := get(t, r, "http://"+host+"/api-docs/v1/swagger.json")
		var doc openapi3.T
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
		resp.Body.Close()
		assert.Equal(t, "http://"+host, doc.Servers[0].URL)
	}
}

func TestUseCustomSwaggerUI_UnknownDocument(t *testing.T) {
	r, _ := newTestRouter(t, "")

	resp := get(t, r, "/api-docs/v9/swagger.json")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUseCustomSwaggerUI_UI(t *testing.T) {
	r, _ := newTestRouter(t, "")

	for _, target := range []string{"/api-docs/", "/api-docs/index.html"} {
		resp := get(t, r, target)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		require.Equal(t, http.StatusOK, resp.StatusCode, target)
		assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
		html := string(body)
		assert.Contains(t, html, `{"url":"./v1/swagger.json","name":"V1"}`)
		assert.Contains(t, html, `{"url":"./v2/swagger.json","name":"V2"}`)
		assert.Less(t, strings.Index(html, `"V1"`), strings.Index(html, `"V2"`))
		assert.Contains(t, html, "SwaggerUIBundle")
	}
}

func TestUseCustomSwaggerUI_RedirectsBarePrefix(t *testing.T) {
	r, _ := newTestRouter(t, "")

	resp := get(t, r, "/api-docs")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusMovedPermanently, resp.StatusCode)
	assert.Equal(t, "api-docs/", resp.Header.Get("Location"))
}

func TestUseSwagger_CustomTemplateAndFilters(t *testing.T) {
	g, _ := newTestGenerator(t)
	require.NoError(t, apidocs.Register(g, testProvider(t), apidocs.DefaultInfoOptions()))
	docs, err := g.Build(context.Background())
	require.NoError(t, err)

	r := chi.NewRouter()
	err = apidocs.UseSwagger(r, docs, apidocs.SwaggerOptions{
		RouteTemplate: "/openapi/{documentName}.json",
		PreSerializeFilters: []apidocs.PreSerializeFilter{
			apidocs.ServerRewriteFilter("/a"),
			func(doc *openapi3.T, _ *http.Request) {
				info := *doc.Info
				info.Title = "Rewritten"
				doc.Info = &info
			},
		},
	})
	require.NoError(t, err)

	resp := get(t, r, "http://h/openapi/v1.json")
	defer resp.Body.Close()
	var doc openapi3.T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&doc))
	assert.Equal(t, "Rewritten", doc.Info.Title)
	assert.Equal(t, "http://h/a", doc.Servers[0].URL)

	built, _ := docs.Document("v1")
	assert.Equal(t, "VulnerableApp", built.Info.Title)
}

func TestUseSwagger_TemplateWithoutPlaceholder(t *testing.T) {
	g, _ := newTestGenerator(t)
	docs, err := g.Build(context.Background())
	require.NoError(t, err)

	err = apidocs.UseSwagger(chi.NewRouter(), docs, apidocs.SwaggerOptions{RouteTemplate: "docs/swagger.json"})
	assert.Error(t, err)
}

func TestUseSwaggerUI_CustomPrefixAndTitle(t *testing.T) {
	r := chi.NewRouter()
	ui := apidocs.UIOptions{RoutePrefix: "/docs/", DocumentTitle: "Shop <API>"}
	ui.SwaggerEndpoint("/openapi/v1.json", "V1")
	require.NoError(t, apidocs.UseSwaggerUI(r, ui))

	resp := get(t, r, "/docs/")
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "<title>Shop &lt;API&gt;</title>")
	assert.Contains(t, string(body), `"urls.primaryName":"V1"`)
}
