package apidocs

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"html"
	"net/http"
	"path"
	"strings"
	"text/template"

	applog "github.com/Gobd/apidocs/internal/log"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

//go:embed swagger/index.html
var swagFS embed.FS

const (
	// DefaultRouteTemplate is where each document's JSON is served.
	DefaultRouteTemplate = "api-docs/{documentName}/swagger.json"
	// DefaultRoutePrefix is where the UI is served.
	DefaultRoutePrefix = "api-docs"

	documentNameParam = "documentName"
)

// PreSerializeFilter adjusts a document for the current request before it
// is written. It receives a shallow copy: replace top-level fields such as
// Servers instead of modifying nested values in place.
type PreSerializeFilter func(doc *openapi3.T, r *http.Request)

// SwaggerOptions configures the JSON document route.
type SwaggerOptions struct {
	// RouteTemplate must contain the {documentName} placeholder.
	RouteTemplate       string
	PreSerializeFilters []PreSerializeFilter
}

// UIEndpoint is one document listed by the UI.
type UIEndpoint struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

// UIOptions configures the UI route.
type UIOptions struct {
	RoutePrefix   string
	DocumentTitle string
	Endpoints     []UIEndpoint
}

// SwaggerEndpoint lists a document in the UI.
func (o *UIOptions) SwaggerEndpoint(url, name string) {
	o.Endpoints = append(o.Endpoints, UIEndpoint{URL: url, Name: name})
}

// ServerURL returns {scheme}://{host}{prefix} for the request r.
func ServerURL(r *http.Request, prefix string) string {
	scheme := r.URL.Scheme
	if scheme == "" {
		scheme = "http"
		if r.TLS != nil {
			scheme = "https"
		}
	}
	return scheme + "://" + r.Host + prefix
}

// ServerRewriteFilter replaces a document's servers with the single URL the
// request was made to, followed by prefix. Use it when the service runs
// behind a proxy or gateway that rewrites paths.
func ServerRewriteFilter(prefix string) PreSerializeFilter {
	return func(doc *openapi3.T, r *http.Request) {
		doc.Servers = openapi3.Servers{{URL: ServerURL(r, prefix)}}
	}
}

// UseSwagger serves the JSON of every document in docs on r.
func UseSwagger(r chi.Router, docs *Docs, opts SwaggerOptions) error {
	tmpl := opts.RouteTemplate
	if tmpl == "" {
		tmpl = DefaultRouteTemplate
	}
	if !strings.Contains(tmpl, "{"+documentNameParam+"}") {
		return errors.New("route template must contain {" + documentNameParam + "}")
	}
	filters := append([]PreSerializeFilter(nil), opts.PreSerializeFilters...)

	r.Get("/"+strings.TrimPrefix(tmpl, "/"), func(w http.ResponseWriter, req *http.Request) {
		name := chi.URLParam(req, documentNameParam)
		log := applog.WithReqIDFromCtx(req.Context(), docs.log).WithField("document", name)

		doc, err := docs.Document(name)
		if err != nil {
			http.NotFound(w, req)
			return
		}

		cp := *doc
		for _, f := range filters {
			f(&cp, req)
		}

		body, err := json.Marshal(&cp)
		if err != nil {
			log.WithError(err).Error("serializing api document")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if _, err := w.Write(body); err != nil {
			log.WithError(err).Debug("writing api document")
		}
	})
	return nil
}

// UseSwaggerUI serves the documentation UI under opts.RoutePrefix.
func UseSwaggerUI(r chi.Router, opts UIOptions) error {
	prefix := strings.Trim(opts.RoutePrefix, "/")
	if prefix == "" {
		prefix = DefaultRoutePrefix
	}
	title := opts.DocumentTitle
	if title == "" {
		title = "API Documentation"
	}

	index, err := renderIndex(title, opts.Endpoints)
	if err != nil {
		return err
	}

	serveIndex := func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(index)
	}

	base := "/" + prefix
	r.Get(base, func(w http.ResponseWriter, _ *http.Request) {
		// Relative, so the redirect survives path-rewriting proxies.
		w.Header().Set("Location", path.Base(base)+"/")
		w.WriteHeader(http.StatusMovedPermanently)
	})
	r.Get(base+"/", serveIndex)
	r.Get(base+"/index.html", serveIndex)
	return nil
}

func renderIndex(title string, endpoints []UIEndpoint) ([]byte, error) {
	cfg := map[string]any{
		"dom_id":      "#swagger-ui",
		"deepLinking": true,
		"urls":        lo.Ternary(endpoints == nil, []UIEndpoint{}, endpoints),
	}
	if len(endpoints) > 0 {
		cfg["urls.primaryName"] = endpoints[0].Name
	}
	cfgJSON, err := json.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	tmpl, err := template.ParseFS(swagFS, "swagger/index.html")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	err = tmpl.Execute(&buf, map[string]any{
		"Title":  html.EscapeString(title),
		"Config": string(cfgJSON),
	})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// UseCustomSwaggerUI serves one JSON document per version known to
// provider at DefaultRouteTemplate, with servers rewritten to the request's
// scheme and host followed by endpointPrefix, and a UI at DefaultRoutePrefix
// listing every version.
func UseCustomSwaggerUI(r chi.Router, docs *Docs, endpointPrefix string, provider Provider) error {
	err := UseSwagger(r, docs, SwaggerOptions{
		RouteTemplate:       DefaultRouteTemplate,
		PreSerializeFilters: []PreSerializeFilter{ServerRewriteFilter(endpointPrefix)},
	})
	if err != nil {
		return err
	}

	ui := UIOptions{RoutePrefix: DefaultRoutePrefix}
	for _, d := range provider.Descriptions() {
		ui.SwaggerEndpoint("./"+d.GroupName+"/swagger.json", strings.ToUpper(d.GroupName))
	}
	return UseSwaggerUI(r, ui)
}
