package apidocs

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobd/apidocs/openapi"
	"github.com/Gobd/apidocs/rules"
	"github.com/Gobd/apidocs/xmldoc"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"
)

var (
	// ErrDocumentNotFound is returned for an unknown document name.
	ErrDocumentNotFound = errors.New("api document not found")
	// ErrDuplicateDocument is returned when a document name is registered twice.
	ErrDuplicateDocument = errors.New("api document already registered")
)

type namedDoc struct {
	name string
	info *openapi3.Info
}

type endpoint struct {
	method      string
	path        string
	operationID string
	ep          openapi.Endpoint
	docs        []string
}

// Generator collects documentation registrations. It is not safe for
// concurrent use; register everything at startup, then call Build.
type Generator struct {
	log         logrus.FieldLogger
	now         func() time.Time
	xmlBaseDir  string
	xmlPatterns []string

	docs      []namedDoc
	xmlPaths  []string
	endpoints []endpoint
}

// NewGenerator returns an empty Generator.
func NewGenerator(opts ...Option) *Generator {
	g := defaultGenerator()
	for _, o := range opts {
		o(g)
	}
	return g
}

// SwaggerDoc registers a document named name described by info.
func (g *Generator) SwaggerDoc(name string, info *openapi3.Info) error {
	if lo.ContainsBy(g.docs, func(d namedDoc) bool { return d.name == name }) {
		return fmt.Errorf("%w: %s", ErrDuplicateDocument, name)
	}
	g.docs = append(g.docs, namedDoc{name: name, info: info})
	g.log.WithFields(logrus.Fields{"document": name, "version": info.Version}).Debug("registered api document")
	return nil
}

// IncludeXMLComments adds an XML comment file. The file is read at Build;
// a missing or malformed file only loses its comments.
func (g *Generator) IncludeXMLComments(path string) {
	g.xmlPaths = append(g.xmlPaths, path)
}

// Documents returns the registered document names in registration order.
func (g *Generator) Documents() []string {
	return lo.Map(g.docs, func(d namedDoc, _ int) string { return d.name })
}

// XMLCommentPaths returns the registered XML comment files.
func (g *Generator) XMLCommentPaths() []string {
	return append([]string(nil), g.xmlPaths...)
}

// Handle registers an operation. It is added to the named documents, or to
// every document when docs is empty.
func (g *Generator) Handle(method, path, operationID string, ep openapi.Endpoint, docs ...string) {
	g.endpoints = append(g.endpoints, endpoint{
		method:      method,
		path:        path,
		operationID: operationID,
		ep:          ep,
		docs:        docs,
	})
}

// Get registers a GET operation; see Handle.
func (g *Generator) Get(path, operationID string, ep openapi.Endpoint, docs ...string) {
	g.Handle(http.MethodGet, path, operationID, ep, docs...)
}

// Post registers a POST operation; see Handle.
func (g *Generator) Post(path, operationID string, ep openapi.Endpoint, docs ...string) {
	g.Handle(http.MethodPost, path, operationID, ep, docs...)
}

// Put registers a PUT operation; see Handle.
func (g *Generator) Put(path, operationID string, ep openapi.Endpoint, docs ...string) {
	g.Handle(http.MethodPut, path, operationID, ep, docs...)
}

// Patch registers a PATCH operation; see Handle.
func (g *Generator) Patch(path, operationID string, ep openapi.Endpoint, docs ...string) {
	g.Handle(http.MethodPatch, path, operationID, ep, docs...)
}

// Delete registers a DELETE operation; see Handle.
func (g *Generator) Delete(path, operationID string, ep openapi.Endpoint, docs ...string) {
	g.Handle(http.MethodDelete, path, operationID, ep, docs...)
}

// Register adds one document per version known to provider, named by the
// version's group name, and every XML comment file found under the
// generator's base directory.
func Register(g *Generator, provider Provider, opts InfoOptions) error {
	if err := rules.Validate(&opts); err != nil {
		return fmt.Errorf("info options: %w", err)
	}

	now := g.now()
	for _, d := range provider.Descriptions() {
		if err := g.SwaggerDoc(d.GroupName, NewInfo(opts, d, now)); err != nil {
			return err
		}
	}

	paths, err := xmldoc.Find(g.xmlBaseDir, g.xmlPatterns...)
	if err != nil {
		g.log.WithError(err).WithField("dir", g.xmlBaseDir).Warn("skipped unreadable entries while searching xml comment files")
	}
	for _, p := range paths {
		g.IncludeXMLComments(p)
	}
	return nil
}

// Build generates every registered document.
func (g *Generator) Build(ctx context.Context) (*Docs, error) {
	comments := g.loadComments()
	out := &Docs{
		log:      g.log,
		comments: comments,
		docs:     make(map[string]*openapi3.T, len(g.docs)),
	}

	known := lo.SliceToMap(g.docs, func(d namedDoc) (string, struct{}) { return d.name, struct{}{} })
	for _, e := range g.endpoints {
		for _, name := range e.docs {
			if _, ok := known[name]; !ok {
				g.log.WithFields(logrus.Fields{"document": name, "operation": e.operationID}).
					Warn("operation registered for unknown api document")
			}
		}
	}

	for _, nd := range g.docs {
		doc, err := g.buildDoc(ctx, nd, comments)
		if err != nil {
			return nil, fmt.Errorf("document %s: %w", nd.name, err)
		}
		out.names = append(out.names, nd.name)
		out.docs[nd.name] = doc
		g.log.WithFields(logrus.Fields{
			"document":   nd.name,
			"version":    nd.info.Version,
			"operations": doc.Paths.Len(),
		}).Debug("built api document")
	}
	return out, nil
}

func (g *Generator) buildDoc(ctx context.Context, nd namedDoc, comments *xmldoc.Comments) (*openapi3.T, error) {
	doc := openapi.DocBase(nd.info)
	for _, e := range g.endpoints {
		if len(e.docs) > 0 && !lo.Contains(e.docs, nd.name) {
			continue
		}
		op, err := openapi.NewOperation(e.operationID, e.ep, comments.SchemaCustomizer())
		if err != nil {
			return nil, fmt.Errorf("operation %s: %w", e.operationID, err)
		}
		comments.ApplyOperation(op)
		openapi.AddPath(doc, e.path, e.method, op)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

func (g *Generator) loadComments() *xmldoc.Comments {
	all := xmldoc.New()
	for _, p := range g.xmlPaths {
		c, err := xmldoc.Load(p)
		if err != nil {
			g.log.WithError(err).WithField("path", p).Warn("skipping xml comment file")
			continue
		}
		all.Merge(c)
		g.log.WithFields(logrus.Fields{"path": p, "members": c.Len()}).Debug("loaded xml comments")
	}
	return all
}

// Docs is the immutable result of Generator.Build.
type Docs struct {
	log      logrus.FieldLogger
	comments *xmldoc.Comments
	names    []string
	docs     map[string]*openapi3.T
}

// Names returns the document names in registration order.
func (d *Docs) Names() []string {
	return append([]string(nil), d.names...)
}

// Document returns the named document. Callers must not modify it.
func (d *Docs) Document(name string) (*openapi3.T, error) {
	doc, ok := d.docs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, name)
	}
	return doc, nil
}

// Comments returns the merged XML comments the documents were built with.
func (d *Docs) Comments() *xmldoc.Comments {
	return d.comments
}
