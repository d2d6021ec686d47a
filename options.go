package apidocs

import (
	"time"

	"github.com/Gobd/apidocs/xmldoc"
	"github.com/sirupsen/logrus"
)

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used during registration, build and serving.
func WithLogger(l logrus.FieldLogger) Option {
	return func(g *Generator) {
		if l != nil {
			g.log = l
		}
	}
}

// WithClock sets the time source used for the license year.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.now = now
		}
	}
}

// WithXMLBaseDir sets the directory searched for XML comment files.
// It defaults to the directory of the running executable.
func WithXMLBaseDir(dir string) Option {
	return func(g *Generator) {
		if dir != "" {
			g.xmlBaseDir = dir
		}
	}
}

// WithXMLPatterns replaces the file name fragments that select XML comment
// files; see [xmldoc.DefaultPatterns].
func WithXMLPatterns(patterns ...string) Option {
	return func(g *Generator) {
		g.xmlPatterns = patterns
	}
}

func defaultGenerator() *Generator {
	return &Generator{
		log:         logrus.StandardLogger(),
		now:         time.Now,
		xmlBaseDir:  xmldoc.BaseDir(),
		xmlPatterns: xmldoc.DefaultPatterns,
	}
}
