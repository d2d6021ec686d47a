package main

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/Gobd/apidocs"
	"github.com/Gobd/apidocs/internal/config"
)

// buildDocs registers one document per configured version and generates them.
func buildDocs(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*apidocs.Docs, apidocs.Provider, error) {
	provider, err := cfg.Provider()
	if err != nil {
		return nil, nil, err
	}

	opts := []apidocs.Option{
		apidocs.WithLogger(logger),
		apidocs.WithXMLBaseDir(cfg.Docs.XMLBaseDir),
	}
	if len(cfg.Docs.XMLPatterns) > 0 {
		opts = append(opts, apidocs.WithXMLPatterns(cfg.Docs.XMLPatterns...))
	}
	g := apidocs.NewGenerator(opts...)
	if err := apidocs.Register(g, provider, cfg.Info); err != nil {
		return nil, nil, fmt.Errorf("registering documents: %w", err)
	}

	docs, err := g.Build(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("building documents: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"documents":    docs.Names(),
		"xml_comments": len(g.XMLCommentPaths()),
	}).Info("api documents built")
	return docs, provider, nil
}
