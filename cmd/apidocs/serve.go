package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Gobd/apidocs"
	"github.com/Gobd/apidocs/internal/config"
	"github.com/Gobd/apidocs/internal/metrics"
)

const shutdownTimeout = 10 * time.Second

var serveWatch bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation server",
	Long: `Start the HTTP server for the configured API versions.

With --watch the config file is watched and the documents are rebuilt
whenever it changes. The listen address and rate limit are only read at
startup.

Examples:
  apidocs serve
  apidocs serve --config ./config.yaml --watch
  APIDOCS_SERVER_ADDRESS=:9000 apidocs serve`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		m, logger, err := loadConfig()
		if err != nil {
			return err
		}
		cfg := m.Get()

		var mc *metrics.HTTP
		if cfg.Server.Metrics {
			mc = metrics.NewHTTP()
		}

		docsHandler, err := newDocsHandler(ctx, cfg, logger)
		if err != nil {
			return err
		}
		sw := &swapHandler{}
		sw.Store(docsHandler)

		if serveWatch {
			m.OnChange(func(next *config.Config) {
				if lvl, err := logrus.ParseLevel(next.Log.Level); err == nil {
					logger.SetLevel(lvl)
				}
				if next.Server.Address != cfg.Server.Address {
					logger.WithField("address", next.Server.Address).Warn("server address changes need a restart")
				}
				if next.Server.RateLimit != cfg.Server.RateLimit {
					logger.WithField("rate_limit", next.Server.RateLimit).Warn("rate limit changes need a restart")
				}
				h, err := newDocsHandler(ctx, next, logger)
				if err != nil {
					logger.WithError(err).Error("rebuilding api documents, keeping previous ones")
					return
				}
				sw.Store(h)
			})
			m.WatchConfig()
		}

		srv := &http.Server{
			Addr:              cfg.Server.Address,
			Handler:           newRouter(sw, mc, cfg.Server.RateLimit),
			ReadHeaderTimeout: 10 * time.Second,
		}
		return runServer(ctx, srv, logger)
	},
}

func init() {
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "rebuild documents when the config file changes")
}

// swapHandler serves the most recently stored handler.
type swapHandler struct {
	h atomic.Pointer[http.Handler]
}

func (s *swapHandler) Store(h http.Handler) {
	s.h.Store(&h)
}

func (s *swapHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	(*s.h.Load()).ServeHTTP(w, r)
}

// newRouter wires the parts that survive a config reload around docs.
// rateLimit is requests per minute per client IP; 0 disables limiting.
func newRouter(docs http.Handler, mc *metrics.HTTP, rateLimit int) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if rateLimit > 0 {
		r.Use(httprate.LimitByIP(rateLimit, time.Minute))
	}
	if mc != nil {
		r.Use(mc.Middleware)
		r.Method(http.MethodGet, "/metrics", mc.Handler())
	}
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Mount("/", docs)
	return r
}

// newDocsHandler builds the documents for cfg and the routes serving them.
func newDocsHandler(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (http.Handler, error) {
	docs, provider, err := buildDocs(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	if err := apidocs.UseCustomSwaggerUI(r, docs, cfg.Server.EndpointPrefix, provider); err != nil {
		return nil, fmt.Errorf("mounting documentation routes: %w", err)
	}
	return r, nil
}

func runServer(ctx context.Context, srv *http.Server, logger logrus.FieldLogger) error {
	errCh := make(chan error, 1)
	go func() {
		logger.WithField("address", srv.Addr).Info("documentation server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down documentation server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return <-errCh
}
