// Package httptransport is the local trigger and inspection surface: thin
// handlers over the wallet, check-in and submission components.
package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/d4rken/cwa-app-android/internal/platform/metrics"
	"github.com/d4rken/cwa-app-android/internal/platform/middleware"
	"github.com/d4rken/cwa-app-android/pkg/platform/httputil"
)

const requestTimeout = 60 * time.Second

// Registrar mounts a group of routes.
type Registrar interface {
	Register(r chi.Router)
}

type routerConfig struct {
	tokens middleware.TokenValidator
}

type RouterOption func(*routerConfig)

// WithTokenValidator requires a bearer token on every mutating /v1 request.
func WithTokenValidator(v middleware.TokenValidator) RouterOption {
	return func(c *routerConfig) {
		c.tokens = v
	}
}

// NewRouter builds the middleware chain and mounts every registrar under /v1.
func NewRouter(logger *slog.Logger, m *metrics.Metrics, registrars []Registrar, opts ...RouterOption) http.Handler {
	var cfg routerConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recovery(logger, m))
	r.Use(middleware.ClientMetadata)
	r.Use(middleware.RequestTime)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Latency(m))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1", func(v1 chi.Router) {
		v1.Use(middleware.Timeout(requestTimeout))
		if cfg.tokens != nil {
			v1.Use(middleware.RequireToken(cfg.tokens, logger))
		}
		for _, reg := range registrars {
			reg.Register(v1)
		}
	})
	return r
}
