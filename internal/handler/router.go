package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vaultpass/passgen-go/internal/metrics"
	"github.com/vaultpass/passgen-go/internal/middleware"
)

// RouterOptions wires the collaborators the router serves.
type RouterOptions struct {
	Generator   PasswordService
	Page        http.Handler
	HTTPMetrics *metrics.HTTP
	// Gatherer backs GET /metrics; nil disables the endpoint.
	Gatherer prometheus.Gatherer
	// RateLimit guards the API routes when RPS is positive.
	RateLimit middleware.RateLimitConfig
}

// NewRouter sets up all routes and middleware. Background work started by
// the middleware stops when ctx is cancelled.
func NewRouter(ctx context.Context, opts RouterOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.Logger)
	r.Use(opts.HTTPMetrics.Handler)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	if opts.Page != nil {
		r.Method(http.MethodGet, "/", opts.Page)
	}

	if opts.Gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}

	genHandler := NewGeneratorHandler(opts.Generator)
	r.Route("/api/v1", func(r chi.Router) {
		if opts.RateLimit.RPS > 0 {
			r.Use(middleware.RateLimit(ctx, opts.RateLimit))
		}
		r.Post("/generate", genHandler.HandleGenerate)
		r.Post("/strength", genHandler.HandleStrength)
	})

	return r
}
