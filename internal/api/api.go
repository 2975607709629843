// Package api exposes the slug engine and the claim registry over HTTP.
package api

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/dmitrymomot/slugkit/pkg/registry"
	"github.com/dmitrymomot/slugkit/pkg/slug"
)

// Registry is the part of *registry.Registry the API needs.
type Registry interface {
	Claim(ctx context.Context, req registry.Request) (registry.Claim, error)
	Lookup(ctx context.Context, s slug.Slug) (registry.Claim, error)
	Release(ctx context.Context, s slug.Slug, owner string) error
	Parse(text string) (slug.Slug, error)
}

type api struct {
	reg  Registry
	opts *options
}

// New builds the HTTP handler.
//
// Routes:
//
//	POST   /v1/slugs/generate
//	POST   /v1/slugs/parse
//	POST   /v1/slugs/truncate
//	POST   /v1/slugs/make
//	POST   /v1/claims
//	GET    /v1/claims/{slug}
//	DELETE /v1/claims/{slug}?owner=
//	GET    /health/live
//	GET    /health/ready
//	GET    /metrics (when WithMetrics is given)
func New(reg Registry, opts ...Option) http.Handler {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	a := &api{reg: reg, opts: o}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(a.logRequests)
	r.Use(a.recoverPanics)
	if o.metrics != nil {
		r.Use(o.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", o.metrics.Handler())
	}

	r.NotFound(a.handle(func(http.ResponseWriter, *http.Request) error {
		return &httpError{Code: http.StatusNotFound, Message: "route not found"}
	}))
	r.MethodNotAllowed(a.handle(func(http.ResponseWriter, *http.Request) error {
		return &httpError{Code: http.StatusMethodNotAllowed, Message: "method not allowed"}
	}))

	r.Get("/health/live", liveness)
	r.Get("/health/ready", a.readiness)

	r.Route("/v1", func(r chi.Router) {
		r.Use(middleware.AllowContentType("application/json"))

		r.Route("/slugs", func(r chi.Router) {
			r.Post("/generate", a.handle(a.generate))
			r.Post("/parse", a.handle(a.parse))
			r.Post("/truncate", a.handle(a.truncate))
			r.Post("/make", a.handle(a.makeSlug))
		})

		r.Post("/claims", a.handle(a.createClaim))
		r.Get("/claims/{slug}", a.handle(a.getClaim))
		r.Delete("/claims/{slug}", a.handle(a.deleteClaim))
	})

	return r
}
