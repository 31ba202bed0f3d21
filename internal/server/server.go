// Package server assembles the HTTP handler: middleware stack, huma API and routes.
package server

import (
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/janisto/hello-world-api/internal/http/routes"
	applog "github.com/janisto/hello-world-api/internal/platform/logging"
	"github.com/janisto/hello-world-api/internal/platform/metrics"
	appmiddleware "github.com/janisto/hello-world-api/internal/platform/middleware"
	"github.com/janisto/hello-world-api/internal/platform/respond"
)

const (
	// Title is the OpenAPI title.
	Title = "Hello World API"
	// DocsPath serves the interactive API reference.
	DocsPath = "/api-docs"
	// MetricsPath serves Prometheus metrics when enabled.
	MetricsPath = "/metrics"

	maxBodyBytes = 1 << 20
	// greetingPrefix precedes the name parameter, whose case is kept.
	greetingPrefix = "/api/greeting/"
)

// Options configures New.
type Options struct {
	Version     string
	StartedAt   time.Time
	CORSOrigins []string
	// Metrics enables request metrics and MetricsPath when non-nil.
	Metrics *metrics.Metrics
}

// New returns the router serving every endpoint plus the catch-all 404.
func New(opts Options) http.Handler {
	respond.Install()

	if opts.StartedAt.IsZero() {
		opts.StartedAt = time.Now()
	}

	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	// A known path with the wrong method is still an unmatched route.
	router.MethodNotAllowed(respond.NotFoundHandler())

	stack := []func(http.Handler) http.Handler{
		appmiddleware.Security(DocsPath),
		appmiddleware.Vary(),
		appmiddleware.CORS(opts.CORSOrigins...),
		appmiddleware.RequestID(),
		// RealIP trusts X-Forwarded-For; only run behind a trusted proxy.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(maxBodyBytes),
		// Express-style routing: letter case and a trailing slash are
		// ignored, and GET routes answer HEAD.
		appmiddleware.CaseInsensitivePaths(greetingPrefix),
		chimiddleware.StripSlashes,
		chimiddleware.GetHead,
		applog.RequestLogger(),
		applog.AccessLogger(),
	}
	if opts.Metrics != nil {
		stack = append(stack, opts.Metrics.Middleware)
	}
	router.Use(append(stack, respond.Recoverer())...)
	if opts.Metrics != nil {
		router.Method(http.MethodGet, MetricsPath, opts.Metrics.Handler())
	}

	cfg := huma.DefaultConfig(Title, opts.Version)
	cfg.DocsPath = DocsPath
	// Drop the $schema link hook so bodies carry exactly the documented fields.
	cfg.CreateHooks = nil
	humaAPI := humachi.New(router, cfg)
	addCBORContent(humaAPI)

	routes.Register(humaAPI, opts.StartedAt)
	return router
}

// addCBORContent advertises application/cbor next to every JSON body in the OpenAPI document.
func addCBORContent(humaAPI huma.API) {
	humaAPI.OpenAPI().OnAddOperation = append(humaAPI.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)
}
