// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api assembles the catalogue HTTP server: the middleware chain, the
probe and metrics endpoints and the /api/v1 route groups.

Route map:

	GET  /health, /ready, /metrics
	     /api/v1/inscriptions  search, autocomplete, summary, export.csv
	     /api/v1/panels        panels and rooms
	     /api/v1/images        images and IIIF dimension refresh
	     /api/v1/...           vocabularies, persons, authors, bibliography
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/sophia/internal/image"
	"github.com/taibuivan/sophia/internal/inscription"
	"github.com/taibuivan/sophia/internal/panel"
	"github.com/taibuivan/sophia/internal/platform/apperr"
	"github.com/taibuivan/sophia/internal/platform/config"
	"github.com/taibuivan/sophia/internal/platform/constants"
	"github.com/taibuivan/sophia/internal/platform/metrics"
	"github.com/taibuivan/sophia/internal/platform/middleware"
	"github.com/taibuivan/sophia/internal/platform/respond"
	"github.com/taibuivan/sophia/internal/reference"
)

// Server owns the router and the listening [http.Server].
type Server struct {
	httpServer *http.Server
	log        *slog.Logger
}

// Handlers are the endpoint groups mounted by [NewServer].
type Handlers struct {
	Liveness  http.HandlerFunc
	Readiness http.HandlerFunc

	Inscription *inscription.Handler
	Panel       *panel.Handler
	Image       *image.Handler
	Reference   *reference.Handler
}

/*
NewServer builds the router.

ctx scopes background middleware work (rate limiter eviction) and should be
cancelled after [Server.Shutdown].
*/
func NewServer(ctx context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, recorder *metrics.Metrics, h Handlers) *Server {
	router := chi.NewRouter()

	// # Middleware Chain
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(log))
	router.Use(recorder.Middleware)
	router.Use(middleware.PanicRecovery())
	router.Use(timeoutExceptDownloads(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(ctx, middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.Authenticate(verifier))
	router.Use(chimw.CleanPath)

	router.NotFound(func(writer http.ResponseWriter, request *http.Request) {
		respond.Error(writer, request, apperr.NotFound("Route"))
	})
	router.MethodNotAllowed(func(writer http.ResponseWriter, request *http.Request) {
		respond.JSON(writer, http.StatusMethodNotAllowed, respond.ErrorEnvelope{
			Error: request.Method + " is not allowed here",
			Code:  "METHOD_NOT_ALLOWED",
		})
	})

	// # Probes
	router.Get("/health", h.Liveness)
	router.Get("/ready", h.Readiness)
	router.Handle("/metrics", recorder.Handler())

	// # Catalogue
	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/inscriptions", h.Inscription.Routes())
		api.Mount("/panels", h.Panel.Routes())
		api.Mount("/images", h.Image.Routes())
		api.Mount("/", h.Reference.Routes())
	})

	return &Server{
		log: log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           router,
			ReadTimeout:       constants.DefaultReadTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
		},
	}
}

// timeoutExceptDownloads applies the request deadline to JSON endpoints.
// CSV downloads stream for as long as the export takes.
func timeoutExceptDownloads(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		limited := chimw.Timeout(timeout)(next)
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			if strings.HasSuffix(request.URL.Path, ".csv") {
				next.ServeHTTP(writer, request)
				return
			}
			limited.ServeHTTP(writer, request)
		})
	}
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// ListenAndServe blocks until the server stops.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown waits up to timeout for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
