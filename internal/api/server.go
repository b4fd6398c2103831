// Package api provides the HTTP API server and handlers for the PainMap application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/painmapapp/painmap-server/internal/config"
	"github.com/painmapapp/painmap-server/internal/sse"
	"github.com/painmapapp/painmap-server/internal/store"
)

// Version is the API version reported by the health endpoint.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store      *store.Store
	services   *Services
	router     *chi.Mux
	api        huma.API
	logger     *slog.Logger
	sseHandler *sse.Handler
	limiter    *RateLimiter
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st *store.Store, services *Services, sseHandler *sse.Handler, cfg *config.Config, logger *slog.Logger) *Server {
	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Compress(5))
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "Last-Event-ID"},
		MaxAge:         300,
	}))

	s := &Server{
		store:      st,
		services:   services,
		router:     router,
		logger:     logger,
		sseHandler: sseHandler,
	}

	if cfg.Limits.Enabled {
		s.limiter = NewRateLimiter(cfg.Limits.MutationsPerSecond, cfg.Limits.MutationBurst)
		router.Use(mutationLimitMiddleware(s.limiter, logger))
	}

	humaConfig := huma.DefaultConfig(cfg.Server.Name, Version)
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerPinRoutes()
	s.registerMarkRoutes()
	s.registerMemoRoutes()
	s.registerBakeryRoutes()
	s.registerFilterRoutes()

	// The SSE stream bypasses huma: it writes raw text/event-stream frames.
	router.Get("/api/v1/events", s.sseHandler.ServeHTTP)

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-owned resources.
func (s *Server) Close() {
	if s.limiter != nil {
		s.limiter.Stop()
	}
}
