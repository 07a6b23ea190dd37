// Package api provides the HTTP API server and handlers for the DirectStay directory.
package api

import (
	"log/slog"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/directstay/directstay-server/internal/ratelimit"
	"github.com/directstay/directstay-server/internal/store"
)

// Version is the API contract version reported in response envelopes.
const Version = "1.0.0"

// Server holds dependencies for HTTP handlers.
type Server struct {
	store         store.SubmissionStore
	services      *Services
	router        *chi.Mux
	api           huma.API
	logger        *slog.Logger
	adminToken    string
	submitLimiter *ratelimit.KeyedRateLimiter
}

// Options configures server behavior beyond its service dependencies.
type Options struct {
	// AdminToken authorizes the admin review endpoints. Empty disables them.
	AdminToken string
	// SubmitRPS limits public submission creation per client IP.
	SubmitRPS   float64
	SubmitBurst int
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(st store.SubmissionStore, services *Services, opts Options, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	s := &Server{
		store:         st,
		services:      services,
		router:        router,
		logger:        logger,
		adminToken:    opts.AdminToken,
		submitLimiter: ratelimit.New(opts.SubmitRPS, opts.SubmitBurst),
	}

	s.setupMiddleware()

	humaConfig := huma.DefaultConfig("DirectStay API", Version)
	humaConfig.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {
			Type:   "http",
			Scheme: "bearer",
		},
	}
	humaConfig.Transformers = append(humaConfig.Transformers, EnvelopeTransformer)

	s.api = humachi.New(router, humaConfig)
	RegisterErrorHandler()

	s.registerHealthRoutes()
	s.registerSubmissionRoutes()
	s.registerDirectoryRoutes()
	s.registerAdminRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	s.router.Use(SubmitRateLimit(s.submitLimiter, s.logger))
}
