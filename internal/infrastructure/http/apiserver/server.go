// Package apiserver provides the pure JSON API HTTP server
package apiserver

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/savorly/engine/internal/infrastructure/config"
	"github.com/savorly/engine/internal/infrastructure/http/handlers"
	"github.com/savorly/engine/internal/infrastructure/http/middleware"
	"github.com/savorly/engine/internal/infrastructure/monitoring"
	"github.com/savorly/engine/internal/infrastructure/security"
	"github.com/savorly/engine/internal/ports/inbound"
	"go.uber.org/zap"
)

// APIServer serves the engine's JSON API
type APIServer struct {
	config                *config.Config
	logger                *zap.Logger
	server                *http.Server
	router                *chi.Mux
	recommendationService inbound.RecommendationService
	engagementService     inbound.EngagementService
	authService           *security.AuthService
	metrics               *monitoring.Metrics
}

// NewAPIServer creates a new API server instance
func NewAPIServer(
	cfg *config.Config,
	log *zap.Logger,
	recommendationService inbound.RecommendationService,
	engagementService inbound.EngagementService,
	authService *security.AuthService,
	metrics *monitoring.Metrics,
) *APIServer {
	server := &APIServer{
		config:                cfg,
		logger:                log,
		recommendationService: recommendationService,
		engagementService:     engagementService,
		authService:           authService,
		metrics:               metrics,
	}

	server.router = server.setupRoutes()
	server.server = &http.Server{
		Addr:           fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:        server.router,
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	return server
}

// setupRoutes configures the JSON API routes
func (s *APIServer) setupRoutes() *chi.Mux {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.Security())
	if s.config.Server.EnableCORS {
		r.Use(middleware.CORS())
	}
	r.Use(chimiddleware.Timeout(30 * time.Second))
	r.Use(chimiddleware.Compress(5))
	r.Use(middleware.JSONOnly())
	if s.config.Monitoring.EnableMetrics {
		r.Use(s.metrics.HTTPMiddleware)
	}

	r.Get(s.config.Monitoring.HealthCheckPath, s.handleHealthCheck)
	if s.config.Monitoring.EnableMetrics {
		r.Method("GET", s.config.Monitoring.MetricsPath, s.metrics.Handler())
	}

	r.Route("/api/v1", func(r chi.Router) {
		s.setupAPIV1Routes(r)
	})

	return r
}

// setupAPIV1Routes configures API v1 endpoints
func (s *APIServer) setupAPIV1Routes(r chi.Router) {
	recH := handlers.NewRecommendationHandlers(s.recommendationService, s.logger)
	engH := handlers.NewEngagementHandlers(s.engagementService, s.logger)

	r.Group(func(r chi.Router) {
		r.Use(middleware.AuthenticateAPI(s.authService))

		r.Route("/recommendations", func(r chi.Router) {
			r.Get("/", recH.GetRecommendations)
			r.Get("/recipe/{id}", recH.GetRecipeDetail)
			r.Post("/swipe", engH.RecordSwipe)
		})

		r.Route("/achievements", func(r chi.Router) {
			r.Get("/", engH.ListAchievements)
			r.Post("/check", engH.CheckAchievements)
			r.Get("/progress", engH.GetProgress)
		})

		r.Route("/profile", func(r chi.Router) {
			r.Get("/meal-history", engH.MealHistory)
			r.Post("/meal-history", engH.AddMealEntry)
		})
	})
}

// Start starts the API HTTP server
func (s *APIServer) Start() error {
	s.logger.Info("Starting JSON API server",
		zap.String("address", s.server.Addr),
	)
	return s.server.ListenAndServe()
}

// Server returns the underlying HTTP server instance
func (s *APIServer) Server() *http.Server {
	return s.server
}

// Shutdown gracefully shuts down the API server
func (s *APIServer) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down API server...")
	return s.server.Shutdown(ctx)
}

// handleHealthCheck provides the health check endpoint
func (s *APIServer) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","service":"savorly-engine","version":"%s","timestamp":%d}`,
		s.config.App.Version, time.Now().Unix())
}
