package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/upb/llm-router/app"
	"github.com/upb/llm-router/handlers"
	"github.com/upb/llm-router/middleware"
)

// SetupRoutes configures all application routes and middleware
func SetupRoutes(deps *app.Dependencies) http.Handler {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestLogger(deps.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(120 * time.Second))

	// CORS middleware
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:*", "https://*"},
		AllowedMethods: []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	// Health check endpoints
	r.Get("/healthz", handlers.HealthCheck(deps))
	r.Get("/readyz", handlers.ReadinessCheck(deps))

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/chat", handlers.ChatHandler(deps))

		r.Route("/route", func(r chi.Router) {
			r.Post("/preview", handlers.PreviewHandler(deps))
		})

		r.Route("/rules", func(r chi.Router) {
			r.Get("/", handlers.ListRulesHandler(deps))
			r.Post("/", handlers.CreateRuleHandler(deps))
			r.Delete("/{name}", handlers.DeleteRuleHandler(deps))
		})

		r.Route("/models", func(r chi.Router) {
			r.Get("/", handlers.ListModelsHandler(deps))
			r.Get("/cheapest", handlers.GetCheapestModelHandler(deps))
			r.Get("/most-capable", handlers.GetMostCapableModelHandler(deps))
			r.Get("/{id}", handlers.GetModelHandler(deps))
		})

		r.Get("/stats", handlers.StatsHandler(deps))
	})

	return r
}
