package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/eventhive/events-service/internal/httpserver/handlers"
	"github.com/eventhive/events-service/internal/httpserver/middleware"
)

// setupRouter configures the Chi router with all routes and middleware.
func (s *Server) setupRouter() chi.Router {
	r := chi.NewRouter()

	// Core middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(s.logger))
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))

	// CORS configuration
	r.Use(s.corsMiddleware())

	// Health check
	r.Get("/health", handlers.Health)
	r.Get("/api/v1/health", handlers.Health)

	// Event endpoints
	r.Route("/api/v1/events", func(r chi.Router) {
		r.Post("/", handlers.CreateEvent)
		r.Get("/", handlers.ListEvents)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetEvent)
			r.Put("/", handlers.EditEvent)
			r.Post("/sections", handlers.AddSection)
			r.Post("/payment", handlers.StartPayment)
			r.Post("/publish", handlers.PublishEvent)
			r.Post("/start", handlers.StartEvent)
			r.Post("/finish", handlers.FinishEvent)
			r.Post("/cancel", handlers.CancelEvent)
		})
	})

	return r
}

// corsMiddleware returns configured CORS middleware.
func (s *Server) corsMiddleware() func(http.Handler) http.Handler {
	allowedOrigins := s.config.CORSOrigins
	if len(allowedOrigins) == 0 {
		// Default: same-origin only (no CORS headers sent)
		allowedOrigins = []string{}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	})
}
