package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/zapponejosh/zodiac-api/internal/config"
)

// SetupRoutes configures all HTTP routes and returns the router.
//
// Route structure:
//
//	GET    /health                          database ping and cache stats
//	GET    /api/v1/signs/{date}             sign of a YYYY-MM-DD date
//	GET    /api/v1/boundaries/{year}        lunar new year boundary of a year
//	GET    /api/v1/compatibility?a=&b=      compatibility of two dates
//	POST   /api/v1/analyses                 analyze one or two dates, record history
//	GET    /api/v1/history                  caller's history (API key)
//	GET    /api/v1/history/{id}             one history entry (API key)
//	DELETE /api/v1/history                  clear caller's history (API key)
func SetupRoutes(handlers *Handlers, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(ChainMiddleware(
		RequestIDMiddleware(),
		RecoveryMiddleware(logger),
		LoggingMiddleware(logger),
		CORSMiddleware(),
	))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		WriteNotFound(w, "Route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, http.StatusMethodNotAllowed, "Method not allowed", "METHOD_NOT_ALLOWED")
	})

	r.Get("/health", handlers.HealthCheck)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Get("/signs/{date}", handlers.GetSign)
		r.Get("/boundaries/{year}", handlers.GetBoundary)
		r.Get("/compatibility", handlers.GetCompatibility)
		r.Post("/analyses", handlers.CreateAnalysis)

		// History routes (authenticated)
		r.Group(func(r chi.Router) {
			r.Use(AuthMiddleware(cfg, logger))
			r.Get("/history", handlers.GetHistory)
			r.Get("/history/{id}", handlers.GetHistoryEntry)
			r.Delete("/history", handlers.ClearHistory)
		})
	})

	return r
}
