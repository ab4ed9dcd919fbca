package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mindwell/mindwell-backend/internal/handlers"
)

func SetupRoutes(r *chi.Mux) {
	// Journal entry routes
	r.Get("/api/entries", handlers.ListEntries)
	r.Post("/api/entries", handlers.CreateEntry)
	r.Get("/api/entries/date-range/{start}/{end}", handlers.GetEntriesByDateRange)
	r.Get("/api/entries/{id}", handlers.GetEntry)
	r.Put("/api/entries/{id}", handlers.UpdateEntry)
	r.Delete("/api/entries/{id}", handlers.DeleteEntry)

	// Analytics routes
	r.Get("/api/analytics/overview", handlers.GetOverview)
	r.Get("/api/analytics/trends", handlers.GetTrends)
	r.Get("/api/analytics/mood-analysis", handlers.GetMoodAnalysis)
	r.Get("/api/analytics/wellness-distribution", handlers.GetWellnessDistribution)
	r.Get("/api/analytics/patterns", handlers.GetPatterns)
	r.Get("/api/analytics/comparison", handlers.GetComparison)

	// Chatbot routes
	r.Post("/api/chatbot/analyze-entry/{id}", handlers.AnalyzeEntry)
	r.Post("/api/chatbot/chat", handlers.Chat)

	// Unknown routes answer with JSON, not the default text page
	r.NotFound(handlers.NotFound)
}
