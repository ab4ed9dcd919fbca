package main

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"

	"github.com/mindwell/mindwell-backend/internal/config"
	"github.com/mindwell/mindwell-backend/internal/database"
	"github.com/mindwell/mindwell-backend/internal/handlers"
	"github.com/mindwell/mindwell-backend/internal/insight"
	"github.com/mindwell/mindwell-backend/internal/middleware"
	"github.com/mindwell/mindwell-backend/internal/routes"
	"github.com/mindwell/mindwell-backend/internal/store"
)

func main() {
	// Load env
	err := godotenv.Load()
	if err != nil {
		log.Println("No .env file found")
	}
	// Load configuration
	cfg := config.Load()

	log.Printf("Environment: %s", cfg.Environment)

	// Open the JSON entry store
	log.Printf("Opening entry store at %s...", cfg.DataFile)
	entryStore, err := store.Open(cfg.DataFile)
	if err != nil {
		log.Fatal("Failed to open entry store:", err)
	}
	log.Println("✅ Entry store ready")

	// Insight gateway (chatbot + entry analysis)
	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  WARNING: GEMINI_API_KEY not set. Entry analysis and chat will be unavailable.")
	}
	insightClient, err := insight.NewClient(&insight.Config{
		APIKey:  cfg.GeminiAPIKey,
		BaseURL: cfg.GeminiBaseURL,
		Model:   cfg.GeminiModel,
		Timeout: cfg.GeminiTimeout,
	})
	if err != nil {
		log.Fatal("Failed to build insight client:", err)
	}
	if insightClient.Configured() {
		log.Println("✅ Insight gateway configured")
	}

	handlers.Init(cfg, entryStore, insightClient)

	// Setup router
	r := chi.NewRouter()

	// CORS: set headers and respond to OPTIONS with 200 so preflight never gets 403
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Production: SecurityHeaders → GlobalRateLimit → ChatbotRateLimit,
	// plus the Redis-backed limiter when Redis is configured
	if cfg.IsProduction() {
		for _, mw := range middleware.ProductionSecurity() {
			r.Use(mw)
		}
		log.Println("✅ Production security enabled (security headers, per-IP + chatbot rate limiting)")
	}
	if cfg.RedisURI != "" {
		log.Printf("Connecting to Redis...")
		if err := database.ConnectRedis(cfg.RedisURI); err != nil {
			log.Printf("⚠️  WARNING: Redis unavailable, rate limiting disabled: %v", err)
		} else {
			defer database.DisconnectRedis()
			r.Use(middleware.RedisRateLimit(database.RedisClient))
		}
	}

	// Health check (no rate limit)
	r.Get("/health", handlers.HealthCheck)

	// Setup routes
	routes.SetupRoutes(r)

	// Log registered routes for debugging
	log.Println("📋 Registered routes:")
	log.Println("  GET    /health")
	log.Println("  GET    /api/entries")
	log.Println("  POST   /api/entries")
	log.Println("  GET    /api/entries/{id}")
	log.Println("  PUT    /api/entries/{id}")
	log.Println("  DELETE /api/entries/{id}")
	log.Println("  GET    /api/entries/date-range/{start}/{end}")
	log.Println("  GET    /api/analytics/overview")
	log.Println("  GET    /api/analytics/trends")
	log.Println("  GET    /api/analytics/mood-analysis")
	log.Println("  GET    /api/analytics/wellness-distribution")
	log.Println("  GET    /api/analytics/patterns")
	log.Println("  GET    /api/analytics/comparison")
	log.Println("  POST   /api/chatbot/analyze-entry/{id}")
	log.Println("  POST   /api/chatbot/chat")

	log.Printf("🚀 Mindwell backend running on :%s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
