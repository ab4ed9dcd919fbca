package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port           string
	Environment    string // ENV: production, development, etc.
	DataFile       string // Path of the JSON entry store
	GeminiAPIKey   string // API key for the Gemini OpenAI-compat endpoint
	GeminiBaseURL  string // Override for the upstream base URL
	GeminiModel    string // Override for the completion model
	GeminiTimeout  time.Duration
	RedisURI       string // Optional; enables rate limiting when set
	FrontendURL    string
	AllowedOrigins []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		if u := strings.TrimSpace(getEnv("FRONTEND_URL", "")); u != "" {
			allowedOrigins = append(allowedOrigins, u)
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	timeout := 30 * time.Second
	if v := strings.TrimSpace(getEnv("GEMINI_TIMEOUT", "")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	return &Config{
		Port:           getEnv("PORT", "3000"),
		Environment:    env,
		DataFile:       getEnv("DATA_FILE", "data.json"),
		GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		GeminiBaseURL:  getEnv("GEMINI_BASE_URL", ""),
		GeminiModel:    getEnv("GEMINI_MODEL", ""),
		GeminiTimeout:  timeout,
		RedisURI:       getEnv("REDIS_URI", ""),
		FrontendURL:    getEnv("FRONTEND_URL", "http://localhost:3000"),
		AllowedOrigins: allowedOrigins,
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
