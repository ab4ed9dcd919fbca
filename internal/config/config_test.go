package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"ENV", "PORT", "DATA_FILE", "GEMINI_API_KEY", "GEMINI_BASE_URL", "GEMINI_MODEL", "GEMINI_TIMEOUT", "REDIS_URI", "ALLOWED_ORIGINS", "FRONTEND_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "data.json", cfg.DataFile)
	assert.Empty(t, cfg.GeminiAPIKey)
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ENV", "Production")
	t.Setenv("PORT", "8080")
	t.Setenv("DATA_FILE", "/var/lib/mindwell/data.json")
	t.Setenv("GEMINI_API_KEY", "secret")
	t.Setenv("GEMINI_TIMEOUT", "10s")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com, https://www.example.com")

	cfg := Load()

	assert.Equal(t, "production", cfg.Environment)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "/var/lib/mindwell/data.json", cfg.DataFile)
	assert.Equal(t, "secret", cfg.GeminiAPIKey)
	assert.Equal(t, 10*time.Second, cfg.GeminiTimeout)
	assert.Equal(t, []string{"https://app.example.com", "https://www.example.com"}, cfg.AllowedOrigins)
}

func TestOriginsFallBackToFrontendURL(t *testing.T) {
	t.Setenv("ALLOWED_ORIGINS", "")
	t.Setenv("FRONTEND_URL", "https://frontend.example.com")

	cfg := Load()
	assert.Equal(t, []string{"https://frontend.example.com"}, cfg.AllowedOrigins)
}

func TestInvalidTimeoutIgnored(t *testing.T) {
	t.Setenv("GEMINI_TIMEOUT", "soon")
	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.GeminiTimeout)
}

func TestParseOrigins(t *testing.T) {
	assert.Nil(t, parseOrigins(""))
	assert.Equal(t, []string{"a", "b"}, parseOrigins("a, b,"))
}
