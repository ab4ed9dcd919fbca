package insight

import (
	"errors"
	"time"
)

const (
	// DefaultBaseURL is Gemini's OpenAI compatibility endpoint.
	DefaultBaseURL = "https://generativelanguage.googleapis.com/v1beta/openai/"
	// DefaultModel is the completion model used for analysis and chat.
	DefaultModel = "gemini-1.5-flash"

	defaultTimeout    = 30 * time.Second
	defaultMaxRetries = 2
)

// Config holds the upstream text-generation settings.
type Config struct {
	APIKey     string
	BaseURL    string
	Model      string
	Timeout    time.Duration
	MaxRetries int
}

// Validate fills defaults and rejects unusable settings. An empty APIKey is
// allowed so the server can start without the feature; calls will fail with
// ErrNotConfigured instead.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("insight: config cannot be nil")
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = defaultMaxRetries
	}
	return nil
}
