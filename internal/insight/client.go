package insight

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// Errors surfaced by the gateway. ErrNotConfigured and
// ErrUpstreamUnavailable mean the external capability cannot serve the
// request; the others reject invalid input.
var (
	ErrNotConfigured       = errors.New("insight: API key not configured")
	ErrUpstreamUnavailable = errors.New("insight: upstream unavailable")
	ErrContentRequired     = errors.New("insight: entry content is required")
	ErrMessageRequired     = errors.New("insight: message is required")
)

const (
	analyzeMaxTokens = 300
	chatMaxTokens    = 250
	temperature      = 0.7
)

// AnalyzeRequest carries the entry fields sent for analysis.
type AnalyzeRequest struct {
	Content    string
	Mood       string
	Activities string
}

// Analysis is the gateway's result for one entry.
type Analysis struct {
	Insights        string
	Recommendations []string
}

// Client talks to the external text-generation capability through its
// OpenAI-compatible endpoint.
type Client struct {
	cfg          *Config
	openaiClient *openai.Client
	retryHandler *RetryHandler
}

// ClientOption configures optional client behaviour.
type ClientOption func(*clientOptions)

type clientOptions struct {
	retry        *RetryHandler
	httpClient   *http.Client
	openaiClient *openai.Client
}

// WithRetryHandler injects a custom retry handler.
func WithRetryHandler(handler *RetryHandler) ClientOption {
	return func(opts *clientOptions) {
		opts.retry = handler
	}
}

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) ClientOption {
	return func(opts *clientOptions) {
		opts.httpClient = client
	}
}

// WithOpenAIClient injects a pre-configured OpenAI client (primarily for
// testing).
func WithOpenAIClient(client *openai.Client) ClientOption {
	return func(opts *clientOptions) {
		opts.openaiClient = client
	}
}

// NewClient constructs a gateway client from the configuration.
func NewClient(cfg *Config, opts ...ClientOption) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("insight: config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	optState := clientOptions{}
	for _, opt := range opts {
		opt(&optState)
	}

	retryHandler := optState.retry
	if retryHandler == nil {
		retryHandler = NewRetryHandler(RetryConfig{MaxRetries: cfg.MaxRetries})
	}

	var oaClient *openai.Client
	if optState.openaiClient != nil {
		oaClient = optState.openaiClient
	} else {
		oaOpts := []option.RequestOption{
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.BaseURL),
		}
		if cfg.Timeout > 0 {
			oaOpts = append(oaOpts, option.WithRequestTimeout(cfg.Timeout))
		}
		if optState.httpClient != nil {
			oaOpts = append(oaOpts, option.WithHTTPClient(optState.httpClient))
		}
		clientVal := openai.NewClient(oaOpts...)
		oaClient = &clientVal
	}

	return &Client{
		cfg:          cfg,
		openaiClient: oaClient,
		retryHandler: retryHandler,
	}, nil
}

// Configured reports whether an API key is available.
func (c *Client) Configured() bool {
	return c.cfg.APIKey != ""
}

// AnalyzeEntry requests a free-form analysis of one journal entry and
// extracts the recommendation lines from it.
func (c *Client) AnalyzeEntry(ctx context.Context, req AnalyzeRequest) (*Analysis, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, ErrContentRequired
	}

	text, err := c.complete(ctx, analyzeSystemPrompt,
		buildAnalyzePrompt(req.Content, req.Mood, req.Activities), analyzeMaxTokens)
	if err != nil {
		return nil, err
	}

	return &Analysis{
		Insights:        text,
		Recommendations: ExtractRecommendations(text),
	}, nil
}

// Chat sends a single-turn conversational message. There is no server-side
// conversation memory; contextNote is the caller's summary of prior turns.
func (c *Client) Chat(ctx context.Context, message, contextNote string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", ErrMessageRequired
	}
	return c.complete(ctx, buildChatSystemPrompt(contextNote), message, chatMaxTokens)
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int64) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}

	params := openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.cfg.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(userPrompt),
		},
		MaxTokens:   openai.Int(maxTokens),
		Temperature: openai.Float(temperature),
	}

	var completion *openai.ChatCompletion
	err := c.retryHandler.Do(ctx, func() error {
		resp, callErr := c.openaiClient.Chat.Completions.New(ctx, params)
		if callErr != nil {
			return callErr
		}
		completion = resp
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("%w: empty completion", ErrUpstreamUnavailable)
	}
	return completion.Choices[0].Message.Content, nil
}
