package insight

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/require"
)

func completionJSON(content string) string {
	body := map[string]any{
		"id":      "cmpl-test",
		"object":  "chat.completion",
		"created": 1700000000,
		"model":   DefaultModel,
		"choices": []map[string]any{
			{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": content},
				"finish_reason": "stop",
			},
		},
	}
	data, _ := json.Marshal(body)
	return string(data)
}

// newTestClient points a client at an httptest upstream with SDK-internal
// retries disabled so failure tests stay fast.
func newTestClient(t *testing.T, upstream *httptest.Server) *Client {
	t.Helper()
	oa := openai.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(upstream.URL+"/"),
		option.WithMaxRetries(0),
	)
	client, err := NewClient(
		&Config{APIKey: "test-key", BaseURL: upstream.URL + "/"},
		WithOpenAIClient(&oa),
		WithRetryHandler(NewRetryHandler(RetryConfig{MaxRetries: 0})),
	)
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := NewClient(nil)
	require.Error(t, err)

	client, err := NewClient(&Config{})
	require.NoError(t, err)
	require.False(t, client.Configured())

	client, err = NewClient(&Config{APIKey: "k"})
	require.NoError(t, err)
	require.True(t, client.Configured())
}

func TestAnalyzeEntryNotConfigured(t *testing.T) {
	client, err := NewClient(&Config{})
	require.NoError(t, err)

	_, err = client.AnalyzeEntry(context.Background(), AnalyzeRequest{Content: "hello"})
	require.ErrorIs(t, err, ErrNotConfigured)
}

func TestAnalyzeEntryRequiresContent(t *testing.T) {
	client, err := NewClient(&Config{APIKey: "k"})
	require.NoError(t, err)

	_, err = client.AnalyzeEntry(context.Background(), AnalyzeRequest{Content: "  "})
	require.ErrorIs(t, err, ErrContentRequired)
}

func TestChatRequiresMessage(t *testing.T) {
	client, err := NewClient(&Config{APIKey: "k"})
	require.NoError(t, err)

	_, err = client.Chat(context.Background(), "", "")
	require.ErrorIs(t, err, ErrMessageRequired)
}

func TestAnalyzeEntry(t *testing.T) {
	var (
		mu       sync.Mutex
		lastPath string
		lastBody []byte
	)
	analysis := "You sound stressed.\nMaybe consider a walk.\nAlso try journaling nightly."
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastPath = r.URL.Path
		lastBody, _ = io.ReadAll(r.Body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON(analysis))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	got, err := client.AnalyzeEntry(context.Background(), AnalyzeRequest{
		Content: "long day, too many meetings",
		Mood:    "tired",
	})
	require.NoError(t, err)
	require.Equal(t, analysis, got.Insights)
	require.Equal(t, []string{"Maybe consider a walk.", "Also try journaling nightly."}, got.Recommendations)

	mu.Lock()
	defer mu.Unlock()
	require.True(t, strings.HasSuffix(lastPath, "/chat/completions"))

	var req struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	require.NoError(t, json.Unmarshal(lastBody, &req))
	require.Equal(t, DefaultModel, req.Model)
	require.Equal(t, analyzeMaxTokens, req.MaxTokens)
	require.Len(t, req.Messages, 2)
	require.Equal(t, "system", req.Messages[0].Role)
	require.Contains(t, req.Messages[1].Content, "long day, too many meetings")
	require.Contains(t, req.Messages[1].Content, "Mood: tired")
	require.Contains(t, req.Messages[1].Content, "Activities: Not specified")
}

func TestChat(t *testing.T) {
	var (
		mu       sync.Mutex
		lastBody []byte
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastBody, _ = io.ReadAll(r.Body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("Take a deep breath. You are doing fine."))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	reply, err := client.Chat(context.Background(), "I feel overwhelmed", "user has been stressed all week")
	require.NoError(t, err)
	require.Equal(t, "Take a deep breath. You are doing fine.", reply)

	mu.Lock()
	defer mu.Unlock()
	var req struct {
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
		MaxTokens int `json:"max_tokens"`
	}
	require.NoError(t, json.Unmarshal(lastBody, &req))
	require.Equal(t, chatMaxTokens, req.MaxTokens)
	require.Contains(t, req.Messages[0].Content, "Context: user has been stressed all week")
	require.Equal(t, "I feel overwhelmed", req.Messages[1].Content)
}

func TestChatDefaultContext(t *testing.T) {
	var (
		mu       sync.Mutex
		lastBody []byte
	)
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		lastBody, _ = io.ReadAll(r.Body)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, completionJSON("ok"))
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.Chat(context.Background(), "hi", "")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	var req struct {
		Messages []struct {
			Content string `json:"content"`
		} `json:"messages"`
	}
	require.NoError(t, json.Unmarshal(lastBody, &req))
	require.Contains(t, req.Messages[0].Content, "Context: General wellness conversation")
}

func TestUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"internal"}`, http.StatusInternalServerError)
	}))
	defer upstream.Close()

	client := newTestClient(t, upstream)

	_, err := client.AnalyzeEntry(context.Background(), AnalyzeRequest{Content: "hello"})
	require.ErrorIs(t, err, ErrUpstreamUnavailable)

	_, err = client.Chat(context.Background(), "hello", "")
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
}
