package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mindwell/mindwell-backend/internal/insight"
	"github.com/mindwell/mindwell-backend/internal/store"
)

// AnalyzeEntryRequest optionally overrides the stored entry's fields. When
// content is empty the stored entry is the source of truth.
type AnalyzeEntryRequest struct {
	Content    string `json:"content"`
	Mood       string `json:"mood"`
	Activities string `json:"activities"`
}

// AnalyzedEntry is the insight result for one entry. Persisting it is the
// caller's job (PUT /api/entries/{id}).
type AnalyzedEntry struct {
	ID              string   `json:"id"`
	AIInsights      string   `json:"aiInsights"`
	Recommendations []string `json:"recommendations"`
}

// AnalyzeEntryResponse wraps the analyzed entry.
type AnalyzeEntryResponse struct {
	Entry AnalyzedEntry `json:"entry"`
}

// ChatRequest is a single-turn chatbot message.
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context"`
}

// ChatResponse carries the chatbot reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// AnalyzeEntry forwards one entry to the insight gateway and returns the
// generated insight text and extracted recommendations.
func AnalyzeEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	var req AnalyzeEntryRequest
	if r.Body != nil {
		// An empty or absent body means "analyze the stored entry".
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	if req.Content == "" {
		entry, err := entryStore.Get(entryID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				writeError(w, http.StatusBadRequest, "Entry content is required for analysis", nil)
				return
			}
			writeStoreError(w, err, "Error loading entry")
			return
		}
		req.Content = entry.Content
		if req.Mood == "" {
			req.Mood = entry.Mood
		}
	}

	analysis, err := insightClient.AnalyzeEntry(r.Context(), insight.AnalyzeRequest{
		Content:    req.Content,
		Mood:       req.Mood,
		Activities: req.Activities,
	})
	if err != nil {
		writeInsightError(w, err, "Failed to analyze entry. Please try again later.")
		return
	}

	writeJSON(w, http.StatusOK, AnalyzeEntryResponse{
		Entry: AnalyzedEntry{
			ID:              entryID,
			AIInsights:      analysis.Insights,
			Recommendations: analysis.Recommendations,
		},
	})
}

// Chat forwards a single message to the insight gateway.
func Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	reply, err := insightClient.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		writeInsightError(w, err, "Failed to get chatbot response. Please try again later.")
		return
	}
	writeJSON(w, http.StatusOK, ChatResponse{Response: reply})
}

func writeInsightError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, insight.ErrNotConfigured):
		writeError(w, http.StatusBadRequest, "Gemini API key not configured. Please set GEMINI_API_KEY in your environment variables.", nil)
	case errors.Is(err, insight.ErrContentRequired):
		writeError(w, http.StatusBadRequest, "Entry content is required for analysis", nil)
	case errors.Is(err, insight.ErrMessageRequired):
		writeError(w, http.StatusBadRequest, "Message is required", nil)
	case errors.Is(err, insight.ErrUpstreamUnavailable):
		writeError(w, http.StatusBadGateway, fallback, err)
	default:
		writeError(w, http.StatusInternalServerError, fallback, err)
	}
}
