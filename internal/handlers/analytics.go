package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/mindwell/mindwell-backend/internal/analytics"
	"github.com/mindwell/mindwell-backend/internal/models"
)

// snapshot loads the full entry collection for an aggregation. Every
// analytics request recomputes from the current durable state.
func snapshot(w http.ResponseWriter) ([]models.JournalEntry, bool) {
	entries, err := entryStore.List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Error loading entries", err)
		return nil, false
	}
	return entries, true
}

// GetOverview returns totals, mood distribution, and the trailing week's
// daily trend.
func GetOverview(w http.ResponseWriter, r *http.Request) {
	entries, ok := snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.ComputeOverview(entries, time.Now()))
}

// GetTrends returns daily aggregates for the trailing period (default 30
// days, ?period=N).
func GetTrends(w http.ResponseWriter, r *http.Request) {
	entries, ok := snapshot(w)
	if !ok {
		return
	}
	period := queryDays(r, "period", 30)
	writeJSON(w, http.StatusOK, analytics.ComputeTrends(entries, time.Now(), period))
}

// GetMoodAnalysis returns per-mood stats and week-bucketed mood counts.
func GetMoodAnalysis(w http.ResponseWriter, r *http.Request) {
	entries, ok := snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.ComputeMoodAnalysis(entries))
}

// GetWellnessDistribution returns the fixed five-bucket score histogram.
func GetWellnessDistribution(w http.ResponseWriter, r *http.Request) {
	entries, ok := snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.ComputeWellnessDistribution(entries))
}

// GetPatterns returns writing-habit aggregates for the trailing window
// (default 30 days, ?days=N).
func GetPatterns(w http.ResponseWriter, r *http.Request) {
	entries, ok := snapshot(w)
	if !ok {
		return
	}
	days := queryDays(r, "days", 30)
	writeJSON(w, http.StatusOK, analytics.ComputePatterns(entries, time.Now(), days))
}

// GetComparison returns this week vs last week for wellness, mood, and
// entry count.
func GetComparison(w http.ResponseWriter, r *http.Request) {
	entries, ok := snapshot(w)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, analytics.ComputeComparison(entries, time.Now()))
}

func queryDays(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}
