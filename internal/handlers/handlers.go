package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mindwell/mindwell-backend/internal/config"
	"github.com/mindwell/mindwell-backend/internal/insight"
	"github.com/mindwell/mindwell-backend/internal/store"
)

var (
	cfg           *config.Config
	entryStore    *store.Store
	insightClient *insight.Client
)

// Init wires the handler package to its dependencies. Must be called before
// any route is served.
func Init(c *config.Config, s *store.Store, ic *insight.Client) {
	cfg = c
	entryStore = s
	insightClient = ic
}

// ErrorResponse is the JSON error envelope. Details carries diagnostic text
// and is only populated outside production.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil && cfg != nil && !cfg.IsProduction() {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeStoreError maps store failures to HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error, fallback string) {
	var vErr *store.ValidationError
	switch {
	case errors.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "Entry not found", nil)
	case errors.As(err, &vErr):
		writeError(w, http.StatusBadRequest, vErr.Msg, nil)
	default:
		writeError(w, http.StatusInternalServerError, fallback, err)
	}
}
