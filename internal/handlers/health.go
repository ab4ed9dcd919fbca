package handlers

import (
	"net/http"
	"time"
)

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
	Env    string    `json:"env"`
}

// HealthCheck reports liveness, current time, and the environment name.
func HealthCheck(w http.ResponseWriter, r *http.Request) {
	env := "development"
	if cfg != nil {
		env = cfg.Environment
	}
	writeJSON(w, http.StatusOK, HealthResponse{
		Status: "ok",
		Time:   time.Now(),
		Env:    env,
	})
}

// NotFound is the JSON fallback for unknown routes.
func NotFound(w http.ResponseWriter, r *http.Request) {
	writeError(w, http.StatusNotFound, "Route not found", nil)
}
