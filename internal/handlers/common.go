package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/fixturecast/stats-api/internal/logic"
)

// Health check endpoint
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC(),
	})
}

// Ready check endpoint
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Check all dependencies
	checks := map[string]bool{
		"postgres":   h.pg.Ping(ctx) == nil,
		"clickhouse": h.ch.Ping(ctx) == nil,
		"redis":      h.redis.Ping(ctx).Err() == nil,
	}

	allHealthy := true
	for _, ok := range checks {
		if !ok {
			allHealthy = false
			break
		}
	}

	w.Header().Set("Content-Type", "application/json")
	if !allHealthy {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(map[string]interface{}{
		"ready":      allHealthy,
		"checks":     checks,
		"queueDepth": h.pool.QueueDepth(),
	})
}

func (h *Handler) jsonResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func (h *Handler) errorResponse(w http.ResponseWriter, status int, message string) {
	h.jsonResponse(w, status, map[string]string{"error": message})
}

// predictionErrorStatus maps pipeline errors to HTTP status codes. Input
// errors come back to the caller verbatim; anything else is a 500.
func predictionErrorStatus(err error) (int, string, bool) {
	var insufficient *logic.InsufficientDataError
	if errors.As(err, &insufficient) {
		return http.StatusUnprocessableEntity, insufficient.Error(), true
	}
	var identical *logic.IdenticalTeamsError
	if errors.As(err, &identical) {
		return http.StatusBadRequest, identical.Error(), true
	}
	var line *logic.InvalidLineError
	if errors.As(err, &line) {
		return http.StatusBadRequest, line.Error(), true
	}
	return http.StatusInternalServerError, "", false
}
