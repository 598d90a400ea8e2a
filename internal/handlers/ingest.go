package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/fixturecast/stats-api/internal/models"
)

// IngestStats handles POST /api/v1/ingest/stats
// @Summary Ingest Match Stat Records
// @Description Accepts newline-separated JSON match stat records from data importers
// @Tags Ingestion
// @Accept json
// @Produce json
// @Param body body []models.MatchStatRecord true "Records"
// @Success 202 {object} map[string]string "Accepted"
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /ingest/stats [post]
func (h *Handler) IngestStats(w http.ResponseWriter, r *http.Request) {
	// Limit request body to 1MB to prevent DoS
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodySize)
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.errorResponse(w, http.StatusRequestEntityTooLarge, "Request body too large")
		return
	}
	defer r.Body.Close()

	lines := strings.Split(string(body), "\n")
	processed := 0
	skipped := 0
	for i, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		var rec models.MatchStatRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			h.logger.Warnw("Failed to unmarshal stat record in batch", "error", err, "lineNum", i)
			skipped++
			continue
		}

		if rec.MatchID == "" || rec.HomeTeamID == "" || rec.AwayTeamID == "" {
			h.logger.Warnw("Stat record missing identifiers, skipping", "lineNum", i, "match_id", rec.MatchID)
			skipped++
			continue
		}
		if rec.HomeTeamID == rec.AwayTeamID {
			h.logger.Warnw("Stat record has identical teams, skipping", "lineNum", i, "match_id", rec.MatchID)
			skipped++
			continue
		}

		if !h.pool.Enqueue(rec) {
			h.logger.Warn("Ingest queue unavailable, dropping remaining records in batch")
			break
		}
		processed++
	}

	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":    "accepted",
		"processed": processed,
		"skipped":   skipped,
	})
}
