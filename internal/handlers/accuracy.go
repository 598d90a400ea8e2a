package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/fixturecast/stats-api/internal/models"
)

// RecordOutcome handles POST /api/v1/accuracy/outcomes
// @Summary Record Verified Match Outcome
// @Description Attaches the actual total to a stored prediction for later scoring
// @Tags Accuracy
// @Accept json
// @Produce json
// @Param body body models.VerifyOutcomeRequest true "Outcome"
// @Success 200 {object} map[string]string "Recorded"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Prediction"
// @Router /accuracy/outcomes [post]
func (h *Handler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOutcomeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if err := h.accuracy.RecordOutcome(r.Context(), req); err != nil {
		h.logger.Warnw("Failed to record outcome", "error", err, "prediction_id", req.PredictionID)
		h.errorResponse(w, http.StatusNotFound, "Prediction not found")
		return
	}

	h.jsonResponse(w, http.StatusOK, map[string]string{"status": "recorded"})
}

// GetAccuracySummary handles GET /api/v1/accuracy/{metric}
// @Summary Get Historical Accuracy Summary
// @Description Scores stored predictions against verified outcomes for one metric
// @Tags Accuracy
// @Produce json
// @Param metric path string true "Metric (corners, cards, goals)"
// @Success 200 {object} models.AccuracySummary
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /accuracy/{metric} [get]
func (h *Handler) GetAccuracySummary(w http.ResponseWriter, r *http.Request) {
	metric := models.Metric(chi.URLParam(r, "metric"))
	if !metric.Valid() {
		h.errorResponse(w, http.StatusBadRequest, "Unknown metric")
		return
	}

	summary, err := h.accuracy.Summary(r.Context(), metric)
	if err != nil {
		h.logger.Errorw("Failed to build accuracy summary", "error", err, "metric", metric)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to build accuracy summary")
		return
	}

	h.jsonResponse(w, http.StatusOK, summary)
}
