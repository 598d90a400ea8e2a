package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/fixturecast/stats-api/internal/models"
)

// GeneratePrediction handles POST /api/v1/predictions
// @Summary Generate Match Prediction
// @Description Produces over/under probabilities and confidence for one fixture and metric
// @Tags Predictions
// @Accept json
// @Produce json
// @Param body body models.PredictRequest true "Fixture"
// @Success 200 {object} models.PredictionRecord
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 422 {object} map[string]string "Insufficient Data"
// @Router /predictions [post]
func (h *Handler) GeneratePrediction(w http.ResponseWriter, r *http.Request) {
	var req models.PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	rec, err := h.prediction.GeneratePrediction(r.Context(), req)
	if err != nil {
		if status, msg, ok := predictionErrorStatus(err); ok {
			h.errorResponse(w, status, msg)
			return
		}
		h.logger.Errorw("Failed to generate prediction",
			"error", err,
			"home", req.HomeTeamID,
			"away", req.AwayTeamID,
			"metric", req.Metric,
		)
		h.errorResponse(w, http.StatusInternalServerError, "Failed to generate prediction")
		return
	}

	h.jsonResponse(w, http.StatusOK, rec)
}

// GenerateBatch handles POST /api/v1/predictions/batch
// @Summary Generate Predictions For Multiple Fixtures
// @Description Runs the prediction pipeline concurrently over up to 100 fixtures
// @Tags Predictions
// @Accept json
// @Produce json
// @Param body body models.BatchPredictRequest true "Fixtures"
// @Success 200 {object} models.BatchPredictResponse
// @Failure 400 {object} map[string]string "Bad Request"
// @Router /predictions/batch [post]
func (h *Handler) GenerateBatch(w http.ResponseWriter, r *http.Request) {
	var req models.BatchPredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		h.errorResponse(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	resp, err := h.prediction.GenerateBatch(r.Context(), req)
	if err != nil {
		h.logger.Errorw("Batch prediction failed", "error", err, "fixtures", len(req.Fixtures))
		h.errorResponse(w, http.StatusInternalServerError, "Failed to generate predictions")
		return
	}

	h.jsonResponse(w, http.StatusOK, resp)
}
