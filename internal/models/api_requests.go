package models

type PredictRequest struct {
	HomeTeamID string    `json:"home_team_id" validate:"required"`
	AwayTeamID string    `json:"away_team_id" validate:"required"`
	Season     int       `json:"season" validate:"required,gte=2000"`
	Metric     Metric    `json:"metric" validate:"required,oneof=corners cards goals"`
	Lines      []float64 `json:"lines" validate:"required,min=1,dive,gt=0"`
}

type BatchPredictRequest struct {
	Fixtures []PredictRequest `json:"fixtures" validate:"required,min=1,max=100,dive"`
}

type BatchPredictResponse struct {
	Predictions []*PredictionRecord `json:"predictions"`
	Errors      map[string]string   `json:"errors,omitempty"` // fixture key -> reason
}

type VerifyOutcomeRequest struct {
	PredictionID string  `json:"prediction_id" validate:"required"`
	ActualTotal  float64 `json:"actual_total" validate:"gte=0"`
}
