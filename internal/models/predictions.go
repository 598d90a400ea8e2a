package models

import "time"

// DataQuality is a coarse bucket of sample-size sufficiency. It is surfaced
// alongside confidence but never folded into the confidence number.
type DataQuality string

const (
	DataQualityVeryLow  DataQuality = "very_low"
	DataQualityLow      DataQuality = "low"
	DataQualityMedium   DataQuality = "medium"
	DataQualityHigh     DataQuality = "high"
	DataQualityVeryHigh DataQuality = "very_high"
)

// Line is a half-integer over/under betting threshold. Direction is always
// "over"; under is its complement.
type Line struct {
	Value float64 `json:"value"`
}

// LineAssessment is the per-line output of the confidence calculator.
type LineAssessment struct {
	Line        float64 `json:"line"`
	Probability float64 `json:"probability"` // P(total > line), 0-1
	Confidence  float64 `json:"confidence"`  // statistical certainty, 5-95
}

// PredictionRecord is the immutable output of a prediction request. Lines are
// sorted ascending by threshold so identical inputs serialize identically.
type PredictionRecord struct {
	ID         string `json:"id"`
	HomeTeamID string `json:"home_team_id"`
	AwayTeamID string `json:"away_team_id"`
	Season     int    `json:"season"`
	Metric     Metric `json:"metric"`

	HomeExpected  float64 `json:"home_expected"`
	AwayExpected  float64 `json:"away_expected"`
	TotalExpected float64 `json:"total_expected"`

	Lines []LineAssessment `json:"lines"`

	DataQuality DataQuality `json:"data_quality"`

	HomeProfile *TeamMetricProfile `json:"home_profile,omitempty"`
	AwayProfile *TeamMetricProfile `json:"away_profile,omitempty"`
	HeadToHead  *HeadToHeadProfile `json:"head_to_head,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// PredictionOutcome is what the downstream accuracy tracker records once a
// fixture finishes. It is written after the fact and never read by the
// prediction pipeline.
type PredictionOutcome struct {
	PredictionID string    `json:"prediction_id"`
	ActualTotal  float64   `json:"actual_total"`
	VerifiedAt   time.Time `json:"verified_at"`
}

// ScoredPrediction pairs a stored prediction with its verified outcome.
type ScoredPrediction struct {
	Prediction PredictionRecord  `json:"prediction"`
	Outcome    PredictionOutcome `json:"outcome"`
}

// AccuracySummary reports historical hit rates for a metric. Contextual
// information only; it must never influence a new prediction's confidence.
type AccuracySummary struct {
	Metric            Metric  `json:"metric"`
	PredictionsScored int     `json:"predictions_scored"`
	LineHitRate       float64 `json:"line_hit_rate"`
	MeanAbsoluteError float64 `json:"mean_absolute_error"`
}
