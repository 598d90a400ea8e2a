package models

// Trend classifies the direction of a team's recent metric output.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// TeamMetricProfile is the read-only summary the consistency analyzer derives
// from one MetricSeries. Never persisted by the core; callers may cache it.
type TeamMetricProfile struct {
	TeamID     string `json:"team_id"`
	Metric     Metric `json:"metric"`
	Venue      Venue  `json:"venue"`
	SampleSize int    `json:"sample_size"`

	WeightedAvgWon      float64 `json:"weighted_avg_won"`
	WeightedAvgConceded float64 `json:"weighted_avg_conceded"`

	// Consistency scores are 0-100, higher means more predictable.
	ConsistencyWon      float64 `json:"consistency_won"`
	ConsistencyConceded float64 `json:"consistency_conceded"`
	ConsistencyScore    float64 `json:"consistency_score"`

	StdDevWon float64 `json:"std_dev_won"`

	Trend Trend `json:"trend"`

	// ReliabilityThreshold is the highest half-integer line the team has
	// historically cleared at the target rate. Nil below 5 observations.
	ReliabilityThreshold *float64 `json:"reliability_threshold,omitempty"`
}

// HeadToHeadProfile summarizes direct historical meetings between two teams.
type HeadToHeadProfile struct {
	HomeTeamID        string  `json:"home_team_id"`
	AwayTeamID        string  `json:"away_team_id"`
	MatchesConsidered int     `json:"matches_considered"`
	AverageTotal      float64 `json:"average_total_metric"`
	// AdjustmentFactor is a multiplier relative to the engine's unadjusted
	// combined expectation. Exactly 1.0 when no shared history exists.
	AdjustmentFactor float64 `json:"adjustment_factor"`
}
