package models

import "time"

// Metric identifies the count-type statistic being predicted.
type Metric string

const (
	MetricCorners Metric = "corners"
	MetricCards   Metric = "cards"
	MetricGoals   Metric = "goals"
)

// Valid reports whether the metric is one this system predicts.
func (m Metric) Valid() bool {
	switch m {
	case MetricCorners, MetricCards, MetricGoals:
		return true
	}
	return false
}

// Venue filters a series to home fixtures, away fixtures, or both.
type Venue string

const (
	VenueHome     Venue = "home"
	VenueAway     Venue = "away"
	VenueCombined Venue = "combined"
)

// MetricObservation is one team's value of one metric in one historical match.
// Immutable once recorded.
type MetricObservation struct {
	MatchID        string    `json:"match_id"`
	TeamID         string    `json:"team_id"`
	OpponentID     string    `json:"opponent_id"`
	Venue          Venue     `json:"venue"`
	MetricWon      float64   `json:"metric_won"`
	MetricConceded float64   `json:"metric_conceded"`
	MatchDate      time.Time `json:"match_date"`
}

// MetricSeries is an ordered (oldest first) sequence of observations for one
// team, one metric, one venue filter.
type MetricSeries struct {
	TeamID       string              `json:"team_id"`
	Metric       Metric              `json:"metric"`
	Venue        Venue               `json:"venue"`
	Observations []MetricObservation `json:"observations"`
}

// Len returns the number of observations in the series.
func (s *MetricSeries) Len() int {
	return len(s.Observations)
}

// Won returns the metric-won values in series order.
func (s *MetricSeries) Won() []float64 {
	vals := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		vals[i] = o.MetricWon
	}
	return vals
}

// Conceded returns the metric-conceded values in series order.
func (s *MetricSeries) Conceded() []float64 {
	vals := make([]float64, len(s.Observations))
	for i, o := range s.Observations {
		vals[i] = o.MetricConceded
	}
	return vals
}

// MatchStatRecord is a raw per-match stat line as delivered by an importer or
// the ingest endpoint, before it is normalized into observations. Nil metric
// pointers mean the provider did not report that statistic for the match; a
// missing value is excluded from series, never defaulted to zero.
type MatchStatRecord struct {
	MatchID       string    `json:"match_id"`
	Season        int       `json:"season"`
	CompetitionID string    `json:"competition_id"`
	HomeTeamID    string    `json:"home_team_id"`
	AwayTeamID    string    `json:"away_team_id"`
	MatchDate     time.Time `json:"match_date"`
	Status        string    `json:"status"`

	HomeCorners *float64 `json:"home_corners,omitempty"`
	AwayCorners *float64 `json:"away_corners,omitempty"`
	HomeCards   *float64 `json:"home_cards,omitempty"`
	AwayCards   *float64 `json:"away_cards,omitempty"`
	HomeGoals   *float64 `json:"home_goals,omitempty"`
	AwayGoals   *float64 `json:"away_goals,omitempty"`
}

// MetricValues returns the home and away values for the requested metric,
// and whether the provider reported both sides.
func (r *MatchStatRecord) MetricValues(metric Metric) (home, away float64, ok bool) {
	var h, a *float64
	switch metric {
	case MetricCorners:
		h, a = r.HomeCorners, r.AwayCorners
	case MetricCards:
		h, a = r.HomeCards, r.AwayCards
	case MetricGoals:
		h, a = r.HomeGoals, r.AwayGoals
	}
	if h == nil || a == nil {
		return 0, 0, false
	}
	return *h, *a, true
}
