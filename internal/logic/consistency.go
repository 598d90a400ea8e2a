package logic

import (
	"math"

	"github.com/fixturecast/stats-api/internal/models"
)

// neutralConsistency is returned when a consistency score is undefined:
// fewer than 3 observations, or a zero mean that would blow up the
// coefficient of variation.
const neutralConsistency = 50.0

// ConsistencyConfig tunes the per-team series analysis.
type ConsistencyConfig struct {
	// RecentWeight is the extra weight the newest observation receives over
	// the oldest. Deliberately mild: samples are already small.
	RecentWeight float64
	// TrendWindow is how many recent observations the trend regression sees.
	TrendWindow int
	// TrendSlope is the classification threshold, in the metric's natural
	// units per match.
	TrendSlope float64
	// ReliabilityTarget is the hit-rate a line must sustain to count as
	// reliable.
	ReliabilityTarget float64
}

// DefaultConsistencyConfig mirrors the tuning the system has run with in
// production: 0.6 recency bias, 10-match trend window, 90% reliability.
func DefaultConsistencyConfig() ConsistencyConfig {
	return ConsistencyConfig{
		RecentWeight:      0.6,
		TrendWindow:       10,
		TrendSlope:        0.1,
		ReliabilityTarget: 0.90,
	}
}

// ConsistencyAnalyzer derives a TeamMetricProfile from a MetricSeries.
type ConsistencyAnalyzer struct {
	cfg ConsistencyConfig
}

func NewConsistencyAnalyzer(cfg ConsistencyConfig) *ConsistencyAnalyzer {
	if cfg.RecentWeight <= 0 {
		cfg.RecentWeight = 0.6
	}
	if cfg.TrendWindow <= 0 {
		cfg.TrendWindow = 10
	}
	if cfg.TrendSlope <= 0 {
		cfg.TrendSlope = 0.1
	}
	if cfg.ReliabilityTarget <= 0 || cfg.ReliabilityTarget > 1 {
		cfg.ReliabilityTarget = 0.90
	}
	return &ConsistencyAnalyzer{cfg: cfg}
}

// Analyze computes the full profile for a series: recency-weighted averages,
// consistency scores, trend and reliability threshold.
func (a *ConsistencyAnalyzer) Analyze(series *models.MetricSeries) *models.TeamMetricProfile {
	won := series.Won()
	conceded := series.Conceded()

	profile := &models.TeamMetricProfile{
		TeamID:     series.TeamID,
		Metric:     series.Metric,
		Venue:      series.Venue,
		SampleSize: series.Len(),

		WeightedAvgWon:      weightedAverage(won, a.cfg.RecentWeight),
		WeightedAvgConceded: weightedAverage(conceded, a.cfg.RecentWeight),

		ConsistencyWon:      consistencyScore(won),
		ConsistencyConceded: consistencyScore(conceded),

		StdDevWon: stdDev(won),

		Trend: a.trend(won),

		ReliabilityThreshold: a.reliabilityThreshold(won, a.cfg.ReliabilityTarget),
	}
	profile.ConsistencyScore = (profile.ConsistencyWon + profile.ConsistencyConceded) / 2

	return profile
}

// weightedAverage applies a linear recency bias: the i-th observation (oldest
// first, 0-indexed) of n gets weight 1 + (i/n)*recentWeight, so the newest
// observation carries 1+recentWeight and the oldest carries 1.
func weightedAverage(values []float64, recentWeight float64) float64 {
	if len(values) == 0 {
		return 0
	}
	n := float64(len(values))
	var sum, weightSum float64
	for i, v := range values {
		w := 1 + (float64(i)/n)*recentWeight
		sum += v * w
		weightSum += w
	}
	return sum / weightSum
}

// consistencyScore converts the coefficient of variation into a 0-100 score
// where 100 is perfectly constant output. Undefined cases (n<3, zero mean)
// get the neutral 50 rather than an unstable ratio.
func consistencyScore(values []float64) float64 {
	if len(values) < 3 {
		return neutralConsistency
	}
	m := mean(values)
	if m == 0 {
		return neutralConsistency
	}
	cv := stdDev(values) / m
	score := 100 - cv*100
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// trend fits a least-squares slope over the most recent window and classifies
// it against the natural-units threshold. Fewer than 5 observations can't
// support a trend claim and classify Stable.
func (a *ConsistencyAnalyzer) trend(values []float64) models.Trend {
	if len(values) < 5 {
		return models.TrendStable
	}
	window := values
	if len(window) > a.cfg.TrendWindow {
		window = window[len(window)-a.cfg.TrendWindow:]
	}

	slope := regressionSlope(window)
	switch {
	case slope > a.cfg.TrendSlope:
		return models.TrendImproving
	case slope < -a.cfg.TrendSlope:
		return models.TrendDeclining
	default:
		return models.TrendStable
	}
}

// reliabilityThreshold finds the highest half-integer line the team has
// reached in at least target fraction of matches. Scans 0.5, 1.5, ... and
// returns one increment below the first failing line, floored at 0.5.
// Threshold claims need more evidence than averages: nil below 5 observations.
func (a *ConsistencyAnalyzer) reliabilityThreshold(values []float64, target float64) *float64 {
	if len(values) < 5 {
		return nil
	}

	maxVal := values[0]
	for _, v := range values {
		if v > maxVal {
			maxVal = v
		}
	}

	last := 0.5
	for line := 0.5; line <= maxVal+1; line += 1.0 {
		over := 0
		for _, v := range values {
			if v >= line {
				over++
			}
		}
		if float64(over)/float64(len(values)) >= target {
			last = line
			continue
		}
		result := math.Max(0.5, line-1.0)
		return &result
	}
	return &last
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev is the population standard deviation.
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	var ss float64
	for _, v := range values {
		d := v - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(values)))
}

// regressionSlope is the least-squares slope of values against their indexes.
func regressionSlope(values []float64) float64 {
	n := float64(len(values))
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (n*sumXY - sumX*sumY) / denom
}
