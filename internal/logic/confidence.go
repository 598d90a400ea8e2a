package logic

import (
	"math"
	"sort"

	"github.com/fixturecast/stats-api/internal/models"
)

// ConfidenceConfig tunes line scoring. StdDev is the dispersion of the match
// total in the metric's natural units; corners and cards spread differently,
// so the value is supplied per metric domain.
type ConfidenceConfig struct {
	StdDev float64
	// IdealSampleSize is the per-team sample count at which the data-quality
	// multiplier tops out.
	IdealSampleSize int
}

// metricStdDevs are the observed typical dispersions of match totals.
var metricStdDevs = map[models.Metric]float64{
	models.MetricCorners: 2.5,
	models.MetricCards:   1.5,
	models.MetricGoals:   1.6,
}

// DefaultConfidenceConfig returns the tuning for a metric domain.
func DefaultConfidenceConfig(metric models.Metric) ConfidenceConfig {
	sd, ok := metricStdDevs[metric]
	if !ok {
		sd = 2.5
	}
	return ConfidenceConfig{StdDev: sd, IdealSampleSize: 15}
}

// Confidence bounds. Absolute certainty is never claimed and neither is
// near-zero confidence: the model always carries irreducible uncertainty.
const (
	minConfidence = 5.0
	maxConfidence = 95.0
)

// ConfidenceCalculator converts an expected total and a set of betting lines
// into per-line probabilities and statistical-certainty scores. It has no
// access to historical prediction accuracy, by construction: confidence
// expresses how certain the current statistical model is, never how often the
// system has previously been right.
type ConfidenceCalculator struct {
	cfg ConfidenceConfig
}

func NewConfidenceCalculator(cfg ConfidenceConfig) *ConfidenceCalculator {
	if cfg.StdDev <= 0 {
		cfg.StdDev = 2.5
	}
	if cfg.IdealSampleSize <= 0 {
		cfg.IdealSampleSize = 15
	}
	return &ConfidenceCalculator{cfg: cfg}
}

// ValidateLine rejects non-positive and non-half-integer line values.
func ValidateLine(value float64) error {
	if value <= 0 {
		return &InvalidLineError{Value: value}
	}
	doubled := value * 2
	if doubled != math.Trunc(doubled) || int64(doubled)%2 != 1 {
		return &InvalidLineError{Value: value}
	}
	return nil
}

// ScoreLines assesses every line against the expected total. Output is sorted
// ascending by line value so results are deterministic.
func (c *ConfidenceCalculator) ScoreLines(totalExpected float64, lines []models.Line, home, away *models.TeamMetricProfile) ([]models.LineAssessment, error) {
	sorted := make([]float64, 0, len(lines))
	for _, l := range lines {
		if err := ValidateLine(l.Value); err != nil {
			return nil, err
		}
		sorted = append(sorted, l.Value)
	}
	sort.Float64s(sorted)

	avgConsistency := (home.ConsistencyScore + away.ConsistencyScore) / 2

	minSamples := home.SampleSize
	if away.SampleSize < minSamples {
		minSamples = away.SampleSize
	}
	sampleRatio := float64(minSamples) / float64(c.cfg.IdealSampleSize)
	if sampleRatio > 1 {
		sampleRatio = 1
	}

	// Bounded multipliers: consistency in [0.8, 1.2], data quality in [0.9, 1.1].
	consistencyMult := 0.8 + (avgConsistency/100)*0.4
	dataMult := 0.9 + sampleRatio*0.2

	out := make([]models.LineAssessment, 0, len(sorted))
	for _, line := range sorted {
		z := (totalExpected - line) / c.cfg.StdDev
		prob := normalCDF(z)

		confidence := prob * 100 * consistencyMult * dataMult
		if confidence < minConfidence {
			confidence = minConfidence
		}
		if confidence > maxConfidence {
			confidence = maxConfidence
		}

		out = append(out, models.LineAssessment{
			Line:        line,
			Probability: prob,
			Confidence:  confidence,
		})
	}
	return out, nil
}

// ClassifyDataQuality buckets the weaker of the two sample counts. Surfaced
// alongside confidence, never merged into it.
func ClassifyDataQuality(home, away *models.TeamMetricProfile) models.DataQuality {
	n := home.SampleSize
	if away.SampleSize < n {
		n = away.SampleSize
	}
	switch {
	case n < 3:
		return models.DataQualityVeryLow
	case n < 5:
		return models.DataQualityLow
	case n < 8:
		return models.DataQualityMedium
	case n < 12:
		return models.DataQualityHigh
	default:
		return models.DataQualityVeryHigh
	}
}

// normalCDF is P(Z <= z) for the standard normal distribution.
func normalCDF(z float64) float64 {
	return 0.5 * (1 + math.Erf(z/math.Sqrt2))
}
