package logic

import (
	"errors"
	"math"
	"testing"

	"github.com/fixturecast/stats-api/internal/models"
)

func TestValidateLine(t *testing.T) {
	tests := []struct {
		value float64
		valid bool
	}{
		{0.5, true},
		{2.5, true},
		{10.5, true},
		{0, false},
		{-1.5, false},
		{3.0, false},
		{2.25, false},
	}

	for _, tt := range tests {
		err := ValidateLine(tt.value)
		if tt.valid && err != nil {
			t.Errorf("ValidateLine(%v) = %v, want nil", tt.value, err)
		}
		if !tt.valid {
			var invalid *InvalidLineError
			if !errors.As(err, &invalid) {
				t.Errorf("ValidateLine(%v) = %v, want InvalidLineError", tt.value, err)
			}
		}
	}
}

func TestScoreLinesProbability(t *testing.T) {
	c := NewConfidenceCalculator(DefaultConfidenceConfig(models.MetricCorners))
	home := profile("team-a", models.VenueHome, 6, 4, models.TrendStable, 10)
	away := profile("team-b", models.VenueAway, 4, 5, models.TrendStable, 10)

	out, err := c.ScoreLines(7.0, []models.Line{{Value: 5.5}}, home, away)
	if err != nil {
		t.Fatalf("ScoreLines failed: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("Expected 1 assessment, got %d", len(out))
	}

	// Expected total 1.5 above the line: clearly over, but not certain.
	if out[0].Probability <= 0.5 {
		t.Errorf("Probability = %v, want > 0.5 when expectation exceeds line", out[0].Probability)
	}
	if out[0].Probability >= 0.99 {
		t.Errorf("Probability = %v, improbably certain for a 0.6 z-score", out[0].Probability)
	}
}

func TestScoreLinesSortedDeterministically(t *testing.T) {
	c := NewConfidenceCalculator(DefaultConfidenceConfig(models.MetricCorners))
	home := profile("team-a", models.VenueHome, 6, 4, models.TrendStable, 10)
	away := profile("team-b", models.VenueAway, 4, 5, models.TrendStable, 10)

	lines := []models.Line{{Value: 11.5}, {Value: 8.5}, {Value: 9.5}}
	out, err := c.ScoreLines(10.0, lines, home, away)
	if err != nil {
		t.Fatalf("ScoreLines failed: %v", err)
	}

	for i := 1; i < len(out); i++ {
		if out[i].Line <= out[i-1].Line {
			t.Fatalf("Assessments not sorted ascending: %v", out)
		}
		// Higher lines are harder to clear.
		if out[i].Probability >= out[i-1].Probability {
			t.Errorf("Probability not monotone in line: %v", out)
		}
	}
}

func TestScoreLinesConfidenceBounds(t *testing.T) {
	c := NewConfidenceCalculator(DefaultConfidenceConfig(models.MetricCorners))

	// Maximally favorable: perfect consistency, deep samples, huge margin.
	strongHome := profile("team-a", models.VenueHome, 20, 10, models.TrendStable, 20)
	strongHome.ConsistencyScore = 100
	strongAway := profile("team-b", models.VenueAway, 15, 12, models.TrendStable, 20)
	strongAway.ConsistencyScore = 100

	out, err := c.ScoreLines(30.0, []models.Line{{Value: 0.5}}, strongHome, strongAway)
	if err != nil {
		t.Fatalf("ScoreLines failed: %v", err)
	}
	if out[0].Confidence > 95 {
		t.Errorf("Confidence = %v, must never exceed 95", out[0].Confidence)
	}
	if out[0].Confidence != 95 {
		t.Errorf("Confidence = %v, want the 95 ceiling in the most favorable case", out[0].Confidence)
	}

	// Hopeless line: probability near zero still reports at least 5.
	out, err = c.ScoreLines(1.0, []models.Line{{Value: 20.5}}, strongHome, strongAway)
	if err != nil {
		t.Fatalf("ScoreLines failed: %v", err)
	}
	if out[0].Confidence < 5 {
		t.Errorf("Confidence = %v, must never drop below 5", out[0].Confidence)
	}
}

func TestScoreLinesConsistencyRaisesConfidence(t *testing.T) {
	c := NewConfidenceCalculator(DefaultConfidenceConfig(models.MetricCorners))

	steadyHome := profile("team-a", models.VenueHome, 6, 4, models.TrendStable, 10)
	steadyHome.ConsistencyScore = 90
	steadyAway := profile("team-b", models.VenueAway, 4, 5, models.TrendStable, 10)
	steadyAway.ConsistencyScore = 90

	erraticHome := profile("team-a", models.VenueHome, 6, 4, models.TrendStable, 10)
	erraticHome.ConsistencyScore = 20
	erraticAway := profile("team-b", models.VenueAway, 4, 5, models.TrendStable, 10)
	erraticAway.ConsistencyScore = 20

	steady, err := c.ScoreLines(9.0, []models.Line{{Value: 8.5}}, steadyHome, steadyAway)
	if err != nil {
		t.Fatalf("ScoreLines failed: %v", err)
	}
	erratic, err := c.ScoreLines(9.0, []models.Line{{Value: 8.5}}, erraticHome, erraticAway)
	if err != nil {
		t.Fatalf("ScoreLines failed: %v", err)
	}

	// Same probability, different certainty.
	if steady[0].Probability != erratic[0].Probability {
		t.Errorf("Probability must not depend on consistency: %v vs %v", steady[0].Probability, erratic[0].Probability)
	}
	if steady[0].Confidence <= erratic[0].Confidence {
		t.Errorf("Consistent teams should score higher confidence: %v vs %v", steady[0].Confidence, erratic[0].Confidence)
	}
}

func TestScoreLinesRejectsInvalidLine(t *testing.T) {
	c := NewConfidenceCalculator(DefaultConfidenceConfig(models.MetricCorners))
	home := profile("team-a", models.VenueHome, 6, 4, models.TrendStable, 10)
	away := profile("team-b", models.VenueAway, 4, 5, models.TrendStable, 10)

	_, err := c.ScoreLines(9.0, []models.Line{{Value: 9.0}}, home, away)
	var invalid *InvalidLineError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidLineError for integer line, got %v", err)
	}
}

func TestClassifyDataQuality(t *testing.T) {
	tests := []struct {
		homeSamples int
		awaySamples int
		want        models.DataQuality
	}{
		{2, 10, models.DataQualityVeryLow},
		{4, 10, models.DataQualityLow},
		{7, 10, models.DataQualityMedium},
		{11, 11, models.DataQualityHigh},
		{15, 12, models.DataQualityVeryHigh},
	}

	for _, tt := range tests {
		home := profile("team-a", models.VenueHome, 6, 4, models.TrendStable, tt.homeSamples)
		away := profile("team-b", models.VenueAway, 4, 5, models.TrendStable, tt.awaySamples)
		if got := ClassifyDataQuality(home, away); got != tt.want {
			t.Errorf("ClassifyDataQuality(%d, %d) = %v, want %v", tt.homeSamples, tt.awaySamples, got, tt.want)
		}
	}
}

func TestNormalCDF(t *testing.T) {
	if got := normalCDF(0); math.Abs(got-0.5) > 1e-9 {
		t.Errorf("normalCDF(0) = %v, want 0.5", got)
	}
	if got := normalCDF(3); got < 0.99 {
		t.Errorf("normalCDF(3) = %v, want > 0.99", got)
	}
	if got := normalCDF(-3); got > 0.01 {
		t.Errorf("normalCDF(-3) = %v, want < 0.01", got)
	}
}
