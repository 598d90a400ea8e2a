package logic

import "github.com/fixturecast/stats-api/internal/models"

// HeadToHeadConfig tunes how much direct-meeting history can sway a
// prediction.
type HeadToHeadConfig struct {
	// MeetingCap is the number of meetings at which head-to-head trust
	// saturates. More history never fully overrides the team profiles.
	MeetingCap int
	// FactorFloor and FactorCeil bound the adjustment factor so a freak
	// scoreline in a small shared history cannot distort the prediction.
	FactorFloor float64
	FactorCeil  float64
}

func DefaultHeadToHeadConfig() HeadToHeadConfig {
	return HeadToHeadConfig{
		MeetingCap:  8,
		FactorFloor: 0.7,
		FactorCeil:  1.3,
	}
}

// HeadToHeadAnalyzer derives an adjustment profile from the matches two
// specific teams have played against each other.
type HeadToHeadAnalyzer struct {
	cfg HeadToHeadConfig
}

func NewHeadToHeadAnalyzer(cfg HeadToHeadConfig) *HeadToHeadAnalyzer {
	if cfg.MeetingCap <= 0 {
		cfg.MeetingCap = 8
	}
	if cfg.FactorFloor <= 0 {
		cfg.FactorFloor = 0.7
	}
	if cfg.FactorCeil <= cfg.FactorFloor {
		cfg.FactorCeil = 1.3
	}
	return &HeadToHeadAnalyzer{cfg: cfg}
}

// MeetingCap exposes the saturation point so the engine can weight the blend.
func (a *HeadToHeadAnalyzer) MeetingCap() int { return a.cfg.MeetingCap }

// Analyze computes the head-to-head profile for a fixture. baselineTotal is
// the engine's unadjusted combined expectation for the match; the adjustment
// factor expresses how the shared history compares to it. With no shared
// history the factor is exactly 1.0 so the prediction is undistorted.
func (a *HeadToHeadAnalyzer) Analyze(homeID, awayID string, shared []models.MatchStatRecord, metric models.Metric, baselineTotal float64) *models.HeadToHeadProfile {
	profile := &models.HeadToHeadProfile{
		HomeTeamID:       homeID,
		AwayTeamID:       awayID,
		AdjustmentFactor: 1.0,
	}

	var sum float64
	for _, rec := range shared {
		between := (rec.HomeTeamID == homeID && rec.AwayTeamID == awayID) ||
			(rec.HomeTeamID == awayID && rec.AwayTeamID == homeID)
		if !between {
			continue
		}
		home, away, ok := rec.MetricValues(metric)
		if !ok {
			continue
		}
		sum += home + away
		profile.MatchesConsidered++
	}

	if profile.MatchesConsidered == 0 {
		return profile
	}

	profile.AverageTotal = sum / float64(profile.MatchesConsidered)

	if baselineTotal > 0 {
		factor := profile.AverageTotal / baselineTotal
		if factor < a.cfg.FactorFloor {
			factor = a.cfg.FactorFloor
		}
		if factor > a.cfg.FactorCeil {
			factor = a.cfg.FactorCeil
		}
		profile.AdjustmentFactor = factor
	}

	return profile
}
