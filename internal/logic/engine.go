package logic

import "github.com/fixturecast/stats-api/internal/models"

// EngineConfig tunes the combination step.
type EngineConfig struct {
	// VenueBoost is the home-advantage ratio. It is split into a mild home
	// uplift and a smaller away damping rather than applied raw, so the
	// combined expectation stays inside the teams' historical band.
	VenueBoost float64
	// TrendUp and TrendDown are the small corroborating nudges for a team
	// whose recent output is moving. Trend is never a primary driver.
	TrendUp   float64
	TrendDown float64
}

func DefaultEngineConfig() EngineConfig {
	return EngineConfig{
		VenueBoost: 1.3,
		TrendUp:    1.05,
		TrendDown:  0.95,
	}
}

// PredictionEngine combines two team profiles and a head-to-head profile into
// expected per-team and total metric values.
type PredictionEngine struct {
	cfg        EngineConfig
	meetingCap int
}

func NewPredictionEngine(cfg EngineConfig, meetingCap int) *PredictionEngine {
	if cfg.VenueBoost <= 0 {
		cfg.VenueBoost = 1.3
	}
	if cfg.TrendUp <= 0 {
		cfg.TrendUp = 1.05
	}
	if cfg.TrendDown <= 0 {
		cfg.TrendDown = 0.95
	}
	if meetingCap <= 0 {
		meetingCap = 8
	}
	return &PredictionEngine{cfg: cfg, meetingCap: meetingCap}
}

// Expectations computes the unadjusted per-team expectations: each side's
// weighted attack average crossed with the opponent's weighted concession
// average, nudged by trend, with the venue boost split across home and away.
func (e *PredictionEngine) Expectations(home, away *models.TeamMetricProfile) (homeExp, awayExp float64, err error) {
	if home.TeamID == away.TeamID {
		return 0, 0, &IdenticalTeamsError{TeamID: home.TeamID}
	}

	homeFactor := 1 + (e.cfg.VenueBoost-1)/2
	awayFactor := 1 - (e.cfg.VenueBoost-1)/4

	homeExp = ((home.WeightedAvgWon + away.WeightedAvgConceded) / 2) * e.trendMultiplier(home.Trend) * homeFactor
	awayExp = ((away.WeightedAvgWon + home.WeightedAvgConceded) / 2) * e.trendMultiplier(away.Trend) * awayFactor
	return homeExp, awayExp, nil
}

// Predict produces the final expectations, applying the head-to-head blend to
// the combined total. Head-to-head influence grows with evidence, weighted by
// min(1, matches/cap), and rescales both sides proportionally so the
// home/away split is preserved.
func (e *PredictionEngine) Predict(home, away *models.TeamMetricProfile, h2h *models.HeadToHeadProfile) (homeExp, awayExp, totalExp float64, err error) {
	homeExp, awayExp, err = e.Expectations(home, away)
	if err != nil {
		return 0, 0, 0, err
	}
	totalExp = homeExp + awayExp

	if h2h != nil && h2h.MatchesConsidered > 0 && totalExp > 0 {
		weight := float64(h2h.MatchesConsidered) / float64(e.meetingCap)
		if weight > 1 {
			weight = 1
		}
		scale := 1 + weight*(h2h.AdjustmentFactor-1)
		homeExp *= scale
		awayExp *= scale
		totalExp = homeExp + awayExp
	}

	return homeExp, awayExp, totalExp, nil
}

func (e *PredictionEngine) trendMultiplier(t models.Trend) float64 {
	switch t {
	case models.TrendImproving:
		return e.cfg.TrendUp
	case models.TrendDeclining:
		return e.cfg.TrendDown
	default:
		return 1.0
	}
}
