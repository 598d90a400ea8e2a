package logic

import (
	"sort"

	"github.com/fixturecast/stats-api/internal/models"
)

// SeriesOptions controls how a MetricSeries is assembled from raw records.
type SeriesOptions struct {
	// MinSamples is the minimum number of usable observations; below it the
	// builder fails with InsufficientDataError. Default 3.
	MinSamples int
	// MaxSamples bounds the recent window, keeping the newest observations.
	// Default 20.
	MaxSamples int
}

func (o SeriesOptions) withDefaults() SeriesOptions {
	if o.MinSamples <= 0 {
		o.MinSamples = 3
	}
	if o.MaxSamples <= 0 {
		o.MaxSamples = 20
	}
	return o
}

// BuildSeries assembles the chronological metric series for one team from raw
// match stat records. Matches missing the requested metric are excluded, not
// defaulted to zero: an absent statistic is not evidence of zero.
func BuildSeries(records []models.MatchStatRecord, teamID string, metric models.Metric, venue models.Venue, opts SeriesOptions) (*models.MetricSeries, error) {
	opts = opts.withDefaults()

	obs := make([]models.MetricObservation, 0, len(records))
	for _, rec := range records {
		var o models.MetricObservation
		home, away, ok := rec.MetricValues(metric)
		if !ok {
			continue
		}

		switch teamID {
		case rec.HomeTeamID:
			o = models.MetricObservation{
				MatchID:        rec.MatchID,
				TeamID:         teamID,
				OpponentID:     rec.AwayTeamID,
				Venue:          models.VenueHome,
				MetricWon:      home,
				MetricConceded: away,
				MatchDate:      rec.MatchDate,
			}
		case rec.AwayTeamID:
			o = models.MetricObservation{
				MatchID:        rec.MatchID,
				TeamID:         teamID,
				OpponentID:     rec.HomeTeamID,
				Venue:          models.VenueAway,
				MetricWon:      away,
				MetricConceded: home,
				MatchDate:      rec.MatchDate,
			}
		default:
			continue
		}

		if venue != models.VenueCombined && o.Venue != venue {
			continue
		}
		obs = append(obs, o)
	}

	sort.SliceStable(obs, func(i, j int) bool {
		return obs[i].MatchDate.Before(obs[j].MatchDate)
	})

	if len(obs) > opts.MaxSamples {
		obs = obs[len(obs)-opts.MaxSamples:]
	}

	if len(obs) < opts.MinSamples {
		return nil, &InsufficientDataError{TeamID: teamID, Got: len(obs), Required: opts.MinSamples}
	}

	return &models.MetricSeries{
		TeamID:       teamID,
		Metric:       metric,
		Venue:        venue,
		Observations: obs,
	}, nil
}

// SharedHistory filters records down to direct meetings between two teams.
// Records missing the metric are excluded the same way series building does.
func SharedHistory(records []models.MatchStatRecord, teamA, teamB string, metric models.Metric) []models.MatchStatRecord {
	shared := make([]models.MatchStatRecord, 0, len(records))
	for _, rec := range records {
		between := (rec.HomeTeamID == teamA && rec.AwayTeamID == teamB) ||
			(rec.HomeTeamID == teamB && rec.AwayTeamID == teamA)
		if !between {
			continue
		}
		if _, _, ok := rec.MetricValues(metric); !ok {
			continue
		}
		shared = append(shared, rec)
	}
	sort.SliceStable(shared, func(i, j int) bool {
		return shared[i].MatchDate.Before(shared[j].MatchDate)
	})
	return shared
}
