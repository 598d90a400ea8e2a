// Package store holds the persistence collaborators of the prediction
// pipeline: the ClickHouse match-stat warehouse and the Postgres prediction
// store. The pipeline itself only ever sees in-memory collections.
package store

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"github.com/fixturecast/stats-api/internal/models"
)

// ObservationStore reads normalized per-match stat rows from ClickHouse,
// where the ingest worker lands them.
type ObservationStore struct {
	ch driver.Conn
}

func NewObservationStore(ch driver.Conn) *ObservationStore {
	return &ObservationStore{ch: ch}
}

// metricColumns maps a metric to its home/away warehouse columns. Column
// names are selected from this fixed set, never interpolated from input.
func metricColumns(metric models.Metric) (home, away string, err error) {
	switch metric {
	case models.MetricCorners:
		return "home_corners", "away_corners", nil
	case models.MetricCards:
		return "home_cards", "away_cards", nil
	case models.MetricGoals:
		return "home_goals", "away_goals", nil
	default:
		return "", "", fmt.Errorf("unknown metric %q", metric)
	}
}

// TeamRecords returns the most recent finished matches for a team in a
// season that carry the requested metric on both sides.
func (s *ObservationStore) TeamRecords(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error) {
	homeCol, awayCol, err := metricColumns(metric)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	query := fmt.Sprintf(`
		SELECT match_id, season, competition_id, home_team_id, away_team_id, match_date, status,
			%s, %s
		FROM fixture_stats.match_stats
		WHERE (home_team_id = ? OR away_team_id = ?)
		  AND season = ?
		  AND status = 'FT'
		  AND %s IS NOT NULL AND %s IS NOT NULL
		ORDER BY match_date DESC
		LIMIT ?
	`, homeCol, awayCol, homeCol, awayCol)

	rows, err := s.ch.Query(ctx, query, teamID, teamID, season, limit)
	if err != nil {
		return nil, fmt.Errorf("team records query failed: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, metric)
}

// SharedRecords returns finished meetings between two specific teams over the
// last seasonsBack seasons, newest season included.
func (s *ObservationStore) SharedRecords(ctx context.Context, teamA, teamB string, metric models.Metric, seasonsBack int) ([]models.MatchStatRecord, error) {
	homeCol, awayCol, err := metricColumns(metric)
	if err != nil {
		return nil, err
	}
	if seasonsBack <= 0 {
		seasonsBack = 3
	}

	query := fmt.Sprintf(`
		SELECT match_id, season, competition_id, home_team_id, away_team_id, match_date, status,
			%s, %s
		FROM fixture_stats.match_stats
		WHERE ((home_team_id = ? AND away_team_id = ?) OR (home_team_id = ? AND away_team_id = ?))
		  AND status = 'FT'
		  AND %s IS NOT NULL AND %s IS NOT NULL
		  AND season >= (SELECT max(season) FROM fixture_stats.match_stats) - ?
		ORDER BY match_date ASC
	`, homeCol, awayCol, homeCol, awayCol)

	rows, err := s.ch.Query(ctx, query, teamA, teamB, teamB, teamA, seasonsBack)
	if err != nil {
		return nil, fmt.Errorf("shared records query failed: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows, metric)
}

func scanRecords(rows driver.Rows, metric models.Metric) ([]models.MatchStatRecord, error) {
	var out []models.MatchStatRecord
	for rows.Next() {
		var rec models.MatchStatRecord
		var season int64
		var home, away *float64
		if err := rows.Scan(
			&rec.MatchID, &season, &rec.CompetitionID,
			&rec.HomeTeamID, &rec.AwayTeamID, &rec.MatchDate, &rec.Status,
			&home, &away,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match stat row: %w", err)
		}
		rec.Season = int(season)
		switch metric {
		case models.MetricCorners:
			rec.HomeCorners, rec.AwayCorners = home, away
		case models.MetricCards:
			rec.HomeCards, rec.AwayCards = home, away
		case models.MetricGoals:
			rec.HomeGoals, rec.AwayGoals = home, away
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("match stat row iteration failed: %w", err)
	}
	return out, nil
}
