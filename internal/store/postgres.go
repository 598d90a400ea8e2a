package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fixturecast/stats-api/internal/logic"
	"github.com/fixturecast/stats-api/internal/models"
)

// PredictionPGStore persists prediction records and verified outcomes in
// Postgres. The statistical payload is stored as JSONB so the record round-
// trips without a column per field.
type PredictionPGStore struct {
	pg logic.PgPool
}

func NewPredictionPGStore(pg logic.PgPool) *PredictionPGStore {
	return &PredictionPGStore{pg: pg}
}

func (s *PredictionPGStore) SavePrediction(ctx context.Context, rec *models.PredictionRecord) error {
	payload, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal prediction: %w", err)
	}

	_, err = s.pg.Exec(ctx, `
		INSERT INTO predictions (id, home_team_id, away_team_id, season, metric, total_expected, payload, generated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO UPDATE SET
			total_expected = EXCLUDED.total_expected,
			payload = EXCLUDED.payload,
			generated_at = EXCLUDED.generated_at
	`, rec.ID, rec.HomeTeamID, rec.AwayTeamID, rec.Season, string(rec.Metric), rec.TotalExpected, payload, rec.GeneratedAt)
	if err != nil {
		return fmt.Errorf("insert prediction: %w", err)
	}
	return nil
}

func (s *PredictionPGStore) GetPrediction(ctx context.Context, id string) (*models.PredictionRecord, error) {
	var payload []byte
	err := s.pg.QueryRow(ctx, `SELECT payload FROM predictions WHERE id = $1`, id).Scan(&payload)
	if err != nil {
		return nil, fmt.Errorf("select prediction: %w", err)
	}

	var rec models.PredictionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("unmarshal prediction: %w", err)
	}
	return &rec, nil
}

func (s *PredictionPGStore) SaveOutcome(ctx context.Context, outcome models.PredictionOutcome) error {
	_, err := s.pg.Exec(ctx, `
		INSERT INTO prediction_outcomes (prediction_id, actual_total, verified_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (prediction_id) DO UPDATE SET
			actual_total = EXCLUDED.actual_total,
			verified_at = EXCLUDED.verified_at
	`, outcome.PredictionID, outcome.ActualTotal, outcome.VerifiedAt)
	if err != nil {
		return fmt.Errorf("insert outcome: %w", err)
	}
	return nil
}

func (s *PredictionPGStore) ScoredPredictions(ctx context.Context, metric models.Metric) ([]models.ScoredPrediction, error) {
	rows, err := s.pg.Query(ctx, `
		SELECT p.payload, o.actual_total, o.verified_at
		FROM predictions p
		JOIN prediction_outcomes o ON o.prediction_id = p.id
		WHERE p.metric = $1
		ORDER BY o.verified_at
	`, string(metric))
	if err != nil {
		return nil, fmt.Errorf("select scored predictions: %w", err)
	}
	defer rows.Close()

	var out []models.ScoredPrediction
	for rows.Next() {
		var sp models.ScoredPrediction
		var payload []byte
		if err := rows.Scan(&payload, &sp.Outcome.ActualTotal, &sp.Outcome.VerifiedAt); err != nil {
			return nil, fmt.Errorf("scan scored prediction: %w", err)
		}
		if err := json.Unmarshal(payload, &sp.Prediction); err != nil {
			return nil, fmt.Errorf("unmarshal scored prediction: %w", err)
		}
		sp.Outcome.PredictionID = sp.Prediction.ID
		out = append(out, sp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("scored prediction iteration failed: %w", err)
	}
	return out, nil
}
