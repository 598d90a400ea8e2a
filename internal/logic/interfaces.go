package logic

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/fixturecast/stats-api/internal/models"
)

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// ObservationSource resolves already-normalized per-match stat records. The
// prediction pipeline never does network or storage access itself; this is
// the data-access collaborator.
type ObservationSource interface {
	// TeamRecords returns the most recent finished matches for a team in a
	// season that carry the requested metric.
	TeamRecords(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error)
	// SharedRecords returns historical meetings between two specific teams.
	SharedRecords(ctx context.Context, teamA, teamB string, metric models.Metric, seasonsBack int) ([]models.MatchStatRecord, error)
}

// PredictionStore persists prediction records and their verified outcomes.
type PredictionStore interface {
	SavePrediction(ctx context.Context, rec *models.PredictionRecord) error
	GetPrediction(ctx context.Context, id string) (*models.PredictionRecord, error)
	SaveOutcome(ctx context.Context, outcome models.PredictionOutcome) error
	// ScoredPredictions returns predictions that have a verified outcome.
	ScoredPredictions(ctx context.Context, metric models.Metric) ([]models.ScoredPrediction, error)
}

// ProfileCache is an optional read-through cache of team profiles. Get-or-
// compute must be atomic per key; correctness never depends on the cache.
type ProfileCache interface {
	GetOrCompute(ctx context.Context, key string, compute func(ctx context.Context) (*models.TeamMetricProfile, error)) (*models.TeamMetricProfile, error)
}

// PredictionService is the core's single logical operation plus its batch
// form.
type PredictionService interface {
	GeneratePrediction(ctx context.Context, req models.PredictRequest) (*models.PredictionRecord, error)
	GenerateBatch(ctx context.Context, req models.BatchPredictRequest) (*models.BatchPredictResponse, error)
}

// AccuracyService is the downstream consumer that compares stored predictions
// to verified outcomes. It reads predictions; nothing in the prediction
// pipeline reads it back.
type AccuracyService interface {
	RecordOutcome(ctx context.Context, req models.VerifyOutcomeRequest) error
	Summary(ctx context.Context, metric models.Metric) (*models.AccuracySummary, error)
}
