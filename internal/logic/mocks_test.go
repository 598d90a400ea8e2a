package logic

import (
	"context"

	"github.com/fixturecast/stats-api/internal/models"
)

// MockObservationSource
type MockObservationSource struct {
	TeamRecordsFunc   func(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error)
	SharedRecordsFunc func(ctx context.Context, teamA, teamB string, metric models.Metric, seasonsBack int) ([]models.MatchStatRecord, error)
}

func (m *MockObservationSource) TeamRecords(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error) {
	if m.TeamRecordsFunc != nil {
		return m.TeamRecordsFunc(ctx, teamID, season, metric, limit)
	}
	return nil, nil
}

func (m *MockObservationSource) SharedRecords(ctx context.Context, teamA, teamB string, metric models.Metric, seasonsBack int) ([]models.MatchStatRecord, error) {
	if m.SharedRecordsFunc != nil {
		return m.SharedRecordsFunc(ctx, teamA, teamB, metric, seasonsBack)
	}
	return nil, nil
}

// MockPredictionStore
type MockPredictionStore struct {
	SavePredictionFunc    func(ctx context.Context, rec *models.PredictionRecord) error
	GetPredictionFunc     func(ctx context.Context, id string) (*models.PredictionRecord, error)
	SaveOutcomeFunc       func(ctx context.Context, outcome models.PredictionOutcome) error
	ScoredPredictionsFunc func(ctx context.Context, metric models.Metric) ([]models.ScoredPrediction, error)
}

func (m *MockPredictionStore) SavePrediction(ctx context.Context, rec *models.PredictionRecord) error {
	if m.SavePredictionFunc != nil {
		return m.SavePredictionFunc(ctx, rec)
	}
	return nil
}

func (m *MockPredictionStore) GetPrediction(ctx context.Context, id string) (*models.PredictionRecord, error) {
	if m.GetPredictionFunc != nil {
		return m.GetPredictionFunc(ctx, id)
	}
	return &models.PredictionRecord{ID: id}, nil
}

func (m *MockPredictionStore) SaveOutcome(ctx context.Context, outcome models.PredictionOutcome) error {
	if m.SaveOutcomeFunc != nil {
		return m.SaveOutcomeFunc(ctx, outcome)
	}
	return nil
}

func (m *MockPredictionStore) ScoredPredictions(ctx context.Context, metric models.Metric) ([]models.ScoredPrediction, error) {
	if m.ScoredPredictionsFunc != nil {
		return m.ScoredPredictionsFunc(ctx, metric)
	}
	return nil, nil
}
