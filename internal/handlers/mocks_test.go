package handlers

import (
	"context"

	"github.com/fixturecast/stats-api/internal/models"
)

// MockPredictionService
type MockPredictionService struct {
	GeneratePredictionFunc func(ctx context.Context, req models.PredictRequest) (*models.PredictionRecord, error)
	GenerateBatchFunc      func(ctx context.Context, req models.BatchPredictRequest) (*models.BatchPredictResponse, error)
}

func (m *MockPredictionService) GeneratePrediction(ctx context.Context, req models.PredictRequest) (*models.PredictionRecord, error) {
	if m.GeneratePredictionFunc != nil {
		return m.GeneratePredictionFunc(ctx, req)
	}
	return &models.PredictionRecord{ID: "mock"}, nil
}

func (m *MockPredictionService) GenerateBatch(ctx context.Context, req models.BatchPredictRequest) (*models.BatchPredictResponse, error) {
	if m.GenerateBatchFunc != nil {
		return m.GenerateBatchFunc(ctx, req)
	}
	return &models.BatchPredictResponse{}, nil
}

// MockAccuracyService
type MockAccuracyService struct {
	RecordOutcomeFunc func(ctx context.Context, req models.VerifyOutcomeRequest) error
	SummaryFunc       func(ctx context.Context, metric models.Metric) (*models.AccuracySummary, error)
}

func (m *MockAccuracyService) RecordOutcome(ctx context.Context, req models.VerifyOutcomeRequest) error {
	if m.RecordOutcomeFunc != nil {
		return m.RecordOutcomeFunc(ctx, req)
	}
	return nil
}

func (m *MockAccuracyService) Summary(ctx context.Context, metric models.Metric) (*models.AccuracySummary, error) {
	if m.SummaryFunc != nil {
		return m.SummaryFunc(ctx, metric)
	}
	return &models.AccuracySummary{Metric: metric}, nil
}

// MockIngestQueue
type MockIngestQueue struct {
	EnqueueFunc func(rec models.MatchStatRecord) bool
	Enqueued    []models.MatchStatRecord
}

func (m *MockIngestQueue) Enqueue(rec models.MatchStatRecord) bool {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(rec)
	}
	m.Enqueued = append(m.Enqueued, rec)
	return true
}

func (m *MockIngestQueue) QueueDepth() int { return len(m.Enqueued) }
