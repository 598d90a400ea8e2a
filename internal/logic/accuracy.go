package logic

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/fixturecast/stats-api/internal/models"
)

// accuracyService scores past predictions against verified results. It lives
// strictly downstream of the prediction pipeline: its output is contextual
// ("this metric has been T% accurate historically") and is never fed back
// into confidence computation.
type accuracyService struct {
	store  PredictionStore
	logger *zap.SugaredLogger
}

func NewAccuracyService(store PredictionStore, logger *zap.Logger) AccuracyService {
	return &accuracyService{store: store, logger: logger.Sugar()}
}

func (s *accuracyService) RecordOutcome(ctx context.Context, req models.VerifyOutcomeRequest) error {
	if _, err := s.store.GetPrediction(ctx, req.PredictionID); err != nil {
		return fmt.Errorf("prediction %s not found: %w", req.PredictionID, err)
	}

	outcome := models.PredictionOutcome{
		PredictionID: req.PredictionID,
		ActualTotal:  req.ActualTotal,
		VerifiedAt:   time.Now().UTC(),
	}
	if err := s.store.SaveOutcome(ctx, outcome); err != nil {
		return fmt.Errorf("save outcome: %w", err)
	}

	s.logger.Infow("Outcome recorded", "prediction_id", req.PredictionID, "actual_total", req.ActualTotal)
	return nil
}

// Summary aggregates line-call hit rate and expectation error for a metric.
// A line call is "over" when its probability exceeded 0.5; it counts as a hit
// when the verified total landed on the same side of the line.
func (s *accuracyService) Summary(ctx context.Context, metric models.Metric) (*models.AccuracySummary, error) {
	scored, err := s.store.ScoredPredictions(ctx, metric)
	if err != nil {
		return nil, fmt.Errorf("load scored predictions: %w", err)
	}

	summary := &models.AccuracySummary{Metric: metric, PredictionsScored: len(scored)}
	if len(scored) == 0 {
		return summary, nil
	}

	var calls, hits int
	var absErr float64
	for _, sp := range scored {
		absErr += math.Abs(sp.Outcome.ActualTotal - sp.Prediction.TotalExpected)
		for _, la := range sp.Prediction.Lines {
			calls++
			calledOver := la.Probability > 0.5
			wentOver := sp.Outcome.ActualTotal > la.Line
			if calledOver == wentOver {
				hits++
			}
		}
	}

	if calls > 0 {
		summary.LineHitRate = float64(hits) / float64(calls)
	}
	summary.MeanAbsoluteError = absErr / float64(len(scored))
	return summary, nil
}
