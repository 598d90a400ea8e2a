package logic

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/fixturecast/stats-api/internal/models"
)

var (
	predictionsGenerated = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixturecast_predictions_generated_total",
		Help: "Total number of predictions generated, by metric",
	}, []string{"metric"})

	predictionsFailed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "fixturecast_predictions_failed_total",
		Help: "Total number of prediction requests that failed, by metric",
	}, []string{"metric"})

	predictionDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "fixturecast_prediction_duration_seconds",
		Help:    "Duration of single prediction generation",
		Buckets: prometheus.DefBuckets,
	})
)

// predictionNamespace is the UUID namespace for deterministic record IDs:
// identical inputs always produce the identical record.
var predictionNamespace = uuid.MustParse("7f1b8a44-9c14-4a51-b1fb-2a0aa46d5f6e")

// PredictorConfig groups the tunables of the whole pipeline.
type PredictorConfig struct {
	Consistency ConsistencyConfig
	HeadToHead  HeadToHeadConfig
	Engine      EngineConfig
	Series      SeriesOptions
	// SeasonsBack bounds how far shared-history lookups reach.
	SeasonsBack int
	// BatchParallelism caps concurrent fixture predictions in a batch.
	BatchParallelism int
}

func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		Consistency:      DefaultConsistencyConfig(),
		HeadToHead:       DefaultHeadToHeadConfig(),
		Engine:           DefaultEngineConfig(),
		Series:           SeriesOptions{MinSamples: 3, MaxSamples: 20},
		SeasonsBack:      3,
		BatchParallelism: 8,
	}
}

type predictionService struct {
	source   ObservationSource
	store    PredictionStore
	cache    ProfileCache
	analyzer *ConsistencyAnalyzer
	h2h      *HeadToHeadAnalyzer
	engine   *PredictionEngine
	cfg      PredictorConfig
	logger   *zap.SugaredLogger
}

// NewPredictionService wires the full pipeline. store and cache may be nil:
// persistence is best-effort and the cache is purely an optimization.
func NewPredictionService(source ObservationSource, store PredictionStore, cache ProfileCache, cfg PredictorConfig, logger *zap.Logger) PredictionService {
	if cfg.SeasonsBack <= 0 {
		cfg.SeasonsBack = 3
	}
	if cfg.BatchParallelism <= 0 {
		cfg.BatchParallelism = 8
	}
	h2h := NewHeadToHeadAnalyzer(cfg.HeadToHead)
	return &predictionService{
		source:   source,
		store:    store,
		cache:    cache,
		analyzer: NewConsistencyAnalyzer(cfg.Consistency),
		h2h:      h2h,
		engine:   NewPredictionEngine(cfg.Engine, h2h.MeetingCap()),
		cfg:      cfg,
		logger:   logger.Sugar(),
	}
}

func (s *predictionService) GeneratePrediction(ctx context.Context, req models.PredictRequest) (*models.PredictionRecord, error) {
	start := time.Now()

	rec, err := s.generate(ctx, req)
	if err != nil {
		predictionsFailed.WithLabelValues(string(req.Metric)).Inc()
		return nil, err
	}
	predictionsGenerated.WithLabelValues(string(req.Metric)).Inc()
	predictionDuration.Observe(time.Since(start).Seconds())

	if s.store != nil {
		if err := s.store.SavePrediction(ctx, rec); err != nil {
			// Persistence is the caller's concern; the record is still valid.
			s.logger.Warnw("Failed to persist prediction", "error", err, "id", rec.ID)
		}
	}
	return rec, nil
}

func (s *predictionService) generate(ctx context.Context, req models.PredictRequest) (*models.PredictionRecord, error) {
	if req.HomeTeamID == req.AwayTeamID {
		return nil, &IdenticalTeamsError{TeamID: req.HomeTeamID}
	}
	for _, l := range req.Lines {
		if err := ValidateLine(l); err != nil {
			return nil, err
		}
	}

	// Home and away profiles are independent; compute them in parallel.
	var homeProfile, awayProfile *models.TeamMetricProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		p, err := s.teamProfile(gctx, req.HomeTeamID, req.Season, req.Metric, models.VenueHome)
		homeProfile = p
		return err
	})
	g.Go(func() error {
		p, err := s.teamProfile(gctx, req.AwayTeamID, req.Season, req.Metric, models.VenueAway)
		awayProfile = p
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	baseHome, baseAway, err := s.engine.Expectations(homeProfile, awayProfile)
	if err != nil {
		return nil, err
	}

	shared, err := s.source.SharedRecords(ctx, req.HomeTeamID, req.AwayTeamID, req.Metric, s.cfg.SeasonsBack)
	if err != nil {
		return nil, fmt.Errorf("shared history lookup: %w", err)
	}
	h2hProfile := s.h2h.Analyze(req.HomeTeamID, req.AwayTeamID, shared, req.Metric, baseHome+baseAway)

	homeExp, awayExp, totalExp, err := s.engine.Predict(homeProfile, awayProfile, h2hProfile)
	if err != nil {
		return nil, err
	}

	lines := make([]models.Line, len(req.Lines))
	for i, v := range req.Lines {
		lines[i] = models.Line{Value: v}
	}
	calc := NewConfidenceCalculator(DefaultConfidenceConfig(req.Metric))
	assessments, err := calc.ScoreLines(totalExp, lines, homeProfile, awayProfile)
	if err != nil {
		return nil, err
	}

	rec := &models.PredictionRecord{
		ID:            s.recordID(req),
		HomeTeamID:    req.HomeTeamID,
		AwayTeamID:    req.AwayTeamID,
		Season:        req.Season,
		Metric:        req.Metric,
		HomeExpected:  homeExp,
		AwayExpected:  awayExp,
		TotalExpected: totalExp,
		Lines:         assessments,
		DataQuality:   ClassifyDataQuality(homeProfile, awayProfile),
		HomeProfile:   homeProfile,
		AwayProfile:   awayProfile,
		HeadToHead:    h2hProfile,
		GeneratedAt:   time.Now().UTC(),
	}

	s.logger.Infow("Prediction generated",
		"home", req.HomeTeamID,
		"away", req.AwayTeamID,
		"metric", req.Metric,
		"total_expected", totalExp,
		"data_quality", rec.DataQuality,
	)
	return rec, nil
}

// teamProfile builds and analyzes one team's series, going through the
// read-through cache when one is configured.
func (s *predictionService) teamProfile(ctx context.Context, teamID string, season int, metric models.Metric, venue models.Venue) (*models.TeamMetricProfile, error) {
	compute := func(ctx context.Context) (*models.TeamMetricProfile, error) {
		records, err := s.source.TeamRecords(ctx, teamID, season, metric, s.cfg.Series.MaxSamples)
		if err != nil {
			return nil, fmt.Errorf("team records lookup for %s: %w", teamID, err)
		}
		series, err := BuildSeries(records, teamID, metric, venue, s.cfg.Series)
		if err != nil {
			return nil, err
		}
		return s.analyzer.Analyze(series), nil
	}

	if s.cache == nil {
		return compute(ctx)
	}
	key := fmt.Sprintf("profile:%s:%d:%s:%s", teamID, season, metric, venue)
	return s.cache.GetOrCompute(ctx, key, compute)
}

// GenerateBatch predicts many fixtures concurrently. Each fixture is
// independent, so failures are collected per fixture instead of aborting the
// batch.
func (s *predictionService) GenerateBatch(ctx context.Context, req models.BatchPredictRequest) (*models.BatchPredictResponse, error) {
	resp := &models.BatchPredictResponse{
		Predictions: make([]*models.PredictionRecord, len(req.Fixtures)),
	}

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.BatchParallelism)

	for i, fixture := range req.Fixtures {
		i, fixture := i, fixture
		g.Go(func() error {
			rec, err := s.GeneratePrediction(gctx, fixture)
			if err != nil {
				mu.Lock()
				if resp.Errors == nil {
					resp.Errors = make(map[string]string)
				}
				resp.Errors[fixture.HomeTeamID+":"+fixture.AwayTeamID] = err.Error()
				mu.Unlock()
				return nil
			}
			resp.Predictions[i] = rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// Compact out failed slots, preserving request order.
	kept := resp.Predictions[:0]
	for _, rec := range resp.Predictions {
		if rec != nil {
			kept = append(kept, rec)
		}
	}
	resp.Predictions = kept
	return resp, nil
}

// recordID derives a stable UUID from the prediction inputs.
func (s *predictionService) recordID(req models.PredictRequest) string {
	key := fmt.Sprintf("%s|%s|%d|%s", req.HomeTeamID, req.AwayTeamID, req.Season, req.Metric)
	return uuid.NewSHA1(predictionNamespace, []byte(key)).String()
}
