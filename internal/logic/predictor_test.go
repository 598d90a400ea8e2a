package logic

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/fixturecast/stats-api/internal/models"
)

func fixtureSource() *MockObservationSource {
	return &MockObservationSource{
		TeamRecordsFunc: func(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error) {
			switch teamID {
			case "team-a":
				return []models.MatchStatRecord{
					statRecord("a1", "team-a", "team-x", 1, f(5), f(4)),
					statRecord("a2", "team-a", "team-y", 2, f(6), f(3)),
					statRecord("a3", "team-a", "team-z", 3, f(7), f(4)),
					statRecord("a4", "team-a", "team-x", 4, f(5), f(5)),
					statRecord("a5", "team-a", "team-y", 5, f(6), f(4)),
				}, nil
			case "team-b":
				return []models.MatchStatRecord{
					statRecord("b1", "team-x", "team-b", 1, f(5), f(4)),
					statRecord("b2", "team-y", "team-b", 2, f(6), f(3)),
					statRecord("b3", "team-z", "team-b", 3, f(4), f(5)),
					statRecord("b4", "team-x", "team-b", 4, f(5), f(4)),
					statRecord("b5", "team-y", "team-b", 5, f(6), f(3)),
				}, nil
			}
			return nil, nil
		},
		SharedRecordsFunc: func(ctx context.Context, teamA, teamB string, metric models.Metric, seasonsBack int) ([]models.MatchStatRecord, error) {
			return []models.MatchStatRecord{
				statRecord("h1", "team-a", "team-b", 1, f(6), f(4)),
				statRecord("h2", "team-b", "team-a", 2, f(5), f(5)),
			}, nil
		},
	}
}

func predictRequest() models.PredictRequest {
	return models.PredictRequest{
		HomeTeamID: "team-a",
		AwayTeamID: "team-b",
		Season:     2025,
		Metric:     models.MetricCorners,
		Lines:      []float64{10.5, 8.5},
	}
}

func TestGeneratePrediction(t *testing.T) {
	svc := NewPredictionService(fixtureSource(), nil, nil, DefaultPredictorConfig(), zap.NewNop())

	rec, err := svc.GeneratePrediction(context.Background(), predictRequest())
	if err != nil {
		t.Fatalf("GeneratePrediction failed: %v", err)
	}

	if rec.ID == "" {
		t.Error("Record missing ID")
	}
	if rec.TotalExpected <= 0 {
		t.Errorf("TotalExpected = %v, want positive", rec.TotalExpected)
	}
	if len(rec.Lines) != 2 {
		t.Fatalf("Expected 2 line assessments, got %d", len(rec.Lines))
	}
	if rec.Lines[0].Line != 8.5 || rec.Lines[1].Line != 10.5 {
		t.Errorf("Lines not sorted ascending: %v", rec.Lines)
	}
	for _, la := range rec.Lines {
		if la.Confidence < 5 || la.Confidence > 95 {
			t.Errorf("Confidence %v outside [5, 95]", la.Confidence)
		}
		if la.Probability < 0 || la.Probability > 1 {
			t.Errorf("Probability %v outside [0, 1]", la.Probability)
		}
	}
	if rec.DataQuality != models.DataQualityMedium {
		t.Errorf("DataQuality = %v, want medium for 5 samples per side", rec.DataQuality)
	}
	if rec.HeadToHead == nil || rec.HeadToHead.MatchesConsidered != 2 {
		t.Errorf("HeadToHead = %+v, want 2 matches considered", rec.HeadToHead)
	}
}

func TestGeneratePredictionDeterministic(t *testing.T) {
	svc := NewPredictionService(fixtureSource(), nil, nil, DefaultPredictorConfig(), zap.NewNop())

	first, err := svc.GeneratePrediction(context.Background(), predictRequest())
	if err != nil {
		t.Fatalf("First call failed: %v", err)
	}
	second, err := svc.GeneratePrediction(context.Background(), predictRequest())
	if err != nil {
		t.Fatalf("Second call failed: %v", err)
	}

	if first.ID != second.ID {
		t.Errorf("IDs differ for identical inputs: %s vs %s", first.ID, second.ID)
	}
	if first.HomeExpected != second.HomeExpected || first.TotalExpected != second.TotalExpected {
		t.Error("Expectations differ for identical inputs")
	}
	for i := range first.Lines {
		if first.Lines[i] != second.Lines[i] {
			t.Errorf("Line %d differs: %+v vs %+v", i, first.Lines[i], second.Lines[i])
		}
	}
}

func TestGeneratePredictionIdenticalTeams(t *testing.T) {
	svc := NewPredictionService(fixtureSource(), nil, nil, DefaultPredictorConfig(), zap.NewNop())

	req := predictRequest()
	req.AwayTeamID = req.HomeTeamID

	_, err := svc.GeneratePrediction(context.Background(), req)
	var identical *IdenticalTeamsError
	if !errors.As(err, &identical) {
		t.Fatalf("Expected IdenticalTeamsError, got %v", err)
	}
}

func TestGeneratePredictionInvalidLine(t *testing.T) {
	svc := NewPredictionService(fixtureSource(), nil, nil, DefaultPredictorConfig(), zap.NewNop())

	req := predictRequest()
	req.Lines = []float64{9.0}

	_, err := svc.GeneratePrediction(context.Background(), req)
	var invalid *InvalidLineError
	if !errors.As(err, &invalid) {
		t.Fatalf("Expected InvalidLineError, got %v", err)
	}
}

func TestGeneratePredictionInsufficientData(t *testing.T) {
	source := fixtureSource()
	source.TeamRecordsFunc = func(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error) {
		return []models.MatchStatRecord{
			statRecord("m1", "team-a", "team-x", 1, f(5), f(4)),
			statRecord("m2", "team-a", "team-y", 2, f(6), f(3)),
		}, nil
	}
	svc := NewPredictionService(source, nil, nil, DefaultPredictorConfig(), zap.NewNop())

	_, err := svc.GeneratePrediction(context.Background(), predictRequest())
	var insufficient *InsufficientDataError
	if !errors.As(err, &insufficient) {
		t.Fatalf("Expected InsufficientDataError, got %v", err)
	}
}

func TestGeneratePredictionSurvivesStoreFailure(t *testing.T) {
	store := &MockPredictionStore{
		SavePredictionFunc: func(ctx context.Context, rec *models.PredictionRecord) error {
			return errors.New("postgres down")
		},
	}
	svc := NewPredictionService(fixtureSource(), store, nil, DefaultPredictorConfig(), zap.NewNop())

	rec, err := svc.GeneratePrediction(context.Background(), predictRequest())
	if err != nil {
		t.Fatalf("Prediction must survive a persistence failure, got %v", err)
	}
	if rec == nil || rec.TotalExpected <= 0 {
		t.Error("Record missing despite successful pipeline")
	}
}

func TestGeneratePredictionReferenceScenario(t *testing.T) {
	// Home side won [6,7,5,8,6] corners at home; away side conceded
	// [4,5,6,4,5] away. The home expectation must stay in the band those
	// figures span, and clearing 5.5 must look likelier than not.
	homeWon := []float64{6, 7, 5, 8, 6}
	awayConceded := []float64{4, 5, 6, 4, 5}

	source := &MockObservationSource{
		TeamRecordsFunc: func(ctx context.Context, teamID string, season int, metric models.Metric, limit int) ([]models.MatchStatRecord, error) {
			var recs []models.MatchStatRecord
			for i := 0; i < 5; i++ {
				if teamID == "team-a" {
					recs = append(recs, statRecord("a", "team-a", "team-x", i, f(homeWon[i]), f(5)))
				} else {
					recs = append(recs, statRecord("b", "team-y", "team-b", i, f(awayConceded[i]), f(3)))
				}
			}
			return recs, nil
		},
	}
	svc := NewPredictionService(source, nil, nil, DefaultPredictorConfig(), zap.NewNop())

	req := predictRequest()
	req.Lines = []float64{5.5}
	rec, err := svc.GeneratePrediction(context.Background(), req)
	if err != nil {
		t.Fatalf("GeneratePrediction failed: %v", err)
	}

	if rec.HomeExpected < 5 || rec.HomeExpected > 7 {
		t.Errorf("HomeExpected = %v, want within [5, 7]", rec.HomeExpected)
	}
	if rec.Lines[0].Probability <= 0.5 {
		t.Errorf("P(over 5.5) = %v, want > 0.5", rec.Lines[0].Probability)
	}
}

func TestGeneratePredictionLinesDoNotMoveExpectations(t *testing.T) {
	svc := NewPredictionService(fixtureSource(), nil, nil, DefaultPredictorConfig(), zap.NewNop())

	first, err := svc.GeneratePrediction(context.Background(), predictRequest())
	if err != nil {
		t.Fatalf("First call failed: %v", err)
	}

	req := predictRequest()
	req.Lines = []float64{3.5, 6.5, 12.5}
	second, err := svc.GeneratePrediction(context.Background(), req)
	if err != nil {
		t.Fatalf("Second call failed: %v", err)
	}

	if first.HomeExpected != second.HomeExpected ||
		first.AwayExpected != second.AwayExpected ||
		first.TotalExpected != second.TotalExpected {
		t.Error("Changing the lines set must not change the expectations")
	}
	if len(second.Lines) != 3 {
		t.Errorf("Expected 3 assessments, got %d", len(second.Lines))
	}
}

func TestGenerateBatchCollectsPerFixtureErrors(t *testing.T) {
	svc := NewPredictionService(fixtureSource(), nil, nil, DefaultPredictorConfig(), zap.NewNop())

	req := models.BatchPredictRequest{
		Fixtures: []models.PredictRequest{
			predictRequest(),
			{HomeTeamID: "team-c", AwayTeamID: "team-c", Season: 2025, Metric: models.MetricCorners, Lines: []float64{8.5}},
		},
	}

	resp, err := svc.GenerateBatch(context.Background(), req)
	if err != nil {
		t.Fatalf("GenerateBatch failed: %v", err)
	}

	if len(resp.Predictions) != 1 {
		t.Errorf("Expected 1 successful prediction, got %d", len(resp.Predictions))
	}
	if _, ok := resp.Errors["team-c:team-c"]; !ok {
		t.Errorf("Expected per-fixture error for team-c:team-c, got %v", resp.Errors)
	}
}
