package forecast

import (
	"math"
	"testing"

	"crop-compass/internal/domain"
)

func TestEnsembleWeightsSumToOne(t *testing.T) {
	t.Parallel()

	sum := WeightSeasonal + WeightLinear + WeightSmoothing + WeightAR
	if math.Abs(sum-1.0) > 1e-9 {
		t.Fatalf("ensemble weights sum to %v, want 1.0", sum)
	}
}

func TestEnsembleForecastLabelsAndTiming(t *testing.T) {
	t.Parallel()

	e := NewEnsembler(NewSeasonalDecomposer(nil))
	points := monthlySeries("WHEAT", 2022, 1, rampPrices(24, 6.0, 0.05))

	preds, err := e.Forecast(points, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(preds) != 12 {
		t.Fatalf("expected 12 predictions, got %d", len(preds))
	}
	if preds[0].Year != 2024 || preds[0].Month != 1 {
		t.Fatalf("expected first prediction at 2024-01, got %04d-%02d", preds[0].Year, preds[0].Month)
	}
	for i, p := range preds {
		if p.Source != SourceEnsemble || p.Quality != domain.QualityAIForecasted {
			t.Fatalf("prediction %d has wrong labels: source=%q quality=%q", i, p.Source, p.Quality)
		}
		if p.Unit != "USD/bushel" {
			t.Fatalf("prediction %d lost the unit: %q", i, p.Unit)
		}
	}
}

func TestEnsembleDegradesARToLinear(t *testing.T) {
	t.Parallel()

	// Three points: enough for the trend but not for AR(3).
	e := NewEnsembler(NewSeasonalDecomposer(nil))
	points := monthlySeries("OATS", 2024, 1, []float64{10, 20, 30})

	preds, err := e.Forecast(points, 1)
	if err != nil {
		t.Fatalf("ensemble must not fail when AR degrades: %v", err)
	}

	// Whole-series fit: slope 10, intercept 10, n = 3.
	seasonalPreds, err := NewSeasonalDecomposer(nil).Forecast(points, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	linear := 10.0*float64(3+1) + 10.0
	smoothed := ExponentialSmoothing([]float64{10, 20, 30}, DefaultSmoothingFactor)
	smoothing := smoothed[2] * (1 + (10.0/10.0)*0.01)
	want := WeightSeasonal*seasonalPreds[0].Price +
		WeightLinear*linear +
		WeightSmoothing*smoothing +
		WeightAR*linear

	if math.Abs(preds[0].Price-want) > 1e-9 {
		t.Fatalf("expected AR term substituted by linear: want %.6f, got %.6f", want, preds[0].Price)
	}
}

func TestEnsembleConstantSeriesStaysNearLevel(t *testing.T) {
	t.Parallel()

	e := NewEnsembler(NewSeasonalDecomposer(nil))
	points := monthlySeries("RICE", 2022, 1, constantPrices(24, 160))

	preds, err := e.Forecast(points, 12)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, p := range preds {
		if p.Price < 152 || p.Price > 168 {
			t.Fatalf("prediction %d left the 5%% band around 160: %.4f", i, p.Price)
		}
	}
}
