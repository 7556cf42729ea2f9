package forecast

import (
	"context"
	"fmt"
	"log"
	"math"
	"math/rand"

	"crop-compass/internal/domain"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	minHistoryMonths   = 12
	limitedHistoryMin  = 6
	defaultHorizon     = 12
	fallbackConfidence = 0.60
	fallbackGrowth     = 0.02 / 12

	// FallbackModelName labels the deterministic constant-growth result
	// returned when any forecasting path fails.
	FallbackModelName = "Simple Trend Model (Fallback)"

	// SourceLinear labels predictions from the standalone linear path.
	SourceLinear = "Linear Trend"
)

var modelRegistry = []domain.ModelInfo{
	{Name: string(domain.ModelEnsemble), Accuracy: 0.85, Description: "Weighted blend of seasonal, linear, smoothing, and autoregressive models"},
	{Name: string(domain.ModelSeasonal), Accuracy: 0.75, Description: "Per-calendar-month seasonal factors with trend extrapolation"},
	{Name: string(domain.ModelLinear), Accuracy: 0.65, Description: "Ordinary least-squares linear trend extrapolation"},
}

// Service orchestrates model selection, input validation, confidence
// attachment, and graceful fallback. It holds no mutable state between
// calls; the injected random source only feeds the seasonal perturbation.
type Service struct {
	tracer   trace.Tracer
	seasonal *SeasonalDecomposer
	ensemble *Ensembler
}

func NewService(tracer trace.Tracer, rng *rand.Rand) *Service {
	seasonal := NewSeasonalDecomposer(rng)
	return &Service{
		tracer:   tracer,
		seasonal: seasonal,
		ensemble: NewEnsembler(seasonal),
	}
}

// GeneratePredictions forecasts monthsAhead months with the selected model.
// It always returns a usable result: any internal failure is replaced by the
// deterministic constant-growth fallback with lowered confidence.
func (s *Service) GeneratePredictions(ctx context.Context, data []domain.PricePoint, monthsAhead int, model domain.ForecastModel) domain.ForecastResult {
	_, span := s.tracer.Start(ctx, "forecast.generate-predictions")
	defer span.End()

	if monthsAhead < 1 {
		monthsAhead = defaultHorizon
	}
	if !model.IsValid() {
		model = domain.ModelEnsemble
	}
	span.SetAttributes(
		attribute.String("model", string(model)),
		attribute.Int("months_ahead", monthsAhead),
		attribute.Int("history_points", len(data)),
	)

	result, err := s.generate(data, monthsAhead, model)
	if err != nil {
		span.RecordError(err)
		log.Printf("forecast %s failed (%v), using fallback", model, err)
		return s.fallback(data, monthsAhead)
	}
	return result
}

func (s *Service) generate(data []domain.PricePoint, horizon int, model domain.ForecastModel) (domain.ForecastResult, error) {
	if len(data) < minHistoryMonths {
		return domain.ForecastResult{}, fmt.Errorf("need at least %d months, have %d: %w",
			minHistoryMonths, len(data), ErrInsufficientData)
	}

	var (
		predictions []domain.PricePoint
		methods     []string
		err         error
	)
	switch model {
	case domain.ModelSeasonal:
		predictions, err = s.seasonal.Forecast(data, horizon)
		methods = []string{"Seasonal Decomposition"}
	case domain.ModelLinear:
		predictions, err = s.linearForecast(data, horizon)
		methods = []string{"Linear Trend"}
	default:
		predictions, err = s.ensemble.Forecast(data, horizon)
		methods = []string{"Seasonal Decomposition", "Linear Trend", "Exponential Smoothing", "Autoregressive"}
	}
	if err != nil {
		return domain.ForecastResult{}, err
	}

	if err := attachIntervals(data, predictions, DefaultConfidenceLevel); err != nil {
		return domain.ForecastResult{}, err
	}

	accuracy := registryAccuracy(string(model))
	return domain.ForecastResult{
		Predictions: predictions,
		Confidence:  accuracy,
		Model:       string(model),
		Accuracy:    accuracy,
		Metadata: domain.ForecastMetadata{
			MethodsUsed:    methods,
			DataPointsUsed: len(data),
			ForecastPeriod: horizon,
		},
	}, nil
}

func (s *Service) linearForecast(data []domain.PricePoint, horizon int) ([]domain.PricePoint, error) {
	prices := priceSeries(data)
	n := len(prices)
	fit, err := FitTrend(indexSeries(n), prices)
	if err != nil {
		return nil, err
	}

	last := data[len(data)-1]
	year, month := last.Year, last.Month
	out := make([]domain.PricePoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		year, month = nextMonth(year, month)
		out = append(out, domain.PricePoint{
			ID:           domain.PointID(last.Commodity, year, month),
			Commodity:    last.Commodity,
			Year:         year,
			Month:        month,
			Price:        fit.Slope*float64(n+i) + fit.Intercept,
			Unit:         last.Unit,
			Source:       SourceLinear,
			Quality:      domain.QualityForecasted,
			IsPrediction: true,
		})
	}
	return out, nil
}

// fallback builds the constant-growth result: the trailing-12-month average
// compounded at 2%/12 per month. It uses no randomness.
func (s *Service) fallback(data []domain.PricePoint, horizon int) domain.ForecastResult {
	result := domain.ForecastResult{
		Confidence: fallbackConfidence,
		Model:      FallbackModelName,
		Accuracy:   fallbackConfidence,
		Metadata: domain.ForecastMetadata{
			MethodsUsed:    []string{"Constant Growth"},
			DataPointsUsed: len(data),
			ForecastPeriod: horizon,
		},
	}
	if len(data) == 0 {
		return result
	}

	avg := trailingAverage(priceSeries(data), minHistoryMonths)
	last := data[len(data)-1]
	year, month := last.Year, last.Month
	predictions := make([]domain.PricePoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		year, month = nextMonth(year, month)
		predictions = append(predictions, domain.PricePoint{
			ID:           domain.PointID(last.Commodity, year, month),
			Commodity:    last.Commodity,
			Year:         year,
			Month:        month,
			Price:        avg * math.Pow(1+fallbackGrowth, float64(i)),
			Unit:         last.Unit,
			Source:       "Simple Trend",
			Quality:      domain.QualityForecasted,
			IsPrediction: true,
		})
	}
	// Intervals are best-effort here; the fallback must never fail.
	_ = attachIntervals(data, predictions, DefaultConfidenceLevel)

	result.Predictions = predictions
	return result
}

func attachIntervals(history, predictions []domain.PricePoint, level float64) error {
	predicted := priceSeries(predictions)
	lower, upper, err := ConfidenceIntervals(priceSeries(history), predicted, level)
	if err != nil {
		return err
	}
	for i := range predictions {
		predictions[i].ConfidenceInterval = &domain.ConfidenceInterval{Lower: lower[i], Upper: upper[i]}
	}
	return nil
}

// ValidateDataForPrediction is a pure pre-check. It never fails; data
// problems are reported in the result.
func (s *Service) ValidateDataForPrediction(data []domain.PricePoint) domain.ValidationResult {
	switch {
	case len(data) == 0:
		return domain.ValidationResult{
			Valid:   false,
			Message: "no historical data available",
			Recommendations: []string{
				"load at least 12 months of price history before forecasting",
			},
		}
	case len(data) < limitedHistoryMin:
		return domain.ValidationResult{
			Valid:   false,
			Message: fmt.Sprintf("insufficient data: %d months available, at least %d required", len(data), limitedHistoryMin),
			Recommendations: []string{
				"extend the date range or pick a commodity with longer history",
			},
		}
	case len(data) < minHistoryMonths:
		return domain.ValidationResult{
			Valid:   true,
			Message: fmt.Sprintf("limited data: %d months available", len(data)),
			Recommendations: []string{
				"forecasts may be unreliable with fewer than 12 months of history",
			},
		}
	default:
		return domain.ValidationResult{
			Valid:   true,
			Message: fmt.Sprintf("sufficient data for prediction: %d months", len(data)),
		}
	}
}

// AvailableModels returns the static model registry used for display.
func (s *Service) AvailableModels() []domain.ModelInfo {
	out := make([]domain.ModelInfo, len(modelRegistry))
	copy(out, modelRegistry)
	return out
}

func registryAccuracy(name string) float64 {
	for _, m := range modelRegistry {
		if m.Name == name {
			return m.Accuracy
		}
	}
	return fallbackConfidence
}
