package forecast

import (
	"errors"

	"crop-compass/internal/domain"
)

// Fixed ensemble weights. They must sum to exactly 1.0.
const (
	WeightSeasonal  = 0.40
	WeightLinear    = 0.25
	WeightSmoothing = 0.20
	WeightAR        = 0.15

	// SourceEnsemble labels predictions produced by the ensemble.
	SourceEnsemble = "Ensemble ML Prediction"
)

// Ensembler blends the seasonal, linear, smoothing, and autoregressive
// models into a single forecast.
type Ensembler struct {
	seasonal *SeasonalDecomposer
}

func NewEnsembler(seasonal *SeasonalDecomposer) *Ensembler {
	if seasonal == nil {
		seasonal = NewSeasonalDecomposer(nil)
	}
	return &Ensembler{seasonal: seasonal}
}

// Forecast runs all four sub-models and combines them per step. An
// autoregressive shortfall degrades to the linear value for that term; the
// ensemble call itself does not fail for it.
func (e *Ensembler) Forecast(points []domain.PricePoint, horizon int) ([]domain.PricePoint, error) {
	seasonalPreds, err := e.seasonal.Forecast(points, horizon)
	if err != nil {
		return nil, err
	}

	prices := priceSeries(points)
	n := len(prices)
	fit, err := FitTrend(indexSeries(n), prices)
	if err != nil {
		return nil, err
	}

	smoothed := ExponentialSmoothing(prices, DefaultSmoothingFactor)
	level := smoothed[len(smoothed)-1]

	arValues, arErr := AutoRegressive(prices, horizon, DefaultAROrder)
	if arErr != nil && !errors.Is(arErr, ErrInsufficientData) {
		return nil, arErr
	}

	out := make([]domain.PricePoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		linear := fit.Slope*float64(n+i) + fit.Intercept

		// TODO: the slope/intercept ratio blows up when the intercept is
		// near zero; unguarded pending a decision on the replacement term.
		smoothing := level * (1 + (fit.Slope/fit.Intercept)*0.01*float64(i))

		ar := linear
		if arErr == nil {
			ar = arValues[i-1]
		}

		combined := WeightSeasonal*seasonalPreds[i-1].Price +
			WeightLinear*linear +
			WeightSmoothing*smoothing +
			WeightAR*ar

		point := seasonalPreds[i-1]
		point.Price = combined
		point.Source = SourceEnsemble
		point.Quality = domain.QualityAIForecasted
		out = append(out, point)
	}
	return out, nil
}
