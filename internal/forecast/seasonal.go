package forecast

import (
	"fmt"
	"math/rand"

	"crop-compass/internal/domain"
)

const (
	seasonalTrendWindow = 24
	perturbationRange   = 0.05

	// SourceSeasonal labels predictions produced by the seasonal model.
	SourceSeasonal = "Seasonal"
)

// SeasonalDecomposer forecasts by combining per-calendar-month seasonal
// factors with a trend fitted over the trailing window. The random
// perturbation source is injected so tests can disable it (nil) or seed it.
type SeasonalDecomposer struct {
	rng *rand.Rand
}

func NewSeasonalDecomposer(rng *rand.Rand) *SeasonalDecomposer {
	return &SeasonalDecomposer{rng: rng}
}

// SeasonalFactors computes mean(month)/mean(all) for each calendar month.
// Months with no observations get the neutral factor 1.
func (d *SeasonalDecomposer) SeasonalFactors(points []domain.PricePoint) [13]float64 {
	var factors [13]float64
	for m := 1; m <= 12; m++ {
		factors[m] = 1
	}

	var sums [13]float64
	var counts [13]int
	total := 0.0
	for _, p := range points {
		if p.Month < 1 || p.Month > 12 {
			continue
		}
		sums[p.Month] += p.Price
		counts[p.Month]++
		total += p.Price
	}
	if len(points) == 0 {
		return factors
	}

	overall := total / float64(len(points))
	if overall == 0 {
		return factors
	}
	for m := 1; m <= 12; m++ {
		if counts[m] > 0 {
			factors[m] = (sums[m] / float64(counts[m])) / overall
		}
	}
	return factors
}

// Forecast produces horizon monthly predictions chronologically continuing
// from the last historical point.
func (d *SeasonalDecomposer) Forecast(points []domain.PricePoint, horizon int) ([]domain.PricePoint, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("seasonal forecast: %w", ErrInsufficientData)
	}

	factors := d.SeasonalFactors(points)

	window := points
	if len(window) > seasonalTrendWindow {
		window = window[len(window)-seasonalTrendWindow:]
	}
	ys := priceSeries(window)
	fit, err := FitTrend(indexSeries(len(ys)), ys)
	if err != nil {
		return nil, err
	}

	n := len(window)
	last := points[len(points)-1]
	year, month := last.Year, last.Month

	out := make([]domain.PricePoint, 0, horizon)
	for i := 1; i <= horizon; i++ {
		year, month = nextMonth(year, month)

		trendPrice := fit.Slope*float64(n+i) + fit.Intercept
		predicted := trendPrice * factors[month]
		if d.rng != nil {
			predicted *= 1 + (d.rng.Float64()*2-1)*perturbationRange
		}

		out = append(out, domain.PricePoint{
			ID:           domain.PointID(last.Commodity, year, month),
			Commodity:    last.Commodity,
			Year:         year,
			Month:        month,
			Price:        predicted,
			Unit:         last.Unit,
			Source:       SourceSeasonal,
			Quality:      domain.QualityForecasted,
			IsPrediction: true,
		})
	}
	return out, nil
}

func nextMonth(year, month int) (int, int) {
	month++
	if month > 12 {
		return year + 1, 1
	}
	return year, month
}

func priceSeries(points []domain.PricePoint) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p.Price
	}
	return out
}
