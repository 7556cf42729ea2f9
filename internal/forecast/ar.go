package forecast

import (
	"fmt"
	"math"
)

const (
	// DefaultAROrder is the number of lags used by the autoregressive model.
	DefaultAROrder = 3

	// arDamping scales lag correlations into coefficients. This is a
	// deliberate approximation, not a least-squares AR fit.
	arDamping = 0.3

	arBlendWeight    = 0.7
	arTrailingWindow = 12
)

// AutoRegressive forecasts horizon steps with a correlation-weighted AR(p)
// model. Each predicted step is appended to the series before the next is
// computed, and every step is blended with the trailing average.
func AutoRegressive(values []float64, horizon, order int) ([]float64, error) {
	if order <= 0 {
		order = DefaultAROrder
	}
	if len(values) <= order {
		return nil, fmt.Errorf("ar(%d) needs more than %d points, have %d: %w",
			order, order, len(values), ErrInsufficientData)
	}

	coefficients := make([]float64, order+1)
	for lag := 1; lag <= order; lag++ {
		coefficients[lag] = pearson(values[:len(values)-lag], values[lag:]) * arDamping
	}

	extended := append([]float64(nil), values...)
	out := make([]float64, 0, horizon)
	for step := 0; step < horizon; step++ {
		forecast := 0.0
		for lag := 1; lag <= order; lag++ {
			forecast += coefficients[lag] * extended[len(extended)-lag]
		}
		blended := arBlendWeight*forecast + (1-arBlendWeight)*trailingAverage(extended, arTrailingWindow)
		extended = append(extended, blended)
		out = append(out, blended)
	}
	return out, nil
}

func pearson(x, y []float64) float64 {
	n := float64(len(x))
	if n == 0 || len(x) != len(y) {
		return 0
	}
	var sumX, sumY float64
	for i := range x {
		sumX += x[i]
		sumY += y[i]
	}
	meanX, meanY := sumX/n, sumY/n

	var cov, varX, varY float64
	for i := range x {
		dx := x[i] - meanX
		dy := y[i] - meanY
		cov += dx * dy
		varX += dx * dx
		varY += dy * dy
	}
	if varX == 0 && varY == 0 {
		// Two constant windows track each other perfectly. Treating this
		// as full correlation keeps the AR term anchored to the level of a
		// flat series instead of collapsing toward zero.
		return 1
	}
	if varX == 0 || varY == 0 {
		return 0
	}
	return cov / math.Sqrt(varX*varY)
}

func trailingAverage(values []float64, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if window > len(values) {
		window = len(values)
	}
	sum := 0.0
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}
