package forecast

import "fmt"

// TrendFit is an ordinary least-squares line over an index/price series.
type TrendFit struct {
	Slope     float64
	Intercept float64
	R2        float64
}

// FitTrend fits y = slope*x + intercept by closed-form OLS and reports R².
func FitTrend(xs, ys []float64) (TrendFit, error) {
	if len(xs) == 0 || len(xs) != len(ys) {
		return TrendFit{}, fmt.Errorf("trend fit over %d/%d points: %w", len(xs), len(ys), ErrDegenerateInput)
	}

	n := float64(len(xs))
	var sumX, sumY, sumXY, sumX2 float64
	for i := range xs {
		sumX += xs[i]
		sumY += ys[i]
		sumXY += xs[i] * ys[i]
		sumX2 += xs[i] * xs[i]
	}

	denominator := n*sumX2 - sumX*sumX
	if denominator == 0 {
		return TrendFit{}, fmt.Errorf("all x values are identical: %w", ErrDegenerateInput)
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	meanY := sumY / n
	var ssRes, ssTot float64
	for i := range ys {
		fitted := slope*xs[i] + intercept
		d := ys[i] - fitted
		ssRes += d * d
		t := ys[i] - meanY
		ssTot += t * t
	}

	r2 := 0.0
	if ssTot > 0 {
		r2 = 1 - ssRes/ssTot
	} else if ssRes < 1e-12 {
		// Constant series fitted exactly by a flat line.
		r2 = 1
	}

	return TrendFit{Slope: slope, Intercept: intercept, R2: r2}, nil
}

func indexSeries(n int) []float64 {
	xs := make([]float64, n)
	for i := range xs {
		xs[i] = float64(i)
	}
	return xs
}
