package forecast

import (
	"fmt"
	"math"
)

// DefaultConfidenceLevel is used when the caller does not pick one.
const DefaultConfidenceLevel = 0.95

// zScore maps recognized confidence levels to their z value. Unrecognized
// levels fall back to the 90% z.
func zScore(level float64) float64 {
	switch level {
	case 0.95:
		return 1.96
	case 0.99:
		return 2.58
	default:
		return 1.645
	}
}

// Volatility is the root-mean-square of period-over-period relative returns.
// It is intentionally not a mean-centered standard deviation.
func Volatility(history []float64) (float64, error) {
	if len(history) < 2 {
		return 0, fmt.Errorf("volatility needs at least 2 points, have %d: %w", len(history), ErrComputation)
	}
	sumSq := 0.0
	for i := 1; i < len(history); i++ {
		if history[i-1] == 0 {
			return 0, fmt.Errorf("zero price at index %d: %w", i-1, ErrComputation)
		}
		r := (history[i] - history[i-1]) / history[i-1]
		sumSq += r * r
	}
	return math.Sqrt(sumSq / float64(len(history)-1)), nil
}

// ConfidenceIntervals builds lower/upper bounds around each prediction,
// widening with the square root of the forecast distance.
func ConfidenceIntervals(history, predictions []float64, level float64) (lower, upper []float64, err error) {
	volatility, err := Volatility(history)
	if err != nil {
		return nil, nil, err
	}

	z := zScore(level)
	lower = make([]float64, len(predictions))
	upper = make([]float64, len(predictions))
	for i, p := range predictions {
		timeAdjustment := math.Sqrt(float64(i + 1))
		delta := z * volatility * p * timeAdjustment
		lower[i] = p - delta
		upper[i] = p + delta
	}
	return lower, upper, nil
}
