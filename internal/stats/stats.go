package stats

import (
	"math"
	"sort"
)

// Summary holds the descriptive statistics shown on the dashboard.
type Summary struct {
	Mean      float64 `json:"mean"`
	Median    float64 `json:"median"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	StdDev    float64 `json:"std_dev"`
	ChangePct float64 `json:"change_pct"`
	Count     int     `json:"count"`
}

func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func MeanStd(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := Mean(values)
	var variance float64
	for _, v := range values {
		d := v - mean
		variance += d * d
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2
	}
	return sorted[mid]
}

func MinMax(values []float64) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	min, max := values[0], values[0]
	for _, v := range values[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Summarize computes the full descriptive summary for a price series.
// ChangePct compares the last value against the first.
func Summarize(values []float64) Summary {
	if len(values) == 0 {
		return Summary{}
	}
	mean, std := MeanStd(values)
	min, max := MinMax(values)
	change := 0.0
	if values[0] != 0 {
		change = (values[len(values)-1] - values[0]) / values[0] * 100
	}
	return Summary{
		Mean:      mean,
		Median:    Median(values),
		Min:       min,
		Max:       max,
		StdDev:    std,
		ChangePct: change,
		Count:     len(values),
	}
}
