package forecast

// DefaultSmoothingFactor is the smoothing weight applied to the newest value.
const DefaultSmoothingFactor = 0.3

// ExponentialSmoothing de-noises a series with single exponential smoothing:
// s0 = y0, si = alpha*yi + (1-alpha)*s(i-1). Alpha outside (0,1] falls back
// to the default.
func ExponentialSmoothing(values []float64, alpha float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	if alpha <= 0 || alpha > 1 {
		alpha = DefaultSmoothingFactor
	}
	out := make([]float64, len(values))
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
