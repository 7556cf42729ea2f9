package forecast

import (
	"math"
	"testing"
)

func TestExponentialSmoothingRecursion(t *testing.T) {
	t.Parallel()

	out := ExponentialSmoothing([]float64{10, 20, 30}, 0.5)
	want := []float64{10, 15, 22.5}
	if len(out) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(out))
	}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-9 {
			t.Fatalf("index %d: expected %.4f, got %.4f", i, want[i], out[i])
		}
	}
}

func TestExponentialSmoothingDefaultsAlpha(t *testing.T) {
	t.Parallel()

	out := ExponentialSmoothing([]float64{100, 200}, 0)
	want := 0.3*200 + 0.7*100
	if math.Abs(out[1]-want) > 1e-9 {
		t.Fatalf("expected default alpha 0.3 result %.2f, got %.4f", want, out[1])
	}
}

func TestExponentialSmoothingEmpty(t *testing.T) {
	t.Parallel()

	if out := ExponentialSmoothing(nil, 0.3); out != nil {
		t.Fatalf("expected nil for empty input, got %v", out)
	}
}
