package stats

import (
	"math"
	"testing"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if s.Mean != 5 {
		t.Fatalf("expected mean 5, got %v", s.Mean)
	}
	if s.StdDev != 2 {
		t.Fatalf("expected stddev 2, got %v", s.StdDev)
	}
	if s.Median != 4.5 {
		t.Fatalf("expected median 4.5, got %v", s.Median)
	}
	if s.Min != 2 || s.Max != 9 {
		t.Fatalf("expected min/max 2/9, got %v/%v", s.Min, s.Max)
	}
	if math.Abs(s.ChangePct-350) > 1e-9 {
		t.Fatalf("expected change 350%%, got %v", s.ChangePct)
	}
	if s.Count != 8 {
		t.Fatalf("expected count 8, got %d", s.Count)
	}
}

func TestMedianOddLength(t *testing.T) {
	t.Parallel()

	if m := Median([]float64{9, 1, 5}); m != 5 {
		t.Fatalf("expected median 5, got %v", m)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	if s := Summarize(nil); s != (Summary{}) {
		t.Fatalf("expected zero summary, got %+v", s)
	}
}
