package provider

import (
	"context"
	"testing"
	"time"

	"crop-compass/internal/domain"
)

func TestMockHistoryDeterministic(t *testing.T) {
	t.Parallel()

	p := newFrozenMockProvider()
	a, err := p.FetchHistory(context.Background(), "WHEAT", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := p.FetchHistory(context.Background(), "WHEAT", 24)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(a) != 24 || len(b) != 24 {
		t.Fatalf("expected 24 points, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("series diverged at %d: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestMockHistoryWindowEndsAtCurrentMonth(t *testing.T) {
	t.Parallel()

	p := newFrozenMockProvider()
	points, err := p.FetchHistory(context.Background(), "COFFEE", 14)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := points[len(points)-1]
	if last.Year != 2026 || last.Month != 3 {
		t.Fatalf("expected window to end 2026-03, got %d-%02d", last.Year, last.Month)
	}
	first := points[0]
	if first.Year != 2025 || first.Month != 2 {
		t.Fatalf("expected window to start 2025-02, got %d-%02d", first.Year, first.Month)
	}
	for i := 1; i < len(points); i++ {
		wantYear, wantMonth := points[i-1].NextMonth()
		if points[i].Year != wantYear || points[i].Month != wantMonth {
			t.Fatalf("gap at index %d", i)
		}
	}
}

func TestMockHistoryPricesNearBase(t *testing.T) {
	t.Parallel()

	p := newFrozenMockProvider()
	points, err := p.FetchHistory(context.Background(), "CORN", 36)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	base := domain.CommodityCatalog["CORN"].BasePrice
	for _, pt := range points {
		if pt.Price < base*0.8 || pt.Price > base*1.3 {
			t.Fatalf("price %.2f outside plausible band around %.2f", pt.Price, base)
		}
		if pt.Quality != domain.QualityMock {
			t.Fatalf("unexpected quality: %s", pt.Quality)
		}
	}
}

func TestMockHistoryUnknownCommodity(t *testing.T) {
	t.Parallel()

	p := newFrozenMockProvider()
	if _, err := p.FetchHistory(context.Background(), "FAKE", 12); err != domain.ErrUnknownCommodity {
		t.Fatalf("expected ErrUnknownCommodity, got %v", err)
	}
}

func TestMockLatestCoversCatalog(t *testing.T) {
	t.Parallel()

	p := newFrozenMockProvider()
	latest, err := p.FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(latest) != len(domain.SupportedCommodities) {
		t.Fatalf("expected %d commodities, got %d", len(domain.SupportedCommodities), len(latest))
	}
}

func newFrozenMockProvider() *MockProvider {
	p := NewMockProvider(testTracer)
	p.now = func() time.Time {
		return time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC)
	}
	return p
}
