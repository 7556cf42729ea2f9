package provider

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"crop-compass/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// MockProvider generates plausible monthly price series from catalog base
// prices. It stands in for the upstream API in development and whenever the
// real provider is unreachable.
type MockProvider struct {
	tracer trace.Tracer
	now    func() time.Time
}

func NewMockProvider(tracer trace.Tracer) *MockProvider {
	return &MockProvider{tracer: tracer, now: time.Now}
}

func (p *MockProvider) FetchLatest(ctx context.Context) (map[string]*domain.PricePoint, error) {
	_, span := p.tracer.Start(ctx, "mock-provider.fetch-latest")
	defer span.End()

	result := make(map[string]*domain.PricePoint, len(domain.SupportedCommodities))
	for _, commodity := range domain.SupportedCommodities {
		series, err := p.FetchHistory(ctx, commodity, 1)
		if err != nil || len(series) == 0 {
			continue
		}
		latest := series[len(series)-1]
		result[commodity] = &latest
	}
	return result, nil
}

// FetchHistory generates months of observations ending at the current month.
// The series is deterministic per commodity: the same inputs always yield the
// same prices.
func (p *MockProvider) FetchHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	_, span := p.tracer.Start(ctx, "mock-provider.fetch-history")
	defer span.End()

	info, ok := domain.CommodityCatalog[commodity]
	if !ok {
		return nil, domain.ErrUnknownCommodity
	}
	if months < 1 {
		months = 1
	}

	now := p.now().UTC()
	year, month := now.Year(), int(now.Month())
	// Step back to the first month of the window.
	for i := 0; i < months-1; i++ {
		month--
		if month < 1 {
			year, month = year-1, 12
		}
	}

	rng := rand.New(rand.NewSource(seedFor(commodity)))
	points := make([]domain.PricePoint, 0, months)
	for i := 0; i < months; i++ {
		seasonal := 1 + 0.06*math.Sin(2*math.Pi*float64(month-1)/12)
		drift := 1 + 0.002*float64(i)
		noise := 1 + (rng.Float64()*2-1)*0.03
		price := info.BasePrice * seasonal * drift * noise

		points = append(points, domain.PricePoint{
			ID:        domain.PointID(commodity, year, month),
			Commodity: commodity,
			Year:      year,
			Month:     month,
			Price:     math.Round(price*100) / 100,
			Unit:      info.Unit,
			Source:    "Simulated",
			Quality:   domain.QualityMock,
		})

		month++
		if month > 12 {
			year, month = year+1, 1
		}
	}
	return points, nil
}

func seedFor(commodity string) int64 {
	h := fnv.New64a()
	h.Write([]byte(commodity))
	return int64(h.Sum64())
}
