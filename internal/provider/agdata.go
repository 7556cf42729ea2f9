package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"crop-compass/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const agDataBaseURL = "https://api.agdata.example.com/v1"

// AgDataProvider fetches monthly commodity price observations from the
// upstream agricultural data API.
type AgDataProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewAgDataProvider creates a provider with built-in rate limiting.
// Rate limited to 10 requests per minute (one token every 6 seconds).
func NewAgDataProvider(tracer trace.Tracer, baseURL string) *AgDataProvider {
	if baseURL == "" {
		baseURL = agDataBaseURL
	}
	return &AgDataProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(10, 6*time.Second),
	}
}

type agDataObservation struct {
	Commodity string  `json:"commodity"`
	Year      int     `json:"year"`
	Month     int     `json:"month"`
	Price     float64 `json:"price"`
	Unit      string  `json:"unit"`
}

// FetchLatest fetches the most recent monthly observation for every
// supported commodity in a single API call.
func (p *AgDataProvider) FetchLatest(ctx context.Context) (map[string]*domain.PricePoint, error) {
	_, span := p.tracer.Start(ctx, "agdata.fetch-latest")
	defer span.End()

	url := fmt.Sprintf("%s/prices/latest", p.baseURL)
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch latest prices: %w", err)
	}

	var raw struct {
		Observations []agDataObservation `json:"observations"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse latest prices: %w", err)
	}

	result := make(map[string]*domain.PricePoint, len(raw.Observations))
	for _, obs := range raw.Observations {
		info, ok := domain.CommodityCatalog[obs.Commodity]
		if !ok {
			continue
		}
		result[obs.Commodity] = observationToPoint(obs, info)
	}
	return result, nil
}

// FetchHistory fetches up to months of monthly observations for one
// commodity, oldest first.
func (p *AgDataProvider) FetchHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	_, span := p.tracer.Start(ctx, "agdata.fetch-history")
	defer span.End()

	info, ok := domain.CommodityCatalog[commodity]
	if !ok {
		return nil, fmt.Errorf("unsupported commodity: %s", commodity)
	}

	url := fmt.Sprintf("%s/prices/%s/history?months=%d", p.baseURL, commodity, months)
	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", commodity, err)
	}

	var raw struct {
		Observations []agDataObservation `json:"observations"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse history for %s: %w", commodity, err)
	}

	points := make([]domain.PricePoint, 0, len(raw.Observations))
	for _, obs := range raw.Observations {
		if obs.Month < 1 || obs.Month > 12 {
			continue
		}
		points = append(points, *observationToPoint(obs, info))
	}
	sort.Slice(points, func(i, j int) bool {
		if points[i].Year != points[j].Year {
			return points[i].Year < points[j].Year
		}
		return points[i].Month < points[j].Month
	})
	return points, nil
}

func observationToPoint(obs agDataObservation, info domain.CommodityInfo) *domain.PricePoint {
	unit := obs.Unit
	if unit == "" {
		unit = info.Unit
	}
	return &domain.PricePoint{
		ID:        domain.PointID(obs.Commodity, obs.Year, obs.Month),
		Commodity: obs.Commodity,
		Year:      obs.Year,
		Month:     obs.Month,
		Price:     obs.Price,
		Unit:      unit,
		Source:    "AgData API",
		Quality:   domain.QualityObserved,
	}
}

func (p *AgDataProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("agdata API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
