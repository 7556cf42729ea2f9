package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"crop-compass/internal/domain"
	"crop-compass/internal/stats"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel/trace"
)

const (
	priceCacheTTL        = 15 * time.Minute
	defaultHistoryMonths = 60
)

// PriceProvider fetches monthly observations from an upstream source.
type PriceProvider interface {
	FetchLatest(ctx context.Context) (map[string]*domain.PricePoint, error)
	FetchHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error)
}

type PriceRepository interface {
	GetHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error)
	UpsertPrices(ctx context.Context, points []domain.PricePoint) error
}

type AnomalyMarker interface {
	MarkAnomalies(points []domain.PricePoint) []domain.PricePoint
}

type RedisClient interface {
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Get(ctx context.Context, key string) *redis.StringCmd
}

// PriceService orchestrates commodity price fetching, persistence, caching,
// and retrieval. When the upstream provider fails it degrades to the
// fallback provider so the dashboard always has data to show.
type PriceService struct {
	tracer   trace.Tracer
	provider PriceProvider
	fallback PriceProvider
	repo     PriceRepository
	redis    RedisClient
	screener AnomalyMarker
}

func NewPriceService(
	tracer trace.Tracer,
	provider PriceProvider,
	fallback PriceProvider,
	repo PriceRepository,
	redisClient RedisClient,
	screener AnomalyMarker,
) *PriceService {
	return &PriceService{
		tracer:   tracer,
		provider: provider,
		fallback: fallback,
		repo:     repo,
		redis:    redisClient,
		screener: screener,
	}
}

// GetLatest returns the most recent monthly price for a commodity.
// Falls back to a live fetch if the cache is empty or expired.
func (s *PriceService) GetLatest(ctx context.Context, commodity string) (*domain.PricePoint, error) {
	_, span := s.tracer.Start(ctx, "price-service.get-latest")
	defer span.End()

	if _, ok := domain.CommodityCatalog[commodity]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommodity, commodity)
	}

	if s.redis != nil {
		cached, err := s.getPriceCache(ctx, commodity)
		if err != nil {
			log.Printf("redis cache read error: %v", err)
		}
		if cached != nil {
			return cached, nil
		}
	}

	// Cache miss: one batched fetch covers every commodity, cache them all.
	latest, err := s.fetchLatest(ctx)
	if err != nil {
		return nil, err
	}

	for _, point := range latest {
		if s.redis != nil {
			_ = s.setPriceCache(ctx, point)
		}
	}

	point, ok := latest[commodity]
	if !ok {
		return nil, fmt.Errorf("price not available for %s", commodity)
	}
	return point, nil
}

// GetLatestAll returns the most recent monthly price for every supported
// commodity.
func (s *PriceService) GetLatestAll(ctx context.Context) ([]*domain.PricePoint, error) {
	_, span := s.tracer.Start(ctx, "price-service.get-latest-all")
	defer span.End()

	var points []*domain.PricePoint
	var missing []string

	for _, commodity := range domain.SupportedCommodities {
		if s.redis != nil {
			cached, _ := s.getPriceCache(ctx, commodity)
			if cached != nil {
				points = append(points, cached)
				continue
			}
		}
		missing = append(missing, commodity)
	}

	if len(missing) > 0 {
		latest, err := s.fetchLatest(ctx)
		if err != nil {
			return points, err
		}
		for _, commodity := range missing {
			point, ok := latest[commodity]
			if !ok {
				continue
			}
			if s.redis != nil {
				_ = s.setPriceCache(ctx, point)
			}
			points = append(points, point)
		}
	}

	return points, nil
}

// GetHistory returns up to months of observations for a commodity, oldest
// first. Postgres is the source of truth; short or missing series are
// backfilled from the provider. Anomalous points are relabeled, not dropped.
func (s *PriceService) GetHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	_, span := s.tracer.Start(ctx, "price-service.get-history")
	defer span.End()

	if _, ok := domain.CommodityCatalog[commodity]; !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCommodity, commodity)
	}
	if months < 1 {
		months = defaultHistoryMonths
	}

	var stored []domain.PricePoint
	if s.repo != nil {
		var err error
		stored, err = s.repo.GetHistory(ctx, commodity, months)
		if err != nil {
			log.Printf("history read error for %s: %v", commodity, err)
		}
	}
	if len(stored) >= months {
		return s.mark(stored), nil
	}

	fetched, err := s.fetchHistory(ctx, commodity, months)
	if err != nil {
		if len(stored) > 0 {
			return s.mark(stored), nil
		}
		return nil, err
	}

	if s.repo != nil {
		if err := s.repo.UpsertPrices(ctx, fetched); err != nil {
			log.Printf("history upsert error for %s: %v", commodity, err)
		}
	}
	return s.mark(fetched), nil
}

// GetSummary computes descriptive statistics over the trailing window.
func (s *PriceService) GetSummary(ctx context.Context, commodity string, months int) (stats.Summary, []domain.PricePoint, error) {
	ctx, span := s.tracer.Start(ctx, "price-service.get-summary")
	defer span.End()

	history, err := s.GetHistory(ctx, commodity, months)
	if err != nil {
		return stats.Summary{}, nil, err
	}
	prices := make([]float64, len(history))
	for i, p := range history {
		prices[i] = p.Price
	}
	return stats.Summarize(prices), history, nil
}

// RefreshLatest fetches current prices for all commodities and caches them.
func (s *PriceService) RefreshLatest(ctx context.Context) error {
	_, span := s.tracer.Start(ctx, "price-service.refresh-latest")
	defer span.End()

	latest, err := s.fetchLatest(ctx)
	if err != nil {
		return err
	}

	var points []domain.PricePoint
	for _, point := range latest {
		if s.redis != nil {
			if err := s.setPriceCache(ctx, point); err != nil {
				log.Printf("redis cache write error for %s: %v", point.Commodity, err)
			}
		}
		points = append(points, *point)
	}
	if s.repo != nil {
		if err := s.repo.UpsertPrices(ctx, points); err != nil {
			log.Printf("latest upsert error: %v", err)
		}
	}

	log.Printf("Refreshed prices for %d commodities", len(latest))
	return nil
}

// RefreshHistory backfills the full observation window for one commodity.
func (s *PriceService) RefreshHistory(ctx context.Context, commodity string) error {
	_, span := s.tracer.Start(ctx, "price-service.refresh-history")
	defer span.End()

	points, err := s.fetchHistory(ctx, commodity, defaultHistoryMonths)
	if err != nil {
		return err
	}
	if s.repo != nil {
		if err := s.repo.UpsertPrices(ctx, points); err != nil {
			return fmt.Errorf("upsert history for %s: %w", commodity, err)
		}
	}

	log.Printf("Refreshed history for %s (%d points)", commodity, len(points))
	return nil
}

func (s *PriceService) fetchLatest(ctx context.Context) (map[string]*domain.PricePoint, error) {
	latest, err := s.provider.FetchLatest(ctx)
	if err == nil && len(latest) > 0 {
		return latest, nil
	}
	if s.fallback == nil {
		return latest, err
	}
	if err != nil {
		log.Printf("provider fetch failed, using fallback: %v", err)
	}
	return s.fallback.FetchLatest(ctx)
}

func (s *PriceService) fetchHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	points, err := s.provider.FetchHistory(ctx, commodity, months)
	if err == nil && len(points) > 0 {
		return points, nil
	}
	if s.fallback == nil {
		return points, err
	}
	if err != nil {
		log.Printf("provider history fetch for %s failed, using fallback: %v", commodity, err)
	}
	return s.fallback.FetchHistory(ctx, commodity, months)
}

func (s *PriceService) mark(points []domain.PricePoint) []domain.PricePoint {
	if s.screener == nil {
		return points
	}
	return s.screener.MarkAnomalies(points)
}

func (s *PriceService) setPriceCache(ctx context.Context, point *domain.PricePoint) error {
	data, err := json.Marshal(point)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, "price:"+point.Commodity, data, priceCacheTTL).Err()
}

func (s *PriceService) getPriceCache(ctx context.Context, commodity string) (*domain.PricePoint, error) {
	data, err := s.redis.Get(ctx, "price:"+commodity).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var point domain.PricePoint
	if err := json.Unmarshal(data, &point); err != nil {
		return nil, err
	}
	return &point, nil
}
