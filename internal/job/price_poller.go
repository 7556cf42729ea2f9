package job

import (
	"context"
	"log"
	"time"

	"crop-compass/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

// PricePoller runs background goroutines that keep the price store current.
// Monthly data moves slowly, so the cadence is gentle: latest prices on the
// configured interval, full history backfills round-robin.
type PricePoller struct {
	tracer       trace.Tracer
	priceService PriceDataRefresher
	pollInterval time.Duration
}

type PriceDataRefresher interface {
	RefreshLatest(ctx context.Context) error
	RefreshHistory(ctx context.Context, commodity string) error
}

func NewPricePoller(tracer trace.Tracer, priceService PriceDataRefresher, pollIntervalSecs int) *PricePoller {
	return &PricePoller{
		tracer:       tracer,
		priceService: priceService,
		pollInterval: time.Duration(pollIntervalSecs) * time.Second,
	}
}

// Start launches background polling goroutines. Blocks until ctx is cancelled.
func (p *PricePoller) Start(ctx context.Context) {
	log.Println("Price poller starting...")

	// Tier 1: latest prices for every commodity on each tick
	go p.pollLoop(ctx, "latest-prices", p.pollInterval, func(ctx context.Context) error {
		return p.priceService.RefreshLatest(ctx)
	})

	// Tier 2: history backfill, one commodity per tick, round-robin
	go p.pollHistory(ctx)

	<-ctx.Done()
	log.Println("Price poller stopped")
}

func (p *PricePoller) pollLoop(ctx context.Context, name string, interval time.Duration, fn func(context.Context) error) {
	// Run immediately on start
	if err := fn(ctx); err != nil {
		log.Printf("poller %s initial run error: %v", name, err)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := fn(ctx); err != nil {
				log.Printf("poller %s error: %v", name, err)
			}
		}
	}
}

func (p *PricePoller) pollHistory(ctx context.Context) {
	// Stagger behind the latest-price poller to spread upstream calls
	select {
	case <-ctx.Done():
		return
	case <-time.After(10 * time.Second):
	}

	ticker := time.NewTicker(30 * time.Minute)
	defer ticker.Stop()

	commodityIndex := 0

	// Run immediately
	p.fetchHistoryBatch(ctx, &commodityIndex, 2)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.fetchHistoryBatch(ctx, &commodityIndex, 2)
		}
	}
}

func (p *PricePoller) fetchHistoryBatch(ctx context.Context, commodityIndex *int, count int) {
	commodities := domain.SupportedCommodities
	for i := 0; i < count; i++ {
		commodity := commodities[*commodityIndex%len(commodities)]
		*commodityIndex++

		if err := p.priceService.RefreshHistory(ctx, commodity); err != nil {
			log.Printf("history refresh error for %s: %v", commodity, err)
		}
	}
}
