package repository

import (
	"context"

	"crop-compass/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const createPricePointsTable = `
CREATE TABLE IF NOT EXISTS price_points (
    commodity   TEXT        NOT NULL,
    year        INT         NOT NULL,
    month       INT         NOT NULL,
    price       NUMERIC     NOT NULL,
    unit        TEXT        NOT NULL,
    source      TEXT        NOT NULL DEFAULT '',
    quality     TEXT        NOT NULL DEFAULT '',
    PRIMARY KEY (commodity, year, month)
);

CREATE INDEX IF NOT EXISTS idx_price_points_commodity_time
    ON price_points (commodity, year DESC, month DESC);

CREATE TABLE IF NOT EXISTS conversation_messages (
    id         BIGSERIAL   PRIMARY KEY,
    chat_id    BIGINT      NOT NULL,
    role       TEXT        NOT NULL,
    content    TEXT        NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_conversation_messages_chat
    ON conversation_messages (chat_id, created_at DESC);
`

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// PriceRepository persists monthly commodity observations. Predictions are
// never stored, only what came from a provider.
type PriceRepository struct {
	pool   PgxPool
	tracer trace.Tracer
}

func NewPriceRepository(pool PgxPool, tracer trace.Tracer) *PriceRepository {
	return &PriceRepository{pool: pool, tracer: tracer}
}

func (r *PriceRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "price-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, createPricePointsTable)
	return err
}

func (r *PriceRepository) UpsertPrices(ctx context.Context, points []domain.PricePoint) error {
	if len(points) == 0 {
		return nil
	}

	_, span := r.tracer.Start(ctx, "price-repo.upsert-prices")
	defer span.End()

	batch := &pgx.Batch{}
	for _, p := range points {
		batch.Queue(
			`INSERT INTO price_points (commodity, year, month, price, unit, source, quality)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (commodity, year, month) DO UPDATE SET
			     price = EXCLUDED.price,
			     unit = EXCLUDED.unit,
			     source = EXCLUDED.source,
			     quality = EXCLUDED.quality`,
			p.Commodity, p.Year, p.Month, p.Price, p.Unit, p.Source, p.Quality,
		)
	}

	br := r.pool.SendBatch(ctx, batch)
	defer br.Close()

	for range points {
		if _, err := br.Exec(); err != nil {
			return err
		}
	}
	return nil
}

// GetHistory returns up to months of the newest observations for a
// commodity, oldest first.
func (r *PriceRepository) GetHistory(ctx context.Context, commodity string, months int) ([]domain.PricePoint, error) {
	_, span := r.tracer.Start(ctx, "price-repo.get-history")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT commodity, year, month, price, unit, source, quality
		 FROM price_points
		 WHERE commodity = $1
		 ORDER BY year DESC, month DESC
		 LIMIT $2`,
		commodity, months,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	points, err := scanPricePoints(rows)
	if err != nil {
		return nil, err
	}

	// Newest-first from the query, oldest-first for callers.
	for i, j := 0, len(points)-1; i < j; i, j = i+1, j-1 {
		points[i], points[j] = points[j], points[i]
	}
	return points, nil
}

// GetRange returns observations between two calendar months inclusive,
// oldest first.
func (r *PriceRepository) GetRange(ctx context.Context, commodity string, fromYear, fromMonth, toYear, toMonth int) ([]domain.PricePoint, error) {
	_, span := r.tracer.Start(ctx, "price-repo.get-range")
	defer span.End()

	rows, err := r.pool.Query(ctx,
		`SELECT commodity, year, month, price, unit, source, quality
		 FROM price_points
		 WHERE commodity = $1
		   AND (year * 12 + month) >= ($2 * 12 + $3)
		   AND (year * 12 + month) <= ($4 * 12 + $5)
		 ORDER BY year, month`,
		commodity, fromYear, fromMonth, toYear, toMonth,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanPricePoints(rows)
}

func scanPricePoints(rows pgx.Rows) ([]domain.PricePoint, error) {
	var points []domain.PricePoint
	for rows.Next() {
		var p domain.PricePoint
		if err := rows.Scan(&p.Commodity, &p.Year, &p.Month, &p.Price, &p.Unit, &p.Source, &p.Quality); err != nil {
			return nil, err
		}
		p.ID = domain.PointID(p.Commodity, p.Year, p.Month)
		points = append(points, p)
	}
	return points, rows.Err()
}
