package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
)

// The id column preserves insertion order inside a (product, date) group;
// rank tie-breaks key on that order.
const schema = `
CREATE TABLE IF NOT EXISTS price_observations (
	id          BIGSERIAL PRIMARY KEY,
	product     TEXT NOT NULL,
	observed_on DATE NOT NULL,
	seller      TEXT NOT NULL,
	price       NUMERIC(10,2) NOT NULL,
	UNIQUE (product, observed_on, seller)
)`

const upsertSQL = `
INSERT INTO price_observations (product, observed_on, seller, price)
VALUES ($1, $2, $3, $4)
ON CONFLICT (product, observed_on, seller) DO UPDATE SET price = EXCLUDED.price`

const selectColumns = `product, observed_on, seller, price::text`

type Ledger struct {
	pool *pgxpool.Pool
}

// NewLedger creates the price_observations table if missing and returns the
// ledger adapter.
func NewLedger(ctx context.Context, pool *pgxpool.Pool) (port.Ledger, error) {
	if _, err := pool.Exec(ctx, schema); err != nil {
		return nil, fmt.Errorf("failed to create price_observations table: %w", err)
	}
	return &Ledger{pool: pool}, nil
}

// Upsert writes one observation. The unique key makes concurrent writers
// safe: a conflicting insert resolves to an update, never a duplicate row.
func (l *Ledger) Upsert(ctx context.Context, obs domain.PriceObservation) error {
	_, err := l.pool.Exec(ctx, upsertSQL,
		obs.Product, obs.Date.Time(), obs.Seller, obs.Price.StringFixed(2))
	if err != nil {
		return fmt.Errorf("failed to upsert observation %s/%s/%s: %w",
			obs.Product, obs.Date, obs.Seller, err)
	}
	return nil
}

// UpsertBatch deduplicates the batch on its key (later entries win) and
// applies the upserts in one round trip.
func (l *Ledger) UpsertBatch(ctx context.Context, batch []domain.PriceObservation) (int, error) {
	deduped := dedupeBatch(batch)
	if len(deduped) == 0 {
		return 0, nil
	}

	b := &pgx.Batch{}
	for _, obs := range deduped {
		b.Queue(upsertSQL, obs.Product, obs.Date.Time(), obs.Seller, obs.Price.StringFixed(2))
	}

	results := l.pool.SendBatch(ctx, b)
	defer results.Close()

	for _, obs := range deduped {
		if _, err := results.Exec(); err != nil {
			return 0, fmt.Errorf("failed to upsert observation %s/%s/%s: %w",
				obs.Product, obs.Date, obs.Seller, err)
		}
	}
	return len(deduped), nil
}

func (l *Ledger) ObservationsForProduct(ctx context.Context, product string) ([]domain.PriceObservation, error) {
	return l.query(ctx, fmt.Sprintf(
		`SELECT %s FROM price_observations WHERE product = $1 ORDER BY product, observed_on, id`,
		selectColumns), product)
}

func (l *Ledger) ObservationsForDate(ctx context.Context, day domain.Date) ([]domain.PriceObservation, error) {
	return l.query(ctx, fmt.Sprintf(
		`SELECT %s FROM price_observations WHERE observed_on = $1 ORDER BY product, observed_on, id`,
		selectColumns), day.Time())
}

func (l *Ledger) ObservationsForProductDate(ctx context.Context, product string, day domain.Date) ([]domain.PriceObservation, error) {
	return l.query(ctx, fmt.Sprintf(
		`SELECT %s FROM price_observations WHERE product = $1 AND observed_on = $2 ORDER BY product, observed_on, id`,
		selectColumns), product, day.Time())
}

func (l *Ledger) AllObservations(ctx context.Context) ([]domain.PriceObservation, error) {
	return l.query(ctx, fmt.Sprintf(
		`SELECT %s FROM price_observations ORDER BY product, observed_on, id`,
		selectColumns))
}

func (l *Ledger) Products(ctx context.Context) ([]string, error) {
	rows, err := l.pool.Query(ctx, `SELECT DISTINCT product FROM price_observations ORDER BY product`)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	defer rows.Close()

	var products []string
	for rows.Next() {
		var product string
		if err := rows.Scan(&product); err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

func (l *Ledger) Ping(ctx context.Context) error {
	return l.pool.Ping(ctx)
}

func (l *Ledger) query(ctx context.Context, sql string, args ...any) ([]domain.PriceObservation, error) {
	rows, err := l.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer rows.Close()

	var observations []domain.PriceObservation
	for rows.Next() {
		var (
			obs       domain.PriceObservation
			day       time.Time
			priceText string
		)
		if err := rows.Scan(&obs.Product, &day, &obs.Seller, &priceText); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}

		price, err := decimal.NewFromString(priceText)
		if err != nil {
			return nil, fmt.Errorf("invalid price %q in ledger: %w", priceText, err)
		}

		obs.Date = domain.DateOf(day)
		obs.Price = price
		observations = append(observations, obs)
	}
	return observations, rows.Err()
}

// dedupeBatch resolves duplicate keys inside one batch before the write:
// the later entry wins, keeping its first occurrence's position.
func dedupeBatch(batch []domain.PriceObservation) []domain.PriceObservation {
	index := make(map[domain.ObservationKey]int, len(batch))
	deduped := make([]domain.PriceObservation, 0, len(batch))

	for _, obs := range batch {
		if i, seen := index[obs.Key()]; seen {
			deduped[i] = obs
			continue
		}
		index[obs.Key()] = len(deduped)
		deduped = append(deduped, obs)
	}
	return deduped
}
