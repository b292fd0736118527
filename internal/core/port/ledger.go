package port

import (
	"context"

	"pricewatch/internal/core/domain"
)

// Ledger is the ordered price observation store. Upserts are last-write-wins
// on the (product, date, seller) key; conflict resolution is the storage
// layer's, so concurrent per-seller writers never produce duplicate rows.
// Queries return observations ordered by product, then date, then insertion
// order within a day.
type Ledger interface {
	// Upsert writes one observation, replacing any prior price for its key.
	Upsert(ctx context.Context, obs domain.PriceObservation) error

	// UpsertBatch applies per-key upsert semantics to a whole batch.
	// Duplicate keys inside the batch resolve to the later entry before the
	// write happens. Returns the number of rows written.
	UpsertBatch(ctx context.Context, batch []domain.PriceObservation) (int, error)

	// ObservationsForProduct returns the full history for one product.
	ObservationsForProduct(ctx context.Context, product string) ([]domain.PriceObservation, error)

	// ObservationsForDate returns all observations for one day.
	ObservationsForDate(ctx context.Context, day domain.Date) ([]domain.PriceObservation, error)

	// ObservationsForProductDate returns one (product, date) group.
	ObservationsForProductDate(ctx context.Context, product string, day domain.Date) ([]domain.PriceObservation, error)

	// AllObservations returns the whole ledger.
	AllObservations(ctx context.Context) ([]domain.PriceObservation, error)

	// Products lists distinct product identifiers present in the ledger.
	Products(ctx context.Context) ([]string, error)

	// Health check
	Ping(ctx context.Context) error
}
