package port

import (
	"context"

	"pricewatch/internal/core/domain"
)

// Cache holds the most recent observation per (product, seller) for quick
// lookups. The ledger stays the source of truth; a cold or missing cache is
// never an error for callers.
type Cache interface {
	// SetLatest stores an observation as the newest one for its product/seller.
	SetLatest(ctx context.Context, obs domain.PriceObservation) error

	// LatestBySeller returns the newest cached observation per seller for a
	// product.
	LatestBySeller(ctx context.Context, product string) ([]domain.PriceObservation, error)

	// Health check
	Ping(ctx context.Context) error
}
