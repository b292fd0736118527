package port

import (
	"context"

	"pricewatch/internal/core/domain"
)

// PriceService is the query surface over the ledger and the derived rank
// metrics. Results are plain records; no storage handles leak out.
type PriceService interface {
	// LatestPrices returns the newest observation per seller for a product.
	LatestPrices(ctx context.Context, product string) ([]domain.PriceObservation, error)

	// History returns a product's full observation history.
	History(ctx context.Context, product string) ([]domain.PriceObservation, error)

	// RankedDays returns the derived per-date metrics for a product.
	RankedDays(ctx context.Context, product string) ([]domain.RankedDay, error)

	// RankChanges compares the two most recent dates per product and returns
	// the rank moves of the tracked seller. Empty when nothing changed.
	RankChanges(ctx context.Context) ([]domain.RankChangeEvent, error)
}
