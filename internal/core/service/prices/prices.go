// Package prices is the ledger-facing query service: observation lookups
// plus the derived rank metrics.
package prices

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
	"pricewatch/internal/core/service/rank"
)

type PriceService struct {
	ledger        port.Ledger
	cache         port.Cache
	trackedSeller string
}

// NewPriceService creates the query service. The cache is optional; a nil
// cache means every lookup goes straight to the ledger.
func NewPriceService(ledger port.Ledger, cache port.Cache, trackedSeller string) port.PriceService {
	return &PriceService{
		ledger:        ledger,
		cache:         cache,
		trackedSeller: trackedSeller,
	}
}

// LatestPrices returns the newest observation per seller for a product,
// cache-first with ledger fallback.
func (s *PriceService) LatestPrices(ctx context.Context, product string) ([]domain.PriceObservation, error) {
	validProduct, err := s.validateProduct(product)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		observations, err := s.cache.LatestBySeller(ctx, validProduct)
		if err == nil && len(observations) > 0 {
			return newestDateGroup(observations), nil
		}
		if err != nil {
			slog.Warn("cache lookup failed, falling back to ledger", "product", validProduct, "error", err)
		}
	}

	history, err := s.ledger.ObservationsForProduct(ctx, validProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for %s: %w", validProduct, err)
	}
	if len(history) == 0 {
		return nil, fmt.Errorf("no price data found for product %s", product)
	}
	return newestDateGroup(history), nil
}

// newestDateGroup filters observations down to the most recent date present.
// Cached entries may lag behind per seller, so both the cache path and the
// ledger path reduce to the same newest-day shape.
func newestDateGroup(observations []domain.PriceObservation) []domain.PriceObservation {
	newest := observations[0].Date
	for _, obs := range observations[1:] {
		if newest.Before(obs.Date) {
			newest = obs.Date
		}
	}

	var latest []domain.PriceObservation
	for _, obs := range observations {
		if obs.Date == newest {
			latest = append(latest, obs)
		}
	}
	return latest
}

// History returns the full observation history for a product in ledger order.
func (s *PriceService) History(ctx context.Context, product string) ([]domain.PriceObservation, error) {
	validProduct, err := s.validateProduct(product)
	if err != nil {
		return nil, err
	}

	history, err := s.ledger.ObservationsForProduct(ctx, validProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for %s: %w", validProduct, err)
	}
	return history, nil
}

// RankedDays recomputes the per-date metrics for a product from a fresh
// ledger snapshot.
func (s *PriceService) RankedDays(ctx context.Context, product string) ([]domain.RankedDay, error) {
	validProduct, err := s.validateProduct(product)
	if err != nil {
		return nil, err
	}

	observations, err := s.ledger.ObservationsForProduct(ctx, validProduct)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger for %s: %w", validProduct, err)
	}
	return rank.RankedDays(observations, s.trackedSeller), nil
}

// RankChanges scans the whole ledger for tracked-seller rank moves between
// the two most recent dates per product. An empty ledger yields an empty
// list, not an error.
func (s *PriceService) RankChanges(ctx context.Context) ([]domain.RankChangeEvent, error) {
	observations, err := s.ledger.AllObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}
	return rank.DetectChanges(observations, s.trackedSeller), nil
}

func (s *PriceService) validateProduct(product string) (string, error) {
	trimmed := strings.TrimSpace(product)
	if trimmed == "" {
		return "", fmt.Errorf("product cannot be empty")
	}
	return trimmed, nil
}
