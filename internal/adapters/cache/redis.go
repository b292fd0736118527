package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
)

// latestTTL covers two collection days, so yesterday's entry survives until
// today's run replaces it.
const latestTTL = 48 * time.Hour

type RedisAdapter struct {
	client *redis.Client
}

func NewRedisAdapter(client *redis.Client) port.Cache {
	return &RedisAdapter{
		client: client,
	}
}

// SetLatest stores an observation under latest:{product}:{seller}. A newer
// date always wins; a write for the same date replaces the prior price
// (same last-write-wins rule as the ledger).
func (r *RedisAdapter) SetLatest(ctx context.Context, obs domain.PriceObservation) error {
	key := latestKey(obs.Product, obs.Seller)

	if existing, err := r.client.Get(ctx, key).Result(); err == nil {
		var prior domain.PriceObservation
		if err := json.Unmarshal([]byte(existing), &prior); err == nil && obs.Date.Before(prior.Date) {
			return nil // never replace newer data with older
		}
	}

	data, err := json.Marshal(obs)
	if err != nil {
		return fmt.Errorf("failed to marshal observation: %w", err)
	}
	if err := r.client.Set(ctx, key, data, latestTTL).Err(); err != nil {
		return fmt.Errorf("failed to set latest price: %w", err)
	}
	return nil
}

// LatestBySeller returns the cached newest observation per seller for a
// product, ordered by seller for deterministic output.
func (r *RedisAdapter) LatestBySeller(ctx context.Context, product string) ([]domain.PriceObservation, error) {
	pattern := latestKey(product, "*")
	keys, err := r.client.Keys(ctx, pattern).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get keys: %w", err)
	}
	if len(keys) == 0 {
		return nil, nil
	}

	var observations []domain.PriceObservation
	for _, key := range keys {
		data, err := r.client.Get(ctx, key).Result()
		if err != nil {
			continue // expired between KEYS and GET
		}

		var obs domain.PriceObservation
		if err := json.Unmarshal([]byte(data), &obs); err != nil {
			continue
		}
		observations = append(observations, obs)
	}

	sort.Slice(observations, func(i, j int) bool {
		return observations[i].Seller < observations[j].Seller
	})
	return observations, nil
}

// Ping checks Redis connection health
func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func latestKey(product, seller string) string {
	return fmt.Sprintf("latest:%s:%s", product, seller)
}
