package postgres

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/core/domain"
)

func observation(product string, day domain.Date, seller, price string) domain.PriceObservation {
	return domain.PriceObservation{
		Product: product,
		Date:    day,
		Seller:  seller,
		Price:   decimal.RequireFromString(price),
	}
}

func date(y, m, d int) domain.Date {
	return domain.Date{Year: y, Month: time.Month(m), Day: d}
}

func TestDedupeBatchLaterEntryWins(t *testing.T) {
	day := date(2026, 8, 28)
	batch := []domain.PriceObservation{
		observation("X", day, "Seller A", "100.00"),
		observation("X", day, "Seller B", "90.00"),
		observation("X", day, "Seller A", "95.00"), // same key as the first
	}

	deduped := dedupeBatch(batch)
	require.Len(t, deduped, 2)

	// The later price replaced the earlier one in place.
	assert.Equal(t, "Seller A", deduped[0].Seller)
	assert.Equal(t, "95.00", deduped[0].Price.StringFixed(2))
	assert.Equal(t, "Seller B", deduped[1].Seller)
}

func TestDedupeBatchDistinctKeysUntouched(t *testing.T) {
	day1 := date(2026, 8, 27)
	day2 := date(2026, 8, 28)
	batch := []domain.PriceObservation{
		observation("X", day1, "Seller A", "100.00"),
		observation("X", day2, "Seller A", "100.00"),
		observation("Y", day1, "Seller A", "100.00"),
	}

	assert.Equal(t, batch, dedupeBatch(batch))
}

func TestDedupeBatchEmpty(t *testing.T) {
	assert.Empty(t, dedupeBatch(nil))
}
