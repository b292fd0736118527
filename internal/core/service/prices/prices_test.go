package prices

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/core/domain"
)

type fakeLedger struct {
	observations []domain.PriceObservation
	err          error
}

func (l *fakeLedger) Upsert(context.Context, domain.PriceObservation) error { return nil }

func (l *fakeLedger) UpsertBatch(context.Context, []domain.PriceObservation) (int, error) {
	return 0, nil
}

func (l *fakeLedger) ObservationsForProduct(_ context.Context, product string) ([]domain.PriceObservation, error) {
	if l.err != nil {
		return nil, l.err
	}
	var out []domain.PriceObservation
	for _, obs := range l.observations {
		if obs.Product == product {
			out = append(out, obs)
		}
	}
	return out, nil
}

func (l *fakeLedger) ObservationsForDate(context.Context, domain.Date) ([]domain.PriceObservation, error) {
	return nil, nil
}

func (l *fakeLedger) ObservationsForProductDate(context.Context, string, domain.Date) ([]domain.PriceObservation, error) {
	return nil, nil
}

func (l *fakeLedger) AllObservations(context.Context) ([]domain.PriceObservation, error) {
	return l.observations, l.err
}

func (l *fakeLedger) Products(context.Context) ([]string, error) { return nil, nil }

func (l *fakeLedger) Ping(context.Context) error { return l.err }

type fakeCache struct {
	latest []domain.PriceObservation
	err    error
}

func (c *fakeCache) SetLatest(context.Context, domain.PriceObservation) error { return nil }

func (c *fakeCache) LatestBySeller(context.Context, string) ([]domain.PriceObservation, error) {
	return c.latest, c.err
}

func (c *fakeCache) Ping(context.Context) error { return nil }

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

func historyLedger() *fakeLedger {
	day1 := date(2026, 8, 1)
	day2 := date(2026, 8, 2)
	return &fakeLedger{observations: []domain.PriceObservation{
		observation("X", day1, "Seller A", "100.00"),
		observation("X", day1, "Our company", "95.00"),
		observation("X", day2, "Seller A", "99.00"),
		observation("X", day2, "Our company", "94.00"),
	}}
}

func TestLatestPricesFromCache(t *testing.T) {
	cached := []domain.PriceObservation{
		observation("X", date(2026, 8, 2), "Seller A", "99.00"),
	}
	svc := NewPriceService(historyLedger(), &fakeCache{latest: cached}, "Our company")

	latest, err := svc.LatestPrices(context.Background(), "X")
	require.NoError(t, err)
	assert.Equal(t, cached, latest)
}

func TestLatestPricesCacheMixedDates(t *testing.T) {
	// A seller whose cached entry lags a day behind is dropped; the result
	// carries only the newest day, just like the ledger path.
	cached := []domain.PriceObservation{
		observation("X", date(2026, 8, 1), "Seller A", "100.00"),
		observation("X", date(2026, 8, 2), "Seller B", "99.00"),
		observation("X", date(2026, 8, 2), "Our company", "94.00"),
	}
	svc := NewPriceService(historyLedger(), &fakeCache{latest: cached}, "Our company")

	latest, err := svc.LatestPrices(context.Background(), "X")
	require.NoError(t, err)
	require.Len(t, latest, 2)
	for _, obs := range latest {
		assert.Equal(t, date(2026, 8, 2), obs.Date)
	}
}

func TestLatestPricesLedgerFallback(t *testing.T) {
	// Cache error falls through to the ledger's newest date group.
	svc := NewPriceService(historyLedger(), &fakeCache{err: errors.New("redis down")}, "Our company")

	latest, err := svc.LatestPrices(context.Background(), "X")
	require.NoError(t, err)
	require.Len(t, latest, 2)
	for _, obs := range latest {
		assert.Equal(t, date(2026, 8, 2), obs.Date)
	}
}

func TestLatestPricesWithoutCache(t *testing.T) {
	svc := NewPriceService(historyLedger(), nil, "Our company")

	latest, err := svc.LatestPrices(context.Background(), "X")
	require.NoError(t, err)
	assert.Len(t, latest, 2)
}

func TestLatestPricesUnknownProduct(t *testing.T) {
	svc := NewPriceService(historyLedger(), nil, "Our company")

	_, err := svc.LatestPrices(context.Background(), "nope")
	assert.Error(t, err)
}

func TestLatestPricesEmptyProduct(t *testing.T) {
	svc := NewPriceService(historyLedger(), nil, "Our company")

	_, err := svc.LatestPrices(context.Background(), "   ")
	assert.Error(t, err)
}

func TestHistoryTrimsProduct(t *testing.T) {
	svc := NewPriceService(historyLedger(), nil, "Our company")

	history, err := svc.History(context.Background(), "  X  ")
	require.NoError(t, err)
	assert.Len(t, history, 4)
}

func TestRankedDays(t *testing.T) {
	svc := NewPriceService(historyLedger(), nil, "Our company")

	days, err := svc.RankedDays(context.Background(), "X")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, 1, days[0].OurRank)
	assert.Equal(t, "95.00", days[0].MinPrice.StringFixed(2))
	assert.Equal(t, "97.50", days[0].AvgPrice.StringFixed(2))
}

func TestRankChangesEmptyLedger(t *testing.T) {
	svc := NewPriceService(&fakeLedger{}, nil, "Our company")

	changes, err := svc.RankChanges(context.Background())
	require.NoError(t, err)
	assert.Empty(t, changes)
}

func TestRankChangesLedgerError(t *testing.T) {
	svc := NewPriceService(&fakeLedger{err: errors.New("connection lost")}, nil, "Our company")

	_, err := svc.RankChanges(context.Background())
	assert.Error(t, err)
}
