// Package rank derives per-day market metrics from ledger observations and
// detects rank moves of the tracked seller across time.
package rank

import (
	"sort"

	"github.com/shopspring/decimal"

	"pricewatch/internal/core/domain"
)

// group collects one (product, date) slice of observations in first-seen
// order. That order is the rank tie-break: at equal prices the earlier
// seller takes the lower rank.
type group struct {
	product string
	date    domain.Date
	sellers []string
	prices  []decimal.Decimal
}

type groupKey struct {
	product string
	date    domain.Date
}

// RankedDays computes min/avg/our-price/our-rank per (product, date) group.
// Input observations are expected in ledger order (product, date, insertion
// order); group order in the result follows first appearance. An empty
// input yields an empty result.
func RankedDays(observations []domain.PriceObservation, trackedSeller string) []domain.RankedDay {
	groups := groupObservations(observations)

	days := make([]domain.RankedDay, 0, len(groups))
	for _, g := range groups {
		days = append(days, rankedDay(g, trackedSeller))
	}
	return days
}

// DetectChanges compares, per product, the tracked seller's rank on the two
// most recent distinct dates present in the ledger for that product. Gaps
// between the dates are tolerated. Products with fewer than two dates, or
// without a tracked-seller rank on either date, are skipped.
func DetectChanges(observations []domain.PriceObservation, trackedSeller string) []domain.RankChangeEvent {
	byProduct := make(map[string][]domain.PriceObservation)
	var productOrder []string
	for _, obs := range observations {
		if _, seen := byProduct[obs.Product]; !seen {
			productOrder = append(productOrder, obs.Product)
		}
		byProduct[obs.Product] = append(byProduct[obs.Product], obs)
	}

	var events []domain.RankChangeEvent
	for _, product := range productOrder {
		days := RankedDays(byProduct[product], trackedSeller)
		sort.SliceStable(days, func(i, j int) bool {
			return days[i].Date.Before(days[j].Date)
		})

		if len(days) < 2 {
			continue // insufficient history
		}

		previous, current := days[len(days)-2], days[len(days)-1]
		if previous.OurRank == 0 || current.OurRank == 0 {
			continue // tracked seller missing on one of the dates
		}
		if previous.OurRank == current.OurRank {
			continue
		}

		events = append(events, domain.RankChangeEvent{
			Product:      product,
			PreviousRank: previous.OurRank,
			CurrentRank:  current.OurRank,
			PreviousDate: previous.Date,
			CurrentDate:  current.Date,
		})
	}
	return events
}

func groupObservations(observations []domain.PriceObservation) []*group {
	index := make(map[groupKey]*group)
	var ordered []*group

	for _, obs := range observations {
		key := groupKey{product: obs.Product, date: obs.Date}
		g, ok := index[key]
		if !ok {
			g = &group{product: obs.Product, date: obs.Date}
			index[key] = g
			ordered = append(ordered, g)
		}
		g.sellers = append(g.sellers, obs.Seller)
		g.prices = append(g.prices, obs.Price)
	}
	return ordered
}

func rankedDay(g *group, trackedSeller string) domain.RankedDay {
	day := domain.RankedDay{
		Product: g.product,
		Date:    g.date,
		Sellers: len(g.prices),
	}

	min := g.prices[0]
	sum := decimal.Zero
	for _, price := range g.prices {
		if price.LessThan(min) {
			min = price
		}
		sum = sum.Add(price)
	}
	day.MinPrice = min
	day.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(g.prices)))).Round(2)

	// Stable ascending sort over indices keeps first-seen order at ties.
	order := make([]int, len(g.prices))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return g.prices[order[a]].LessThan(g.prices[order[b]])
	})

	for position, idx := range order {
		if g.sellers[idx] == trackedSeller {
			price := g.prices[idx]
			day.OurPrice = &price
			day.OurRank = position + 1
			break
		}
	}
	return day
}
