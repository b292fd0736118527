package domain

import "github.com/shopspring/decimal"

// RankedDay holds the derived market position of one product on one date.
// Recomputed from the ledger on every request, never persisted.
type RankedDay struct {
	Product  string           `json:"product"`
	Date     Date             `json:"date"`
	MinPrice decimal.Decimal  `json:"min_price"`
	AvgPrice decimal.Decimal  `json:"avg_price"`
	OurPrice *decimal.Decimal `json:"our_price,omitempty"` // absent when the tracked seller has no observation
	OurRank  int              `json:"our_rank,omitempty"`  // 1 = cheapest; 0 when OurPrice is absent
	Sellers  int              `json:"sellers"`
}

// RankChangeEvent is emitted when the tracked seller's rank moved between
// the two most recent observed dates for a product.
type RankChangeEvent struct {
	Product      string `json:"product"`
	PreviousRank int    `json:"previous_rank"`
	CurrentRank  int    `json:"current_rank"`
	PreviousDate Date   `json:"previous_date"`
	CurrentDate  Date   `json:"current_date"`
}

// Improved reports whether the rank moved toward 1.
func (e RankChangeEvent) Improved() bool {
	return e.CurrentRank < e.PreviousRank
}
