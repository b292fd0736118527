package domain

import (
	"github.com/shopspring/decimal"
)

// PriceObservation is one scraped price: what a seller asked for a product
// on a given day, shipping included, rounded to 2 digits.
type PriceObservation struct {
	Product string          `json:"product"`
	Date    Date            `json:"date"`
	Seller  string          `json:"seller"`
	Price   decimal.Decimal `json:"price"`
}

// ObservationKey identifies the at-most-one-price-per-day uniqueness triple.
type ObservationKey struct {
	Product string
	Date    Date
	Seller  string
}

func (o PriceObservation) Key() ObservationKey {
	return ObservationKey{Product: o.Product, Date: o.Date, Seller: o.Seller}
}

// CatalogEntry is one tracked product: its label, the tracked company's own
// asking price when the catalog carries one, and per-seller page URLs.
type CatalogEntry struct {
	Product    string
	OurPrice   *decimal.Decimal
	SellerURLs map[string]string
}
