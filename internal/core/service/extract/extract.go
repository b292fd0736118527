// Package extract locates the price (and shipping) content on a seller page
// using per-seller profiles of ordered structural probes.
package extract

import (
	"errors"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/shopspring/decimal"

	"pricewatch/internal/core/service/parse"
)

// ErrUnavailable means no structural probe located a usable price on the
// page. Recoverable: the caller skips this product/seller and continues.
var ErrUnavailable = errors.New("no price found on page")

// shippingKeywords gate single-item shipping candidates: a matched element
// only counts as shipping text when it mentions shipping at all.
var shippingKeywords = []string{"versand", "shipping", "kostenlos", "gratis"}

// Profile is one seller's extraction configuration. Seller markup varies
// across templates and experiments, so each lookup is an ordered selector
// list rather than a single selector; a stale list surfaces as
// ErrUnavailable, never as a silently wrong price.
type Profile struct {
	Seller string

	// Aggregate mode: candidate item blocks on listing pages.
	ItemSelector string
	ItemPrice    string
	ItemShipping string

	// Single-item mode: ordered fallbacks on product pages.
	PriceSelectors    []string
	ShippingSelectors []string

	// URLColumn names the catalog column holding this seller's page URL.
	URLColumn string
}

// Price extracts one final price (item price plus shipping, rounded to 2
// digits) from a parsed page. Aggregate mode is tried first: when the page
// carries candidate item blocks, they are scanned in document order and the
// first block yielding a valid price wins. Pages without candidate blocks
// fall through to single-item mode. Pure function of the document content.
func Price(doc *goquery.Document, p Profile) (decimal.Decimal, error) {
	if p.ItemSelector != "" {
		items := doc.Find(p.ItemSelector)
		if items.Length() > 0 {
			return aggregatePrice(items, p)
		}
	}
	return singleItemPrice(doc, p)
}

func aggregatePrice(items *goquery.Selection, p Profile) (decimal.Decimal, error) {
	var total decimal.Decimal
	found := false

	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		price, err := parse.Price(item.Find(p.ItemPrice).First().Text())
		if err != nil {
			return true // no price in this block, keep scanning
		}

		shipping := decimal.Zero
		if p.ItemShipping != "" {
			shipping = parse.ShippingCost(item.Find(p.ItemShipping).First().Text())
		}

		total = price.Add(shipping).Round(2)
		found = true
		return false // first valid offer wins
	})

	if !found {
		return decimal.Decimal{}, ErrUnavailable
	}
	return total, nil
}

func singleItemPrice(doc *goquery.Document, p Profile) (decimal.Decimal, error) {
	var priceText string
	for _, sel := range p.PriceSelectors {
		if text := strings.TrimSpace(doc.Find(sel).First().Text()); text != "" {
			priceText = text
			break
		}
	}

	price, err := parse.Price(priceText)
	if err != nil {
		return decimal.Decimal{}, ErrUnavailable
	}

	var shippingText string
	for _, sel := range p.ShippingSelectors {
		text := strings.TrimSpace(doc.Find(sel).First().Text())
		if text == "" {
			continue
		}
		if mentionsShipping(text) {
			shippingText = text
			break
		}
	}

	return price.Add(parse.ShippingCost(shippingText)).Round(2), nil
}

func mentionsShipping(text string) bool {
	lower := strings.ToLower(text)
	for _, word := range shippingKeywords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
