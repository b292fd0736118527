// Package parse converts locale-formatted price text scraped from seller
// pages into canonical 2-digit decimal values.
package parse

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrNoPrice means the text carried no convertible numeric value. Callers
// treat it as "price unavailable", not as a fatal condition.
var ErrNoPrice = errors.New("no price found in text")

// priceRe matches, in order of preference: a grouped-thousands number with
// an optional 2-digit fraction ("1.299,99", "1 299,99", "1.299") or a plain
// integer-separator-decimal number ("899,99", "1299.99"). Bare integers are
// deliberately absent: a lone integer inside prose ("Lieferung in 3 Tagen")
// is a quantity, not a price, and must never shadow a real price appearing
// later in the text.
var priceRe = regexp.MustCompile(`\d{1,3}(?:[ .,]\d{3})+(?:[.,]\d{2})?|\d+[.,]\d{2}`)

// bareIntRe accepts a bare integer only when the whole text is that number,
// at most decorated with a currency marker ("2049", "2049 €", "EUR 2049").
var bareIntRe = regexp.MustCompile(`^(?:€|eur|\$)? ?(\d+) ?(?:€|eur|\$)?$`)

var shippingFreeWords = []string{"kostenlos", "gratis", "free"}

// Price extracts the first price-like substring from arbitrary text and
// returns it as a non-negative decimal rounded to 2 digits.
//
// Separator disambiguation: when both "." and "," appear, "." groups
// thousands and "," is the decimal mark. A lone "," is always the decimal
// mark. A lone "." is the decimal mark only when exactly two digits follow
// its last occurrence; otherwise it groups thousands. Spaces inside the
// match always group thousands.
func Price(text string) (decimal.Decimal, error) {
	t := Normalize(text)
	if t == "" {
		return decimal.Decimal{}, ErrNoPrice
	}

	num := priceRe.FindString(t)
	if num == "" {
		if m := bareIntRe.FindStringSubmatch(strings.ToLower(t)); m != nil {
			num = m[1]
		}
	}
	if num == "" {
		return decimal.Decimal{}, ErrNoPrice
	}
	num = strings.ReplaceAll(num, " ", "")

	hasDot := strings.Contains(num, ".")
	hasComma := strings.Contains(num, ",")
	switch {
	case hasDot && hasComma:
		num = strings.ReplaceAll(num, ".", "")
		num = strings.ReplaceAll(num, ",", ".")
	case hasComma:
		num = strings.ReplaceAll(num, ",", ".")
	case hasDot:
		last := strings.LastIndex(num, ".")
		if len(num)-last-1 == 2 {
			num = strings.ReplaceAll(num[:last], ".", "") + num[last:]
		} else {
			num = strings.ReplaceAll(num, ".", "")
		}
	}

	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Decimal{}, ErrNoPrice
	}
	return d.Round(2), nil
}

// ShippingCost parses shipping text. "Kostenloser Versand"-class phrasing
// and empty or unparseable text both mean free shipping: the cost is
// additive, so unknown defaults to 0.00 rather than failing the offer.
func ShippingCost(text string) decimal.Decimal {
	t := strings.ToLower(Normalize(text))
	if t == "" {
		return decimal.Zero
	}
	for _, word := range shippingFreeWords {
		if strings.Contains(t, word) {
			return decimal.Zero
		}
	}
	cost, err := Price(text)
	if err != nil {
		return decimal.Zero
	}
	return cost
}

// Normalize collapses whitespace runs, including non-breaking spaces, into
// single spaces and trims the ends.
func Normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
