package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"german thousands and decimal", "1.299,99 €", "1299.99"},
		{"plain dot decimal", "1299.99", "1299.99"},
		{"space thousands", "1 299,99", "1299.99"},
		{"comma decimal", "899,99 €", "899.99"},
		{"dot decimal with symbol", "899.99 €", "899.99"},
		{"currency prefix", "EUR 2.049,00", "2049.00"},
		{"non-breaking spaces", "1 299,99 €", "1299.99"},
		{"surrounding prose", "Preis: 449,00 € inkl. MwSt.", "449.00"},
		{"price after prose integer", "Lieferung in 3 Tagen 199,99 €", "199.99"},
		{"bare integer", "2049", "2049.00"},
		{"bare integer with symbol", "2049 €", "2049.00"},
		{"dot thousands without fraction", "1.299", "1299.00"},
		{"multiple dot groups", "1.299.000", "1299000.00"},
		{"small dot decimal", "5.99", "5.99"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Price(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.StringFixed(2))
		})
	}
}

func TestPriceNoValue(t *testing.T) {
	// A lone integer inside prose is a quantity, not a price.
	for _, text := range []string{"", "   ", "Derzeit nicht verfügbar", "€", "Lieferung in 3 Tagen", " "} {
		_, err := Price(text)
		assert.ErrorIs(t, err, ErrNoPrice, "input %q", text)
	}
}

func TestPriceConventionsAgree(t *testing.T) {
	// The same value formatted under either separator convention parses to
	// one canonical result.
	for _, text := range []string{"1.299,99 €", "1299.99", "1 299,99"} {
		got, err := Price(text)
		require.NoError(t, err, "input %q", text)
		assert.Equal(t, "1299.99", got.StringFixed(2), "input %q", text)
	}
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"free german", "Kostenloser Versand", "0.00"},
		{"free gratis", "GRATIS Lieferung", "0.00"},
		{"free english", "Free shipping", "0.00"},
		{"priced", "+EUR 4,99 Versand", "4.99"},
		{"empty", "", "0.00"},
		{"unparseable", "Lieferdetails", "0.00"},
		{"prose integer is not a cost", "Lieferung in 3 Tagen", "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShippingCost(tt.text).StringFixed(2))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "1 299,99 €", Normalize("  1 299,99\n €  "))
	assert.Equal(t, "", Normalize("     "))
}
