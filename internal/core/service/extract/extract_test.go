package extract

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var listingProfile = Profile{
	Seller:       "Ebay",
	ItemSelector: "li.s-item",
	ItemPrice:    ".s-item__price",
	ItemShipping: ".s-item__shipping",
	PriceSelectors: []string{
		"#prcIsum",
		".x-price-primary span",
	},
	ShippingSelectors: []string{
		"#fshippingCost",
		".shipping-note",
	},
}

func doc(t *testing.T, html string) *goquery.Document {
	t.Helper()
	d, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return d
}

func TestAggregateFirstValidOfferWins(t *testing.T) {
	// First block has no price, second wins, third is never reached.
	page := `
	<ul>
	  <li class="s-item"><span class="s-item__title">Anzeige</span></li>
	  <li class="s-item">
	    <span class="s-item__price">€19,99</span>
	    <span class="s-item__shipping">Kostenloser Versand</span>
	  </li>
	  <li class="s-item">
	    <span class="s-item__price">€9,99</span>
	  </li>
	</ul>`

	price, err := Price(doc(t, page), listingProfile)
	require.NoError(t, err)
	assert.Equal(t, "19.99", price.StringFixed(2))
}

func TestAggregateAddsShipping(t *testing.T) {
	page := `
	<li class="s-item">
	  <span class="s-item__price">899,00 €</span>
	  <span class="s-item__shipping">+EUR 4,99 Versand</span>
	</li>`

	price, err := Price(doc(t, page), listingProfile)
	require.NoError(t, err)
	assert.Equal(t, "903.99", price.StringFixed(2))
}

func TestAggregateNoValidCandidate(t *testing.T) {
	page := `
	<li class="s-item"><span class="s-item__price">Preis auf Anfrage</span></li>
	<li class="s-item"><span class="s-item__title">Anzeige</span></li>`

	_, err := Price(doc(t, page), listingProfile)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSingleItemFallbackOrder(t *testing.T) {
	// No candidate blocks at all; the second price selector matches.
	page := `
	<div class="x-price-primary"><span>1.299,99 €</span></div>`

	price, err := Price(doc(t, page), listingProfile)
	require.NoError(t, err)
	assert.Equal(t, "1299.99", price.StringFixed(2))
}

func TestSingleItemShippingNeedsKeyword(t *testing.T) {
	// The first shipping selector matches but carries no shipping-related
	// text, so it is ignored; the second one counts.
	page := `
	<span id="prcIsum">449,00 €</span>
	<span id="fshippingCost">Mehr erfahren</span>
	<span class="shipping-note">+EUR 5,99 Versand</span>`

	price, err := Price(doc(t, page), listingProfile)
	require.NoError(t, err)
	assert.Equal(t, "454.99", price.StringFixed(2))
}

func TestSingleItemShippingDefaultsToFree(t *testing.T) {
	page := `<span id="prcIsum">449,00 €</span>`

	price, err := Price(doc(t, page), listingProfile)
	require.NoError(t, err)
	assert.Equal(t, "449.00", price.StringFixed(2))
}

func TestSingleItemUnavailable(t *testing.T) {
	page := `<div class="unrelated">nothing here</div>`

	_, err := Price(doc(t, page), listingProfile)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestSingleItemOnlyProfile(t *testing.T) {
	// Profiles without an ItemSelector go straight to single-item mode.
	profile := Profile{
		Seller:         "Amazon",
		PriceSelectors: []string{".a-price .a-offscreen"},
	}
	page := `<span class="a-price"><span class="a-offscreen">59,99 €</span></span>`

	price, err := Price(doc(t, page), profile)
	require.NoError(t, err)
	assert.Equal(t, "59.99", price.StringFixed(2))
}
