package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pricewatch/internal/core/service/extract"
)

var testProfiles = []extract.Profile{
	{Seller: "Ebay", URLColumn: "Ebay URL"},
	{Seller: "Amazon", URLColumn: "Amazon URL"},
}

func writeCatalog(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "products.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeCatalog(t, `Product name,Our company price,Ebay URL,Amazon URL
Kaffeemaschine  Premium,"89,99 €",https://ebay.example/1,https://amazon.example/1
Wasserkocher,"29,99",https://ebay.example/2,
`)

	entries, err := NewCSVCatalog(path, testProfiles).Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)

	first := entries[0]
	assert.Equal(t, "Kaffeemaschine Premium", first.Product) // whitespace collapsed
	require.NotNil(t, first.OurPrice)
	assert.Equal(t, "89.99", first.OurPrice.StringFixed(2))
	assert.Equal(t, "https://ebay.example/1", first.SellerURLs["Ebay"])
	assert.Equal(t, "https://amazon.example/1", first.SellerURLs["Amazon"])

	second := entries[1]
	assert.Equal(t, "Wasserkocher", second.Product)
	require.NotNil(t, second.OurPrice)
	assert.Equal(t, "29.99", second.OurPrice.StringFixed(2))
	assert.Equal(t, "https://ebay.example/2", second.SellerURLs["Ebay"])
	_, hasAmazon := second.SellerURLs["Amazon"]
	assert.False(t, hasAmazon)
}

func TestLoadHeaderVariants(t *testing.T) {
	path := writeCatalog(t, `PRODUCT,Our Price,ebay url
Toaster,"19,99",https://ebay.example/3
`)

	entries, err := NewCSVCatalog(path, testProfiles).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Toaster", entries[0].Product)
	require.NotNil(t, entries[0].OurPrice)
	assert.Equal(t, "19.99", entries[0].OurPrice.StringFixed(2))
	assert.Equal(t, "https://ebay.example/3", entries[0].SellerURLs["Ebay"])
}

func TestLoadSkipsBlankProducts(t *testing.T) {
	path := writeCatalog(t, `Product name,Our company price
Toaster,"19,99"
,"9,99"
   ,"4,99"
`)

	entries, err := NewCSVCatalog(path, testProfiles).Load()
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Toaster", entries[0].Product)
}

func TestLoadMissingPriceStaysAbsent(t *testing.T) {
	path := writeCatalog(t, `Product name,Our company price
Toaster,
Mixer,auf Anfrage
`)

	entries, err := NewCSVCatalog(path, testProfiles).Load()
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Nil(t, entries[0].OurPrice)
	assert.Nil(t, entries[1].OurPrice)
}

func TestLoadNoProductColumn(t *testing.T) {
	path := writeCatalog(t, `Article,Price
Toaster,"19,99"
`)

	_, err := NewCSVCatalog(path, testProfiles).Load()
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := NewCSVCatalog(filepath.Join(t.TempDir(), "missing.csv"), testProfiles).Load()
	assert.Error(t, err)
}
