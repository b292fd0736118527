// Package catalog loads the tracked product list from a CSV file.
package catalog

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
	"pricewatch/internal/core/service/extract"
	"pricewatch/internal/core/service/parse"
)

// Header candidates are matched case-insensitively so catalog files survive
// column renames like "Product" vs "Product name".
var (
	productColumns  = []string{"product name", "product", "name"}
	ourPriceColumns = []string{"our company price", "our price", "our_company_price"}
)

type CSVCatalog struct {
	path     string
	profiles []extract.Profile
}

// NewCSVCatalog creates a loader for the given file. The profiles supply
// the per-seller URL column names.
func NewCSVCatalog(path string, profiles []extract.Profile) port.Catalog {
	return &CSVCatalog{path: path, profiles: profiles}
}

// Load reads the catalog and returns its entries in file order. Rows
// without a product name are skipped; missing URLs and prices stay absent
// rather than failing the load.
func (c *CSVCatalog) Load() ([]domain.CatalogEntry, error) {
	f, err := os.Open(c.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog %s: %w", c.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", c.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("catalog %s is empty", c.path)
	}

	header := headerIndex(records[0])

	productCol, ok := findColumn(header, productColumns...)
	if !ok {
		return nil, fmt.Errorf("catalog %s has no product column (need one of %v, found %v)",
			c.path, productColumns, records[0])
	}
	ourPriceCol, hasOurPrice := findColumn(header, ourPriceColumns...)

	sellerCols := make(map[string]int)
	for _, profile := range c.profiles {
		if col, ok := findColumn(header, profile.URLColumn); ok {
			sellerCols[profile.Seller] = col
		}
	}

	var entries []domain.CatalogEntry
	for _, record := range records[1:] {
		product := parse.Normalize(field(record, productCol))
		if product == "" {
			continue
		}

		entry := domain.CatalogEntry{
			Product:    product,
			SellerURLs: make(map[string]string),
		}

		if hasOurPrice {
			if price, err := parse.Price(field(record, ourPriceCol)); err == nil {
				entry.OurPrice = &price
			}
		}

		for seller, col := range sellerCols {
			if url := strings.TrimSpace(field(record, col)); url != "" {
				entry.SellerURLs[seller] = url
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return index
}

func findColumn(header map[string]int, candidates ...string) (int, bool) {
	for _, candidate := range candidates {
		if i, ok := header[strings.ToLower(strings.TrimSpace(candidate))]; ok {
			return i, true
		}
	}
	return 0, false
}

func field(record []string, i int) string {
	if i >= len(record) {
		return ""
	}
	return record[i]
}
