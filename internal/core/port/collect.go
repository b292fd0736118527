package port

import (
	"context"

	"pricewatch/internal/core/domain"
)

// Fetcher retrieves raw page content for a seller URL. The live
// implementation talks HTTP; the test implementation serves synthetic pages.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)

	// Get fetcher name/identifier
	Name() string
}

// Catalog provides the ordered product list with per-seller URLs.
type Catalog interface {
	Load() ([]domain.CatalogEntry, error)
}

// Collector orchestrates the per-seller fetch-extract-upsert cycles.
type Collector interface {
	// Run executes one full collection pass over the catalog and returns the
	// number of observations written.
	Run(ctx context.Context) (int, error)

	// Switch to live mode (fetch real seller pages)
	SwitchToLiveMode() error

	// Switch to test mode (use synthetic pages)
	SwitchToTestMode() error

	// Get current mode
	CurrentMode() string

	// Status reports mode, last run time and row count.
	Status() domain.CollectorStatus
}
