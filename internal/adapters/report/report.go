// Package report renders the ledger's derived metrics into a report-ready
// dataset and a plain-text alert summary. PDF rendering and mail delivery
// live outside this service; this is the data they consume.
package report

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
	"pricewatch/internal/core/service/rank"
)

// Dataset is the full report input: per-product metric series plus the
// rank-change events between the two most recent dates.
type Dataset struct {
	GeneratedAt time.Time                `json:"generated_at"`
	Products    []ProductSeries          `json:"products"`
	Changes     []domain.RankChangeEvent `json:"changes"`
}

type ProductSeries struct {
	Product string             `json:"product"`
	Days    []domain.RankedDay `json:"days"`
}

type Builder struct {
	ledger        port.Ledger
	trackedSeller string
}

func NewBuilder(ledger port.Ledger, trackedSeller string) *Builder {
	return &Builder{ledger: ledger, trackedSeller: trackedSeller}
}

// Build computes the dataset from a fresh ledger snapshot.
func (b *Builder) Build(ctx context.Context) (*Dataset, error) {
	observations, err := b.ledger.AllObservations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read ledger: %w", err)
	}

	byProduct := make(map[string][]domain.PriceObservation)
	var productOrder []string
	for _, obs := range observations {
		if _, seen := byProduct[obs.Product]; !seen {
			productOrder = append(productOrder, obs.Product)
		}
		byProduct[obs.Product] = append(byProduct[obs.Product], obs)
	}

	dataset := &Dataset{
		GeneratedAt: time.Now(),
		Products:    make([]ProductSeries, 0, len(productOrder)),
		Changes:     rank.DetectChanges(observations, b.trackedSeller),
	}
	for _, product := range productOrder {
		dataset.Products = append(dataset.Products, ProductSeries{
			Product: product,
			Days:    rank.RankedDays(byProduct[product], b.trackedSeller),
		})
	}
	return dataset, nil
}

// Write builds the dataset and writes it as reports/<date>_prices.json.
// Returns the file path.
func (b *Builder) Write(ctx context.Context, dir string) (string, error) {
	dataset, err := b.Build(ctx)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create report dir %s: %w", dir, err)
	}

	path := filepath.Join(dir, fmt.Sprintf("%s_prices.json", time.Now().Format("2006-01-02")))
	data, err := json.MarshalIndent(dataset, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return path, nil
}

// AlertBody renders the rank changes as the operator-facing notification
// text. Empty when nothing changed, which means: send no alert.
func AlertBody(changes []domain.RankChangeEvent) string {
	if len(changes) == 0 {
		return ""
	}

	var sb strings.Builder
	sb.WriteString("The following products have experienced rank changes:\n\n")
	for _, change := range changes {
		direction := "worsened"
		if change.Improved() {
			direction = "improved"
		}
		fmt.Fprintf(&sb, "- %s: Rank %d -> %d (%s), %s vs %s\n",
			change.Product, change.PreviousRank, change.CurrentRank, direction,
			change.CurrentDate, change.PreviousDate)
	}
	return sb.String()
}
