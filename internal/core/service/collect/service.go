// Package collect orchestrates the per-seller fetch-extract-upsert cycles
// over the product catalog.
package collect

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/robfig/cron/v3"

	"pricewatch/internal/core/domain"
	"pricewatch/internal/core/port"
	"pricewatch/internal/core/service/extract"
)

// Collection modes
const (
	ModeLive = "live"
	ModeTest = "test"
)

// CollectService implements the port.Collector interface. Sellers are
// collected concurrently; the ledger's atomic upsert is the only shared
// write target, so the jobs need no coordination beyond a WaitGroup.
type CollectService struct {
	ledger   port.Ledger
	cache    port.Cache
	catalog  port.Catalog
	profiles []extract.Profile

	liveFetcher port.Fetcher
	testFetcher port.Fetcher

	trackedSeller string
	requestDelay  time.Duration

	// Mode management
	modeMutex   sync.RWMutex
	currentMode string
	fetcher     port.Fetcher

	// One collection pass at a time
	runMutex sync.Mutex

	statusMutex sync.RWMutex
	running     bool
	lastRun     time.Time
	lastRows    int

	cron *cron.Cron
}

// NewCollectService creates a collector starting in live mode. The cache is
// optional.
func NewCollectService(
	ledger port.Ledger,
	cache port.Cache,
	catalog port.Catalog,
	profiles []extract.Profile,
	liveFetcher, testFetcher port.Fetcher,
	trackedSeller string,
	requestDelay time.Duration,
) *CollectService {
	return &CollectService{
		ledger:        ledger,
		cache:         cache,
		catalog:       catalog,
		profiles:      profiles,
		liveFetcher:   liveFetcher,
		testFetcher:   testFetcher,
		trackedSeller: trackedSeller,
		requestDelay:  requestDelay,
		currentMode:   ModeLive,
		fetcher:       liveFetcher,
	}
}

// Run executes one full collection pass: every enabled seller walks the
// catalog in its own goroutine, and the tracked company's own prices are
// taken from the catalog itself. Per-item failures are logged and skipped;
// the pass as a whole only fails when the catalog cannot be loaded.
func (s *CollectService) Run(ctx context.Context) (int, error) {
	s.runMutex.Lock()
	defer s.runMutex.Unlock()

	s.setRunning(true)
	defer s.setRunning(false)

	entries, err := s.catalog.Load()
	if err != nil {
		return 0, fmt.Errorf("failed to load catalog: %w", err)
	}

	fetcher := s.activeFetcher()
	slog.Info("Starting collection pass",
		"mode", s.CurrentMode(),
		"products", len(entries),
		"sellers", len(s.profiles))

	var wg sync.WaitGroup
	rowCounts := make(chan int, len(s.profiles)+1)

	for _, profile := range s.profiles {
		wg.Add(1)
		go func(profile extract.Profile) {
			defer wg.Done()
			batch := s.collectSeller(ctx, fetcher, profile, entries)
			rowCounts <- s.writeBatch(ctx, profile.Seller, batch)
		}(profile)
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		batch := s.trackedObservations(entries)
		rowCounts <- s.writeBatch(ctx, s.trackedSeller, batch)
	}()

	wg.Wait()
	close(rowCounts)

	total := 0
	for count := range rowCounts {
		total += count
	}

	s.statusMutex.Lock()
	s.lastRun = time.Now()
	s.lastRows = total
	s.statusMutex.Unlock()

	slog.Info("Collection pass finished", "rows", total)
	return total, nil
}

// collectSeller walks the catalog for one seller and returns the day's
// observations. Missing URLs, fetch failures and unavailable prices skip
// the product and continue.
func (s *CollectService) collectSeller(ctx context.Context, fetcher port.Fetcher, profile extract.Profile, entries []domain.CatalogEntry) []domain.PriceObservation {
	today := domain.Today()
	var batch []domain.PriceObservation

	for i, entry := range entries {
		if ctx.Err() != nil {
			return batch
		}
		if i > 0 && !s.sleep(ctx) {
			return batch
		}

		url := entry.SellerURLs[profile.Seller]
		if url == "" {
			slog.Warn("Missing seller URL", "seller", profile.Seller, "product", entry.Product)
			continue
		}

		content, err := fetcher.Fetch(ctx, url)
		if err != nil {
			slog.Warn("Fetch failed", "seller", profile.Seller, "product", entry.Product, "error", err)
			continue
		}

		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
		if err != nil {
			slog.Warn("Failed to parse page", "seller", profile.Seller, "product", entry.Product, "error", err)
			continue
		}

		price, err := extract.Price(doc, profile)
		if err != nil {
			slog.Warn("No price on page", "seller", profile.Seller, "product", entry.Product)
			continue
		}

		slog.Info("Collected price", "seller", profile.Seller, "product", entry.Product, "price", price)
		batch = append(batch, domain.PriceObservation{
			Product: entry.Product,
			Date:    today,
			Seller:  profile.Seller,
			Price:   price,
		})
	}
	return batch
}

// trackedObservations builds the tracked company's own observations from
// the catalog's price column.
func (s *CollectService) trackedObservations(entries []domain.CatalogEntry) []domain.PriceObservation {
	today := domain.Today()
	var batch []domain.PriceObservation

	for _, entry := range entries {
		if entry.OurPrice == nil {
			slog.Warn("Missing tracked price in catalog", "product", entry.Product)
			continue
		}
		batch = append(batch, domain.PriceObservation{
			Product: entry.Product,
			Date:    today,
			Seller:  s.trackedSeller,
			Price:   *entry.OurPrice,
		})
	}
	return batch
}

func (s *CollectService) writeBatch(ctx context.Context, seller string, batch []domain.PriceObservation) int {
	if len(batch) == 0 {
		slog.Warn("No observations collected", "seller", seller)
		return 0
	}

	written, err := s.ledger.UpsertBatch(ctx, batch)
	if err != nil {
		slog.Error("Failed to upsert batch", "seller", seller, "error", err)
		return 0
	}

	if s.cache != nil {
		for _, obs := range batch {
			if err := s.cache.SetLatest(ctx, obs); err != nil {
				slog.Warn("Failed to cache observation", "seller", seller, "product", obs.Product, "error", err)
			}
		}
	}

	slog.Info("Batch written", "seller", seller, "rows", written)
	return written
}

// sleep waits out the per-request delay; false means the context was
// cancelled.
func (s *CollectService) sleep(ctx context.Context) bool {
	if s.requestDelay <= 0 {
		return true
	}
	select {
	case <-time.After(s.requestDelay):
		return true
	case <-ctx.Done():
		return false
	}
}

func (s *CollectService) SwitchToLiveMode() error {
	return s.switchMode(ModeLive, s.liveFetcher)
}

func (s *CollectService) SwitchToTestMode() error {
	return s.switchMode(ModeTest, s.testFetcher)
}

func (s *CollectService) switchMode(mode string, fetcher port.Fetcher) error {
	if fetcher == nil {
		return fmt.Errorf("no fetcher available for %s mode", mode)
	}

	s.modeMutex.Lock()
	defer s.modeMutex.Unlock()

	if s.currentMode == mode {
		return nil // already there
	}
	s.currentMode = mode
	s.fetcher = fetcher
	slog.Info("Switched collection mode", "mode", mode, "fetcher", fetcher.Name())
	return nil
}

func (s *CollectService) CurrentMode() string {
	s.modeMutex.RLock()
	defer s.modeMutex.RUnlock()
	return s.currentMode
}

func (s *CollectService) activeFetcher() port.Fetcher {
	s.modeMutex.RLock()
	defer s.modeMutex.RUnlock()
	return s.fetcher
}

func (s *CollectService) Status() domain.CollectorStatus {
	s.statusMutex.RLock()
	defer s.statusMutex.RUnlock()

	sellers := make([]string, 0, len(s.profiles))
	for _, profile := range s.profiles {
		sellers = append(sellers, profile.Seller)
	}

	status := domain.CollectorStatus{
		CurrentMode: s.CurrentMode(),
		Running:     s.running,
		Sellers:     sellers,
		LastRunRows: s.lastRows,
		Timestamp:   time.Now().Unix(),
	}
	if !s.lastRun.IsZero() {
		status.LastRun = s.lastRun.Unix()
	}
	return status
}

func (s *CollectService) setRunning(running bool) {
	s.statusMutex.Lock()
	s.running = running
	s.statusMutex.Unlock()
}

// StartSchedule registers a recurring collection run. The argument is a
// cron expression, typically daily.
func (s *CollectService) StartSchedule(spec string) error {
	if spec == "" {
		slog.Info("No collection schedule configured")
		return nil
	}

	s.cron = cron.New()
	_, err := s.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()
		if _, err := s.Run(ctx); err != nil {
			slog.Error("Scheduled collection failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid collection schedule %q: %w", spec, err)
	}

	s.cron.Start()
	slog.Info("Collection schedule started", "spec", spec)
	return nil
}

// StopSchedule stops the scheduler, waiting for a running job to finish.
func (s *CollectService) StopSchedule() {
	if s.cron != nil {
		<-s.cron.Stop().Done()
	}
}
