package fetch

import (
	"context"
	"fmt"
	"hash/fnv"
	"strings"
	"time"

	"pricewatch/internal/core/port"
)

// StaticFetcher serves synthetic seller pages so the whole pipeline can run
// without network access. Pages are deterministic per (url, day): stable
// within a day, drifting across days so rank changes actually occur.
type StaticFetcher struct {
	now func() time.Time
}

func NewStaticFetcher() port.Fetcher {
	return &StaticFetcher{now: time.Now}
}

func (f *StaticFetcher) Name() string {
	return "test"
}

func (f *StaticFetcher) Fetch(_ context.Context, url string) ([]byte, error) {
	day := f.now().Format("2006-01-02")
	price := syntheticPrice(url, day)
	second := syntheticPrice(url+"#2", day)

	lower := strings.ToLower(url)
	switch {
	case strings.Contains(lower, "amazon"):
		return []byte(fmt.Sprintf(amazonItemPage, price)), nil
	case strings.Contains(lower, "idealo"):
		return []byte(fmt.Sprintf(idealoListingPage, price, second)), nil
	default:
		return []byte(fmt.Sprintf(ebayListingPage, price, second)), nil
	}
}

// syntheticPrice derives a locale-formatted price from the url and day: a
// stable base per url, plus a daily drift of up to ±10%.
func syntheticPrice(url, day string) string {
	base := int64(5000 + hash(url)%95000) // 50.00€ .. 999.99€ in cents

	drift := int64(hash(url+day)%21) - 10 // -10% .. +10%
	cents := base + base*drift/100

	return fmt.Sprintf("%d,%02d €", cents/100, cents%100)
}

func hash(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// Page templates mirror the markup shapes the built-in seller profiles
// probe for. The first eBay candidate deliberately lacks a price so the
// scan-to-first-valid-offer path gets exercised.
const ebayListingPage = `<!DOCTYPE html>
<html><body>
<ul class="srp-results">
  <li class="s-item"><span class="s-item__title">Anzeige</span></li>
  <li class="s-item">
    <span class="s-item__price">%s</span>
    <span class="s-item__shipping">+EUR 4,99 Versand</span>
  </li>
  <li class="s-item">
    <span class="s-item__price">%s</span>
    <span class="s-item__shipping">Kostenloser Versand</span>
  </li>
</ul>
</body></html>`

const amazonItemPage = `<!DOCTYPE html>
<html><body>
<div id="corePrice_feature_div">
  <span class="a-price"><span class="a-offscreen">%s</span></span>
</div>
</body></html>`

const idealoListingPage = `<!DOCTYPE html>
<html><body>
<div data-product-id="1001">
  <div class="text-base font-medium text-orange-500">%s</div>
</div>
<div data-product-id="1002">
  <div class="text-base font-medium text-orange-500">%s</div>
</div>
</body></html>`
