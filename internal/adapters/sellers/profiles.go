// Package sellers holds the built-in extraction profiles. Rules vary per
// seller, behavior does not, so sellers are data, not types.
package sellers

import (
	"strings"

	"pricewatch/internal/core/service/extract"
)

// Defaults returns the built-in seller profiles in collection order.
func Defaults() []extract.Profile {
	return []extract.Profile{
		{
			Seller:       "Ebay",
			URLColumn:    "Ebay URL",
			ItemSelector: "li.s-item",
			ItemPrice:    ".s-item__price",
			ItemShipping: ".s-item__shipping, .s-item__logisticsCost",
			PriceSelectors: []string{
				"#prcIsum",
				"#mm-saleDscPrc",
				".x-price-primary span",
				"[data-testid='x-price-primary'] span",
				"[data-testid='ux-textual-display'] span",
			},
			ShippingSelectors: []string{
				"#fshippingCost",
				"#shSummary .logisticsCost",
				"[data-testid='ux-labels-values__shipping']",
				".ux-labels-values__values-content",
			},
		},
		{
			Seller:    "Amazon",
			URLColumn: "Amazon URL",
			PriceSelectors: []string{
				".a-price .a-offscreen",
				"#corePrice_feature_div .a-offscreen",
				// last resort: whole-euros span, cents span often missing
				"span.a-price-whole",
			},
			ShippingSelectors: []string{
				"#deliveryBlockMessage",
				"#mir-layout-DELIVERY_BLOCK",
			},
		},
		{
			Seller:       "Idealo",
			URLColumn:    "Idealo URL",
			ItemSelector: "[data-product-id]",
			ItemPrice:    "div.text-base.font-medium.text-orange-500",
		},
	}
}

// Enabled filters the defaults down to the configured seller names. An
// empty list enables everything.
func Enabled(names []string) []extract.Profile {
	defaults := Defaults()
	if len(names) == 0 {
		return defaults
	}

	wanted := make(map[string]bool, len(names))
	for _, name := range names {
		wanted[strings.ToLower(strings.TrimSpace(name))] = true
	}

	var profiles []extract.Profile
	for _, profile := range defaults {
		if wanted[strings.ToLower(profile.Seller)] {
			profiles = append(profiles, profile)
		}
	}
	return profiles
}
