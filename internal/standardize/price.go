package standardize

import (
	"strconv"
	"strings"

	"github.com/ewalker/gpuscout/internal/catalog"
)

// ExtractPrice parses marketplace price text into a sanity-checked GBP
// value. Returns nil for empty input, when no pattern matches, or when
// every candidate falls outside the plausible price band.
func ExtractPrice(priceText string) *float64 {
	if priceText == "" {
		return nil
	}

	cleaned := catalog.PriceQualifiers.ReplaceAllString(strings.ToLower(priceText), "")

	for _, pattern := range catalog.PricePatterns {
		m := pattern.FindStringSubmatch(cleaned)
		if m == nil {
			continue
		}

		price, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", ""), 64)
		if err != nil {
			continue
		}

		if price >= catalog.PriceMin && price <= catalog.PriceMax {
			return &price
		}
	}

	return nil
}
