// Package scrape implements the per-marketplace collectors. Collectors
// are deliberately thin: they fetch search result pages politely, hand
// the HTML to a site-specific parser and emit raw listings for the
// standardizer. All site knowledge lives in the parsers so they stay
// testable against fixture HTML.
package scrape

import (
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/ewalker/gpuscout/internal/config"
	"github.com/ewalker/gpuscout/internal/model"
)

// newCollector builds a colly collector with the politeness settings all
// marketplace collectors share.
func newCollector(settings config.Settings) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(settings.UserAgent),
	)

	c.SetRequestTimeout(settings.Limits.Timeout)

	_ = c.Limit(&colly.LimitRule{
		DomainGlob:  "*",
		Parallelism: 1,
		Delay:       settings.Limits.RequestDelay,
		RandomDelay: settings.Limits.RequestDelay / 2,
	})

	return c
}

// dedupeRaw removes duplicate and sold listings. URL is the primary key;
// listings without a URL fall back to a title prefix so repeated
// promotional rows still collapse.
func dedupeRaw(listings []model.RawListing) []model.RawListing {
	seen := make(map[string]struct{})
	unique := make([]model.RawListing, 0, len(listings))

	for _, l := range listings {
		if l.IsSold {
			continue
		}

		key := l.URL
		if key == "" {
			title := strings.ToLower(l.Title)
			if len(title) > 50 {
				title = title[:50]
			}
			key = "title:" + title
		}

		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, l)
	}

	return unique
}

// stamp tags listings with the collector source and scrape time.
func stamp(listings []model.RawListing, source string, at time.Time) {
	for i := range listings {
		listings[i].Source = source
		listings[i].ScrapedAt = at
	}
}
