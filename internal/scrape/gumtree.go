package scrape

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/config"
	"github.com/ewalker/gpuscout/internal/model"
)

const (
	gumtreeBaseURL   = "https://www.gumtree.com"
	gumtreeSearchURL = "https://www.gumtree.com/search"
)

// Gumtree collects GPU listings from Gumtree search results.
type Gumtree struct {
	settings  config.Settings
	searchURL string
}

// NewGumtree creates the Gumtree collector.
func NewGumtree(settings config.Settings) *Gumtree {
	return &Gumtree{
		settings:  settings,
		searchURL: gumtreeSearchURL,
	}
}

// Name implements service.Collector.
func (g *Gumtree) Name() string { return "gumtree" }

// BaseURL implements service.Collector.
func (g *Gumtree) BaseURL() string { return gumtreeBaseURL }

// Collect scrapes search result pages for every configured search term.
func (g *Gumtree) Collect(ctx context.Context) ([]model.RawListing, error) {
	common.LogInfo("starting Gumtree collection", common.Fields{"terms": len(g.settings.SearchTerms)})

	var all []model.RawListing
	var currentTerm string

	c := newCollector(g.settings)

	c.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			slog.Warn("failed to parse Gumtree page", "url", r.Request.URL.String(), "error", err)
			return
		}
		all = append(all, parseGumtreeSearch(doc, currentTerm)...)
	})

	c.OnError(func(r *colly.Response, err error) {
		slog.Warn("Gumtree request failed", "url", r.Request.URL.String(), "status", r.StatusCode, "error", err)
	})

	for _, term := range g.settings.SearchTerms {
		if ctx.Err() != nil {
			return dedupeRaw(all), ctx.Err()
		}

		currentTerm = term
		common.LogDebug("searching Gumtree", common.Fields{"term": term})

		for page := 1; page <= g.settings.Limits.MaxPages; page++ {
			before := len(all)

			if err := c.Visit(g.pageURL(term, page)); err != nil {
				slog.Warn("Gumtree visit failed", "term", term, "page", page, "error", err)
				break
			}

			// Empty page means no further results for this term.
			if len(all) == before {
				break
			}
		}

		if len(all) >= g.settings.Limits.MaxResultsPerSite {
			break
		}
	}

	unique := dedupeRaw(all)
	if len(unique) > g.settings.Limits.MaxResultsPerSite {
		unique = unique[:g.settings.Limits.MaxResultsPerSite]
	}

	stamp(unique, g.Name(), time.Now())
	common.LogInfo("Gumtree collection finished", common.Fields{"listings": len(unique)})

	return unique, nil
}

func (g *Gumtree) pageURL(term string, page int) string {
	params := url.Values{
		"search_category": {"computers-software"},
		"q":               {term},
		"page":            {strconv.Itoa(page)},
	}
	return fmt.Sprintf("%s?%s", g.searchURL, params.Encode())
}

// parseGumtreeSearch extracts raw listings from one Gumtree search page.
// Gumtree markup varies between layouts, so selectors match on class
// substrings rather than exact names.
func parseGumtreeSearch(doc *goquery.Document, searchTerm string) []model.RawListing {
	var listings []model.RawListing

	doc.Find(`div[class*="listing-maxi"], article[class*="listing-maxi"], div[class*="natural"]`).Each(func(_ int, s *goquery.Selection) {
		titleLink := s.Find(`a[class*="listing-link"]`).First()
		if titleLink.Length() == 0 {
			titleLink = s.Find(`a[href*="/ad/"]`).First()
		}

		title := strings.TrimSpace(titleLink.Text())
		if title == "" {
			title = strings.TrimSpace(s.Find(`h2[class*="listing-title"]`).Text())
		}
		if title == "" {
			return
		}

		href := titleLink.AttrOr("href", "")
		if href != "" && strings.HasPrefix(href, "/") {
			href = gumtreeBaseURL + href
		}

		price := strings.TrimSpace(s.Find(`span[class*="listing-price"]`).Text())
		if price == "" {
			price = strings.TrimSpace(s.Find(`strong[class*="amount"]`).Text())
		}

		location := strings.TrimSpace(s.Find(`span[class*="listing-location"]`).Text())
		if location == "" {
			location = strings.TrimSpace(s.Find(`div[class*="location"]`).Text())
		}

		posted := strings.TrimSpace(s.Find(`span[class*="listing-posted-date"]`).Text())
		if posted == "" {
			posted = strings.TrimSpace(s.Find("time").Text())
		}

		listing := model.RawListing{
			Title:       title,
			URL:         href,
			Price:       price,
			Description: strings.TrimSpace(s.Find(`p[class*="listing-description"]`).Text()),
			Location:    location,
			PostedDate:  posted,
			SellerInfo:  strings.TrimSpace(s.Find(`span[class*="seller"]`).Text()),
			ImageURL:    s.Find(`img[class*="listing-thumbnail"]`).AttrOr("src", ""),
			ListingType: "Classified",
			Marketplace: "Gumtree",
			SearchTerm:  searchTerm,
			IsFeatured:  s.Find(`span[class*="featured"], span[class*="urgent"]`).Length() > 0,
		}

		listings = append(listings, listing)
	})

	return listings
}
