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
	ebayBaseURL        = "https://www.ebay.co.uk"
	ebaySearchURL      = "https://www.ebay.co.uk/sch/i.html"
	ebayMaxPages       = 10 // hard site cap regardless of config
	ebayResultsPerPage = 50
)

// Ebay collects GPU listings from eBay UK search results.
type Ebay struct {
	settings  config.Settings
	searchURL string
}

// NewEbay creates the eBay UK collector.
func NewEbay(settings config.Settings) *Ebay {
	return &Ebay{
		settings:  settings,
		searchURL: ebaySearchURL,
	}
}

// Name implements service.Collector.
func (e *Ebay) Name() string { return "ebay" }

// BaseURL implements service.Collector.
func (e *Ebay) BaseURL() string { return ebayBaseURL }

// Collect scrapes search result pages for every configured search term.
func (e *Ebay) Collect(ctx context.Context) ([]model.RawListing, error) {
	common.LogInfo("starting eBay UK collection", common.Fields{"terms": len(e.settings.SearchTerms)})

	maxPages := e.settings.Limits.MaxPages
	if maxPages > ebayMaxPages {
		maxPages = ebayMaxPages
	}

	var all []model.RawListing
	var currentTerm string

	c := newCollector(e.settings)

	c.OnResponse(func(r *colly.Response) {
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(r.Body))
		if err != nil {
			slog.Warn("failed to parse eBay page", "url", r.Request.URL.String(), "error", err)
			return
		}
		all = append(all, parseEbaySearch(doc, currentTerm)...)
	})

	c.OnError(func(r *colly.Response, err error) {
		slog.Warn("eBay request failed", "url", r.Request.URL.String(), "status", r.StatusCode, "error", err)
	})

	for _, term := range e.settings.SearchTerms {
		if ctx.Err() != nil {
			return dedupeRaw(all), ctx.Err()
		}

		currentTerm = term
		common.LogDebug("searching eBay", common.Fields{"term": term})

		for page := 1; page <= maxPages; page++ {
			before := len(all)

			if err := c.Visit(e.pageURL(term, page)); err != nil {
				slog.Warn("eBay visit failed", "term", term, "page", page, "error", err)
				break
			}

			// A short page means we walked off the end of the results.
			if len(all)-before < ebayResultsPerPage {
				break
			}
		}

		if len(all) >= e.settings.Limits.MaxResultsPerSite {
			break
		}
	}

	unique := dedupeRaw(all)
	if len(unique) > e.settings.Limits.MaxResultsPerSite {
		unique = unique[:e.settings.Limits.MaxResultsPerSite]
	}

	stamp(unique, e.Name(), time.Now())
	common.LogInfo("eBay collection finished", common.Fields{"listings": len(unique)})

	return unique, nil
}

// pageURL builds a search URL for one term and page. The category and
// condition filters narrow results to used graphics cards in a plausible
// price band, which keeps page counts down.
func (e *Ebay) pageURL(term string, page int) string {
	params := url.Values{
		"_nkw":             {term},
		"_sacat":           {"27386"}, // Graphics/Video Cards
		"LH_BIN":           {"1"},
		"LH_ItemCondition": {"3000|4000|5000"},
		"_udlo":            {"50"},
		"_udhi":            {"2000"},
		"rt":               {"nc"},
		"_ipg":             {strconv.Itoa(ebayResultsPerPage)},
		"_pgn":             {strconv.Itoa(page)},
	}
	return fmt.Sprintf("%s?%s", e.searchURL, params.Encode())
}

// parseEbaySearch extracts raw listings from one eBay search results page.
func parseEbaySearch(doc *goquery.Document, searchTerm string) []model.RawListing {
	var listings []model.RawListing

	doc.Find("div.s-item, li.s-item").Each(func(_ int, s *goquery.Selection) {
		title := strings.TrimSpace(s.Find("h3.s-item__title").Text())
		if title == "" || strings.HasPrefix(strings.ToLower(title), "shop on ebay") {
			return // promotional row
		}

		soldText := strings.ToLower(s.Find("span.s-item__title--tag").Text())

		listing := model.RawListing{
			Title:       title,
			URL:         s.Find("a.s-item__link").AttrOr("href", ""),
			Price:       strings.TrimSpace(s.Find("span.s-item__price").Text()),
			Condition:   strings.TrimSpace(s.Find("span.SECONDARY_INFO").Text()),
			Shipping:    strings.TrimSpace(s.Find("span.s-item__shipping").Text()),
			Location:    strings.TrimSpace(s.Find("span.s-item__location").Text()),
			SellerInfo:  strings.TrimSpace(s.Find("span.s-item__seller-info-text").Text()),
			ImageURL:    s.Find("img.s-item__image").AttrOr("src", ""),
			ListingType: "Buy It Now",
			Marketplace: "eBay UK",
			SearchTerm:  searchTerm,
			IsSold:      strings.Contains(soldText, "sold"),
		}

		listings = append(listings, listing)
	})

	return listings
}
