package compliance

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/ewalker/gpuscout/internal/model"
)

// RenderReport formats compliance results as a plain-text report.
func RenderReport(results map[string]*model.ComplianceReport) string {
	var b strings.Builder

	b.WriteString("GPU SCOUT - COMPLIANCE ANALYSIS REPORT\n")
	b.WriteString(strings.Repeat("=", 50) + "\n\n")

	sites := make([]string, 0, len(results))
	for site := range results {
		sites = append(sites, site)
	}
	sort.Strings(sites)

	for _, site := range sites {
		result := results[site]

		fmt.Fprintf(&b, "SITE: %s\n", strings.ToUpper(site))
		b.WriteString(strings.Repeat("-", 30) + "\n")

		if result.Err != "" {
			fmt.Fprintf(&b, "Error: %s\n\n", result.Err)
			continue
		}

		allowed := "No"
		if result.RobotsAllowed {
			allowed = "Yes"
		}
		fmt.Fprintf(&b, "Robots.txt Allowed: %s\n", allowed)

		if len(result.ToSConcerns) > 0 {
			fmt.Fprintf(&b, "ToS Concerns (%d):\n", len(result.ToSConcerns))
			for _, concern := range result.ToSConcerns {
				fmt.Fprintf(&b, "  - %s\n", concern)
			}
		}

		if len(result.RateLimits) > 0 {
			fmt.Fprintf(&b, "Rate Limits (%d):\n", len(result.RateLimits))
			for _, limit := range result.RateLimits {
				fmt.Fprintf(&b, "  - %s\n", limit)
			}
		}

		b.WriteString("Recommendations:\n")
		for _, rec := range result.Recommendations {
			fmt.Fprintf(&b, "  - %s\n", rec)
		}

		b.WriteString("Site Guidelines:\n")
		for _, g := range SiteGuidelines(site) {
			fmt.Fprintf(&b, "  - %s\n", g)
		}

		b.WriteString("\n")
	}

	return b.String()
}

// SaveReport writes the rendered compliance report to a file.
func SaveReport(results map[string]*model.ComplianceReport, path string) error {
	if err := os.WriteFile(path, []byte(RenderReport(results)), 0o644); err != nil {
		return fmt.Errorf("failed to save compliance report: %w", err)
	}
	return nil
}

// SiteGuidelines returns static, site-specific scraping guidance for the
// marketplaces this tool knows about.
func SiteGuidelines(site string) []string {
	guidelines := map[string][]string{
		"ebay": {
			"eBay generally allows scraping for personal research use",
			"Commercial use may require API access or permission",
			"Respect rate limits - max 1 request per 2 seconds recommended",
			"Review eBay's Developer Program for API alternatives",
			"Focus on publicly available listing data only",
		},
		"facebook": {
			"Facebook has strict anti-scraping measures",
			"Requires authentication which may violate ToS",
			"High risk of IP blocking and account restrictions",
			"Consider Facebook Marketing API for legitimate use cases",
			"Automated access is generally prohibited",
		},
		"gumtree": {
			"Generally more permissive for personal use scraping",
			"Respect robots.txt directives",
			"Use reasonable delays between requests",
			"Consider contacting for commercial use permission",
			"Avoid overloading their servers",
		},
	}

	if g, ok := guidelines[strings.ToLower(site)]; ok {
		return g
	}

	return []string{
		"Check robots.txt and Terms of Service",
		"Use appropriate request delays",
		"Respect website resources and bandwidth",
		"Consider contacting site owners for permission",
	}
}
