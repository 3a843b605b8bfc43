// Package compliance probes marketplace sites for scraping policy
// signals: robots.txt directives and Terms of Service language. The
// resulting reports are advisory inputs to the export step, not hard
// gates.
package compliance

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/temoto/robotstxt"

	"github.com/ewalker/gpuscout/internal/model"
)

// tosRedFlags are ToS phrasings that indicate scraping restrictions.
var tosRedFlags = []*regexp.Regexp{
	regexp.MustCompile(`automated.*access.*prohibited`),
	regexp.MustCompile(`scraping.*not.*allowed`),
	regexp.MustCompile(`data.*mining.*forbidden`),
	regexp.MustCompile(`bots.*prohibited`),
	regexp.MustCompile(`crawling.*unauthorized`),
	regexp.MustCompile(`systematic.*downloading.*prohibited`),
	regexp.MustCompile(`robots.*not.*permitted`),
	regexp.MustCompile(`harvesting.*data.*illegal`),
}

// rateLimitIndicators are ToS phrasings that hint at throttling rules.
var rateLimitIndicators = []*regexp.Regexp{
	regexp.MustCompile(`rate.*limit`),
	regexp.MustCompile(`requests.*per.*minute`),
	regexp.MustCompile(`api.*throttling`),
	regexp.MustCompile(`excessive.*requests`),
}

var (
	crawlDelayRe   = regexp.MustCompile(`(?i)crawl-delay:\s*(\d+)`)
	disallowRe     = regexp.MustCompile(`(?i)disallow:\s*(\S+)`)
	userAgentRe    = regexp.MustCompile(`(?i)user-agent:\s*(\S+)`)
	numericLimitRe = regexp.MustCompile(`(\d+)\s*requests?\s*per\s*(minute|hour|day)`)
)

// tosPaths are the candidate Terms of Service locations, probed in order;
// the first page that responds 200 is analyzed and the rest are skipped.
var tosPaths = []string{
	"/terms", "/terms-of-service", "/terms-of-use", "/tos",
	"/legal/terms", "/help/terms", "/policies/terms",
}

// Checker implements service.ComplianceChecker over HTTP.
type Checker struct {
	client *resty.Client
}

// NewChecker creates a compliance checker with the given user agent and
// request timeout.
func NewChecker(userAgent string, timeout time.Duration) *Checker {
	client := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", userAgent)

	return &Checker{client: client}
}

// CheckSite runs the full compliance probe for one site. Fetch failures
// degrade to permissive defaults with a warning; the returned report is
// always usable.
func (c *Checker) CheckSite(ctx context.Context, baseURL string) (*model.ComplianceReport, error) {
	slog.Info("checking compliance", "site", baseURL)

	report := &model.ComplianceReport{
		Site: baseURL,
	}

	robots := c.checkRobots(ctx, baseURL)
	report.RobotsAllowed = robots.Allowed
	report.RobotsDetails = robots

	concerns, limits, checked := c.analyzeToS(ctx, baseURL)
	report.ToSConcerns = concerns
	report.RateLimits = limits
	report.ToSURLsChecked = checked

	report.Recommendations = recommendations(report)

	return report, nil
}

func (c *Checker) checkRobots(ctx context.Context, baseURL string) model.RobotsDetails {
	robotsURL := strings.TrimRight(baseURL, "/") + "/robots.txt"

	details := model.RobotsDetails{
		URL:               robotsURL,
		UserAgentSpecific: make(map[string]bool),
	}

	resp, err := c.client.R().SetContext(ctx).Get(robotsURL)
	if err != nil {
		slog.Warn("could not fetch robots.txt, assuming allowed", "url", robotsURL, "error", err)
		details.Allowed = true
		return details
	}

	switch {
	case resp.StatusCode() == http.StatusOK:
		details.Found = true
		content := string(resp.Body())

		data, parseErr := robotstxt.FromString(content)
		if parseErr != nil {
			slog.Warn("could not parse robots.txt, assuming allowed", "url", robotsURL, "error", parseErr)
			details.Allowed = true
			return details
		}

		details.Allowed = data.TestAgent("/", "*")

		if m := crawlDelayRe.FindStringSubmatch(content); m != nil {
			if delay, convErr := strconv.Atoi(m[1]); convErr == nil {
				details.CrawlDelay = &delay
			}
		}

		for _, m := range disallowRe.FindAllStringSubmatch(content, -1) {
			details.DisallowedPaths = append(details.DisallowedPaths, m[1])
		}

		for _, m := range userAgentRe.FindAllStringSubmatch(content, -1) {
			agent := m[1]
			if agent != "*" {
				details.UserAgentSpecific[agent] = data.TestAgent("/", agent)
			}
		}

	case resp.StatusCode() == http.StatusNotFound:
		// No robots.txt means no restrictions.
		details.Allowed = true
		slog.Info("no robots.txt found, assuming allowed", "url", robotsURL)

	default:
		slog.Warn("unexpected status fetching robots.txt", "url", robotsURL, "status", resp.StatusCode())
	}

	return details
}

func (c *Checker) analyzeToS(ctx context.Context, baseURL string) (concerns, limits, checked []string) {
	base := strings.TrimRight(baseURL, "/")

	for _, path := range tosPaths {
		tosURL := base + path

		resp, err := c.client.R().SetContext(ctx).Get(tosURL)
		if err != nil || resp.StatusCode() != http.StatusOK {
			continue
		}

		checked = append(checked, tosURL)
		content := strings.ToLower(string(resp.Body()))

		concerns = extractConcerns(content)
		limits = extractRateLimits(content)
		break
	}

	if len(checked) == 0 {
		slog.Warn("could not find Terms of Service", "site", baseURL)
	}

	return concerns, limits, checked
}

func extractConcerns(content string) []string {
	seen := make(map[string]struct{})
	var concerns []string

	add := func(c string) {
		if _, dup := seen[c]; !dup {
			seen[c] = struct{}{}
			concerns = append(concerns, c)
		}
	}

	for _, re := range tosRedFlags {
		if re.MatchString(content) {
			add(fmt.Sprintf("ToS restriction found: %s", re.String()))
		}
	}

	if strings.Contains(content, "scraping") || strings.Contains(content, "crawling") {
		add("Terms explicitly mention scraping/crawling restrictions")
	}
	if strings.Contains(content, "automated") && strings.Contains(content, "prohibited") {
		add("Automated access appears to be prohibited")
	}

	return concerns
}

func extractRateLimits(content string) []string {
	var limits []string

	for _, re := range rateLimitIndicators {
		if re.MatchString(content) {
			limits = append(limits, fmt.Sprintf("Rate limiting mentioned: %s", re.String()))
		}
	}

	for _, m := range numericLimitRe.FindAllStringSubmatch(content, -1) {
		limits = append(limits, fmt.Sprintf("Rate limit: %s requests per %s", m[1], m[2]))
	}

	return limits
}

func recommendations(report *model.ComplianceReport) []string {
	var recs []string

	if !report.RobotsAllowed {
		recs = append(recs, "Robots.txt disallows scraping - consider requesting permission")
	}
	if report.RobotsDetails.CrawlDelay != nil {
		recs = append(recs, fmt.Sprintf("Respect crawl delay of %d seconds between requests", *report.RobotsDetails.CrawlDelay))
	}
	if len(report.ToSConcerns) > 0 {
		recs = append(recs, "Terms of Service contain scraping restrictions - review carefully")
	}
	if len(report.RateLimits) > 0 {
		recs = append(recs, "Rate limits specified - implement appropriate throttling")
	}
	if report.RobotsAllowed && len(report.ToSConcerns) == 0 {
		recs = append(recs, "Scraping appears to be allowed with proper rate limiting")
	}

	recs = append(recs,
		"Always respect website resources and consider API alternatives",
		"Consider contacting site owner for permission if unclear")

	return recs
}
