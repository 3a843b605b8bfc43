package model

// RobotsDetails captures what was learned from a site's robots.txt.
type RobotsDetails struct {
	URL               string
	CrawlDelay        *int
	DisallowedPaths   []string
	UserAgentSpecific map[string]bool
	Allowed           bool
	Found             bool
}

// ComplianceReport is the result of probing one site's robots.txt and
// Terms of Service for scraping policy signals.
type ComplianceReport struct {
	Site            string
	RobotsDetails   RobotsDetails
	ToSConcerns     []string
	RateLimits      []string
	Recommendations []string
	ToSURLsChecked  []string
	Err             string
	RobotsAllowed   bool
}
