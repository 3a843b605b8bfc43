// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/ewalker/gpuscout/internal/model"
)

// Collector scrapes one marketplace and emits raw listings.
type Collector interface {
	// Name returns the marketplace key used in config and logs.
	Name() string
	// BaseURL returns the site root, used for compliance probing.
	BaseURL() string
	// Collect scrapes GPU listings for the configured search terms.
	Collect(ctx context.Context) ([]model.RawListing, error)
}

// ComplianceChecker probes a site's robots.txt and Terms of Service.
type ComplianceChecker interface {
	CheckSite(ctx context.Context, baseURL string) (*model.ComplianceReport, error)
}

// ReportWriter exports standardized listings and compliance results.
type ReportWriter interface {
	Write(ctx context.Context, listings []model.StandardizedListing, compliance map[string]*model.ComplianceReport) error
}

// RetryOptions configures retry behavior for transient failures.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}

// RunStats shows the results of a scraping run.
type RunStats struct {
	RawListings  int
	Standardized int
	Duplicates   int
	FilteredOut  int
	SitesScraped int
	SitesSkipped int
	Duration     time.Duration
}
