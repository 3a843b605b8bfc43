// Package engine orchestrates the scrape, standardize and export pipeline.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/model"
	"github.com/ewalker/gpuscout/internal/service"
	"github.com/ewalker/gpuscout/internal/standardize"
)

// Engine runs the full pipeline: compliance probing, collection,
// standardization, target filtering and export.
type Engine struct {
	compliance service.ComplianceChecker
	collectors []service.Collector
	writers    []service.ReportWriter
	targets    standardize.Targets
	options    Options
}

// Options holds configuration for a pipeline run.
type Options struct {
	// SkipCompliance disables the robots.txt and ToS probe.
	SkipCompliance bool
	// IgnoreBlocked continues scraping a site even when its robots.txt
	// disallows the search paths. Off by default.
	IgnoreBlocked bool
	// ShowProgress renders a progress bar during standardization.
	ShowProgress bool
}

// New creates a pipeline engine. A nil compliance checker implies
// SkipCompliance; writers may be empty, in which case results are only
// returned, not exported.
func New(compliance service.ComplianceChecker, collectors []service.Collector, writers []service.ReportWriter, targets standardize.Targets, options Options) *Engine {
	if compliance == nil {
		options.SkipCompliance = true
	}
	return &Engine{
		compliance: compliance,
		collectors: collectors,
		writers:    writers,
		targets:    targets,
		options:    options,
	}
}

// Result carries everything a run produced.
type Result struct {
	Listings   []model.StandardizedListing
	Compliance map[string]*model.ComplianceReport
	Stats      standardize.BatchStats
	RunStats   service.RunStats
}

// Run executes the pipeline. Individual site failures are logged and
// skipped; the run only fails when every site fails or an exporter
// returns an error.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	result := &Result{
		Compliance: make(map[string]*model.ComplianceReport),
	}

	if !e.options.SkipCompliance {
		e.checkCompliance(ctx, result)
	}

	raw, runStats := e.collect(ctx, result.Compliance)
	result.RunStats = runStats
	result.RunStats.RawListings = len(raw)

	if runStats.SitesScraped == 0 && len(e.collectors) > 0 {
		return result, fmt.Errorf("all %d sites failed or were skipped", len(e.collectors))
	}

	if len(raw) == 0 {
		result.RunStats.Duration = time.Since(start)
		return result, common.ErrNoListings
	}

	listings := e.standardize(raw)
	result.RunStats.Standardized = len(listings)

	listings, dupes := dedupeStandardized(listings)
	result.RunStats.Duplicates = dupes

	if !e.targets.Empty() {
		before := len(listings)
		listings = e.filterTargets(listings)
		result.RunStats.FilteredOut = before - len(listings)
	}

	result.Listings = listings
	result.Stats = standardize.ComputeStats(listings)
	result.RunStats.Duration = time.Since(start)

	for _, w := range e.writers {
		if err := w.Write(ctx, listings, result.Compliance); err != nil {
			return result, fmt.Errorf("%w: %v", common.ErrExportFailed, err)
		}
	}

	slog.Info("pipeline run completed",
		"raw", result.RunStats.RawListings,
		"standardized", result.RunStats.Standardized,
		"duplicates", result.RunStats.Duplicates,
		"filtered_out", result.RunStats.FilteredOut,
		"duration", result.RunStats.Duration.Round(time.Millisecond))

	return result, nil
}

// checkCompliance probes each collector's site. Probe failures are
// recorded but never abort the run.
func (e *Engine) checkCompliance(ctx context.Context, result *Result) {
	for _, c := range e.collectors {
		report, err := e.compliance.CheckSite(ctx, c.BaseURL())
		if err != nil {
			common.LogError(err, "compliance check failed", common.Fields{
				"site": c.Name(),
			})
			result.Compliance[c.Name()] = &model.ComplianceReport{
				Site:          c.Name(),
				Err:           err.Error(),
				RobotsAllowed: true,
			}
			continue
		}
		report.Site = c.Name()
		result.Compliance[c.Name()] = report
	}
}

// collect runs every collector sequentially, skipping sites blocked by
// robots.txt and sites that error.
func (e *Engine) collect(ctx context.Context, compliance map[string]*model.ComplianceReport) ([]model.RawListing, service.RunStats) {
	var raw []model.RawListing
	var stats service.RunStats

	for _, c := range e.collectors {
		if report, ok := compliance[c.Name()]; ok && !report.RobotsAllowed && !e.options.IgnoreBlocked {
			common.LogError(common.ErrBlocked, "skipping site disallowed by robots.txt", common.Fields{
				"site": c.Name(),
			})
			stats.SitesSkipped++
			continue
		}

		listings, err := c.Collect(ctx)
		if err != nil {
			common.LogError(err, "collection failed", common.Fields{
				"site": c.Name(),
			})
			stats.SitesSkipped++
			continue
		}

		slog.Info("collected listings", "site", c.Name(), "count", len(listings))
		raw = append(raw, listings...)
		stats.SitesScraped++
	}

	return raw, stats
}

// standardize converts raw listings, dropping rejections.
func (e *Engine) standardize(raw []model.RawListing) []model.StandardizedListing {
	var bar *progressbar.ProgressBar
	if e.options.ShowProgress && len(raw) > 0 {
		bar = progressbar.Default(int64(len(raw)), "standardizing")
	}

	listings := make([]model.StandardizedListing, 0, len(raw))
	for _, r := range raw {
		if bar != nil {
			_ = bar.Add(1)
		}
		if std := standardize.Standardize(r); std != nil {
			listings = append(listings, *std)
		}
	}

	if bar != nil {
		_ = bar.Finish()
	}

	return listings
}

func (e *Engine) filterTargets(listings []model.StandardizedListing) []model.StandardizedListing {
	kept := make([]model.StandardizedListing, 0, len(listings))
	for _, l := range listings {
		identity := l.Identity()
		if e.targets.Matches(&identity) {
			kept = append(kept, l)
		}
	}
	return kept
}

// dedupeStandardized keeps the first occurrence of each listing. The
// URL is the primary key; listings without one fall back to a title
// prefix so cross-posted ads still collapse.
func dedupeStandardized(listings []model.StandardizedListing) (unique []model.StandardizedListing, dropped int) {
	seen := make(map[string]struct{}, len(listings))
	unique = make([]model.StandardizedListing, 0, len(listings))

	for _, l := range listings {
		key := l.URL
		if key == "" {
			title := strings.ToLower(l.Title)
			if len(title) > 50 {
				title = title[:50]
			}
			key = "title:" + title
		}
		if _, ok := seen[key]; ok {
			dropped++
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, l)
	}

	return unique, dropped
}
