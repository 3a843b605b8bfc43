package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ewalker/gpuscout/internal/cli"
	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/compliance"
	"github.com/ewalker/gpuscout/internal/config"
	"github.com/ewalker/gpuscout/internal/engine"
	"github.com/ewalker/gpuscout/internal/export"
	"github.com/ewalker/gpuscout/internal/scrape"
	"github.com/ewalker/gpuscout/internal/service"
	"github.com/ewalker/gpuscout/internal/sheets"
	"github.com/ewalker/gpuscout/internal/standardize"
)

func scrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape marketplaces and export standardized GPU listings",
		Long: `Scrape the enabled marketplaces for the configured search terms,
standardize every listing and export the results.

Sites whose robots.txt disallows the search pages are skipped unless
--ignore-blocked is set. Results always go to a CSV file in the output
directory; add --sheets to also export to Google Sheets.`,
		RunE: runScrape,
	}

	cmd.Flags().StringSlice("terms", nil, "Search terms (overrides config)")
	cmd.Flags().Bool("sheets", false, "Export to Google Sheets")
	cmd.Flags().Bool("skip-compliance", false, "Skip the robots.txt and ToS probe")
	cmd.Flags().Bool("ignore-blocked", false, "Scrape sites even when robots.txt disallows it")
	cmd.Flags().Bool("all-gpus", false, "Keep every identified GPU, not just the configured targets")

	_ = viper.BindPFlag("scrape.terms", cmd.Flags().Lookup("terms"))
	_ = viper.BindPFlag("scrape.sheets", cmd.Flags().Lookup("sheets"))
	_ = viper.BindPFlag("scrape.skip_compliance", cmd.Flags().Lookup("skip-compliance"))
	_ = viper.BindPFlag("scrape.ignore_blocked", cmd.Flags().Lookup("ignore-blocked"))
	_ = viper.BindPFlag("scrape.all_gpus", cmd.Flags().Lookup("all-gpus"))

	return cmd
}

func runScrape(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	if terms := viper.GetStringSlice("scrape.terms"); len(terms) > 0 {
		settings.SearchTerms = terms
	}

	if err := settings.Validate(); err != nil {
		return err
	}

	collectors := buildCollectors(settings)
	if len(collectors) == 0 {
		return fmt.Errorf("no marketplaces enabled; check the marketplaces section of your config")
	}

	targets := settings.Targets
	if viper.GetBool("scrape.all_gpus") {
		targets = standardize.Targets{}
	}

	writers, csvPath, err := buildWriters(cmd.Context(), settings)
	if err != nil {
		return err
	}

	var checker service.ComplianceChecker
	if !viper.GetBool("scrape.skip_compliance") {
		checker = compliance.NewChecker(settings.UserAgent, settings.Limits.Timeout)
	}

	e := engine.New(checker, collectors, writers, targets, engine.Options{
		IgnoreBlocked: viper.GetBool("scrape.ignore_blocked"),
		ShowProgress:  true,
	})

	slog.Info(cli.FormatTitle("Scouting GPU listings..."))

	result, err := e.Run(cmd.Context())
	if errors.Is(err, common.ErrNoListings) {
		slog.Warn(cli.FormatWarning("No listings found for the configured search terms"))
		return nil
	}
	if err != nil {
		return err
	}

	slog.Info(cli.RenderStats(result.Stats))
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Wrote %d listings to %s", len(result.Listings), csvPath)))

	return nil
}

func buildCollectors(settings config.Settings) []service.Collector {
	var collectors []service.Collector
	if settings.Marketplaces["ebay"] {
		collectors = append(collectors, scrape.NewEbay(settings))
	}
	if settings.Marketplaces["gumtree"] {
		collectors = append(collectors, scrape.NewGumtree(settings))
	}
	if settings.Marketplaces["facebook"] {
		collectors = append(collectors, scrape.NewFacebook(settings))
	}
	return collectors
}

func buildWriters(ctx context.Context, settings config.Settings) ([]service.ReportWriter, string, error) {
	outputDir := config.ExpandPath(settings.OutputDir)
	csvPath := filepath.Join(outputDir, fmt.Sprintf("gpu_listings_%s.csv", time.Now().Format("2006-01-02_150405")))

	writers := []service.ReportWriter{export.NewCSVWriter(csvPath)}

	if viper.GetBool("scrape.sheets") {
		cfg := sheets.DefaultConfig()
		if err := cfg.LoadFromEnv(); err != nil {
			return nil, "", err
		}
		writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
		if err != nil {
			return nil, "", fmt.Errorf("failed to set up Google Sheets export: %w", err)
		}
		writers = append(writers, writer)
	}

	return writers, csvPath, nil
}
