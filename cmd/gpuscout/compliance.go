package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ewalker/gpuscout/internal/cli"
	"github.com/ewalker/gpuscout/internal/compliance"
	"github.com/ewalker/gpuscout/internal/config"
	"github.com/ewalker/gpuscout/internal/model"
	"github.com/ewalker/gpuscout/internal/service"
)

func complianceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compliance",
		Short: "Check robots.txt and terms of service for each marketplace",
		Long: `Probe every enabled marketplace's robots.txt and likely terms of
service pages, and report crawl delays, disallowed paths and ToS
language that restricts automated access.

Run this before scraping a site for the first time.`,
		RunE: runCompliance,
	}

	cmd.Flags().StringP("save", "s", "", "Save the report to a file")
	_ = viper.BindPFlag("compliance.save", cmd.Flags().Lookup("save"))

	return cmd
}

func runCompliance(cmd *cobra.Command, _ []string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	collectors := buildCollectors(settings)
	if len(collectors) == 0 {
		return fmt.Errorf("no marketplaces enabled; check the marketplaces section of your config")
	}

	checker := compliance.NewChecker(settings.UserAgent, settings.Limits.Timeout)

	slog.Info(cli.FormatTitle("Checking marketplace compliance..."))

	results := make(map[string]*model.ComplianceReport, len(collectors))
	for _, c := range collectors {
		results[c.Name()] = checkOne(cmd.Context(), checker, c)
	}

	report := compliance.RenderReport(results)
	fmt.Println(report)

	if path := viper.GetString("compliance.save"); path != "" {
		if err := compliance.SaveReport(results, path); err != nil {
			return fmt.Errorf("failed to save report: %w", err)
		}
		slog.Info(cli.FormatSuccess(fmt.Sprintf("Report saved to %s", path)))
	}

	return nil
}

func checkOne(ctx context.Context, checker service.ComplianceChecker, c service.Collector) *model.ComplianceReport {
	report, err := checker.CheckSite(ctx, c.BaseURL())
	if err != nil {
		return &model.ComplianceReport{
			Site:          c.Name(),
			Err:           err.Error(),
			RobotsAllowed: true,
		}
	}
	report.Site = c.Name()
	return report
}
