package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ewalker/gpuscout/internal/cli"
	"github.com/ewalker/gpuscout/internal/model"
	"github.com/ewalker/gpuscout/internal/standardize"
)

func standardizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "standardize [file]",
		Short: "Standardize raw listings from a JSON file or stdin",
		Long: `Read a JSON array of raw listings, extract the GPU identity, price
and condition from each one, and write the standardized listings as JSON.

Listings with no recognizable GPU are dropped. Reads stdin when no file
is given.`,
		Args: cobra.MaximumNArgs(1),
		RunE: runStandardize,
	}

	cmd.Flags().StringP("output", "o", "", "Output file (default: stdout)")
	_ = viper.BindPFlag("standardize.output", cmd.Flags().Lookup("output"))

	return cmd
}

func runStandardize(_ *cobra.Command, args []string) error {
	var in io.Reader = os.Stdin
	if len(args) == 1 {
		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer func() { _ = f.Close() }()
		in = f
	}

	var raw []model.RawListing
	if err := json.NewDecoder(in).Decode(&raw); err != nil {
		return fmt.Errorf("failed to parse raw listings: %w", err)
	}

	listings := make([]model.StandardizedListing, 0, len(raw))
	for _, r := range raw {
		if std := standardize.Standardize(r); std != nil {
			listings = append(listings, *std)
		}
	}

	var out io.Writer = os.Stdout
	if path := viper.GetString("standardize.output"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create output: %w", err)
		}
		defer func() { _ = f.Close() }()
		out = f
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(listings); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	slog.Info(cli.RenderStats(standardize.ComputeStats(listings)))
	slog.Info(cli.FormatSuccess(fmt.Sprintf("Standardized %d of %d listings", len(listings), len(raw))))

	return nil
}
