// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/standardize"
)

// Limits controls collector politeness and run size.
type Limits struct {
	RequestDelay      time.Duration
	Timeout           time.Duration
	MaxPages          int
	MaxResultsPerSite int
}

// Settings is the typed view over the viper configuration for one run.
type Settings struct {
	Marketplaces map[string]bool
	SearchTerms  []string
	Targets      standardize.Targets
	Limits       Limits
	OutputDir    string
	UserAgent    string
}

// Defaults mirrors the shipped config.yaml so a bare invocation still
// produces a sensible run.
func Defaults() Settings {
	return Settings{
		Marketplaces: map[string]bool{
			"ebay":     true,
			"gumtree":  true,
			"facebook": false,
		},
		SearchTerms: []string{"rtx 4070", "rtx 4080", "rx 7800 xt", "arc b580"},
		Limits: Limits{
			RequestDelay:      2 * time.Second,
			Timeout:           30 * time.Second,
			MaxPages:          5,
			MaxResultsPerSite: 200,
		},
		OutputDir: "output",
		UserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:126.0) Gecko/20100101 Firefox/126.0",
	}
}

// Load materializes Settings from viper, applying defaults for anything
// the config file leaves unset.
func Load() (Settings, error) {
	s := Defaults()

	for name := range s.Marketplaces {
		key := "marketplaces." + name
		if viper.IsSet(key) {
			s.Marketplaces[name] = viper.GetBool(key)
		}
	}

	if terms := viper.GetStringSlice("search_terms"); len(terms) > 0 {
		s.SearchTerms = terms
	}

	s.Targets = standardize.Targets{
		NVIDIASeries: viper.GetStringSlice("gpu_targets.nvidia_series"),
		AMDSeries:    viper.GetStringSlice("gpu_targets.amd_series"),
		IntelModels:  viper.GetStringSlice("gpu_targets.intel_models"),
	}

	if v := viper.GetDuration("limits.request_delay"); v > 0 {
		s.Limits.RequestDelay = v
	}
	if v := viper.GetDuration("limits.timeout"); v > 0 {
		s.Limits.Timeout = v
	}
	if v := viper.GetInt("limits.max_pages"); v > 0 {
		s.Limits.MaxPages = v
	}
	if v := viper.GetInt("limits.max_results_per_site"); v > 0 {
		s.Limits.MaxResultsPerSite = v
	}

	if v := viper.GetString("output.dir"); v != "" {
		s.OutputDir = ExpandPath(v)
	}
	if v := viper.GetString("user_agent"); v != "" {
		s.UserAgent = v
	}

	if err := s.Validate(); err != nil {
		return Settings{}, err
	}

	return s, nil
}

// Validate checks that the settings describe a runnable configuration.
func (s Settings) Validate() error {
	if len(s.SearchTerms) == 0 {
		return fmt.Errorf("%w: at least one search term is required", common.ErrInvalidConfig)
	}
	if s.Limits.RequestDelay < 0 {
		return fmt.Errorf("%w: request delay cannot be negative", common.ErrInvalidConfig)
	}
	if s.Limits.MaxPages <= 0 {
		return fmt.Errorf("%w: max pages must be positive", common.ErrInvalidConfig)
	}
	if s.Limits.MaxResultsPerSite <= 0 {
		return fmt.Errorf("%w: max results per site must be positive", common.ErrInvalidConfig)
	}

	anyEnabled := false
	for _, enabled := range s.Marketplaces {
		if enabled {
			anyEnabled = true
			break
		}
	}
	if !anyEnabled {
		return fmt.Errorf("%w: all marketplaces are disabled", common.ErrInvalidConfig)
	}

	return nil
}

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}
