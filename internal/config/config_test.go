package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	s, err := Load()
	require.NoError(t, err)

	assert.True(t, s.Marketplaces["ebay"])
	assert.True(t, s.Marketplaces["gumtree"])
	assert.False(t, s.Marketplaces["facebook"])
	assert.NotEmpty(t, s.SearchTerms)
	assert.Equal(t, 2*time.Second, s.Limits.RequestDelay)
	assert.Equal(t, 5, s.Limits.MaxPages)
	assert.True(t, s.Targets.Empty())
}

func TestLoadOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	viper.Set("marketplaces.gumtree", false)
	viper.Set("search_terms", []string{"rtx 5080"})
	viper.Set("gpu_targets.nvidia_series", []string{"5080"})
	viper.Set("limits.request_delay", "5s")
	viper.Set("limits.max_pages", 2)
	viper.Set("output.dir", "reports")

	s, err := Load()
	require.NoError(t, err)

	assert.True(t, s.Marketplaces["ebay"])
	assert.False(t, s.Marketplaces["gumtree"])
	assert.Equal(t, []string{"rtx 5080"}, s.SearchTerms)
	assert.Equal(t, []string{"5080"}, s.Targets.NVIDIASeries)
	assert.False(t, s.Targets.Empty())
	assert.Equal(t, 5*time.Second, s.Limits.RequestDelay)
	assert.Equal(t, 2, s.Limits.MaxPages)
	assert.Equal(t, "reports", s.OutputDir)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Settings)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(_ *Settings) {},
		},
		{
			name:    "no search terms",
			modify:  func(s *Settings) { s.SearchTerms = nil },
			wantErr: "at least one search term",
		},
		{
			name:    "zero max pages",
			modify:  func(s *Settings) { s.Limits.MaxPages = 0 },
			wantErr: "max pages",
		},
		{
			name: "everything disabled",
			modify: func(s *Settings) {
				for name := range s.Marketplaces {
					s.Marketplaces[name] = false
				}
			},
			wantErr: "all marketplaces are disabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Defaults()
			tt.modify(&s)
			err := s.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "gpu"), ExpandPath("~/gpu"))
	assert.Equal(t, "", ExpandPath(""))
	assert.Equal(t, "/var/tmp/out", ExpandPath("/var/tmp/out"))

	t.Setenv("GPUSCOUT_TEST_DIR", "/data")
	assert.Equal(t, "/data/out", ExpandPath("$GPUSCOUT_TEST_DIR/out"))
}
