package sheets

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewalker/gpuscout/internal/model"
)

func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func testWriter() *Writer {
	return &Writer{
		config: DefaultConfig(),
		logger: slog.Default(),
	}
}

func sampleListings() []model.StandardizedListing {
	return []model.StandardizedListing{
		{
			Title:             "MSI RTX 4070 Gaming X",
			Marketplace:       "eBay UK",
			PriceText:         "£520.00",
			StandardizedPrice: floatPtr(520),
			GPUManufacturer:   model.ManufacturerNVIDIA,
			GPUSeries:         "RTX 40",
			GPUModel:          "4070",
			VRAMGb:            intPtr(12),
			ConfidenceScore:   0.9,
			ScrapedAt:         time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:           "GPU bundle, offers welcome",
			Marketplace:     "Gumtree",
			GPUManufacturer: model.ManufacturerAMD,
			GPUSeries:       "RX 7000",
			GPUModel:        "7800 XT",
			ConfidenceScore: 0.9,
			ScrapedAt:       time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:             "Sapphire RX 7900 GRE",
			Marketplace:       "eBay UK",
			PriceText:         "£480",
			StandardizedPrice: floatPtr(480),
			GPUManufacturer:   model.ManufacturerAMD,
			GPUSeries:         "RX 7000",
			GPUModel:          "7900 GRE",
			ConfidenceScore:   0.9,
			ScrapedAt:         time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}
}

func TestPrepareReportData(t *testing.T) {
	w := testWriter()

	values := w.prepareReportData(sampleListings(), nil)

	require.NotEmpty(t, values)
	assert.Equal(t, "GPU Market Report", values[0][0])

	// Find the listings header row.
	headerIdx := -1
	for i, row := range values {
		if len(row) > 0 && row[0] == "Title" {
			headerIdx = i
			break
		}
	}
	require.NotEqual(t, -1, headerIdx, "listings header row not found")

	rows := values[headerIdx+1 : headerIdx+4]

	// Cheapest listing first, unpriced listing last.
	assert.Equal(t, "Sapphire RX 7900 GRE", rows[0][0])
	assert.Equal(t, "MSI RTX 4070 Gaming X", rows[1][0])
	assert.Equal(t, "GPU bundle, offers welcome", rows[2][0])
	assert.Equal(t, "", rows[2][3])
}

func TestPrepareReportDataSummary(t *testing.T) {
	w := testWriter()

	values := w.prepareReportData(sampleListings(), nil)

	found := map[string]any{}
	for _, row := range values {
		if len(row) == 2 {
			if key, ok := row[0].(string); ok {
				found[key] = row[1]
			}
		}
	}

	assert.Equal(t, 3, found["Total Listings"])
	assert.Equal(t, "66.7%", found["Price Extraction Rate"])
	assert.Equal(t, "100.0%", found["GPU Identification Rate"])
}

func TestPrepareReportDataCompliance(t *testing.T) {
	w := testWriter()

	compliance := map[string]*model.ComplianceReport{
		"gumtree": {Site: "gumtree", RobotsAllowed: true},
		"ebay": {
			Site:          "ebay",
			RobotsAllowed: false,
			ToSConcerns:   []string{"automated access prohibited"},
		},
	}

	values := w.prepareReportData(nil, compliance)

	var complianceRows [][]any
	inSection := false
	for _, row := range values {
		if len(row) == 1 && row[0] == "Compliance" {
			inSection = true
			continue
		}
		if inSection && len(row) == 4 && row[0] != "Site" {
			complianceRows = append(complianceRows, row)
		}
	}

	require.Len(t, complianceRows, 2)
	// Sites are sorted alphabetically.
	assert.Equal(t, "ebay", complianceRows[0][0])
	assert.Equal(t, false, complianceRows[0][1])
	assert.Equal(t, 1, complianceRows[0][2])
	assert.Equal(t, "gumtree", complianceRows[1][0])
	assert.Equal(t, true, complianceRows[1][1])
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:   "service account path is sufficient",
			modify: func(c *Config) { c.ServiceAccountPath = "/tmp/sa.json" },
		},
		{
			name: "oauth credentials are sufficient",
			modify: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
				c.RefreshToken = "token"
			},
		},
		{
			name:    "no credentials",
			modify:  func(c *Config) {},
			wantErr: true,
		},
		{
			name: "oauth without refresh token",
			modify: func(c *Config) {
				c.ClientID = "id"
				c.ClientSecret = "secret"
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
