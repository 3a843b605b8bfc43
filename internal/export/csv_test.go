package export

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewalker/gpuscout/internal/model"
)

func TestCSVWriterWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "listings.csv")
	w := NewCSVWriter(path)

	price := 520.0
	vram := 12
	vendor := "MSI"

	listings := []model.StandardizedListing{
		{
			Title:             "MSI RTX 4070 Gaming X 12GB",
			Marketplace:       "eBay UK",
			PriceText:         "£520.00",
			StandardizedPrice: &price,
			GPUManufacturer:   model.ManufacturerNVIDIA,
			GPUSeries:         "RTX 40",
			GPUModel:          "4070",
			VRAMGb:            &vram,
			CardManufacturer:  &vendor,
			ConfidenceScore:   0.9,
			Condition:         "Like New",
			URL:               "https://example.com/itm/1",
			ScrapedAt:         time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			Title:           "Radeon card, untested",
			Marketplace:     "Gumtree",
			GPUManufacturer: model.ManufacturerAMD,
			GPUSeries:       "RX 6000",
			GPUModel:        "6700",
			ConfidenceScore: 0.9,
		},
	}

	require.NoError(t, w.Write(context.Background(), listings, nil))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, csvHeader, records[0])

	first := records[1]
	assert.Equal(t, "MSI RTX 4070 Gaming X 12GB", first[0])
	assert.Equal(t, "520.00", first[3])
	assert.Equal(t, "NVIDIA", first[4])
	assert.Equal(t, "12", first[7])
	assert.Equal(t, "MSI", first[8])
	assert.Equal(t, "Like New", first[10])
	assert.Equal(t, "2024-06-01T12:00:00Z", first[20])

	// Optional fields render as empty strings.
	second := records[2]
	assert.Equal(t, "", second[3])
	assert.Equal(t, "", second[7])
	assert.Equal(t, "", second[8])
}

func TestCSVWriterCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	w := NewCSVWriter(filepath.Join(t.TempDir(), "out.csv"))
	err := w.Write(ctx, nil, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
