package standardize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewalker/gpuscout/internal/model"
)

func TestStandardize_EndToEnd(t *testing.T) {
	scrapedAt := time.Date(2026, 8, 14, 10, 30, 0, 0, time.UTC)

	raw := model.RawListing{
		Title:     "MSI RTX 4090 Gaming X Trio 24GB",
		Price:     "£1,450.00",
		Condition: "Used - Excellent",
		URL:       "https://www.ebay.co.uk/itm/12345",
		Source:    "ebay",
		ScrapedAt: scrapedAt,
		Location:  "Manchester",
	}

	got := Standardize(raw)

	require.NotNil(t, got)
	assert.Equal(t, model.ManufacturerNVIDIA, got.GPUManufacturer)
	assert.Equal(t, "RTX 40", got.GPUSeries)
	assert.Equal(t, "4090", got.GPUModel)
	require.NotNil(t, got.VRAMGb)
	assert.Equal(t, 24, *got.VRAMGb)
	require.NotNil(t, got.CardManufacturer)
	assert.Equal(t, "MSI", *got.CardManufacturer)
	require.NotNil(t, got.StandardizedPrice)
	assert.InDelta(t, 1450.0, *got.StandardizedPrice, 0.001)
	assert.Equal(t, "Like New", got.Condition)
	assert.InDelta(t, MatchConfidence, got.ConfidenceScore, 0.001)

	// Pass-through metadata
	assert.Equal(t, "ebay", got.Marketplace)
	assert.Equal(t, scrapedAt, got.ScrapedAt)
	assert.Equal(t, "Manchester", got.Location)
	assert.Equal(t, "£1,450.00", got.PriceText)
	assert.False(t, got.IsSold)
	assert.False(t, got.IsFeatured)
}

func TestStandardize_Rejections(t *testing.T) {
	tests := []struct {
		name string
		raw  model.RawListing
	}{
		{
			name: "empty title",
			raw:  model.RawListing{Title: "   ", Price: "£450"},
		},
		{
			name: "no gpu pattern in text",
			raw:  model.RawListing{Title: "Office Chair for sale", Price: "£45"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Nil(t, Standardize(tt.raw))
		})
	}
}

func TestStandardize_ExtractionMissesAreNotRejections(t *testing.T) {
	// Missing price, condition, VRAM and vendor just leave those fields
	// absent; the listing itself is accepted.
	got := Standardize(model.RawListing{Title: "RTX 3070 graphics card"})

	require.NotNil(t, got)
	assert.Nil(t, got.StandardizedPrice)
	assert.Nil(t, got.VRAMGb)
	assert.Nil(t, got.CardManufacturer)
	assert.Equal(t, "Unknown", got.Condition)
}

func TestStandardize_MarketplaceFallsBackToSource(t *testing.T) {
	got := Standardize(model.RawListing{Title: "RTX 3070", Source: "gumtree"})
	require.NotNil(t, got)
	assert.Equal(t, "gumtree", got.Marketplace)

	got = Standardize(model.RawListing{Title: "RTX 3070", Marketplace: "ebay", Source: "gumtree"})
	require.NotNil(t, got)
	assert.Equal(t, "ebay", got.Marketplace)
}

func TestStandardize_Idempotent(t *testing.T) {
	first := Standardize(model.RawListing{
		Title:     "ASUS TUF RX 7800 XT 16GB",
		Price:     "£489.99 ono",
		Condition: "Brand New",
	})
	require.NotNil(t, first)

	// Feed the standardized output back through as if it were raw input.
	second := Standardize(model.RawListing{
		Title:       first.Title,
		Description: first.Description,
		Price:       first.PriceText,
		Condition:   first.Condition,
		URL:         first.URL,
		Marketplace: first.Marketplace,
	})

	require.NotNil(t, second)
	assert.Equal(t, first.GPUManufacturer, second.GPUManufacturer)
	assert.Equal(t, first.GPUSeries, second.GPUSeries)
	assert.Equal(t, first.GPUModel, second.GPUModel)
	assert.Equal(t, first.StandardizedPrice, second.StandardizedPrice)
	assert.Equal(t, first.ConfidenceScore, second.ConfidenceScore)
}
