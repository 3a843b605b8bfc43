package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewalker/gpuscout/internal/model"
)

func TestComputeStats(t *testing.T) {
	price := 450.0
	vram := 12
	vendor := "MSI"

	listings := []model.StandardizedListing{
		{
			GPUModel:          "4070",
			StandardizedPrice: &price,
			VRAMGb:            &vram,
			CardManufacturer:  &vendor,
			ConfidenceScore:   0.9,
		},
		{
			GPUModel:        "7800 XT",
			ConfidenceScore: 0.9,
		},
		{
			GPUModel:          "B580",
			StandardizedPrice: &price,
			ConfidenceScore:   0.9,
		},
	}

	stats := ComputeStats(listings)

	assert.Equal(t, 3, stats.TotalListings)
	assert.InDelta(t, 66.7, stats.PriceExtractionRate, 0.001)
	assert.InDelta(t, 100.0, stats.GPUIdentificationRate, 0.001)
	assert.InDelta(t, 33.3, stats.VRAMExtractionRate, 0.001)
	assert.InDelta(t, 33.3, stats.VendorIdentifiedRate, 0.001)
	assert.InDelta(t, 0.9, stats.AvgConfidenceScore, 0.001)
}

func TestComputeStats_EmptyBatch(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Equal(t, BatchStats{}, stats)
}
