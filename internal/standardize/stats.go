package standardize

import (
	"math"

	"github.com/ewalker/gpuscout/internal/model"
)

// BatchStats aggregates extraction success rates across one run's
// standardized listings. Rates are percentages rounded to one decimal.
type BatchStats struct {
	TotalListings         int
	PriceExtractionRate   float64
	GPUIdentificationRate float64
	VRAMExtractionRate    float64
	VendorIdentifiedRate  float64
	AvgConfidenceScore    float64
}

// ComputeStats summarizes a batch of standardized listings. The zero value
// is returned for an empty batch.
func ComputeStats(listings []model.StandardizedListing) BatchStats {
	if len(listings) == 0 {
		return BatchStats{}
	}

	total := len(listings)
	var priced, identified, withVRAM, withVendor int
	var confidence float64

	for i := range listings {
		l := &listings[i]
		identity := l.Identity()
		if l.StandardizedPrice != nil {
			priced++
		}
		if identity.Model != "" {
			identified++
		}
		if identity.HasVRAM() {
			withVRAM++
		}
		if identity.HasCardVendor() {
			withVendor++
		}
		confidence += identity.Confidence
	}

	return BatchStats{
		TotalListings:         total,
		PriceExtractionRate:   rate(priced, total),
		GPUIdentificationRate: rate(identified, total),
		VRAMExtractionRate:    rate(withVRAM, total),
		VendorIdentifiedRate:  rate(withVendor, total),
		AvgConfidenceScore:    math.Round(confidence/float64(total)*100) / 100,
	}
}

func rate(count, total int) float64 {
	return math.Round(float64(count)/float64(total)*1000) / 10
}
