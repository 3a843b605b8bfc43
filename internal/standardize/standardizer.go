package standardize

import (
	"fmt"
	"strings"

	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/model"
)

// ConfidenceThreshold is the minimum identity confidence required for a
// listing to be accepted. Extraction currently yields 0 or 0.9, so this
// gate is equivalent to "a rule matched".
const ConfidenceThreshold = 0.3

// Standardize converts one raw listing into a standardized record, or nil
// when the listing is rejected (empty title, no GPU recognized, or
// confidence below threshold). Rejection is the expected outcome for
// non-GPU listings and is not treated as an error.
//
// Any panic while processing a single listing is recovered, logged and
// converted into a rejection so one malformed listing never aborts a
// batch.
func Standardize(raw model.RawListing) (result *model.StandardizedListing) {
	defer func() {
		if r := recover(); r != nil {
			common.LogError(fmt.Errorf("panic: %v", r), "failed to standardize listing", common.Fields{
				"title": raw.Title,
				"url":   raw.URL,
			})
			result = nil
		}
	}()

	title := strings.TrimSpace(raw.Title)
	if title == "" {
		return nil
	}
	description := strings.TrimSpace(raw.Description)
	priceText := strings.TrimSpace(raw.Price)

	identity := ExtractIdentity(title, description)
	if identity == nil || identity.Confidence < ConfidenceThreshold {
		return nil
	}

	return &model.StandardizedListing{
		Title:             title,
		Description:       description,
		PriceText:         priceText,
		StandardizedPrice: ExtractPrice(priceText),
		GPUManufacturer:   identity.Manufacturer,
		GPUSeries:         identity.Series,
		GPUModel:          identity.Model,
		VRAMGb:            identity.VRAMGb,
		CardManufacturer:  identity.CardVendor,
		ConfidenceScore:   identity.Confidence,
		URL:               raw.URL,
		Marketplace:       raw.MarketplaceName(),
		ScrapedAt:         raw.ScrapedAt,
		ListingType:       raw.ListingType,
		Condition:         NormalizeCondition(raw.Condition),
		Location:          raw.Location,
		SellerInfo:        raw.SellerInfo,
		Shipping:          raw.Shipping,
		PostedDate:        raw.PostedDate,
		ImageURL:          raw.ImageURL,
		IsSold:            raw.IsSold,
		IsFeatured:        raw.IsFeatured,
	}
}
