package scrape

import (
	"context"

	"github.com/ewalker/gpuscout/internal/common"
	"github.com/ewalker/gpuscout/internal/config"
	"github.com/ewalker/gpuscout/internal/model"
)

const facebookBaseURL = "https://www.facebook.com/marketplace"

// Facebook is a placeholder collector. Marketplace requires an
// authenticated session and its terms prohibit automated access, so
// collection is refused; the site still participates in compliance
// checks so the report documents why it is skipped.
type Facebook struct {
	settings config.Settings
}

// NewFacebook creates the Facebook Marketplace collector stub.
func NewFacebook(settings config.Settings) *Facebook {
	return &Facebook{settings: settings}
}

// Name implements service.Collector.
func (f *Facebook) Name() string { return "facebook" }

// BaseURL implements service.Collector.
func (f *Facebook) BaseURL() string { return facebookBaseURL }

// Collect always refuses.
func (f *Facebook) Collect(_ context.Context) ([]model.RawListing, error) {
	return nil, common.NewUserError(
		"Facebook Marketplace requires authentication and prohibits automated access; enable it only with an approved API integration",
		common.ErrMarketplaceDisabled,
	)
}
