package standardize

import (
	"strings"

	"github.com/ewalker/gpuscout/internal/model"
)

// Targets configures which GPU families a run actually cares about. Each
// entry is a substring matched case-insensitively against the extracted
// model.
type Targets struct {
	NVIDIASeries []string
	AMDSeries    []string
	IntelModels  []string
}

// Matches reports whether the identity falls inside the configured
// targets. An identity whose manufacturer has no configured entries never
// matches.
func (t Targets) Matches(identity *model.GPUIdentity) bool {
	if identity == nil {
		return false
	}

	modelName := strings.ToLower(identity.Model)

	var candidates []string
	switch identity.Manufacturer {
	case model.ManufacturerNVIDIA:
		candidates = t.NVIDIASeries
	case model.ManufacturerAMD:
		candidates = t.AMDSeries
	case model.ManufacturerIntel:
		candidates = t.IntelModels
	}

	for _, target := range candidates {
		if strings.Contains(modelName, strings.ToLower(target)) {
			return true
		}
	}

	return false
}

// Empty reports whether no targets are configured at all, in which case
// filtering is skipped entirely.
func (t Targets) Empty() bool {
	return len(t.NVIDIASeries) == 0 && len(t.AMDSeries) == 0 && len(t.IntelModels) == 0
}
