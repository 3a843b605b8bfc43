package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewalker/gpuscout/internal/model"
)

func TestTargetsMatches(t *testing.T) {
	targets := Targets{
		NVIDIASeries: []string{"30", "40", "50"},
		AMDSeries:    []string{"6", "7"},
		IntelModels:  []string{"A770", "B580"},
	}

	tests := []struct {
		name     string
		identity *model.GPUIdentity
		want     bool
	}{
		{
			name:     "nvidia target hit",
			identity: &model.GPUIdentity{Manufacturer: model.ManufacturerNVIDIA, Series: "RTX 40", Model: "4070 Ti"},
			want:     true,
		},
		{
			name:     "amd target hit",
			identity: &model.GPUIdentity{Manufacturer: model.ManufacturerAMD, Series: "RX 7000", Model: "7800 XT"},
			want:     true,
		},
		{
			name:     "intel model matched case-insensitively",
			identity: &model.GPUIdentity{Manufacturer: model.ManufacturerIntel, Series: "Arc", Model: "B580"},
			want:     true,
		},
		{
			name:     "intel model not targeted",
			identity: &model.GPUIdentity{Manufacturer: model.ManufacturerIntel, Series: "Arc", Model: "A380"},
			want:     false,
		},
		{
			name:     "nil identity never matches",
			identity: nil,
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, targets.Matches(tt.identity))
		})
	}
}

func TestTargetsMatches_UnconfiguredManufacturer(t *testing.T) {
	targets := Targets{NVIDIASeries: []string{"40"}}

	id := &model.GPUIdentity{Manufacturer: model.ManufacturerAMD, Model: "7800 XT"}
	assert.False(t, targets.Matches(id))
}

func TestTargetsEmpty(t *testing.T) {
	assert.True(t, Targets{}.Empty())
	assert.False(t, Targets{IntelModels: []string{"B580"}}.Empty())
}
