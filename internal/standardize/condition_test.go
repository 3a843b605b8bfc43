package standardize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeCondition(t *testing.T) {
	tests := []struct {
		name      string
		condition string
		want      string
	}{
		{"brand new maps to new", "Brand New", "New"},
		{"sealed maps to new", "Sealed in box", "New"},
		{"excellent maps to like new", "Used - Excellent", "Like New"},
		{"pristine maps to like new", "pristine condition", "Like New"},
		{"working maps to good", "fully working", "Good"},
		{"some wear maps to fair", "Some wear and tear", "Fair"},
		{"faulty maps to poor", "FAULTY - spares or repair", "Poor"},
		{"new category wins over like new by scan order", "like new", "New"},
		{"very good maps to like new", "Very Good", "Like New"},
		{"empty maps to unknown", "", "Unknown"},
		{"unmatched passthrough title-cased", "slightly scuffed", "Slightly Scuffed"},
		{"whitespace only trimmed before match", "  good  ", "Good"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCondition(tt.condition))
		})
	}
}
