package standardize

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ewalker/gpuscout/internal/catalog"
)

// ConditionUnknown is returned for listings with no condition text at all.
const ConditionUnknown = "Unknown"

var titleCaser = cases.Title(language.BritishEnglish)

// NormalizeCondition maps a free-form condition string onto the standard
// vocabulary (New, Like New, Good, Fair, Poor). Empty input maps to
// "Unknown"; a non-empty string that matches no variant is preserved,
// title-cased, rather than discarded.
func NormalizeCondition(condition string) string {
	if condition == "" {
		return ConditionUnknown
	}

	lower := strings.TrimSpace(strings.ToLower(condition))

	for _, rule := range catalog.ConditionRules {
		for _, variant := range rule.Variants {
			if strings.Contains(lower, variant) {
				return rule.Standard
			}
		}
	}

	return titleCaser.String(lower)
}
