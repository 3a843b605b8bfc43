// Package standardize implements the text-to-structured-data core: it
// turns noisy marketplace listing text into canonical GPU identities,
// numeric prices and a fixed condition vocabulary.
package standardize

import (
	"strconv"
	"strings"

	"github.com/ewalker/gpuscout/internal/catalog"
	"github.com/ewalker/gpuscout/internal/model"
)

// MatchConfidence is attached to every successful identity extraction.
// Rules either match or they don't; the score is a match signal, not a
// calibrated probability.
const MatchConfidence = 0.9

// ExtractIdentity scans title and description text for a recognizable GPU.
// Manufacturer groups are tried NVIDIA, AMD, Intel; within a group the
// first matching rule wins. Returns nil when nothing matches.
func ExtractIdentity(title, description string) *model.GPUIdentity {
	text := strings.ToLower(title + " " + description)

	if id := matchNVIDIA(text); id != nil {
		return id
	}
	if id := matchAMD(text); id != nil {
		return id
	}
	if id := matchIntel(text); id != nil {
		return id
	}

	return nil
}

func matchNVIDIA(text string) *model.GPUIdentity {
	for _, rule := range catalog.NVIDIARules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		name := buildModel(rule.ModelTemplate, group(m, 1), group(m, 2))

		// Any "ti" in the surrounding text marks a Ti variant, whichever
		// rule matched.
		if strings.Contains(text, "ti") {
			name += " Ti"
		}

		return newIdentity(rule, name, text)
	}
	return nil
}

func matchAMD(text string) *model.GPUIdentity {
	for _, rule := range catalog.AMDRules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		// XT/GRE suffixes are normalized to uppercase with a separating
		// space: "7800 XT".
		suffix := ""
		if g2 := group(m, 2); g2 != "" {
			suffix = " " + strings.ToUpper(g2)
		}
		name := buildModel(rule.ModelTemplate, group(m, 1), suffix)

		return newIdentity(rule, name, text)
	}
	return nil
}

func matchIntel(text string) *model.GPUIdentity {
	for _, rule := range catalog.IntelRules {
		m := rule.Pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}

		name := buildModel(rule.ModelTemplate, strings.ToUpper(group(m, 1)), "")

		return newIdentity(rule, name, text)
	}
	return nil
}

// newIdentity assembles the identity for a matched rule and runs the
// secondary VRAM and card-vendor extractors against the same text.
func newIdentity(rule catalog.IdentityRule, modelName, text string) *model.GPUIdentity {
	return &model.GPUIdentity{
		Manufacturer: rule.Manufacturer,
		Series:       rule.Series,
		Model:        modelName,
		VRAMGb:       ExtractVRAM(text),
		CardVendor:   ExtractCardVendor(text),
		Confidence:   MatchConfidence,
	}
}

// buildModel substitutes captured groups into a rule's model template.
func buildModel(template, group1, group2 string) string {
	s := strings.ReplaceAll(template, "{group1}", group1)
	s = strings.ReplaceAll(s, "{group2}", group2)
	return strings.TrimSpace(s)
}

// group returns capture group i or "" when it did not participate.
func group(m []string, i int) string {
	if i < len(m) {
		return m[i]
	}
	return ""
}

// ExtractVRAM returns the VRAM capacity in GB found in the text, or nil.
// Candidates outside the plausible range are skipped and later patterns
// still get a chance.
func ExtractVRAM(text string) *int {
	text = strings.ToLower(text)
	for _, pattern := range catalog.VRAMPatterns {
		m := pattern.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		vram, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if vram >= catalog.VRAMMin && vram <= catalog.VRAMMax {
			return &vram
		}
	}
	return nil
}

// ExtractCardVendor returns the first board-partner brand whose alias
// matches the text, or nil. Brands are tested in table order.
func ExtractCardVendor(text string) *string {
	text = strings.ToLower(text)
	for _, rule := range catalog.BrandRules {
		for _, alias := range rule.Aliases {
			if alias.MatchString(text) {
				brand := rule.Brand
				return &brand
			}
		}
	}
	return nil
}
