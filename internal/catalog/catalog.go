// Package catalog holds the static recognition rule tables used to turn
// free-form listing text into structured GPU data. Every table is ordered
// and evaluated first-match-wins; all patterns are compiled once at init
// and never mutated afterwards.
package catalog

import (
	"regexp"

	"github.com/ewalker/gpuscout/internal/model"
)

// IdentityRule recognizes one GPU naming convention. Model names are built
// by substituting the rule's capture groups into the template: "{group1}"
// and "{group2}" are replaced with the first and second captured substrings
// (empty when the group did not participate in the match).
type IdentityRule struct {
	Pattern       *regexp.Regexp
	Manufacturer  model.Manufacturer
	Series        string
	ModelTemplate string
}

// BrandRule maps a board-partner brand to its alias patterns. A brand
// matches when any alias matches.
type BrandRule struct {
	Brand   string
	Aliases []*regexp.Regexp
}

// ConditionRule maps a standard condition category to the raw substrings
// that indicate it.
type ConditionRule struct {
	Standard string
	Variants []string
}

// NVIDIARules are tried before AMD and Intel. Within the table, earlier
// rules win: the 50/40/30-series two-digit forms are listed before the
// general four-digit forms so "rtx 4070" resolves through the most
// specific convention available.
var NVIDIARules = []IdentityRule{
	{regexp.MustCompile(`rtx\s*50(\d{2})`), model.ManufacturerNVIDIA, "RTX 50", "50{group1}"},
	{regexp.MustCompile(`rtx\s*40(\d{2})(?:\s*ti)?`), model.ManufacturerNVIDIA, "RTX 40", "40{group1}"},
	{regexp.MustCompile(`rtx\s*4(\d{3})(?:\s*ti)?`), model.ManufacturerNVIDIA, "RTX 40", "4{group1}"},
	{regexp.MustCompile(`rtx\s*30(\d{2})(?:\s*ti)?`), model.ManufacturerNVIDIA, "RTX 30", "30{group1}"},
	{regexp.MustCompile(`rtx\s*3(\d{3})(?:\s*ti)?`), model.ManufacturerNVIDIA, "RTX 30", "3{group1}"},
	{regexp.MustCompile(`geforce\s*rtx\s*(\d{4})(?:\s*ti)?`), model.ManufacturerNVIDIA, "RTX", "{group1}"},
}

// AMDRules recognize RX 7000 and RX 6000 series cards, with or without the
// "radeon" prefix and an optional XT/GRE variant suffix.
var AMDRules = []IdentityRule{
	{regexp.MustCompile(`rx\s*7(\d{3})\s*(xt|gre)?`), model.ManufacturerAMD, "RX 7000", "7{group1}{group2}"},
	{regexp.MustCompile(`radeon\s*rx\s*7(\d{3})\s*(xt|gre)?`), model.ManufacturerAMD, "RX 7000", "7{group1}{group2}"},
	{regexp.MustCompile(`rx\s*6(\d{3})\s*(xt|gre)?`), model.ManufacturerAMD, "RX 6000", "6{group1}{group2}"},
	{regexp.MustCompile(`radeon\s*rx\s*6(\d{3})\s*(xt|gre)?`), model.ManufacturerAMD, "RX 6000", "6{group1}{group2}"},
}

// IntelRules recognize Arc Alchemist (A-series) and Battlemage (B-series)
// cards.
var IntelRules = []IdentityRule{
	{regexp.MustCompile(`arc\s*(a\d{3}|b\d{3})`), model.ManufacturerIntel, "Arc", "{group1}"},
	{regexp.MustCompile(`intel\s*arc\s*(a\d{3}|b\d{3})`), model.ManufacturerIntel, "Arc", "{group1}"},
}

// VRAMPatterns are tried in order; each captures a digit run that is then
// range-checked against plausible GPU memory sizes.
var VRAMPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(\d+)\s*gb\s*vram`),
	regexp.MustCompile(`(\d+)\s*gb(?:\s*gddr\d*)?`),
	regexp.MustCompile(`(\d+)gb`),
	regexp.MustCompile(`vram:\s*(\d+)\s*gb`),
}

// BrandRules lists board-partner brands in recognition order.
var BrandRules = []BrandRule{
	{"MSI", compileAll(`\bmsi\b`, `msi\s+gaming`, `msi\s+ventus`)},
	{"ASUS", compileAll(`\basus\b`, `asus\s+rog`, `asus\s+tuf`, `asus\s+dual`)},
	{"Gigabyte", compileAll(`\bgigabyte\b`, `gigabyte\s+gaming`, `gigabyte\s+aorus`)},
	{"EVGA", compileAll(`\bevga\b`, `evga\s+ftw`, `evga\s+sc`)},
	{"Sapphire", compileAll(`\bsapphire\b`, `sapphire\s+nitro`, `sapphire\s+pulse`)},
	{"PowerColor", compileAll(`\bpowercolor\b`, `powercolor\s+red`)},
	{"XFX", compileAll(`\bxfx\b`, `xfx\s+speedster`)},
	{"Zotac", compileAll(`\bzotac\b`, `zotac\s+gaming`)},
	{"Palit", compileAll(`\bpalit\b`, `palit\s+gamerock`)},
	{"Gainward", compileAll(`\bgainward\b`, `gainward\s+phoenix`)},
	{"PNY", compileAll(`\bpny\b`)},
	{"Inno3D", compileAll(`\binno3d\b`)},
	{"Manli", compileAll(`\bmanli\b`)},
}

// PricePatterns are ordered by specificity: currency-prefixed forms first,
// then a bare-number fallback. Each captures the numeric portion including
// thousands separators and optional pence.
var PricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`£(\d+(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)\s*£`),
	regexp.MustCompile(`£\s*(\d+(?:,\d{3})*(?:\.\d{2})?)`),
	regexp.MustCompile(`(\d+(?:,\d{3})*(?:\.\d{2})?)`),
}

// PriceQualifiers strips negotiation text before price parsing.
var PriceQualifiers = regexp.MustCompile(`(ono|or best offer|obo|neg|negotiable)`)

// ConditionRules map marketplace condition descriptions onto the standard
// five-level vocabulary. Categories and variants are scanned in order.
var ConditionRules = []ConditionRule{
	{"New", []string{"new", "brand new", "sealed", "unopened", "mint"}},
	{"Like New", []string{"like new", "excellent", "very good", "pristine", "perfect"}},
	{"Good", []string{"good", "working", "functional", "used - good"}},
	{"Fair", []string{"fair", "average", "used - fair", "some wear"}},
	{"Poor", []string{"poor", "damaged", "faulty", "for parts", "spares"}},
}

// VRAM sanity range in GB.
const (
	VRAMMin = 1
	VRAMMax = 24
)

// Plausible GPU price band in GBP. Filters out phone numbers, years and
// postcode fragments picked up by the bare-number fallback.
const (
	PriceMin = 10.0
	PriceMax = 10000.0
)

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile(p)
	}
	return res
}
