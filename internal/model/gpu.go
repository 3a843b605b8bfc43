// Package model defines the core domain models used throughout the application.
package model

// Manufacturer identifies a GPU chip designer.
type Manufacturer string

// Manufacturer constants.
const (
	ManufacturerNVIDIA Manufacturer = "NVIDIA"
	ManufacturerAMD    Manufacturer = "AMD"
	ManufacturerIntel  Manufacturer = "Intel"
)

// GPUIdentity represents a graphics card recognized in free-form listing
// text. It is only ever constructed when a recognition rule matched, so
// Manufacturer, Series and Model are always non-empty.
type GPUIdentity struct {
	Manufacturer Manufacturer
	Series       string
	Model        string
	VRAMGb       *int
	CardVendor   *string
	Confidence   float64
}

// HasVRAM reports whether a VRAM capacity was extracted.
func (g *GPUIdentity) HasVRAM() bool {
	return g.VRAMGb != nil
}

// HasCardVendor reports whether a board-partner brand was extracted.
func (g *GPUIdentity) HasCardVendor() bool {
	return g.CardVendor != nil
}
