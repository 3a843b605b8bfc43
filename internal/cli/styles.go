// Package cli provides styled terminal output using lipgloss.
package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ewalker/gpuscout/internal/standardize"
)

var (
	// PrimaryColor is the main theme color.
	PrimaryColor = lipgloss.Color("#76B041") // NVIDIA-ish green
	// SuccessColor indicates successful operations.
	SuccessColor = lipgloss.Color("#4ECDC4")
	// WarningColor indicates warnings or caution messages.
	WarningColor = lipgloss.Color("#FFE66D")
	// ErrorColor indicates errors or failure messages.
	ErrorColor = lipgloss.Color("#FF6B6B")
	// SubtleColor indicates less prominent UI elements.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(PrimaryColor).
			MarginBottom(1)

	// SuccessStyle formats success messages.
	SuccessStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// WarningStyle formats warning messages.
	WarningStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// SubtleStyle formats less prominent text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoxStyle is used for bordered content boxes.
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#333")).
			Padding(1, 2)
)

// FormatSuccess formats a success message with icon.
func FormatSuccess(message string) string {
	return SuccessStyle.Render("✓ " + message)
}

// FormatError formats an error message with icon.
func FormatError(message string) string {
	return ErrorStyle.Render("✗ " + message)
}

// FormatWarning formats a warning message with icon.
func FormatWarning(message string) string {
	return WarningStyle.Render("⚠️ " + message)
}

// FormatTitle formats a section title.
func FormatTitle(title string) string {
	return TitleStyle.Render("🖥️ " + title)
}

// RenderBox renders content in a styled box.
func RenderBox(title, content string) string {
	boxTitle := TitleStyle.
		UnsetMargins().
		Render(title)

	boxContent := lipgloss.JoinVertical(
		lipgloss.Left,
		boxTitle,
		content,
	)

	return BoxStyle.Render(boxContent)
}

// RenderStats renders batch extraction statistics as a summary box.
func RenderStats(stats standardize.BatchStats) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Listings standardized: %d\n", stats.TotalListings)
	fmt.Fprintf(&b, "Price extracted:       %.1f%%\n", stats.PriceExtractionRate)
	fmt.Fprintf(&b, "GPU identified:        %.1f%%\n", stats.GPUIdentificationRate)
	fmt.Fprintf(&b, "VRAM extracted:        %.1f%%\n", stats.VRAMExtractionRate)
	fmt.Fprintf(&b, "Card vendor found:     %.1f%%\n", stats.VendorIdentifiedRate)
	fmt.Fprintf(&b, "Mean confidence:       %.2f", stats.AvgConfidenceScore)

	return RenderBox("Extraction Summary", b.String())
}
