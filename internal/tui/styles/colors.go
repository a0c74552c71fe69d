// Package styles provides the color palette and style definitions shared by
// the oaiprofile terminal views.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text
	White   = lipgloss.Color("#E2E2E2")
	Gray    = lipgloss.Color("#888888")
	Muted   = lipgloss.Color("#555555")
	DimGray = lipgloss.Color("#444444")

	// Accent
	Blue = lipgloss.Color("#5FAFFF")
	Red  = lipgloss.Color("#FF8787")
)
