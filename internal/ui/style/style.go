// Package style provides shared styling primitives: the palette and the icons
// printed in front of log lines and run summaries.
package style

import "github.com/charmbracelet/lipgloss"

// Palette.
var (
	Iris   = lipgloss.Color("#8B5CF6")
	Slate  = lipgloss.Color("#667085")
	Green  = lipgloss.Color("#22A06B")
	Red    = lipgloss.Color("#D93025")
	Yellow = lipgloss.Color("#F59E0B")
)

// Icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
)

// Cache outcome labels, rendered by the run summary.
var (
	Hit  = lipgloss.NewStyle().Foreground(Green).Bold(true)
	Miss = lipgloss.NewStyle().Foreground(Yellow).Bold(true)
	Off  = lipgloss.NewStyle().Foreground(Slate)
)
