// Package theme defines the terminal styles used by the CLI output.
package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// SubjectStyle renders the composed subject line.
var SubjectStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorBlue)

// LabelStyle renders field labels and secondary annotations.
var LabelStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// PreviewStyle wraps the draft preview panel.
var PreviewStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// OKStyle renders success confirmations.
var OKStyle = lipgloss.NewStyle().
	Foreground(ColorGreen)

// TargetLabelStyle returns a color-coded style for a dispatch target id.
func TargetLabelStyle(id string) lipgloss.Style {
	base := lipgloss.NewStyle().Bold(true)

	switch id {
	case "mailto":
		return base.Foreground(ColorBlue)
	case "eml":
		return base.Foreground(ColorGray)
	case "smtp":
		return base.Foreground(ColorGreen)
	default:
		return base.Foreground(ColorGray)
	}
}
