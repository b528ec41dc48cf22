package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for link health
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	ColorGraph = lipgloss.Color("#00FFFF")
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	PanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	PanelTitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	SSIDStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StatusConnectingStyle = lipgloss.NewStyle().
				Foreground(ColorTextSecondary)

	StatusConnectedStyle = lipgloss.NewStyle().
				Foreground(ColorHealthy)

	StatusDisconnectedStyle = lipgloss.NewStyle().
				Foreground(ColorWarning)

	StatusErrorStyle = lipgloss.NewStyle().
				Foreground(ColorCritical)
)

// Status indicator glyphs
const (
	GlyphConnected    = "◉"
	GlyphDisconnected = "◌"
	GlyphError        = "✗"
	GlyphStale        = "◔"
)

// ConnectingSpinnerFrames animate the connecting state.
var ConnectingSpinnerFrames = []string{"◐", "◓", "◑", "◒"}

// ScoreColor maps a health score to its display color.
func ScoreColor(score int) lipgloss.Color {
	switch wifi.GradeFor(score) {
	case wifi.GradeExcellent, wifi.GradeGood:
		return ColorHealthy
	case wifi.GradeFair:
		return ColorWarning
	default:
		return ColorCritical
	}
}

// RSSIColor colors a signal level against the weak/fair thresholds.
func RSSIColor(rssi int) lipgloss.Color {
	switch {
	case rssi < wifi.RSSIWeak:
		return ColorCritical
	case rssi < wifi.RSSIFair:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// SNRColor colors a signal-to-noise ratio against the critical/low thresholds.
func SNRColor(snr int) lipgloss.Color {
	switch {
	case snr < wifi.SNRCritical:
		return ColorCritical
	case snr < wifi.SNRLow:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// SeverityColor maps an alert severity to its color.
func SeverityColor(s wifi.Severity) lipgloss.Color {
	switch s {
	case wifi.SeverityError:
		return ColorCritical
	case wifi.SeverityWarning:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// SeverityGlyph is the bullet shown before an alert.
func SeverityGlyph(s wifi.Severity) string {
	switch s {
	case wifi.SeverityError:
		return "✗"
	case wifi.SeverityWarning:
		return "⚠"
	default:
		return "✓"
	}
}

// ProgressBar renders a bar filled to percent in the given color.
func ProgressBar(width int, percent float64, color lipgloss.Color) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	bar := strings.Repeat("▰", filled) + strings.Repeat("▱", width-filled)
	return lipgloss.NewStyle().Foreground(color).Render(bar)
}

// SignalBars renders a four-step signal glyph for an RSSI value.
func SignalBars(rssi int) string {
	levels := []string{"▂___", "▂▄__", "▂▄▆_", "▂▄▆█"}
	var idx int
	switch {
	case rssi >= -55:
		idx = 3
	case rssi >= wifi.RSSIFair:
		idx = 2
	case rssi >= wifi.RSSIWeak:
		idx = 1
	}
	return lipgloss.NewStyle().Foreground(RSSIColor(rssi)).Render(levels[idx])
}

// SectionHeader renders a panel top border with a title and a value.
// Format: ╭─ Title ──────────── Value ╮
func SectionHeader(title, value string, width int) string {
	if width < 10 {
		width = 10
	}

	leftWidth := 3 + lipgloss.Width(title) + 1
	rightWidth := 1 + lipgloss.Width(value) + 2
	fillWidth := width - leftWidth - rightWidth
	if fillWidth < 1 {
		fillWidth = 1
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	valueStyle := lipgloss.NewStyle().Foreground(ColorGraph).Bold(true)

	return borderStyle.Render("╭─ ") +
		PanelTitleStyle.Render(title) +
		borderStyle.Render(" "+strings.Repeat("─", fillWidth)+" ") +
		valueStyle.Render(value) +
		borderStyle.Render(" ╮")
}

// SectionFooter renders the bottom border of a section.
func SectionFooter(width int) string {
	if width < 2 {
		width = 2
	}
	return lipgloss.NewStyle().Foreground(ColorBorder).Render("╰" + strings.Repeat("─", width-2) + "╯")
}

// SectionContentLine pads content between side borders to width.
func SectionContentLine(content string, width int) string {
	if width < 4 {
		width = 4
	}

	borderStyle := lipgloss.NewStyle().Foreground(ColorBorder)
	padding := width - 4 - lipgloss.Width(content)
	if padding < 0 {
		padding = 0
	}
	return borderStyle.Render("│") + " " + content + strings.Repeat(" ", padding) + " " + borderStyle.Render("│")
}
