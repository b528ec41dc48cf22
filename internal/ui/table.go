package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// TableColumn defines a table column with name and width.
type TableColumn struct {
	Title string
	Width int
}

// NetworkColumns are the columns of a scan listing.
var NetworkColumns = []TableColumn{
	{Title: "SSID", Width: 24},
	{Title: "BSSID", Width: 17},
	{Title: "SIGNAL", Width: 8},
	{Title: "%", Width: 4},
	{Title: "CH", Width: 4},
	{Title: "BAND", Width: 7},
	{Title: "SECURITY", Width: 16},
}

// NetworkRow formats one scan entry for NetworkColumns. Missing optional
// values render as a dash.
func NetworkRow(n wifi.NetworkEntry) []string {
	const dash = "-"

	bssid, signal, percent, channel, band, security := dash, dash, dash, dash, dash, dash
	if n.BSSID != nil {
		bssid = *n.BSSID
	}
	if n.RSSI != nil {
		signal = fmt.Sprintf("%d dBm", *n.RSSI)
	}
	if n.SignalPercent != nil {
		percent = fmt.Sprintf("%d", *n.SignalPercent)
	}
	if n.Channel != nil {
		channel = fmt.Sprintf("%d", *n.Channel)
		band = string(wifi.BandForChannel(*n.Channel))
	}
	if n.Security != nil {
		security = *n.Security
	}
	return []string{n.SSID, bssid, signal, percent, channel, band, security}
}

// NewTable creates a Bubbles table with default styling. Height 0 fits all rows.
func NewTable(columns []TableColumn, rows []table.Row, height int, focused bool) table.Model {
	cols := make([]table.Column, len(columns))
	for i, c := range columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}
	if height <= 0 {
		height = len(rows) + 2 // header row plus its bottom border
	}

	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(focused),
		table.WithHeight(height),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(ColorMuted).
		BorderBottom(true).
		Bold(true).
		Foreground(ColorPrimary)
	s.Cell = s.Cell.
		Foreground(ColorPrimary)
	s.Selected = s.Selected.
		Foreground(ColorPrimary).
		Background(ColorMuted).
		Bold(false)
	if !focused {
		s.Selected = s.Cell
	}

	t.SetStyles(s)
	// Recompute the body height now that the header has its border.
	t.SetHeight(height)
	return t
}

// NetworkTableRows converts scan entries to table rows.
func NetworkTableRows(networks []wifi.NetworkEntry) []table.Row {
	rows := make([]table.Row, len(networks))
	for i, n := range networks {
		rows[i] = table.Row(NetworkRow(n))
	}
	return rows
}

// RenderNetworkTable renders a non-interactive scan listing for CLI output.
func RenderNetworkTable(networks []wifi.NetworkEntry) string {
	if len(networks) == 0 {
		return lipgloss.NewStyle().Foreground(ColorMuted).Render("No networks found")
	}
	return NewTable(NetworkColumns, NetworkTableRows(networks), 0, false).View()
}

// MetricRow is one line of the status report.
type MetricRow struct {
	Label  string
	Value  string
	Source wifi.Provenance
}

// RenderMetricTable renders label/value pairs with their provenance. Values
// that were not measured get the source in muted text.
func RenderMetricTable(rows []MetricRow) string {
	labelStyle := lipgloss.NewStyle().Foreground(ColorSecondary)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)

	width := 0
	for _, r := range rows {
		if len(r.Label) > width {
			width = len(r.Label)
		}
	}

	var b strings.Builder
	for _, r := range rows {
		b.WriteString("  ")
		b.WriteString(padRight(labelStyle.Render(r.Label), width+2))
		b.WriteString(r.Value)
		if r.Source != "" && r.Source != wifi.Measured {
			b.WriteString(" " + mutedStyle.Render("("+string(r.Source)+")"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// RenderAlerts renders alerts one per line with a severity symbol.
func RenderAlerts(alerts []wifi.Alert) string {
	var b strings.Builder
	for _, a := range alerts {
		b.WriteString("  " + SeveritySymbol(a.Severity) + " " + a.Message)
		if a.Kind == wifi.KindRecommendation {
			b.WriteString(" " + lipgloss.NewStyle().Foreground(ColorMuted).Render("(recommendation)"))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// DoctorCheckRow represents a row in the doctor diagnostic table.
type DoctorCheckRow struct {
	Status     string // "pass", "warn", "fail"
	Category   string
	Message    string
	Suggestion string // shown unless the check passed
}

// RenderDoctorTable renders doctor check results grouped by category.
func RenderDoctorTable(rows []DoctorCheckRow) string {
	if len(rows) == 0 {
		return "No checks to display"
	}

	successStyle := lipgloss.NewStyle().Foreground(ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(ColorPrimary)

	categories := make(map[string][]DoctorCheckRow)
	var categoryOrder []string
	for _, row := range rows {
		if _, exists := categories[row.Category]; !exists {
			categoryOrder = append(categoryOrder, row.Category)
		}
		categories[row.Category] = append(categories[row.Category], row)
	}

	var b strings.Builder
	for _, cat := range categoryOrder {
		b.WriteString(headerStyle.Render(cat) + "\n")

		for _, row := range categories[cat] {
			var statusIcon string
			switch row.Status {
			case "pass":
				statusIcon = successStyle.Render(SymbolComplete)
			case "warn":
				statusIcon = warnStyle.Render(SymbolWarning)
			case "fail":
				statusIcon = errorStyle.Render(SymbolFail)
			default:
				statusIcon = mutedStyle.Render(SymbolPending)
			}

			b.WriteString("  " + statusIcon + " " + row.Message + "\n")
			if row.Suggestion != "" && row.Status != "pass" {
				b.WriteString("    " + mutedStyle.Render(row.Suggestion) + "\n")
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

// padRight pads a string to the specified visible width.
func padRight(s string, width int) string {
	visibleLen := lipgloss.Width(s)
	if visibleLen >= width {
		return s
	}
	return s + strings.Repeat(" ", width-visibleLen)
}
