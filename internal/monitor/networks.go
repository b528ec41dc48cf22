package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderNetworksView renders the scan listing pane.
func (m Model) renderNetworksView() string {
	title := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("Nearby networks")

	var status string
	switch {
	case m.scanner == nil:
		status = MutedStyle.Render("scanning unavailable")
	case m.scanning:
		status = StatusConnectingStyle.Render(m.spinner.View() + " scanning")
	case m.scanned:
		status = LabelStyle.Render(fmt.Sprintf("%d found at %s", len(m.networks), m.lastScan.Format("15:04:05")))
	}

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(title + "  " + status))
	b.WriteString("\n\n")

	switch {
	case m.scanErr != "":
		b.WriteString(StatusErrorStyle.Render("  scan failed: " + m.scanErr))
		b.WriteString("\n")
	case m.scanned && len(m.networks) == 0:
		b.WriteString(LabelStyle.Render("  No networks found"))
		b.WriteString("\n")
	case m.scanned:
		b.WriteString(m.networkTable.View())
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderNetworksFooter())
	return b.String()
}

func (m Model) renderNetworksFooter() string {
	hints := []string{"n rescan", "↑↓ select", "tab/esc back", "q quit"}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
