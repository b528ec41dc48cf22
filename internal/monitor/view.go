package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// renderDashboard renders the complete dashboard view.
func (m Model) renderDashboard() string {
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n\n")

	if m.state.Snapshot == nil {
		b.WriteString(m.renderWaiting())
	} else {
		b.WriteString(m.renderPanels())
	}

	b.WriteString("\n")
	b.WriteString(m.renderFooter())
	return b.String()
}

// renderHeader renders the title bar with link status and update age.
func (m Model) renderHeader() string {
	title := lipgloss.NewStyle().
		Foreground(ColorAccent).
		Bold(true).
		Render("wifimon")

	parts := []string{m.renderStatus()}
	if m.platform != "" {
		parts = append(parts, m.platform)
	}
	if !m.state.UpdatedAt.IsZero() {
		parts = append(parts, "updated "+formatAge(m.SecondsSinceUpdate()))
	}

	stats := lipgloss.NewStyle().
		Foreground(ColorTextSecondary).
		Render(" | " + strings.Join(parts, " | "))

	return HeaderStyle.Render(title + stats)
}

// renderStatus renders the link status glyph and label.
func (m Model) renderStatus() string {
	s := m.state
	switch s.Status {
	case LinkConnected:
		return StatusConnectedStyle.Render(GlyphConnected + " connected")
	case LinkDisconnected:
		label := GlyphDisconnected + " disconnected"
		if s.Stale() {
			label = GlyphStale + " disconnected (stale)"
		}
		return StatusDisconnectedStyle.Render(label)
	case LinkError:
		label := GlyphError + " error"
		if s.Stale() {
			label = GlyphStale + " error (stale)"
		}
		return StatusErrorStyle.Render(label)
	default:
		return StatusConnectingStyle.Render(m.spinner.View() + " connecting")
	}
}

// formatAge renders a duration in seconds as a short relative time.
func formatAge(seconds int) string {
	switch {
	case seconds <= 0:
		return "just now"
	case seconds < 60:
		return fmt.Sprintf("%ds ago", seconds)
	default:
		return fmt.Sprintf("%dm%ds ago", seconds/60, seconds%60)
	}
}

// renderWaiting is shown until the first successful poll.
func (m Model) renderWaiting() string {
	width := m.panelWidth()
	var msg string
	switch {
	case m.state.LastError != "":
		msg = StatusErrorStyle.Render(m.state.LastError)
	case m.state.Status == LinkConnecting:
		msg = LabelStyle.Render("Reading connection...")
	default:
		msg = LabelStyle.Render("No wireless connection")
	}
	return PanelStyle.Width(width).Render(msg)
}

// panelWidth is the inner width of a full-width panel.
func (m Model) panelWidth() int {
	if m.width == 0 {
		return 60
	}
	w := m.width - 4
	if w < 30 {
		w = 30
	}
	return w
}

// renderPanels lays out the link, health, trend and alert panels. Wide
// terminals get link and health side by side.
func (m Model) renderPanels() string {
	full := m.panelWidth()

	var top string
	if m.compact() {
		top = lipgloss.JoinVertical(lipgloss.Left,
			m.renderLinkPanel(full),
			m.renderHealthPanel(full),
		)
	} else {
		half := full/2 - 2
		top = lipgloss.JoinHorizontal(lipgloss.Top,
			m.renderLinkPanel(half),
			m.renderHealthPanel(half),
		)
	}

	sections := []string{top, m.renderTrendPanel(full), m.renderAlertsPanel(full)}
	if m.state.LastError != "" {
		sections = append(sections, StatusErrorStyle.Render("  last poll failed: "+m.state.LastError))
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderLinkPanel shows the current association.
func (m Model) renderLinkPanel(width int) string {
	snap := m.state.Snapshot

	ssid := SSIDStyle.Render(snap.SSID)
	lines := []string{
		ssid + "  " + SignalBars(snap.RSSI),
		kv("BSSID", snap.BSSID),
		kv("Signal", lipgloss.NewStyle().Foreground(RSSIColor(snap.RSSI)).Render(fmt.Sprintf("%d dBm", snap.RSSI))),
		kv("Noise", fmt.Sprintf("%d dBm", snap.NoiseFloor)),
		kv("SNR", lipgloss.NewStyle().Foreground(SNRColor(snap.SNR)).Render(fmt.Sprintf("%d dB", snap.SNR))),
		kv("Channel", fmt.Sprintf("%s (%s)", snap.Channel, snap.Band)),
		kv("Rate", fmt.Sprintf("%s / %s Mbps", formatMbps(snap.TransmitRateMbps), formatMbps(snap.ReceiveRateMbps))),
		kv("Security", snap.Security),
	}
	if tp := m.state.Throughput; tp != nil {
		lines = append(lines, kv("Traffic", fmt.Sprintf("↓ %s  ↑ %s", FormatRate(tp.BytesInPerSec), FormatRate(tp.BytesOutPerSec))))
	}

	body := PanelTitleStyle.Render("Link") + "\n" + strings.Join(lines, "\n")
	return PanelStyle.Width(width).Render(body)
}

// renderHealthPanel shows the score bar and derived metrics.
func (m Model) renderHealthPanel(width int) string {
	s := m.state
	barWidth := width - 12
	if barWidth < 10 {
		barWidth = 10
	}

	scoreLine := ProgressBar(barWidth, float64(s.Score), ScoreColor(s.Score)) +
		" " + lipgloss.NewStyle().Foreground(ScoreColor(s.Score)).Bold(true).Render(fmt.Sprintf("%3d", s.Score))

	lines := []string{scoreLine, kv("Grade", string(s.Grade))}
	if smp := s.Sample; smp != nil {
		lines = append(lines,
			sampleLine(*smp, "Utilization", wifi.MetricChannelUtilization, fmt.Sprintf("%.0f%%", smp.ChannelUtilizationPercent)),
			sampleLine(*smp, "Retries", wifi.MetricRetryRate, fmt.Sprintf("%.1f%%", smp.RetryRatePercent)),
			sampleLine(*smp, "Assoc time", wifi.MetricAssociationTime, fmt.Sprintf("%.0f ms", smp.AssociationTimeMs)),
		)
	}

	body := PanelTitleStyle.Render("Health") + "\n" + strings.Join(lines, "\n")
	return PanelStyle.Width(width).Render(body)
}

// sampleLine renders one sample metric, marking values that were not
// measured.
func sampleLine(smp wifi.MetricSample, label, metric, value string) string {
	prov := smp.Provenance[metric]
	switch prov {
	case wifi.Unavailable:
		return kv(label, MutedStyle.Render(wifi.NotAvailable))
	case "", wifi.Measured:
		return kv(label, value)
	default:
		return kv(label, value+" "+MutedStyle.Render("~"+string(prov)))
	}
}

// renderTrendPanel draws RSSI and SNR sparklines over the history window.
func (m Model) renderTrendPanel(width int) string {
	graphWidth := width - 16
	if graphWidth < 10 {
		graphWidth = 10
	}

	rssi := m.poller.History().Series(wifi.MetricRSSI)
	snr := m.poller.History().Series(wifi.MetricSNR)

	rssiLine := RenderColoredSparkline(rssi, graphWidth, RSSIGraphMin, RSSIGraphMax, func(v float64) lipgloss.Color {
		return RSSIColor(int(v))
	})
	snrLine := RenderColoredSparkline(snr, graphWidth, SNRGraphMin, SNRGraphMax, func(v float64) lipgloss.Color {
		return SNRColor(int(v))
	})

	title := fmt.Sprintf("Trend (%d/%d)", m.poller.History().Len(), m.poller.History().Cap())
	body := PanelTitleStyle.Render(title) + "\n" +
		LabelStyle.Render(padLabel("RSSI")) + rssiLine + "\n" +
		LabelStyle.Render(padLabel("SNR")) + snrLine
	return PanelStyle.Width(width).Render(body)
}

// renderAlertsPanel lists the current alerts, or a healthy note when there
// are none.
func (m Model) renderAlertsPanel(width int) string {
	var lines []string
	for _, a := range m.state.Alerts {
		style := lipgloss.NewStyle().Foreground(SeverityColor(a.Severity))
		line := style.Render(SeverityGlyph(a.Severity)) + " " + ValueStyle.Render(a.Message)
		if a.Kind == wifi.KindRecommendation {
			line += " " + MutedStyle.Render("(recommendation)")
		}
		lines = append(lines, line)
	}
	if len(lines) == 0 {
		lines = append(lines, StatusConnectedStyle.Render(SeverityGlyph(wifi.SeverityInfo)+" No issues detected"))
	}

	body := PanelTitleStyle.Render("Alerts") + "\n" + strings.Join(lines, "\n")
	return PanelStyle.Width(width).Render(body)
}

// renderFooter renders the keyboard help footer.
func (m Model) renderFooter() string {
	hints := []string{
		"q quit",
		"r poll",
		"n scan",
		"tab networks",
		"enter details",
		"? help",
	}
	return FooterStyle.Render(strings.Join(hints, " | "))
}

func kv(label, value string) string {
	return LabelStyle.Render(padLabel(label)) + ValueStyle.Render(value)
}

func padLabel(label string) string {
	const width = 12
	if len(label) >= width {
		return label + " "
	}
	return label + strings.Repeat(" ", width-len(label))
}

// formatMbps trims trailing zeros from a rate.
func formatMbps(v float64) string {
	if v == float64(int64(v)) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%.1f", v)
}

// FormatRate formats a bytes-per-second rate as a human-readable string.
func FormatRate(bytesPerSecond float64) string {
	if bytesPerSecond < 1024 {
		return fmt.Sprintf("%.0f B/s", bytesPerSecond)
	} else if bytesPerSecond < 1024*1024 {
		return fmt.Sprintf("%.1f KB/s", bytesPerSecond/1024)
	} else if bytesPerSecond < 1024*1024*1024 {
		return fmt.Sprintf("%.1f MB/s", bytesPerSecond/(1024*1024))
	}
	return fmt.Sprintf("%.1f GB/s", bytesPerSecond/(1024*1024*1024))
}
