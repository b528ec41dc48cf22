package monitor

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Detail view styles
var (
	detailSectionStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(ColorBorder).
				Padding(0, 1).
				MarginBottom(1)

	provenanceStyles = map[wifi.Provenance]lipgloss.Style{
		wifi.Measured:    lipgloss.NewStyle().Foreground(ColorHealthy),
		wifi.Derived:     lipgloss.NewStyle().Foreground(ColorGraph),
		wifi.Defaulted:   lipgloss.NewStyle().Foreground(ColorWarning),
		wifi.Estimated:   lipgloss.NewStyle().Foreground(ColorAccentDim),
		wifi.Unavailable: lipgloss.NewStyle().Foreground(ColorTextMuted),
	}
)

// renderDetailView renders the scrollable connection detail pane.
func (m Model) renderDetailView() string {
	header := lipgloss.NewStyle().Foreground(ColorAccent).Bold(true).Render("Connection details") +
		"  " + m.renderStatus()

	var body string
	if m.viewportReady {
		body = m.detailViewport.View()
	} else {
		body = m.detailContent()
	}

	return header + "\n\n" + body + "\n" + m.renderDetailFooter()
}

// updateDetailViewportContent refreshes the viewport with the current state.
func (m *Model) updateDetailViewportContent() {
	if !m.viewportReady {
		return
	}
	m.detailViewport.SetContent(m.detailContent())
}

// detailContent lists every snapshot field and sample metric with where its
// value came from.
func (m Model) detailContent() string {
	snap := m.state.Snapshot
	if snap == nil {
		return detailSectionStyle.Render(LabelStyle.Render("Waiting for connection data..."))
	}

	width := m.panelWidth()

	rows := []struct {
		label, key, value string
	}{
		{"SSID", wifi.SnapSSID, snap.SSID},
		{"BSSID", wifi.SnapBSSID, snap.BSSID},
		{"RSSI", wifi.SnapRSSI, fmt.Sprintf("%d dBm", snap.RSSI)},
		{"Noise floor", wifi.SnapNoiseFloor, fmt.Sprintf("%d dBm", snap.NoiseFloor)},
		{"SNR", wifi.SnapSNR, fmt.Sprintf("%d dB", snap.SNR)},
		{"Signal", wifi.SnapSignalPercent, signalPercentText(snap.SignalPercent)},
		{"Link quality", wifi.SnapLinkQuality, snap.LinkQuality},
		{"Channel", wifi.SnapChannel, snap.Channel},
		{"Band", wifi.SnapBand, string(snap.Band)},
		{"Bandwidth", wifi.SnapBandwidth, snap.Bandwidth},
		{"Security", wifi.SnapSecurity, snap.Security},
		{"Tx rate", wifi.SnapTxRate, formatMbps(snap.TransmitRateMbps) + " Mbps"},
		{"Rx rate", wifi.SnapRxRate, formatMbps(snap.ReceiveRateMbps) + " Mbps"},
		{"Radio", wifi.SnapRadioType, snap.RadioType},
		{"Interface", wifi.SnapInterface, snap.Interface},
	}

	var lines []string
	lines = append(lines, PanelTitleStyle.Render("Association"), "")
	for _, r := range rows {
		lines = append(lines, detailLine(r.label, r.value, snap.Provenance[r.key]))
	}
	lines = append(lines, "", kv("Platform", snap.Platform), kv("Read at", snap.Timestamp.Format("15:04:05")))
	sections := []string{detailSectionStyle.Width(width).Render(strings.Join(lines, "\n"))}

	if smp := m.state.Sample; smp != nil {
		metrics := []struct {
			label, key, value string
		}{
			{"RSSI", wifi.MetricRSSI, fmt.Sprintf("%d dBm", smp.RSSI)},
			{"SNR", wifi.MetricSNR, fmt.Sprintf("%d dB", smp.SNR)},
			{"Noise floor", wifi.MetricNoiseFloor, fmt.Sprintf("%d dBm", smp.NoiseFloor)},
			{"Data rate", wifi.MetricDataRate, formatMbps(smp.DataRateMbps) + " Mbps"},
			{"Utilization", wifi.MetricChannelUtilization, fmt.Sprintf("%.0f%%", smp.ChannelUtilizationPercent)},
			{"Retry rate", wifi.MetricRetryRate, fmt.Sprintf("%.1f%%", smp.RetryRatePercent)},
			{"Assoc time", wifi.MetricAssociationTime, fmt.Sprintf("%.0f ms", smp.AssociationTimeMs)},
		}

		lines = []string{PanelTitleStyle.Render(fmt.Sprintf("Health %d (%s)", m.state.Score, m.state.Grade)), ""}
		for _, r := range metrics {
			value := r.value
			if smp.Provenance[r.key] == wifi.Unavailable {
				value = wifi.NotAvailable
			}
			lines = append(lines, detailLine(r.label, value, smp.Provenance[r.key]))
		}
		sections = append(sections, detailSectionStyle.Width(width).Render(strings.Join(lines, "\n")))
	}

	if len(m.state.Alerts) > 0 {
		lines = []string{PanelTitleStyle.Render("Alerts"), ""}
		for _, a := range m.state.Alerts {
			glyph := lipgloss.NewStyle().Foreground(SeverityColor(a.Severity)).Render(SeverityGlyph(a.Severity))
			lines = append(lines, fmt.Sprintf("%s %s %s", glyph, ValueStyle.Render(a.Message), MutedStyle.Render("["+a.Rule+"]")))
		}
		sections = append(sections, detailSectionStyle.Width(width).Render(strings.Join(lines, "\n")))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// detailLine renders one labelled value with a colored provenance tag.
func detailLine(label, value string, prov wifi.Provenance) string {
	if prov == "" {
		prov = wifi.Measured
	}
	style, ok := provenanceStyles[prov]
	if !ok {
		style = MutedStyle
	}
	return kv(label, value) + "  " + style.Render(string(prov))
}

func signalPercentText(p int) string {
	if p < 0 {
		return wifi.NotAvailable
	}
	return fmt.Sprintf("%d%%", p)
}

// renderDetailFooter renders navigation hints for the detail view.
func (m Model) renderDetailFooter() string {
	hints := []string{"Esc back", "↑↓ scroll", "r poll", "q quit"}
	return FooterStyle.Render(strings.Join(hints, " | "))
}
