package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/ui"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// StatusOutput represents the JSON output for status command.
type StatusOutput struct {
	Snapshot *wifi.ConnectionSnapshot `json:"snapshot"`
	Sample   wifi.MetricSample        `json:"sample"`
	Score    int                      `json:"score"`
	Grade    wifi.Grade               `json:"grade"`
	Alerts   []wifi.Alert             `json:"alerts"`
}

// statusCommand reads the connection once and prints it with its health.
func statusCommand(ctx context.Context, cfg *config.Config, out io.Writer) error {
	svc := newService(cfg, logger.Default())
	estimator, err := newEstimator(cfg)
	if err != nil {
		return err
	}

	var spinner *ui.Spinner
	if !machineMode && isTerminal(out) {
		spinner = ui.NewSpinner("Reading connection")
		spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
		spinner.Start()
	}

	resp := svc.GetConnectionMetrics(ctx)

	if spinner != nil {
		if resp.Success {
			spinner.Success()
		} else {
			spinner.Fail()
		}
	}

	if machineMode {
		if !resp.Success {
			if err := WriteJSONResponse(out, resp); err != nil {
				return err
			}
			return errSilentExit
		}
		return WriteJSONSuccess(out, buildStatus(resp.Data, estimator))
	}

	if !resp.Success {
		return responseError("Couldn't read the wireless connection", resp.Code, resp.Err)
	}

	renderStatus(out, buildStatus(resp.Data, estimator))
	return nil
}

func buildStatus(snap *wifi.ConnectionSnapshot, estimator *wifi.Estimator) StatusOutput {
	sample := estimator.Sample(*snap)
	score := wifi.Score(sample)
	return StatusOutput{
		Snapshot: snap,
		Sample:   sample,
		Score:    score,
		Grade:    wifi.GradeFor(score),
		Alerts:   wifi.Evaluate(sample),
	}
}

// renderStatus prints the human-readable report.
func renderStatus(w io.Writer, s StatusOutput) {
	snap := s.Snapshot
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(ui.ColorPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n\n", titleStyle.Render(snap.SSID), mutedStyle.Render("("+snap.Platform+", "+snap.Interface+")"))

	prov := func(key string) wifi.Provenance { return snap.Provenance[key] }
	rows := []ui.MetricRow{
		{Label: "BSSID", Value: snap.BSSID, Source: prov(wifi.SnapBSSID)},
		{Label: "Signal", Value: fmt.Sprintf("%d dBm", snap.RSSI), Source: prov(wifi.SnapRSSI)},
		{Label: "Noise", Value: fmt.Sprintf("%d dBm", snap.NoiseFloor), Source: prov(wifi.SnapNoiseFloor)},
		{Label: "SNR", Value: fmt.Sprintf("%d dB", snap.SNR), Source: prov(wifi.SnapSNR)},
		{Label: "Channel", Value: fmt.Sprintf("%s (%s)", snap.Channel, snap.Band), Source: prov(wifi.SnapChannel)},
		{Label: "Bandwidth", Value: snap.Bandwidth, Source: prov(wifi.SnapBandwidth)},
		{Label: "Security", Value: snap.Security, Source: prov(wifi.SnapSecurity)},
		{Label: "Tx rate", Value: fmt.Sprintf("%g Mbps", snap.TransmitRateMbps), Source: prov(wifi.SnapTxRate)},
		{Label: "Rx rate", Value: fmt.Sprintf("%g Mbps", snap.ReceiveRateMbps), Source: prov(wifi.SnapRxRate)},
	}
	if snap.RadioType != wifi.NotAvailable {
		rows = append(rows, ui.MetricRow{Label: "Radio", Value: snap.RadioType, Source: prov(wifi.SnapRadioType)})
	}

	smp := s.Sample
	rows = append(rows,
		sampleRow(smp, "Utilization", wifi.MetricChannelUtilization, fmt.Sprintf("%.0f%%", smp.ChannelUtilizationPercent)),
		sampleRow(smp, "Retry rate", wifi.MetricRetryRate, fmt.Sprintf("%.1f%%", smp.RetryRatePercent)),
		sampleRow(smp, "Assoc time", wifi.MetricAssociationTime, fmt.Sprintf("%.0f ms", smp.AssociationTimeMs)),
	)
	fmt.Fprint(w, ui.RenderMetricTable(rows))

	scoreStyle := lipgloss.NewStyle().Bold(true).Foreground(scoreColor(s.Score))
	fmt.Fprintf(w, "\n  Health %s %s\n\n", scoreStyle.Render(fmt.Sprintf("%d/100", s.Score)), mutedStyle.Render(string(s.Grade)))
	fmt.Fprint(w, ui.RenderAlerts(s.Alerts))
}

func sampleRow(smp wifi.MetricSample, label, metric, value string) ui.MetricRow {
	prov := smp.Provenance[metric]
	if prov == wifi.Unavailable {
		value = wifi.NotAvailable
	}
	return ui.MetricRow{Label: label, Value: value, Source: prov}
}

func scoreColor(score int) lipgloss.Color {
	switch wifi.GradeFor(score) {
	case wifi.GradeExcellent, wifi.GradeGood:
		return ui.ColorSuccess
	case wifi.GradeFair:
		return ui.ColorWarning
	default:
		return ui.ColorError
	}
}

// isTerminal reports whether w is an interactive terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && ui.IsTerminal(f)
}
