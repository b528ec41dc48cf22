package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/ui"
	"github.com/rileyhilliard/wifimon/internal/util"
)

// scanCommand lists nearby networks. A failed scan still succeeds with an
// empty list; the cause is shown as a warning.
func scanCommand(ctx context.Context, cfg *config.Config, out io.Writer) error {
	log := logger.Default()
	svc := newService(cfg, log)

	var spinner *ui.Spinner
	if !machineMode && isTerminal(out) {
		spinner = ui.NewSpinner("Scanning for networks")
		spinner.SetOutput(func(s string) { fmt.Fprint(out, s) })
		spinner.Start()
	}

	resp := svc.ScanNetworks(ctx)

	if spinner != nil {
		spinner.Success()
	}

	if machineMode {
		return WriteJSONResponse(out, resp)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, ui.RenderNetworkTable(resp.Data))
	if resp.Err != nil {
		warn := lipgloss.NewStyle().Foreground(ui.ColorWarning)
		fmt.Fprintf(out, "\n%s %s\n", warn.Render(ui.SymbolWarning), warn.Render("scan failed: "+resp.Err.Error()))
	} else if len(resp.Data) > 0 {
		muted := lipgloss.NewStyle().Foreground(ui.ColorMuted)
		fmt.Fprintln(out, muted.Render(fmt.Sprintf("%d %s", len(resp.Data), util.Pluralize(len(resp.Data), "network", "networks"))))
	}
	return nil
}
