package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/doctor"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// collectChecks gathers all diagnostic checks for this machine.
func collectChecks(cfgPath string, svc wirelessService) []doctor.Check {
	var checks []doctor.Check

	checks = append(checks,
		&doctor.PlatformCheck{Platform: svc.Platform()},
		&doctor.HostCheck{},
	)
	checks = append(checks, doctor.NewToolChecks(svc.Tools(), nil)...)
	checks = append(checks, doctor.NewConfigChecks(cfgPath)...)

	// A live read only makes sense where the tools exist
	if svc.Platform().Supported() {
		checks = append(checks, &doctor.ConnectionCheck{Acquire: svc.GetConnectionMetrics})
	}
	return checks
}

// doctorCommand implements the doctor command logic. It fails when any
// check fails, after the report has been written.
func doctorCommand(ctx context.Context, cfg *config.Config, out io.Writer, fix bool) error {
	svc := newService(cfg, logger.Default())
	checks := collectChecks(Config(), svc)

	results := doctor.RunAll(ctx, checks)
	if fix {
		results = doctor.FixAll(ctx, checks, results)
	}

	var err error
	if machineMode {
		err = WriteJSONSuccess(out, buildDoctorOutput(results))
	} else {
		renderDoctorText(out, results, fix)
	}
	if err != nil {
		return err
	}
	if doctor.HasFailures(results) {
		return errSilentExit
	}
	return nil
}

func buildDoctorOutput(results []doctor.CheckResult) DoctorOutput {
	grouped := doctor.GroupByCategory(results)
	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(grouped)),
	}
	for _, cat := range doctor.Categories {
		if rs, ok := grouped[cat]; ok {
			output.Categories = append(output.Categories, CategoryOutput{Name: cat, Results: rs})
		}
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}
	return output
}

// renderDoctorText outputs results in human-readable format.
func renderDoctorText(out io.Writer, results []doctor.CheckResult, fixed bool) {
	successStyle := lipgloss.NewStyle().Foreground(ui.ColorSuccess)
	errorStyle := lipgloss.NewStyle().Foreground(ui.ColorError)
	warnStyle := lipgloss.NewStyle().Foreground(ui.ColorWarning)
	mutedStyle := lipgloss.NewStyle().Foreground(ui.ColorMuted)
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(out)
	fmt.Fprintln(out, headerStyle.Render("wifimon Diagnostic Report"))
	fmt.Fprintln(out)

	grouped := doctor.GroupByCategory(results)
	var rows []ui.DoctorCheckRow
	for _, cat := range doctor.Categories {
		for _, r := range grouped[cat] {
			rows = append(rows, ui.DoctorCheckRow{
				Status:     r.Status.String(),
				Category:   cat,
				Message:    r.Message,
				Suggestion: r.Suggestion,
			})
		}
	}
	fmt.Fprint(out, ui.RenderDoctorTable(rows))

	fmt.Fprintln(out, strings.Repeat("━", 60))
	fmt.Fprintln(out)

	summary := doctor.Summary(results)
	switch {
	case !doctor.HasIssues(results):
		fmt.Fprintf(out, "%s %s\n", successStyle.Render(ui.SymbolSuccess), summary)
	case doctor.HasFailures(results):
		fmt.Fprintf(out, "%s %s\n", errorStyle.Render(ui.SymbolFail), summary)
	default:
		fmt.Fprintf(out, "%s %s\n", warnStyle.Render(ui.SymbolWarning), summary)
	}

	if doctor.FixableCount(results) > 0 && !fixed {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "  Run with %s to attempt automatic fixes where possible.\n",
			mutedStyle.Render("--fix"))
	}
	fmt.Fprintln(out)
}
