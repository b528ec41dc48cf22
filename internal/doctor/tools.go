package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/wifimon/internal/probe"
)

// installHints maps tool names to install instructions.
var installHints = map[string]string{
	"nmcli":    "Install NetworkManager: apt install network-manager (Debian/Ubuntu) or dnf install NetworkManager (Fedora)",
	"iwconfig": "Install wireless-tools: apt install wireless-tools",
	"netsh":    "netsh ships with Windows; check that C:\\Windows\\System32 is on PATH",
}

// ToolCheck verifies one wireless tool resolves on PATH.
type ToolCheck struct {
	Tool     probe.Tool
	LookPath func(name string) (string, error)
}

func (c *ToolCheck) Name() string     { return "tool_" + c.Tool.Name }
func (c *ToolCheck) Category() string { return CategoryTools }

func (c *ToolCheck) Run(ctx context.Context) CheckResult {
	lookPath := c.LookPath
	if lookPath == nil {
		lookPath = probe.LookPath
	}

	path, err := lookPath(c.Tool.Name)
	if err == nil {
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("%s: %s", c.Tool.Name, path),
		}
	}

	status := StatusFail
	if c.Tool.Optional {
		status = StatusWarn
	}
	suggestion := installHints[c.Tool.Name]
	if suggestion == "" {
		suggestion = fmt.Sprintf("wifimon uses %s for %s", c.Tool.Name, c.Tool.Purpose)
	}
	return CheckResult{
		Status:     status,
		Message:    fmt.Sprintf("%s not found (%s)", c.Tool.Name, c.Tool.Purpose),
		Suggestion: suggestion,
	}
}

func (c *ToolCheck) Fix() error {
	return nil // System package installation is out of scope
}

// NewToolChecks builds one check per tool.
func NewToolChecks(tools []probe.Tool, lookPath func(string) (string, error)) []Check {
	checks := make([]Check, 0, len(tools))
	for _, t := range tools {
		checks = append(checks, &ToolCheck{Tool: t, LookPath: lookPath})
	}
	return checks
}
