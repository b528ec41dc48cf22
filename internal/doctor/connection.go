package doctor

import (
	"context"
	"fmt"

	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// ConnectionCheck performs one live read of the current association.
type ConnectionCheck struct {
	Acquire func(ctx context.Context) probe.Response[*wifi.ConnectionSnapshot]
}

func (c *ConnectionCheck) Name() string     { return "connection" }
func (c *ConnectionCheck) Category() string { return CategoryConnection }

func (c *ConnectionCheck) Run(ctx context.Context) CheckResult {
	if c.Acquire == nil {
		return CheckResult{
			Status:  StatusWarn,
			Message: "Live read skipped",
		}
	}

	resp := c.Acquire(ctx)
	if resp.Success && resp.Data != nil {
		snap := resp.Data
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("Connected to %q (%d dBm, channel %s)", snap.SSID, snap.RSSI, orDash(snap.Channel)),
		}
	}

	switch resp.Code {
	case probe.CodeNotConnected:
		return CheckResult{
			Status:     StatusWarn,
			Message:    "Wireless interface is not associated",
			Suggestion: "Join a network to see live metrics",
		}
	case probe.CodePermissionDenied:
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Permission denied: %s", resp.Error),
			Suggestion: "Some wireless tools need elevated privileges; try running with sudo",
		}
	case probe.CodeTimeout:
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Read timed out: %s", resp.Error),
			Suggestion: "Increase command_timeout in your config",
		}
	default:
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Read failed: %s", resp.Error),
			Suggestion: "Run 'wifimon status -v' for details",
		}
	}
}

func (c *ConnectionCheck) Fix() error {
	return nil
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
