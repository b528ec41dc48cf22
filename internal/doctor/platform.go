package doctor

import (
	"context"
	"fmt"
	"runtime"

	"github.com/rileyhilliard/wifimon/internal/probe"
)

// PlatformCheck verifies wireless telemetry is implemented for this OS.
type PlatformCheck struct {
	Platform probe.Platform
}

func (c *PlatformCheck) Name() string     { return "platform" }
func (c *PlatformCheck) Category() string { return CategoryPlatform }

func (c *PlatformCheck) Run(ctx context.Context) CheckResult {
	if !c.Platform.Supported() {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("%s/%s is not supported", runtime.GOOS, runtime.GOARCH),
			Suggestion: "wifimon supports Windows (netsh), macOS (airport) and Linux (nmcli or iwconfig)",
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Platform: %s", c.Platform),
	}
}

func (c *PlatformCheck) Fix() error {
	return nil
}

// HostCheck reports OS details. It never fails; missing details only warn.
type HostCheck struct {
	Describe func(ctx context.Context) (probe.HostInfo, error)
}

func (c *HostCheck) Name() string     { return "host" }
func (c *HostCheck) Category() string { return CategoryPlatform }

func (c *HostCheck) Run(ctx context.Context) CheckResult {
	describe := c.Describe
	if describe == nil {
		describe = probe.DescribeHost
	}

	info, err := describe(ctx)
	if err != nil {
		return CheckResult{
			Status:  StatusWarn,
			Message: fmt.Sprintf("Host details unavailable (%s/%s): %v", info.OS, info.Arch, err),
		}
	}

	msg := fmt.Sprintf("%s %s %s", info.Platform, info.PlatformVersion, info.Arch)
	if info.Platform == "" {
		msg = fmt.Sprintf("%s %s", info.OS, info.Arch)
	}
	if info.KernelVersion != "" {
		msg += fmt.Sprintf(" (kernel %s)", info.KernelVersion)
	}
	return CheckResult{
		Status:  StatusPass,
		Message: msg,
	}
}

func (c *HostCheck) Fix() error {
	return nil
}
