// Package probe invokes the per-platform wireless tools and exposes the two
// boundary operations, GetConnectionMetrics and ScanNetworks, through Service.
package probe

import (
	"context"

	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Probe reads the current association and nearby networks on one platform.
// Implementations only run commands and parse; normalization happens in the
// Service.
type Probe interface {
	Platform() Platform

	// Connection returns the raw fields of the current association, or
	// wifi.ErrNotConnected when there is none.
	Connection(ctx context.Context) (wifi.Fields, error)

	// Scan lists visible networks.
	Scan(ctx context.Context) ([]wifi.NetworkEntry, error)

	// Tools lists the commands this probe may invoke.
	Tools() []Tool
}

// Tool is an external command a probe depends on.
type Tool struct {
	Name     string
	Purpose  string
	Optional bool
}

// Options tune probe construction.
type Options struct {
	// Interface restricts Linux tools to one device.
	Interface string
	Logger    logger.Logger
}

// New returns the probe variant for platform p. Unsupported platforms get a
// probe whose every call fails with ProbeFailUnsupportedPlatform.
func New(p Platform, runner Runner, opts Options) Probe {
	log := opts.Logger
	if log == nil {
		log = logger.Noop()
	}

	switch p {
	case PlatformWindows:
		return &windowsProbe{runner: runner}
	case PlatformDarwin:
		return &darwinProbe{runner: runner, path: AirportPath}
	case PlatformLinux:
		return &linuxProbe{runner: runner, iface: opts.Interface, log: log}
	default:
		return &unsupportedProbe{platform: p}
	}
}

// run executes a command and stamps the platform onto failures.
func run(ctx context.Context, r Runner, p Platform, name string, args ...string) (string, error) {
	out, err := r.Run(ctx, name, args...)
	if err != nil {
		if pErr, ok := err.(*ProbeError); ok {
			pErr.Platform = p
			return "", pErr
		}
		return "", &ProbeError{
			Platform: p,
			Command:  CommandLine(name, args...),
			Reason:   categorizeRunError(ctx, err),
			Cause:    err,
		}
	}
	return string(out), nil
}

type unsupportedProbe struct {
	platform Platform
}

func (p *unsupportedProbe) Platform() Platform { return p.platform }

func (p *unsupportedProbe) Connection(ctx context.Context) (wifi.Fields, error) {
	return nil, ErrUnsupportedPlatform(p.platform)
}

func (p *unsupportedProbe) Scan(ctx context.Context) ([]wifi.NetworkEntry, error) {
	return nil, ErrUnsupportedPlatform(p.platform)
}

func (p *unsupportedProbe) Tools() []Tool { return nil }
