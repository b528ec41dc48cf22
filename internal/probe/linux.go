package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/wifi"
	"github.com/rileyhilliard/wifimon/internal/wifi/parsers"
)

type linuxProbe struct {
	runner Runner
	iface  string
	log    logger.Logger
}

func (p *linuxProbe) Platform() Platform { return PlatformLinux }

func (p *linuxProbe) Tools() []Tool {
	return []Tool{
		{Name: "nmcli", Purpose: "connection details and network scan"},
		{Name: "iwconfig", Purpose: "fallback when NetworkManager has no active record", Optional: true},
	}
}

// nmcliArgs builds `nmcli -t -f <fields> dev wifi list [ifname X] [--rescan no]`.
func (p *linuxProbe) nmcliArgs(fields string, rescan bool) []string {
	args := []string{"-t", "-f", fields, "dev", "wifi", "list"}
	if p.iface != "" {
		args = append(args, "ifname", p.iface)
	}
	if !rescan {
		args = append(args, "--rescan", "no")
	}
	return args
}

// Connection asks NetworkManager first and falls back to iwconfig when nmcli
// is missing, fails, or has no active record. The fallback shares ctx, so a
// primary command that used up the deadline is not retried.
func (p *linuxProbe) Connection(ctx context.Context) (wifi.Fields, error) {
	out, nmErr := run(ctx, p.runner, PlatformLinux, "nmcli", p.nmcliArgs(parsers.NmcliActiveFields, false)...)
	if nmErr == nil {
		fields, found, err := parsers.ParseNmcliActive(out)
		if err == nil && found {
			fields.Set(wifi.FieldInterface, p.iface)
			return fields, nil
		}
		p.log.Debug("nmcli has no active wifi record, falling back to iwconfig")
	} else {
		if ctx.Err() != nil {
			return nil, nmErr
		}
		p.log.Debug("nmcli unavailable (%v), falling back to iwconfig", nmErr)
	}

	var args []string
	if p.iface != "" {
		args = []string{p.iface}
	}
	out, iwErr := run(ctx, p.runner, PlatformLinux, "iwconfig", args...)
	if iwErr != nil {
		if nmErr == nil {
			// nmcli answered and saw no association; a missing fallback
			// tool does not change that.
			return nil, wifi.ErrNotConnected
		}
		return nil, errors.Join(nmErr, iwErr)
	}

	fields, err := parsers.ParseIwconfig(out)
	if err != nil {
		if errors.Is(err, parsers.ErrEmptyOutput) {
			return nil, wifi.ErrNotConnected
		}
		if errors.Is(err, wifi.ErrNotConnected) {
			return nil, err
		}
		return nil, fmt.Errorf("parse iwconfig: %w: %w", ErrUnreadableOutput, err)
	}
	return fields, nil
}

func (p *linuxProbe) Scan(ctx context.Context) ([]wifi.NetworkEntry, error) {
	out, err := run(ctx, p.runner, PlatformLinux, "nmcli", p.nmcliArgs(parsers.NmcliScanFields, true)...)
	if err != nil {
		return nil, err
	}
	return parsers.ParseNmcliScan(out)
}
