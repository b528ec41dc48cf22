package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rileyhilliard/wifimon/internal/wifi"
	"github.com/rileyhilliard/wifimon/internal/wifi/parsers"
)

type windowsProbe struct {
	runner Runner
}

func (p *windowsProbe) Platform() Platform { return PlatformWindows }

func (p *windowsProbe) Tools() []Tool {
	return []Tool{{Name: "netsh", Purpose: "connection details and network scan"}}
}

func (p *windowsProbe) Connection(ctx context.Context) (wifi.Fields, error) {
	out, err := run(ctx, p.runner, PlatformWindows, "netsh", "wlan", "show", "interfaces")
	if err != nil {
		return nil, err
	}
	fields, err := parsers.ParseNetshInterfaces(out)
	if err != nil {
		if errors.Is(err, wifi.ErrNotConnected) {
			return nil, err
		}
		return nil, fmt.Errorf("parse netsh interfaces: %w: %w", ErrUnreadableOutput, err)
	}
	return fields, nil
}

func (p *windowsProbe) Scan(ctx context.Context) ([]wifi.NetworkEntry, error) {
	out, err := run(ctx, p.runner, PlatformWindows, "netsh", "wlan", "show", "networks", "mode=bssid")
	if err != nil {
		return nil, err
	}
	return parsers.ParseNetshNetworks(out)
}
