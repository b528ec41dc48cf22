package probe

import (
	"context"
	"errors"
	"fmt"

	"github.com/rileyhilliard/wifimon/internal/wifi"
	"github.com/rileyhilliard/wifimon/internal/wifi/parsers"
)

// AirportPath is where macOS ships the airport utility. It is not on PATH.
const AirportPath = "/System/Library/PrivateFrameworks/Apple80211.framework/Versions/Current/Resources/airport"

type darwinProbe struct {
	runner Runner
	path   string
}

func (p *darwinProbe) Platform() Platform { return PlatformDarwin }

func (p *darwinProbe) Tools() []Tool {
	return []Tool{{Name: p.path, Purpose: "connection details (-I) and network scan (-s)"}}
}

func (p *darwinProbe) Connection(ctx context.Context) (wifi.Fields, error) {
	out, err := run(ctx, p.runner, PlatformDarwin, p.path, "-I")
	if err != nil {
		return nil, err
	}
	fields, err := parsers.ParseAirportInfo(out)
	if err != nil {
		if errors.Is(err, wifi.ErrNotConnected) {
			return nil, err
		}
		return nil, fmt.Errorf("parse airport info: %w: %w", ErrUnreadableOutput, err)
	}
	return fields, nil
}

func (p *darwinProbe) Scan(ctx context.Context) ([]wifi.NetworkEntry, error) {
	out, err := run(ctx, p.runner, PlatformDarwin, p.path, "-s")
	if err != nil {
		return nil, err
	}
	return parsers.ParseAirportScan(out)
}
