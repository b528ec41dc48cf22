package cli

import (
	"context"
	"testing"
	"time"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// fakeService returns canned responses.
type fakeService struct {
	conn     probe.Response[*wifi.ConnectionSnapshot]
	scan     probe.Response[[]wifi.NetworkEntry]
	platform probe.Platform
	tools    []probe.Tool

	connCalls int
	scanCalls int
}

func (f *fakeService) GetConnectionMetrics(ctx context.Context) probe.Response[*wifi.ConnectionSnapshot] {
	f.connCalls++
	return f.conn
}

func (f *fakeService) ScanNetworks(ctx context.Context) probe.Response[[]wifi.NetworkEntry] {
	f.scanCalls++
	return f.scan
}

func (f *fakeService) Platform() probe.Platform { return f.platform }
func (f *fakeService) Tools() []probe.Tool      { return f.tools }

// useService swaps newService for the duration of the test.
func useService(t *testing.T, svc wirelessService) {
	t.Helper()
	orig := newService
	newService = func(*config.Config, logger.Logger) wirelessService { return svc }
	t.Cleanup(func() { newService = orig })
}

// useMachineMode sets --json for the duration of the test.
func useMachineMode(t *testing.T, on bool) {
	t.Helper()
	orig := machineMode
	machineMode = on
	t.Cleanup(func() { machineMode = orig })
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func testSnapshot() *wifi.ConnectionSnapshot {
	return &wifi.ConnectionSnapshot{
		SSID:             "home-5g",
		BSSID:            "aa:bb:cc:dd:ee:ff",
		RSSI:             -55,
		NoiseFloor:       -92,
		SNR:              37,
		Channel:          "36",
		Band:             wifi.Band5GHz,
		Bandwidth:        "80 MHz",
		Security:         "WPA2-Personal",
		TransmitRateMbps: 866,
		ReceiveRateMbps:  780,
		SignalPercent:    90,
		LinkQuality:      wifi.NotAvailable,
		RadioType:        "802.11ac",
		Interface:        "wlan0",
		Platform:         "linux",
		Provenance: map[string]wifi.Provenance{
			wifi.SnapRSSI:       wifi.Derived,
			wifi.SnapNoiseFloor: wifi.Defaulted,
			wifi.SnapSNR:        wifi.Derived,
		},
		Timestamp: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func connected() *fakeService {
	return &fakeService{
		platform: probe.PlatformLinux,
		conn:     probe.Response[*wifi.ConnectionSnapshot]{Success: true, Data: testSnapshot()},
		tools:    []probe.Tool{{Name: "nmcli", Purpose: "connection metrics"}},
	}
}
