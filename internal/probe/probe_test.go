package probe

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

const netshFixture = `
    Name                   : Wi-Fi
    State                  : connected
    SSID                   : HomeNet
    BSSID                  : aa:bb:cc:dd:ee:ff
    Radio type             : 802.11n
    Authentication         : WPA2-Personal
    Channel                : 6
    Receive rate (Mbps)    : 144
    Transmit rate (Mbps)   : 144
    Signal                 : 70%
`

const airportFixture = `     agrCtlRSSI: -58
    agrCtlNoise: -91
          state: running
     lastTxRate: 400
      link auth: wpa2-psk
          BSSID: aa:bb:cc:dd:ee:ff
           SSID: Studio
        channel: 44,80
`

const iwconfigFixture = `wlan0     IEEE 802.11  ESSID:"Basement"
          Mode:Managed  Frequency:5.18 GHz  Access Point: AA:BB:CC:DD:EE:11
          Bit Rate=72.2 Mb/s   Tx-Power=22 dBm
          Link Quality=40/70  Signal level=-70 dBm
`

func TestParsePlatform(t *testing.T) {
	tests := []struct {
		goos string
		want Platform
	}{
		{"windows", PlatformWindows},
		{"darwin", PlatformDarwin},
		{"linux", PlatformLinux},
		{"Linux", PlatformLinux},
		{"freebsd", PlatformUnknown},
		{"", PlatformUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.goos, func(t *testing.T) {
			p := ParsePlatform(tt.goos)
			assert.Equal(t, tt.want, p)
			assert.Equal(t, tt.want != PlatformUnknown, p.Supported())
		})
	}
}

func TestWindowsConnection(t *testing.T) {
	r := newFakeRunner().on("netsh", netshFixture)
	p := New(PlatformWindows, r, Options{})

	fields, err := p.Connection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"wlan", "show", "interfaces"}, r.lastArgs("netsh"))

	s := wifi.Normalize(fields, string(p.Platform()), fixedNow)
	assert.Equal(t, -65, s.RSSI)
	assert.Equal(t, 25, s.SNR)
	assert.Equal(t, wifi.Band24GHz, s.Band)
}

func TestWindowsScan(t *testing.T) {
	r := newFakeRunner().on("netsh", "SSID 1 : HomeNet\n    Authentication : Open\n    BSSID 1 : aa:bb:cc:dd:ee:ff\n         Signal : 50%\n")
	p := New(PlatformWindows, r, Options{})

	networks, err := p.Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, []string{"wlan", "show", "networks", "mode=bssid"}, r.lastArgs("netsh"))
	assert.Equal(t, -75, *networks[0].RSSI)
}

func TestDarwinConnection(t *testing.T) {
	r := newFakeRunner().on(AirportPath, airportFixture)
	p := New(PlatformDarwin, r, Options{})

	fields, err := p.Connection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"-I"}, r.lastArgs(AirportPath))

	s := wifi.Normalize(fields, "darwin", fixedNow)
	assert.Equal(t, 33, s.SNR)
	assert.Equal(t, "80MHz", s.Bandwidth)
}

func TestDarwinNotConnected(t *testing.T) {
	r := newFakeRunner().on(AirportPath, "AirPort: Off\n")
	_, err := New(PlatformDarwin, r, Options{}).Connection(context.Background())
	assert.ErrorIs(t, err, wifi.ErrNotConnected)
}

func TestLinuxPrimary(t *testing.T) {
	r := newFakeRunner().on("nmcli", `yes:HomeNet:AA\:BB\:CC\:DD\:EE\:FF:11:64:WPA2`+"\n")
	p := New(PlatformLinux, r, Options{})

	fields, err := p.Connection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"nmcli"}, r.commands(), "no fallback when nmcli has an active record")
	assert.Equal(t, []string{"-t", "-f", "active,ssid,bssid,chan,signal,security", "dev", "wifi", "list", "--rescan", "no"}, r.lastArgs("nmcli"))
	assert.Equal(t, "HomeNet", fields[wifi.FieldSSID])
}

func TestLinuxFallsBackWithoutActiveRecord(t *testing.T) {
	log := logger.NewBufferLogger()
	r := newFakeRunner().
		on("nmcli", `no:Other:AA\:BB\:CC\:DD\:EE\:00:1:30:WPA2`+"\n").
		on("iwconfig", iwconfigFixture)
	p := New(PlatformLinux, r, Options{Logger: log})

	fields, err := p.Connection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"nmcli", "iwconfig"}, r.commands())
	assert.True(t, log.Contains("debug", "falling back to iwconfig"))

	s := wifi.Normalize(fields, "linux", fixedNow)
	assert.Equal(t, -70, s.RSSI)
	assert.Equal(t, wifi.NotAvailable, s.Channel)
	assert.Equal(t, "Basement", s.SSID)
}

func TestLinuxFallsBackWhenNmcliMissing(t *testing.T) {
	r := newFakeRunner().on("iwconfig", iwconfigFixture)
	fields, err := New(PlatformLinux, r, Options{}).Connection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Basement", fields[wifi.FieldSSID])
}

func TestLinuxFallbackFailures(t *testing.T) {
	t.Run("both tools missing", func(t *testing.T) {
		_, err := New(PlatformLinux, newFakeRunner(), Options{}).Connection(context.Background())
		require.Error(t, err)
		assert.Equal(t, ProbeFailNotFound, ReasonOf(err))
		assert.Contains(t, err.Error(), "nmcli")
		assert.Contains(t, err.Error(), "iwconfig")
	})

	t.Run("nmcli idle and iwconfig missing", func(t *testing.T) {
		r := newFakeRunner().on("nmcli", "no:Other:x:1:30:WPA2\n")
		_, err := New(PlatformLinux, r, Options{}).Connection(context.Background())
		assert.ErrorIs(t, err, wifi.ErrNotConnected)
	})

	t.Run("iwconfig reports no association", func(t *testing.T) {
		r := newFakeRunner().
			on("nmcli", "").
			on("iwconfig", "wlan0     IEEE 802.11  ESSID:off/any\n")
		_, err := New(PlatformLinux, r, Options{}).Connection(context.Background())
		assert.ErrorIs(t, err, wifi.ErrNotConnected)
	})

	t.Run("timeout is not retried", func(t *testing.T) {
		r := newFakeRunner().hang("nmcli").on("iwconfig", iwconfigFixture)
		ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
		defer cancel()

		_, err := New(PlatformLinux, r, Options{}).Connection(ctx)
		assert.True(t, IsReason(err, ProbeFailTimeout))
		assert.Equal(t, []string{"nmcli"}, r.commands())
	})
}

func TestLinuxInterfaceRestriction(t *testing.T) {
	r := newFakeRunner().on("nmcli", "").on("iwconfig", iwconfigFixture)
	p := New(PlatformLinux, r, Options{Interface: "wlp3s0"})

	_, err := p.Connection(context.Background())
	require.NoError(t, err)
	assert.Contains(t, r.lastArgs("nmcli"), "wlp3s0")
	assert.Equal(t, []string{"wlp3s0"}, r.lastArgs("iwconfig"))

	r2 := newFakeRunner().on("nmcli", "yes:Net:AA\\:BB\\:CC\\:DD\\:EE\\:FF:1:90:WPA2\n")
	fields, err := New(PlatformLinux, r2, Options{Interface: "wlp3s0"}).Connection(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "wlp3s0", fields[wifi.FieldInterface])
}

func TestLinuxScanRescans(t *testing.T) {
	r := newFakeRunner().on("nmcli", "HomeNet:AA\\:BB\\:CC\\:DD\\:EE\\:FF:80:36:WPA2\n")
	networks, err := New(PlatformLinux, r, Options{}).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.NotContains(t, r.lastArgs("nmcli"), "--rescan")
	assert.Contains(t, r.lastArgs("nmcli"), "ssid,bssid,signal,chan,security")
}

func TestUnsupportedPlatform(t *testing.T) {
	p := New(PlatformUnknown, newFakeRunner(), Options{})

	_, err := p.Connection(context.Background())
	assert.True(t, IsReason(err, ProbeFailUnsupportedPlatform))
	_, err = p.Scan(context.Background())
	assert.True(t, IsReason(err, ProbeFailUnsupportedPlatform))
	assert.Empty(t, p.Tools())
}

func TestRunStampsPlatform(t *testing.T) {
	r := newFakeRunner().fail("netsh", errors.New("boom"))
	_, err := New(PlatformWindows, r, Options{}).Connection(context.Background())

	var pErr *ProbeError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, PlatformWindows, pErr.Platform)
	assert.Equal(t, ProbeFailUnknown, pErr.Reason)
}

func TestTools(t *testing.T) {
	linux := New(PlatformLinux, newFakeRunner(), Options{}).Tools()
	require.Len(t, linux, 2)
	assert.Equal(t, "nmcli", linux[0].Name)
	assert.True(t, linux[1].Optional)

	assert.Equal(t, AirportPath, New(PlatformDarwin, newFakeRunner(), Options{}).Tools()[0].Name)
}
