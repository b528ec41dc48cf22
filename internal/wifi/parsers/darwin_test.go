package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

const airportInfo = `     agrCtlRSSI: -55
     agrExtRSSI: 0
    agrCtlNoise: -90
    agrExtNoise: 0
          state: running
        op mode: station
     lastTxRate: 867
        maxRate: 867
lastAssocStatus: 0
    802.11 auth: open
      link auth: wpa2-psk
          BSSID: aa:bb:cc:dd:ee:ff
           SSID: HomeNet
            MCS: 9
  guardInterval: 800
            NSS: 2
        channel: 149,80
`

func TestParseAirportInfo(t *testing.T) {
	f, err := ParseAirportInfo(airportInfo)
	require.NoError(t, err)

	assert.Equal(t, "-55", f[wifi.FieldRSSI])
	assert.Equal(t, "-90", f[wifi.FieldNoise])
	assert.Equal(t, "867", f[wifi.FieldTxRate])
	assert.Equal(t, "wpa2-psk", f[wifi.FieldSecurity])
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", f[wifi.FieldBSSID])
	assert.Equal(t, "HomeNet", f[wifi.FieldSSID])
	assert.Equal(t, "149", f[wifi.FieldChannel])
	assert.Equal(t, "80MHz", f[wifi.FieldBandwidth])

	s := wifi.Normalize(f, "darwin", fixedNow)
	assert.Equal(t, 35, s.SNR)
	assert.Equal(t, wifi.Derived, s.Provenance[wifi.SnapSNR])
	assert.Equal(t, wifi.Band5GHz, s.Band)
}

func TestParseAirportInfoZeroReadings(t *testing.T) {
	text := "     agrCtlRSSI: 0\n    agrCtlNoise: 0\n          state: running\n           SSID: Lab\n        channel: 6\n"
	f, err := ParseAirportInfo(text)
	require.NoError(t, err)

	_, ok := f.Get(wifi.FieldRSSI)
	assert.False(t, ok)
	s := wifi.Normalize(f, "darwin", fixedNow)
	assert.Equal(t, -70, s.RSSI)
	assert.Equal(t, wifi.Band24GHz, s.Band)
}

func TestParseAirportInfoNotConnected(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"airport off", "AirPort: Off\n"},
		{"init state", "     agrCtlRSSI: 0\n          state: init\n           SSID: \n"},
		{"no ssid", "          state: running\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAirportInfo(tt.text)
			assert.ErrorIs(t, err, wifi.ErrNotConnected)
		})
	}
}

func TestSplitAirportChannel(t *testing.T) {
	tests := []struct {
		raw       string
		channel   string
		bandwidth string
	}{
		{"149,80", "149", "80MHz"},
		{"6,-1", "6", "40MHz"},
		{"11,+1", "11", "40MHz"},
		{"36,1", "36", "40MHz"},
		{"1", "1", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			ch, bw := splitAirportChannel(tt.raw)
			assert.Equal(t, tt.channel, ch)
			assert.Equal(t, tt.bandwidth, bw)
		})
	}
}

const airportScan = `                            SSID BSSID             RSSI CHANNEL HT CC SECURITY (auth/unicast/group)
                         HomeNet aa:bb:cc:dd:ee:ff -55  149,+1  Y  US WPA2(PSK/AES/AES)
                     Coffee Shop 11:22:33:44:55:66 -71  6       Y  -- NONE
                        Redacted                   -80  11      N  US WPA2(PSK/AES/AES)
`

func TestParseAirportScan(t *testing.T) {
	networks, err := ParseAirportScan(airportScan)
	require.NoError(t, err)
	require.Len(t, networks, 3)

	assert.Equal(t, "HomeNet", networks[0].SSID)
	require.NotNil(t, networks[0].BSSID)
	assert.Equal(t, "aa:bb:cc:dd:ee:ff", *networks[0].BSSID)
	assert.Equal(t, -55, *networks[0].RSSI)
	assert.Equal(t, 149, *networks[0].Channel)
	assert.Equal(t, "WPA2(PSK/AES/AES)", *networks[0].Security)
	assert.Nil(t, networks[0].SignalPercent)

	assert.Equal(t, "Coffee Shop", networks[1].SSID)
	assert.Equal(t, -71, *networks[1].RSSI)
	assert.Equal(t, "NONE", *networks[1].Security)

	assert.Equal(t, "Redacted", networks[2].SSID)
	assert.Nil(t, networks[2].BSSID)
	assert.Equal(t, -80, *networks[2].RSSI)
	assert.Equal(t, 11, *networks[2].Channel)
}

func TestParseAirportScanPartialRow(t *testing.T) {
	networks, err := ParseAirportScan("SSID BSSID RSSI CHANNEL HT CC SECURITY\n   Lonely\n")
	require.NoError(t, err)
	require.Len(t, networks, 1)
	assert.Equal(t, "Lonely", networks[0].SSID)
	assert.Nil(t, networks[0].RSSI)
}

func TestParseAirportScanEmpty(t *testing.T) {
	_, err := ParseAirportScan("")
	assert.ErrorIs(t, err, ErrEmptyOutput)
}
