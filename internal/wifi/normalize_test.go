package wifi

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestNormalizePercentWithoutNoise(t *testing.T) {
	fields := Fields{
		FieldSSID:          "HomeNet",
		FieldSignalPercent: "70%",
		FieldChannel:       "36",
	}

	s := Normalize(fields, "windows", fixedNow)

	assert.Equal(t, -65, s.RSSI)
	assert.Equal(t, Derived, s.Provenance[SnapRSSI])
	assert.Equal(t, 25, s.SNR)
	assert.Equal(t, Defaulted, s.Provenance[SnapSNR])
	assert.Equal(t, -93, s.NoiseFloor)
	assert.Equal(t, Band5GHz, s.Band)
	assert.Equal(t, Derived, s.Provenance[SnapBand])
	assert.Equal(t, 70, s.SignalPercent)
	assert.Equal(t, "windows", s.Platform)
	assert.Equal(t, fixedNow, s.Timestamp)
}

func TestNormalizeDerivesSNRFromMeasuredValues(t *testing.T) {
	tests := []struct {
		name  string
		rssi  string
		noise string
		want  int
	}{
		{"typical", "-55", "-90", 35},
		{"with units", "-62 dBm", "-95 dBm", 33},
		{"noisy", "-80", "-85", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Normalize(Fields{FieldRSSI: tt.rssi, FieldNoise: tt.noise}, "darwin", fixedNow)
			assert.Equal(t, tt.want, s.SNR)
			assert.Equal(t, s.RSSI-s.NoiseFloor, s.SNR)
			assert.Equal(t, Derived, s.Provenance[SnapSNR])
			assert.Equal(t, Measured, s.Provenance[SnapRSSI])
			assert.Equal(t, Measured, s.Provenance[SnapNoiseFloor])
		})
	}
}

func TestNormalizeEmptyFieldsUsesDefaultTable(t *testing.T) {
	s := Normalize(Fields{}, "linux", fixedNow)

	assert.Equal(t, Defaults.RSSI, s.RSSI)
	assert.Equal(t, Defaults.SNR, s.SNR)
	assert.Equal(t, Defaults.NoiseFloor, s.NoiseFloor)
	assert.Equal(t, NotAvailable, s.Channel)
	assert.Equal(t, NotAvailable, s.Security)
	assert.Equal(t, NotAvailable, s.SSID)
	assert.Equal(t, BandUnknown, s.Band)
	assert.Equal(t, -1, s.SignalPercent)
	assert.Zero(t, s.TransmitRateMbps)

	for key, p := range s.Provenance {
		assert.Equal(t, Defaulted, p, "field %s", key)
	}
}

func TestNormalizeMeasuredRSSIWinsOverPercent(t *testing.T) {
	s := Normalize(Fields{FieldRSSI: "-48", FieldSignalPercent: "20"}, "windows", fixedNow)
	assert.Equal(t, -48, s.RSSI)
	assert.Equal(t, Measured, s.Provenance[SnapRSSI])
	assert.Equal(t, 20, s.SignalPercent)
}

func TestNormalizeBand(t *testing.T) {
	tests := []struct {
		name   string
		fields Fields
		want   Band
	}{
		{"channel 6", Fields{FieldChannel: "6"}, Band24GHz},
		{"channel 14", Fields{FieldChannel: "14"}, Band24GHz},
		{"channel 149 with width", Fields{FieldChannel: "149,80"}, Band5GHz},
		{"frequency GHz", Fields{FieldFrequency: "2.437 GHz"}, Band24GHz},
		{"frequency MHz", Fields{FieldFrequency: "5180 MHz"}, Band5GHz},
		{"channel beats frequency", Fields{FieldChannel: "1", FieldFrequency: "5.18 GHz"}, Band24GHz},
		{"nothing", Fields{}, BandUnknown},
		{"garbage channel", Fields{FieldChannel: "auto"}, BandUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Normalize(tt.fields, "linux", fixedNow)
			assert.Equal(t, tt.want, s.Band)
		})
	}
}

func TestNormalizeFrequencyKeepsChannelUnknown(t *testing.T) {
	s := Normalize(Fields{FieldFrequency: "2.437 GHz"}, "linux", fixedNow)
	assert.Equal(t, NotAvailable, s.Channel)
	_, ok := s.ChannelNumber()
	assert.False(t, ok)
}

func TestNormalizeRatesAndText(t *testing.T) {
	fields := Fields{
		FieldBSSID:     "AA:BB:CC:DD:EE:FF",
		FieldSecurity:  "WPA2-Personal",
		FieldTxRate:    "866.7",
		FieldRxRate:    "433 Mb/s",
		FieldRadioType: "802.11ac",
		FieldInterface: "Wi-Fi",
	}
	s := Normalize(fields, "windows", fixedNow)

	assert.Equal(t, "aa:bb:cc:dd:ee:ff", s.BSSID)
	assert.Equal(t, "WPA2-Personal", s.Security)
	assert.InDelta(t, 866.7, s.TransmitRateMbps, 0.001)
	assert.InDelta(t, 433, s.ReceiveRateMbps, 0.001)
	assert.Equal(t, "802.11ac", s.RadioType)
	assert.Equal(t, "Wi-Fi", s.Interface)
	assert.Equal(t, Measured, s.Provenance[SnapTxRate])
}

func TestNormalizeIsIdempotent(t *testing.T) {
	fields := Fields{FieldRSSI: "-60", FieldNoise: "-92", FieldChannel: "11", FieldSSID: "Cafe"}

	a := Normalize(fields, "darwin", fixedNow)
	b := Normalize(fields, "darwin", fixedNow)

	require.Equal(t, a, b)
	a.Provenance[SnapRSSI] = Estimated
	assert.Equal(t, Measured, b.Provenance[SnapRSSI], "snapshots must not share provenance maps")
}

func TestNormalizeWithCustomTable(t *testing.T) {
	table := Defaults
	table.RSSI = -80
	table.SNR = 10

	s := table.Normalize(Fields{}, "linux", fixedNow)
	assert.Equal(t, -80, s.RSSI)
	assert.Equal(t, 10, s.SNR)
}

func TestChannelNumber(t *testing.T) {
	tests := []struct {
		channel string
		want    int
		ok      bool
	}{
		{"36", 36, true},
		{"1", 1, true},
		{NotAvailable, 0, false},
		{"0", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.channel, func(t *testing.T) {
			n, ok := ConnectionSnapshot{Channel: tt.channel}.ChannelNumber()
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestFieldsSetIgnoresBlank(t *testing.T) {
	f := Fields{}
	f.Set(FieldSSID, "  ")
	f.Set(FieldBSSID, NotAvailable)
	f.Set(FieldChannel, " 6 ")

	assert.Len(t, f, 1)
	v, ok := f.Get(FieldChannel)
	assert.True(t, ok)
	assert.Equal(t, "6", v)
}
