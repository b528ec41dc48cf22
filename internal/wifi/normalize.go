package wifi

import (
	"strconv"
	"strings"
	"time"
)

// DefaultTable holds the fallback for every snapshot field a platform may not
// report. Keeping it as data makes the measured-vs-default split auditable.
type DefaultTable struct {
	SSID          string
	BSSID         string
	RSSI          int
	NoiseFloor    int
	SNR           int
	Channel       string
	Bandwidth     string
	Security      string
	TxRateMbps    float64
	RxRateMbps    float64
	SignalPercent int
	LinkQuality   string
	RadioType     string
	Interface     string
}

// Defaults is the table Normalize applies.
var Defaults = DefaultTable{
	SSID:          NotAvailable,
	BSSID:         NotAvailable,
	RSSI:          -70,
	NoiseFloor:    -93,
	SNR:           25,
	Channel:       NotAvailable,
	Bandwidth:     NotAvailable,
	Security:      NotAvailable,
	TxRateMbps:    0,
	RxRateMbps:    0,
	SignalPercent: -1,
	LinkQuality:   NotAvailable,
	RadioType:     NotAvailable,
	Interface:     NotAvailable,
}

// Snapshot field keys used in ConnectionSnapshot.Provenance.
const (
	SnapSSID          = "ssid"
	SnapBSSID         = "bssid"
	SnapRSSI          = "rssi"
	SnapNoiseFloor    = "noiseFloor"
	SnapSNR           = "snr"
	SnapChannel       = "channel"
	SnapBand          = "band"
	SnapBandwidth     = "bandwidth"
	SnapSecurity      = "security"
	SnapTxRate        = "transmitRateMbps"
	SnapRxRate        = "receiveRateMbps"
	SnapSignalPercent = "signalPercent"
	SnapLinkQuality   = "linkQuality"
	SnapRadioType     = "radioType"
	SnapInterface     = "interface"
)

// Normalize maps parser output onto a complete ConnectionSnapshot using the
// package Defaults. It has no side effects and the same input always yields
// the same snapshot.
func Normalize(fields Fields, platform string, now time.Time) ConnectionSnapshot {
	return Defaults.Normalize(fields, platform, now)
}

// Normalize applies the three-stage mapping: passthrough of reported fields,
// derivation (RSSI from percent, SNR from RSSI and noise, band from channel),
// then default substitution for whatever is left.
func (d DefaultTable) Normalize(fields Fields, platform string, now time.Time) ConnectionSnapshot {
	n := normalizer{fields: fields, prov: make(map[string]Provenance, 16)}
	s := ConnectionSnapshot{
		Platform:   platform,
		Timestamp:  now,
		Provenance: n.prov,
	}

	s.SSID = n.text(FieldSSID, SnapSSID, d.SSID)
	s.BSSID = n.text(FieldBSSID, SnapBSSID, d.BSSID)
	if s.BSSID != NotAvailable {
		s.BSSID = strings.ToLower(s.BSSID)
	}
	s.Security = n.text(FieldSecurity, SnapSecurity, d.Security)
	s.Bandwidth = n.text(FieldBandwidth, SnapBandwidth, d.Bandwidth)
	s.LinkQuality = n.text(FieldLinkQuality, SnapLinkQuality, d.LinkQuality)
	s.RadioType = n.text(FieldRadioType, SnapRadioType, d.RadioType)
	s.Interface = n.text(FieldInterface, SnapInterface, d.Interface)

	s.SignalPercent = d.SignalPercent
	n.prov[SnapSignalPercent] = Defaulted
	pct, pctOK := n.integer(FieldSignalPercent)
	if pctOK {
		s.SignalPercent = clampPercent(pct)
		n.prov[SnapSignalPercent] = Measured
	}

	rssiKnown := true
	if rssi, ok := n.integer(FieldRSSI); ok {
		s.RSSI = rssi
		n.prov[SnapRSSI] = Measured
	} else if pctOK {
		s.RSSI = PercentToDBm(pct)
		n.prov[SnapRSSI] = Derived
	} else {
		s.RSSI = d.RSSI
		n.prov[SnapRSSI] = Defaulted
		rssiKnown = false
	}

	noise, noiseOK := n.integer(FieldNoise)
	if noiseOK {
		s.NoiseFloor = noise
		n.prov[SnapNoiseFloor] = Measured
	} else {
		s.NoiseFloor = d.NoiseFloor
		n.prov[SnapNoiseFloor] = Defaulted
	}

	if rssiKnown && noiseOK {
		s.SNR = s.RSSI - s.NoiseFloor
		n.prov[SnapSNR] = Derived
	} else {
		s.SNR = d.SNR
		n.prov[SnapSNR] = Defaulted
	}

	s.Channel = d.Channel
	n.prov[SnapChannel] = Defaulted
	if ch, ok := n.integer(FieldChannel); ok && ch > 0 {
		s.Channel = strconv.Itoa(ch)
		n.prov[SnapChannel] = Measured
	}

	s.Band = BandUnknown
	n.prov[SnapBand] = Defaulted
	if ch, ok := s.ChannelNumber(); ok {
		s.Band = BandForChannel(ch)
		n.prov[SnapBand] = Derived
	} else if mhz, ok := n.frequencyMHz(); ok {
		if b := BandForFrequency(mhz); b != BandUnknown {
			s.Band = b
			n.prov[SnapBand] = Derived
		}
	}

	s.TransmitRateMbps = n.rate(FieldTxRate, SnapTxRate, d.TxRateMbps)
	s.ReceiveRateMbps = n.rate(FieldRxRate, SnapRxRate, d.RxRateMbps)

	return s
}

type normalizer struct {
	fields Fields
	prov   map[string]Provenance
}

func (n normalizer) text(f Field, key, def string) string {
	if v, ok := n.fields.Get(f); ok {
		n.prov[key] = Measured
		return v
	}
	n.prov[key] = Defaulted
	return def
}

func (n normalizer) integer(f Field) (int, bool) {
	v, ok := n.fields.Get(f)
	if !ok {
		return 0, false
	}
	return LeadingInt(v)
}

func (n normalizer) rate(f Field, key string, def float64) float64 {
	if v, ok := n.fields.Get(f); ok {
		if r, ok := LeadingFloat(v); ok && r >= 0 {
			n.prov[key] = Measured
			return r
		}
	}
	n.prov[key] = Defaulted
	return def
}

// frequencyMHz accepts "2.437 GHz", "2437 MHz" or a bare number.
func (n normalizer) frequencyMHz() (float64, bool) {
	v, ok := n.fields.Get(FieldFrequency)
	if !ok {
		return 0, false
	}
	f, ok := LeadingFloat(v)
	if !ok || f <= 0 {
		return 0, false
	}
	if f < 100 {
		f *= 1000
	}
	return f, true
}

func clampPercent(p int) int {
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
