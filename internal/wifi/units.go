package wifi

import (
	"regexp"
	"strconv"
)

// PercentToDBm converts a signal quality percentage into an approximate RSSI.
// This is the same linear heuristic the OS tools use in reverse, not an RF
// model: 0% maps to -100 dBm and 100% to -50 dBm. Input is clamped to 0..100.
func PercentToDBm(percent int) int {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	return -100 + percent/2
}

// BandForChannel infers the band from a channel number. Channels 1-14 are
// 2.4GHz, anything above is treated as 5GHz.
func BandForChannel(channel int) Band {
	switch {
	case channel <= 0:
		return BandUnknown
	case channel <= 14:
		return Band24GHz
	default:
		return Band5GHz
	}
}

// BandForFrequency infers the band from a center frequency in MHz.
func BandForFrequency(mhz float64) Band {
	switch {
	case mhz >= 2400 && mhz < 2500:
		return Band24GHz
	case mhz >= 5000 && mhz < 5900:
		return Band5GHz
	default:
		return BandUnknown
	}
}

var (
	intPattern   = regexp.MustCompile(`-?\d+`)
	floatPattern = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
)

// LeadingInt returns the first integer in s, so "70%", "-55 dBm" and
// "149,80" all parse.
func LeadingInt(s string) (int, bool) {
	m := intPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	return n, true
}

// LeadingFloat returns the first decimal number in s.
func LeadingFloat(s string) (float64, bool) {
	m := floatPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
