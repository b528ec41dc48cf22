package parsers

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// ParseAirportInfo parses `airport -I`. RSSI and noise are already in dBm.
// Returns wifi.ErrNotConnected when the radio is off or not associated.
//
// Example:
//
//	 agrCtlRSSI: -55
//	agrCtlNoise: -90
//	      state: running
//	 lastTxRate: 867
//	  link auth: wpa2-psk
//	      BSSID: aa:bb:cc:dd:ee:ff
//	       SSID: HomeNet
//	    channel: 149,80
func ParseAirportInfo(output string) (wifi.Fields, error) {
	values, err := ParseLabeled(output)
	if err != nil {
		return nil, err
	}

	f := wifi.Fields{}
	if strings.EqualFold(values["airport"], "off") {
		return f, wifi.ErrNotConnected
	}

	f.Set(wifi.FieldState, values["state"])
	f.Set(wifi.FieldSSID, values["ssid"])
	f.Set(wifi.FieldBSSID, values["bssid"])
	f.Set(wifi.FieldSecurity, values["link auth"])
	f.Set(wifi.FieldTxRate, values["lasttxrate"])

	// airport prints 0 for readings it does not have.
	if v := values["agrctlrssi"]; v != "" && v != "0" {
		f.Set(wifi.FieldRSSI, v)
	}
	if v := values["agrctlnoise"]; v != "" && v != "0" {
		f.Set(wifi.FieldNoise, v)
	}

	channel, bandwidth := splitAirportChannel(values["channel"])
	f.Set(wifi.FieldChannel, channel)
	f.Set(wifi.FieldBandwidth, bandwidth)

	if state, ok := f.Get(wifi.FieldState); ok && state != "running" {
		return f, wifi.ErrNotConnected
	}
	if _, ok := f.Get(wifi.FieldSSID); !ok {
		return f, wifi.ErrNotConnected
	}
	return f, nil
}

// splitAirportChannel splits "149,80" into channel and width. The second
// number is either a width in MHz or a +1/-1 secondary channel offset, which
// means 40MHz.
func splitAirportChannel(raw string) (channel, bandwidth string) {
	parts := strings.SplitN(raw, ",", 2)
	channel = strings.TrimSpace(parts[0])
	if len(parts) < 2 {
		return channel, ""
	}
	switch width := strings.TrimSpace(parts[1]); width {
	case "20", "40", "80", "160":
		return channel, width + "MHz"
	case "1", "+1", "-1":
		return channel, "40MHz"
	default:
		return channel, ""
	}
}

var (
	macPattern        = regexp.MustCompile(`(?i)\b([0-9a-f]{2}(?::[0-9a-f]{2}){5})\b`)
	airportRowPattern = regexp.MustCompile(`^\s*(-?\d+)\s+(\S+)`)
	airportNoMacRow   = regexp.MustCompile(`^\s*(.*?)\s+(-\d+)\s+(\S+)\s*(.*)$`)
)

// ParseAirportScan parses `airport -s`. SSIDs may contain spaces, so each row
// is anchored on the BSSID column; rows without a BSSID (redacted on recent
// macOS) are anchored on the first negative RSSI instead.
//
// Example:
//
//	       SSID BSSID             RSSI CHANNEL HT CC SECURITY (auth/unicast/group)
//	    HomeNet aa:bb:cc:dd:ee:ff -55  149,+1  Y  US WPA2(PSK/AES/AES)
//	Coffee Shop 11:22:33:44:55:66 -71  6       Y  -- NONE
func ParseAirportScan(output string) ([]wifi.NetworkEntry, error) {
	if strings.TrimSpace(output) == "" {
		return nil, ErrEmptyOutput
	}

	var networks []wifi.NetworkEntry
	scanner := bufio.NewScanner(strings.NewReader(output))
	header := true
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if header {
			header = false
			if strings.Contains(line, "BSSID") && strings.Contains(line, "RSSI") {
				continue
			}
		}

		if row, ok := parseAirportRow(line); ok {
			networks = append(networks, row.entry())
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning airport output: %w", err)
	}
	return networks, nil
}

func parseAirportRow(line string) (scanRow, bool) {
	if loc := macPattern.FindStringSubmatchIndex(line); loc != nil {
		row := scanRow{
			ssid:  line[:loc[0]],
			bssid: line[loc[2]:loc[3]],
		}
		rest := line[loc[1]:]
		if m := airportRowPattern.FindStringSubmatch(rest); m != nil {
			row.rssi = m[1]
			row.channel = m[2]
		}
		row.security = airportSecurity(rest)
		return row, true
	}

	if m := airportNoMacRow.FindStringSubmatch(line); m != nil {
		return scanRow{
			ssid:     m[1],
			rssi:     m[2],
			channel:  m[3],
			security: airportSecurity(m[4]),
		}, true
	}

	// Partial row: keep the name alone.
	if fields := strings.Fields(line); len(fields) > 0 {
		return scanRow{ssid: fields[0]}, true
	}
	return scanRow{}, false
}

// airportSecurity picks the SECURITY column: everything after the HT and CC
// columns that follow RSSI and CHANNEL.
func airportSecurity(rest string) string {
	fields := strings.Fields(rest)
	for i, f := range fields {
		if f == "Y" || f == "N" {
			if i+2 < len(fields) {
				return strings.Join(fields[i+2:], " ")
			}
			return ""
		}
	}
	return ""
}
