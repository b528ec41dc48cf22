package parsers

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// ParseNetshInterfaces parses `netsh wlan show interfaces`. Each "Name"
// line opens an interface block; the first connected block is used, else the
// first interface listed. Returns wifi.ErrNotConnected when the chosen
// interface reports itself disconnected or has no SSID.
//
// Example:
//
//	Name                   : Wi-Fi
//	State                  : connected
//	SSID                   : HomeNet
//	BSSID                  : aa:bb:cc:dd:ee:ff
//	Radio type             : 802.11ac
//	Authentication         : WPA2-Personal
//	Channel                : 36
//	Receive rate (Mbps)    : 866.7
//	Transmit rate (Mbps)   : 866.7
//	Signal                 : 70%
func ParseNetshInterfaces(output string) (wifi.Fields, error) {
	blocks, err := ParseLabeledBlocks(output, "name")
	if err != nil {
		return nil, err
	}
	values := pickNetshInterface(blocks)

	f := wifi.Fields{}
	f.Set(wifi.FieldInterface, values["name"])
	f.Set(wifi.FieldState, values["state"])
	f.Set(wifi.FieldSSID, values["ssid"])
	f.Set(wifi.FieldBSSID, firstNonEmpty(values["bssid"], values["ap bssid"]))
	f.Set(wifi.FieldRadioType, values["radio type"])
	f.Set(wifi.FieldSecurity, values["authentication"])
	f.Set(wifi.FieldChannel, values["channel"])
	f.Set(wifi.FieldSignalPercent, values["signal"])
	f.Set(wifi.FieldRxRate, values["receive rate (mbps)"])
	f.Set(wifi.FieldTxRate, values["transmit rate (mbps)"])
	// Newer builds also print the RSSI in dBm.
	f.Set(wifi.FieldRSSI, values["rssi"])

	if state, ok := f.Get(wifi.FieldState); ok && strings.EqualFold(state, "disconnected") {
		return f, wifi.ErrNotConnected
	}
	if _, ok := f.Get(wifi.FieldSSID); !ok {
		return f, wifi.ErrNotConnected
	}
	return f, nil
}

// pickNetshInterface returns the first connected interface block, falling
// back to the first block that names an interface.
func pickNetshInterface(blocks []map[string]string) map[string]string {
	var first map[string]string
	for _, b := range blocks {
		if _, ok := b["name"]; !ok {
			continue
		}
		if strings.EqualFold(b["state"], "connected") {
			return b
		}
		if first == nil {
			first = b
		}
	}
	if first == nil {
		return blocks[0]
	}
	return first
}

// ParseNetshNetworks parses `netsh wlan show networks mode=bssid`. Each SSID
// block yields one entry using its first BSSID.
//
// Example:
//
//	SSID 1 : HomeNet
//	    Network type            : Infrastructure
//	    Authentication          : WPA2-Personal
//	    BSSID 1                 : aa:bb:cc:dd:ee:ff
//	         Signal             : 80%
//	         Channel            : 36
func ParseNetshNetworks(output string) ([]wifi.NetworkEntry, error) {
	if strings.TrimSpace(output) == "" {
		return nil, ErrEmptyOutput
	}

	var (
		networks []wifi.NetworkEntry
		current  *scanRow
	)
	flush := func() {
		if current != nil {
			networks = append(networks, current.entry())
		}
		current = nil
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		key, value, ok := splitLabel(scanner.Text())
		if !ok {
			continue
		}
		lower := strings.ToLower(key)

		switch {
		case strings.HasPrefix(lower, "ssid "):
			flush()
			current = &scanRow{ssid: value}
		case current == nil:
			continue
		case strings.HasPrefix(lower, "bssid "):
			if current.bssid == "" {
				current.bssid = value
			} else {
				current.extraBSSID = true
			}
		case current.extraBSSID:
			// Signal and channel of secondary BSSIDs are ignored.
		case lower == "signal":
			current.percent = value
		case lower == "channel":
			current.channel = value
		case lower == "authentication":
			current.security = value
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning netsh output: %w", err)
	}
	flush()

	return networks, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
