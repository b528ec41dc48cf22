package parsers

import (
	"bufio"
	"fmt"
	"regexp"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// NmcliActiveFields is the -f list ParseNmcliActive expects, in order.
const NmcliActiveFields = "active,ssid,bssid,chan,signal,security"

// NmcliScanFields is the -f list ParseNmcliScan expects, in order.
const NmcliScanFields = "ssid,bssid,signal,chan,security"

// ParseNmcliActive parses terse `nmcli -t -f active,ssid,bssid,chan,signal,security dev wifi`
// output and returns the record whose active flag is "yes". found is false
// when no such record exists, which callers treat as a cue to fall back.
//
// Example:
//
//	no:Neighbour:11\:22\:33\:44\:55\:66:6:40:WPA2
//	yes:HomeNet:AA\:BB\:CC\:DD\:EE\:FF:36:82:WPA2 WPA3
func ParseNmcliActive(output string) (fields wifi.Fields, found bool, err error) {
	if strings.TrimSpace(output) == "" {
		return nil, false, ErrEmptyOutput
	}

	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		cols := SplitTerse(strings.TrimRight(scanner.Text(), "\r"))
		if len(cols) < 6 || cols[0] != "yes" {
			continue
		}

		f := wifi.Fields{}
		f.Set(wifi.FieldSSID, cols[1])
		f.Set(wifi.FieldBSSID, cols[2])
		f.Set(wifi.FieldChannel, cols[3])
		f.Set(wifi.FieldSignalPercent, cols[4])
		f.Set(wifi.FieldSecurity, nmcliSecurity(cols[5]))
		return f, true, nil
	}
	if err := scanner.Err(); err != nil {
		return nil, false, fmt.Errorf("error scanning nmcli output: %w", err)
	}
	return nil, false, nil
}

// ParseNmcliScan parses terse `nmcli -t -f ssid,bssid,signal,chan,security dev wifi`.
// Rows with fewer columns keep whatever leading columns they have.
func ParseNmcliScan(output string) ([]wifi.NetworkEntry, error) {
	if strings.TrimSpace(output) == "" {
		return nil, ErrEmptyOutput
	}

	var networks []wifi.NetworkEntry
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		cols := SplitTerse(line)
		for len(cols) < 5 {
			cols = append(cols, "")
		}
		row := scanRow{
			ssid:     cols[0],
			bssid:    cols[1],
			percent:  cols[2],
			channel:  cols[3],
			security: nmcliSecurity(cols[4]),
		}
		networks = append(networks, row.entry())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error scanning nmcli output: %w", err)
	}
	return networks, nil
}

// SplitTerse splits one line of nmcli terse output on unescaped colons and
// unescapes "\:" and "\\" inside values.
func SplitTerse(line string) []string {
	var (
		cols []string
		cur  strings.Builder
	)
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == '\\' && i+1 < len(line):
			i++
			cur.WriteByte(line[i])
		case c == ':':
			cols = append(cols, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	return append(cols, cur.String())
}

// nmcliSecurity maps nmcli's "--" (open network) to a readable value.
func nmcliSecurity(s string) string {
	s = strings.TrimSpace(s)
	if s == "--" {
		return "open"
	}
	return s
}

var (
	essidPattern   = regexp.MustCompile(`ESSID:"(.*?)"`)
	qualityPattern = regexp.MustCompile(`(?i)Quality[=:](\S+)`)
	freqPattern    = regexp.MustCompile(`Frequency[=:]([\d.]+\s*[GM]Hz)`)
	apPattern      = regexp.MustCompile(`Access Point:\s*(\S+)`)
	bitRatePattern = regexp.MustCompile(`Bit Rate[=:]([\d.]+\s*\S*b/s)`)
)

// ParseIwconfig extracts what it can from `iwconfig` output with keyword
// patterns. Every unindented line opens an interface block and the first
// associated block is used, else the first block. iwconfig's signal level is
// not trusted, so RSSI and channel stay unreported and are filled from
// defaults downstream. Returns wifi.ErrNotConnected when the chosen block
// has no ESSID or no associated access point.
//
// Example:
//
//	wlan0     IEEE 802.11  ESSID:"HomeNet"
//	          Mode:Managed  Frequency:2.437 GHz  Access Point: AA:BB:CC:DD:EE:FF
//	          Bit Rate=144.4 Mb/s   Tx-Power=22 dBm
//	          Link Quality=56/70  Signal level=-54 dBm
func ParseIwconfig(output string) (wifi.Fields, error) {
	if strings.TrimSpace(output) == "" {
		return nil, ErrEmptyOutput
	}

	var (
		first    wifi.Fields
		firstErr error
	)
	for _, block := range iwconfigBlocks(output) {
		f, err := parseIwconfigBlock(block)
		if err == nil {
			return f, nil
		}
		if first == nil {
			first, firstErr = f, err
		}
	}
	return first, firstErr
}

// iwconfigBlocks splits output at every unindented line.
func iwconfigBlocks(output string) []string {
	var (
		blocks []string
		cur    strings.Builder
	)
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if line[0] != ' ' && line[0] != '\t' && cur.Len() > 0 {
			blocks = append(blocks, cur.String())
			cur.Reset()
		}
		cur.WriteString(line)
		cur.WriteByte('\n')
	}
	if cur.Len() > 0 {
		blocks = append(blocks, cur.String())
	}
	return blocks
}

func parseIwconfigBlock(output string) (wifi.Fields, error) {
	f := wifi.Fields{}
	if fields := strings.Fields(output); len(fields) > 0 && !strings.Contains(fields[0], ":") {
		f.Set(wifi.FieldInterface, fields[0])
	}
	if m := essidPattern.FindStringSubmatch(output); m != nil {
		f.Set(wifi.FieldSSID, m[1])
	}
	if m := qualityPattern.FindStringSubmatch(output); m != nil {
		f.Set(wifi.FieldLinkQuality, m[1])
	}
	if m := freqPattern.FindStringSubmatch(output); m != nil {
		f.Set(wifi.FieldFrequency, m[1])
	}
	if m := bitRatePattern.FindStringSubmatch(output); m != nil {
		f.Set(wifi.FieldTxRate, m[1])
	}

	associated := true
	if m := apPattern.FindStringSubmatch(output); m != nil {
		if macPattern.MatchString(m[1]) {
			f.Set(wifi.FieldBSSID, m[1])
		} else {
			associated = false
		}
	}

	if _, ok := f.Get(wifi.FieldSSID); !ok || !associated {
		return f, wifi.ErrNotConnected
	}
	return f, nil
}
