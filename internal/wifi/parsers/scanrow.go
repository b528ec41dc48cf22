package parsers

import (
	"strings"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// scanRow accumulates the raw columns of one scan result.
type scanRow struct {
	ssid       string
	bssid      string
	rssi       string
	percent    string
	channel    string
	security   string
	extraBSSID bool
}

// entry converts the raw row, leaving optional values nil when they are
// missing or unparseable.
func (r scanRow) entry() wifi.NetworkEntry {
	e := wifi.NetworkEntry{SSID: strings.TrimSpace(r.ssid)}
	if e.SSID == "" || e.SSID == wifi.NotAvailable {
		e.SSID = wifi.HiddenSSID
	}

	if b := strings.ToLower(strings.TrimSpace(r.bssid)); b != "" {
		e.BSSID = &b
	}

	if pct, ok := wifi.LeadingInt(r.percent); ok {
		if pct < 0 {
			pct = 0
		}
		if pct > 100 {
			pct = 100
		}
		e.SignalPercent = &pct
		rssi := wifi.PercentToDBm(pct)
		e.RSSI = &rssi
	}
	if rssi, ok := wifi.LeadingInt(r.rssi); ok && rssi < 0 {
		e.RSSI = &rssi
	}

	if ch, ok := wifi.LeadingInt(r.channel); ok && ch > 0 {
		e.Channel = &ch
	}

	if s := strings.TrimSpace(r.security); s != "" {
		e.Security = &s
	}
	return e
}
