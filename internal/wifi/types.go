package wifi

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is the placeholder for text fields the platform did not report.
const NotAvailable = "N/A"

// HiddenSSID labels scan entries that broadcast an empty network name.
const HiddenSSID = "<hidden>"

// ErrNotConnected is returned by probes when the interface is up but not
// associated with any network.
var ErrNotConnected = errors.New("not connected to a wireless network")

// Band is the frequency band inferred from the operating channel.
type Band string

const (
	Band24GHz   Band = "2.4GHz"
	Band5GHz    Band = "5GHz"
	BandUnknown Band = "unknown"
)

// Provenance records where a value came from.
type Provenance string

const (
	// Measured values were reported directly by the OS tool.
	Measured Provenance = "measured"
	// Derived values were computed from other reported values.
	Derived Provenance = "derived"
	// Defaulted values came from the default table.
	Defaulted Provenance = "default"
	// Estimated values were synthesized because no OS source exists.
	Estimated Provenance = "estimated"
	// Unavailable values carry no information and are skipped by scoring.
	Unavailable Provenance = "unavailable"
)

// Field names a raw value extracted from tool output.
type Field string

const (
	FieldSSID          Field = "ssid"
	FieldBSSID         Field = "bssid"
	FieldRSSI          Field = "rssi"
	FieldNoise         Field = "noise"
	FieldSignalPercent Field = "signal_percent"
	FieldLinkQuality   Field = "link_quality"
	FieldChannel       Field = "channel"
	FieldFrequency     Field = "frequency"
	FieldBandwidth     Field = "bandwidth"
	FieldSecurity      Field = "security"
	FieldTxRate        Field = "tx_rate"
	FieldRxRate        Field = "rx_rate"
	FieldRadioType     Field = "radio_type"
	FieldInterface     Field = "interface"
	FieldState         Field = "state"
)

// Fields is the loosely typed output of a parser: raw strings keyed by field.
// Missing keys mean the tool did not report the value.
type Fields map[Field]string

// Get returns the value for k. Empty and "N/A" values count as missing.
func (f Fields) Get(k Field) (string, bool) {
	v, ok := f[k]
	if !ok || v == "" || v == NotAvailable {
		return "", false
	}
	return v, true
}

// Set stores a trimmed value, ignoring empty and "N/A" values so parsers can
// pass through whatever they matched.
func (f Fields) Set(k Field, v string) {
	v = strings.TrimSpace(v)
	if v == "" || v == NotAvailable {
		return
	}
	f[k] = v
}

// ConnectionSnapshot is one normalized reading of the current association.
// Every field is always populated; Provenance says how.
type ConnectionSnapshot struct {
	SSID             string                `json:"ssid"`
	BSSID            string                `json:"bssid"`
	RSSI             int                   `json:"rssi"`
	NoiseFloor       int                   `json:"noiseFloor"`
	SNR              int                   `json:"snr"`
	Channel          string                `json:"channel"`
	Band             Band                  `json:"band"`
	Bandwidth        string                `json:"bandwidth"`
	Security         string                `json:"security"`
	TransmitRateMbps float64               `json:"transmitRateMbps"`
	ReceiveRateMbps  float64               `json:"receiveRateMbps"`
	SignalPercent    int                   `json:"signalPercent"`
	LinkQuality      string                `json:"linkQuality"`
	RadioType        string                `json:"radioType"`
	Interface        string                `json:"interface"`
	Platform         string                `json:"platform"`
	Provenance       map[string]Provenance `json:"provenance"`
	Timestamp        time.Time             `json:"timestamp"`
}

// ChannelNumber returns the channel as an integer when it is known.
func (s ConnectionSnapshot) ChannelNumber() (int, bool) {
	n, err := strconv.Atoi(s.Channel)
	if err != nil || n <= 0 {
		return 0, false
	}
	return n, true
}

// Metric keys used in MetricSample.Provenance.
const (
	MetricRSSI               = "rssi"
	MetricSNR                = "snr"
	MetricNoiseFloor         = "noiseFloor"
	MetricDataRate           = "dataRateMbps"
	MetricChannelUtilization = "channelUtilizationPercent"
	MetricRetryRate          = "retryRatePercent"
	MetricAssociationTime    = "associationTimeMs"
)

// MetricSample is the numeric view of a snapshot that scoring, alerting and
// history work from.
type MetricSample struct {
	RSSI                      int                   `json:"rssi"`
	SNR                       int                   `json:"snr"`
	NoiseFloor                int                   `json:"noiseFloor"`
	ChannelUtilizationPercent float64               `json:"channelUtilizationPercent"`
	DataRateMbps              float64               `json:"dataRateMbps"`
	RetryRatePercent          float64               `json:"retryRatePercent"`
	AssociationTimeMs         float64               `json:"associationTimeMs"`
	Provenance                map[string]Provenance `json:"provenance"`
	Timestamp                 time.Time             `json:"timestamp"`
}

// Known reports whether metric carries information. A metric with no
// provenance entry is treated as known so hand-built samples score normally.
func (m MetricSample) Known(metric string) bool {
	return m.Provenance[metric] != Unavailable
}

// NetworkEntry is one visible network from a scan.
type NetworkEntry struct {
	SSID          string  `json:"ssid"`
	BSSID         *string `json:"bssid,omitempty"`
	RSSI          *int    `json:"rssi,omitempty"`
	SignalPercent *int    `json:"signalPercent,omitempty"`
	Channel       *int    `json:"channel,omitempty"`
	Security      *string `json:"security,omitempty"`
}

// Severity of an alert.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// AlertKind separates threshold alerts from combined recommendations.
type AlertKind string

const (
	KindAlert          AlertKind = "alert"
	KindRecommendation AlertKind = "recommendation"
	KindStatus         AlertKind = "status"
)

// Alert is one entry produced by Evaluate.
type Alert struct {
	Rule     string    `json:"rule"`
	Severity Severity  `json:"severity"`
	Kind     AlertKind `json:"kind"`
	Message  string    `json:"message"`
}
