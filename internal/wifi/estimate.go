package wifi

import (
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"
)

// EstimationMode decides what the Estimator does with metrics no supported OS
// tool reports (channel utilization, retry rate, association time).
type EstimationMode string

const (
	// EstimateSynthetic fills them with bounded plausible values flagged as
	// estimated.
	EstimateSynthetic EstimationMode = "synthetic"
	// EstimateUnavailable zeroes them and flags them unavailable so scoring
	// and alerting ignore them.
	EstimateUnavailable EstimationMode = "unavailable"
)

// Upper bounds for synthesized values.
const (
	MaxEstimatedUtilization   = 100.0
	MaxEstimatedRetryRate     = 20.0
	MaxEstimatedAssociationMs = 300.0
)

// ParseEstimationMode validates a mode string.
func ParseEstimationMode(s string) (EstimationMode, error) {
	switch EstimationMode(s) {
	case EstimateSynthetic, EstimateUnavailable:
		return EstimationMode(s), nil
	case "":
		return EstimateSynthetic, nil
	default:
		return "", fmt.Errorf("unknown estimation mode %q (want %q or %q)", s, EstimateSynthetic, EstimateUnavailable)
	}
}

// MeasuredMetrics carries values for the normally unmeasurable fields when
// some source does report them. Nil means not reported.
type MeasuredMetrics struct {
	ChannelUtilizationPercent *float64
	RetryRatePercent          *float64
	AssociationTimeMs         *float64
}

// Estimator turns snapshots into MetricSamples. It is safe for concurrent use.
type Estimator struct {
	mode EstimationMode

	mu  sync.Mutex
	rng *rand.Rand
}

// NewEstimator creates an estimator. A nil rng is seeded from the clock.
func NewEstimator(mode EstimationMode, rng *rand.Rand) *Estimator {
	if mode == "" {
		mode = EstimateSynthetic
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Estimator{mode: mode, rng: rng}
}

// Mode returns the configured policy.
func (e *Estimator) Mode() EstimationMode {
	return e.mode
}

// Sample builds a MetricSample from snap with nothing extra measured.
func (e *Estimator) Sample(snap ConnectionSnapshot) MetricSample {
	return e.SampleWith(snap, MeasuredMetrics{})
}

// SampleWith builds a MetricSample, preferring measured values over the
// estimation policy.
func (e *Estimator) SampleWith(snap ConnectionSnapshot, measured MeasuredMetrics) MetricSample {
	m := MetricSample{
		RSSI:       snap.RSSI,
		SNR:        snap.SNR,
		NoiseFloor: snap.NoiseFloor,
		Timestamp:  snap.Timestamp,
		Provenance: map[string]Provenance{
			MetricRSSI:       provenanceOr(snap.Provenance[SnapRSSI]),
			MetricSNR:        provenanceOr(snap.Provenance[SnapSNR]),
			MetricNoiseFloor: provenanceOr(snap.Provenance[SnapNoiseFloor]),
		},
	}

	m.DataRateMbps = snap.TransmitRateMbps
	m.Provenance[MetricDataRate] = provenanceOr(snap.Provenance[SnapTxRate])
	if m.DataRateMbps == 0 && snap.ReceiveRateMbps > 0 {
		m.DataRateMbps = snap.ReceiveRateMbps
		m.Provenance[MetricDataRate] = provenanceOr(snap.Provenance[SnapRxRate])
	}

	m.ChannelUtilizationPercent = e.fill(m.Provenance, MetricChannelUtilization, measured.ChannelUtilizationPercent, MaxEstimatedUtilization)
	m.RetryRatePercent = e.fill(m.Provenance, MetricRetryRate, measured.RetryRatePercent, MaxEstimatedRetryRate)
	m.AssociationTimeMs = e.fill(m.Provenance, MetricAssociationTime, measured.AssociationTimeMs, MaxEstimatedAssociationMs)
	return m
}

func (e *Estimator) fill(prov map[string]Provenance, key string, measured *float64, max float64) float64 {
	if measured != nil {
		prov[key] = Measured
		return *measured
	}
	if e.mode == EstimateUnavailable {
		prov[key] = Unavailable
		return 0
	}
	prov[key] = Estimated
	e.mu.Lock()
	v := e.rng.Float64() * max
	e.mu.Unlock()
	return math.Round(v*10) / 10
}

func provenanceOr(p Provenance) Provenance {
	if p == "" {
		return Measured
	}
	return p
}
