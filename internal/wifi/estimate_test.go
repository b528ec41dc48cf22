package wifi

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEstimatorSyntheticBounds(t *testing.T) {
	e := NewEstimator(EstimateSynthetic, rand.New(rand.NewSource(42)))
	snap := Normalize(Fields{FieldRSSI: "-60", FieldNoise: "-90", FieldTxRate: "300"}, "darwin", fixedNow)

	for i := 0; i < 200; i++ {
		m := e.Sample(snap)
		assert.GreaterOrEqual(t, m.ChannelUtilizationPercent, 0.0)
		assert.LessOrEqual(t, m.ChannelUtilizationPercent, MaxEstimatedUtilization)
		assert.GreaterOrEqual(t, m.RetryRatePercent, 0.0)
		assert.LessOrEqual(t, m.RetryRatePercent, MaxEstimatedRetryRate)
		assert.GreaterOrEqual(t, m.AssociationTimeMs, 0.0)
		assert.LessOrEqual(t, m.AssociationTimeMs, MaxEstimatedAssociationMs)

		assert.Equal(t, Estimated, m.Provenance[MetricChannelUtilization])
		assert.Equal(t, Estimated, m.Provenance[MetricRetryRate])
		assert.Equal(t, Estimated, m.Provenance[MetricAssociationTime])
	}
}

func TestEstimatorCopiesSnapshotValues(t *testing.T) {
	e := NewEstimator(EstimateSynthetic, rand.New(rand.NewSource(1)))
	snap := Normalize(Fields{FieldRSSI: "-60", FieldNoise: "-90", FieldTxRate: "300"}, "darwin", fixedNow)

	m := e.Sample(snap)
	assert.Equal(t, -60, m.RSSI)
	assert.Equal(t, 30, m.SNR)
	assert.Equal(t, -90, m.NoiseFloor)
	assert.InDelta(t, 300, m.DataRateMbps, 0.001)
	assert.Equal(t, fixedNow, m.Timestamp)
	assert.Equal(t, Measured, m.Provenance[MetricRSSI])
	assert.Equal(t, Derived, m.Provenance[MetricSNR])
}

func TestEstimatorDataRateFallsBackToReceive(t *testing.T) {
	e := NewEstimator(EstimateUnavailable, nil)
	snap := Normalize(Fields{FieldRxRate: "433"}, "windows", fixedNow)

	m := e.Sample(snap)
	assert.InDelta(t, 433, m.DataRateMbps, 0.001)
	assert.Equal(t, Measured, m.Provenance[MetricDataRate])
}

func TestEstimatorUnavailable(t *testing.T) {
	e := NewEstimator(EstimateUnavailable, nil)
	m := e.Sample(Normalize(Fields{}, "linux", fixedNow))

	assert.Zero(t, m.ChannelUtilizationPercent)
	assert.Zero(t, m.RetryRatePercent)
	assert.Zero(t, m.AssociationTimeMs)
	assert.False(t, m.Known(MetricChannelUtilization))
	assert.False(t, m.Known(MetricRetryRate))
	assert.False(t, m.Known(MetricAssociationTime))
	assert.Equal(t, Defaulted, m.Provenance[MetricRSSI])
}

func TestEstimatorPrefersMeasured(t *testing.T) {
	e := NewEstimator(EstimateSynthetic, rand.New(rand.NewSource(7)))
	util, retry := 42.0, 3.5

	m := e.SampleWith(Normalize(Fields{}, "linux", fixedNow), MeasuredMetrics{
		ChannelUtilizationPercent: &util,
		RetryRatePercent:          &retry,
	})

	assert.Equal(t, 42.0, m.ChannelUtilizationPercent)
	assert.Equal(t, Measured, m.Provenance[MetricChannelUtilization])
	assert.Equal(t, 3.5, m.RetryRatePercent)
	assert.Equal(t, Estimated, m.Provenance[MetricAssociationTime])
}

func TestParseEstimationMode(t *testing.T) {
	m, err := ParseEstimationMode("unavailable")
	require.NoError(t, err)
	assert.Equal(t, EstimateUnavailable, m)

	m, err = ParseEstimationMode("")
	require.NoError(t, err)
	assert.Equal(t, EstimateSynthetic, m)

	_, err = ParseEstimationMode("random")
	assert.Error(t, err)
}
