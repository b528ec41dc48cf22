package wifi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ruleIDs(alerts []Alert) []string {
	ids := make([]string, len(alerts))
	for i, a := range alerts {
		ids[i] = a.Rule
	}
	return ids
}

func TestEvaluateWorstCase(t *testing.T) {
	m := MetricSample{
		RSSI:                      -80,
		SNR:                       18,
		ChannelUtilizationPercent: 75,
		RetryRatePercent:          20,
		AssociationTimeMs:         350,
	}

	alerts := Evaluate(m)
	ids := ruleIDs(alerts)

	for _, id := range []string{RuleWeakSignal, RuleCriticalSNR, RuleCongestedChannel, RuleHighRetry, RuleSlowAssociation} {
		assert.Contains(t, ids, id)
	}
	assert.Contains(t, ids, RuleRetryCongestion)
	assert.NotContains(t, ids, RuleNormal)

	var kinds = map[AlertKind]int{}
	for _, a := range alerts {
		kinds[a.Kind]++
	}
	assert.Equal(t, 5, kinds[KindAlert])
}

func TestEvaluateSingleRules(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*MetricSample)
		want     []string
		severity Severity
	}{
		{"weak signal", func(m *MetricSample) { m.RSSI = -76 }, []string{RuleWeakSignal}, SeverityWarning},
		{"critical snr", func(m *MetricSample) { m.SNR = 19 }, []string{RuleCriticalSNR}, SeverityError},
		{"congested", func(m *MetricSample) { m.ChannelUtilizationPercent = 61 }, []string{RuleCongestedChannel}, SeverityWarning},
		{"high retry", func(m *MetricSample) { m.RetryRatePercent = 16 }, []string{RuleHighRetry}, SeverityError},
		{"slow association", func(m *MetricSample) { m.AssociationTimeMs = 301 }, []string{RuleSlowAssociation}, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := healthySample()
			tt.mutate(&m)
			alerts := Evaluate(m)
			require.Len(t, alerts, 1)
			assert.Equal(t, tt.want, ruleIDs(alerts))
			assert.Equal(t, tt.severity, alerts[0].Severity)
			assert.Equal(t, KindAlert, alerts[0].Kind)
		})
	}
}

func TestEvaluateCombinations(t *testing.T) {
	m := healthySample()
	m.RetryRatePercent = 16
	m.ChannelUtilizationPercent = 65

	assert.Equal(t, []string{RuleCongestedChannel, RuleHighRetry, RuleRetryCongestion}, ruleIDs(Evaluate(m)))

	m = healthySample()
	m.RSSI = -80
	m.SNR = 15
	assert.Equal(t, []string{RuleWeakSignal, RuleCriticalSNR, RuleWeakNoisyLink}, ruleIDs(Evaluate(m)))

	m = healthySample()
	m.RSSI = -80
	m.AssociationTimeMs = 400
	assert.Equal(t, []string{RuleWeakSignal, RuleSlowAssociation, RuleWeakSlowRoaming}, ruleIDs(Evaluate(m)))
}

func TestEvaluateNormal(t *testing.T) {
	alerts := Evaluate(healthySample())
	require.Len(t, alerts, 1)
	assert.Equal(t, RuleNormal, alerts[0].Rule)
	assert.Equal(t, SeverityInfo, alerts[0].Severity)
	assert.Equal(t, "operating within normal parameters", alerts[0].Message)
}

func TestEvaluateIsDeterministicAndStateless(t *testing.T) {
	bad := MetricSample{RSSI: -90, SNR: 5, ChannelUtilizationPercent: 90, RetryRatePercent: 30, AssociationTimeMs: 900}

	first := Evaluate(bad)
	second := Evaluate(bad)
	assert.Equal(t, first, second)

	// A bad tick must not leak into the next good one.
	after := Evaluate(healthySample())
	assert.Equal(t, []string{RuleNormal}, ruleIDs(after))
}

func TestEvaluateSkipsUnavailable(t *testing.T) {
	m := healthySample()
	m.RetryRatePercent = 0
	m.ChannelUtilizationPercent = 0
	m.AssociationTimeMs = 0
	m.Provenance = map[string]Provenance{
		MetricChannelUtilization: Unavailable,
		MetricRetryRate:          Unavailable,
		MetricAssociationTime:    Unavailable,
	}
	assert.Equal(t, []string{RuleNormal}, ruleIDs(Evaluate(m)))
}

func TestHighestSeverity(t *testing.T) {
	assert.Equal(t, SeverityInfo, HighestSeverity(nil))
	assert.Equal(t, SeverityWarning, HighestSeverity([]Alert{{Severity: SeverityInfo}, {Severity: SeverityWarning}}))
	assert.Equal(t, SeverityError, HighestSeverity([]Alert{{Severity: SeverityWarning}, {Severity: SeverityError}}))
}
