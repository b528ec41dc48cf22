package wifi

// Rule is one entry in the alert rule list. Match must be a pure function of
// the sample.
type Rule struct {
	ID       string
	Severity Severity
	Kind     AlertKind
	Message  string
	Match    func(MetricSample) bool
}

// Rule IDs.
const (
	RuleWeakSignal       = "weak-signal"
	RuleCriticalSNR      = "critical-snr"
	RuleCongestedChannel = "congested-channel"
	RuleHighRetry        = "high-retry"
	RuleSlowAssociation  = "slow-association"
	RuleRetryCongestion  = "retry-congestion"
	RuleWeakNoisyLink    = "weak-noisy-link"
	RuleWeakSlowRoaming  = "weak-slow-roaming"
	RuleNormal           = "normal"
)

func weakSignal(m MetricSample) bool {
	return m.Known(MetricRSSI) && m.RSSI < RSSIWeak
}

func criticalSNR(m MetricSample) bool {
	return m.Known(MetricSNR) && m.SNR < SNRCritical
}

func congested(m MetricSample) bool {
	return m.Known(MetricChannelUtilization) && m.ChannelUtilizationPercent > UtilCongested
}

func highRetry(m MetricSample) bool {
	return m.Known(MetricRetryRate) && m.RetryRatePercent > RetryHigh
}

func slowAssociation(m MetricSample) bool {
	return m.Known(MetricAssociationTime) && m.AssociationTimeMs > AssocSlowMs
}

// Rules is evaluated in order; every matching rule contributes one alert.
var Rules = []Rule{
	{RuleWeakSignal, SeverityWarning, KindAlert, "weak signal (low RSSI)", weakSignal},
	{RuleCriticalSNR, SeverityError, KindAlert, "critical SNR — excess noise", criticalSNR},
	{RuleCongestedChannel, SeverityWarning, KindAlert, "congested channel — consider more access points", congested},
	{RuleHighRetry, SeverityError, KindAlert, "high retry rate — check interference", highRetry},
	{RuleSlowAssociation, SeverityWarning, KindAlert, "slow association — check band-steering", slowAssociation},
	{
		RuleRetryCongestion, SeverityWarning, KindRecommendation,
		"retries are high on a busy channel: move to a less crowded channel or add access points",
		func(m MetricSample) bool { return highRetry(m) && congested(m) },
	},
	{
		RuleWeakNoisyLink, SeverityWarning, KindRecommendation,
		"weak and noisy link: move closer to the access point or remove interference sources",
		func(m MetricSample) bool { return weakSignal(m) && criticalSNR(m) },
	},
	{
		RuleWeakSlowRoaming, SeverityInfo, KindRecommendation,
		"slow joins on a weak signal: enable band steering or 802.11k/v/r roaming assistance",
		func(m MetricSample) bool { return weakSignal(m) && slowAssociation(m) },
	},
}

var normalAlert = Alert{
	Rule:     RuleNormal,
	Severity: SeverityInfo,
	Kind:     KindStatus,
	Message:  "operating within normal parameters",
}

// Evaluate runs Rules against m. The result depends only on m; when nothing
// matches it holds a single informational status entry.
func Evaluate(m MetricSample) []Alert {
	return EvaluateRules(Rules, m)
}

// EvaluateRules is Evaluate with a caller-supplied rule list.
func EvaluateRules(rules []Rule, m MetricSample) []Alert {
	var alerts []Alert
	for _, r := range rules {
		if r.Match(m) {
			alerts = append(alerts, Alert{
				Rule:     r.ID,
				Severity: r.Severity,
				Kind:     r.Kind,
				Message:  r.Message,
			})
		}
	}
	if len(alerts) == 0 {
		return []Alert{normalAlert}
	}
	return alerts
}

// HighestSeverity returns the most severe level present in alerts.
func HighestSeverity(alerts []Alert) Severity {
	worst := SeverityInfo
	for _, a := range alerts {
		switch a.Severity {
		case SeverityError:
			return SeverityError
		case SeverityWarning:
			worst = SeverityWarning
		}
	}
	return worst
}
