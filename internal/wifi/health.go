package wifi

// Threshold values shared by the health score and the alert rules.
const (
	RSSIWeak      = -75
	RSSIFair      = -70
	SNRCritical   = 20
	SNRLow        = 25
	UtilHigh      = 70.0
	UtilCongested = 60.0
	RetryHigh     = 15.0
	RetryElevated = 10.0
	AssocSlowMs   = 300.0
)

// Grade buckets a health score for display.
type Grade string

const (
	GradeExcellent Grade = "excellent"
	GradeGood      Grade = "good"
	GradeFair      Grade = "fair"
	GradePoor      Grade = "poor"
)

// Score computes the 0..100 link health for one sample. Each metric deducts
// independently and at most once; unavailable metrics deduct nothing.
func Score(m MetricSample) int {
	score := 100

	if m.Known(MetricRSSI) {
		switch {
		case m.RSSI <= RSSIWeak:
			score -= 20
		case m.RSSI <= RSSIFair:
			score -= 10
		}
	}

	if m.Known(MetricSNR) {
		switch {
		case m.SNR < SNRCritical:
			score -= 25
		case m.SNR < SNRLow:
			score -= 10
		}
	}

	if m.Known(MetricChannelUtilization) {
		switch {
		case m.ChannelUtilizationPercent > UtilHigh:
			score -= 20
		case m.ChannelUtilizationPercent > UtilCongested:
			score -= 10
		}
	}

	if m.Known(MetricRetryRate) {
		switch {
		case m.RetryRatePercent > RetryHigh:
			score -= 15
		case m.RetryRatePercent > RetryElevated:
			score -= 8
		}
	}

	if m.Known(MetricAssociationTime) && m.AssociationTimeMs > AssocSlowMs {
		score -= 10
	}

	if score < 0 {
		score = 0
	}
	return score
}

// GradeFor maps a score to its grade.
func GradeFor(score int) Grade {
	switch {
	case score >= 80:
		return GradeExcellent
	case score >= 60:
		return GradeGood
	case score >= 40:
		return GradeFair
	default:
		return GradePoor
	}
}
