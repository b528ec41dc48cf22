package monitor

import (
	"sync"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// DefaultHistorySize is the number of samples retained when no size is configured.
const DefaultHistorySize = 20

// History keeps the most recent metric samples in a fixed-size ring buffer.
// It is safe for concurrent use; readers always receive copies.
type History struct {
	mu   sync.RWMutex
	ring *ringBuffer
}

// ringBuffer is a fixed-size circular buffer of samples.
type ringBuffer struct {
	data  []wifi.MetricSample
	head  int
	count int
	size  int
}

// NewHistory creates a history holding at most size samples.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{ring: newRingBuffer(size)}
}

// Push appends a sample, evicting the oldest one when full.
func (h *History) Push(sample wifi.MetricSample) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ring.push(sample)
}

// Samples returns every retained sample, oldest first.
func (h *History) Samples() []wifi.MetricSample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ring.getLast(h.ring.count)
}

// Last returns up to count of the most recent samples, oldest first.
func (h *History) Last(count int) []wifi.MetricSample {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ring.getLast(count)
}

// Latest returns the newest sample.
func (h *History) Latest() (wifi.MetricSample, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	last := h.ring.getLast(1)
	if len(last) == 0 {
		return wifi.MetricSample{}, false
	}
	return last[0], true
}

// Len returns the number of retained samples.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.ring.count
}

// Cap returns the maximum number of retained samples.
func (h *History) Cap() int {
	return h.ring.size
}

// Series extracts one metric across the retained samples, oldest first, for
// sparkline rendering. Samples where the metric is unavailable are skipped.
func (h *History) Series(metric string) []float64 {
	h.mu.RLock()
	defer h.mu.RUnlock()

	samples := h.ring.getLast(h.ring.count)
	out := make([]float64, 0, len(samples))
	for _, s := range samples {
		v, ok := metricValue(s, metric)
		if !ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// Clear drops all samples.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.ring = newRingBuffer(h.ring.size)
}

func metricValue(s wifi.MetricSample, metric string) (float64, bool) {
	if !s.Known(metric) {
		return 0, false
	}
	switch metric {
	case wifi.MetricRSSI:
		return float64(s.RSSI), true
	case wifi.MetricSNR:
		return float64(s.SNR), true
	case wifi.MetricNoiseFloor:
		return float64(s.NoiseFloor), true
	case wifi.MetricDataRate:
		return s.DataRateMbps, true
	case wifi.MetricChannelUtilization:
		return s.ChannelUtilizationPercent, true
	case wifi.MetricRetryRate:
		return s.RetryRatePercent, true
	case wifi.MetricAssociationTime:
		return s.AssociationTimeMs, true
	}
	return 0, false
}

func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]wifi.MetricSample, size),
		size: size,
	}
}

func (r *ringBuffer) push(sample wifi.MetricSample) {
	r.data[r.head] = sample
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count samples in chronological order.
func (r *ringBuffer) getLast(count int) []wifi.MetricSample {
	if count <= 0 || r.count == 0 {
		return nil
	}
	if count > r.count {
		count = r.count
	}

	result := make([]wifi.MetricSample, count)
	// head is the next write position, so the newest sample sits at head-1.
	start := (r.head - count + r.size) % r.size
	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}
	return result
}
