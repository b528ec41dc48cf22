package monitor

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

func sampleWithRSSI(rssi int) wifi.MetricSample {
	return wifi.MetricSample{RSSI: rssi, SNR: rssi + 95}
}

func rssis(samples []wifi.MetricSample) []int {
	out := make([]int, len(samples))
	for i, s := range samples {
		out[i] = s.RSSI
	}
	return out
}

func TestNewHistory(t *testing.T) {
	tests := []struct {
		name string
		size int
		want int
	}{
		{"explicit", 5, 5},
		{"zero uses default", 0, DefaultHistorySize},
		{"negative uses default", -3, DefaultHistorySize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(tt.size)
			assert.Equal(t, tt.want, h.Cap())
			assert.Equal(t, 0, h.Len())
			assert.Empty(t, h.Samples())
		})
	}
	assert.Equal(t, 20, DefaultHistorySize)
}

func TestHistoryEvictsOldest(t *testing.T) {
	h := NewHistory(DefaultHistorySize)
	for i := 1; i <= 21; i++ {
		h.Push(sampleWithRSSI(-i))
	}

	samples := h.Samples()
	require.Len(t, samples, 20)
	assert.Equal(t, -2, samples[0].RSSI, "first sample evicted")
	assert.Equal(t, -21, samples[19].RSSI)
	for i := 1; i < len(samples); i++ {
		assert.Greater(t, samples[i-1].RSSI, samples[i].RSSI, "order preserved")
	}
}

func TestHistoryNeverExceedsCapacity(t *testing.T) {
	h := NewHistory(3)
	for i := 0; i < 100; i++ {
		h.Push(sampleWithRSSI(-50 - i))
		assert.LessOrEqual(t, h.Len(), 3)
	}
	assert.Equal(t, []int{-147, -148, -149}, rssis(h.Samples()))
}

func TestHistoryLastAndLatest(t *testing.T) {
	h := NewHistory(4)
	_, ok := h.Latest()
	assert.False(t, ok)
	assert.Nil(t, h.Last(2))

	for _, r := range []int{-60, -61, -62} {
		h.Push(sampleWithRSSI(r))
	}

	latest, ok := h.Latest()
	require.True(t, ok)
	assert.Equal(t, -62, latest.RSSI)
	assert.Equal(t, []int{-61, -62}, rssis(h.Last(2)))
	assert.Equal(t, []int{-60, -61, -62}, rssis(h.Last(10)))
	assert.Nil(t, h.Last(0))
}

func TestHistoryReturnsCopies(t *testing.T) {
	h := NewHistory(2)
	h.Push(sampleWithRSSI(-60))

	samples := h.Samples()
	samples[0].RSSI = 0

	latest, _ := h.Latest()
	assert.Equal(t, -60, latest.RSSI)
}

func TestHistorySeries(t *testing.T) {
	h := NewHistory(5)
	h.Push(wifi.MetricSample{RSSI: -60, RetryRatePercent: 4})
	h.Push(wifi.MetricSample{
		RSSI:             -65,
		RetryRatePercent: 0,
		Provenance:       map[string]wifi.Provenance{wifi.MetricRetryRate: wifi.Unavailable},
	})
	h.Push(wifi.MetricSample{RSSI: -70, RetryRatePercent: 8})

	assert.Equal(t, []float64{-60, -65, -70}, h.Series(wifi.MetricRSSI))
	assert.Equal(t, []float64{4, 8}, h.Series(wifi.MetricRetryRate), "unavailable points skipped")
	assert.Empty(t, h.Series("bogus"))
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(3)
	h.Push(sampleWithRSSI(-60))
	h.Clear()
	assert.Equal(t, 0, h.Len())
	assert.Equal(t, 3, h.Cap())

	h.Push(sampleWithRSSI(-70))
	assert.Equal(t, []int{-70}, rssis(h.Samples()))
}

func TestHistoryConcurrentAccess(t *testing.T) {
	h := NewHistory(DefaultHistorySize)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h.Push(sampleWithRSSI(-60))
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				assert.LessOrEqual(t, len(h.Samples()), DefaultHistorySize)
				h.Series(wifi.MetricRSSI)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, DefaultHistorySize, h.Len())
}
