package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// scriptedCounters replays one reading per call.
type scriptedCounters struct {
	readings [][]gnet.IOCountersStat
	err      error
	calls    int
}

func (s *scriptedCounters) read(context.Context) ([]gnet.IOCountersStat, error) {
	if s.err != nil {
		return nil, s.err
	}
	i := s.calls
	if i >= len(s.readings) {
		i = len(s.readings) - 1
	}
	s.calls++
	return s.readings[i], nil
}

func nic(name string, recv, sent uint64) gnet.IOCountersStat {
	return gnet.IOCountersStat{Name: name, BytesRecv: recv, BytesSent: sent}
}

func TestThroughputMeter(t *testing.T) {
	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	src := &scriptedCounters{readings: [][]gnet.IOCountersStat{
		{nic("lo", 0, 0), nic("wlan0", 1000, 500)},
		{nic("lo", 9, 9), nic("wlan0", 5000, 1500)},
		{nic("wlan0", 100, 100)},
	}}
	m := NewThroughputMeter(src.read)

	_, ok := m.Measure(context.Background(), "wlan0", t0)
	assert.False(t, ok, "first reading only primes")

	tp, ok := m.Measure(context.Background(), "wlan0", t0.Add(2*time.Second))
	require.True(t, ok)
	assert.Equal(t, "wlan0", tp.Interface)
	assert.InDelta(t, 2000, tp.BytesInPerSec, 0.001)
	assert.InDelta(t, 500, tp.BytesOutPerSec, 0.001)

	tp, ok = m.Measure(context.Background(), "wlan0", t0.Add(4*time.Second))
	require.True(t, ok)
	assert.Zero(t, tp.BytesInPerSec, "counter reset reads as idle")
	assert.Zero(t, tp.BytesOutPerSec)
}

func TestThroughputMeterUnavailable(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name  string
		src   *scriptedCounters
		iface string
	}{
		{"no interface", &scriptedCounters{readings: [][]gnet.IOCountersStat{{nic("wlan0", 1, 1)}}}, ""},
		{"interface not reported", &scriptedCounters{readings: [][]gnet.IOCountersStat{{nic("wlan0", 1, 1)}}}, wifi.NotAvailable},
		{"missing nic", &scriptedCounters{readings: [][]gnet.IOCountersStat{{nic("eth0", 1, 1)}}}, "wlan0"},
		{"read error", &scriptedCounters{err: errors.New("no /proc")}, "wlan0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewThroughputMeter(tt.src.read)
			_, ok := m.Measure(context.Background(), tt.iface, now)
			assert.False(t, ok)
			_, ok = m.Measure(context.Background(), tt.iface, now.Add(time.Second))
			assert.False(t, ok)
		})
	}
}

func TestThroughputMeterInterfaceChange(t *testing.T) {
	now := time.Now()
	src := &scriptedCounters{readings: [][]gnet.IOCountersStat{
		{nic("wlan0", 100, 100), nic("wlan1", 100, 100)},
	}}
	m := NewThroughputMeter(src.read)

	m.Measure(context.Background(), "wlan0", now)
	_, ok := m.Measure(context.Background(), "wlan1", now.Add(time.Second))
	assert.False(t, ok, "switching interface re-primes")
	_, ok = m.Measure(context.Background(), "wlan1", now.Add(2*time.Second))
	assert.True(t, ok)
}
