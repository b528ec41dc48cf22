package monitor

import (
	"context"
	"sync"
	"time"

	gnet "github.com/shirou/gopsutil/v3/net"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Throughput is the observed traffic rate on the wireless interface.
type Throughput struct {
	Interface      string  `json:"interface"`
	BytesInPerSec  float64 `json:"bytesInPerSec"`
	BytesOutPerSec float64 `json:"bytesOutPerSec"`
}

// CounterReader returns per-interface byte counters.
type CounterReader func(ctx context.Context) ([]gnet.IOCountersStat, error)

// HostCounters reads the local interface counters.
func HostCounters(ctx context.Context) ([]gnet.IOCountersStat, error) {
	return gnet.IOCountersWithContext(ctx, true)
}

// ThroughputMeter turns successive counter readings into rates.
type ThroughputMeter struct {
	read CounterReader

	mu     sync.Mutex
	prev   gnet.IOCountersStat
	prevAt time.Time
	have   bool
}

// NewThroughputMeter creates a meter. A nil reader uses HostCounters.
func NewThroughputMeter(read CounterReader) *ThroughputMeter {
	if read == nil {
		read = HostCounters
	}
	return &ThroughputMeter{read: read}
}

// Measure reads iface's counters and returns the rate since the previous
// reading. The first reading, and any reading after the interface changed,
// only primes the meter.
func (t *ThroughputMeter) Measure(ctx context.Context, iface string, now time.Time) (Throughput, bool) {
	if iface == "" || iface == wifi.NotAvailable {
		return Throughput{}, false
	}

	stats, err := t.read(ctx)
	if err != nil {
		return Throughput{}, false
	}

	var cur gnet.IOCountersStat
	found := false
	for _, s := range stats {
		if s.Name == iface {
			cur, found = s, true
			break
		}
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if !found {
		t.have = false
		return Throughput{}, false
	}

	prev, prevAt, had := t.prev, t.prevAt, t.have && t.prev.Name == iface
	t.prev, t.prevAt, t.have = cur, now, true
	if !had {
		return Throughput{}, false
	}

	elapsed := now.Sub(prevAt).Seconds()
	if elapsed <= 0 {
		return Throughput{}, false
	}
	return Throughput{
		Interface:      iface,
		BytesInPerSec:  counterDelta(prev.BytesRecv, cur.BytesRecv) / elapsed,
		BytesOutPerSec: counterDelta(prev.BytesSent, cur.BytesSent) / elapsed,
	}, true
}

// counterDelta treats a counter that went backwards (wrap or reset) as idle.
func counterDelta(prev, cur uint64) float64 {
	if cur < prev {
		return 0
	}
	return float64(cur - prev)
}
