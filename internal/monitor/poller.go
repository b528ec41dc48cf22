package monitor

import (
	"context"
	"sync"
	"time"

	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// DefaultInterval is the poll period when none is configured.
const DefaultInterval = 2 * time.Second

// Acquirer produces connection snapshots. *probe.Service implements it.
type Acquirer interface {
	GetConnectionMetrics(ctx context.Context) probe.Response[*wifi.ConnectionSnapshot]
}

// LinkStatus is the poller's view of the wireless link.
type LinkStatus string

const (
	LinkConnecting   LinkStatus = "connecting"
	LinkConnected    LinkStatus = "connected"
	LinkDisconnected LinkStatus = "disconnected"
	LinkError        LinkStatus = "error"
)

// State is what the poller publishes after every tick. After a failed tick
// the previous snapshot, sample, score and alerts are kept and Stale reports
// true.
type State struct {
	Status      LinkStatus               `json:"status"`
	Snapshot    *wifi.ConnectionSnapshot `json:"snapshot,omitempty"`
	Sample      *wifi.MetricSample       `json:"sample,omitempty"`
	Score       int                      `json:"score"`
	Grade       wifi.Grade               `json:"grade,omitempty"`
	Alerts      []wifi.Alert             `json:"alerts"`
	History     []wifi.MetricSample      `json:"history"`
	Throughput  *Throughput              `json:"throughput,omitempty"`
	LastError   string                   `json:"lastError,omitempty"`
	ErrorCode   string                   `json:"errorCode,omitempty"`
	UpdatedAt   time.Time                `json:"updatedAt"`
	LastSuccess time.Time                `json:"lastSuccess"`
	Ticks       int                      `json:"ticks"`
}

// Stale reports whether the data in s predates the latest tick.
func (s State) Stale() bool {
	return s.Snapshot != nil && s.LastSuccess.Before(s.UpdatedAt)
}

// PollerOptions configure a Poller.
type PollerOptions struct {
	Interval    time.Duration
	HistorySize int
	// Estimator fills the metrics no OS tool reports; defaults to synthetic.
	Estimator *wifi.Estimator
	// Meter, when set, adds interface throughput to each successful tick.
	Meter  *ThroughputMeter
	Logger logger.Logger
	Now    func() time.Time
}

// Poller samples the connection on a fixed interval and keeps the rolling
// history. Only one acquisition is ever in flight; ticks that arrive while
// one is running are dropped.
type Poller struct {
	acq       Acquirer
	interval  time.Duration
	estimator *wifi.Estimator
	meter     *ThroughputMeter
	history   *History
	log       logger.Logger
	now       func() time.Time
	refresh   chan struct{}

	// tickMu serializes Tick so manual refreshes never overlap the loop.
	tickMu sync.Mutex

	mu    sync.RWMutex
	state State
	subs  map[<-chan State]chan State
}

// NewPoller creates a poller around acq.
func NewPoller(acq Acquirer, opts PollerOptions) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.Estimator == nil {
		opts.Estimator = wifi.NewEstimator(wifi.EstimateSynthetic, nil)
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Poller{
		acq:       acq,
		interval:  opts.Interval,
		estimator: opts.Estimator,
		meter:     opts.Meter,
		history:   NewHistory(opts.HistorySize),
		log:       opts.Logger,
		now:       opts.Now,
		refresh:   make(chan struct{}, 1),
		state:     State{Status: LinkConnecting, Alerts: []wifi.Alert{}, History: []wifi.MetricSample{}},
		subs:      make(map[<-chan State]chan State),
	}
}

// Interval returns the poll period.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// History exposes the rolling sample buffer.
func (p *Poller) History() *History {
	return p.history
}

// Run polls immediately and then on every interval until ctx is cancelled.
func (p *Poller) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.Tick(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		case <-p.refresh:
		}
		if ctx.Err() != nil {
			return
		}
		p.Tick(ctx)
		// A tick that fired while we were busy is stale; drop it.
		select {
		case <-ticker.C:
		default:
		}
	}
}

// Refresh asks a running loop to poll now. Extra requests coalesce.
func (p *Poller) Refresh() {
	select {
	case p.refresh <- struct{}{}:
	default:
	}
}

// Tick runs one acquisition and publishes the resulting state.
func (p *Poller) Tick(ctx context.Context) State {
	p.tickMu.Lock()
	defer p.tickMu.Unlock()

	resp := p.acq.GetConnectionMetrics(ctx)
	now := p.now()

	p.mu.RLock()
	next := p.state
	p.mu.RUnlock()

	next.UpdatedAt = now
	next.Ticks++

	if resp.Success && resp.Data != nil {
		sample := p.estimator.Sample(*resp.Data)
		p.history.Push(sample)
		score := wifi.Score(sample)

		next.Status = LinkConnected
		next.Snapshot = resp.Data
		next.Sample = &sample
		next.Score = score
		next.Grade = wifi.GradeFor(score)
		next.Alerts = wifi.Evaluate(sample)
		next.LastError = ""
		next.ErrorCode = ""
		next.LastSuccess = now
		next.Throughput = nil
		if p.meter != nil {
			if tp, ok := p.meter.Measure(ctx, resp.Data.Interface, now); ok {
				next.Throughput = &tp
			}
		}
		p.log.Debug("tick: %s rssi=%d snr=%d score=%d", resp.Data.SSID, sample.RSSI, sample.SNR, score)
	} else {
		next.Status = LinkError
		if resp.Code == probe.CodeNotConnected {
			next.Status = LinkDisconnected
		}
		next.LastError = resp.Error
		next.ErrorCode = resp.Code
		p.log.Debug("tick failed: %s", resp.Error)
	}
	next.History = p.history.Samples()
	if next.History == nil {
		next.History = []wifi.MetricSample{}
	}

	p.publish(next)
	return next
}

// Latest returns the most recently published state.
func (p *Poller) Latest() State {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// Subscribe returns a channel that receives published states. A subscriber
// that falls behind skips intermediate states and reads the newest one; the
// loop never blocks on it.
func (p *Poller) Subscribe() <-chan State {
	ch := make(chan State, 1)
	p.mu.Lock()
	p.subs[ch] = ch
	p.mu.Unlock()
	return ch
}

// Unsubscribe stops delivery to ch and closes it.
func (p *Poller) Unsubscribe(ch <-chan State) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if send, ok := p.subs[ch]; ok {
		delete(p.subs, ch)
		close(send)
	}
}

func (p *Poller) publish(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if s.Status != p.state.Status {
		switch s.Status {
		case LinkConnected:
			p.log.Info("link %s", s.Status)
		default:
			p.log.Warn("link %s: %s", s.Status, s.LastError)
		}
	}
	p.state = s

	// A subscriber that has not read yet gets its stale state replaced.
	for _, ch := range p.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- s:
		default:
		}
	}
}
