package probe

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Default time budgets. A connection read must fit inside one poll tick; a
// scan may trigger a radio rescan and gets longer.
const (
	DefaultTimeout     = 1500 * time.Millisecond
	DefaultScanTimeout = 10 * time.Second
)

// Machine-readable failure codes carried in Response.Code.
const (
	CodeUnsupportedPlatform = "UNSUPPORTED_PLATFORM"
	CodeToolNotFound        = "TOOL_NOT_FOUND"
	CodePermissionDenied    = "PERMISSION_DENIED"
	CodeCommandFailed       = "COMMAND_FAILED"
	CodeTimeout             = "TIMEOUT"
	CodeNotConnected        = "NOT_CONNECTED"
	CodeParseFailed         = "PARSE_FAILED"
	CodeUnknown             = "UNKNOWN"
)

// Response is the envelope both boundary operations return. Err keeps the
// original error for in-process callers and is never serialized.
type Response[T any] struct {
	Success bool   `json:"success"`
	Data    T      `json:"data"`
	Error   string `json:"error,omitempty"`
	Code    string `json:"code,omitempty"`
	Err     error  `json:"-"`
}

func failure[T any](err error) Response[T] {
	return Response[T]{
		Success: false,
		Error:   err.Error(),
		Code:    ErrorCode(err),
		Err:     err,
	}
}

// ErrorCode maps an acquisition error to its machine-readable code.
func ErrorCode(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, wifi.ErrNotConnected) {
		return CodeNotConnected
	}
	if errors.Is(err, ErrUnreadableOutput) {
		return CodeParseFailed
	}
	switch ReasonOf(err) {
	case ProbeFailUnsupportedPlatform:
		return CodeUnsupportedPlatform
	case ProbeFailNotFound:
		return CodeToolNotFound
	case ProbeFailPermissionDenied:
		return CodePermissionDenied
	case ProbeFailNonZeroExit:
		return CodeCommandFailed
	case ProbeFailTimeout:
		return CodeTimeout
	}
	return CodeUnknown
}

// ServiceOptions configure a Service.
type ServiceOptions struct {
	// Timeout bounds one GetConnectionMetrics call including fallbacks and
	// time spent waiting for a running scan.
	Timeout time.Duration
	// ScanTimeout bounds one ScanNetworks call.
	ScanTimeout time.Duration
	Logger      logger.Logger
	// Now stamps snapshots; defaults to time.Now.
	Now func() time.Time
}

// Service is the boundary the presentation layer talks to. Every OS tool
// invocation goes through one slot, so a scan and a poll never run against
// the radio at the same time.
type Service struct {
	probe       Probe
	timeout     time.Duration
	scanTimeout time.Duration
	log         logger.Logger
	now         func() time.Time
	slot        chan struct{}
}

// NewService wraps an already selected probe.
func NewService(p Probe, opts ServiceOptions) *Service {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.ScanTimeout <= 0 {
		opts.ScanTimeout = DefaultScanTimeout
	}
	if opts.Logger == nil {
		opts.Logger = logger.Noop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		probe:       p,
		timeout:     opts.Timeout,
		scanTimeout: opts.ScanTimeout,
		log:         opts.Logger,
		now:         opts.Now,
		slot:        make(chan struct{}, 1),
	}
}

// NewLocalService detects the running platform once and builds the matching
// probe around real processes.
func NewLocalService(iface string, opts ServiceOptions) *Service {
	p := New(DetectPlatform(), ExecRunner{}, Options{Interface: iface, Logger: opts.Logger})
	return NewService(p, opts)
}

// Platform returns the platform the service was built for.
func (s *Service) Platform() Platform {
	return s.probe.Platform()
}

// Tools lists the commands the underlying probe may invoke.
func (s *Service) Tools() []Tool {
	return s.probe.Tools()
}

func (s *Service) acquire(ctx context.Context) error {
	select {
	case s.slot <- struct{}{}:
		return nil
	case <-ctx.Done():
		return &ProbeError{
			Platform: s.probe.Platform(),
			Command:  "waiting for another wireless tool to finish",
			Reason:   ProbeFailTimeout,
			Cause:    ctx.Err(),
		}
	}
}

func (s *Service) release() {
	<-s.slot
}

// GetConnectionMetrics reads and normalizes the current association. It
// never panics and never returns a partial snapshot: Data is nil whenever
// Success is false.
func (s *Service) GetConnectionMetrics(ctx context.Context) (resp Response[*wifi.ConnectionSnapshot]) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("connection probe panicked: %v", r)
			s.log.Error("%v", err)
			resp = failure[*wifi.ConnectionSnapshot](err)
		}
	}()

	if err := s.acquire(ctx); err != nil {
		return failure[*wifi.ConnectionSnapshot](err)
	}
	defer s.release()

	fields, err := s.probe.Connection(ctx)
	if err != nil {
		s.log.Debug("connection probe failed: %v", err)
		return failure[*wifi.ConnectionSnapshot](err)
	}

	snap := wifi.Normalize(fields, string(s.probe.Platform()), s.now())
	return Response[*wifi.ConnectionSnapshot]{Success: true, Data: &snap}
}

// ScanNetworks lists visible networks strongest first. A failing scan is
// reported as success with an empty list so callers can show "no networks
// found"; the cause is logged and kept in Err.
func (s *Service) ScanNetworks(ctx context.Context) (resp Response[[]wifi.NetworkEntry]) {
	resp = Response[[]wifi.NetworkEntry]{Success: true, Data: []wifi.NetworkEntry{}}

	ctx, cancel := context.WithTimeout(ctx, s.scanTimeout)
	defer cancel()
	defer func() {
		if r := recover(); r != nil {
			err := fmt.Errorf("scan probe panicked: %v", r)
			s.log.Error("%v", err)
			resp = Response[[]wifi.NetworkEntry]{Success: true, Data: []wifi.NetworkEntry{}, Err: err}
		}
	}()

	if err := s.acquire(ctx); err != nil {
		s.log.Warn("network scan skipped: %v", err)
		resp.Err = err
		return resp
	}
	defer s.release()

	networks, err := s.probe.Scan(ctx)
	if err != nil {
		s.log.Warn("network scan failed: %v", err)
		resp.Err = err
		return resp
	}

	resp.Data = SortNetworks(networks)
	return resp
}

// SortNetworks drops duplicate BSSIDs, keeping the strongest reading, and
// orders the result by RSSI descending. Entries without RSSI go last. The
// input slice is not modified.
func SortNetworks(networks []wifi.NetworkEntry) []wifi.NetworkEntry {
	out := make([]wifi.NetworkEntry, 0, len(networks))
	seen := make(map[string]int, len(networks))

	for _, n := range networks {
		if n.BSSID != nil {
			if i, ok := seen[*n.BSSID]; ok {
				if rssiOf(n) > rssiOf(out[i]) {
					out[i] = n
				}
				continue
			}
			seen[*n.BSSID] = len(out)
		}
		out = append(out, n)
	}

	sort.SliceStable(out, func(i, j int) bool {
		return rssiOf(out[i]) > rssiOf(out[j])
	})
	return out
}

func rssiOf(n wifi.NetworkEntry) int {
	if n.RSSI == nil {
		return -1 << 31
	}
	return *n.RSSI
}
