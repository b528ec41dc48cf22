package probe

import (
	"context"
	"os/exec"
	"sync"
)

// fakeRunner answers commands from canned output keyed by command name.
// Unknown commands fail the way a missing binary does.
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     [][]string
}

type fakeResponse struct {
	out   string
	err   error
	block bool
	panic bool
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]fakeResponse)}
}

func (f *fakeRunner) on(name, out string) *fakeRunner {
	f.responses[name] = fakeResponse{out: out}
	return f
}

func (f *fakeRunner) fail(name string, err error) *fakeRunner {
	f.responses[name] = fakeResponse{err: err}
	return f
}

func (f *fakeRunner) hang(name string) *fakeRunner {
	f.responses[name] = fakeResponse{block: true}
	return f
}

func (f *fakeRunner) explode(name string) *fakeRunner {
	f.responses[name] = fakeResponse{panic: true}
	return f
}

func (f *fakeRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, append([]string{name}, args...))
	resp, ok := f.responses[name]
	f.mu.Unlock()

	if !ok {
		return nil, &ProbeError{
			Command: CommandLine(name, args...),
			Reason:  ProbeFailNotFound,
			Cause:   exec.ErrNotFound,
		}
	}
	if resp.panic {
		panic("parser exploded")
	}
	if resp.block {
		<-ctx.Done()
		return nil, &ProbeError{
			Command: CommandLine(name, args...),
			Reason:  ProbeFailTimeout,
			Cause:   ctx.Err(),
		}
	}
	if resp.err != nil {
		return nil, resp.err
	}
	return []byte(resp.out), nil
}

func (f *fakeRunner) commands() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	names := make([]string, len(f.calls))
	for i, c := range f.calls {
		names[i] = c[0]
	}
	return names
}

func (f *fakeRunner) lastArgs(name string) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i][0] == name {
			return f.calls[i][1:]
		}
	}
	return nil
}
