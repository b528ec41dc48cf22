package probe

import (
	"context"
	"errors"
	"os/exec"
	"strings"
	"time"
)

// Runner invokes an external command and returns its stdout. Implementations
// must honor ctx cancellation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs real processes. Failures come back as *ProbeError.
type ExecRunner struct {
	// Timeout bounds a single invocation on top of any deadline in ctx.
	// Zero means ctx alone decides.
	Timeout time.Duration
}

// Run executes name with args directly, without a shell.
func (r ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, name, args...)
	// Children that inherit stdout can keep Wait blocked after the kill.
	cmd.WaitDelay = 250 * time.Millisecond

	out, err := cmd.Output()
	if err != nil {
		pErr := &ProbeError{
			Command: CommandLine(name, args...),
			Reason:  categorizeRunError(ctx, err),
			Cause:   err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			pErr.Stderr = firstLine(string(exitErr.Stderr))
		}
		return out, pErr
	}
	return out, nil
}

// LookPath reports whether name resolves on PATH (or as an absolute path).
func LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// CommandLine renders a command for messages.
func CommandLine(name string, args ...string) string {
	if len(args) == 0 {
		return name
	}
	return name + " " + strings.Join(args, " ")
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
