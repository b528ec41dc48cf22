package probe

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os/exec"
	"strings"
)

// ErrUnreadableOutput marks tool output that ran fine but could not be parsed.
var ErrUnreadableOutput = errors.New("unreadable tool output")

// ProbeFailReason categorizes why an OS tool invocation failed.
type ProbeFailReason int

const (
	ProbeFailUnknown ProbeFailReason = iota
	ProbeFailNotFound
	ProbeFailPermissionDenied
	ProbeFailNonZeroExit
	ProbeFailUnsupportedPlatform
	ProbeFailTimeout
)

// String returns a human-readable description of the failure reason.
func (r ProbeFailReason) String() string {
	switch r {
	case ProbeFailNotFound:
		return "command not found"
	case ProbeFailPermissionDenied:
		return "permission denied"
	case ProbeFailNonZeroExit:
		return "command failed"
	case ProbeFailUnsupportedPlatform:
		return "unsupported platform"
	case ProbeFailTimeout:
		return "command timed out"
	default:
		return "unknown error"
	}
}

// ProbeError is a failed tool invocation with a categorized reason.
type ProbeError struct {
	Platform Platform
	Command  string
	Reason   ProbeFailReason
	Stderr   string
	Cause    error
}

func (e *ProbeError) Error() string {
	subject := e.Command
	if subject == "" {
		subject = string(e.Platform)
	}
	msg := fmt.Sprintf("%s: %s", subject, e.Reason)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	if e.Cause != nil {
		msg += fmt.Sprintf(" (%v)", e.Cause)
	}
	return msg
}

func (e *ProbeError) Unwrap() error {
	return e.Cause
}

// ReasonOf extracts the failure reason from err, or ProbeFailUnknown.
func ReasonOf(err error) ProbeFailReason {
	var pErr *ProbeError
	if errors.As(err, &pErr) {
		return pErr.Reason
	}
	return ProbeFailUnknown
}

// IsReason reports whether err is a ProbeError with the given reason.
func IsReason(err error, reason ProbeFailReason) bool {
	var pErr *ProbeError
	return errors.As(err, &pErr) && pErr.Reason == reason
}

// ErrUnsupportedPlatform builds the error every operation returns on a
// platform without wireless tooling support.
func ErrUnsupportedPlatform(p Platform) *ProbeError {
	return &ProbeError{Platform: p, Reason: ProbeFailUnsupportedPlatform}
}

// categorizeRunError classifies an exec failure. ctx is the context the
// command ran under so a kill caused by the deadline reads as a timeout.
func categorizeRunError(ctx context.Context, err error) ProbeFailReason {
	if ctx.Err() != nil || errors.Is(err, context.DeadlineExceeded) {
		return ProbeFailTimeout
	}
	if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
		return ProbeFailNotFound
	}
	if errors.Is(err, fs.ErrPermission) {
		return ProbeFailPermissionDenied
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		switch exitErr.ExitCode() {
		case 126:
			return ProbeFailPermissionDenied
		case 127:
			return ProbeFailNotFound
		}
		if strings.Contains(strings.ToLower(string(exitErr.Stderr)), "permission denied") {
			return ProbeFailPermissionDenied
		}
		return ProbeFailNonZeroExit
	}
	return ProbeFailUnknown
}
