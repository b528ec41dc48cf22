package cli

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Machine mode flag - when true, outputs JSON and suppresses human-friendly decorations
var machineMode bool

// MachineMode returns true if machine-readable output is enabled
func MachineMode() bool {
	return machineMode
}

// JSONEnvelope wraps command output in a consistent structure for machine parsing.
// All --json output should use this envelope.
type JSONEnvelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   *JSONError  `json:"error,omitempty"`
}

// JSONError provides structured error information for machine parsing.
type JSONError struct {
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Suggestion string      `json:"suggestion,omitempty"`
	Details    interface{} `json:"details,omitempty"`
}

// Error codes for machine-readable output. The acquisition codes are the
// ones probe.Response carries.
const (
	ErrCodeConfigNotFound      = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid       = "CONFIG_INVALID"
	ErrCodeUnsupportedPlatform = probe.CodeUnsupportedPlatform
	ErrCodeToolNotFound        = probe.CodeToolNotFound
	ErrCodePermissionDenied    = probe.CodePermissionDenied
	ErrCodeCommandFailed       = probe.CodeCommandFailed
	ErrCodeTimeout             = probe.CodeTimeout
	ErrCodeNotConnected        = probe.CodeNotConnected
	ErrCodeParseFailed         = probe.CodeParseFailed
	ErrCodeUnknown             = probe.CodeUnknown
)

// WriteJSONSuccess writes a successful response with data to the writer.
func WriteJSONSuccess(w io.Writer, data interface{}) error {
	env := JSONEnvelope{
		Success: true,
		Data:    data,
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONError writes an error response to the writer.
func WriteJSONError(w io.Writer, code, message, suggestion string, details interface{}) error {
	env := JSONEnvelope{
		Success: false,
		Error: &JSONError{
			Code:       code,
			Message:    message,
			Suggestion: suggestion,
			Details:    details,
		},
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONFromError converts a Go error to a JSON error response.
func WriteJSONFromError(w io.Writer, err error) error {
	env := JSONEnvelope{
		Success: false,
		Error:   ErrorToJSON(err),
	}
	return writeJSONEnvelope(w, env)
}

// WriteJSONResponse writes an acquisition response as an envelope. A failed
// response carries its code and a suggestion for that code.
func WriteJSONResponse[T any](w io.Writer, resp probe.Response[T]) error {
	if resp.Success {
		return WriteJSONSuccess(w, resp.Data)
	}
	return WriteJSONError(w, resp.Code, resp.Error, suggestionFor(resp.Code), nil)
}

// writeJSONEnvelope writes the envelope with consistent formatting.
func writeJSONEnvelope(w io.Writer, env JSONEnvelope) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// ErrorToJSON converts a Go error to a JSONError with appropriate code mapping.
func ErrorToJSON(err error) *JSONError {
	if err == nil {
		return nil
	}

	// Check if it's our structured error type
	if wErr, ok := err.(*errors.Error); ok {
		code := mapErrorCode(wErr.Code, wErr.Message)
		if wErr.Cause != nil {
			if c := probe.ErrorCode(wErr.Cause); c != ErrCodeUnknown {
				code = c
			}
		}
		jErr := &JSONError{
			Code:       code,
			Message:    wErr.Message,
			Suggestion: wErr.Suggestion,
		}
		if wErr.Cause != nil {
			jErr.Details = map[string]interface{}{"cause": wErr.Cause.Error()}
		}
		return jErr
	}

	var probeErr *probe.ProbeError
	if stderrors.As(err, &probeErr) {
		return probeErrorToJSON(probeErr)
	}

	if stderrors.Is(err, wifi.ErrNotConnected) {
		return &JSONError{
			Code:       ErrCodeNotConnected,
			Message:    err.Error(),
			Suggestion: suggestionFor(ErrCodeNotConnected),
		}
	}

	// Generic error
	return &JSONError{
		Code:    ErrCodeUnknown,
		Message: err.Error(),
	}
}

// mapErrorCode maps internal error codes to machine-readable codes.
func mapErrorCode(internalCode, message string) string {
	switch internalCode {
	case errors.ErrConfig:
		// Distinguish between not found and invalid
		msgLower := strings.ToLower(message)
		if strings.Contains(msgLower, "not found") {
			return ErrCodeConfigNotFound
		}
		return ErrCodeConfigInvalid
	case errors.ErrPlatform:
		return ErrCodeUnsupportedPlatform
	case errors.ErrProbe, errors.ErrExec:
		return ErrCodeCommandFailed
	case errors.ErrParse:
		return ErrCodeParseFailed
	}

	return ErrCodeUnknown
}

// probeErrorToJSON converts a probe error to JSON with the tool details.
func probeErrorToJSON(probeErr *probe.ProbeError) *JSONError {
	code := probe.ErrorCode(probeErr)
	details := map[string]interface{}{
		"reason":   probeErr.Reason.String(),
		"platform": string(probeErr.Platform),
	}
	if probeErr.Command != "" {
		details["command"] = probeErr.Command
	}

	return &JSONError{
		Code:       code,
		Message:    probeErr.Error(),
		Suggestion: suggestionFor(code),
		Details:    details,
	}
}

// suggestionFor returns the next step for an acquisition failure code.
func suggestionFor(code string) string {
	switch code {
	case ErrCodeNotConnected:
		return "Join a wireless network, then try again"
	case ErrCodeToolNotFound:
		return "Run 'wifimon doctor' to see which wireless tools are missing"
	case ErrCodePermissionDenied:
		return "Re-run with the privileges the wireless tool needs"
	case ErrCodeTimeout:
		return "The wireless tool did not answer in time; raise command_timeout if this keeps happening"
	case ErrCodeUnsupportedPlatform:
		return "wifimon supports Windows, macOS and Linux"
	case ErrCodeCommandFailed:
		return "Run with --verbose to see the tool's output"
	case ErrCodeParseFailed:
		return "The wireless tool printed something wifimon could not read; run with --verbose to see it"
	}
	return ""
}
