// Package ui provides the terminal output components shared by wifimon's
// commands: ANSI colors and symbols, a line spinner for one-shot reads, and
// tables for scan results, status reports and doctor checks.
//
// # Color Scheme
//
// Colors are ANSI codes for broad terminal compatibility:
//
//	ColorSuccess   (green)  - Passing checks, healthy links
//	ColorError     (red)    - Failures and error alerts
//	ColorWarning   (yellow) - Warnings
//	ColorInfo      (cyan)   - Informational messages
//	ColorMuted     (gray)   - Secondary text, provenance notes
//	ColorSecondary (blue)   - Labels and in-progress indicators
//
// SetColorMode applies the output.color setting (auto, always, never) via a
// termenv profile; auto drops color when stdout is not a terminal or
// NO_COLOR is set.
//
// # Spinner Usage
//
//	s := ui.NewSpinner("Reading connection")
//	s.Start()
//	// ... do work ...
//	s.Success() // or s.Fail()
package ui
