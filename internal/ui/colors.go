package ui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Color palette using ANSI color codes for terminal compatibility.

// Semantic colors for status indication
const (
	ColorSuccess lipgloss.Color = "2" // Green
	ColorError   lipgloss.Color = "1" // Red
	ColorWarning lipgloss.Color = "3" // Yellow
	ColorInfo    lipgloss.Color = "6" // Cyan
)

// Text colors for content hierarchy
const (
	ColorPrimary   lipgloss.Color = "7" // White/default
	ColorSecondary lipgloss.Color = "4" // Blue
	ColorMuted     lipgloss.Color = "8" // Gray (bright black)
)

// Color modes accepted by SetColorMode.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// ProfileFor resolves a color mode to a termenv profile for w. Auto mode
// honors NO_COLOR and drops color when w is not a terminal.
func ProfileFor(mode string, w io.Writer) (termenv.Profile, error) {
	switch mode {
	case ColorNever:
		return termenv.Ascii, nil
	case ColorAlways:
		return termenv.ANSI256, nil
	case ColorAuto, "":
		if os.Getenv("NO_COLOR") != "" {
			return termenv.Ascii, nil
		}
		if f, ok := w.(*os.File); ok && !IsTerminal(f) {
			return termenv.Ascii, nil
		}
		return termenv.NewOutput(w).EnvColorProfile(), nil
	default:
		return termenv.Ascii, fmt.Errorf("unknown color mode %q", mode)
	}
}

// SetColorMode applies a color mode to all lipgloss rendering.
func SetColorMode(mode string, w io.Writer) error {
	profile, err := ProfileFor(mode, w)
	lipgloss.SetColorProfile(profile)
	return err
}

// DisableColors switches to monochrome output.
func DisableColors() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// SeveritySymbol renders the colored marker for an alert severity.
func SeveritySymbol(severity wifi.Severity) string {
	switch severity {
	case wifi.SeverityError:
		return lipgloss.NewStyle().Foreground(ColorError).Render(SymbolFail)
	case wifi.SeverityWarning:
		return lipgloss.NewStyle().Foreground(ColorWarning).Render(SymbolWarning)
	default:
		return lipgloss.NewStyle().Foreground(ColorSuccess).Render(SymbolSuccess)
	}
}
