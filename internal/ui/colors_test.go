package ui

import (
	"bytes"
	"testing"

	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rileyhilliard/wifimon/internal/wifi"
)

func TestProfileFor(t *testing.T) {
	var buf bytes.Buffer

	tests := []struct {
		mode    string
		want    termenv.Profile
		wantErr bool
	}{
		{ColorNever, termenv.Ascii, false},
		{ColorAlways, termenv.ANSI256, false},
		{"rainbow", termenv.Ascii, true},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			p, err := ProfileFor(tt.mode, &buf)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.want, p)
		})
	}
}

func TestProfileForAutoHonorsNoColor(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	p, err := ProfileFor(ColorAuto, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, termenv.Ascii, p)
}

func TestSeveritySymbol(t *testing.T) {
	DisableColors()
	assert.Equal(t, SymbolFail, SeveritySymbol(wifi.SeverityError))
	assert.Equal(t, SymbolWarning, SeveritySymbol(wifi.SeverityWarning))
	assert.Equal(t, SymbolSuccess, SeveritySymbol(wifi.SeverityInfo))
}
