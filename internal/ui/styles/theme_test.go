// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThemeName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", ThemeAuto, false},
		{"auto", ThemeAuto, false},
		{" Dark ", ThemeDark, false},
		{"LIGHT", ThemeLight, false},
		{"plain", ThemePlain, false},
		{"neon", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseThemeName(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewThemeForced(t *testing.T) {
	dark := NewTheme("dark")
	assert.True(t, dark.IsDark)
	assert.False(t, dark.Plain)
	assert.Equal(t, "dark", dark.GlamourStyle())

	light := NewTheme("light")
	assert.False(t, light.IsDark)
	assert.Equal(t, "light", light.GlamourStyle())
}

func TestPlainThemeHasNoColor(t *testing.T) {
	theme := NewTheme("plain")
	assert.True(t, theme.Plain)
	assert.Equal(t, "notty", theme.GlamourStyle())

	// Plain styles render text unchanged.
	assert.Equal(t, "You", theme.UserLabel.Render("You"))
	assert.Equal(t, "docs/a.md", theme.Sources.Render("docs/a.md"))
}

func TestUnknownThemeFallsBackToAuto(t *testing.T) {
	theme := NewTheme("neon")
	assert.Equal(t, ThemeAuto, theme.Name)
}

func TestLayoutMode(t *testing.T) {
	theme := NewTheme("plain")
	theme.SetSize(40, 20)
	assert.Equal(t, LayoutNarrow, theme.GetLayoutMode())
	theme.SetSize(80, 20)
	assert.Equal(t, LayoutMedium, theme.GetLayoutMode())
	theme.SetSize(120, 20)
	assert.Equal(t, LayoutWide, theme.GetLayoutMode())
}

func TestSpinnerDuration(t *testing.T) {
	assert.Equal(t, time.Second/6, DotsSpinner.Duration())
	assert.Equal(t, 100*time.Millisecond, SpinnerConfig{}.Duration())
}
