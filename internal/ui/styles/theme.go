// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme names accepted by ParseThemeName.
const (
	ThemeAuto  = "auto"
	ThemeDark  = "dark"
	ThemeLight = "light"
	ThemePlain = "plain"
)

// ThemeNames lists the accepted theme names.
var ThemeNames = []string{ThemeAuto, ThemeDark, ThemeLight, ThemePlain}

// ParseThemeName normalizes a configured theme name.
func ParseThemeName(name string) (string, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	if n == "" {
		return ThemeAuto, nil
	}
	for _, v := range ThemeNames {
		if n == v {
			return n, nil
		}
	}
	return "", fmt.Errorf("unknown theme %q (want one of %s)", name, strings.Join(ThemeNames, ", "))
}

// Theme holds the styled components for docchat output.
type Theme struct {
	Name   string
	IsDark bool
	Plain  bool

	// Layout dimensions
	Width  int
	Height int

	// ==========================================================================
	// MESSAGE STYLES
	// ==========================================================================

	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style
	Timestamp      lipgloss.Style
	UserText       lipgloss.Style
	Sources        lipgloss.Style
	AgentThought   lipgloss.Style

	// ==========================================================================
	// HISTORY LIST STYLES
	// ==========================================================================

	HistoryTitle    lipgloss.Style
	HistoryPreview  lipgloss.Style
	HistoryTime     lipgloss.Style
	HistorySelected lipgloss.Style
	HistoryBorder   lipgloss.Style

	// ==========================================================================
	// CHROME
	// ==========================================================================

	Header      lipgloss.Style
	InputPrompt lipgloss.Style
	StatusBar   lipgloss.Style
	ModeAgent   lipgloss.Style
	ModeChat    lipgloss.Style
	Error       lipgloss.Style
	Muted       lipgloss.Style
	Help        lipgloss.Style
}

// NewTheme creates a theme for the named palette. "auto" asks the terminal
// for its background; "plain" renders every style without color.
func NewTheme(name string) *Theme {
	n, err := ParseThemeName(name)
	if err != nil {
		n = ThemeAuto
	}
	t := &Theme{Name: n}
	switch n {
	case ThemeDark:
		t.IsDark = true
	case ThemeLight:
		t.IsDark = false
	case ThemePlain:
		t.Plain = true
	default:
		t.IsDark = termenv.HasDarkBackground()
	}
	if n == ThemeDark || n == ThemeLight {
		lipgloss.SetHasDarkBackground(t.IsDark)
	}
	if t.Plain {
		t.initPlain()
	} else {
		t.initStyles()
	}
	return t
}

// GlamourStyle returns the glamour standard style matching the theme.
func (t *Theme) GlamourStyle() string {
	switch {
	case t.Plain:
		return "notty"
	case t.IsDark:
		return "dark"
	default:
		return "light"
	}
}

func (t *Theme) initStyles() {
	t.UserLabel = lipgloss.NewStyle().Bold(true).Foreground(Cyan)
	t.AssistantLabel = lipgloss.NewStyle().Bold(true).Foreground(Purple)
	t.Timestamp = lipgloss.NewStyle().Foreground(TextMuted)
	t.UserText = lipgloss.NewStyle().
		Foreground(TextPrimary).
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(Cyan).
		BorderLeft(true).
		PaddingLeft(1)
	t.Sources = lipgloss.NewStyle().Foreground(Emerald).Italic(true)
	t.AgentThought = lipgloss.NewStyle().Foreground(Amber)

	t.HistoryTitle = lipgloss.NewStyle().Bold(true).Foreground(TextPrimary)
	t.HistoryPreview = lipgloss.NewStyle().Foreground(TextSecondary)
	t.HistoryTime = lipgloss.NewStyle().Foreground(TextMuted)
	t.HistorySelected = lipgloss.NewStyle().Background(SelectionBg).Bold(true)
	t.HistoryBorder = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(Overlay).
		Padding(0, 1)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)
	t.InputPrompt = lipgloss.NewStyle().Foreground(Cyan).Bold(true)
	t.StatusBar = lipgloss.NewStyle().
		Background(SurfaceDim).
		Foreground(TextSecondary).
		Padding(0, 1)
	t.ModeAgent = lipgloss.NewStyle().Foreground(Amber).Bold(true)
	t.ModeChat = lipgloss.NewStyle().Foreground(Emerald).Bold(true)
	t.Error = lipgloss.NewStyle().Foreground(Rose).Bold(true)
	t.Muted = lipgloss.NewStyle().Foreground(TextMuted)
	t.Help = lipgloss.NewStyle().Foreground(TextSecondary)
}

func (t *Theme) initPlain() {
	plain := lipgloss.NewStyle()
	t.UserLabel = plain
	t.AssistantLabel = plain
	t.Timestamp = plain
	t.UserText = plain
	t.Sources = plain
	t.AgentThought = plain
	t.HistoryTitle = plain
	t.HistoryPreview = plain
	t.HistoryTime = plain
	t.HistorySelected = plain.Reverse(true)
	t.HistoryBorder = plain.BorderStyle(lipgloss.NormalBorder()).Padding(0, 1)
	t.Header = plain
	t.InputPrompt = plain
	t.StatusBar = plain
	t.ModeAgent = plain
	t.ModeChat = plain
	t.Error = plain
	t.Muted = plain
	t.Help = plain
}

// SetSize updates the theme dimensions for responsive layouts.
func (t *Theme) SetSize(width, height int) {
	t.Width = width
	t.Height = height
}

// GetLayoutMode returns the current layout mode based on width.
func (t *Theme) GetLayoutMode() LayoutMode {
	if t.Width < 60 {
		return LayoutNarrow
	}
	if t.Width < 100 {
		return LayoutMedium
	}
	return LayoutWide
}

// LayoutMode represents the current responsive layout mode.
type LayoutMode int

const (
	LayoutNarrow LayoutMode = iota // < 60 columns
	LayoutMedium                   // 60-100 columns
	LayoutWide                     // > 100 columns
)
