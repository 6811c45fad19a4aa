// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// terminal.go - Terminal detection for docchat.
//
// Interactive terminals get colors, markdown styling and line editing.
// Piped output and NO_COLOR get plain text.
package cli

import (
	"io"
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/jeranaias/docchat/internal/ui/styles"
)

// =============================================================================
// TTY DETECTION
// =============================================================================

const defaultTerminalWidth = 80

// IsTerminal reports whether v is an *os.File attached to a terminal.
func IsTerminal(v interface{}) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// TerminalWidth returns the width of w, or 80 when w is not a terminal.
func TerminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return defaultTerminalWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return defaultTerminalWidth
	}
	return width
}

// ColorsEnabled reports whether styled output should be written to w.
// NO_COLOR wins over FORCE_COLOR, which wins over TTY detection.
func ColorsEnabled(w io.Writer) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if !IsTerminal(w) {
		return false
	}
	return termenv.NewOutput(w).ColorProfile() != termenv.Ascii
}

// themeFor picks the theme for output written to w. requested comes from
// --theme or ui.theme; non-color output always gets the plain theme.
func themeFor(w io.Writer, requested string) (*styles.Theme, error) {
	name, err := styles.ParseThemeName(requested)
	if err != nil {
		return nil, &UsageError{Message: err.Error(), Example: "--theme plain"}
	}
	if !ColorsEnabled(w) {
		name = styles.ThemePlain
	}
	return styles.NewTheme(name), nil
}
