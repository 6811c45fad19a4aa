// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"github.com/charmbracelet/bubbles/key"
)

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the chat interface.
type KeyMap struct {
	Submit          key.Binding
	Quit            key.Binding
	ScrollUp        key.Binding
	ScrollDown      key.Binding
	PageUp          key.Binding
	PageDown        key.Binding
	ToggleHistory   key.Binding
	NewConversation key.Binding
	ToggleMode      key.Binding
	ToggleDetails   key.Binding

	// History pane
	HistoryUp     key.Binding
	HistoryDown   key.Binding
	HistoryDelete key.Binding
	MoveUp        key.Binding
	MoveDown      key.Binding
	CloseHistory  key.Binding
}

// DefaultKeyMap returns the default key bindings for the chat interface.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("Enter", "send"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "ctrl+q"),
			key.WithHelp("C-c", "quit"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "scroll down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+u"),
			key.WithHelp("PgUp", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+d"),
			key.WithHelp("PgDn", "page down"),
		),
		ToggleHistory: key.NewBinding(
			key.WithKeys("ctrl+h"),
			key.WithHelp("C-h", "history"),
		),
		NewConversation: key.NewBinding(
			key.WithKeys("ctrl+n"),
			key.WithHelp("C-n", "new chat"),
		),
		ToggleMode: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("C-t", "chat/agent"),
		),
		ToggleDetails: key.NewBinding(
			key.WithKeys("ctrl+e"),
			key.WithHelp("C-e", "details"),
		),
		HistoryUp: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("up", "previous"),
		),
		HistoryDown: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("down", "next"),
		),
		HistoryDelete: key.NewBinding(
			key.WithKeys("ctrl+x", "delete"),
			key.WithHelp("C-x", "delete"),
		),
		MoveUp: key.NewBinding(
			key.WithKeys("shift+up", "ctrl+k"),
			key.WithHelp("S-up", "move up"),
		),
		MoveDown: key.NewBinding(
			key.WithKeys("shift+down", "ctrl+j"),
			key.WithHelp("S-down", "move down"),
		),
		CloseHistory: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "close"),
		),
	}
}

// ChatHelp returns the bindings shown in the status bar while chatting.
func (k KeyMap) ChatHelp() []key.Binding {
	return []key.Binding{k.Submit, k.ToggleHistory, k.NewConversation, k.ToggleMode, k.ToggleDetails, k.Quit}
}

// HistoryHelp returns the bindings shown while the history pane is focused.
func (k KeyMap) HistoryHelp() []key.Binding {
	return []key.Binding{k.Submit, k.MoveUp, k.MoveDown, k.HistoryDelete, k.CloseHistory}
}
