// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package chat provides the Bubble Tea chat interface.
//
// The view is a scrolling message viewport over a one-line input, with an
// optional history pane on the left listing saved conversations. All state
// lives in a storage.ConversationStore; the model only renders it and turns
// key presses into store calls.
//
// # Key Bindings
//
//	Enter      send the message (or open the selected conversation)
//	Ctrl+H     toggle the history pane
//	Ctrl+N     start a new conversation
//	Ctrl+T     switch between chat and agent mode
//	Ctrl+E     expand or collapse sources and agent thoughts
//	Ctrl+C     quit
//
// In the history pane, typing filters the list, Up/Down move the selection,
// Shift+Up/Shift+Down move the selected conversation, and Ctrl+X deletes it.
package chat
