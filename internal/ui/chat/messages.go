// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat/internal/storage"
)

// ReplyMsg delivers the outcome of one send.
type ReplyMsg struct {
	Reply storage.Reply
}

// HistoryHintExpiredMsg fires once the loading-from-history window has
// passed, so auto-scroll can resume.
type HistoryHintExpiredMsg struct{}

// waitForReply blocks on the store's reply channel.
func waitForReply(ch <-chan storage.Reply) tea.Cmd {
	return func() tea.Msg {
		r, ok := <-ch
		if !ok {
			return nil
		}
		return ReplyMsg{Reply: r}
	}
}
