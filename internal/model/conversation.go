// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"time"

	"github.com/jeranaias/docchat/internal/util"
)

const (
	// TitleMaxRunes bounds the title derived from the first message.
	TitleMaxRunes = 50

	// LastMessageMaxRunes bounds the preview of the most recent message.
	LastMessageMaxRunes = 100

	// DefaultTitle is used when the first message has no content.
	DefaultTitle = "New conversation"
)

// =============================================================================
// CONVERSATION TYPE
// =============================================================================

// Conversation is a saved chat session. MessageCount always equals
// len(Messages) for snapshots built by Snapshot.
type Conversation struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	LastMessage  string    `json:"lastMessage"`
	Timestamp    time.Time `json:"timestamp"`
	MessageCount int       `json:"messageCount"`
	Messages     []Message `json:"messages,omitempty"`
}

// Snapshot builds a conversation entry from an active message list.
// The messages are deep-copied.
func Snapshot(id string, msgs []Message, now time.Time) Conversation {
	conv := Conversation{
		ID:           id,
		Title:        DefaultTitle,
		Timestamp:    now,
		MessageCount: len(msgs),
		Messages:     CloneMessages(msgs),
	}
	if len(msgs) == 0 {
		return conv
	}
	if title := util.TruncateRunesNoEllipsis(msgs[0].Content, TitleMaxRunes); title != "" {
		conv.Title = title
	}
	conv.LastMessage = util.TruncateRunesNoEllipsis(msgs[len(msgs)-1].Content, LastMessageMaxRunes)
	return conv
}

// IsEmpty reports whether the conversation has no messages. Empty
// conversations are never kept in the saved collection.
func (c Conversation) IsEmpty() bool {
	return len(c.Messages) == 0
}

// Clone returns a deep copy of the conversation.
func (c Conversation) Clone() Conversation {
	out := c
	out.Messages = CloneMessages(c.Messages)
	return out
}

// Summary returns the conversation without its message list.
func (c Conversation) Summary() Conversation {
	out := c
	out.Messages = nil
	return out
}

// CloneConversations deep-copies a conversation list. The result is never nil.
func CloneConversations(convs []Conversation) []Conversation {
	out := make([]Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.Clone()
	}
	return out
}
