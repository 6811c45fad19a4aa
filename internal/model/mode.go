// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package model

import (
	"fmt"
	"strings"
)

// ChatMode selects how a question is answered: a plain chat turn or the
// agent pipeline that searches a data source.
type ChatMode string

const (
	ModeChat  ChatMode = "chat"
	ModeAgent ChatMode = "agent"
)

// String returns the string representation of the mode.
func (m ChatMode) String() string {
	return string(m)
}

// ParseChatMode parses a mode name case-insensitively.
func ParseChatMode(s string) (ChatMode, error) {
	switch ChatMode(strings.ToLower(strings.TrimSpace(s))) {
	case ModeChat:
		return ModeChat, nil
	case ModeAgent:
		return ModeAgent, nil
	default:
		return "", fmt.Errorf("unknown chat mode %q (want chat or agent)", s)
	}
}
