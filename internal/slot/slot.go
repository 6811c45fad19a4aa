// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package slot

import (
	"context"
	"errors"
	"fmt"
	"regexp"
)

// Well-known keys.
const (
	// KeyConversations holds the saved conversation collection (JSON array).
	KeyConversations = "chat_conversations"

	// KeyPreferences holds the AI preference settings (JSON object).
	KeyPreferences = "ai_preferences"
)

// ErrInvalidKey is returned for keys outside [A-Za-z0-9_-].
var ErrInvalidKey = errors.New("invalid slot key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Slot is a durable key-value store holding one text value per key.
type Slot interface {
	// Read returns the value for key. ok is false when nothing was written.
	Read(key string) (value string, ok bool, err error)

	// Write replaces the value for key.
	Write(key, value string) error
}

// Watcher is implemented by slots that can report changes made by other
// processes. fn runs on a background goroutine until ctx is done.
type Watcher interface {
	Watch(ctx context.Context, key string, fn func()) error
}

// ValidateKey checks that key is safe to use as a file name or row id.
func ValidateKey(key string) error {
	if !keyPattern.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
