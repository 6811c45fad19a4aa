// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package model contains the data structures for conversations and messages.
//
// # Key Types
//
//   - Message: role, content, creation timestamp and optional retrieval metadata
//   - Metadata: cited sources, data source, responding agent and agent trace
//   - Conversation: a saved session with derived title and last-message preview
//   - ChatMode: chat or agent routing for replies
//
// # Usage
//
//	msgs := []model.Message{model.NewUserMessage("Hello!", time.Now())}
//	conv := model.Snapshot("conv-1", msgs, time.Now())
//
// JSON field names match the on-disk collection format (camelCase, RFC 3339
// timestamps).
package model
