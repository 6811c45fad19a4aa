// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package slot provides the durable key-value slots that hold the saved
// conversation collection and the AI preferences.
//
// # Key Types
//
//   - Slot: Read/Write of one text value per key
//   - File: one <key>.json file per key, atomic writes, fsnotify Watch
//   - SQLite: kv_slots table in a modernc.org/sqlite database, goose migrations
//   - Memory: map-backed slot for tests and ephemeral sessions
//
// # Usage
//
//	s, err := slot.NewFile(dir, logger)
//	raw, ok, err := s.Read(slot.KeyConversations)
//	err = s.Write(slot.KeyConversations, raw)
package slot
