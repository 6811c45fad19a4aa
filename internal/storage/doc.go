// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package storage owns the saved conversation collection and the active
// chat session.
//
// # Key Types
//
//   - ConversationStore: active message list, saved collection, replies
//   - Reply: outcome of one SendMessage
//   - ConversationError: comparable error values (ErrConversationNotFound)
//
// # Usage
//
//	store := storage.NewConversationStore(fileSlot, responder.NewMock(time.Second),
//	    storage.WithLogger(logger))
//	store.Load()
//	defer store.Close()
//
//	reply := <-store.SendMessage(ctx, "What is RAG?")
//	if reply.Err != nil {
//	    // show the failure; the question stays in the list
//	}
//
// # Persistence
//
// The collection is written as a JSON array to the "chat_conversations" slot
// key after every change. At most 20 conversations are kept, newest first,
// and conversations without messages are never written. When the slot is
// empty or unreadable the built-in seed conversations are used.
package storage
