// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package responder produces assistant replies.
//
// Three implementations exist: Mock (canned text after a delay), Backend
// (the RAG HTTP backend's /chat and /adk-chat endpoints) and Ollama (a local
// model). New picks one from configuration.
package responder
