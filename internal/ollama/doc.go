// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package ollama provides the HTTP client for communicating with the Ollama API.
//
// Only the non-streaming chat surface is implemented; docchat delivers one
// complete reply per message.
//
// # Usage
//
//	client := ollama.NewClientWithConfig(&ollama.ClientConfig{
//	    BaseURL:      "http://127.0.0.1:11434",
//	    DefaultModel: "qwen2.5:7b",
//	})
//	resp, err := client.Chat(ctx, "", []ollama.Message{
//	    ollama.NewUserMessage("Hello"),
//	})
//
// Errors are *ClientError values; use IsNotRunning, IsTimeout and
// IsModelNotFound (or errors.Is against the sentinels) to branch on them.
package ollama
