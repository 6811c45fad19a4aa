// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"context"
	"fmt"
	"time"

	"github.com/jeranaias/docchat/internal/config"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/ollama"
	"github.com/jeranaias/docchat/internal/preferences"
)

// Request is one user turn to answer.
type Request struct {
	// Content is the trimmed user message.
	Content string

	// DataSource is the selected source, sent in agent mode. May be empty.
	DataSource string

	// Mode picks the reply endpoint.
	Mode model.ChatMode

	// Preferences shape the reply. May be nil.
	Preferences *preferences.AIPreferences
}

// Responder produces the assistant reply for a user message.
//
// The returned message carries content and optional metadata; the caller
// assigns role and timestamp.
type Responder interface {
	Respond(ctx context.Context, req Request) (model.Message, error)
}

// Func adapts a function to the Responder interface.
type Func func(ctx context.Context, req Request) (model.Message, error)

// Respond calls f.
func (f Func) Respond(ctx context.Context, req Request) (model.Message, error) {
	return f(ctx, req)
}

// New builds the responder selected by cfg.Responder.Kind.
func New(cfg *config.Config) (Responder, error) {
	rc := cfg.Responder
	switch rc.Kind {
	case "", "mock":
		return NewMock(time.Duration(rc.MockLatencyMs) * time.Millisecond), nil
	case "backend":
		return NewBackend(BackendConfig{
			BaseURL:    rc.BackendURL,
			AuthToken:  rc.AuthToken,
			Timeout:    time.Duration(rc.TimeoutSecs) * time.Second,
			RatePerSec: rc.RatePerSec,
		})
	case "ollama":
		client := ollama.NewClientWithConfig(&ollama.ClientConfig{
			BaseURL:      cfg.Ollama.URL,
			Timeout:      time.Duration(rc.TimeoutSecs) * time.Second,
			DefaultModel: cfg.Ollama.Model,
		})
		return NewOllama(client, cfg.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown responder kind %q", rc.Kind)
	}
}
