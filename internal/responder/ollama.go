// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/ollama"
	"github.com/jeranaias/docchat/internal/preferences"
)

// ChatClient is the part of *ollama.Client the Ollama responder uses.
type ChatClient interface {
	ChatWithOptions(ctx context.Context, req ollama.ChatRequest) (*ollama.ChatResponse, error)
}

// Ollama answers through a local Ollama server.
type Ollama struct {
	client ChatClient
	model  string
}

// NewOllama creates a responder using client. An empty model defers to the
// client's default.
func NewOllama(client ChatClient, modelName string) *Ollama {
	return &Ollama{client: client, model: modelName}
}

// Respond implements Responder. A model named in the preferences wins over
// the configured one only when no cloud provider is selected.
func (o *Ollama) Respond(ctx context.Context, req Request) (model.Message, error) {
	creq := ollama.ChatRequest{Model: o.model}
	if p := req.Preferences; p != nil && p.Model != "" && p.Provider == "" {
		creq.Model = p.Model
	}
	if sys := SystemPrompt(req.Preferences); sys != "" {
		creq.Messages = append(creq.Messages, ollama.NewSystemMessage(sys))
	}
	creq.Messages = append(creq.Messages, ollama.NewUserMessage(req.Content))
	if req.Preferences != nil && req.Preferences.OutputFormat == "json" {
		creq.Format = "json"
	}

	resp, err := o.client.ChatWithOptions(ctx, creq)
	if err != nil {
		return model.Message{}, fmt.Errorf("ollama: %w", err)
	}
	content := strings.TrimSpace(resp.Message.Content)
	if content == "" {
		return model.Message{}, ErrNoContent
	}
	return model.Message{Role: model.RoleAssistant, Content: content}, nil
}

// SystemPrompt builds the system message from preferences. It returns ""
// when nothing is set.
func SystemPrompt(p *preferences.AIPreferences) string {
	if p == nil {
		return ""
	}
	var lines []string
	switch p.OutputFormat {
	case "table":
		lines = append(lines, "Format the answer as a markdown table.")
	case "list":
		lines = append(lines, "Format the answer as a bulleted list.")
	case "json":
		lines = append(lines, "Answer with a single JSON object.")
	}
	switch p.OutputLanguage {
	case "lt":
		lines = append(lines, "Answer in Lithuanian.")
	case "en":
		lines = append(lines, "Answer in English.")
	}
	if agents := p.EnabledAgents(); p.IsMultiAgent() && len(agents) > 0 {
		roles := make([]string, 0, len(agents))
		for _, a := range agents {
			roles = append(roles, a.Name+": "+a.Role)
		}
		lines = append(lines, "Work through these stages in order: "+strings.Join(roles, "; ")+".")
	}
	if ci := strings.TrimSpace(p.CustomInstructions); ci != "" {
		lines = append(lines, ci)
	}
	return strings.Join(lines, "\n")
}
