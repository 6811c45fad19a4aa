// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat/internal/config"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/ollama"
	"github.com/jeranaias/docchat/internal/preferences"
)

// =============================================================================
// MOCK
// =============================================================================

func TestMock_CannedReply(t *testing.T) {
	m := NewMock(0)
	msg, err := m.Respond(context.Background(), Request{Content: "Hello"})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAssistant, msg.Role)
	assert.Equal(t,
		`This is a mock response to: "Hello". This is UI/UX testing mode - no actual backend connection.`,
		msg.Content)
}

func TestMock_HonorsCancellation(t *testing.T) {
	m := NewMock(time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := m.Respond(ctx, Request{Content: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMock_WaitsForLatency(t *testing.T) {
	m := NewMock(20 * time.Millisecond)
	start := time.Now()
	_, err := m.Respond(context.Background(), Request{Content: "x"})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestFunc(t *testing.T) {
	var r Responder = Func(func(ctx context.Context, req Request) (model.Message, error) {
		return model.Message{Content: "echo " + req.Content}, nil
	})
	msg, err := r.Respond(context.Background(), Request{Content: "hi"})
	require.NoError(t, err)
	assert.Equal(t, "echo hi", msg.Content)
}

// =============================================================================
// BACKEND
// =============================================================================

func TestBackend_ChatMode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, map[string]interface{}{"message": "What is RAG?"}, body)

		_, _ = w.Write([]byte(`{"content":"RAG is retrieval.","metadata":{"sources":["rag.pdf"],"agent":"RAG Search Agent"}}`))
	}))
	defer srv.Close()

	b, err := NewBackend(BackendConfig{BaseURL: srv.URL, AuthToken: "tok"})
	require.NoError(t, err)

	msg, err := b.Respond(context.Background(), Request{Content: "What is RAG?", Mode: model.ModeChat})
	require.NoError(t, err)
	assert.Equal(t, "RAG is retrieval.", msg.Content)
	require.NotNil(t, msg.Metadata)
	assert.Equal(t, []string{"rag.pdf"}, msg.Metadata.Sources)
	assert.Equal(t, "RAG Search Agent", msg.Metadata.Agent)
}

func TestBackend_AgentModeSendsDataSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/adk-chat", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		var body chatBody
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Accounting Documents", body.DataSource)
		_, _ = w.Write([]byte(`{"content":"ok"}`))
	}))
	defer srv.Close()

	b, err := NewBackend(BackendConfig{BaseURL: srv.URL + "/"})
	require.NoError(t, err)

	msg, err := b.Respond(context.Background(), Request{
		Content:    "find invoices",
		Mode:       model.ModeAgent,
		DataSource: "Accounting Documents",
	})
	require.NoError(t, err)
	assert.Equal(t, "ok", msg.Content)
	assert.Nil(t, msg.Metadata)
}

func TestBackend_ErrorDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"Token expired"}`))
	}))
	defer srv.Close()

	b, err := NewBackend(BackendConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = b.Respond(context.Background(), Request{Content: "x"})
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusUnauthorized, be.Status)
	assert.Equal(t, "Token expired", be.Detail)
	assert.Contains(t, be.Error(), "Token expired")
}

func TestBackend_ErrorWithoutDetail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer srv.Close()

	b, err := NewBackend(BackendConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = b.Respond(context.Background(), Request{Content: "x"})
	var be *BackendError
	require.ErrorAs(t, err, &be)
	assert.Equal(t, http.StatusBadGateway, be.Status)
	assert.Empty(t, be.Detail)
}

func TestBackend_EmptyContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	b, err := NewBackend(BackendConfig{BaseURL: srv.URL})
	require.NoError(t, err)

	_, err = b.Respond(context.Background(), Request{Content: "x"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestBackend_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	b, err := NewBackend(BackendConfig{BaseURL: url, Timeout: time.Second})
	require.NoError(t, err)

	_, err = b.Respond(context.Background(), Request{Content: "x"})
	require.Error(t, err)
	var be *BackendError
	assert.False(t, errors.As(err, &be))
}

func TestNewBackend_InvalidURL(t *testing.T) {
	_, err := NewBackend(BackendConfig{BaseURL: "not a url"})
	assert.Error(t, err)
}

// =============================================================================
// OLLAMA
// =============================================================================

type fakeChat struct {
	got  ollama.ChatRequest
	resp *ollama.ChatResponse
	err  error
}

func (f *fakeChat) ChatWithOptions(ctx context.Context, req ollama.ChatRequest) (*ollama.ChatResponse, error) {
	f.got = req
	return f.resp, f.err
}

func TestOllama_BuildsSystemPrompt(t *testing.T) {
	fc := &fakeChat{resp: &ollama.ChatResponse{Message: ollama.Message{Role: "assistant", Content: " Labas \n"}}}
	o := NewOllama(fc, "qwen2.5:7b")

	prefs := &preferences.AIPreferences{
		OutputFormat:       "table",
		OutputLanguage:     "lt",
		CustomInstructions: "Cite sources.",
	}
	msg, err := o.Respond(context.Background(), Request{Content: "Hi", Preferences: prefs})
	require.NoError(t, err)
	assert.Equal(t, "Labas", msg.Content)

	assert.Equal(t, "qwen2.5:7b", fc.got.Model)
	require.Len(t, fc.got.Messages, 2)
	assert.Equal(t, "system", fc.got.Messages[0].Role)
	assert.Contains(t, fc.got.Messages[0].Content, "markdown table")
	assert.Contains(t, fc.got.Messages[0].Content, "Lithuanian")
	assert.Contains(t, fc.got.Messages[0].Content, "Cite sources.")
	assert.Equal(t, ollama.NewUserMessage("Hi"), fc.got.Messages[1])
}

func TestOllama_NoPreferences(t *testing.T) {
	fc := &fakeChat{resp: &ollama.ChatResponse{Message: ollama.Message{Content: "ok"}}}
	_, err := NewOllama(fc, "").Respond(context.Background(), Request{Content: "Hi"})
	require.NoError(t, err)
	require.Len(t, fc.got.Messages, 1)
	assert.Empty(t, fc.got.Format)
}

func TestOllama_JSONFormatAndModelOverride(t *testing.T) {
	fc := &fakeChat{resp: &ollama.ChatResponse{Message: ollama.Message{Content: "{}"}}}
	prefs := &preferences.AIPreferences{OutputFormat: "json", Model: "llama3"}
	_, err := NewOllama(fc, "qwen").Respond(context.Background(), Request{Content: "Hi", Preferences: prefs})
	require.NoError(t, err)
	assert.Equal(t, "json", fc.got.Format)
	assert.Equal(t, "llama3", fc.got.Model)
}

func TestOllama_Errors(t *testing.T) {
	fc := &fakeChat{err: ollama.ErrNotRunning}
	_, err := NewOllama(fc, "").Respond(context.Background(), Request{Content: "Hi"})
	assert.True(t, ollama.IsNotRunning(err))

	fc = &fakeChat{resp: &ollama.ChatResponse{}}
	_, err = NewOllama(fc, "").Respond(context.Background(), Request{Content: "Hi"})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestSystemPrompt_MultiAgent(t *testing.T) {
	p := &preferences.AIPreferences{Mode: preferences.ModeMultiAgent, Agents: preferences.DefaultAgents()}
	p.Agents[2].Enabled = false
	sys := SystemPrompt(p)
	assert.Contains(t, sys, "Filter Agent")
	assert.Contains(t, sys, "Search Agent")
	assert.NotContains(t, sys, "Critic Agent")
	assert.Empty(t, SystemPrompt(nil))
	assert.Empty(t, SystemPrompt(&preferences.AIPreferences{}))
}

// =============================================================================
// FACTORY
// =============================================================================

func TestNew(t *testing.T) {
	cfg := config.Default()
	r, err := New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Mock{}, r)

	cfg.Responder.Kind = "backend"
	r, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Backend{}, r)

	cfg.Responder.Kind = "ollama"
	r, err = New(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Ollama{}, r)

	cfg.Responder.Kind = "carrier-pigeon"
	_, err = New(cfg)
	assert.Error(t, err)
}
