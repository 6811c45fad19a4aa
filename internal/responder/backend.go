// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package responder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/jeranaias/docchat/internal/model"
)

const (
	// DefaultBackendTimeout bounds one backend request.
	DefaultBackendTimeout = 60 * time.Second

	// maxResponseSize caps the reply body read from the backend.
	maxResponseSize = 10 * 1024 * 1024
)

// ErrNoContent is returned when the backend answers 2xx without content.
var ErrNoContent = errors.New("backend reply has no content")

// BackendError is a non-2xx answer from the RAG backend.
type BackendError struct {
	Status int
	Detail string
}

// Error implements the error interface.
func (e *BackendError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend error (HTTP %d): %s", e.Status, e.Detail)
	}
	return fmt.Sprintf("backend error (HTTP %d)", e.Status)
}

// BackendConfig configures the HTTP backend responder.
type BackendConfig struct {
	// BaseURL of the backend, e.g. http://localhost:8002.
	BaseURL string
	// AuthToken is sent as "Authorization: Bearer <token>" when set.
	AuthToken string
	// Timeout bounds one request (default 60s).
	Timeout time.Duration
	// RatePerSec limits outgoing requests; 0 disables the limit.
	RatePerSec float64
	// HTTPClient overrides the client built from Timeout.
	HTTPClient *http.Client
}

// Backend sends messages to the RAG backend over HTTP.
//
//	chat mode:  POST /chat     {"message": ...}
//	agent mode: POST /adk-chat {"message": ..., "data_source": ...}
//
// Both answer {"content": ..., "metadata": {...}}.
type Backend struct {
	baseURL string
	token   string
	client  *http.Client
	limiter *rate.Limiter
}

// NewBackend validates cfg and creates a backend responder.
func NewBackend(cfg BackendConfig) (*Backend, error) {
	u, err := url.Parse(cfg.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid backend URL %q", cfg.BaseURL)
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = DefaultBackendTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	limit := rate.Inf
	if cfg.RatePerSec > 0 {
		limit = rate.Limit(cfg.RatePerSec)
	}

	return &Backend{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   cfg.AuthToken,
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
	}, nil
}

type chatBody struct {
	Message    string `json:"message"`
	DataSource string `json:"data_source,omitempty"`
}

type replyBody struct {
	Content  string          `json:"content"`
	Metadata *model.Metadata `json:"metadata,omitempty"`
}

type errorBody struct {
	Detail string `json:"detail"`
}

// Respond implements Responder.
func (b *Backend) Respond(ctx context.Context, req Request) (model.Message, error) {
	path := "/chat"
	body := chatBody{Message: req.Content}
	if req.Mode == model.ModeAgent {
		path = "/adk-chat"
		body.DataSource = req.DataSource
	}

	if err := b.limiter.Wait(ctx); err != nil {
		return model.Message{}, fmt.Errorf("rate limit: %w", err)
	}

	data, err := json.Marshal(body)
	if err != nil {
		return model.Message{}, fmt.Errorf("encode request: %w", err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return model.Message{}, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if b.token != "" {
		httpReq.Header.Set("Authorization", "Bearer "+b.token)
	}

	resp, err := b.client.Do(httpReq)
	if err != nil {
		return model.Message{}, fmt.Errorf("backend request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return model.Message{}, fmt.Errorf("read reply: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var eb errorBody
		_ = json.Unmarshal(raw, &eb)
		return model.Message{}, &BackendError{Status: resp.StatusCode, Detail: eb.Detail}
	}

	var rb replyBody
	if err := json.Unmarshal(raw, &rb); err != nil {
		return model.Message{}, fmt.Errorf("decode reply: %w", err)
	}
	if rb.Content == "" {
		return model.Message{}, ErrNoContent
	}
	return model.Message{Role: model.RoleAssistant, Content: rb.Content, Metadata: rb.Metadata}, nil
}
