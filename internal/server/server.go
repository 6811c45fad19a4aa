// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/jeranaias/docchat/internal/slot"
	"github.com/jeranaias/docchat/internal/storage"
)

// ============================================================================
// CONSTANTS
// ============================================================================

const (
	// DefaultAddr is the listen address when none is configured.
	DefaultAddr = "127.0.0.1:8790"

	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout = 10 * time.Second
)

// ============================================================================
// SERVER
// ============================================================================

// Server serves the conversation store over HTTP.
type Server struct {
	store   *storage.ConversationStore
	slot    slot.Slot
	logger  zerolog.Logger
	token   string
	cors    *CORSConfig
	version string

	// replies is the parent context of POST /api/messages sends, which
	// outlive their request.
	replies context.Context
	stop    context.CancelFunc

	router chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithAPIToken requires a bearer token on /api routes.
func WithAPIToken(token string) Option {
	return func(s *Server) { s.token = token }
}

// WithCORSOrigins sets the comma-separated list of allowed browser origins.
func WithCORSOrigins(origins string) Option {
	return func(s *Server) { s.cors = NewCORSConfig(origins) }
}

// WithVersion sets the version reported by /health.
func WithVersion(v string) Option {
	return func(s *Server) { s.version = v }
}

// New creates a server over store. prefs is the slot preferences are read
// from and written to.
func New(store *storage.ConversationStore, prefs slot.Slot, opts ...Option) *Server {
	s := &Server{
		store:   store,
		slot:    prefs,
		logger:  zerolog.Nop(),
		cors:    NewCORSConfig(""),
		version: "dev",
	}
	for _, opt := range opts {
		opt(s)
	}
	s.replies, s.stop = context.WithCancel(context.Background())
	s.router = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	for _, mw := range accessLog(s.logger) {
		r.Use(mw)
	}
	r.Use(middleware.Recoverer)
	r.Use(SecurityHeadersMiddleware())
	r.Use(CORSMiddleware(s.cors))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(api chi.Router) {
		api.Use(AuthMiddleware(s.token))

		api.Route("/conversations", func(c chi.Router) {
			c.Get("/", s.handleSearch)
			c.Put("/order", s.handleReorder)
			c.Get("/{id}", s.handleGetConversation)
			c.Get("/{id}/export", s.handleExport)
			c.Delete("/{id}", s.handleDeleteConversation)
			c.Post("/{id}/select", s.handleSelect)
		})

		api.Get("/messages", s.handleMessages)
		api.Post("/messages", s.handleSend)
		api.Delete("/messages", s.handleClear)
		api.Put("/session", s.handleSession)

		api.Post("/format", s.handleFormat)

		api.Get("/preferences", s.handleGetPreferences)
		api.Put("/preferences", s.handlePutPreferences)
	})

	return r
}

// Close cancels replies still pending from POST /api/messages.
func (s *Server) Close() {
	s.stop()
}

// ============================================================================
// RUN
// ============================================================================

// Run listens on addr until ctx is done, then shuts down gracefully. When the
// slot can report external changes, the saved collection is reloaded on
// every change.
func (s *Server) Run(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	defer s.Close()

	if w, ok := s.slot.(slot.Watcher); ok {
		err := w.Watch(ctx, slot.KeyConversations, func() {
			s.logger.Debug().Msg("conversations changed on disk, reloading")
			s.store.Reload()
		})
		if err != nil {
			s.logger.Warn().Err(err).Msg("watch conversations")
		}
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.logger.Info().Str("addr", addr).Msg("docchat API listening")

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
