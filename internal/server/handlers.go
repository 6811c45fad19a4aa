// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package server

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/hlog"

	"github.com/jeranaias/docchat/internal/export"
	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/preferences"
	"github.com/jeranaias/docchat/internal/storage"
)

// ============================================================================
// RESPONSE TYPES
// ============================================================================

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version"`
	Conversations int    `json:"conversations"`
}

// RenderedMessage is a message with its formatter output.
type RenderedMessage struct {
	model.Message
	Blocks []format.Block `json:"blocks"`
}

// SessionResponse describes the active chat session.
type SessionResponse struct {
	ConversationID     string            `json:"conversationId,omitempty"`
	Messages           []RenderedMessage `json:"messages"`
	Loading            bool              `json:"loading"`
	LoadingFromHistory bool              `json:"loadingFromHistory"`
	Mode               model.ChatMode    `json:"mode"`
	DataSource         string            `json:"dataSource,omitempty"`
}

// FormatResponse is returned by POST /api/format.
type FormatResponse struct {
	Blocks   []format.Block `json:"blocks"`
	Markdown string         `json:"markdown,omitempty"`
}

// ============================================================================
// REQUEST TYPES
// ============================================================================

type sendRequest struct {
	Content string `json:"content"`
}

type orderRequest struct {
	IDs []string `json:"ids"`
}

type sessionRequest struct {
	Mode       *string `json:"mode"`
	DataSource *string `json:"dataSource"`
}

type formatRequest struct {
	Content string `json:"content"`
}

// ============================================================================
// HEALTH
// ============================================================================

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, HealthResponse{
		Status:        "ok",
		Version:       s.version,
		Conversations: len(s.store.Conversations()),
	})
}

// ============================================================================
// CONVERSATIONS
// ============================================================================

func summaries(convs []model.Conversation) []model.Conversation {
	out := make([]model.Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.Summary()
	}
	return out
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, summaries(s.store.Search(r.URL.Query().Get("q"))))
}

func (s *Server) handleGetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	conv, ok := s.store.Conversation(id)
	if !ok {
		respondError(w, r, http.StatusNotFound, "conversation not found")
		return
	}
	respondJSON(w, r, http.StatusOK, conv)
}

// handleExport serves ?format=md|json|html as a download.
func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	conv, ok := s.store.Conversation(chi.URLParam(r, "id"))
	if !ok {
		respondError(w, r, http.StatusNotFound, "conversation not found")
		return
	}
	opts := export.DefaultOptions()
	if r.URL.Query().Get("theme") == "light" {
		opts.Theme = "light"
	}
	exporter, err := export.New(r.URL.Query().Get("format"), opts)
	if err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	data, err := exporter.Export(conv)
	if err != nil {
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", exporter.MimeType()+"; charset=utf-8")
	w.Header().Set("Content-Disposition",
		`attachment; filename="`+export.Filename(conv, exporter, time.Now())+`"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		hlog.FromRequest(r).Warn().Err(err).Msg("write export")
	}
}

func (s *Server) handleDeleteConversation(w http.ResponseWriter, r *http.Request) {
	s.store.DeleteConversation(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := s.store.SelectConversation(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, storage.ErrConversationNotFound) {
			respondError(w, r, http.StatusNotFound, err.Error())
			return
		}
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, r, http.StatusOK, s.session())
}

func (s *Server) handleReorder(w http.ResponseWriter, r *http.Request) {
	var req orderRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	s.store.Reorder(req.IDs)
	respondJSON(w, r, http.StatusOK, summaries(s.store.Conversations()))
}

// ============================================================================
// ACTIVE SESSION
// ============================================================================

func (s *Server) session() SessionResponse {
	msgs := s.store.Messages()
	rendered := make([]RenderedMessage, len(msgs))
	for i, m := range msgs {
		rendered[i] = RenderedMessage{Message: m, Blocks: format.Format(m.Content)}
	}
	return SessionResponse{
		ConversationID:     s.store.ActiveID(),
		Messages:           rendered,
		Loading:            s.store.Loading(),
		LoadingFromHistory: s.store.IsLoadingFromHistory(),
		Mode:               s.store.ChatMode(),
		DataSource:         s.store.SelectedDataSource(),
	}
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, s.session())
}

// handleSend queues a message. With ?wait=1 the handler blocks until the
// reply arrives and returns the session; otherwise it returns 202 at once.
func (s *Server) handleSend(w http.ResponseWriter, r *http.Request) {
	var req sendRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	wait, _ := strconv.ParseBool(r.URL.Query().Get("wait"))
	reply := s.store.SendMessage(s.replies, req.Content)
	logger := hlog.FromRequest(r).With().Logger()

	if !wait {
		go func() {
			if rep, ok := <-reply; ok && rep.Err != nil {
				logger.Warn().Err(rep.Err).Str("conversation", rep.ConversationID).Msg("reply failed")
			}
		}()
		respondJSON(w, r, http.StatusAccepted, map[string]string{"status": "queued"})
		return
	}

	select {
	case rep, ok := <-reply:
		if ok && rep.Err != nil {
			respondError(w, r, http.StatusBadGateway, rep.Err.Error())
			return
		}
		respondJSON(w, r, http.StatusOK, s.session())
	case <-r.Context().Done():
		// The reply still lands in the store.
		logger.Debug().Msg("client went away before reply")
	}
}

func (s *Server) handleClear(w http.ResponseWriter, r *http.Request) {
	s.store.ClearMessages()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if req.Mode != nil {
		mode, err := model.ParseChatMode(*req.Mode)
		if err != nil {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		s.store.SetChatMode(mode)
	}
	if req.DataSource != nil {
		s.store.SetSelectedDataSource(strings.TrimSpace(*req.DataSource))
	}
	respondJSON(w, r, http.StatusOK, s.session())
}

// ============================================================================
// FORMAT
// ============================================================================

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	var req formatRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	blocks := format.Format(req.Content)
	resp := FormatResponse{Blocks: blocks}
	if md, _ := strconv.ParseBool(r.URL.Query().Get("markdown")); md {
		resp.Markdown = format.Markdown(blocks)
	}
	respondJSON(w, r, http.StatusOK, resp)
}

// ============================================================================
// PREFERENCES
// ============================================================================

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, preferences.Load(s.slot, *hlog.FromRequest(r)))
}

func (s *Server) handlePutPreferences(w http.ResponseWriter, r *http.Request) {
	var p preferences.AIPreferences
	if err := decodeJSON(w, r, &p); err != nil {
		respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if err := preferences.Save(s.slot, &p); err != nil {
		if errors.Is(err, preferences.ErrInvalid) {
			respondError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		respondError(w, r, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, r, http.StatusOK, preferences.Load(s.slot, *hlog.FromRequest(r)))
}
