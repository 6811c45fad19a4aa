// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package storage

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/preferences"
	"github.com/jeranaias/docchat/internal/responder"
	"github.com/jeranaias/docchat/internal/slot"
)

const (
	// DefaultMaxConversations caps the saved collection.
	DefaultMaxConversations = 20

	// DefaultHistoryHint is how long IsLoadingFromHistory stays set after
	// LoadConversation.
	DefaultHistoryHint = 100 * time.Millisecond
)

// Reply is the outcome of one SendMessage call.
type Reply struct {
	// ConversationID is the conversation the question was asked in.
	ConversationID string

	// Message is the assistant message that was appended. Zero on error.
	Message model.Message

	// Err is the responder failure, if any.
	Err error
}

// =============================================================================
// OPTIONS
// =============================================================================

// Option configures a ConversationStore.
type Option func(*ConversationStore)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(s *ConversationStore) { s.logger = l }
}

// WithMaxConversations sets the collection cap. Values below 1 are ignored.
func WithMaxConversations(n int) Option {
	return func(s *ConversationStore) {
		if n > 0 {
			s.maxConversations = n
		}
	}
}

// WithHistoryHint sets how long IsLoadingFromHistory stays set.
func WithHistoryHint(d time.Duration) Option {
	return func(s *ConversationStore) { s.historyHint = d }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ConversationStore) { s.now = now }
}

// WithIDGenerator replaces the conversation id generator.
func WithIDGenerator(gen func() string) Option {
	return func(s *ConversationStore) { s.newID = gen }
}

// WithPreferences supplies the AI preferences attached to each request.
func WithPreferences(get func() *preferences.AIPreferences) Option {
	return func(s *ConversationStore) { s.prefs = get }
}

// NewConversationID returns a fresh "conv-<uuid>" id.
func NewConversationID() string {
	return "conv-" + uuid.NewString()
}

// =============================================================================
// CONVERSATION STORE
// =============================================================================

// ConversationStore owns the saved conversation collection and the active
// message list, and keeps them reconciled with the conversations slot.
//
// Every accessor returns a deep copy. Slot write failures are logged, never
// returned: the in-memory state stays authoritative for the session.
//
// The store is safe for concurrent use. Sends are not queued: a second
// SendMessage before the first reply arrives appends its user message ahead
// of that reply.
type ConversationStore struct {
	slot      slot.Slot
	responder responder.Responder
	logger    zerolog.Logger

	maxConversations int
	historyHint      time.Duration
	now              func() time.Time
	newID            func() string
	prefs            func() *preferences.AIPreferences

	baseCtx context.Context
	cancel  context.CancelFunc

	mu            sync.Mutex
	conversations []model.Conversation
	messages      []model.Message
	activeID      string
	session       uint64 // bumped whenever the active list is swapped out
	pending       int
	fromHistory   bool
	hintTimer     *time.Timer
	hintSeq       uint64
	dataSource    string
	mode          model.ChatMode
	closed        bool
}

// NewConversationStore creates a store over s that answers with r. Call Load
// before use.
func NewConversationStore(s slot.Slot, r responder.Responder, opts ...Option) *ConversationStore {
	cs := &ConversationStore{
		slot:             s,
		responder:        r,
		logger:           zerolog.Nop(),
		maxConversations: DefaultMaxConversations,
		historyHint:      DefaultHistoryHint,
		now:              time.Now,
		newID:            NewConversationID,
		prefs:            func() *preferences.AIPreferences { return nil },
		mode:             model.ModeChat,
	}
	for _, opt := range opts {
		opt(cs)
	}
	cs.baseCtx, cs.cancel = context.WithCancel(context.Background())
	return cs
}

// =============================================================================
// LIFECYCLE
// =============================================================================

// Load reads the saved collection, falling back to the seed conversations
// when nothing is saved or the saved value is unreadable. Saved seed entries
// without messages get their seed messages back; other empty entries are
// pruned and the pruned collection is written back.
func (s *ConversationStore) Load() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = s.readLocked()
}

// Reload re-reads the saved collection after another process changed it.
// The active message list is kept.
func (s *ConversationStore) Reload() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.conversations = s.readLocked()
}

// Close stops the history-hint timer and cancels pending replies. Replies
// that still arrive are delivered on their channel without touching state.
func (s *ConversationStore) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.hintTimer != nil {
		s.hintTimer.Stop()
	}
	s.fromHistory = false
	s.cancel()
}

func (s *ConversationStore) readLocked() []model.Conversation {
	now := s.now()
	convs, ok, err := ReadCollection(s.slot)
	switch {
	case err != nil:
		s.logger.Warn().Err(err).Str("key", slot.KeyConversations).
			Msg("saved conversations unreadable, using seed data")
		return SeedConversations(now)
	case !ok:
		s.logger.Debug().Msg("no saved conversations, using seed data")
		return SeedConversations(now)
	}

	seeds := seedByID(now)
	seen := make(map[string]bool, len(convs))
	out := make([]model.Conversation, 0, len(convs))
	changed := false
	for _, c := range convs {
		if seen[c.ID] {
			changed = true
			continue
		}
		seen[c.ID] = true
		if c.IsEmpty() {
			if seed, ok := seeds[c.ID]; ok {
				c.Messages = seed.Messages
			}
		}
		if c.IsEmpty() {
			changed = true
			continue
		}
		c.MessageCount = len(c.Messages)
		out = append(out, c)
	}

	if changed {
		s.logger.Info().Int("kept", len(out)).Int("read", len(convs)).
			Msg("pruned empty or duplicate conversations")
		s.persistList(out)
	}
	return out
}

// =============================================================================
// ACTIVE SESSION
// =============================================================================

// SendMessage appends a user message with the trimmed content and asks the
// responder for a reply. Blank content is ignored and the returned channel
// is already closed. Otherwise exactly one Reply is delivered, then the
// channel closes.
//
// A failed reply leaves the user message in place. If the active list was
// swapped out before the reply arrived, the reply is appended to the saved
// conversation it answers instead.
func (s *ConversationStore) SendMessage(ctx context.Context, content string) <-chan Reply {
	ch := make(chan Reply, 1)
	text := strings.TrimSpace(content)
	if text == "" {
		close(ch)
		return ch
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		ch <- Reply{Err: ErrStoreClosed}
		close(ch)
		return ch
	}
	s.messages = append(s.messages, model.NewUserMessage(text, s.stampLocked(s.messages)))
	s.pending++
	s.onActiveListChangedLocked()

	req := responder.Request{
		Content:     text,
		DataSource:  s.dataSource,
		Mode:        s.mode,
		Preferences: s.prefs().Clone(),
	}
	origin, session := s.activeID, s.session
	s.mu.Unlock()

	go s.awaitReply(ctx, req, origin, session, ch)
	return ch
}

func (s *ConversationStore) awaitReply(ctx context.Context, req responder.Request, origin string, session uint64, ch chan<- Reply) {
	defer close(ch)

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stop := context.AfterFunc(s.baseCtx, cancel)
	defer stop()

	msg, err := s.responder.Respond(rctx, req)

	s.mu.Lock()
	if s.pending > 0 {
		s.pending--
	}
	if err != nil {
		s.mu.Unlock()
		s.logger.Warn().Err(err).Str("conversation", origin).Msg("reply failed")
		ch <- Reply{ConversationID: origin, Err: err}
		return
	}

	var meta *model.Metadata
	if msg.Metadata != nil {
		m := msg.Metadata.Clone()
		meta = &m
	}

	var reply model.Message
	switch {
	case s.closed:
		reply = model.NewAssistantMessage(msg.Content, s.now(), meta)
	case session == s.session || origin == s.activeID:
		reply = model.NewAssistantMessage(msg.Content, s.stampLocked(s.messages), meta)
		s.messages = append(s.messages, reply)
		s.onActiveListChangedLocked()
	default:
		reply = s.appendToSavedLocked(origin, msg.Content, meta)
	}
	s.mu.Unlock()

	ch <- Reply{ConversationID: origin, Message: reply.Clone()}
}

// appendToSavedLocked adds a late reply to the saved conversation it
// answers. The entry keeps its position. A conversation deleted meanwhile
// is not recreated.
func (s *ConversationStore) appendToSavedLocked(id, content string, meta *model.Metadata) model.Message {
	for i, c := range s.conversations {
		if c.ID != id {
			continue
		}
		reply := model.NewAssistantMessage(content, s.stampLocked(c.Messages), meta)
		msgs := append(model.CloneMessages(c.Messages), reply)
		s.conversations[i] = model.Snapshot(id, msgs, s.now())
		s.persistLocked()
		return reply
	}
	s.logger.Debug().Str("conversation", id).Msg("reply for a conversation that no longer exists")
	return model.NewAssistantMessage(content, s.now(), meta)
}

// stampLocked returns the current time, clamped so it never precedes the
// last message in msgs.
func (s *ConversationStore) stampLocked(msgs []model.Message) time.Time {
	ts := s.now()
	if n := len(msgs); n > 0 && ts.Before(msgs[n-1].Timestamp) {
		ts = msgs[n-1].Timestamp
	}
	return ts
}

// LoadConversation replaces the active message list and sets
// IsLoadingFromHistory for the history-hint delay. The active id is kept;
// use SelectConversation to switch to a saved conversation.
func (s *ConversationStore) LoadConversation(msgs []model.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadLocked(msgs)
	s.onActiveListChangedLocked()
}

func (s *ConversationStore) loadLocked(msgs []model.Message) {
	s.messages = model.CloneMessages(msgs)
	s.session++
	if s.closed {
		return
	}

	s.hintSeq++
	seq := s.hintSeq
	if s.hintTimer != nil {
		s.hintTimer.Stop()
	}
	if s.historyHint <= 0 {
		s.fromHistory = false
		return
	}
	s.fromHistory = true
	s.hintTimer = time.AfterFunc(s.historyHint, func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.hintSeq == seq {
			s.fromHistory = false
		}
	})
}

// SelectConversation makes id the active conversation and loads its
// messages. The conversation moves to the front of the collection.
func (s *ConversationStore) SelectConversation(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID == id {
			s.activeID = id
			s.loadLocked(c.Messages)
			s.onActiveListChangedLocked()
			return nil
		}
	}
	return notFound(id)
}

// ClearMessages empties the active list and detaches it from its saved
// conversation. The saved collection is untouched.
func (s *ConversationStore) ClearMessages() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

func (s *ConversationStore) clearLocked() {
	s.messages = nil
	s.activeID = ""
	s.session++
}

// OnActiveListChanged saves a snapshot of the active list as the most
// recent conversation. It does nothing while the list is empty. The first
// call of a fresh session assigns the conversation id.
func (s *ConversationStore) OnActiveListChanged() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onActiveListChangedLocked()
}

func (s *ConversationStore) onActiveListChangedLocked() {
	if len(s.messages) == 0 || s.closed {
		return
	}
	if s.activeID == "" {
		s.activeID = s.newID()
	}

	snap := model.Snapshot(s.activeID, s.messages, s.now())
	next := make([]model.Conversation, 0, len(s.conversations)+1)
	next = append(next, snap)
	for _, c := range s.conversations {
		if c.ID == snap.ID || c.IsEmpty() {
			continue
		}
		next = append(next, c)
	}
	if len(next) > s.maxConversations {
		next = next[:s.maxConversations]
	}
	s.conversations = next
	s.persistLocked()
}

// =============================================================================
// COLLECTION
// =============================================================================

// DeleteConversation removes id from the collection. Deleting the active
// conversation also clears the active list. Unknown ids are ignored.
func (s *ConversationStore) DeleteConversation(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.Conversation, 0, len(s.conversations))
	for _, c := range s.conversations {
		if c.ID != id {
			next = append(next, c)
		}
	}
	if len(next) == len(s.conversations) {
		return
	}
	s.conversations = next
	s.persistLocked()

	if s.activeID == id {
		s.clearLocked()
	}
}

// Reorder moves the conversations named by ids to the front, in that order.
// Entries not named keep their relative order after them. Unknown and
// repeated ids are ignored.
//
// ids is typically the reordered result of a Search, so dragging within a
// filtered view never drops the entries that are hidden by the filter.
func (s *ConversationStore) Reorder(ids []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID := make(map[string]model.Conversation, len(s.conversations))
	for _, c := range s.conversations {
		byID[c.ID] = c
	}

	placed := make(map[string]bool, len(ids))
	next := make([]model.Conversation, 0, len(s.conversations))
	for _, id := range ids {
		c, ok := byID[id]
		if !ok || placed[id] {
			continue
		}
		placed[id] = true
		next = append(next, c)
	}
	if len(next) == 0 {
		return
	}
	for _, c := range s.conversations {
		if !placed[c.ID] {
			next = append(next, c)
		}
	}
	s.conversations = next
	s.persistLocked()
}

// Search returns the conversations whose title or last message contains
// query, ignoring case. A blank query returns the whole collection. Stored
// order is preserved.
func (s *ConversationStore) Search(query string) []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()

	if strings.TrimSpace(query) == "" {
		return model.CloneConversations(s.conversations)
	}

	fold := cases.Fold()
	q := fold.String(query)
	out := make([]model.Conversation, 0)
	for _, c := range s.conversations {
		if strings.Contains(fold.String(c.Title), q) || strings.Contains(fold.String(c.LastMessage), q) {
			out = append(out, c.Clone())
		}
	}
	return out
}

func (s *ConversationStore) persistLocked() {
	s.persistList(s.conversations)
}

func (s *ConversationStore) persistList(convs []model.Conversation) {
	if err := WriteCollection(s.slot, convs); err != nil {
		s.logger.Error().Err(err).Str("key", slot.KeyConversations).Msg("save conversations")
	}
}

// =============================================================================
// ACCESSORS
// =============================================================================

// Messages returns the active message list.
func (s *ConversationStore) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneMessages(s.messages)
}

// Conversations returns the saved collection in stored order.
func (s *ConversationStore) Conversations() []model.Conversation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.CloneConversations(s.conversations)
}

// Conversation returns the saved conversation with id.
func (s *ConversationStore) Conversation(id string) (model.Conversation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range s.conversations {
		if c.ID == id {
			return c.Clone(), true
		}
	}
	return model.Conversation{}, false
}

// ActiveID returns the id of the active conversation, or "" for a fresh
// session that has not been saved yet.
func (s *ConversationStore) ActiveID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.activeID
}

// Loading reports whether a reply is pending.
func (s *ConversationStore) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending > 0
}

// IsLoadingFromHistory reports whether the active list was just swapped in
// from history. Renderers use it to skip auto-scroll.
func (s *ConversationStore) IsLoadingFromHistory() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fromHistory
}

// SelectedDataSource returns the data source sent with agent-mode requests.
func (s *ConversationStore) SelectedDataSource() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dataSource
}

// SetSelectedDataSource sets the data source; "" clears it.
func (s *ConversationStore) SetSelectedDataSource(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dataSource = name
}

// ChatMode returns the current chat mode.
func (s *ConversationStore) ChatMode() model.ChatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetChatMode sets the chat mode used for subsequent sends.
func (s *ConversationStore) SetChatMode(m model.ChatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = m
}
