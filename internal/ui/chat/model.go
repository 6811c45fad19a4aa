// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/storage"
	"github.com/jeranaias/docchat/internal/ui/render"
	"github.com/jeranaias/docchat/internal/ui/styles"
)

// historyPaneWidth is the width of the history pane including its border.
const historyPaneWidth = 38

// =============================================================================
// CHAT MODEL
// =============================================================================

// Model is the Bubble Tea model for the chat interface.
type Model struct {
	store    *storage.ConversationStore
	renderer *render.Renderer
	theme    *styles.Theme
	keyMap   KeyMap
	ctx      context.Context

	// historyHint is how long after opening a conversation auto-scroll
	// stays off.
	historyHint time.Duration

	// Dimensions
	width  int
	height int

	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model

	// History pane
	showHistory    bool
	historySearch  textinput.Model
	historyResults []model.Conversation
	historyIndex   int

	// status is a one-line notice; errMsg is the last reply failure.
	status string
	errMsg string
}

// Option configures a Model.
type Option func(*Model)

// WithContext sets the parent context of every send.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithHistoryHint sets how long auto-scroll stays off after a saved
// conversation is opened.
func WithHistoryHint(d time.Duration) Option {
	return func(m *Model) { m.historyHint = d }
}

// New creates a chat model over store.
func New(store *storage.ConversationStore, r *render.Renderer, opts ...Option) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your documents..."
	ti.CharLimit = 4096
	ti.Focus()

	search := textinput.New()
	search.Prompt = "Search: "
	search.Placeholder = "title or message"
	search.CharLimit = 256

	vp := viewport.New(80, 20)

	sp := spinner.New()
	sp.Spinner = spinner.Spinner{
		Frames: styles.DotsSpinner.Frames,
		FPS:    styles.DotsSpinner.Duration(),
	}

	m := Model{
		store:         store,
		renderer:      r,
		theme:         r.Theme(),
		keyMap:        DefaultKeyMap(),
		ctx:           context.Background(),
		historyHint:   storage.DefaultHistoryHint,
		viewport:      vp,
		input:         ti,
		spinner:       sp,
		historySearch: search,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refreshViewport(true)
	return m
}

// =============================================================================
// BUBBLE TEA INTERFACE
// =============================================================================

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// View renders the model.
func (m Model) View() string {
	return m.renderChat()
}

// =============================================================================
// ACCESSORS
// =============================================================================

// ShowingHistory reports whether the history pane is open.
func (m Model) ShowingHistory() bool {
	return m.showHistory
}

// HistoryResults returns the conversations listed in the history pane.
func (m Model) HistoryResults() []model.Conversation {
	return m.historyResults
}

// HistoryIndex returns the selected row of the history pane.
func (m Model) HistoryIndex() int {
	return m.historyIndex
}

// Status returns the current status line notice.
func (m Model) Status() string {
	return m.status
}

// Err returns the last reply failure, or "".
func (m Model) Err() string {
	return m.errMsg
}

// =============================================================================
// VIEWPORT
// =============================================================================

// refreshViewport re-renders the active message list. The view follows the
// newest message unless a saved conversation was just opened.
func (m *Model) refreshViewport(follow bool) {
	msgs := m.store.Messages()
	if len(msgs) == 0 {
		m.viewport.SetContent(m.theme.Muted.Render("Start a conversation by typing below."))
		return
	}
	m.viewport.SetContent(m.renderer.Messages(msgs))
	if follow && !m.store.IsLoadingFromHistory() {
		m.viewport.GotoBottom()
	}
}
