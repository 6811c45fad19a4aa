// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat/internal/model"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		if key.Matches(msg, m.keyMap.Quit) {
			return m, tea.Quit
		}
		if m.showHistory {
			return m.handleHistoryKey(msg)
		}
		return m.handleKey(msg)

	case ReplyMsg:
		if msg.Reply.Err != nil {
			m.errMsg = msg.Reply.Err.Error()
		} else {
			m.errMsg = ""
		}
		m.refreshViewport(true)
		if m.showHistory {
			m.refreshHistory()
		}
		return m, nil

	case HistoryHintExpiredMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.showHistory {
		m.historySearch, cmd = m.historySearch.Update(msg)
	} else {
		m.input, cmd = m.input.Update(msg)
	}
	return m, cmd
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.theme.SetSize(m.width, m.height)
	m.layout()
	m.refreshViewport(true)
	return m, nil
}

// layout sizes the viewport and input from the window size.
func (m *Model) layout() {
	// header + input + status bar, one line each
	const reserved = 3

	width := m.width
	if m.showHistory {
		width -= historyPaneWidth
	}
	if width < 20 {
		width = 20
	}
	height := m.height - reserved
	if height < 1 {
		height = 1
	}

	m.viewport.Width = width
	m.viewport.Height = height

	const promptLen = 2 // "> "
	inputWidth := width - promptLen - 1
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
	m.historySearch.Width = historyPaneWidth - 12
}

// =============================================================================
// CHAT KEYS
// =============================================================================

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.Submit):
		return m.submit()

	case key.Matches(msg, m.keyMap.ToggleHistory):
		return m.openHistory()

	case key.Matches(msg, m.keyMap.NewConversation):
		m.store.ClearMessages()
		m.errMsg = ""
		m.status = "New conversation"
		m.refreshViewport(true)
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleMode):
		next := model.ModeAgent
		if m.store.ChatMode() == model.ModeAgent {
			next = model.ModeChat
		}
		m.store.SetChatMode(next)
		m.status = "Mode: " + next.String()
		return m, nil

	case key.Matches(msg, m.keyMap.ToggleDetails):
		m.renderer.Expanded = !m.renderer.Expanded
		m.refreshViewport(false)
		return m, nil

	case key.Matches(msg, m.keyMap.ScrollUp):
		m.viewport.LineUp(1)
		return m, nil
	case key.Matches(msg, m.keyMap.ScrollDown):
		m.viewport.LineDown(1)
		return m, nil
	case key.Matches(msg, m.keyMap.PageUp):
		m.viewport.HalfViewUp()
		return m, nil
	case key.Matches(msg, m.keyMap.PageDown):
		m.viewport.HalfViewDown()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit sends the input line. Blank input does nothing.
func (m Model) submit() (tea.Model, tea.Cmd) {
	content := m.input.Value()
	ch := m.store.SendMessage(m.ctx, content)
	m.input.Reset()
	m.status = ""
	m.errMsg = ""
	m.refreshViewport(true)
	return m, tea.Batch(waitForReply(ch), m.spinner.Tick)
}

// =============================================================================
// HISTORY PANE
// =============================================================================

func (m Model) openHistory() (tea.Model, tea.Cmd) {
	m.showHistory = true
	m.input.Blur()
	m.historySearch.SetValue("")
	m.historyIndex = 0
	m.refreshHistory()
	m.layout()
	m.refreshViewport(false)
	return m, m.historySearch.Focus()
}

func (m Model) closeHistory() (tea.Model, tea.Cmd) {
	m.showHistory = false
	m.historySearch.Blur()
	m.layout()
	m.refreshViewport(false)
	return m, m.input.Focus()
}

// refreshHistory re-runs the search and keeps the selection in range.
func (m *Model) refreshHistory() {
	m.historyResults = m.store.Search(m.historySearch.Value())
	if m.historyIndex >= len(m.historyResults) {
		m.historyIndex = len(m.historyResults) - 1
	}
	if m.historyIndex < 0 {
		m.historyIndex = 0
	}
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keyMap.CloseHistory), key.Matches(msg, m.keyMap.ToggleHistory):
		return m.closeHistory()

	case key.Matches(msg, m.keyMap.Submit):
		return m.selectHistory()

	case key.Matches(msg, m.keyMap.MoveUp):
		m.moveHistory(-1)
		return m, nil
	case key.Matches(msg, m.keyMap.MoveDown):
		m.moveHistory(1)
		return m, nil

	case key.Matches(msg, m.keyMap.HistoryUp):
		if m.historyIndex > 0 {
			m.historyIndex--
		}
		return m, nil
	case key.Matches(msg, m.keyMap.HistoryDown):
		if m.historyIndex < len(m.historyResults)-1 {
			m.historyIndex++
		}
		return m, nil

	case key.Matches(msg, m.keyMap.HistoryDelete):
		if c, ok := m.selectedHistory(); ok {
			m.store.DeleteConversation(c.ID)
			m.status = "Deleted " + c.Title
			m.refreshHistory()
			m.refreshViewport(false)
		}
		return m, nil

	case key.Matches(msg, m.keyMap.NewConversation):
		m.store.ClearMessages()
		m.refreshViewport(true)
		return m.closeHistory()
	}

	before := m.historySearch.Value()
	var cmd tea.Cmd
	m.historySearch, cmd = m.historySearch.Update(msg)
	if m.historySearch.Value() != before {
		m.historyIndex = 0
		m.refreshHistory()
	}
	return m, cmd
}

func (m Model) selectedHistory() (model.Conversation, bool) {
	if m.historyIndex < 0 || m.historyIndex >= len(m.historyResults) {
		return model.Conversation{}, false
	}
	return m.historyResults[m.historyIndex], true
}

// selectHistory opens the highlighted conversation. Auto-scroll stays off
// until the history hint expires.
func (m Model) selectHistory() (tea.Model, tea.Cmd) {
	c, ok := m.selectedHistory()
	if !ok {
		return m, nil
	}
	if err := m.store.SelectConversation(c.ID); err != nil {
		m.status = err.Error()
		m.refreshHistory()
		return m, nil
	}
	m.errMsg = ""
	m.status = ""
	m.refreshViewport(false)
	m.viewport.GotoTop()

	next, cmd := m.closeHistory()
	hint := tea.Tick(m.historyHint, func(time.Time) tea.Msg { return HistoryHintExpiredMsg{} })
	return next, tea.Batch(cmd, hint)
}

// moveHistory swaps the selected conversation with its neighbor in the
// visible list and saves that order; conversations hidden by the search
// keep their relative order after the visible ones.
func (m *Model) moveHistory(delta int) {
	from := m.historyIndex
	to := from + delta
	if from < 0 || from >= len(m.historyResults) || to < 0 || to >= len(m.historyResults) {
		return
	}
	ids := make([]string, len(m.historyResults))
	for i, c := range m.historyResults {
		ids[i] = c.ID
	}
	ids[from], ids[to] = ids[to], ids[from]
	m.store.Reorder(ids)
	m.historyIndex = to
	m.refreshHistory()
}
