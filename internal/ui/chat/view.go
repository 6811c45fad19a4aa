// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package chat

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/ui/styles"
	"github.com/jeranaias/docchat/internal/util"
)

// =============================================================================
// MAIN RENDER
// =============================================================================

// renderChat renders the complete view.
// Layout: header (1 line) + [history pane | messages] + input (1 line) + status (1 line)
func (m Model) renderChat() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	body := m.viewport.View()
	if m.showHistory {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.renderHistory(), body)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		body,
		m.renderInput(),
		m.renderStatusBar(),
	)
}

func (m Model) renderHeader() string {
	title := "docchat"
	if id := m.store.ActiveID(); id != "" {
		if c, ok := m.store.Conversation(id); ok {
			title += " - " + util.SingleLine(c.Title)
		}
	}

	mode := m.store.ChatMode()
	modeStyle := m.theme.ModeChat
	if mode == model.ModeAgent {
		modeStyle = m.theme.ModeAgent
	}
	right := modeStyle.Render("[" + mode.String() + "]")
	if src := m.store.SelectedDataSource(); src != "" && mode == model.ModeAgent {
		right += " " + m.theme.Muted.Render(src)
	}

	space := m.width - 2 - util.StringWidth(title) - lipgloss.Width(right)
	if space < 1 {
		title = util.TruncateWidth(title, m.width-2-lipgloss.Width(right)-1)
		space = 1
	}
	return m.theme.Header.Width(m.width).Render(title + strings.Repeat(" ", space) + right)
}

func (m Model) renderInput() string {
	if m.showHistory {
		return m.theme.Muted.Render("  (history open)")
	}
	return m.input.View()
}

func (m Model) renderStatusBar() string {
	var left string
	switch {
	case m.errMsg != "":
		left = m.theme.Error.Render(styles.StatusIndicators.Error + " " + m.errMsg)
	case m.store.Loading():
		left = m.spinner.View() + " Thinking"
	case m.status != "":
		left = m.status
	}

	bindings := m.keyMap.ChatHelp()
	if m.showHistory {
		bindings = m.keyMap.HistoryHelp()
	}
	help := m.theme.Help.Render(helpLine(bindings))

	width := m.width - 2
	space := width - lipgloss.Width(left) - lipgloss.Width(help)
	if space < 1 {
		return m.theme.StatusBar.Width(m.width).Render(util.TruncateWidth(left, width))
	}
	return m.theme.StatusBar.Width(m.width).Render(left + strings.Repeat(" ", space) + help)
}

func helpLine(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return strings.Join(parts, "  ")
}

// =============================================================================
// HISTORY PANE
// =============================================================================

func (m Model) renderHistory() string {
	inner := historyPaneWidth - 4 // border + padding
	height := m.viewport.Height - 2
	if height < 1 {
		height = 1
	}

	var lines []string
	lines = append(lines, m.historySearch.View(), "")

	list := m.renderer.HistoryList(m.historyResults, inner, m.historyIndex)
	listLines := strings.Split(list, "\n")

	// Keep the selected entry on screen: each entry takes up to 4 lines.
	avail := height - len(lines)
	if avail < 1 {
		avail = 1
	}
	start := 0
	if sel := m.historyIndex * 4; sel+4 > avail {
		start = sel + 4 - avail
	}
	if start > len(listLines) {
		start = len(listLines)
	}
	end := start + avail
	if end > len(listLines) {
		end = len(listLines)
	}
	lines = append(lines, listLines[start:end]...)

	return m.theme.HistoryBorder.
		Width(historyPaneWidth - 2).
		Height(height).
		Render(strings.Join(lines, "\n"))
}
