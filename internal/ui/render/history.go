// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strings"

	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/util"
)

// =============================================================================
// HISTORY LIST
// =============================================================================

// HistoryEntry renders one saved conversation as two or three lines: title,
// last message preview, and "<relative time> - <n> messages". Lines are
// truncated to width terminal columns.
func (r *Renderer) HistoryEntry(c model.Conversation, width int, selected bool) string {
	if width < 10 {
		width = 10
	}
	t := r.theme

	title := util.PadRight(util.TruncateWidth(util.SingleLine(c.Title), width), width)
	meta := fmt.Sprintf("%s - %d messages", FormatRelative(c.Timestamp, r.now()), c.MessageCount)

	lines := []string{t.HistoryTitle.Render(title)}
	if preview := util.SingleLine(c.LastMessage); preview != "" {
		lines = append(lines, t.HistoryPreview.Render(util.PadRight(util.TruncateWidth(preview, width), width)))
	}
	lines = append(lines, t.HistoryTime.Render(util.PadRight(util.TruncateWidth(meta, width), width)))

	out := strings.Join(lines, "\n")
	if selected {
		return t.HistorySelected.Render(out)
	}
	return out
}

// HistoryList renders conversations newest-first as the store keeps them.
// selected is the highlighted index, or -1 for none.
func (r *Renderer) HistoryList(convs []model.Conversation, width, selected int) string {
	if len(convs) == 0 {
		return r.theme.Muted.Render("No conversations")
	}
	parts := make([]string, len(convs))
	for i, c := range convs {
		parts[i] = r.HistoryEntry(c, width, i == selected)
	}
	return strings.Join(parts, "\n\n")
}

// HistoryTable renders a one-line-per-conversation listing for the CLI:
// index, id, relative time, message count and title.
func (r *Renderer) HistoryTable(convs []model.Conversation, width int) string {
	if len(convs) == 0 {
		return "No conversations"
	}
	idWidth := 2
	for _, c := range convs {
		if w := util.StringWidth(c.ID); w > idWidth {
			idWidth = w
		}
	}
	now := r.now()
	var sb strings.Builder
	for i, c := range convs {
		when := util.PadRight(FormatRelative(c.Timestamp, now), 18)
		line := fmt.Sprintf("%3d  %s  %s %3d  %s",
			i+1, util.PadRight(c.ID, idWidth), when, c.MessageCount, util.SingleLine(c.Title))
		if width > 0 {
			line = util.TruncateWidth(line, width)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}
