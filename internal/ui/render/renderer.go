// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"

	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/ui/styles"
)

// DefaultWordWrap is used when the configured wrap width is not positive.
const DefaultWordWrap = 80

// =============================================================================
// RENDERER
// =============================================================================

// Renderer renders chat content for one theme and wrap width.
type Renderer struct {
	theme    *styles.Theme
	md       *glamour.TermRenderer
	wordWrap int
	now      func() time.Time

	// Expanded shows sources and agent thoughts in full instead of a
	// one-line count.
	Expanded bool
}

// New creates a renderer. When the theme is plain, or glamour cannot be
// initialized, blocks are written as plain text.
func New(theme *styles.Theme, wordWrap int) *Renderer {
	if theme == nil {
		theme = styles.NewTheme(styles.ThemePlain)
	}
	if wordWrap <= 0 {
		wordWrap = DefaultWordWrap
	}
	r := &Renderer{theme: theme, wordWrap: wordWrap, now: time.Now}
	if !theme.Plain {
		md, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(theme.GlamourStyle()),
			glamour.WithWordWrap(wordWrap),
		)
		if err == nil {
			r.md = md
		}
	}
	return r
}

// NewPlain creates a renderer that never emits escape sequences.
func NewPlain(wordWrap int) *Renderer {
	return New(styles.NewTheme(styles.ThemePlain), wordWrap)
}

// Theme returns the renderer's theme.
func (r *Renderer) Theme() *styles.Theme {
	return r.theme
}

// SetClock replaces the time source used for relative timestamps.
func (r *Renderer) SetClock(now func() time.Time) {
	if now != nil {
		r.now = now
	}
}

// Blocks renders formatter output.
func (r *Renderer) Blocks(blocks []format.Block) string {
	if r.md == nil {
		return PlainBlocks(blocks)
	}
	out, err := r.md.Render(format.Markdown(blocks))
	if err != nil {
		return PlainBlocks(blocks)
	}
	return strings.Trim(out, "\n")
}

// Content formats raw message text and renders it.
func (r *Renderer) Content(content string) string {
	return r.Blocks(format.Format(content))
}

// =============================================================================
// MESSAGES
// =============================================================================

// Message renders one message with its header line and, for replies, the
// agent name, sources and agent thoughts.
func (r *Renderer) Message(m model.Message) string {
	t := r.theme
	var sb strings.Builder

	label := t.AssistantLabel.Render(m.Role.DisplayName())
	if m.IsUser() {
		label = t.UserLabel.Render(m.Role.DisplayName())
	}
	sb.WriteString(label)
	if !m.Timestamp.IsZero() {
		sb.WriteString("  ")
		sb.WriteString(t.Timestamp.Render(FormatClock(m.Timestamp)))
	}
	if m.Metadata != nil && m.Metadata.Agent != "" && !m.IsUser() {
		sb.WriteString("  ")
		sb.WriteString(t.ModeAgent.Render("[" + m.Metadata.Agent + "]"))
	}
	sb.WriteString("\n")

	body := r.Content(m.Content)
	if m.IsUser() {
		body = t.UserText.Render(body)
	}
	sb.WriteString(body)

	if m.HasAgentThoughts() {
		sb.WriteString("\n")
		sb.WriteString(r.agentThoughts(m.Metadata.AgentThoughts))
	}
	if m.HasSources() {
		sb.WriteString("\n")
		sb.WriteString(r.sources(m.Metadata.Sources))
	}
	return sb.String()
}

// Messages renders a message list separated by blank lines.
func (r *Renderer) Messages(msgs []model.Message) string {
	parts := make([]string, len(msgs))
	for i, m := range msgs {
		parts[i] = r.Message(m)
	}
	return strings.Join(parts, "\n\n")
}

func (r *Renderer) sources(sources []string) string {
	head := fmt.Sprintf("Referenced Files (%d)", len(sources))
	if !r.Expanded {
		return r.theme.Sources.Render(head)
	}
	lines := []string{head}
	for _, s := range sources {
		lines = append(lines, "  - "+s)
	}
	return r.theme.Sources.Render(strings.Join(lines, "\n"))
}

func (r *Renderer) agentThoughts(thoughts []model.AgentThought) string {
	head := fmt.Sprintf("Agent Thoughts (%d)", len(thoughts))
	if !r.Expanded {
		return r.theme.AgentThought.Render(head)
	}
	lines := []string{head}
	for _, th := range thoughts {
		who := th.Agent
		if th.PassedTo != "" {
			who += " -> " + th.PassedTo
		}
		lines = append(lines, "  "+who+": "+th.Thought)
	}
	return r.theme.AgentThought.Render(strings.Join(lines, "\n"))
}
