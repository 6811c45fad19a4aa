// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/model"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports conversations to Markdown format.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a conversation to Markdown format.
func (e *MarkdownExporter) Export(conv model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}

	var sb strings.Builder

	// YAML frontmatter
	if e.options.IncludeMetadata {
		sb.WriteString("---\n")
		fmt.Fprintf(&sb, "id: %s\n", escapeYAML(conv.ID))
		fmt.Fprintf(&sb, "title: %s\n", escapeYAML(conv.Title))
		fmt.Fprintf(&sb, "date: %s\n", firstTimestamp(conv).Format(time.RFC3339))
		fmt.Fprintf(&sb, "updated: %s\n", conv.Timestamp.Format(time.RFC3339))
		fmt.Fprintf(&sb, "messages: %d\n", len(conv.Messages))
		fmt.Fprintf(&sb, "exported: %s\n", e.options.now().Format(time.RFC3339))
		sb.WriteString("generator: docchat\n")
		sb.WriteString("---\n\n")
	}

	fmt.Fprintf(&sb, "# %s\n\n", escapeMarkdown(conv.Title))
	sb.WriteString("## Conversation\n\n")

	for i, msg := range conv.Messages {
		if e.options.IncludeTimestamps {
			fmt.Fprintf(&sb, "### %s <sub>%s</sub>\n\n", msg.Role.DisplayName(), formatShortTimestamp(msg.Timestamp))
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", msg.Role.DisplayName())
		}

		sb.WriteString(e.formatMessageContent(msg))
		sb.WriteString("\n\n")

		if e.options.IncludeDetails {
			if details := e.formatDetails(msg.Metadata); details != "" {
				sb.WriteString(details)
				sb.WriteString("\n")
			}
		}

		if i < len(conv.Messages)-1 {
			sb.WriteString("---\n\n")
		}
	}

	sb.WriteString("\n---\n\n")
	fmt.Fprintf(&sb, "*Exported from docchat on %s*\n",
		e.options.now().Format("January 2, 2006 at 3:04 PM"))

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// =============================================================================
// FORMATTING HELPERS
// =============================================================================

// formatMessageContent normalizes assistant replies through the formatter.
// User text is kept as typed.
func (e *MarkdownExporter) formatMessageContent(msg model.Message) string {
	if msg.IsUser() {
		return strings.TrimSpace(msg.Content)
	}
	return strings.TrimSpace(format.Markdown(format.Format(msg.Content)))
}

// formatDetails lists sources and agent thoughts.
func (e *MarkdownExporter) formatDetails(meta *model.Metadata) string {
	if meta == nil {
		return ""
	}
	var sb strings.Builder
	if len(meta.Sources) > 0 {
		fmt.Fprintf(&sb, "**Referenced Files (%d)**\n\n", len(meta.Sources))
		for _, src := range meta.Sources {
			fmt.Fprintf(&sb, "- `%s`\n", src)
		}
		sb.WriteString("\n")
	}
	if len(meta.AgentThoughts) > 0 {
		fmt.Fprintf(&sb, "**Agent Thoughts (%d)**\n\n", len(meta.AgentThoughts))
		quotes := make([]string, len(meta.AgentThoughts))
		for i, th := range meta.AgentThoughts {
			if th.PassedTo != "" {
				quotes[i] = fmt.Sprintf("> **%s** -> %s: %s", th.Agent, th.PassedTo, th.Thought)
			} else {
				quotes[i] = fmt.Sprintf("> **%s**: %s", th.Agent, th.Thought)
			}
		}
		sb.WriteString(strings.Join(quotes, "\n>\n"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// =============================================================================
// ESCAPING HELPERS
// =============================================================================

// escapeMarkdown escapes special Markdown characters in plain text.
func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "#", "\\#")
	s = strings.ReplaceAll(s, "*", "\\*")
	s = strings.ReplaceAll(s, "_", "\\_")
	s = strings.ReplaceAll(s, "[", "\\[")
	s = strings.ReplaceAll(s, "]", "\\]")
	return s
}

// escapeYAML quotes values containing YAML special characters.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#|>@`\"'[]{}!%&*\n\r\\") || strings.HasPrefix(s, " ") || strings.HasSuffix(s, " ") {
		s = strings.ReplaceAll(s, "\\", "\\\\")
		s = strings.ReplaceAll(s, "\"", "\\\"")
		s = strings.ReplaceAll(s, "\n", "\\n")
		s = strings.ReplaceAll(s, "\r", "\\r")
		return fmt.Sprintf("\"%s\"", s)
	}
	return s
}
