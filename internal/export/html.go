// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"html"
	"regexp"
	"strings"
	"time"

	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/model"
)

// =============================================================================
// HTML EXPORTER
// =============================================================================

// HTMLExporter exports conversations to a standalone HTML page with
// embedded CSS.
type HTMLExporter struct {
	options *Options
}

// NewHTMLExporter creates a new HTML exporter.
func NewHTMLExporter(opts *Options) *HTMLExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &HTMLExporter{options: opts}
}

// Export converts a conversation to HTML format.
func (e *HTMLExporter) Export(conv model.Conversation) ([]byte, error) {
	if err := validate(conv); err != nil {
		return nil, err
	}

	theme := e.options.Theme
	if theme != "light" {
		theme = "dark"
	}

	var sb strings.Builder
	sb.WriteString("<!DOCTYPE html>\n")
	sb.WriteString("<html lang=\"en\">\n")
	sb.WriteString("<head>\n")
	sb.WriteString("    <meta charset=\"UTF-8\">\n")
	sb.WriteString("    <meta name=\"viewport\" content=\"width=device-width, initial-scale=1.0\">\n")
	fmt.Fprintf(&sb, "    <title>%s</title>\n", html.EscapeString(conv.Title))
	sb.WriteString("    <meta name=\"generator\" content=\"docchat\">\n")
	fmt.Fprintf(&sb, "    <meta name=\"date\" content=\"%s\">\n", firstTimestamp(conv).Format(time.RFC3339))
	sb.WriteString(css)
	sb.WriteString("</head>\n")
	fmt.Fprintf(&sb, "<body class=\"%s-theme\">\n", theme)
	sb.WriteString("    <div class=\"container\">\n")

	if e.options.IncludeMetadata {
		sb.WriteString(e.renderHeader(conv))
	}

	sb.WriteString("        <main class=\"conversation\">\n")
	for _, msg := range conv.Messages {
		sb.WriteString(e.renderMessage(msg))
	}
	sb.WriteString("        </main>\n")

	sb.WriteString("        <footer class=\"footer\">\n")
	fmt.Fprintf(&sb, "            Exported from docchat on %s\n",
		html.EscapeString(e.options.now().Format("January 2, 2006 at 3:04 PM")))
	sb.WriteString("        </footer>\n")
	sb.WriteString("    </div>\n")
	sb.WriteString("</body>\n")
	sb.WriteString("</html>\n")

	return []byte(sb.String()), nil
}

// FileExtension returns the file extension for HTML.
func (e *HTMLExporter) FileExtension() string {
	return ".html"
}

// MimeType returns the MIME type for HTML.
func (e *HTMLExporter) MimeType() string {
	return "text/html"
}

// =============================================================================
// RENDERING FUNCTIONS
// =============================================================================

func (e *HTMLExporter) renderHeader(conv model.Conversation) string {
	var sb strings.Builder
	sb.WriteString("        <header class=\"header\">\n")
	fmt.Fprintf(&sb, "            <h1>%s</h1>\n", html.EscapeString(conv.Title))
	sb.WriteString("            <div class=\"metadata\">\n")
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Started:</strong> %s</span>\n", formatTimestamp(firstTimestamp(conv)))
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Updated:</strong> %s</span>\n", formatTimestamp(conv.Timestamp))
	fmt.Fprintf(&sb, "                <span class=\"meta-item\"><strong>Messages:</strong> %d</span>\n", len(conv.Messages))
	sb.WriteString("            </div>\n")
	sb.WriteString("        </header>\n")
	return sb.String()
}

func (e *HTMLExporter) renderMessage(msg model.Message) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "            <div class=\"message %s-message\">\n", msg.Role)
	sb.WriteString("                <div class=\"message-header\">\n")
	fmt.Fprintf(&sb, "                    <span class=\"role-label\">%s</span>\n", msg.Role.DisplayName())
	if e.options.IncludeTimestamps {
		fmt.Fprintf(&sb, "                    <span class=\"timestamp\">%s</span>\n", formatShortTimestamp(msg.Timestamp))
	}
	sb.WriteString("                </div>\n")

	sb.WriteString("                <div class=\"message-content\">\n")
	if msg.IsUser() {
		fmt.Fprintf(&sb, "<p>%s</p>\n", strings.ReplaceAll(html.EscapeString(strings.TrimSpace(msg.Content)), "\n", "<br>\n"))
	} else {
		sb.WriteString(renderBlocks(format.Format(msg.Content)))
	}
	sb.WriteString("                </div>\n")

	if e.options.IncludeDetails && msg.Metadata != nil {
		sb.WriteString(e.renderDetails(msg.Metadata))
	}

	sb.WriteString("            </div>\n")
	return sb.String()
}

func (e *HTMLExporter) renderDetails(meta *model.Metadata) string {
	var sb strings.Builder
	if len(meta.Sources) > 0 {
		sb.WriteString("                <details class=\"sources\">\n")
		fmt.Fprintf(&sb, "                    <summary>Referenced Files (%d)</summary>\n", len(meta.Sources))
		sb.WriteString("                    <ul>\n")
		for _, src := range meta.Sources {
			fmt.Fprintf(&sb, "                        <li><code>%s</code></li>\n", html.EscapeString(src))
		}
		sb.WriteString("                    </ul>\n")
		sb.WriteString("                </details>\n")
	}
	if len(meta.AgentThoughts) > 0 {
		sb.WriteString("                <details class=\"thoughts\">\n")
		fmt.Fprintf(&sb, "                    <summary>Agent Thoughts (%d)</summary>\n", len(meta.AgentThoughts))
		for _, th := range meta.AgentThoughts {
			label := html.EscapeString(th.Agent)
			if th.PassedTo != "" {
				label += " &rarr; " + html.EscapeString(th.PassedTo)
			}
			fmt.Fprintf(&sb, "                    <p><strong>%s:</strong> %s</p>\n", label, html.EscapeString(th.Thought))
		}
		sb.WriteString("                </details>\n")
	}
	return sb.String()
}

// =============================================================================
// CONTENT FORMATTING
// =============================================================================

var (
	inlineCodeRegex = regexp.MustCompile("`([^`]+)`")
	boldRegex       = regexp.MustCompile(`\*\*([^*]+)\*\*`)
)

// inline escapes text and converts `code` and **bold** spans.
func inline(s string) string {
	s = html.EscapeString(s)
	s = inlineCodeRegex.ReplaceAllString(s, "<code class=\"inline-code\">$1</code>")
	return boldRegex.ReplaceAllString(s, "<strong>$1</strong>")
}

// renderBlocks turns formatter blocks into HTML.
func renderBlocks(blocks []format.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case format.KindParagraph:
			fmt.Fprintf(&sb, "<p>%s</p>\n", inline(b.Text))
		case format.KindLineBreak:
			sb.WriteString("<br>\n")
		case format.KindBulletList, format.KindNumberedList:
			tag := "ul"
			if b.Kind == format.KindNumberedList {
				tag = "ol"
			}
			fmt.Fprintf(&sb, "<%s>\n", tag)
			for _, item := range b.Items {
				fmt.Fprintf(&sb, "<li>%s</li>\n", inline(item))
			}
			fmt.Fprintf(&sb, "</%s>\n", tag)
		case format.KindTable:
			sb.WriteString("<table>\n<thead><tr>")
			for _, h := range b.Header {
				fmt.Fprintf(&sb, "<th>%s</th>", inline(h))
			}
			sb.WriteString("</tr></thead>\n<tbody>\n")
			for _, row := range b.Rows {
				sb.WriteString("<tr>")
				for _, cell := range row {
					fmt.Fprintf(&sb, "<td>%s</td>", inline(cell))
				}
				sb.WriteString("</tr>\n")
			}
			sb.WriteString("</tbody>\n</table>\n")
		}
	}
	return sb.String()
}

// =============================================================================
// EMBEDDED CSS
// =============================================================================

const css = `    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        :root {
            --font-sans: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Arial, sans-serif;
            --font-mono: "SF Mono", Monaco, "Fira Code", monospace;
        }
        .dark-theme {
            --bg-primary: #1a1b26; --bg-secondary: #24283b; --text: #c0caf5;
            --muted: #565f89; --accent: #7aa2f7; --user: #9ece6a; --border: #414868;
        }
        .light-theme {
            --bg-primary: #f5f5f5; --bg-secondary: #ffffff; --text: #1f2335;
            --muted: #6b7089; --accent: #2e7de9; --user: #387068; --border: #d0d4e4;
        }
        body { font-family: var(--font-sans); background: var(--bg-primary); color: var(--text); padding: 24px; line-height: 1.6; }
        .container { max-width: 900px; margin: 0 auto; }
        .header, .conversation, .footer { background: var(--bg-secondary); border: 1px solid var(--border); border-radius: 8px; padding: 24px; margin-bottom: 16px; }
        .metadata { display: flex; gap: 16px; flex-wrap: wrap; color: var(--muted); margin-top: 8px; }
        .message { padding: 16px 0; border-bottom: 1px solid var(--border); }
        .message:last-child { border-bottom: none; }
        .message-header { display: flex; justify-content: space-between; margin-bottom: 8px; }
        .role-label { font-weight: 600; color: var(--accent); }
        .user-message .role-label { color: var(--user); }
        .timestamp { color: var(--muted); font-size: 0.85em; }
        .message-content p, .message-content ul, .message-content ol { margin-bottom: 8px; }
        .message-content ul, .message-content ol { padding-left: 24px; }
        table { border-collapse: collapse; margin: 8px 0; }
        th, td { border: 1px solid var(--border); padding: 4px 10px; text-align: left; }
        code { font-family: var(--font-mono); }
        .inline-code { background: var(--bg-primary); padding: 1px 4px; border-radius: 3px; }
        details { margin-top: 8px; color: var(--muted); }
        details ul { padding-left: 24px; }
        .footer { color: var(--muted); font-size: 0.85em; text-align: center; }
        @media print { body { padding: 0; } .message { page-break-inside: avoid; } }
    </style>
`
