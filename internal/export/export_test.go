// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeranaias/docchat/internal/model"
)

var (
	started  = time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	exportAt = time.Date(2025, 3, 15, 18, 0, 0, 0, time.UTC)
)

func testOptions() *Options {
	opts := DefaultOptions()
	opts.Now = func() time.Time { return exportAt }
	return opts
}

func testConversation() model.Conversation {
	msgs := []model.Message{
		model.NewUserMessage("What is RAG?", started),
		model.NewAssistantMessage("RAG combines retrieval with generation.\n• Retrieve documents\n* Generate an answer",
			started.Add(2*time.Second),
			&model.Metadata{
				Sources: []string{"rag-overview.pdf"},
				AgentThoughts: []model.AgentThought{
					{Agent: "Researcher", Thought: "Looking up RAG", PassedTo: "Writer"},
					{Agent: "Writer", Thought: "Summarizing"},
				},
			}),
	}
	return model.Snapshot("conv-x", msgs, started.Add(2*time.Second))
}

func TestNew(t *testing.T) {
	tests := []struct {
		format string
		ext    string
		mime   string
	}{
		{"", ".md", "text/markdown"},
		{"md", ".md", "text/markdown"},
		{"Markdown", ".md", "text/markdown"},
		{"json", ".json", "application/json"},
		{"html", ".html", "text/html"},
		{"htm", ".html", "text/html"},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := New(tt.format, nil)
			require.NoError(t, err)
			assert.Equal(t, tt.ext, e.FileExtension())
			assert.Equal(t, tt.mime, e.MimeType())
		})
	}

	_, err := New("pdf", nil)
	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExport_EmptyConversation(t *testing.T) {
	for _, name := range Formats {
		e, err := New(name, testOptions())
		require.NoError(t, err)
		_, err = e.Export(model.Conversation{ID: "empty"})
		assert.ErrorIs(t, err, ErrEmptyConversation, name)
	}
}

func TestMarkdownExporter(t *testing.T) {
	out, err := NewMarkdownExporter(testOptions()).Export(testConversation())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "---\nid: conv-x\n"))
	assert.Contains(t, md, "title: What is RAG?\n")
	assert.Contains(t, md, "messages: 2\n")
	assert.Contains(t, md, "exported: 2025-03-15T18:00:00Z\n")
	assert.Contains(t, md, "# What is RAG?\n")
	assert.Contains(t, md, "### You <sub>09:30:00</sub>")
	assert.Contains(t, md, "### Assistant <sub>09:30:02</sub>")

	// Assistant text is normalized: mixed bullet markers become one list.
	assert.Contains(t, md, "- Retrieve documents\n- Generate an answer")

	assert.Contains(t, md, "**Referenced Files (1)**")
	assert.Contains(t, md, "- `rag-overview.pdf`")
	assert.Contains(t, md, "> **Researcher** -> Writer: Looking up RAG\n>\n> **Writer**: Summarizing")
	assert.Contains(t, md, "*Exported from docchat on March 15, 2025 at 6:00 PM*")
}

func TestMarkdownExporter_MinimalOptions(t *testing.T) {
	opts := testOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false
	opts.IncludeDetails = false

	out, err := NewMarkdownExporter(opts).Export(testConversation())
	require.NoError(t, err)
	md := string(out)

	assert.True(t, strings.HasPrefix(md, "# What is RAG?"))
	assert.Contains(t, md, "### You\n")
	assert.NotContains(t, md, "<sub>")
	assert.NotContains(t, md, "Referenced Files")
}

func TestEscapeYAML(t *testing.T) {
	assert.Equal(t, "plain", escapeYAML("plain"))
	assert.Equal(t, `"a: b"`, escapeYAML("a: b"))
	assert.Equal(t, `"say \"hi\""`, escapeYAML(`say "hi"`))
}

func TestJSONExporter(t *testing.T) {
	conv := testConversation()
	out, err := NewJSONExporter(testOptions()).Export(conv)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "conv-x", decoded["id"])
	assert.Equal(t, "What is RAG?", decoded["title"])
	assert.EqualValues(t, 2, decoded["messageCount"])

	msgs, ok := decoded["messages"].([]any)
	require.True(t, ok)
	require.Len(t, msgs, 2)
	first := msgs[0].(map[string]any)
	assert.Equal(t, "user", first["role"])
}

func TestHTMLExporter(t *testing.T) {
	conv := testConversation()
	conv.Title = "<script>alert(1)</script>"
	conv.Messages[0].Content = "Is 1 < 2 & 3 > 2?"

	out, err := NewHTMLExporter(testOptions()).Export(conv)
	require.NoError(t, err)
	page := string(out)

	assert.True(t, strings.HasPrefix(page, "<!DOCTYPE html>"))
	assert.NotContains(t, page, "<script>")
	assert.Contains(t, page, "&lt;script&gt;alert(1)&lt;/script&gt;")
	assert.Contains(t, page, "Is 1 &lt; 2 &amp; 3 &gt; 2?")
	assert.Contains(t, page, `<body class="dark-theme">`)
	assert.Contains(t, page, "<ul>\n<li>Retrieve documents</li>\n<li>Generate an answer</li>\n</ul>")
	assert.Contains(t, page, "Referenced Files (1)")
	assert.Contains(t, page, "<strong>Researcher &rarr; Writer:</strong> Looking up RAG")
}

func TestHTMLExporter_LightThemeAndTable(t *testing.T) {
	opts := testOptions()
	opts.Theme = "light"
	msgs := []model.Message{
		model.NewUserMessage("compare", started),
		model.NewAssistantMessage("| Tool | Use |\n|---|---|\n| `grep` | **search** |", started, nil),
	}
	out, err := NewHTMLExporter(opts).Export(model.Snapshot("conv-t", msgs, started))
	require.NoError(t, err)
	page := string(out)

	assert.Contains(t, page, `<body class="light-theme">`)
	assert.Contains(t, page, "<th>Tool</th><th>Use</th>")
	assert.Contains(t, page, `<td><code class="inline-code">grep</code></td><td><strong>search</strong></td>`)
}

func TestFilename(t *testing.T) {
	conv := model.Conversation{Title: `a/b: "c" d`}
	name := Filename(conv, NewMarkdownExporter(nil), exportAt)
	assert.Equal(t, "conversation_a-b-_-c-_d_20250315_180000.md", name)

	name = Filename(model.Conversation{}, NewJSONExporter(nil), exportAt)
	assert.Equal(t, "conversation_conversation_20250315_180000.json", name)

	long := model.Conversation{Title: strings.Repeat("x", 80)}
	name = Filename(long, NewHTMLExporter(nil), exportAt)
	assert.Equal(t, "conversation_"+strings.Repeat("x", 50)+"_20250315_180000.html", name)
}

func TestExportToFile(t *testing.T) {
	opts := testOptions()
	opts.OutputDir = filepath.Join(t.TempDir(), "exports")

	path, err := ExportToFile(testConversation(), NewMarkdownExporter(opts), opts)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(opts.OutputDir, "conversation_What_is_RAG-_20250315_180000.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# What is RAG?")

	_, err = ExportToFile(model.Conversation{}, NewMarkdownExporter(opts), opts)
	assert.ErrorIs(t, err, ErrEmptyConversation)
}
