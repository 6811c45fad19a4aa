// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// FORMAT TESTS
// =============================================================================

func TestFormat(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Block
	}{
		{
			name:  "bullet list",
			input: "- a\n- b",
			want:  []Block{BulletList("a", "b")},
		},
		{
			name:  "mixed bullet markers",
			input: "* one\n•  two\n- three",
			want:  []Block{BulletList("one", "two", "three")},
		},
		{
			name:  "inline numbered list",
			input: "1) first, 2) second",
			want:  []Block{NumberedList("first", "second")},
		},
		{
			name:  "numbered lines",
			input: "1. alpha\n2. beta",
			want:  []Block{NumberedList("alpha", "beta")},
		},
		{
			name:  "table",
			input: "|H1|H2|\n|---|---|\n|a|b|",
			want:  []Block{Table([]string{"H1", "H2"}, []string{"a", "b"})},
		},
		{
			name:  "empty input",
			input: "",
			want:  []Block{Paragraph("")},
		},
		{
			name:  "prefix before numbered items",
			input: "For Google Drive: 1) Enable the API, 2) Create OAuth credentials",
			want: []Block{
				Paragraph("For Google Drive:"),
				NumberedList("Enable the API", "Create OAuth credentials"),
			},
		},
		{
			name:  "pipe line with bullet marker is a table row",
			input: "- a | b | c",
			want:  []Block{Table([]string{"- a", "b", "c"})},
		},
		{
			name:  "paragraphs and blank line",
			input: "Hello\n\n  World  ",
			want:  []Block{Paragraph("Hello"), LineBreak(), Paragraph("World")},
		},
		{
			name:  "whitespace only",
			input: "   ",
			want:  []Block{LineBreak()},
		},
		{
			name:  "plain line closes list",
			input: "intro\n- a\n- b\nafter",
			want:  []Block{Paragraph("intro"), BulletList("a", "b"), Paragraph("after")},
		},
		{
			name:  "switching list type flushes",
			input: "- a\n1. b",
			want:  []Block{BulletList("a"), NumberedList("b")},
		},
		{
			name:  "table then text with alignment separator",
			input: "| A | B |\n|:--|--:|\n| 1 | 2 |\n| 3 | 4 |\ntext",
			want: []Block{
				Table([]string{"A", "B"}, []string{"1", "2"}, []string{"3", "4"}),
				Paragraph("text"),
			},
		},
		{
			name:  "multi-digit marker",
			input: "12) twelve",
			want:  []Block{NumberedList("twelve")},
		},
		{
			name:  "prefix while a numbered list is open",
			input: "1. a\nSteps: 2. b",
			want:  []Block{NumberedList("a"), Paragraph("Steps:"), NumberedList("b")},
		},
		{
			name:  "separator only yields raw paragraph",
			input: "|---|---|",
			want:  []Block{Paragraph("|---|---|")},
		},
		{
			name:  "marker without text yields raw paragraph",
			input: "1.",
			want:  []Block{Paragraph("1.")},
		},
		{
			name:  "comma number without marker stays prose",
			input: "Section 3, 4 are related",
			want:  []Block{Paragraph("Section 3, 4 are related")},
		},
		{
			name:  "prose with comma marker is split",
			input: "see items, 3) below",
			want:  []Block{NumberedList("see items", "below")},
		},
		{
			name:  "two pipes only",
			input: "a | b",
			want:  []Block{Paragraph("a | b")},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.input))
		})
	}
}

func TestFormat_ReplyWithNumberedMarkdown(t *testing.T) {
	content := "React 18 introduces several key features including:\n\n" +
		"1. **Concurrent Rendering** - Allows React to interrupt rendering work\n" +
		"2. **Automatic Batching** - Groups multiple state updates into a single re-render\n" +
		"3. **Suspense Improvements** - Better support for data fetching"

	blocks := Format(content)
	require.Len(t, blocks, 3)
	assert.Equal(t, KindParagraph, blocks[0].Kind)
	assert.Equal(t, KindLineBreak, blocks[1].Kind)
	require.Equal(t, KindNumberedList, blocks[2].Kind)
	assert.Len(t, blocks[2].Items, 3)
	assert.Equal(t, "**Automatic Batching** - Groups multiple state updates into a single re-render", blocks[2].Items[1])
}

func TestFormat_ReplyWithTable(t *testing.T) {
	content := "Here's a comparison:\n\n" +
		"| Model | Provider | Cost |\n" +
		"|-------|----------|------|\n" +
		"| GPT-4o | OpenAI | High |\n" +
		"| Gemini Pro | Google | Low |\n\n" +
		"For most applications, pick one."

	blocks := Format(content)
	require.Len(t, blocks, 5)
	assert.Equal(t, Paragraph("Here's a comparison:"), blocks[0])
	assert.Equal(t, LineBreak(), blocks[1])
	assert.Equal(t, Table(
		[]string{"Model", "Provider", "Cost"},
		[]string{"GPT-4o", "OpenAI", "High"},
		[]string{"Gemini Pro", "Google", "Low"},
	), blocks[2])
	assert.Equal(t, LineBreak(), blocks[3])
	assert.Equal(t, Paragraph("For most applications, pick one."), blocks[4])
}

func TestFormat_NeverEmptyAndDeterministic(t *testing.T) {
	inputs := []string{"", " ", "\n", "\n\n", "|", "||", "-", "1", "a|b|c", "x, 1)", "•"}
	for _, in := range inputs {
		first := Format(in)
		require.NotEmpty(t, first, "Format(%q) returned no blocks", in)
		assert.Equal(t, first, Format(in), "Format(%q) not deterministic", in)
	}
}

func TestFormat_SeparatorRowsNeverData(t *testing.T) {
	blocks := Format("|a|b|\n|---|:-:|\n|c|d|\n| -- | -- |")
	require.Len(t, blocks, 1)
	for _, row := range blocks[0].Rows {
		for _, cell := range row {
			assert.NotRegexp(t, `^[-:]+$`, cell)
		}
	}
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdown_Lists(t *testing.T) {
	got := Markdown([]Block{Paragraph("x"), BulletList("a", "b"), NumberedList("c")})
	assert.Equal(t, "x\n\n- a\n- b\n\n1. c\n", got)
}

func TestMarkdown_TablePadsShortRows(t *testing.T) {
	got := Markdown([]Block{Table([]string{"A", "B"}, []string{"1"})})
	assert.Equal(t, "| A | B |\n| --- | --- |\n| 1 |  |\n", got)
}

// =============================================================================
// KIND TESTS
// =============================================================================

func TestBlock_JSON(t *testing.T) {
	data, err := json.Marshal(Paragraph("x"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"paragraph","text":"x"}`, string(data))

	var b Block
	require.NoError(t, json.Unmarshal([]byte(`{"kind":"numberedList","items":["a"]}`), &b))
	assert.Equal(t, NumberedList("a"), b)

	assert.Error(t, json.Unmarshal([]byte(`{"kind":"heading"}`), &b))
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "table", KindTable.String())
	assert.Equal(t, "Kind(9)", Kind(9).String())
}
