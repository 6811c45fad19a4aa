// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	bulletMarker    = regexp.MustCompile(`^[-*•]\s+`)
	numberMarker    = regexp.MustCompile(`\d+[.)]`)
	leadingMarker   = regexp.MustCompile(`^\d+[.)]\s*`)
	separatorCellRe = regexp.MustCompile(`^[-:]+$`)
)

type mode int

const (
	modeNone mode = iota
	modeBullet
	modeNumbered
	modeTable
)

// formatter is the line state machine. At most one list or table is open.
type formatter struct {
	out   []Block
	mode  mode
	items []string
	rows  [][]string
}

// Format converts message text into rendering blocks.
//
// Lines are classified in order: table row, bullet item, numbered item,
// plain text. Opening a block of a different type closes the open one.
// Blank lines become line breaks. The result is never empty: when nothing
// renderable is found the raw content is returned as one paragraph.
func Format(content string) []Block {
	if content == "" {
		return []Block{Paragraph(content)}
	}

	f := &formatter{}
	for _, line := range strings.Split(content, "\n") {
		f.line(line)
	}
	f.flushList()
	f.flushTable()

	if len(f.out) == 0 {
		return []Block{Paragraph(content)}
	}
	return f.out
}

func (f *formatter) line(raw string) {
	line := strings.TrimSpace(raw)

	// Table check comes first: "- a | b | c" is a row, not a bullet.
	if isTableRow(line) {
		if f.mode != modeTable {
			f.flushList()
			f.mode = modeTable
		}
		if cells := tableCells(line); !isSeparatorRow(cells) {
			f.rows = append(f.rows, cells)
		}
		return
	}
	if f.mode == modeTable {
		f.flushTable()
	}

	if m := bulletMarker.FindString(line); m != "" {
		if f.mode != modeBullet {
			f.flushList()
			f.mode = modeBullet
		}
		f.items = append(f.items, strings.TrimSpace(line[len(m):]))
		return
	}

	if numberMarker.MatchString(line) {
		if f.mode != modeNumbered {
			f.flushList()
			f.mode = modeNumbered
		}
		f.numbered(line)
		return
	}

	f.flushList()
	if line == "" {
		f.out = append(f.out, LineBreak())
		return
	}
	f.out = append(f.out, Paragraph(line))
}

// numbered handles a line holding one or more "N)" / "N." items, optionally
// preceded by free text ("For Google Drive: 1) step one, 2) step two").
func (f *formatter) numbered(line string) {
	parts := splitNumbered(line)

	first := parts[0]
	if at := firstMarker(first); at > 0 {
		if prefix := strings.TrimSpace(first[:at]); prefix != "" {
			// Keep output in input order: items collected so far belong
			// above the prefix.
			f.emitList()
			f.out = append(f.out, Paragraph(prefix))
		}
		first = first[at:]
	}

	f.addItem(first)
	for _, p := range parts[1:] {
		f.addItem(p)
	}
}

func (f *formatter) addItem(segment string) {
	item := strings.TrimSpace(leadingMarker.ReplaceAllString(segment, ""))
	if item != "" {
		f.items = append(f.items, item)
	}
}

// emitList writes the collected items without leaving list mode.
func (f *formatter) emitList() {
	if len(f.items) == 0 {
		return
	}
	switch f.mode {
	case modeBullet:
		f.out = append(f.out, BulletList(f.items...))
	case modeNumbered:
		f.out = append(f.out, NumberedList(f.items...))
	}
	f.items = nil
}

func (f *formatter) flushList() {
	if f.mode != modeBullet && f.mode != modeNumbered {
		return
	}
	f.emitList()
	f.mode = modeNone
}

func (f *formatter) flushTable() {
	if f.mode != modeTable {
		return
	}
	if len(f.rows) > 0 {
		var body [][]string
		if len(f.rows) > 1 {
			body = f.rows[1:]
		}
		f.out = append(f.out, Table(f.rows[0], body...))
	}
	f.rows = nil
	f.mode = modeNone
}

// =============================================================================
// LINE CLASSIFIERS
// =============================================================================

// isTableRow reports whether the line has at least two pipes.
func isTableRow(line string) bool {
	return strings.Count(line, "|") >= 2
}

// tableCells returns the trimmed, non-empty cells of a pipe row.
func tableCells(line string) []string {
	var cells []string
	for _, c := range strings.Split(line, "|") {
		if c = strings.TrimSpace(c); c != "" {
			cells = append(cells, c)
		}
	}
	return cells
}

// isSeparatorRow reports whether every cell is a divider like "---" or ":-:".
// A row with no cells counts as a separator.
func isSeparatorRow(cells []string) bool {
	for _, c := range cells {
		if !separatorCellRe.MatchString(c) {
			return false
		}
	}
	return true
}

// markerEnd returns the index just past a "N." or "N)" marker starting at i,
// or -1 when s[i:] does not start with one.
func markerEnd(s string, i int) int {
	j := i
	for j < len(s) && s[j] >= '0' && s[j] <= '9' {
		j++
	}
	if j == i || j >= len(s) || (s[j] != '.' && s[j] != ')') {
		return -1
	}
	return j + 1
}

// firstMarker returns the byte offset of the first marker in s that has text
// after it, or -1. A marker starts at the beginning of a digit run, so "12)"
// is never read as "1" followed by "2)".
func firstMarker(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' || (i > 0 && s[i-1] >= '0' && s[i-1] <= '9') {
			continue
		}
		if end := markerEnd(s, i); end > 0 && end < len(s) {
			return i
		}
	}
	return -1
}

// splitNumbered splits a line at every comma that is followed by optional
// whitespace and a marker. The comma and whitespace are dropped.
func splitNumbered(line string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(line); i++ {
		if line[i] != ',' {
			continue
		}
		j := i + 1
		for j < len(line) {
			r := rune(line[j])
			if r >= 0x80 || !unicode.IsSpace(r) {
				break
			}
			j++
		}
		if markerEnd(line, j) < 0 {
			continue
		}
		parts = append(parts, line[start:i])
		start = j
		i = j - 1
	}
	return append(parts, line[start:])
}
