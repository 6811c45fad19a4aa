// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import (
	"strconv"
	"strings"
)

// Markdown renders blocks as canonical markdown, suitable for a markdown
// terminal renderer. Tables are padded so every row has the same width.
func Markdown(blocks []Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case KindParagraph:
			sb.WriteString(b.Text)
			sb.WriteString("\n\n")
		case KindLineBreak:
			sb.WriteString("\n")
		case KindBulletList:
			for _, item := range b.Items {
				sb.WriteString("- ")
				sb.WriteString(item)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		case KindNumberedList:
			for i, item := range b.Items {
				sb.WriteString(strconv.Itoa(i + 1))
				sb.WriteString(". ")
				sb.WriteString(item)
				sb.WriteString("\n")
			}
			sb.WriteString("\n")
		case KindTable:
			writeTable(&sb, b)
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}

func writeTable(sb *strings.Builder, b Block) {
	cols := len(b.Header)
	for _, row := range b.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	writeRow := func(cells []string) {
		sb.WriteString("|")
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			sb.WriteString(" ")
			sb.WriteString(cell)
			sb.WriteString(" |")
		}
		sb.WriteString("\n")
	}

	writeRow(b.Header)
	sb.WriteString("|")
	for i := 0; i < cols; i++ {
		sb.WriteString(" --- |")
	}
	sb.WriteString("\n")
	for _, row := range b.Rows {
		writeRow(row)
	}
	sb.WriteString("\n")
}
