// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package render

import (
	"strconv"
	"strings"

	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/util"
)

// PlainBlocks renders blocks as uncolored text. Table columns are padded to
// their widest cell in terminal columns.
func PlainBlocks(blocks []format.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch b.Kind {
		case format.KindParagraph:
			sb.WriteString(b.Text)
			sb.WriteString("\n")
		case format.KindLineBreak:
			sb.WriteString("\n")
		case format.KindBulletList:
			for _, item := range b.Items {
				sb.WriteString("  * ")
				sb.WriteString(item)
				sb.WriteString("\n")
			}
		case format.KindNumberedList:
			for i, item := range b.Items {
				sb.WriteString("  ")
				sb.WriteString(strconv.Itoa(i + 1))
				sb.WriteString(". ")
				sb.WriteString(item)
				sb.WriteString("\n")
			}
		case format.KindTable:
			writePlainTable(&sb, b)
		}
	}
	return strings.TrimRight(sb.String(), "\n")
}

func writePlainTable(sb *strings.Builder, b format.Block) {
	cols := len(b.Header)
	for _, row := range b.Rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return
	}

	widths := make([]int, cols)
	measure := func(cells []string) {
		for i, c := range cells {
			if w := util.StringWidth(c); w > widths[i] {
				widths[i] = w
			}
		}
	}
	measure(b.Header)
	for _, row := range b.Rows {
		measure(row)
	}

	writeRow := func(cells []string) {
		parts := make([]string, cols)
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(cells) {
				cell = cells[i]
			}
			parts[i] = util.PadRight(cell, widths[i])
		}
		sb.WriteString(strings.TrimRight(strings.Join(parts, " | "), " "))
		sb.WriteString("\n")
	}

	writeRow(b.Header)
	rule := make([]string, cols)
	for i, w := range widths {
		rule[i] = strings.Repeat("-", w)
	}
	sb.WriteString(strings.Join(rule, "-+-"))
	sb.WriteString("\n")
	for _, row := range b.Rows {
		writeRow(row)
	}
}
