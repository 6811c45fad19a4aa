// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package format

import "fmt"

// =============================================================================
// BLOCK KINDS
// =============================================================================

// Kind identifies the type of a rendering block.
type Kind int

const (
	KindParagraph Kind = iota
	KindLineBreak
	KindBulletList
	KindNumberedList
	KindTable
)

var kindNames = [...]string{
	KindParagraph:    "paragraph",
	KindLineBreak:    "lineBreak",
	KindBulletList:   "bulletList",
	KindNumberedList: "numberedList",
	KindTable:        "table",
}

// String returns the wire name of the kind.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText encodes the kind by name so JSON output is readable.
func (k Kind) MarshalText() ([]byte, error) {
	if k < 0 || int(k) >= len(kindNames) {
		return nil, fmt.Errorf("unknown block kind %d", int(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText decodes a kind name.
func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown block kind %q", text)
}

// =============================================================================
// BLOCK
// =============================================================================

// Block is one rendering node. Which fields are set depends on Kind:
// Text for paragraphs, Items for lists, Header and Rows for tables.
type Block struct {
	Kind   Kind       `json:"kind"`
	Text   string     `json:"text,omitempty"`
	Items  []string   `json:"items,omitempty"`
	Header []string   `json:"header,omitempty"`
	Rows   [][]string `json:"rows,omitempty"`
}

// Paragraph creates a paragraph block.
func Paragraph(text string) Block {
	return Block{Kind: KindParagraph, Text: text}
}

// LineBreak creates a line break block.
func LineBreak() Block {
	return Block{Kind: KindLineBreak}
}

// BulletList creates an unordered list block.
func BulletList(items ...string) Block {
	return Block{Kind: KindBulletList, Items: items}
}

// NumberedList creates an ordered list block.
func NumberedList(items ...string) Block {
	return Block{Kind: KindNumberedList, Items: items}
}

// Table creates a table block.
func Table(header []string, rows ...[]string) Block {
	return Block{Kind: KindTable, Header: header, Rows: rows}
}
