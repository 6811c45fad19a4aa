// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package format turns raw message text into typed rendering blocks.
//
// Format is a pure, line-oriented classifier for the pseudo-markdown that
// assistant replies carry: pipe tables, "-"/"*"/"•" bullets, "1." / "1)"
// numbered items (including several items joined by ", " on one line) and
// plain paragraphs. It is a best-effort heuristic: prose such as
// "see items, 3) below" is read as a list.
//
// # Key Types
//
//   - Block: one rendering node (paragraph, line break, list, table)
//   - Kind: block type, encoded by name in JSON
//
// # Usage
//
//	blocks := format.Format(msg.Content)
//	md := format.Markdown(blocks)
package format
