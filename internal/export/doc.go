// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes saved conversations as Markdown, JSON or HTML.
//
// # Key Types
//
//   - Exporter: one output format
//   - Options: metadata, timestamps, theme and output directory
//
// # Usage
//
//	exp, err := export.New("md", export.DefaultOptions())
//	data, err := exp.Export(conv)
//
// Write next to other exports with a generated file name:
//
//	path, err := export.ExportToFile(conv, exp, opts)
//
// Assistant replies go through the message formatter, so lists and tables
// come out the same way the chat shows them.
package export
