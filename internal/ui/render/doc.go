// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package render turns messages, format blocks and conversation summaries
// into terminal text.
//
// A Renderer built on a colored theme passes blocks through glamour; the
// plain theme writes them as aligned text so piped output stays readable.
package render
