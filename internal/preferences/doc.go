// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package preferences stores the AI reply settings (output format, language,
// provider, agent pipeline) under the ai_preferences slot key.
package preferences
