// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package server exposes the conversation store over a small JSON HTTP API.
//
// Endpoints:
//   - GET    /health                          - Health check
//   - GET    /api/conversations?q=            - Search saved conversations
//   - GET    /api/conversations/{id}          - One saved conversation
//   - GET    /api/conversations/{id}/export   - Download as md, json or html
//   - DELETE /api/conversations/{id}          - Delete a saved conversation
//   - POST   /api/conversations/{id}/select   - Make it the active session
//   - PUT    /api/conversations/order         - Reorder by id
//   - GET    /api/messages                    - Active session state
//   - POST   /api/messages                    - Send a message (202, or 200 with ?wait=1)
//   - DELETE /api/messages                    - Start a new conversation
//   - PUT    /api/session                     - Set chat mode and data source
//   - POST   /api/format                      - Run the message formatter
//   - GET    /api/preferences                 - AI preferences (null when unset)
//   - PUT    /api/preferences                 - Replace AI preferences
//
// Routing uses chi; access logging uses zerolog's hlog handlers.
package server
