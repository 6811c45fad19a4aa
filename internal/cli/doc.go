// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the docchat commands.
//
// # Key Types
//
//   - Command: enumeration of the commands
//   - Args: global flags plus an ArgParser for the command's own arguments
//   - Env: config, logger, slot, conversation store and renderer
//   - JSONResponse: envelope written in --json mode
//
// # Usage
//
//	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer stop()
//	os.Exit(cli.Run(ctx, os.Args[1:], cli.StdIO()))
//
// # Commands Overview
//
//   - (none), tui: full-screen chat
//   - chat: line-based chat with slash commands
//   - ask: one question, one reply
//   - history: list, search, show, delete, reorder and export saved conversations
//   - format: run the reply formatter over a file or stdin
//   - prefs: show and change AI preferences
//   - serve: HTTP API
//   - config: show, path, get, set, keys
//   - version, help
//
// Errors are returned by every handler and displayed once by Run, which
// maps them to exit codes (see ExitCode).
package cli
