// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// serve.go - HTTP API for web clients.
package cli

import (
	"context"

	"github.com/jeranaias/docchat/internal/logging"
	"github.com/jeranaias/docchat/internal/server"
)

// HandleServe serves the HTTP API until ctx is cancelled.
//
//	docchat serve
//	docchat serve --addr 0.0.0.0:8790
func HandleServe(ctx context.Context, env *Env, args Args) error {
	addr := args.Parser.FlagOrDefault("addr", env.Config.Server.Addr)

	srv := server.New(env.Store, env.Slot,
		server.WithLogger(logging.Component(env.Logger, "server")),
		server.WithAPIToken(env.Config.Server.APIToken),
		server.WithCORSOrigins(env.Config.Server.CORSOrigins),
		server.WithVersion(Version),
	)
	if err := srv.Run(ctx, addr); err != nil {
		return &CommandError{Command: "serve", Action: "listen", Err: err}
	}
	return nil
}
