// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// tui.go - Full-screen chat (the default command).
package cli

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/jeranaias/docchat/internal/ui/chat"
)

// HandleTUI runs the bubbletea chat until the user quits or ctx ends.
// Without a terminal it falls back to the line-based chat.
func HandleTUI(ctx context.Context, env *Env, stdio IO) error {
	if !IsTerminal(stdio.In) || !IsTerminal(stdio.Out) {
		fmt.Fprintln(stdio.Err, "Not a terminal; starting line chat. Use \"docchat chat\" to skip this check.")
		return runChatSession(ctx, env, newScanner(stdio.In), stdio)
	}

	m := chat.New(env.Store, env.Renderer,
		chat.WithContext(ctx),
		chat.WithHistoryHint(time.Duration(env.Config.UI.HistoryHintMs)*time.Millisecond),
	)
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
		tea.WithInput(stdio.In),
		tea.WithOutput(stdio.Out),
	)
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return &CommandError{Command: "tui", Action: "run", Err: err}
	}
	return nil
}
