// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// history.go - Saved conversation management.
//
//	docchat history [list]
//	docchat history search QUERY
//	docchat history show ID
//	docchat history delete ID
//	docchat history reorder ID... [--query Q]
//	docchat history export ID [--format md|json|html] [--out DIR]
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jeranaias/docchat/internal/export"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/storage"
	"github.com/jeranaias/docchat/internal/util"
)

// HandleHistory dispatches the history subcommands.
func HandleHistory(env *Env, args Args, stdio IO) error {
	p := args.Parser
	switch args.Subcommand() {
	case "", "list", "ls":
		return printConversationList(env, args, stdio, env.Store.Conversations())
	case "search", "find":
		return printConversationList(env, args, stdio, env.Store.Search(JoinPositionalArgs(p, 1)))
	case "show", "view":
		return historyShow(env, args, stdio)
	case "delete", "rm":
		return historyDelete(env, args, stdio)
	case "reorder", "move":
		return historyReorder(env, args, stdio)
	case "export":
		return historyExport(env, args, stdio)
	default:
		return usageErrorf("docchat history list", "unknown history subcommand %q", p.Subcommand())
	}
}

func summaries(convs []model.Conversation) []model.Conversation {
	out := make([]model.Conversation, len(convs))
	for i, c := range convs {
		out[i] = c.Summary()
	}
	return out
}

func printConversationList(env *Env, args Args, stdio IO, convs []model.Conversation) error {
	if args.JSON {
		return NewJSONResponse(CmdHistory.String(), summaries(convs)).Print(stdio.Out)
	}
	fmt.Fprintln(stdio.Out, env.Renderer.HistoryTable(convs, TerminalWidth(stdio.Out)))
	return nil
}

func historyShow(env *Env, args Args, stdio IO) error {
	id := args.Parser.Positional(1)
	if id == "" {
		return usageErrorf("docchat history show conv-1", "history show needs a conversation id")
	}
	conv, ok := env.Store.Conversation(id)
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrConversationNotFound, id)
	}
	if args.JSON {
		return NewJSONResponse(CmdHistory.String(), conv).Print(stdio.Out)
	}

	env.Renderer.Expanded = args.Parser.BoolFlag("details")
	fmt.Fprintf(stdio.Out, "%s\n%s\n\n", conv.Title, strings.Repeat("=", min(util.StringWidth(conv.Title), TerminalWidth(stdio.Out))))
	fmt.Fprintln(stdio.Out, env.Renderer.Messages(conv.Messages))
	return nil
}

func historyDelete(env *Env, args Args, stdio IO) error {
	id := args.Parser.Positional(1)
	if id == "" {
		return usageErrorf("docchat history delete conv-1", "history delete needs a conversation id")
	}
	if _, ok := env.Store.Conversation(id); !ok {
		return fmt.Errorf("%w: %s", storage.ErrConversationNotFound, id)
	}
	env.Store.DeleteConversation(id)
	if args.JSON {
		return NewJSONResponse(CmdHistory.String(), map[string]string{"deleted": id}).Print(stdio.Out)
	}
	fmt.Fprintf(stdio.Out, "Deleted %s\n", id)
	return nil
}

// historyReorder moves ids to the top in the given order. With --query the
// ids must all be results of that search, mirroring a drag within a
// filtered list.
func historyReorder(env *Env, args Args, stdio IO) error {
	ids := args.Parser.PositionalFrom(1)
	if len(ids) == 0 {
		return usageErrorf("docchat history reorder conv-3 conv-1", "history reorder needs at least one conversation id")
	}

	var allowed []model.Conversation
	if q := args.Parser.Flag("query"); q != "" {
		allowed = env.Store.Search(q)
	} else {
		allowed = env.Store.Conversations()
	}
	known := make(map[string]bool, len(allowed))
	for _, c := range allowed {
		known[c.ID] = true
	}
	for _, id := range ids {
		if !known[id] {
			return fmt.Errorf("%w: %s", storage.ErrConversationNotFound, id)
		}
	}

	env.Store.Reorder(ids)
	return printConversationList(env, args, stdio, env.Store.Conversations())
}

// historyExport writes one conversation as markdown, JSON or HTML, to
// stdout or into --out.
func historyExport(env *Env, args Args, stdio IO) error {
	p := args.Parser
	id := p.Positional(1)
	if id == "" {
		return usageErrorf("docchat history export conv-1 --format html", "history export needs a conversation id")
	}
	conv, ok := env.Store.Conversation(id)
	if !ok {
		return fmt.Errorf("%w: %s", storage.ErrConversationNotFound, id)
	}

	opts := export.DefaultOptions()
	opts.OutputDir = p.Flag("out")
	if p.BoolFlag("no-meta") {
		opts.IncludeMetadata = false
		opts.IncludeTimestamps = false
	}
	if env.Config.UI.Theme == "light" {
		opts.Theme = "light"
	}

	exporter, err := export.New(p.Flag("format"), opts)
	if errors.Is(err, export.ErrUnknownFormat) {
		return &UsageError{Message: err.Error(), Example: "docchat history export conv-1 --format html"}
	}
	if err != nil {
		return err
	}

	if opts.OutputDir == "" {
		data, err := exporter.Export(conv)
		if err != nil {
			return &CommandError{Command: "history", Action: "export", Err: err}
		}
		_, err = stdio.Out.Write(data)
		return err
	}

	path, err := export.ExportToFile(conv, exporter, opts)
	if err != nil {
		return &CommandError{Command: "history", Action: "export", Err: err}
	}
	if args.JSON {
		return NewJSONResponse(CmdHistory.String(), map[string]string{"exported": id, "path": path}).Print(stdio.Out)
	}
	fmt.Fprintf(stdio.Out, "Exported %s to %s\n", id, path)
	return nil
}
