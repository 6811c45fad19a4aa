// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// ask.go - One question, one printed reply.
package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/jeranaias/docchat/internal/format"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/storage"
)

// AskData is the --json payload of "docchat ask".
type AskData struct {
	ConversationID string         `json:"conversation_id"`
	Message        model.Message  `json:"message"`
	Blocks         []format.Block `json:"blocks"`
}

// HandleAsk sends one question and prints the reply. The exchange is saved
// like any other conversation.
//
//	docchat ask "What is RAG?"
//	docchat ask --conversation conv-1 "And the retrieval step?"
func HandleAsk(ctx context.Context, env *Env, args Args, stdio IO) error {
	p := args.Parser
	question := strings.TrimSpace(JoinPositionalArgs(p, 0))
	if question == "" {
		return usageErrorf(`docchat ask "What is RAG?"`, "ask needs a question")
	}

	if id := p.Flag("conversation"); id != "" {
		if err := env.Store.SelectConversation(id); err != nil {
			return err
		}
	}
	if err := applySessionFlags(env.Store, p); err != nil {
		return err
	}

	reply, err := sendAndWait(ctx, env.Store, question)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse(CmdAsk.String(), AskData{
			ConversationID: reply.ConversationID,
			Message:        reply.Message,
			Blocks:         format.Format(reply.Message.Content),
		}).Print(stdio.Out)
	}

	if p.BoolFlag("details") {
		env.Renderer.Expanded = true
		fmt.Fprintln(stdio.Out, env.Renderer.Message(reply.Message))
		return nil
	}
	fmt.Fprintln(stdio.Out, env.Renderer.Content(reply.Message.Content))
	return nil
}

// applySessionFlags handles --mode and --source.
func applySessionFlags(store *storage.ConversationStore, p *ArgParser) error {
	if v := p.Flag("mode"); v != "" {
		mode, err := model.ParseChatMode(v)
		if err != nil {
			return &UsageError{Message: err.Error(), Example: "--mode agent"}
		}
		store.SetChatMode(mode)
	}
	if v := p.Flag("source"); v != "" {
		store.SetSelectedDataSource(v)
	}
	return nil
}

// sendAndWait sends text and blocks until the reply arrives or ctx ends.
func sendAndWait(ctx context.Context, store *storage.ConversationStore, text string) (storage.Reply, error) {
	select {
	case reply, ok := <-store.SendMessage(ctx, text):
		if !ok {
			return storage.Reply{}, usageErrorf("", "message is empty")
		}
		if reply.Err != nil {
			return reply, &ReplyError{Err: reply.Err}
		}
		return reply, nil
	case <-ctx.Done():
		return storage.Reply{}, ctx.Err()
	}
}
