// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// chat.go - Line-based chat session.
//
// Command: chat
// Short:   Chat in the terminal without the full-screen UI
//
// Each line is sent as a message; lines starting with "/" are commands.
// Arrow keys recall earlier input when stdin is a terminal.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/peterh/liner"

	"github.com/jeranaias/docchat/internal/config"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/storage"
)

const chatPrompt = "> "

// =============================================================================
// INPUT
// =============================================================================

// lineReader yields one line of input per call and io.EOF at the end.
type lineReader interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// linerReader provides history and line editing on a terminal.
type linerReader struct {
	line        *liner.State
	historyFile string
}

func newLinerReader(historyFile string) *linerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	r := &linerReader{line: line, historyFile: historyFile}
	if historyFile != "" {
		if f, err := os.Open(historyFile); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}
	return r
}

func (r *linerReader) Prompt(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history (0600) and restores the terminal.
func (r *linerReader) Close() error {
	if r.historyFile != "" {
		if f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600); err == nil {
			_, _ = r.line.WriteHistory(f)
			f.Close()
		}
	}
	return r.line.Close()
}

// scanReader reads piped input line by line.
type scanReader struct {
	sc *bufio.Scanner
}

func newScanner(in io.Reader) *scanReader {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), maxFormatInput)
	return &scanReader{sc: sc}
}

func (r *scanReader) Prompt(string) (string, error) {
	if r.sc.Scan() {
		return r.sc.Text(), nil
	}
	if err := r.sc.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

func (r *scanReader) Close() error { return nil }

// =============================================================================
// SESSION
// =============================================================================

type chatSession struct {
	env   *Env
	stdio IO
	// listing is the last /history output, for "/open N".
	listing []model.Conversation
}

// HandleChat runs the line-based chat.
//
//	docchat chat
//	docchat chat --mode agent --source policies
//	printf 'What is RAG?\n/quit\n' | docchat chat --ephemeral
func HandleChat(ctx context.Context, env *Env, args Args, stdio IO) error {
	if err := applySessionFlags(env.Store, args.Parser); err != nil {
		return err
	}
	var r lineReader
	if f, ok := stdio.In.(*os.File); ok && f == os.Stdin && IsTerminal(f) && IsTerminal(stdio.Out) {
		r = newLinerReader(config.HistoryFile())
	} else {
		r = newScanner(stdio.In)
	}
	return runChatSession(ctx, env, r, stdio)
}

func runChatSession(ctx context.Context, env *Env, r lineReader, stdio IO) error {
	defer r.Close()
	s := &chatSession{env: env, stdio: stdio}
	s.printWelcome()

	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := r.Prompt(chatPrompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return &CommandError{Command: "chat", Action: "read", Err: err}
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		if strings.HasPrefix(input, "/") {
			quit, err := s.handleSlashCommand(input)
			if err != nil {
				DisplayError(stdio.Err, err, false)
			}
			if quit {
				return nil
			}
			continue
		}

		reply, err := sendAndWait(ctx, env.Store, input)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			DisplayError(stdio.Err, err, false)
			continue
		}
		fmt.Fprintf(stdio.Out, "%s\n\n", env.Renderer.Message(reply.Message))
	}
}

// =============================================================================
// SLASH COMMANDS
// =============================================================================

// handleSlashCommand runs one "/" command. quit is true for /quit.
func (s *chatSession) handleSlashCommand(input string) (quit bool, err error) {
	parts := strings.Fields(input)
	command := strings.ToLower(parts[0])
	rest := strings.TrimSpace(strings.TrimPrefix(input, parts[0]))
	store := s.env.Store
	out := s.stdio.Out

	switch command {
	case "/quit", "/q", "/exit":
		return true, nil

	case "/help", "/h", "/?", "/":
		s.printHelp()

	case "/new", "/n":
		store.ClearMessages()
		fmt.Fprintln(out, "[New conversation]")

	case "/history", "/hist":
		s.listing = store.Search(rest)
		fmt.Fprintln(out, s.env.Renderer.HistoryTable(s.listing, TerminalWidth(out)))

	case "/open", "/o":
		id, err := s.resolve(rest)
		if err != nil {
			return false, err
		}
		if err := store.SelectConversation(id); err != nil {
			return false, err
		}
		conv, _ := store.Conversation(id)
		fmt.Fprintf(out, "[Opened] %s\n\n%s\n\n", conv.Title, s.env.Renderer.Messages(store.Messages()))

	case "/delete", "/del":
		id, err := s.resolve(rest)
		if err != nil {
			return false, err
		}
		store.DeleteConversation(id)
		s.listing = nil
		fmt.Fprintf(out, "[Deleted] %s\n", id)

	case "/mode", "/m":
		if rest == "" {
			fmt.Fprintf(out, "[Mode] %s\n", store.ChatMode())
			return false, nil
		}
		mode, err := model.ParseChatMode(rest)
		if err != nil {
			return false, &UsageError{Message: err.Error(), Example: "/mode agent"}
		}
		store.SetChatMode(mode)
		fmt.Fprintf(out, "[Mode] %s\n", mode)

	case "/source", "/src":
		if rest != "" {
			store.SetSelectedDataSource(rest)
		}
		source := store.SelectedDataSource()
		if source == "" {
			source = "(none)"
		}
		fmt.Fprintf(out, "[Source] %s\n", source)

	case "/details", "/d":
		s.env.Renderer.Expanded = !s.env.Renderer.Expanded
		state := "hidden"
		if s.env.Renderer.Expanded {
			state = "shown"
		}
		fmt.Fprintf(out, "[Details] %s\n", state)

	default:
		return false, usageErrorf("/help", "unknown command: %s", command)
	}
	return false, nil
}

// resolve turns "/open" arguments into a conversation id. A number picks
// from the last /history listing (or the full list), 1-based.
func (s *chatSession) resolve(arg string) (string, error) {
	if arg == "" {
		return "", usageErrorf("/open 1", "missing conversation number or id")
	}
	if n, err := strconv.Atoi(arg); err == nil {
		list := s.listing
		if list == nil {
			list = s.env.Store.Conversations()
		}
		if n < 1 || n > len(list) {
			return "", fmt.Errorf("%w: #%d", storage.ErrConversationNotFound, n)
		}
		return list[n-1].ID, nil
	}
	if _, ok := s.env.Store.Conversation(arg); !ok {
		return "", fmt.Errorf("%w: %s", storage.ErrConversationNotFound, arg)
	}
	return arg, nil
}

// =============================================================================
// DISPLAY
// =============================================================================

func (s *chatSession) printWelcome() {
	store := s.env.Store
	out := s.stdio.Out
	fmt.Fprintln(out, "docchat interactive chat")
	fmt.Fprintln(out, strings.Repeat("-", 30))
	fmt.Fprintf(out, "Mode: %s", store.ChatMode())
	if src := store.SelectedDataSource(); src != "" {
		fmt.Fprintf(out, "  Source: %s", src)
	}
	fmt.Fprintf(out, "  Saved conversations: %d\n", len(store.Conversations()))
	fmt.Fprintln(out, "Type /help for commands, /quit to leave.")
	fmt.Fprintln(out)
}

func (s *chatSession) printHelp() {
	fmt.Fprint(s.stdio.Out, `Commands:
  /new                 Start a new conversation
  /history [QUERY]     List (or search) saved conversations
  /open N|ID           Open a conversation by list number or id
  /delete N|ID         Delete a conversation
  /mode [chat|agent]   Show or switch chat mode
  /source [NAME]       Show or select the agent data source
  /details             Show or hide sources and agent thoughts
  /quit                Leave
`)
}
