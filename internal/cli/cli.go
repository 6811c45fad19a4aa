// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - Command parsing and dispatch for docchat.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdChat
	CmdAsk
	CmdHistory
	CmdFormat
	CmdPrefs
	CmdServe
	CmdConfig
	CmdVersion
	CmdHelp
)

var commandNames = map[string]Command{
	"tui":         CmdTUI,
	"chat":        CmdChat,
	"ask":         CmdAsk,
	"history":     CmdHistory,
	"hist":        CmdHistory,
	"format":      CmdFormat,
	"fmt":         CmdFormat,
	"prefs":       CmdPrefs,
	"preferences": CmdPrefs,
	"serve":       CmdServe,
	"config":      CmdConfig,
	"version":     CmdVersion,
	"--version":   CmdVersion,
	"-V":          CmdVersion,
	"help":        CmdHelp,
	"--help":      CmdHelp,
	"-h":          CmdHelp,
}

// String returns the command name used in JSON output.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdChat:
		return "chat"
	case CmdAsk:
		return "ask"
	case CmdHistory:
		return "history"
	case CmdFormat:
		return "format"
	case CmdPrefs:
		return "prefs"
	case CmdServe:
		return "serve"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// boolFlags lists flags that never take a value.
var boolFlags = []string{"json", "markdown", "details", "no-meta"}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	ConfigPath string // --config PATH
	Ephemeral  bool   // --ephemeral: in-memory storage
	Theme      string // --theme NAME
	JSON       bool   // --json
	Verbose    bool   // -v, --verbose

	// Command-specific flags and positionals. Positional(0) is the
	// subcommand, if any.
	Parser *ArgParser
}

// Subcommand returns the first positional argument, lowercased.
func (a Args) Subcommand() string {
	return strings.ToLower(a.Parser.Subcommand())
}

// IO carries the streams a command reads and writes.
type IO struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

// StdIO returns the process streams.
func StdIO() IO {
	return IO{In: os.Stdin, Out: os.Stdout, Err: os.Stderr}
}

const usageText = `docchat - chat with your documents from the terminal

Usage:
  docchat                          Start the TUI (default)
  docchat chat                     Line-based chat session
  docchat ask "question"           Ask a single question
  docchat history [subcommand]     Manage saved conversations
  docchat format [FILE|-]          Show how a reply would be formatted
  docchat prefs [show|set]         AI preferences
  docchat serve [--addr ADDR]      HTTP API for web clients
  docchat config [show|path|get|set]
  docchat version
  docchat help

History:
  docchat history list                  List saved conversations (newest first)
  docchat history search QUERY          Search titles and last messages
  docchat history show ID               Print a conversation
  docchat history delete ID             Delete a conversation
  docchat history reorder ID...         Move conversations to the top
    --query Q                           IDs must be results of this search
  docchat history export ID             Export a conversation (stdout)
    --format md|json|html               Output format (default md)
    --out DIR                           Write a file into DIR instead
    --no-meta                           Leave out header and timestamps

Ask:
  docchat ask "question"
    --conversation ID                   Continue a saved conversation
    --mode chat|agent                   Chat mode for this question
    --source NAME                       Data source for agent mode
    --details                           Show sources and agent thoughts

Format:
  docchat format reply.md               Render a file
  echo "| a | b |" | docchat format -   Render stdin
    --markdown                          Print normalized markdown
    --json                              Print blocks as JSON

Chat commands:
  /new                 Start a new conversation
  /history [QUERY]     List (or search) saved conversations
  /open N|ID           Open a conversation by list number or id
  /delete ID           Delete a conversation
  /mode chat|agent     Switch chat mode
  /source NAME         Select the agent data source
  /help                Show chat commands
  /quit                Leave

Global Flags:
  --config PATH     Use this config file instead of ~/.docchat/config.toml
  --ephemeral       Keep conversations in memory only
  --theme NAME      auto, dark, light or plain
  --json            JSON output where supported
  -v, --verbose     Debug logging

Version: %s
`

// PrintUsage prints the usage/help text.
func PrintUsage(w io.Writer) {
	fmt.Fprintf(w, usageText, Version)
}

// PrintVersion prints version information.
func PrintVersion(w io.Writer) {
	fmt.Fprintf(w, "docchat version %s\n", Version)
	fmt.Fprintf(w, "  Git commit: %s\n", GitCommit)
	fmt.Fprintf(w, "  Build date: %s\n", BuildDate)
	fmt.Fprintf(w, "  Go:         %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Parse parses command-line arguments (without the program name) and
// returns the command and its args.
func Parse(argv []string) (Command, Args, error) {
	remaining, args := parseGlobalFlags(argv)

	if len(remaining) == 0 {
		args.Parser = NewArgParser(nil, boolFlags...)
		return CmdTUI, args, nil
	}

	name := remaining[0]
	cmd, ok := commandNames[strings.ToLower(name)]
	if !ok {
		args.Parser = NewArgParser(nil, boolFlags...)
		return CmdHelp, args, &UsageError{Message: fmt.Sprintf("unknown command %q", name)}
	}
	args.Parser = NewArgParser(remaining[1:], boolFlags...)
	return cmd, args, nil
}

// parseGlobalFlags pulls the global flags out of args wherever they appear.
func parseGlobalFlags(argv []string) ([]string, Args) {
	var remaining []string
	var args Args

	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "--ephemeral":
			args.Ephemeral = true
		case "--json":
			args.JSON = true
		case "-v", "--verbose":
			args.Verbose = true
		case "--config", "--theme":
			if i+1 < len(argv) {
				i++
				setGlobalValue(&args, arg, argv[i])
			}
		default:
			if name, value, ok := strings.Cut(arg, "="); ok && (name == "--config" || name == "--theme") {
				setGlobalValue(&args, name, value)
				continue
			}
			remaining = append(remaining, arg)
		}
	}
	return remaining, args
}

func setGlobalValue(args *Args, name, value string) {
	switch name {
	case "--config":
		args.ConfigPath = value
	case "--theme":
		args.Theme = value
	}
}

// =============================================================================
// DISPATCH
// =============================================================================

// Run parses argv, executes the command and returns the process exit code.
func Run(ctx context.Context, argv []string, stdio IO) int {
	cmd, args, err := Parse(argv)
	if err != nil {
		DisplayError(stdio.Err, err, false)
		PrintUsage(stdio.Err)
		return ExitCode(err)
	}

	if err := Execute(ctx, cmd, args, stdio); err != nil {
		DisplayError(stdio.Err, err, args.JSON)
		return ExitCode(err)
	}
	return ExitSuccess
}

// Execute runs one parsed command.
func Execute(ctx context.Context, cmd Command, args Args, stdio IO) error {
	switch cmd {
	case CmdHelp:
		PrintUsage(stdio.Out)
		return nil
	case CmdVersion:
		return HandleVersion(args, stdio)
	case CmdFormat:
		return HandleFormat(args, stdio)
	case CmdConfig:
		return HandleConfig(args, stdio)
	}

	env, err := Open(ctx, args, stdio)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := env.Close(); cerr != nil {
			env.Logger.Warn().Err(cerr).Msg("shutdown")
		}
	}()

	switch cmd {
	case CmdTUI:
		return HandleTUI(ctx, env, stdio)
	case CmdChat:
		return HandleChat(ctx, env, args, stdio)
	case CmdAsk:
		return HandleAsk(ctx, env, args, stdio)
	case CmdHistory:
		return HandleHistory(env, args, stdio)
	case CmdPrefs:
		return HandlePrefs(env, args, stdio)
	case CmdServe:
		return HandleServe(ctx, env, args)
	default:
		return fmt.Errorf("unhandled command %s", cmd)
	}
}

// HandleVersion prints version information, as JSON with --json.
func HandleVersion(args Args, stdio IO) error {
	if !args.JSON {
		PrintVersion(stdio.Out)
		return nil
	}
	return NewJSONResponse(CmdVersion.String(), map[string]string{
		"version":    Version,
		"git_commit": GitCommit,
		"build_date": BuildDate,
		"go":         runtime.Version(),
	}).Print(stdio.Out)
}
