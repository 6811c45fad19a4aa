// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// errors.go - Error types and exit codes shared by all commands.
//
// Commands always return errors. Run displays them once and maps them to
// an exit code.
package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/jeranaias/docchat/internal/config"
	"github.com/jeranaias/docchat/internal/preferences"
	"github.com/jeranaias/docchat/internal/storage"
)

// =============================================================================
// EXIT CODES
// =============================================================================

const (
	// ExitSuccess indicates successful execution
	ExitSuccess = 0
	// ExitGeneralError indicates a general/unknown error
	ExitGeneralError = 1
	// ExitUsageError indicates invalid command usage or arguments
	ExitUsageError = 2
	// ExitConfigError indicates configuration file or settings error
	ExitConfigError = 3
	// ExitReplyError indicates the responder failed to answer
	ExitReplyError = 5
	// ExitNotFoundError indicates a resource was not found
	ExitNotFoundError = 7
)

// =============================================================================
// ERROR TYPES
// =============================================================================

// UsageError reports invalid command usage.
type UsageError struct {
	Message string
	Example string
}

func (e *UsageError) Error() string {
	if e.Example != "" {
		return fmt.Sprintf("%s\nExample: %s", e.Message, e.Example)
	}
	return e.Message
}

// CommandError represents a CLI command error with context.
type CommandError struct {
	Command string // Command that failed (e.g., "history")
	Action  string // Action being performed (e.g., "delete")
	Err     error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s %s failed: %v", e.Command, e.Action, e.Err)
}

func (e *CommandError) Unwrap() error {
	return e.Err
}

// ReplyError wraps a responder failure.
type ReplyError struct {
	Err error
}

func (e *ReplyError) Error() string {
	return e.Err.Error()
}

func (e *ReplyError) Unwrap() error {
	return e.Err
}

// ConfigError wraps a failure to load or validate configuration.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func usageErrorf(example, format string, args ...interface{}) error {
	return &UsageError{Message: fmt.Sprintf(format, args...), Example: example}
}

// ExitCode maps an error to a process exit code.
func ExitCode(err error) int {
	var (
		usage  *UsageError
		reply  *ReplyError
		cfgErr *ConfigError
		valid  config.ValidateErrors
	)
	switch {
	case err == nil:
		return ExitSuccess
	case errors.As(err, &usage), errors.Is(err, preferences.ErrInvalid):
		return ExitUsageError
	case errors.As(err, &cfgErr), errors.As(err, &valid):
		return ExitConfigError
	case errors.As(err, &reply):
		return ExitReplyError
	case errors.Is(err, storage.ErrConversationNotFound):
		return ExitNotFoundError
	default:
		return ExitGeneralError
	}
}

// =============================================================================
// ERROR DISPLAY
// =============================================================================

// DisplayError writes err to w. Reply failures are shown as "[Error] ..."
// like a failed message in the chat; everything else as "[ERROR] ...".
func DisplayError(w io.Writer, err error, jsonMode bool) {
	if err == nil {
		return
	}
	if jsonMode {
		DisplayErrorJSON(w, err)
		return
	}
	var reply *ReplyError
	if errors.As(err, &reply) {
		fmt.Fprintf(w, "[Error] %s\n", reply.Err)
		return
	}
	fmt.Fprintf(w, "[ERROR] %s\n", err)
}

// DisplayErrorJSON outputs an error as JSON.
func DisplayErrorJSON(w io.Writer, err error) {
	output := map[string]interface{}{
		"error":   err.Error(),
		"success": false,
	}

	var (
		usage *UsageError
		cmd   *CommandError
		reply *ReplyError
	)
	switch {
	case errors.As(err, &usage):
		output["error_type"] = "usage_error"
	case errors.As(err, &reply):
		output["error_type"] = "reply_error"
	case errors.Is(err, storage.ErrConversationNotFound):
		output["error_type"] = "not_found_error"
	case errors.As(err, &cmd):
		output["error_type"] = "command_error"
		output["command"] = cmd.Command
		output["action"] = cmd.Action
	default:
		output["error_type"] = "generic_error"
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	_ = encoder.Encode(output)
}
