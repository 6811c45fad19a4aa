// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// config_cmd.go - Config command implementation.
//
// Subcommands:
//
//	show (default)      Display the effective configuration
//	path                Show the configuration file path
//	get <key>           Print one value (dot notation, e.g. ui.theme)
//	set <key> <value>   Change one value and save config.toml
//	keys                List every key
package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/jeranaias/docchat/internal/config"
)

// HandleConfig dispatches the config subcommands.
func HandleConfig(args Args, stdio IO) error {
	p := args.Parser
	switch args.Subcommand() {
	case "", "show":
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		if args.JSON {
			return NewJSONResponse(CmdConfig.String(), redacted(cfg)).Print(stdio.Out)
		}
		fmt.Fprintln(stdio.Out, cfg.String())
		return nil

	case "path":
		path, err := configPath(args)
		if err != nil {
			return err
		}
		fmt.Fprintln(stdio.Out, path)
		return nil

	case "keys":
		fmt.Fprintln(stdio.Out, strings.Join(config.GetAllKeys(), "\n"))
		return nil

	case "get":
		key := p.Positional(1)
		if key == "" {
			return usageErrorf("docchat config get ui.theme", "config get needs a key")
		}
		cfg, err := loadConfig(args)
		if err != nil {
			return err
		}
		val, err := cfg.Get(key)
		if err != nil {
			return &UsageError{Message: err.Error()}
		}
		fmt.Fprintln(stdio.Out, val)
		return nil

	case "set":
		key := p.Positional(1)
		if key == "" || p.PositionalCount() < 3 {
			return usageErrorf("docchat config set ui.theme dark", "config set needs a key and a value")
		}
		return configSet(args, stdio, key, JoinPositionalArgs(p, 2))

	default:
		return usageErrorf("docchat config show", "unknown config subcommand %q", p.Subcommand())
	}
}

func configPath(args Args) (string, error) {
	if args.ConfigPath != "" {
		return args.ConfigPath, nil
	}
	path, err := config.ConfigPathTOML()
	if err != nil {
		return "", &ConfigError{Err: err}
	}
	return path, nil
}

// configSet changes one key. The file is re-read without environment
// overrides so DOCCHAT_* values are not written back.
func configSet(args Args, stdio IO, key, value string) error {
	path, err := configPath(args)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if err := config.LoadTOML(cfg, path); err != nil && !isNotExist(err) {
		return &ConfigError{Err: err}
	}
	if err := cfg.Set(key, value); err != nil {
		return &UsageError{Message: err.Error(), Example: "docchat config set ui.theme dark"}
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return &ConfigError{Err: err}
	}
	if err := config.SaveTOML(cfg, path); err != nil {
		return &ConfigError{Err: err}
	}
	fmt.Fprintf(stdio.Out, "Set %s in %s\n", key, path)
	return nil
}

func redacted(cfg *config.Config) *config.Config {
	safe := cfg.Clone()
	if safe.Responder.AuthToken != "" {
		safe.Responder.AuthToken = "[REDACTED]"
	}
	if safe.Server.APIToken != "" {
		safe.Server.APIToken = "[REDACTED]"
	}
	return safe
}

func isNotExist(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}
