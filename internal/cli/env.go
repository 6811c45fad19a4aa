// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// env.go - Runtime shared by commands that touch conversations.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/jeranaias/docchat/internal/config"
	"github.com/jeranaias/docchat/internal/logging"
	"github.com/jeranaias/docchat/internal/model"
	"github.com/jeranaias/docchat/internal/preferences"
	"github.com/jeranaias/docchat/internal/responder"
	"github.com/jeranaias/docchat/internal/slot"
	"github.com/jeranaias/docchat/internal/storage"
	"github.com/jeranaias/docchat/internal/ui/render"
)

// Env holds the configuration, storage and rendering for one command.
type Env struct {
	Config   *config.Config
	Logger   zerolog.Logger
	Slot     slot.Slot
	Store    *storage.ConversationStore
	Renderer *render.Renderer

	closers []func() error
}

// loadConfig reads .env, then the config file named by --config or the
// default locations, then applies global flag overrides.
func loadConfig(args Args) (*config.Config, error) {
	if err := config.LoadDotEnv(); err != nil {
		return nil, &ConfigError{Err: err}
	}

	var (
		cfg *config.Config
		err error
	)
	if args.ConfigPath != "" {
		cfg, err = config.LoadFromPath(args.ConfigPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, &ConfigError{Err: err}
	}

	if args.Ephemeral {
		cfg.Storage.Backend = "memory"
	}
	if args.Theme != "" {
		cfg.UI.Theme = args.Theme
	}
	if args.Verbose {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// Open loads configuration and builds the slot, responder, store and
// renderer. The saved collection is loaded before Open returns.
func Open(ctx context.Context, args Args, stdio IO) (*Env, error) {
	cfg, err := loadConfig(args)
	if err != nil {
		return nil, err
	}

	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return nil, &ConfigError{Err: err}
	}
	env := &Env{Config: cfg, Logger: logger}
	env.closers = append(env.closers, closeLog)

	if err := env.open(ctx, stdio.Out); err != nil {
		_ = env.Close()
		return nil, err
	}
	return env, nil
}

func (e *Env) open(ctx context.Context, out io.Writer) error {
	s, err := openSlot(ctx, e.Config, logging.Component(e.Logger, "slot"))
	if err != nil {
		return err
	}
	e.Slot = s
	if c, ok := s.(interface{ Close() error }); ok {
		e.closers = append(e.closers, c.Close)
	}

	r, err := responder.New(e.Config)
	if err != nil {
		return &ConfigError{Err: err}
	}

	storeLogger := logging.Component(e.Logger, "storage")
	e.Store = storage.NewConversationStore(s, r,
		storage.WithLogger(storeLogger),
		storage.WithMaxConversations(e.Config.Storage.MaxConversations),
		storage.WithHistoryHint(time.Duration(e.Config.UI.HistoryHintMs)*time.Millisecond),
		storage.WithPreferences(func() *preferences.AIPreferences {
			return preferences.Load(s, storeLogger)
		}),
	)
	e.closers = append(e.closers, func() error {
		e.Store.Close()
		return nil
	})
	e.Store.Load()

	if mode, err := model.ParseChatMode(e.Config.Responder.Mode); err == nil {
		e.Store.SetChatMode(mode)
	}
	e.Store.SetSelectedDataSource(e.Config.Responder.DataSource)

	theme, err := themeFor(out, e.Config.UI.Theme)
	if err != nil {
		return err
	}
	e.Renderer = render.New(theme, e.Config.UI.WordWrap)
	return nil
}

func openSlot(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (slot.Slot, error) {
	switch cfg.Storage.Backend {
	case "memory":
		return slot.NewMemory(), nil
	case "sqlite":
		s, err := slot.OpenSQLite(ctx, cfg.DatabasePath())
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return s, nil
	case "", "file":
		s, err := slot.NewFile(cfg.DataDir(), logger)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return s, nil
	default:
		return nil, &ConfigError{Err: fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)}
	}
}

// Preferences returns the saved AI preferences, or nil.
func (e *Env) Preferences() *preferences.AIPreferences {
	return preferences.Load(e.Slot, e.Logger)
}

// Close releases everything Open acquired, newest first.
func (e *Env) Close() error {
	var errs []error
	for i := len(e.closers) - 1; i >= 0; i-- {
		if err := e.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	e.closers = nil
	return errors.Join(errs...)
}
