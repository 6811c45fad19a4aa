// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package slot

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/jeranaias/docchat/internal/util"
)

// watchDebounce coalesces the burst of events one atomic write produces.
const watchDebounce = 50 * time.Millisecond

// =============================================================================
// FILE SLOT
// =============================================================================

// File stores each key as <dir>/<key>.json.
type File struct {
	dir    string
	logger zerolog.Logger
}

// NewFile creates a file slot rooted at dir, creating it if needed.
func NewFile(dir string, logger zerolog.Logger) (*File, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create slot directory: %w", err)
	}
	return &File{dir: dir, logger: logger}, nil
}

// Dir returns the directory holding the slot files.
func (f *File) Dir() string {
	return f.dir
}

// Path returns the file backing key.
func (f *File) Path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

// Read implements Slot.
func (f *File) Read(key string) (string, bool, error) {
	if err := ValidateKey(key); err != nil {
		return "", false, err
	}
	data, err := os.ReadFile(f.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read slot %s: %w", key, err)
	}
	return string(data), true, nil
}

// Write implements Slot.
// RELIABILITY: Atomic write with fsync prevents a torn collection on crash.
func (f *File) Write(key, value string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	if err := util.AtomicWriteFile(f.Path(key), []byte(value), 0600); err != nil {
		return fmt.Errorf("failed to write slot %s: %w", key, err)
	}
	return nil
}

// =============================================================================
// WATCH
// =============================================================================

// Watch calls fn after the file for key is created, written or replaced.
// The directory is watched rather than the file because atomic writes
// swap the inode. Bursts of events are debounced.
func (f *File) Watch(ctx context.Context, key string, fn func()) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	if err := w.Add(f.dir); err != nil {
		w.Close()
		return fmt.Errorf("failed to watch %s: %w", f.dir, err)
	}

	target := filepath.Base(f.Path(key))
	go f.processEvents(ctx, w, target, fn)
	return nil
}

func (f *File) processEvents(ctx context.Context, w *fsnotify.Watcher, target string, fn func()) {
	defer w.Close()

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.Events:
			if !ok {
				return
			}
			name := filepath.Base(event.Name)
			if name != target || strings.HasPrefix(name, ".tmp-") {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, func() {
				if ctx.Err() == nil {
					fn()
				}
			})
			mu.Unlock()

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			f.logger.Warn().Err(err).Str("dir", f.dir).Msg("slot watcher error")
		}
	}
}
