// Performance Cycle FBT - Frequently Bought Together Recommendations
// Copyright 2026 josephmusso10-dev
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/josephmusso10-dev/Performance-Cycle-FBT

package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

// ErrNoPaths is returned by New when there is nothing to watch.
var ErrNoPaths = errors.New("watch: no paths")

// Config controls a Watcher.
type Config struct {
	// Paths are the files to watch. Empty entries are ignored.
	Paths []string

	// Settle is how long the files must be quiet before the callback runs.
	// Default: 750ms
	Settle time.Duration

	// MinInterval is the minimum time between two callbacks.
	// Default: 1s
	MinInterval time.Duration
}

// Stats counts watcher activity.
type Stats struct {
	Events   int64 `json:"events"`
	Runs     int64 `json:"runs"`
	Errors   int64 `json:"errors"`
	Throttled int64 `json:"throttled"`
}

// Watcher debounces file system events for a fixed set of files.
type Watcher struct {
	targets map[string]bool
	dirs    []string
	settle  time.Duration
	limiter *rate.Limiter
	onEvent func(context.Context)
	logger  zerolog.Logger

	events   atomic.Int64
	runs     atomic.Int64
	errs     atomic.Int64
	throttle atomic.Int64
}

// New creates a watcher that calls fn after changes settle.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg Config, fn func(context.Context), logger zerolog.Logger) (*Watcher, error) {
	if cfg.Settle <= 0 {
		cfg.Settle = 750 * time.Millisecond
	}
	if cfg.MinInterval <= 0 {
		cfg.MinInterval = time.Second
	}

	w := &Watcher{
		targets: make(map[string]bool),
		settle:  cfg.Settle,
		limiter: rate.NewLimiter(rate.Every(cfg.MinInterval), 1),
		onEvent: fn,
		logger:  logger.With().Str("component", "watch").Logger(),
	}
	seenDir := make(map[string]bool)
	for _, p := range cfg.Paths {
		if p == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", p, err)
		}
		w.targets[abs] = true
		if dir := filepath.Dir(abs); !seenDir[dir] {
			seenDir[dir] = true
			w.dirs = append(w.dirs, dir)
		}
	}
	if len(w.targets) == 0 {
		return nil, ErrNoPaths
	}
	return w, nil
}

// Stats returns a copy of the activity counters.
func (w *Watcher) Stats() Stats {
	return Stats{
		Events:   w.events.Load(),
		Runs:     w.runs.Load(),
		Errors:   w.errs.Load(),
		Throttled: w.throttle.Load(),
	}
}

// Run watches until ctx is canceled. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	for _, dir := range w.dirs {
		if err := fsw.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		w.logger.Debug().Str("dir", dir).Msg("watching directory")
	}

	// settle is nil while no change is pending.
	var settle <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !w.relevant(ev) {
				continue
			}
			w.events.Add(1)
			w.logger.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("change detected")
			settle = time.After(w.settle)

		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.errs.Add(1)
			w.logger.Warn().Err(err).Msg("watcher error")

		case <-settle:
			settle = nil
			if !w.limiter.Allow() {
				w.throttle.Add(1)
				if err := w.limiter.Wait(ctx); err != nil {
					return nil
				}
			}
			w.runs.Add(1)
			w.onEvent(ctx)
		}
	}
}

func (w *Watcher) relevant(ev fsnotify.Event) bool {
	if ev.Op == fsnotify.Chmod {
		return false
	}
	abs, err := filepath.Abs(ev.Name)
	if err != nil {
		return false
	}
	return w.targets[abs]
}
