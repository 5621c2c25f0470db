// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package watch drives repeated freshness passes from file system events.
// The pipeline itself has no notion of time (§5); this package is the
// external collaborator that decides when to re-run it, debouncing bursts
// of edits into a single re-check.
package watch

import (
	"context"
	"io/fs"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sys/unix"
)

// Change describes one file system event the debounce loop observed.
type Change struct {
	Path string
	Op   Op
	Time time.Time
}

// Op is the kind of change observed.
type Op int

const (
	OpCreate Op = iota
	OpWrite
	OpRemove
	OpRename
)

func (op Op) String() string {
	switch op {
	case OpCreate:
		return "create"
	case OpWrite:
		return "write"
	case OpRemove:
		return "remove"
	case OpRename:
		return "rename"
	default:
		return "unknown"
	}
}

// ChangeHandler is invoked once per debounce window with the deduplicated
// batch of changes, e.g. to trigger a Scan+Check re-run.
type ChangeHandler func(changes []Change)

// Options configures a Watcher.
type Options struct {
	// DebounceWindow is how long to wait after the last event before
	// firing the handler. Default: 300ms — markdown edits tend to land
	// in bursts (save-on-every-keystroke editors) larger than docref's
	// source-code teacher ever had to absorb.
	DebounceWindow time.Duration

	// IgnorePatterns are glob patterns, or substrings, of paths to skip.
	IgnorePatterns []string

	// BufferSize sizes the internal change channel.
	BufferSize int
}

// DefaultOptions returns docref's watch defaults.
func DefaultOptions() Options {
	return Options{
		DebounceWindow: 300 * time.Millisecond,
		IgnorePatterns: []string{".git", "node_modules", ".docref.lock.tmp-*"},
		BufferSize:     1000,
	}
}

// Watcher watches a project root for markdown and source edits and
// batches them into debounced ChangeHandler calls.
//
// Safe for concurrent use. The handler runs on a single goroutine, so a
// slow handler (a full Scan+Check pass) naturally serializes against
// overlapping runs.
type Watcher struct {
	root     string
	fsw      *fsnotify.Watcher
	handler  ChangeHandler
	debounce time.Duration
	ignore   []string

	changes chan Change
	done    chan struct{}
	once    sync.Once

	mu       sync.RWMutex
	watching bool
}

// New builds a Watcher rooted at root. Call Start to begin watching.
func New(root string, handler ChangeHandler, opts *Options) (*Watcher, error) {
	if opts == nil {
		defaults := DefaultOptions()
		opts = &defaults
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &Watcher{
		root:     root,
		fsw:      fsw,
		handler:  handler,
		debounce: opts.DebounceWindow,
		ignore:   opts.IgnorePatterns,
		changes:  make(chan Change, opts.BufferSize),
		done:     make(chan struct{}),
	}, nil
}

// Start recursively watches root and all subdirectories, debouncing
// events into batched ChangeHandler calls. Returns once the initial
// directory tree has been registered; watching continues in background
// goroutines until Stop is called or ctx is canceled.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.watching {
		w.mu.Unlock()
		return nil
	}
	w.watching = true
	w.mu.Unlock()

	if err := w.addRecursive(w.root); err != nil {
		return err
	}

	go w.processEvents(ctx)
	go w.debounceLoop(ctx)

	return nil
}

// Stop halts watching and releases the underlying fsnotify handle.
func (w *Watcher) Stop() {
	w.once.Do(func() {
		close(w.done)
		w.fsw.Close()

		w.mu.Lock()
		w.watching = false
		w.mu.Unlock()
	})
}

// IsWatching reports whether Start has been called and Stop has not.
func (w *Watcher) IsWatching() bool {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.watching
}

func (w *Watcher) addRecursive(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if w.shouldIgnore(path) {
			return filepath.SkipDir
		}
		return w.fsw.Add(path)
	})
}

func (w *Watcher) shouldIgnore(path string) bool {
	base := filepath.Base(path)

	w.mu.RLock()
	patterns := w.ignore
	w.mu.RUnlock()

	for _, pattern := range patterns {
		if base == pattern {
			return true
		}
		if matched, _ := filepath.Match(pattern, base); matched {
			return true
		}
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func (w *Watcher) processEvents(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-w.done:
			return
		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if w.shouldIgnore(event.Name) {
				continue
			}

			change := Change{
				Path: event.Name,
				Time: time.Now(),
				Op:   convertOp(event.Op),
			}

			select {
			case w.changes <- change:
			default:
				// debounce loop is backed up; drop rather than block the
				// fsnotify event pump
			}

			if event.Has(fsnotify.Create) && isWatchableDir(event.Name) {
				w.fsw.Add(event.Name)
			}

		case _, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
		}
	}
}

// isWatchableDir reports whether path is a directory we should start
// watching, using a raw stat (via golang.org/x/sys/unix) rather than
// os.Stat so a newly created path that vanishes again before the stat
// lands fails closed instead of panicking the event loop.
func isWatchableDir(path string) bool {
	var st unix.Stat_t
	if err := unix.Stat(path, &st); err != nil {
		return false
	}
	return st.Mode&unix.S_IFMT == unix.S_IFDIR
}

func convertOp(op fsnotify.Op) Op {
	switch {
	case op.Has(fsnotify.Create):
		return OpCreate
	case op.Has(fsnotify.Write):
		return OpWrite
	case op.Has(fsnotify.Remove):
		return OpRemove
	case op.Has(fsnotify.Rename):
		return OpRename
	default:
		return OpWrite
	}
}

func (w *Watcher) debounceLoop(ctx context.Context) {
	var batch []Change
	var timer *time.Timer
	var timerC <-chan time.Time

	flush := func() {
		if len(batch) > 0 {
			deduped := deduplicate(batch)
			if len(deduped) > 0 && w.handler != nil {
				w.handler(deduped)
			}
			batch = batch[:0]
		}
		if timer != nil {
			timer.Stop()
			timer = nil
			timerC = nil
		}
	}

	for {
		select {
		case <-ctx.Done():
			flush()
			return
		case <-w.done:
			flush()
			return
		case change := <-w.changes:
			batch = append(batch, change)
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				timerC = timer.C
			} else {
				timer.Reset(w.debounce)
			}
		case <-timerC:
			flush()
		}
	}
}

// deduplicate keeps only the most recent change per path, preserving the
// first-seen order so downstream Scan+Check reporting is stable.
func deduplicate(changes []Change) []Change {
	seen := make(map[string]int, len(changes))
	result := make([]Change, 0, len(changes))
	for _, c := range changes {
		if idx, ok := seen[c.Path]; ok {
			result[idx] = c
			continue
		}
		seen[c.Path] = len(result)
		result = append(result, c)
	}
	return result
}

// AddIgnorePattern appends an ignore pattern at runtime. It applies to
// events processed after the call; directories already registered stay
// watched.
func (w *Watcher) AddIgnorePattern(pattern string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.ignore = append(w.ignore, pattern)
}

// SetHandler replaces the change handler.
func (w *Watcher) SetHandler(handler ChangeHandler) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.handler = handler
}
