// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package lockfile reads and writes the canonical, sorted on-disk table
// of (source, target, symbol) -> hash bindings (§4.6).
package lockfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// FileName is the lockfile's fixed path segment, relative to the project
// root (§6).
const FileName = ".docref.lock"

// Lockfile is an ordered, deduplicated sequence of LockEntry, totally
// ordered by (source, target, symbol) per §3.
type Lockfile struct {
	Entries []pipeline.LockEntry
}

// rawEntry mirrors one [[entries]] table; field order in this struct
// drives BurntSushi/toml's encode order, matching §4.6's fixed key order.
type rawEntry struct {
	Source string `toml:"source"`
	Target string `toml:"target"`
	Symbol string `toml:"symbol"`
	Hash   string `toml:"hash"`
}

type rawFile struct {
	Entries []rawEntry `toml:"entries"`
}

// New builds a Lockfile from entries, sorted per §3, keeping only the
// first of any entries that share a (source, target, symbol) key.
func New(entries []pipeline.LockEntry) *Lockfile {
	sorted := append([]pipeline.LockEntry(nil), entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	deduped := sorted[:0]
	for _, e := range sorted {
		if n := len(deduped); n > 0 && !deduped[n-1].Less(e) {
			continue
		}
		deduped = append(deduped, e)
	}
	return &Lockfile{Entries: deduped}
}

// Path returns the lockfile's absolute path under root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Load reads and parses the lockfile at path, verifying the sort
// invariant and rejecting duplicate keys (§4.6). A missing file is not
// an error: it returns an empty Lockfile.
func Load(path string) (*Lockfile, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Lockfile{}, nil
	}
	if err != nil {
		return nil, err
	}

	var raw rawFile
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return nil, fmt.Errorf("%w: %v", pipeline.ErrLockfileCorrupt, err)
	}

	entries := make([]pipeline.LockEntry, 0, len(raw.Entries))
	seen := make(map[[3]string]bool, len(raw.Entries))
	for _, e := range raw.Entries {
		if e.Source == "" || e.Target == "" || e.Hash == "" {
			return nil, fmt.Errorf("%w: missing required key", pipeline.ErrLockfileCorrupt)
		}
		key := [3]string{e.Source, e.Target, e.Symbol}
		if seen[key] {
			return nil, fmt.Errorf("%w: %v", pipeline.ErrDuplicateLockEntry, key)
		}
		seen[key] = true
		entries = append(entries, pipeline.LockEntry{
			Source: e.Source, Target: e.Target, Symbol: e.Symbol,
			Hash: pipeline.SemanticHash(e.Hash),
		})
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Less(entries[i-1]) {
			return nil, fmt.Errorf("%w: out of order at entry %d", pipeline.ErrLockfileCorrupt, i)
		}
	}

	return &Lockfile{Entries: entries}, nil
}

// Marshal renders the lockfile's canonical textual form: §4.6's fixed key
// order, sorted entries, trailing newline. It is a pure function of
// Entries (§3 invariant 5).
func (l *Lockfile) Marshal() ([]byte, error) {
	sorted := append([]pipeline.LockEntry(nil), l.Entries...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })
	raw := rawFile{Entries: make([]rawEntry, len(sorted))}
	for i, e := range sorted {
		raw.Entries[i] = rawEntry{Source: e.Source, Target: e.Target, Symbol: e.Symbol, Hash: string(e.Hash)}
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return nil, err
	}
	out := buf.Bytes()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	return out, nil
}

// Write performs an atomic write-to-temp-then-rename within dir (§4.6).
func (l *Lockfile) Write(path string) error {
	data, err := l.Marshal()
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".docref.lock.tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, path)
}

// Find returns the entry for (source, target, symbol), if present.
func (l *Lockfile) Find(source, target, symbol string) (pipeline.LockEntry, bool) {
	for _, e := range l.Entries {
		if e.Source == source && e.Target == target && e.Symbol == symbol {
			return e, true
		}
	}
	return pipeline.LockEntry{}, false
}
