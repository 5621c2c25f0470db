// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package freshness compares a lockfile against the live source tree and
// classifies every entry (§4.7).
package freshness

import (
	"context"
	"errors"
	"os"
	"path/filepath"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/hasher"
	"github.com/jinterlante1206/docref/internal/lockfile"
	"github.com/jinterlante1206/docref/internal/pathresolve"
	"github.com/jinterlante1206/docref/internal/pipeline"
	"github.com/jinterlante1206/docref/internal/resolver"
)

// BrokenReason names why a Broken entry is broken, mirroring §4.7's
// closed set.
type BrokenReason int

const (
	ReasonNone BrokenReason = iota
	ReasonFileMissing
	ReasonSymbolNotFound
	ReasonUnsupportedLanguage
	ReasonParseFailed
	ReasonBrokenNamespace
)

// EntryResult is one LockEntry's classification.
type EntryResult struct {
	Entry      pipeline.LockEntry
	Verdict    pipeline.Verdict
	Reason     BrokenReason
	Candidates []pipeline.Candidate
}

// Checker bundles the components a freshness pass needs to recompute a
// LockEntry's current hash.
type Checker struct {
	Root     string
	Registry *grammar.Registry
	Resolver *resolver.Resolver
}

// New builds a Checker rooted at root.
func New(root string, registry *grammar.Registry) *Checker {
	return &Checker{Root: root, Registry: registry, Resolver: resolver.New(registry)}
}

// Check classifies every entry in lock.
func (c *Checker) Check(ctx context.Context, lock *lockfile.Lockfile) []EntryResult {
	out := make([]EntryResult, 0, len(lock.Entries))
	for _, e := range lock.Entries {
		out = append(out, c.checkEntry(ctx, e))
	}
	return out
}

func (c *Checker) checkEntry(ctx context.Context, entry pipeline.LockEntry) EntryResult {
	abs := filepath.Join(c.Root, filepath.FromSlash(entry.Target))
	content, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return EntryResult{Entry: entry, Verdict: pipeline.Broken, Reason: ReasonFileMissing}
		}
		return EntryResult{Entry: entry, Verdict: pipeline.Broken, Reason: ReasonFileMissing}
	}

	query := pipeline.ParseSymbol(entry.Symbol)
	res, err := c.Resolver.Resolve(ctx, abs, content, query)
	if err != nil {
		var notFound *pipeline.SymbolNotFoundError
		result := EntryResult{Entry: entry, Verdict: pipeline.Broken, Reason: classify(err)}
		if errors.As(err, &notFound) {
			result.Candidates = notFound.Candidates
		}
		return result
	}

	slice := content[res.Symbol.Range.Start:res.Symbol.Range.End]
	h, err := hasher.Hash(ctx, res.Profile, slice)
	if err != nil {
		return EntryResult{Entry: entry, Verdict: pipeline.Broken, Reason: ReasonParseFailed}
	}

	if h == entry.Hash {
		return EntryResult{Entry: entry, Verdict: pipeline.Fresh}
	}
	return EntryResult{Entry: entry, Verdict: pipeline.Stale}
}

func classify(err error) BrokenReason {
	var notFound *pipeline.SymbolNotFoundError
	var unsupported *pipeline.UnsupportedLanguageError
	var parseFailed *pipeline.ParseFailedError
	var broken *pipeline.BrokenNamespaceError
	switch {
	case errors.As(err, &notFound):
		return ReasonSymbolNotFound
	case errors.As(err, &unsupported):
		return ReasonUnsupportedLanguage
	case errors.As(err, &parseFailed):
		return ReasonParseFailed
	case errors.As(err, &broken):
		return ReasonBrokenNamespace
	default:
		return ReasonFileMissing
	}
}

// NewAndOrphaned compares the References a fresh Scanner pass produces
// against lock, returning references not yet tracked (new) and entries
// whose originating Reference has disappeared (orphaned), per §4.7's
// update/status rules.
func NewAndOrphaned(refs []pipeline.Reference, resolve *pathresolve.Resolver, lock *lockfile.Lockfile) (newRefs []pipeline.Reference, orphaned []pipeline.LockEntry) {
	seen := make(map[[3]string]bool, len(refs))
	for _, ref := range refs {
		source, target, symbol, err := resolve.Key(ref)
		if err != nil {
			continue // broken-namespace references are reported by the resolve pass itself
		}
		key := [3]string{source, target, symbol}
		seen[key] = true
		if _, ok := lock.Find(source, target, symbol); !ok {
			newRefs = append(newRefs, ref)
		}
	}
	for _, e := range lock.Entries {
		key := [3]string{e.Source, e.Target, e.Symbol}
		if !seen[key] {
			orphaned = append(orphaned, e)
		}
	}
	return newRefs, orphaned
}
