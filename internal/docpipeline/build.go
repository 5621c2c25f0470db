// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package docpipeline assembles LockEntry rows from scanned References,
// the operation `init` and `update` share (§4, §5). Resolution is
// parallelized per distinct target file — each file's CST tree is
// independent — then sorted back into the deterministic lockfile order
// before the caller ever sees the result, per §5's ordering guarantee.
package docpipeline

import (
	"context"
	"os"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/hasher"
	"github.com/jinterlante1206/docref/internal/pathresolve"
	"github.com/jinterlante1206/docref/internal/pipeline"
	"github.com/jinterlante1206/docref/internal/resolver"
)

// Diagnostic is a non-fatal failure encountered while building entries
// for one Reference: a broken namespace, an unreadable target, a symbol
// that could not be resolved. §7 requires these be collected, never
// abort the run.
type Diagnostic struct {
	Reference  pipeline.Reference
	Err        error
	Candidates []pipeline.Candidate
}

// group bundles the references that resolve to the same target file, so
// its source bytes are read exactly once; each reference's Resolve call
// parses those bytes into a CST of its own. resolveErr
// is set when every ref in the group shares a path-resolution failure
// (currently only a broken namespace) rather than a live target file;
// target then holds the raw, unresolved path for diagnostic purposes
// only and resolveGroup never reads it (§4.1/§4.7/§7: a broken namespace
// is its own diagnosable category, not a FileMissingError).
type group struct {
	target     string
	refs       []indexedRef
	resolveErr error
}

type indexedRef struct {
	ref pipeline.Reference
	idx int
}

// Build resolves every reference in refs against the source tree rooted
// at root and returns one LockEntry per reference that resolved
// successfully, plus a Diagnostic for every one that did not.
func Build(ctx context.Context, root string, refs []pipeline.Reference, resolve *pathresolve.Resolver, registry *grammar.Registry) ([]pipeline.LockEntry, []Diagnostic, error) {
	groups := groupByTarget(refs, resolve)

	res := resolver.New(registry)

	entriesPerGroup := make([][]pipeline.LockEntry, len(groups))
	diagsPerGroup := make([][]Diagnostic, len(groups))

	eg, egCtx := errgroup.WithContext(ctx)
	var mu sync.Mutex
	for i, g := range groups {
		i, g := i, g
		eg.Go(func() error {
			entries, diags := resolveGroup(egCtx, root, g, res)
			mu.Lock()
			entriesPerGroup[i] = entries
			diagsPerGroup[i] = diags
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, nil, err
	}

	var entries []pipeline.LockEntry
	var diags []Diagnostic
	for i := range groups {
		entries = append(entries, entriesPerGroup[i]...)
		diags = append(diags, diagsPerGroup[i]...)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Less(entries[j]) })
	return entries, diags, nil
}

func groupByTarget(refs []pipeline.Reference, resolve *pathresolve.Resolver) []group {
	byKey := make(map[string][]indexedRef)
	errByKey := make(map[string]error)
	targetByKey := make(map[string]string)
	var order []string
	for i, ref := range refs {
		resolved, err := resolve.Resolve(ref.Source, ref.Namespace, ref.TargetRel)
		key := resolved.Relative
		target := resolved.Relative
		if err != nil {
			// A broken namespace never resolves to a real path; key on the
			// namespace+raw target pair instead so distinct broken
			// namespaces are never merged into one diagnostic.
			key = "broken\x00" + ref.Namespace + "\x00" + ref.TargetRel
			target = ref.TargetRel
			errByKey[key] = err
		}
		if _, ok := byKey[key]; !ok {
			order = append(order, key)
			targetByKey[key] = target
		}
		byKey[key] = append(byKey[key], indexedRef{ref: ref, idx: i})
	}

	groups := make([]group, 0, len(order))
	for _, k := range order {
		groups = append(groups, group{target: targetByKey[k], refs: byKey[k], resolveErr: errByKey[k]})
	}
	return groups
}

func resolveGroup(ctx context.Context, root string, g group, res *resolver.Resolver) ([]pipeline.LockEntry, []Diagnostic) {
	var entries []pipeline.LockEntry
	var diags []Diagnostic

	if g.resolveErr != nil {
		for _, ir := range g.refs {
			diags = append(diags, Diagnostic{Reference: ir.ref, Err: g.resolveErr})
		}
		return entries, diags
	}

	abs := root + string(os.PathSeparator) + g.target
	content, err := os.ReadFile(abs)
	if err != nil {
		for _, ir := range g.refs {
			diags = append(diags, Diagnostic{Reference: ir.ref, Err: &pipeline.FileMissingError{Path: g.target}})
		}
		return entries, diags
	}

	for _, ir := range g.refs {
		result, err := res.Resolve(ctx, abs, content, ir.ref.Query)
		if err != nil {
			d := Diagnostic{Reference: ir.ref, Err: err}
			var notFound *pipeline.SymbolNotFoundError
			if as, ok := err.(*pipeline.SymbolNotFoundError); ok {
				notFound = as
				d.Candidates = notFound.Candidates
			}
			diags = append(diags, d)
			continue
		}

		slice := content[result.Symbol.Range.Start:result.Symbol.Range.End]
		h, err := hasher.Hash(ctx, result.Profile, slice)
		if err != nil {
			diags = append(diags, Diagnostic{Reference: ir.ref, Err: err})
			continue
		}

		entries = append(entries, pipeline.LockEntry{
			Source: ir.ref.Source,
			Target: g.target,
			Symbol: ir.ref.Query.String(),
			Hash:   h,
		})
	}

	return entries, diags
}
