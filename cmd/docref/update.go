// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/docpipeline"
	"github.com/jinterlante1206/docref/internal/lockfile"
	"github.com/jinterlante1206/docref/internal/pipeline"
	"github.com/jinterlante1206/docref/internal/scanner"
)

var (
	updateFrom string
	updateAll  bool
)

var updateCmd = &cobra.Command{
	Use:   "update [target]",
	Short: "Re-hash references and refresh the lockfile",
	Long: `update re-scans markdown, recomputes the symbol hash for the
selected entries, and writes the result back to the lockfile. With no
target, --from, or --all, it only adds references new since the last
scan; --all re-hashes every entry regardless of its current verdict.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	var target string
	if len(args) > 0 {
		target = args[0]
	}

	ctx, done := stageContext(context.Background(), "scan")
	refs, err := scanner.Scan(current.root, current.cfg.Include, current.cfg.Exclude)
	done()
	if err != nil {
		return err
	}

	if !updateAll && target == "" && updateFrom == "" {
		refs = onlyNew(refs)
	} else if target != "" {
		refs = filterByTarget(refs, target)
	} else if updateFrom != "" {
		refs = filterBySource(refs, updateFrom)
	}

	ctx, done = stageContext(ctx, "resolve")
	entries, diags, err := docpipeline.Build(ctx, current.root, refs, current.resolve, current.registry)
	done()
	if err != nil {
		return err
	}

	lock, err := loadLockfile()
	if err != nil {
		return err
	}
	merged := mergeEntries(lock.Entries, entries, refs)

	path := lockfile.Path(current.root)
	if err := lockfile.New(merged).Write(path); err != nil {
		return err
	}

	fmt.Printf("updated %s: %d entries refreshed, %d skipped\n", path, len(entries), len(diags))
	return nil
}

func onlyNew(refs []pipeline.Reference) []pipeline.Reference {
	newRefs, _ := newAndOrphaned(refs, current.resolve)
	return newRefs
}

func filterByTarget(refs []pipeline.Reference, target string) []pipeline.Reference {
	var out []pipeline.Reference
	for _, r := range refs {
		resolved, err := current.resolve.Resolve(r.Source, r.Namespace, r.TargetRel)
		if err == nil && resolved.Relative == target {
			out = append(out, r)
		}
	}
	return out
}

func filterBySource(refs []pipeline.Reference, source string) []pipeline.Reference {
	var out []pipeline.Reference
	for _, r := range refs {
		if r.Source == source {
			out = append(out, r)
		}
	}
	return out
}

// mergeEntries replaces any existing entry sharing a (source, target,
// symbol) key with the freshly computed one, keeping entries for
// references untouched by this update.
func mergeEntries(existing, fresh []pipeline.LockEntry, touched []pipeline.Reference) []pipeline.LockEntry {
	touchedKeys := make(map[[3]string]bool, len(touched))
	for _, r := range touched {
		source, target, symbol, err := current.resolve.Key(r)
		if err == nil {
			touchedKeys[[3]string{source, target, symbol}] = true
		}
	}

	out := make([]pipeline.LockEntry, 0, len(existing)+len(fresh))
	for _, e := range existing {
		k := [3]string{e.Source, e.Target, e.Symbol}
		if !touchedKeys[k] {
			out = append(out, e)
		}
	}
	out = append(out, fresh...)
	return out
}

func init() {
	updateCmd.Flags().StringVar(&updateFrom, "from", "", "limit to references whose markdown source matches this path")
	updateCmd.Flags().BoolVar(&updateAll, "all", false, "re-hash every reference, not just new ones")
	rootCmd.AddCommand(updateCmd)
}
