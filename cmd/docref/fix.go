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
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/hasher"
	"github.com/jinterlante1206/docref/internal/lockfile"
	"github.com/jinterlante1206/docref/internal/pipeline"
	"github.com/jinterlante1206/docref/internal/resolver"
	"github.com/jinterlante1206/docref/internal/scanner"
)

var fixCmd = &cobra.Command{
	Use:   "fix [ref] [newsym]",
	Short: "Accept a suggested symbol rename for one broken lockfile entry",
	Long: `fix walks every broken entry one at a time, lists its candidate
symbols by number, and on a numeric choice rewrites both the lockfile
entry and the markdown link that pointed at the old name. Called as
"fix <ref> <newsym>" it applies one rename non-interactively, where ref
is "source->target#symbol".`,
	RunE: runFix,
}

func runFix(cmd *cobra.Command, args []string) error {
	lock, err := loadLockfile()
	if err != nil {
		return err
	}

	if len(args) == 2 {
		return applyFix(lock, args[0], args[1])
	}

	results, err := runFreshnessPass()
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	for _, r := range results {
		if r.Verdict != pipeline.Broken || len(r.Candidates) == 0 {
			continue
		}
		fmt.Printf("%s -> %s#%s is broken; candidates:\n", r.Entry.Source, r.Entry.Target, r.Entry.Symbol)
		for i, c := range r.Candidates {
			fmt.Printf("  %d) %s\n", i+1, c.Name)
		}
		fmt.Print("accept which candidate? [1-N, blank to skip] ")

		line, _ := reader.ReadString('\n')
		choice := strings.TrimSpace(line)
		if choice == "" {
			continue
		}
		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(r.Candidates) {
			fmt.Printf("skipping %s -> %s#%s: %q is not a valid candidate number\n", r.Entry.Source, r.Entry.Target, r.Entry.Symbol, choice)
			continue
		}
		if err := renameEntry(lock, r.Entry, r.Candidates[idx-1].Name); err != nil {
			return err
		}
	}

	return lock.Write(lockfile.Path(current.root))
}

func applyFix(lock *lockfile.Lockfile, ref, newSymbol string) error {
	parts := strings.SplitN(ref, "->", 2)
	if len(parts) != 2 {
		return fmt.Errorf("malformed ref %q: expected source->target#symbol", ref)
	}
	targetAndSymbol := strings.SplitN(parts[1], "#", 2)
	if len(targetAndSymbol) != 2 {
		return fmt.Errorf("malformed ref %q: expected source->target#symbol", ref)
	}

	entry, ok := lock.Find(parts[0], targetAndSymbol[0], targetAndSymbol[1])
	if !ok {
		return fmt.Errorf("no lockfile entry for %s", ref)
	}
	if err := renameEntry(lock, entry, newSymbol); err != nil {
		return err
	}
	return lock.Write(lockfile.Path(current.root))
}

// renameEntry replaces entry's symbol query with newSymbol, recomputing
// its hash against the live source so the rename lands fresh rather
// than immediately stale, and rewrites the markdown link that produced
// entry so the source of truth and the lockfile never diverge.
func renameEntry(lock *lockfile.Lockfile, entry pipeline.LockEntry, newSymbol string) error {
	abs := current.root + string(os.PathSeparator) + entry.Target
	content, err := os.ReadFile(abs)
	if err != nil {
		return err
	}

	query := pipeline.ParseSymbol(newSymbol)
	res := resolver.New(current.registry)
	result, err := res.Resolve(context.Background(), abs, content, query)
	if err != nil {
		return err
	}

	slice := content[result.Symbol.Range.Start:result.Symbol.Range.End]
	h, err := hasher.Hash(context.Background(), result.Profile, slice)
	if err != nil {
		return err
	}

	ref, found, err := findSourceReference(entry)
	if err != nil {
		return err
	}
	if found {
		if err := rewriteMarkdownLink(ref, newSymbol); err != nil {
			return err
		}
	}

	for i, e := range lock.Entries {
		if e.Source == entry.Source && e.Target == entry.Target && e.Symbol == entry.Symbol {
			lock.Entries[i].Symbol = newSymbol
			lock.Entries[i].Hash = h
		}
	}
	return nil
}

// findSourceReference re-scans entry.Source's markdown for the Reference
// that produced entry, matching on (source, resolved target, symbol)
// since LockEntry itself keeps no position. Returns found=false, not an
// error, if the link has since been edited or removed out from under us.
func findSourceReference(entry pipeline.LockEntry) (ref pipeline.Reference, found bool, err error) {
	abs := filepath.Join(current.root, filepath.FromSlash(entry.Source))
	content, err := os.ReadFile(abs)
	if err != nil {
		return pipeline.Reference{}, false, err
	}
	for _, candidate := range scanner.ScanFile(entry.Source, content) {
		resolved, err := current.resolve.Resolve(candidate.Source, candidate.Namespace, candidate.TargetRel)
		if err != nil {
			continue
		}
		if resolved.Relative == entry.Target && candidate.Query.String() == entry.Symbol {
			return candidate, true, nil
		}
	}
	return pipeline.Reference{}, false, nil
}

// rewriteMarkdownLink rewrites ref's link target in place, swapping its
// symbol for newSymbol and leaving the namespace and path untouched.
func rewriteMarkdownLink(ref pipeline.Reference, newSymbol string) error {
	abs := filepath.Join(current.root, filepath.FromSlash(ref.Source))
	content, err := os.ReadFile(abs)
	if err != nil {
		return err
	}

	lines := strings.Split(string(content), "\n")
	if ref.Line < 1 || ref.Line > len(lines) {
		return fmt.Errorf("fix: %s:%d is out of range for the current file contents", ref.Source, ref.Line)
	}
	line := lines[ref.Line-1]

	oldSuffix := "](" + ref.RawTarget + ")"
	newSuffix := "](" + retargetSymbol(ref.RawTarget, newSymbol) + ")"

	searchFrom := ref.Column - 1
	if searchFrom < 0 || searchFrom > len(line) {
		searchFrom = 0
	}
	idx := strings.Index(line[searchFrom:], oldSuffix)
	if idx < 0 {
		return fmt.Errorf("fix: could not locate the link target for %s#%s in %s:%d", ref.TargetRel, ref.Query.String(), ref.Source, ref.Line)
	}
	at := searchFrom + idx
	lines[ref.Line-1] = line[:at] + newSuffix + line[at+len(oldSuffix):]

	return os.WriteFile(abs, []byte(strings.Join(lines, "\n")), 0644)
}

// retargetSymbol replaces the "#symbol" suffix of a link target with
// newSymbol, appending one if rawTarget named no symbol at all.
func retargetSymbol(rawTarget, newSymbol string) string {
	if idx := strings.IndexByte(rawTarget, '#'); idx >= 0 {
		return rawTarget[:idx] + "#" + newSymbol
	}
	return rawTarget + "#" + newSymbol
}

func init() {
	rootCmd.AddCommand(fixCmd)
}
