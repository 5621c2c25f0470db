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
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/diagnostics"
	"github.com/jinterlante1206/docref/internal/freshness"
	"github.com/jinterlante1206/docref/internal/pathresolve"
	"github.com/jinterlante1206/docref/internal/pipeline"
	"github.com/jinterlante1206/docref/internal/scanner"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Report freshness plus references the lockfile doesn't know about yet",
	RunE:  runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	results, err := runFreshnessPass()
	if err != nil {
		return err
	}

	if jsonOutput {
		return diagnostics.RenderJSON(os.Stdout, results)
	}

	diagnostics.RenderText(os.Stdout, results, current.color)

	refs, err := scanner.Scan(current.root, current.cfg.Include, current.cfg.Exclude)
	if err != nil {
		return err
	}
	newRefs, orphaned := newAndOrphaned(refs, current.resolve)
	for _, r := range newRefs {
		fmt.Fprintf(os.Stdout, "new: %s -> %s#%s\n", r.Source, r.TargetRel, r.Query.String())
	}
	for _, o := range orphaned {
		fmt.Fprintf(os.Stdout, "orphaned: %s -> %s#%s\n", o.Source, o.Target, o.Symbol)
	}
	return nil
}

func newAndOrphaned(refs []pipeline.Reference, resolve *pathresolve.Resolver) ([]pipeline.Reference, []pipeline.LockEntry) {
	lock, err := loadLockfile()
	if err != nil {
		return nil, nil
	}
	return freshness.NewAndOrphaned(refs, resolve, lock)
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
