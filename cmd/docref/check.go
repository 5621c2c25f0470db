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
	"os"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/diagnostics"
	"github.com/jinterlante1206/docref/internal/freshness"
	"github.com/jinterlante1206/docref/internal/lockfile"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Classify every lockfile entry as fresh, stale, or broken",
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	results, err := runFreshnessPass()
	if err != nil {
		exitCode = 3
		return err
	}

	if jsonOutput {
		diagnostics.RenderJSON(os.Stdout, results)
	} else {
		diagnostics.RenderText(os.Stdout, results, current.color)
	}

	exitCode = checkExitCode(results)
	return nil
}

// checkExitCode implements §6's exit-code table: 0 all fresh, 1 stale
// present with no broken, 2 broken present regardless of stale.
func checkExitCode(results []freshness.EntryResult) int {
	var stale, broken bool
	for _, r := range results {
		switch r.Verdict {
		case pipeline.Stale:
			stale = true
		case pipeline.Broken:
			broken = true
		}
	}
	switch {
	case broken:
		return 2
	case stale:
		return 1
	default:
		return 0
	}
}

// runFreshnessPass loads the lockfile and classifies every entry
// against the live source tree, the operation `check`, `status`, and
// `refs` all build on.
func runFreshnessPass() ([]freshness.EntryResult, error) {
	ctx, done := stageContext(context.Background(), "freshness")
	defer done()

	lock, err := lockfile.Load(lockfile.Path(current.root))
	if err != nil {
		return nil, err
	}

	checker := freshness.New(current.root, current.registry)
	return checker.Check(ctx, lock), nil
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
