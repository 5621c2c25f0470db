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
	"github.com/jinterlante1206/docref/internal/scanner"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Scan markdown, resolve every reference, and write a new lockfile",
	RunE:  runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	ctx, done := stageContext(context.Background(), "scan")
	refs, err := scanner.Scan(current.root, current.cfg.Include, current.cfg.Exclude)
	done()
	if err != nil {
		return err
	}
	current.logger.Info("scanned markdown", "references", len(refs))

	ctx, done = stageContext(ctx, "resolve")
	entries, diags, err := docpipeline.Build(ctx, current.root, refs, current.resolve, current.registry)
	done()
	if err != nil {
		return err
	}

	lock := lockfile.New(entries)
	path := lockfile.Path(current.root)
	if err := lock.Write(path); err != nil {
		return err
	}

	fmt.Printf("wrote %s with %d entries\n", path, len(entries))
	for _, d := range diags {
		fmt.Printf("skipped %s -> %s#%s: %v\n", d.Reference.Source, d.Reference.TargetRel, d.Reference.Query.String(), d.Err)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
