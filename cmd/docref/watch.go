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
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/diagnostics"
	"github.com/jinterlante1206/docref/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-run check on a debounced loop as files change",
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := watch.DefaultOptions()
	for _, exclude := range current.cfg.Exclude {
		opts.IgnorePatterns = append(opts.IgnorePatterns, exclude)
	}

	w, err := watch.New(current.root, func(changes []watch.Change) {
		current.logger.Info("re-checking after file changes", "changes", len(changes))
		results, err := runFreshnessPass()
		if err != nil {
			current.logger.Error("freshness pass failed", "error", err)
			return
		}
		if jsonOutput {
			diagnostics.RenderJSON(os.Stdout, results)
		} else {
			diagnostics.RenderText(os.Stdout, results, current.color)
		}
	}, &opts)
	if err != nil {
		return err
	}

	if err := w.Start(ctx); err != nil {
		return err
	}
	defer w.Stop()

	<-ctx.Done()
	return nil
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
