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
	"strings"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/diagnostics"
	"github.com/jinterlante1206/docref/internal/freshness"
)

var refsCmd = &cobra.Command{
	Use:   "refs <file>[#symbol]",
	Short: "List lockfile entries whose target matches a file, optionally narrowed to one symbol",
	Args:  cobra.ExactArgs(1),
	RunE:  runRefs,
}

func runRefs(cmd *cobra.Command, args []string) error {
	target, symbol := splitFileSymbol(args[0])

	results, err := runFreshnessPass()
	if err != nil {
		return err
	}

	var matches []freshness.EntryResult
	for _, r := range results {
		if r.Entry.Target != target {
			continue
		}
		if symbol != "" && r.Entry.Symbol != symbol {
			continue
		}
		matches = append(matches, r)
	}

	if jsonOutput {
		return diagnostics.RenderJSON(os.Stdout, matches)
	}
	for _, r := range matches {
		fmt.Printf("%s -> %s#%s\t%s\n", r.Entry.Source, r.Entry.Target, r.Entry.Symbol, r.Entry.Hash)
	}
	return nil
}

func splitFileSymbol(arg string) (target, symbol string) {
	parts := strings.SplitN(arg, "#", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}

func init() {
	rootCmd.AddCommand(refsCmd)
}
