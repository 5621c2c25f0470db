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
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/resolver"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "List the top-level symbols (and their children) a file's grammar exposes",
	Args:  cobra.ExactArgs(1),
	RunE:  runResolve,
}

func runResolve(cmd *cobra.Command, args []string) error {
	rel := args[0]
	abs := filepath.Join(current.root, rel)
	content, err := os.ReadFile(abs)
	if err != nil {
		return err
	}

	symbols, err := resolver.EnumerateTopLevel(current.registry, abs, content)
	if err != nil {
		return err
	}
	for _, s := range symbols {
		if s.Parent == "" {
			fmt.Printf("%s\t%s\n", s.Kind, s.Name)
		} else {
			fmt.Printf("%s\t%s.%s\n", s.Kind, s.Parent, s.Name)
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
