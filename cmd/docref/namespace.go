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

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/config"
)

var namespaceCmd = &cobra.Command{
	Use:   "namespace",
	Short: "Manage the project's namespace table (§6 config namespaces)",
}

var namespaceAddCmd = &cobra.Command{
	Use:   "add <name> <path>",
	Short: "Map a namespace prefix to a directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg
		if cfg.Namespaces == nil {
			cfg.Namespaces = map[string]string{}
		}
		cfg.Namespaces[args[0]] = args[1]
		if err := config.Save(current.root, cfg); err != nil {
			return err
		}
		fmt.Printf("namespace %q -> %q\n", args[0], args[1])
		return nil
	},
}

var namespaceRmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Remove a namespace mapping",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg
		delete(cfg.Namespaces, args[0])
		if err := config.Save(current.root, cfg); err != nil {
			return err
		}
		fmt.Printf("removed namespace %q\n", args[0])
		return nil
	},
}

func init() {
	namespaceCmd.AddCommand(namespaceAddCmd)
	namespaceCmd.AddCommand(namespaceRmCmd)
	rootCmd.AddCommand(namespaceCmd)
}
