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
	"os"

	"github.com/spf13/cobra"

	"github.com/jinterlante1206/docref/internal/config"
	"github.com/jinterlante1206/docref/internal/diagnostics"
	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/pathresolve"
	"github.com/jinterlante1206/docref/internal/telemetry"
	"github.com/jinterlante1206/docref/pkg/logging"
)

var (
	projectRoot string
	jsonOutput  bool
	noColor     bool
	traceRun    bool

	rootCmd = &cobra.Command{
		Use:   "docref",
		Short: "Check whether markdown references to source symbols have drifted",
		Long: `docref scans markdown for links into source code, resolves each
link to a named symbol using the language's own grammar, and tracks a
semantic hash of that symbol so renames and reformatting are told apart
from real edits.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
	}
)

// app bundles the components every subcommand needs, built once per
// invocation from the project-scoped configuration (§6).
type app struct {
	root     string
	cfg      *config.Config
	registry *grammar.Registry
	resolve  *pathresolve.Resolver
	logger   *logging.Logger
	runID    string
	color    bool
}

var current *app

func initApp() error {
	root := projectRoot
	if root == "" {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		root = wd
	}

	cfg, err := config.Load(root)
	if err != nil {
		return err
	}

	logger := logging.New(logging.Config{
		Level: logging.ParseLevel(cfg.LogLevel),
		Quiet: jsonOutput,
		FilePath: cfg.LogFile,
	})
	logging.SetDefault(logger)

	resolve, err := pathresolve.New(root, cfg.Namespaces)
	if err != nil {
		return err
	}

	color := !noColor && !jsonOutput && diagnostics.ColorEnabled(os.Stdout)

	current = &app{
		root:     root,
		cfg:      cfg,
		registry: grammar.NewRegistry(),
		resolve:  resolve,
		logger:   logger,
		runID:    telemetry.RunID(),
		color:    color,
	}
	return nil
}

// stageContext opens a traced span for stage when --trace is set, and
// returns a cleanup the caller should defer.
func stageContext(ctx context.Context, stage string) (context.Context, func()) {
	if !traceRun {
		return ctx, func() {}
	}
	ctx, span := telemetry.StartStage(ctx, stage, current.runID)
	return ctx, func() { span.End() }
}

// Execute runs the docref CLI and returns a process exit code.
func Execute() int {
	rootCmd.PersistentFlags().StringVar(&projectRoot, "root", "", "project root (defaults to the working directory)")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "emit machine-readable JSON instead of a human report")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVar(&traceRun, "trace", false, "open an OpenTelemetry span for each pipeline stage on the global tracer provider")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		if current != nil {
			current.logger.Close()
		}
		return 3
	}
	if current != nil {
		current.logger.Close()
	}
	return exitCode
}

// exitCode is set by whichever subcommand needs a non-zero code other
// than cobra's own usage-error convention (currently only `check`, per
// §6's 0/1/2/3 scheme).
var exitCode int
