// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{
		"debug":    LevelDebug,
		"info":     LevelInfo,
		"warn":     LevelWarn,
		"error":    LevelError,
		"bogus":    LevelInfo,
		"":         LevelInfo,
	}
	for input, want := range cases {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, ParseLevel(input))
		})
	}
}

func TestNew_Default(t *testing.T) {
	logger := New(Config{})
	require.NotNil(t, logger)
	require.NotNil(t, logger.Slog())
	assert.NoError(t, logger.Close())
}

func TestNew_Quiet(t *testing.T) {
	logger := New(Config{Quiet: true})
	logger.Info("should not panic even with no handlers configured")
	assert.NoError(t, logger.Close())
}

func TestLogger_With(t *testing.T) {
	base := New(Config{Quiet: true})
	child := base.With("run_id", "abc123")
	require.NotNil(t, child.Slog())
	assert.NotSame(t, base.Slog(), child.Slog())
}

func TestLogger_WritesToFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "docref.log")

	logger := New(Config{Quiet: true, FilePath: path})
	logger.Info("pipeline started", "entries", 3)
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pipeline started")
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "logs/docref.log"), expandPath("~/logs/docref.log"))
	assert.Equal(t, "/var/log/docref.log", expandPath("/var/log/docref.log"))
}

func TestMultiHandler_FanOut(t *testing.T) {
	var bufA, bufB bytes.Buffer
	h := &multiHandler{handlers: []slog.Handler{
		slog.NewTextHandler(&bufA, nil),
		slog.NewJSONHandler(&bufB, nil),
	}}
	logger := slog.New(h)
	logger.Info("fan out", "k", "v")

	assert.Contains(t, bufA.String(), "fan out")
	assert.Contains(t, bufB.String(), `"msg":"fan out"`)
}

func TestMultiHandler_Enabled_NoneEnabled(t *testing.T) {
	h := &multiHandler{}
	assert.False(t, h.Enabled(nil, slog.LevelInfo))
}

func TestDefault_Singleton(t *testing.T) {
	first := Default()
	second := Default()
	assert.Same(t, first, second)
}
