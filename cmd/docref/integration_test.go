// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Integration tests that exercise the docref CLI end-to-end against a
// scratch project, the way cmd/trace's integration test drives the
// trace HTTP API against a real codebase.
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/lockfile"
)

func newScratchProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.go"),
		[]byte("package lib\n\n// Greet returns a greeting.\nfunc Greet() string {\n\treturn \"hi\"\n}\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "README.md"),
		[]byte("See [Greet](lib.go#Greet) for the entry point.\n"), 0644))
	return root
}

func resetGlobals(root string) {
	projectRoot = root
	jsonOutput = false
	noColor = true
	traceRun = false
	exitCode = 0
	current = nil
}

func TestCLI_InitThenCheck_AllFresh(t *testing.T) {
	root := newScratchProject(t)
	resetGlobals(root)

	require.NoError(t, initApp())
	require.NoError(t, runInit(initCmd, nil))

	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runCheck(checkCmd, nil))
	assert.Equal(t, 0, exitCode)
}

func TestCLI_Check_DetectsStaleAfterEdit(t *testing.T) {
	root := newScratchProject(t)
	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runInit(initCmd, nil))

	libPath := filepath.Join(root, "lib.go")
	require.NoError(t, os.WriteFile(libPath,
		[]byte("package lib\n\nfunc Greet() string {\n\treturn \"hello there\"\n}\n"), 0644))

	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runCheck(checkCmd, nil))
	assert.Equal(t, 1, exitCode)
}

func TestCLI_Check_DetectsBrokenAfterRename(t *testing.T) {
	root := newScratchProject(t)
	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runInit(initCmd, nil))

	libPath := filepath.Join(root, "lib.go")
	require.NoError(t, os.WriteFile(libPath,
		[]byte("package lib\n\nfunc Greetings() string {\n\treturn \"hi\"\n}\n"), 0644))

	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runCheck(checkCmd, nil))
	assert.Equal(t, 2, exitCode)
}

func TestCLI_Fix_RewritesLockfileAndMarkdownLink(t *testing.T) {
	root := newScratchProject(t)
	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runInit(initCmd, nil))

	libPath := filepath.Join(root, "lib.go")
	require.NoError(t, os.WriteFile(libPath,
		[]byte("package lib\n\nfunc Greetings() string {\n\treturn \"hi\"\n}\n"), 0644))

	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runFix(fixCmd, []string{"README.md->lib.go#Greet", "Greetings"}))

	lock, err := lockfile.Load(lockfile.Path(root))
	require.NoError(t, err)
	entry, ok := lock.Find("README.md", "lib.go", "Greetings")
	require.True(t, ok)
	assert.NotEmpty(t, entry.Hash)

	readme, err := os.ReadFile(filepath.Join(root, "README.md"))
	require.NoError(t, err)
	assert.Contains(t, string(readme), "(lib.go#Greetings)")

	resetGlobals(root)
	require.NoError(t, initApp())
	require.NoError(t, runCheck(checkCmd, nil))
	assert.Equal(t, 0, exitCode)
}
