// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package lockfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

func TestNew_SortsEntries(t *testing.T) {
	lock := New([]pipeline.LockEntry{
		{Source: "b.md", Target: "b.go", Symbol: "B", Hash: "h1"},
		{Source: "a.md", Target: "a.go", Symbol: "A", Hash: "h2"},
	})
	require.Len(t, lock.Entries, 2)
	assert.Equal(t, "a.md", lock.Entries[0].Source)
	assert.Equal(t, "b.md", lock.Entries[1].Source)
}

func TestWriteThenLoad_RoundTrips(t *testing.T) {
	root := t.TempDir()
	lock := New([]pipeline.LockEntry{
		{Source: "README.md", Target: "lib.go", Symbol: "Greet", Hash: "abc123"},
	})
	path := Path(root)
	require.NoError(t, lock.Write(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Len(t, loaded.Entries, 1)
	assert.Equal(t, lock.Entries[0], loaded.Entries[0])
}

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	lock, err := Load(filepath.Join(t.TempDir(), ".docref.lock"))
	require.NoError(t, err)
	assert.Empty(t, lock.Entries)
}

func TestLoad_RejectsCorruptToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docref.lock")
	require.NoError(t, os.WriteFile(path, []byte("not valid [[["), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, pipeline.ErrLockfileCorrupt)
}

func TestLoad_RejectsDuplicateKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docref.lock")
	content := "[[entries]]\nsource = \"a.md\"\ntarget = \"a.go\"\nsymbol = \"A\"\nhash = \"h1\"\n\n" +
		"[[entries]]\nsource = \"a.md\"\ntarget = \"a.go\"\nsymbol = \"A\"\nhash = \"h2\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, pipeline.ErrDuplicateLockEntry)
}

func TestLoad_RejectsOutOfOrderEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".docref.lock")
	content := "[[entries]]\nsource = \"b.md\"\ntarget = \"b.go\"\nsymbol = \"B\"\nhash = \"h1\"\n\n" +
		"[[entries]]\nsource = \"a.md\"\ntarget = \"a.go\"\nsymbol = \"A\"\nhash = \"h2\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	_, err := Load(path)
	assert.ErrorIs(t, err, pipeline.ErrLockfileCorrupt)
}

func TestFind(t *testing.T) {
	lock := New([]pipeline.LockEntry{
		{Source: "README.md", Target: "lib.go", Symbol: "Greet", Hash: "abc"},
	})
	entry, ok := lock.Find("README.md", "lib.go", "Greet")
	require.True(t, ok)
	assert.Equal(t, pipeline.SemanticHash("abc"), entry.Hash)

	_, ok = lock.Find("README.md", "lib.go", "Missing")
	assert.False(t, ok)
}

func TestWrite_IsAtomicNoTempFileLeftBehind(t *testing.T) {
	root := t.TempDir()
	lock := New([]pipeline.LockEntry{{Source: "a.md", Target: "a.go", Symbol: "A", Hash: "h"}})
	require.NoError(t, lock.Write(Path(root)))

	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, FileName, entries[0].Name())
}
