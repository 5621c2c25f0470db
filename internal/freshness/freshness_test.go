// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package freshness

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/hasher"
	"github.com/jinterlante1206/docref/internal/lockfile"
	"github.com/jinterlante1206/docref/internal/pathresolve"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

func writeLib(t *testing.T, root, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.go"), []byte(body), 0644))
}

func TestCheck_FreshWhenHashMatches(t *testing.T) {
	root := t.TempDir()
	body := "package lib\n\nfunc Greet() string { return \"hi\" }\n"
	writeLib(t, root, body)

	c := New(root, grammar.NewRegistry())
	res, err := c.Resolver.Resolve(context.Background(), filepath.Join(root, "lib.go"), []byte(body), pipeline.Bare("Greet"))
	require.NoError(t, err)
	h, err := hasher.Hash(context.Background(), res.Profile, []byte(body)[res.Symbol.Range.Start:res.Symbol.Range.End])
	require.NoError(t, err)

	lock := lockfile.New([]pipeline.LockEntry{
		{Source: "README.md", Target: "lib.go", Symbol: "Greet", Hash: h},
	})
	results := c.Check(context.Background(), lock)
	require.Len(t, results, 1)
	assert.Equal(t, pipeline.Fresh, results[0].Verdict)
}

func TestCheck_DetectsFileMissing(t *testing.T) {
	root := t.TempDir()
	c := New(root, grammar.NewRegistry())
	lock := lockfile.New([]pipeline.LockEntry{
		{Source: "README.md", Target: "gone.go", Symbol: "Greet", Hash: "abc"},
	})
	results := c.Check(context.Background(), lock)
	require.Len(t, results, 1)
	assert.Equal(t, pipeline.Broken, results[0].Verdict)
	assert.Equal(t, ReasonFileMissing, results[0].Reason)
}

func TestCheck_DetectsSymbolNotFoundWithCandidates(t *testing.T) {
	root := t.TempDir()
	writeLib(t, root, "package lib\n\nfunc Greet() string { return \"hi\" }\n")
	c := New(root, grammar.NewRegistry())
	lock := lockfile.New([]pipeline.LockEntry{
		{Source: "README.md", Target: "lib.go", Symbol: "Greett", Hash: "abc"},
	})
	results := c.Check(context.Background(), lock)
	require.Len(t, results, 1)
	assert.Equal(t, pipeline.Broken, results[0].Verdict)
	assert.Equal(t, ReasonSymbolNotFound, results[0].Reason)
	require.NotEmpty(t, results[0].Candidates)
	assert.Equal(t, "Greet", results[0].Candidates[0].Name)
}

func TestCheck_DetectsStaleWhenBodyChangedButHashRecorded(t *testing.T) {
	root := t.TempDir()
	writeLib(t, root, "package lib\n\nfunc Greet() string { return \"hello there\" }\n")
	c := New(root, grammar.NewRegistry())
	lock := lockfile.New([]pipeline.LockEntry{
		{Source: "README.md", Target: "lib.go", Symbol: "Greet", Hash: "not-the-real-hash"},
	})
	results := c.Check(context.Background(), lock)
	require.Len(t, results, 1)
	assert.Equal(t, pipeline.Stale, results[0].Verdict)
}

func TestNewAndOrphaned(t *testing.T) {
	resolve, err := pathresolve.New("/proj", nil)
	require.NoError(t, err)

	lock := lockfile.New([]pipeline.LockEntry{
		{Source: "README.md", Target: "old.go", Symbol: "Old", Hash: "x"},
	})
	refs := []pipeline.Reference{
		{Source: "README.md", TargetRel: "new.go", Query: pipeline.Bare("New")},
	}
	newRefs, orphaned := NewAndOrphaned(refs, resolve, lock)
	require.Len(t, newRefs, 1)
	assert.Equal(t, "new.go", newRefs[0].TargetRel)
	require.Len(t, orphaned, 1)
	assert.Equal(t, "old.go", orphaned[0].Target)
}
