// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package docpipeline

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/pathresolve"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

func writeProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "lib.go"), []byte("package lib\n\nfunc Greet() string {\n\treturn \"hi\"\n}\n"), 0644))
	return root
}

func TestBuild_ResolvesBareSymbol(t *testing.T) {
	root := writeProject(t)
	resolve, err := pathresolve.New(root, nil)
	require.NoError(t, err)
	registry := grammar.NewRegistry()

	refs := []pipeline.Reference{
		{Source: "README.md", TargetRel: "lib.go", Query: pipeline.Bare("Greet")},
	}

	entries, diags, err := Build(context.Background(), root, refs, resolve, registry)
	require.NoError(t, err)
	assert.Empty(t, diags)
	require.Len(t, entries, 1)
	assert.Equal(t, "lib.go", entries[0].Target)
	assert.Equal(t, "Greet", entries[0].Symbol)
	assert.NotEmpty(t, entries[0].Hash)
}

func TestBuild_MissingTargetIsDiagnosticNotFatal(t *testing.T) {
	root := writeProject(t)
	resolve, err := pathresolve.New(root, nil)
	require.NoError(t, err)
	registry := grammar.NewRegistry()

	refs := []pipeline.Reference{
		{Source: "README.md", TargetRel: "missing.go", Query: pipeline.Bare("Foo")},
	}

	entries, diags, err := Build(context.Background(), root, refs, resolve, registry)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.Len(t, diags, 1)
	assert.Error(t, diags[0].Err)
}

func TestBuild_BrokenNamespaceIsItsOwnDiagnosticCategory(t *testing.T) {
	root := writeProject(t)
	resolve, err := pathresolve.New(root, nil)
	require.NoError(t, err)
	registry := grammar.NewRegistry()

	refs := []pipeline.Reference{
		{Source: "README.md", Namespace: "missing", TargetRel: "lib.go", Query: pipeline.Bare("Greet")},
	}

	entries, diags, err := Build(context.Background(), root, refs, resolve, registry)
	require.NoError(t, err)
	assert.Empty(t, entries)
	require.Len(t, diags, 1)
	var nsErr *pipeline.BrokenNamespaceError
	assert.ErrorAs(t, diags[0].Err, &nsErr)
}

func TestBuild_UnknownSymbolYieldsCandidates(t *testing.T) {
	root := writeProject(t)
	resolve, err := pathresolve.New(root, nil)
	require.NoError(t, err)
	registry := grammar.NewRegistry()

	refs := []pipeline.Reference{
		{Source: "README.md", TargetRel: "lib.go", Query: pipeline.Bare("Gret")},
	}

	_, diags, err := Build(context.Background(), root, refs, resolve, registry)
	require.NoError(t, err)
	require.Len(t, diags, 1)
	assert.NotEmpty(t, diags[0].Candidates)
}
