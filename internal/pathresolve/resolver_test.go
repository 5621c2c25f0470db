// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pathresolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

func TestResolve_RelativeToMarkdownDir(t *testing.T) {
	r, err := New("/proj", nil)
	require.NoError(t, err)

	resolved, err := r.Resolve("docs/guide.md", "", "../lib/foo.go")
	require.NoError(t, err)
	assert.Equal(t, "lib/foo.go", resolved.Relative)
	assert.Equal(t, "/proj/lib/foo.go", resolved.Absolute)
}

func TestResolve_NamespacedTarget(t *testing.T) {
	r, err := New("/proj", map[string]string{"core": "src/core"})
	require.NoError(t, err)

	resolved, err := r.Resolve("docs/guide.md", "core", "foo.go")
	require.NoError(t, err)
	assert.Equal(t, "src/core/foo.go", resolved.Relative)
}

func TestResolve_UnknownNamespaceIsBrokenNamespaceError(t *testing.T) {
	r, err := New("/proj", nil)
	require.NoError(t, err)

	_, err = r.Resolve("docs/guide.md", "missing", "foo.go")
	var nsErr *pipeline.BrokenNamespaceError
	require.ErrorAs(t, err, &nsErr)
	assert.Equal(t, "missing", nsErr.Name)
}

func TestResolve_StripsLeadingDotSlash(t *testing.T) {
	r, err := New("/proj", nil)
	require.NoError(t, err)

	resolved, err := r.Resolve("README.md", "", "./lib.go")
	require.NoError(t, err)
	assert.Equal(t, "lib.go", resolved.Relative)
}

func TestKey_ComputesLockfileTriple(t *testing.T) {
	r, err := New("/proj", nil)
	require.NoError(t, err)

	ref := pipeline.Reference{
		Source:    "README.md",
		TargetRel: "lib.go",
		Query:     pipeline.Bare("Greet"),
	}
	source, target, symbol, err := r.Key(ref)
	require.NoError(t, err)
	assert.Equal(t, "README.md", source)
	assert.Equal(t, "lib.go", target)
	assert.Equal(t, "Greet", symbol)
}

func TestNamespaceTableCopiedNotAliased(t *testing.T) {
	ns := map[string]string{"core": "src/core"}
	r, err := New("/proj", ns)
	require.NoError(t, err)
	ns["core"] = "mutated"

	resolved, err := r.Resolve("docs/guide.md", "core", "foo.go")
	require.NoError(t, err)
	assert.Equal(t, "src/core/foo.go", resolved.Relative)
}
