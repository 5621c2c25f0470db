// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package diagnostics

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/freshness"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

func sampleResults() []freshness.EntryResult {
	return []freshness.EntryResult{
		{
			Entry:   pipeline.LockEntry{Source: "README.md", Target: "pkg/a.go", Symbol: "Foo"},
			Verdict: pipeline.Fresh,
		},
		{
			Entry:   pipeline.LockEntry{Source: "README.md", Target: "pkg/b.go", Symbol: "Bar"},
			Verdict: pipeline.Stale,
		},
		{
			Entry:      pipeline.LockEntry{Source: "README.md", Target: "pkg/c.go", Symbol: "Baz"},
			Verdict:    pipeline.Broken,
			Reason:     freshness.ReasonSymbolNotFound,
			Candidates: []pipeline.Candidate{{Name: "Baz2", Distance: 1}},
		},
	}
}

func TestRenderText_PlainIncludesAllEntries(t *testing.T) {
	var buf bytes.Buffer
	RenderText(&buf, sampleResults(), false)
	out := buf.String()

	assert.Contains(t, out, "README.md -> pkg/a.go#Foo")
	assert.Contains(t, out, "stale")
	assert.Contains(t, out, "symbol not found")
	assert.Contains(t, out, "did you mean: Baz2")
	assert.Contains(t, out, "1 fresh, 1 stale, 1 broken (of 3)")
}

func TestRenderJSON_RoundTrips(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderJSON(&buf, sampleResults()))

	var decoded []jsonEntry
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "fresh", decoded[0].Verdict)
	assert.Equal(t, "stale", decoded[1].Verdict)
	assert.Equal(t, "broken", decoded[2].Verdict)
	assert.Equal(t, "symbol not found", decoded[2].Reason)
	require.Len(t, decoded[2].Candidates, 1)
	assert.Equal(t, "Baz2", decoded[2].Candidates[0].Name)
}
