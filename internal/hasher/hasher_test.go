// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package hasher

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jinterlante1206/docref/internal/grammar"
)

func goProfile(t *testing.T) *grammar.Profile {
	t.Helper()
	profile, ok := grammar.NewRegistry().ForPath("lib.go")
	require.True(t, ok)
	return profile
}

func TestHash_StableAcrossWhitespaceReformatting(t *testing.T) {
	profile := goProfile(t)
	a, err := Hash(context.Background(), profile, []byte("func Greet() string {\n\treturn \"hi\"\n}\n"))
	require.NoError(t, err)
	b, err := Hash(context.Background(), profile, []byte("func Greet() string{return \"hi\"}\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHash_StableAcrossCommentChanges(t *testing.T) {
	profile := goProfile(t)
	a, err := Hash(context.Background(), profile, []byte("func Greet() string {\n\treturn \"hi\"\n}\n"))
	require.NoError(t, err)
	b, err := Hash(context.Background(), profile, []byte("// Greet says hi.\nfunc Greet() string {\n\treturn \"hi\"\n}\n"))
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestHash_ChangesWithBehavior(t *testing.T) {
	profile := goProfile(t)
	a, err := Hash(context.Background(), profile, []byte("func Greet() string { return \"hi\" }\n"))
	require.NoError(t, err)
	b, err := Hash(context.Background(), profile, []byte("func Greet() string { return \"hello\" }\n"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestHash_NilProfileFallsBackToRawSha256(t *testing.T) {
	a, err := Hash(context.Background(), nil, []byte("whole file content"))
	require.NoError(t, err)
	b, err := Hash(context.Background(), nil, []byte("whole file content"))
	require.NoError(t, err)
	assert.Equal(t, a, b)

	c, err := Hash(context.Background(), nil, []byte("different content"))
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}
