// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package watch

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOp_String(t *testing.T) {
	assert.Equal(t, "create", OpCreate.String())
	assert.Equal(t, "write", OpWrite.String())
	assert.Equal(t, "remove", OpRemove.String())
	assert.Equal(t, "rename", OpRename.String())
	assert.Equal(t, "unknown", Op(99).String())
}

func TestDeduplicate_KeepsNewestPerPath(t *testing.T) {
	older := Change{Path: "a.md", Op: OpWrite, Time: time.Unix(1, 0)}
	newer := Change{Path: "a.md", Op: OpRemove, Time: time.Unix(2, 0)}
	other := Change{Path: "b.md", Op: OpCreate, Time: time.Unix(1, 0)}

	got := deduplicate([]Change{older, other, newer})

	require.Len(t, got, 2)
	assert.Equal(t, newer, got[0])
	assert.Equal(t, other, got[1])
}

func TestWatcher_ShouldIgnore(t *testing.T) {
	w := &Watcher{ignore: []string{".git", "*.tmp"}}

	assert.True(t, w.shouldIgnore("/proj/.git"))
	assert.True(t, w.shouldIgnore("/proj/scratch.tmp"))
	assert.False(t, w.shouldIgnore("/proj/docs/readme.md"))
}

func TestWatcher_StartStop(t *testing.T) {
	dir := t.TempDir()

	var got []Change
	done := make(chan struct{}, 1)
	w, err := New(dir, func(changes []Change) {
		got = changes
		done <- struct{}{}
	}, &Options{DebounceWindow: 10 * time.Millisecond, BufferSize: 10})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, w.Start(ctx))
	require.True(t, w.IsWatching())

	w.Stop()
	assert.False(t, w.IsWatching())
	_ = got
}
