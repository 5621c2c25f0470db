// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSymbol_Bare(t *testing.T) {
	assert.Equal(t, Bare("Greet"), ParseSymbol("Greet"))
}

func TestParseSymbol_Scoped(t *testing.T) {
	assert.Equal(t, Scoped("Server", "Start"), ParseSymbol("Server.Start"))
}

func TestParseSymbol_Empty(t *testing.T) {
	assert.Equal(t, WholeFile, ParseSymbol(""))
}

func TestSymbolQuery_StringRoundTrips(t *testing.T) {
	assert.Equal(t, "Greet", Bare("Greet").String())
	assert.Equal(t, "Server.Start", Scoped("Server", "Start").String())
	assert.Equal(t, "", WholeFile.String())
}

func TestLockEntry_LessOrdersBySourceThenTargetThenSymbol(t *testing.T) {
	a := LockEntry{Source: "a.md", Target: "a.go", Symbol: "A"}
	b := LockEntry{Source: "a.md", Target: "a.go", Symbol: "B"}
	c := LockEntry{Source: "a.md", Target: "b.go", Symbol: "A"}
	d := LockEntry{Source: "b.md", Target: "a.go", Symbol: "A"}

	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.True(t, c.Less(d))
	assert.False(t, d.Less(a))
}

func TestVerdict_StringIsLowercase(t *testing.T) {
	assert.Equal(t, "fresh", Fresh.String())
	assert.Equal(t, "stale", Stale.String())
	assert.Equal(t, "broken", Broken.String())
}
