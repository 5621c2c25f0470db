// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package hasher produces the canonical, formatting- and comment-
// insensitive digest the rest of the pipeline calls a SemanticHash.
package hasher

import (
	"context"
	"crypto/sha256"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Hash normalizes slice and returns its SemanticHash.
//
// slice is re-parsed independently of whatever tree it was cut from, so
// the result is a pure function of the bytes alone (§4.5 step 1). When
// profile is nil the slice belongs to an unsupported language queried as
// WholeFile, and the hash degrades to a plain SHA-256 over the raw bytes.
func Hash(ctx context.Context, profile *grammar.Profile, slice []byte) (pipeline.SemanticHash, error) {
	if profile == nil {
		return rawHash(slice), nil
	}

	tree, err := profile.Parse(ctx, slice)
	if err != nil {
		return "", &pipeline.ParseFailedError{Cause: err}
	}
	defer tree.Close()

	var tokens []string
	collectLeafTokens(tree.RootNode(), slice, profile.HashSkip, &tokens)
	return rawHash([]byte(strings.Join(tokens, " "))), nil
}

func rawHash(b []byte) pipeline.SemanticHash {
	return pipeline.Hex(sha256.Sum256(b))
}

// collectLeafTokens appends, in source order, the verbatim text of every
// leaf node whose type does not satisfy skip.
func collectLeafTokens(n *sitter.Node, source []byte, skip func(string) bool, out *[]string) {
	if n == nil {
		return
	}
	if n.ChildCount() == 0 {
		if skip == nil || !skip(n.Type()) {
			*out = append(*out, n.Content(source))
		}
		return
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		collectLeafTokens(n.Child(i), source, skip, out)
	}
}
