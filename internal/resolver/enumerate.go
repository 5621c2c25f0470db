// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package resolver

import (
	"context"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

// SymbolInfo is one entry in an EnumerateTopLevel listing: a name paired
// with its declaration kind, for the `resolve <file>` command (§6).
type SymbolInfo struct {
	Name   string
	Kind   pipeline.SymbolKind
	Parent string // "" for top-level symbols, else the enclosing symbol's name
}

// EnumerateTopLevel lists every top-level declaration in absPath plus,
// for each, the child declarations reachable under it — the same
// TopLevel/Child tables Resolve uses to answer a query, read out in full
// instead of matched against one name.
func EnumerateTopLevel(registry *grammar.Registry, absPath string, content []byte) ([]SymbolInfo, error) {
	profile, ok := registry.ForPath(absPath)
	if !ok {
		return nil, &pipeline.UnsupportedLanguageError{Extension: extOf(absPath)}
	}

	tree, err := profile.Parse(context.Background(), content)
	if err != nil {
		return nil, &pipeline.ParseFailedError{FilePath: absPath, Cause: err}
	}
	defer tree.Close()

	top := topLevelDecls(tree.RootNode(), profile, content)

	var out []SymbolInfo
	for _, d := range top {
		out = append(out, SymbolInfo{Name: d.name, Kind: d.kind})
		children := childDecls(d.node, profile, content)
		switch profile.Name {
		case "Rust":
			children = append(children, rustImplMethodCandidates(tree.RootNode(), profile, content, d.name)...)
		case "Go":
			children = append(children, goImplMethodCandidates(tree.RootNode(), profile, content, d.name)...)
		}
		for _, c := range children {
			out = append(out, SymbolInfo{Name: c.name, Kind: c.kind, Parent: d.name})
		}
	}
	return out, nil
}
