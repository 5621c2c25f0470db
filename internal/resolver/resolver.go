// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package resolver locates the byte range a SymbolQuery addresses inside
// a parsed source file (§4.4).
package resolver

import (
	"context"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Resolver resolves SymbolQuery values against parsed source files.
type Resolver struct {
	registry *grammar.Registry
}

// New builds a Resolver backed by registry.
func New(registry *grammar.Registry) *Resolver {
	return &Resolver{registry: registry}
}

// Result is what a successful Resolve call returns: the located symbol
// plus the language profile used (nil for an unsupported-language
// WholeFile query), so the caller's Hasher re-parse uses the same rules.
type Result struct {
	Symbol  pipeline.ResolvedSymbol
	Profile *grammar.Profile
}

// Resolve locates query inside content, which is absPath's full byte
// contents already read by the caller (FileMissing is the caller's
// concern, since the Resolver only ever sees files that were read).
func (r *Resolver) Resolve(ctx context.Context, absPath string, content []byte, query pipeline.SymbolQuery) (Result, error) {
	profile, ok := r.registry.ForPath(absPath)

	if query.Kind == pipeline.SymbolWholeFile {
		kind := pipeline.KindWholeFile
		return Result{
			Symbol: pipeline.ResolvedSymbol{
				FilePath: absPath,
				Query:    query,
				Range:    pipeline.ByteRange{Start: 0, End: len(content)},
				Kind:     kind,
			},
			Profile: profileOrNil(profile, ok),
		}, nil
	}

	if !ok {
		return Result{}, &pipeline.UnsupportedLanguageError{Extension: extOf(absPath)}
	}

	tree, err := profile.Parse(ctx, content)
	if err != nil {
		return Result{}, &pipeline.ParseFailedError{FilePath: absPath, Cause: err}
	}
	defer tree.Close()

	top := topLevelDecls(tree.RootNode(), profile, content)

	switch query.Kind {
	case pipeline.SymbolBare:
		for _, d := range top {
			if d.name == query.Name {
				return result(absPath, query, d, profile), nil
			}
		}
		return Result{}, &pipeline.SymbolNotFoundError{
			FilePath:   absPath,
			Query:      query,
			Candidates: suggest(query.Name, top),
		}

	case pipeline.SymbolScoped:
		return resolveScoped(tree.RootNode(), profile, content, absPath, query, top)
	}

	return Result{}, &pipeline.UnsupportedLanguageError{Extension: extOf(absPath)}
}

// resolveScoped implements §4.4 step 5: find the parent among top-level
// declarations, then search its children (plus, for Rust, every impl
// block targeting a type of that name) for the requested child.
func resolveScoped(root *sitter.Node, profile *grammar.Profile, content []byte, absPath string, query pipeline.SymbolQuery, top []decl) (Result, error) {
	var parent *decl
	for i := range top {
		if top[i].name == query.Parent {
			parent = &top[i]
			break
		}
	}

	var candidates []decl
	if parent != nil {
		candidates = append(candidates, childDecls(parent.node, profile, content)...)
	}
	switch profile.Name {
	case "Rust":
		candidates = append(candidates, rustImplMethodCandidates(root, profile, content, query.Parent)...)
	case "Go":
		candidates = append(candidates, goImplMethodCandidates(root, profile, content, query.Parent)...)
	}

	if parent == nil && len(candidates) == 0 {
		return Result{}, &pipeline.SymbolNotFoundError{
			FilePath:   absPath,
			Query:      query,
			Candidates: suggest(query.Parent, top),
		}
	}

	for _, c := range candidates {
		if c.name == query.Child {
			return result(absPath, query, c, profile), nil
		}
	}
	return Result{}, &pipeline.SymbolNotFoundError{
		FilePath:   absPath,
		Query:      query,
		Candidates: suggest(query.Child, candidates),
	}
}

func result(absPath string, query pipeline.SymbolQuery, d decl, profile *grammar.Profile) Result {
	return Result{
		Symbol: pipeline.ResolvedSymbol{
			FilePath: absPath,
			Query:    query,
			Range:    d.byteRange(),
			Kind:     d.kind,
		},
		Profile: profile,
	}
}

func profileOrNil(p *grammar.Profile, ok bool) *grammar.Profile {
	if !ok {
		return nil
	}
	return p
}

func extOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '.' {
			return path[i:]
		}
		if path[i] == '/' {
			break
		}
	}
	return ""
}
