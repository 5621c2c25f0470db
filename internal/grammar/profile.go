// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package grammar maps file extensions to tree-sitter grammars and the
// declarative per-language metadata the Resolver and Hasher consult.
//
// Language differences live in data (DeclForm tables), never in a class
// hierarchy: a new language is added by writing one *_profile.go file,
// not by implementing an interface with per-language overrides.
package grammar

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// DeclForm names one CST node kind that introduces a named entity, and how
// to pull the identifier out of a matching node.
type DeclForm struct {
	// NodeType is the tree-sitter node kind, e.g. "function_declaration".
	NodeType string
	// NameField is the field name holding the identifier child. Defaults
	// to "name" when empty.
	NameField string
	// Kind tags the declaration for diagnostics.
	Kind pipeline.SymbolKind
	// DescendTo names a child node type to unwrap before reading
	// NameField, for grammars where the declaration node is a thin
	// wrapper around a spec node carrying the actual name (Go's
	// type_declaration -> type_spec, var_declaration -> var_spec,
	// const_declaration -> const_spec). Multiple specs under one wrapper
	// (type ( A int; B string )) are enumerated as separate declarations
	// by the resolver, one per matching DescendTo child; a single spec
	// naming several identifiers (var x, y int) is enumerated once, under
	// its first name.
	DescendTo string
}

func (f DeclForm) nameField() string {
	if f.NameField != "" {
		return f.NameField
	}
	return "name"
}

// Profile is the full declarative description of one language.
type Profile struct {
	// Name is the human-readable language name, for diagnostics.
	Name string
	// Extensions are the lowercase, dot-prefixed extensions mapped here.
	Extensions []string
	// Language returns the tree-sitter grammar. Called once per parse.
	Language func() *sitter.Language
	// TopLevel lists the forms that introduce a file-scope declaration.
	TopLevel []DeclForm
	// Child lists the forms that can introduce a named entity inside a
	// top-level declaration's subtree (methods, fields, enum variants,
	// property signatures).
	Child []DeclForm
	// DecoratorWrapper is a node type that wraps a TopLevel declaration
	// without being one itself (Python's decorated_definition); the
	// wrapped declaration is unwrapped one level when enumerating
	// top-level forms. Empty when the language has no such wrapper.
	DecoratorWrapper string
	// HashSkip reports whether a leaf of the given node type is trivia
	// (a comment, doc comment, or shebang) and must be excluded from the
	// semantic hash's leaf-token sequence.
	HashSkip func(nodeType string) bool
}

// FormFor returns the first TopLevel form matching nodeType, if any.
func (p *Profile) FormFor(nodeType string) (DeclForm, bool) {
	for _, f := range p.TopLevel {
		if f.NodeType == nodeType {
			return f, true
		}
	}
	return DeclForm{}, false
}

// ChildFormFor returns the first Child form matching nodeType, if any.
func (p *Profile) ChildFormFor(nodeType string) (DeclForm, bool) {
	for _, f := range p.Child {
		if f.NodeType == nodeType {
			return f, true
		}
	}
	return DeclForm{}, false
}

// NameField exposes the configured name field for a given node type,
// checking both TopLevel and Child tables.
func (p *Profile) NameField(nodeType string) string {
	if f, ok := p.FormFor(nodeType); ok {
		return f.nameField()
	}
	if f, ok := p.ChildFormFor(nodeType); ok {
		return f.nameField()
	}
	return "name"
}
