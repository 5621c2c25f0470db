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
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/jinterlante1206/docref/internal/grammar"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

// decl is one named declaration found while walking a CST, carrying
// enough to produce either a ResolvedSymbol or a candidate suggestion.
type decl struct {
	name string
	kind pipeline.SymbolKind
	node *sitter.Node
}

func (d decl) byteRange() pipeline.ByteRange {
	return pipeline.ByteRange{Start: int(d.node.StartByte()), End: int(d.node.EndByte())}
}

func fieldText(n *sitter.Node, field string, source []byte) string {
	c := n.ChildByFieldName(field)
	if c == nil {
		return ""
	}
	return c.Content(source)
}

// topLevelDecls enumerates the file-scope declarations of root per §4.4
// step 3: one entry per TopLevel form match, descending through a
// DescendTo wrapper (Go's type_declaration -> type_spec) or a
// DecoratorWrapper (Python's decorated_definition) where configured.
func topLevelDecls(root *sitter.Node, profile *grammar.Profile, source []byte) []decl {
	var out []decl
	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		nodeType := child.Type()

		if profile.DecoratorWrapper != "" && nodeType == profile.DecoratorWrapper {
			if inner := firstFormMatch(child, profile); inner != nil {
				form, _ := profile.FormFor(inner.Type())
				// The wrapper (decorators included) is the declaration's
				// byte range: decorators are part of its definition.
				out = append(out, decl{name: fieldText(inner, form.nameField(), source), kind: form.Kind, node: child})
			}
			continue
		}

		form, ok := profile.FormFor(nodeType)
		if !ok {
			continue
		}
		if form.DescendTo != "" {
			for j := 0; j < int(child.ChildCount()); j++ {
				sub := child.Child(j)
				if sub != nil && sub.Type() == form.DescendTo {
					out = append(out, decl{name: fieldText(sub, form.nameField(), source), kind: form.Kind, node: sub})
				}
			}
			continue
		}
		out = append(out, decl{name: fieldText(child, form.nameField(), source), kind: form.Kind, node: child})
	}
	return out
}

// firstFormMatch returns the first child of n whose type matches any
// TopLevel form, used to unwrap a DecoratorWrapper.
func firstFormMatch(n *sitter.Node, profile *grammar.Profile) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		c := n.Child(i)
		if c == nil {
			continue
		}
		if _, ok := profile.FormFor(c.Type()); ok {
			return c
		}
	}
	return nil
}

// childDecls enumerates the named entities reachable inside parent's
// subtree per the language profile's Child table (§4.4 step 5b). Once a
// node matches a Child form its own subtree is not searched further, so
// e.g. a method's local variables never shadow its class's own fields.
func childDecls(parent *sitter.Node, profile *grammar.Profile, source []byte) []decl {
	var out []decl
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		for i := 0; i < int(n.ChildCount()); i++ {
			c := n.Child(i)
			if c == nil {
				continue
			}
			if form, ok := profile.ChildFormFor(c.Type()); ok {
				out = append(out, decl{name: fieldText(c, form.nameField(), source), kind: form.Kind, node: c})
				continue
			}
			walk(c)
		}
	}
	walk(parent)
	return out
}
