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

// rustImplMethodCandidates collects the function_item members of every
// impl_item in root whose receiver type matches receiverName, in source
// order across blocks (§4.4 step 5b). A name collision between two impl
// blocks for the same type is not an error here; the first match during
// selection wins, per §4.4's ambiguity note.
func rustImplMethodCandidates(root *sitter.Node, profile *grammar.Profile, source []byte, receiverName string) []decl {
	var out []decl
	for i := 0; i < int(root.ChildCount()); i++ {
		item := root.Child(i)
		if item == nil || item.Type() != grammar.RustNodeImplItem {
			continue
		}
		if implReceiverName(item, source) != receiverName {
			continue
		}
		body := item.ChildByFieldName("body")
		if body == nil {
			continue
		}
		for j := 0; j < int(body.ChildCount()); j++ {
			member := body.Child(j)
			if member == nil || member.Type() != grammar.RustNodeFunctionItem {
				continue
			}
			out = append(out, decl{
				name: fieldText(member, "name", source),
				kind: pipeline.KindMethod,
				node: member,
			})
		}
	}
	return out
}

// implReceiverName extracts the bare type name an impl_item targets,
// stripping generic parameters (impl<T> Foo<T> -> "Foo").
func implReceiverName(implItem *sitter.Node, source []byte) string {
	typeNode := implItem.ChildByFieldName("type")
	if typeNode == nil {
		return ""
	}
	return firstTypeIdentifier(typeNode, source)
}

func firstTypeIdentifier(n *sitter.Node, source []byte) string {
	if n.Type() == "type_identifier" {
		return n.Content(source)
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if c := n.Child(i); c != nil {
			if name := firstTypeIdentifier(c, source); name != "" {
				return name
			}
		}
	}
	return ""
}
