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

// goImplMethodCandidates collects the top-level method_declaration nodes
// in root whose receiver names receiverName, the way Go attaches methods
// to a type by receiver rather than by lexical nesting (§4.4 step 5b).
func goImplMethodCandidates(root *sitter.Node, profile *grammar.Profile, source []byte, receiverName string) []decl {
	var out []decl
	for i := 0; i < int(root.ChildCount()); i++ {
		item := root.Child(i)
		if item == nil || item.Type() != grammar.GoNodeMethodDeclaration {
			continue
		}
		if goReceiverTypeName(item, source) != receiverName {
			continue
		}
		out = append(out, decl{
			name: fieldText(item, "name", source),
			kind: pipeline.KindMethod,
			node: item,
		})
	}
	return out
}

// goReceiverTypeName extracts the bare type name a method_declaration's
// receiver clause names, stripping the pointer indirection (func (s
// *Server) Start() -> "Server").
func goReceiverTypeName(methodDecl *sitter.Node, source []byte) string {
	receiver := methodDecl.ChildByFieldName("receiver")
	if receiver == nil {
		return ""
	}
	return firstTypeIdentifier(receiver, source)
}
