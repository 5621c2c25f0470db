// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package grammar

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Rust node type constants, matching tree-sitter-rust's grammar. Unlike
// the other five profiles this one has no parser file upstream to
// cross-check against; the constants below are the grammar's published
// node kinds, table-shaped the same way as the other languages.
// Reference: https://github.com/tree-sitter/tree-sitter-rust/blob/master/src/node-types.json
const (
	RustNodeFunctionItem  = "function_item"
	RustNodeStructItem    = "struct_item"
	RustNodeEnumItem      = "enum_item"
	RustNodeTraitItem     = "trait_item"
	RustNodeConstItem     = "const_item"
	RustNodeStaticItem    = "static_item"
	RustNodeTypeItem      = "type_item"
	RustNodeModItem       = "mod_item"
	RustNodeImplItem      = "impl_item"
	RustNodeEnumVariant   = "enum_variant"
	RustNodeFieldDecl     = "field_declaration"
	RustNodeLineComment   = "line_comment"
	RustNodeBlockComment  = "block_comment"
)

func rustProfile() *Profile {
	return &Profile{
		Name:       "Rust",
		Extensions: []string{".rs"},
		Language:   func() *sitter.Language { return rust.GetLanguage() },
		TopLevel: []DeclForm{
			{NodeType: RustNodeFunctionItem, Kind: pipeline.KindFunction},
			{NodeType: RustNodeStructItem, Kind: pipeline.KindType},
			{NodeType: RustNodeEnumItem, Kind: pipeline.KindEnum},
			{NodeType: RustNodeTraitItem, Kind: pipeline.KindInterface},
			{NodeType: RustNodeConstItem, Kind: pipeline.KindConstant},
			{NodeType: RustNodeStaticItem, Kind: pipeline.KindVariable},
			{NodeType: RustNodeTypeItem, Kind: pipeline.KindType},
			{NodeType: RustNodeModItem, Kind: pipeline.KindModule},
			// impl_item never matches a Bare query (it has no name field
			// of its own); it is walked by the resolver's Rust-specific
			// Scoped handling to collect methods for a receiver type.
			{NodeType: RustNodeImplItem, Kind: pipeline.KindType},
		},
		Child: []DeclForm{
			{NodeType: RustNodeEnumVariant, Kind: pipeline.KindVariant},
			{NodeType: RustNodeFieldDecl, NameField: "name", Kind: pipeline.KindField},
			{NodeType: RustNodeFunctionItem, Kind: pipeline.KindMethod},
		},
		HashSkip: func(nodeType string) bool {
			return nodeType == RustNodeLineComment || nodeType == RustNodeBlockComment
		},
	}
}
