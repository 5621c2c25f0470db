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
	"github.com/smacker/go-tree-sitter/golang"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Go node type constants, matching tree-sitter-go's grammar. Exported so
// internal/resolver can recognize a method_declaration's receiver clause
// when linking a method back to its receiver type (§4.4 step 5b).
// Reference: https://github.com/tree-sitter/tree-sitter-go/blob/master/src/grammar.json
const (
	GoNodeFunctionDeclaration = "function_declaration"
	GoNodeMethodDeclaration   = "method_declaration"
	GoNodeTypeDeclaration     = "type_declaration"
	GoNodeTypeSpec            = "type_spec"
	GoNodeVarDeclaration      = "var_declaration"
	GoNodeVarSpec             = "var_spec"
	GoNodeConstDeclaration    = "const_declaration"
	GoNodeConstSpec           = "const_spec"
	GoNodeFieldDeclaration    = "field_declaration"
	GoNodeMethodSpec          = "method_spec"
	GoNodeComment             = "comment"
)

func goProfile() *Profile {
	return &Profile{
		Name:       "Go",
		Extensions: []string{".go"},
		Language:   func() *sitter.Language { return golang.GetLanguage() },
		TopLevel: []DeclForm{
			{NodeType: GoNodeFunctionDeclaration, Kind: pipeline.KindFunction},
			{NodeType: GoNodeMethodDeclaration, Kind: pipeline.KindMethod},
			{NodeType: GoNodeTypeDeclaration, Kind: pipeline.KindType, DescendTo: GoNodeTypeSpec},
			{NodeType: GoNodeVarDeclaration, Kind: pipeline.KindVariable, DescendTo: GoNodeVarSpec},
			{NodeType: GoNodeConstDeclaration, Kind: pipeline.KindConstant, DescendTo: GoNodeConstSpec},
		},
		Child: []DeclForm{
			{NodeType: GoNodeFieldDeclaration, Kind: pipeline.KindField},
			{NodeType: GoNodeMethodSpec, Kind: pipeline.KindMethod},
		},
		HashSkip: func(nodeType string) bool {
			return nodeType == GoNodeComment
		},
	}
}
