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
	"github.com/smacker/go-tree-sitter/javascript"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// JavaScript node type constants, matching tree-sitter-javascript's grammar.
// Reference: https://github.com/tree-sitter/tree-sitter-javascript/blob/master/src/grammar.json
const (
	jsNodeFunctionDeclaration = "function_declaration"
	jsNodeGeneratorFunction   = "generator_function_declaration"
	jsNodeClassDeclaration    = "class_declaration"
	jsNodeLexicalDeclaration  = "lexical_declaration"
	jsNodeVariableDeclaration = "variable_declaration"
	jsNodeVariableDeclarator  = "variable_declarator"
	jsNodeMethodDefinition    = "method_definition"
	jsNodeFieldDefinition     = "field_definition"
	jsNodeComment             = "comment"
)

func javaScriptProfile() *Profile {
	return &Profile{
		Name:       "JavaScript",
		Extensions: []string{".js", ".jsx"},
		Language:   func() *sitter.Language { return javascript.GetLanguage() },
		TopLevel:   jsTopLevelForms(),
		Child:      jsChildForms(),
		HashSkip: func(nodeType string) bool {
			return nodeType == jsNodeComment
		},
	}
}

// jsTopLevelForms is shared with TypeScript, which wraps a superset of the
// JavaScript grammar.
func jsTopLevelForms() []DeclForm {
	return []DeclForm{
		{NodeType: jsNodeFunctionDeclaration, Kind: pipeline.KindFunction},
		{NodeType: jsNodeGeneratorFunction, Kind: pipeline.KindFunction},
		{NodeType: jsNodeClassDeclaration, Kind: pipeline.KindClass},
		// lexical_declaration (const/let) and variable_declaration (var)
		// wrap one or more variable_declarator children; the resolver
		// descends to find the bound identifier.
		{NodeType: jsNodeLexicalDeclaration, Kind: pipeline.KindVariable, DescendTo: jsNodeVariableDeclarator},
		{NodeType: jsNodeVariableDeclaration, Kind: pipeline.KindVariable, DescendTo: jsNodeVariableDeclarator},
	}
}

func jsChildForms() []DeclForm {
	return []DeclForm{
		{NodeType: jsNodeMethodDefinition, NameField: "name", Kind: pipeline.KindMethod},
		{NodeType: jsNodeFieldDefinition, NameField: "property", Kind: pipeline.KindField},
	}
}
