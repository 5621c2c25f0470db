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
	"github.com/smacker/go-tree-sitter/bash"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Bash node type constants, matching tree-sitter-bash's grammar.
// Reference: https://github.com/tree-sitter/tree-sitter-bash
const (
	bashNodeFunctionDefinition = "function_definition"
	bashNodeVariableAssignment = "variable_assignment"
	bashNodeDeclarationCommand = "declaration_command"
	bashNodeComment            = "comment"
)

func bashProfile() *Profile {
	return &Profile{
		Name:       "Bash",
		Extensions: []string{".sh", ".bash"},
		Language:   func() *sitter.Language { return bash.GetLanguage() },
		TopLevel: []DeclForm{
			// Bash function names are under the "name" field, a bare
			// "word" node rather than "identifier".
			{NodeType: bashNodeFunctionDefinition, Kind: pipeline.KindFunction},
			{NodeType: bashNodeVariableAssignment, NameField: "name", Kind: pipeline.KindVariable},
			// declaration_command (export/readonly/local/declare) wraps
			// a variable_assignment; the resolver descends into it.
			{NodeType: bashNodeDeclarationCommand, Kind: pipeline.KindConstant, DescendTo: bashNodeVariableAssignment},
		},
		// Bash has no nested declarations addressable via Scoped queries
		// in this profile; a function body is opaque for symbol purposes.
		Child: nil,
		HashSkip: func(nodeType string) bool {
			return nodeType == bashNodeComment
		},
	}
}
