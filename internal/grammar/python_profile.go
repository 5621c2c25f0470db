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
	"github.com/smacker/go-tree-sitter/python"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Python node type constants, matching tree-sitter-python's grammar.
// Reference: https://github.com/tree-sitter/tree-sitter-python/blob/master/src/grammar.json
const (
	pyNodeFunctionDefinition      = "function_definition"
	pyNodeAsyncFunctionDefinition = "async_function_definition"
	pyNodeClassDefinition         = "class_definition"
	pyNodeDecoratedDefinition     = "decorated_definition"
	pyNodeExpressionStatement     = "expression_statement"
	pyNodeAssignment              = "assignment"
	pyNodeComment                 = "comment"
)

func pythonProfile() *Profile {
	return &Profile{
		Name:       "Python",
		Extensions: []string{".py"},
		Language:   func() *sitter.Language { return python.GetLanguage() },
		TopLevel: []DeclForm{
			{NodeType: pyNodeFunctionDefinition, Kind: pipeline.KindFunction},
			{NodeType: pyNodeAsyncFunctionDefinition, Kind: pipeline.KindFunction},
			{NodeType: pyNodeClassDefinition, Kind: pipeline.KindClass},
		},
		Child: []DeclForm{
			// Methods and fields are both function_definition /
			// assignment nodes inside a class's "block" body; the
			// resolver distinguishes them only by position, not kind.
			{NodeType: pyNodeFunctionDefinition, Kind: pipeline.KindMethod},
			{NodeType: pyNodeAsyncFunctionDefinition, Kind: pipeline.KindMethod},
			{NodeType: pyNodeAssignment, NameField: "left", Kind: pipeline.KindField},
		},
		// decorated_definition wraps a function_definition or
		// class_definition without being a declaration itself; §4.4 step
		// 3 requires walking through it to the wrapped form.
		DecoratorWrapper: pyNodeDecoratedDefinition,
		HashSkip: func(nodeType string) bool {
			return nodeType == pyNodeComment
		},
	}
}
