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
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// TypeScript-only node type constants, on top of the JavaScript grammar
// TypeScript is a strict superset of.
// Reference: https://github.com/tree-sitter/tree-sitter-typescript/blob/master/common/define-grammar.js
const (
	tsNodeInterfaceDeclaration  = "interface_declaration"
	tsNodeTypeAliasDeclaration  = "type_alias_declaration"
	tsNodeEnumDeclaration       = "enum_declaration"
	tsNodePropertySignature     = "property_signature"
	tsNodeMethodSignature       = "method_signature"
	tsNodeEnumAssignment        = "enum_assignment"
	tsNodeAmbientDeclaration    = "ambient_declaration"
	tsNodeComment               = "comment"
)

func typeScriptProfile() *Profile {
	top := jsTopLevelForms()
	top = append(top,
		DeclForm{NodeType: tsNodeInterfaceDeclaration, Kind: pipeline.KindInterface},
		DeclForm{NodeType: tsNodeTypeAliasDeclaration, Kind: pipeline.KindType},
		DeclForm{NodeType: tsNodeEnumDeclaration, Kind: pipeline.KindEnum},
	)

	child := jsChildForms()
	child = append(child,
		DeclForm{NodeType: tsNodePropertySignature, Kind: pipeline.KindField},
		DeclForm{NodeType: tsNodeMethodSignature, Kind: pipeline.KindMethod},
		DeclForm{NodeType: tsNodeEnumAssignment, NameField: "name", Kind: pipeline.KindVariant},
	)

	return &Profile{
		Name:       "TypeScript",
		Extensions: []string{".ts", ".tsx"},
		Language:   func() *sitter.Language { return typescript.GetLanguage() },
		TopLevel:   top,
		Child:      child,
		HashSkip: func(nodeType string) bool {
			return nodeType == tsNodeComment
		},
	}
}
