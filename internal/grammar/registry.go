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
	"context"
	"fmt"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
)

// Registry maps a lowercase, dot-prefixed file extension to a Profile.
// It is safe for concurrent use; the Resolver may look up profiles from
// multiple goroutines when parallelizing over target-file groups (§5).
type Registry struct {
	mu       sync.RWMutex
	profiles map[string]*Profile
}

// NewRegistry builds a Registry preloaded with the six profiles §4.2
// names: Rust, TypeScript, JavaScript, Python, Go, and Bash.
func NewRegistry() *Registry {
	r := &Registry{profiles: make(map[string]*Profile)}
	for _, p := range []*Profile{
		goProfile(),
		rustProfile(),
		typeScriptProfile(),
		javaScriptProfile(),
		pythonProfile(),
		bashProfile(),
	} {
		r.Register(p)
	}
	return r
}

// Register installs a profile under every extension it claims, overwriting
// any existing mapping for that extension.
func (r *Registry) Register(p *Profile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, ext := range p.Extensions {
		r.profiles[strings.ToLower(ext)] = p
	}
}

// ForExtension looks up the profile for a file extension (including the
// leading dot, case-insensitive). ok is false for unknown extensions.
func (r *Registry) ForExtension(ext string) (*Profile, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[strings.ToLower(ext)]
	return p, ok
}

// ForPath looks up the profile for a file path by its extension.
func (r *Registry) ForPath(path string) (*Profile, bool) {
	return r.ForExtension(extOf(path))
}

func extOf(path string) string {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return ""
	}
	return path[idx:]
}

// Parse runs the profile's grammar over content and returns the CST. The
// caller must call tree.Close() when done (§5: CST trees are released
// after the last referenced symbol in a file is resolved and hashed).
func (p *Profile) Parse(ctx context.Context, content []byte) (*sitter.Tree, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(p.Language())
	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.Name, err)
	}
	if tree == nil || tree.RootNode() == nil {
		return nil, fmt.Errorf("%s: empty parse tree", p.Name)
	}
	return tree, nil
}
