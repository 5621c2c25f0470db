// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package pathresolve turns a Scanner-parsed link target into an absolute
// filesystem path and the canonical relative path used as a lockfile key.
package pathresolve

import (
	"path"
	"path/filepath"
	"strings"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// Resolver holds the project root and the namespace table configuration
// supplies (§6: namespaces: {name -> path}).
type Resolver struct {
	root       string // absolute
	namespaces map[string]string
}

// New builds a Resolver rooted at root (made absolute) with the given
// namespace table, copied so later mutation of namespaces doesn't alias.
func New(root string, namespaces map[string]string) (*Resolver, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	ns := make(map[string]string, len(namespaces))
	for k, v := range namespaces {
		ns[k] = v
	}
	return &Resolver{root: filepath.ToSlash(abs), namespaces: ns}, nil
}

// Resolved is the pair the resolver produces for one link target.
type Resolved struct {
	Absolute string // absolute filesystem path
	Relative string // canonical, project-root-relative, forward-slash path
}

// Resolve interprets rawPath against markdownPath (project-root-relative,
// forward-slash) and an optional namespace, per §4.3.
//
// When namespace is non-empty and unknown, it returns a
// BrokenNamespaceError; the caller still has enough information (the raw
// target) to emit a Reference marked broken, as §4.1 requires.
func (r *Resolver) Resolve(markdownPath, namespace, rawPath string) (Resolved, error) {
	var baseDir string
	if namespace != "" {
		nsDir, ok := r.namespaces[namespace]
		if !ok {
			return Resolved{}, &pipeline.BrokenNamespaceError{Name: namespace}
		}
		baseDir = nsDir
	} else {
		baseDir = path.Dir(filepath.ToSlash(markdownPath))
	}

	joined := path.Join(baseDir, rawPath)
	rel := canonicalize(joined)

	abs := filepath.Join(r.root, filepath.FromSlash(rel))
	return Resolved{Absolute: abs, Relative: rel}, nil
}

// Key computes the lockfile (source, target, symbol) triple for ref,
// resolving its namespace/path through r.
func (r *Resolver) Key(ref pipeline.Reference) (source, target, symbol string, err error) {
	resolved, err := r.Resolve(ref.Source, ref.Namespace, ref.TargetRel)
	if err != nil {
		return ref.Source, "", ref.Query.String(), err
	}
	return ref.Source, resolved.Relative, ref.Query.String(), nil
}

// canonicalize applies §4.3's rule: project-root-relative, forward
// slashes, no leading "./", ".." segments resolved textually, case
// preserved. path.Join already collapses "." and resolves ".." lexically;
// this strips a leading "./" or "/". A path that escapes the root keeps
// its leading "../" segments: the resolver only normalizes the string
// form and does not reject such links.
func canonicalize(p string) string {
	cleaned := path.Clean(p)
	cleaned = strings.TrimPrefix(cleaned, "./")
	cleaned = strings.TrimPrefix(cleaned, "/")
	return cleaned
}
