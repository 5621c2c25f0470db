// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package scanner walks a project's markdown files and extracts every
// tracked link as a Reference (§4.1).
package scanner

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

// linkPattern matches a markdown inline link, optionally titled:
// [text](target) or [text](target "title"). It is deliberately permissive
// about target contents; the target is split afterwards, and one that does
// not fit targetPattern is skipped without a diagnostic.
var linkPattern = regexp.MustCompile(`\[([^\]]*)\]\(([^)\s]+)(?:\s+"[^"]*")?\)`)

// targetPattern splits a matched URL into (namespace?, path, symbol?) per
// §4.1's grammar.
var targetPattern = regexp.MustCompile(`^(?:([A-Za-z_][A-Za-z0-9_-]*):)?([^#]+)(?:#(.+))?$`)

// Scan walks root for markdown files under include (or the whole tree if
// include is empty) and not under exclude, returning every Reference in
// deterministic order: by source path, then line, then column (§4.1).
func Scan(root string, include, exclude []string) ([]pipeline.Reference, error) {
	var files []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(strings.ToLower(p), ".md") {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if !included(rel, include) || excluded(rel, exclude) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	var refs []pipeline.Reference
	for _, rel := range files {
		content, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(rel)))
		if err != nil {
			return nil, err
		}
		refs = append(refs, ScanFile(rel, content)...)
	}
	return refs, nil
}

// ScanFile extracts References from one markdown file's content. source
// is the path recorded on each Reference.
func ScanFile(source string, content []byte) []pipeline.Reference {
	var refs []pipeline.Reference
	lines := strings.Split(string(content), "\n")
	inFence := false
	var fenceMarker string
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " \t")
		if marker := fenceOpen(trimmed); marker != "" {
			if !inFence {
				inFence, fenceMarker = true, marker
			} else if strings.HasPrefix(trimmed, fenceMarker) {
				inFence, fenceMarker = false, ""
			}
			continue
		}
		if inFence {
			continue // fenced code blocks are not links (§9 open question)
		}
		for _, ref := range scanLine(source, i+1, line) {
			refs = append(refs, ref)
		}
	}
	// Already in (line, column) order by construction; stable sort keeps
	// it that way even if a future change interleaves multi-line spans.
	sort.SliceStable(refs, func(i, j int) bool {
		if refs[i].Line != refs[j].Line {
			return refs[i].Line < refs[j].Line
		}
		return refs[i].Column < refs[j].Column
	})
	return refs
}

func scanLine(source string, line int, text string) []pipeline.Reference {
	var out []pipeline.Reference
	codeSpans := inlineCodeSpans(text)

	for _, loc := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && text[start-1] == '!' {
			continue // image link
		}
		if withinAny(start, codeSpans) {
			continue // inline code span, not a link
		}

		linkText := text[loc[2]:loc[3]]
		rawTarget := text[loc[4]:loc[5]]
		if isSkippedTarget(rawTarget) {
			continue
		}

		m := targetPattern.FindStringSubmatch(rawTarget)
		if m == nil {
			continue
		}
		namespace, targetRel, symbolRaw := m[1], m[2], m[3]

		out = append(out, pipeline.Reference{
			Source:    source,
			Line:      line,
			Column:    start + 1,
			LinkText:  linkText,
			RawTarget: rawTarget,
			Namespace: namespace,
			TargetRel: targetRel,
			Query:     pipeline.ParseSymbol(symbolRaw),
		})
	}
	return out
}

// isSkippedTarget reports whether a URL is a non-file reference per
// §4.1: it carries a scheme, or starts with mailto:, #, or /.
func isSkippedTarget(url string) bool {
	if strings.Contains(url, "://") {
		return true
	}
	switch {
	case strings.HasPrefix(url, "mailto:"):
		return true
	case strings.HasPrefix(url, "#"):
		return true
	case strings.HasPrefix(url, "/"):
		return true
	}
	return false
}

type span struct{ start, end int }

// inlineCodeSpans finds every `...` run in a line so link-like text
// inside one can be ignored (§8 boundary behavior).
func inlineCodeSpans(text string) []span {
	var spans []span
	i := 0
	for i < len(text) {
		if text[i] != '`' {
			i++
			continue
		}
		runStart := i
		for i < len(text) && text[i] == '`' {
			i++
		}
		tickLen := i - runStart
		closeSeq := strings.Repeat("`", tickLen)
		closeIdx := strings.Index(text[i:], closeSeq)
		if closeIdx < 0 {
			break
		}
		spans = append(spans, span{start: runStart, end: i + closeIdx + tickLen})
		i += closeIdx + tickLen
	}
	return spans
}

// fenceOpen reports the fence marker ("```" or "~~~", with any trailing
// info string stripped) if trimmed starts a fenced code block, else "".
func fenceOpen(trimmed string) string {
	for _, marker := range []string{"```", "~~~"} {
		if strings.HasPrefix(trimmed, marker) {
			return marker
		}
	}
	return ""
}

func withinAny(pos int, spans []span) bool {
	for _, s := range spans {
		if pos >= s.start && pos < s.end {
			return true
		}
	}
	return false
}

func included(rel string, include []string) bool {
	if len(include) == 0 {
		return true
	}
	for _, p := range include {
		if strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}

func excluded(rel string, exclude []string) bool {
	for _, p := range exclude {
		if strings.HasPrefix(rel, p) {
			return true
		}
	}
	return false
}
