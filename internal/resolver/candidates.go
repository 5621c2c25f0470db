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
	"sort"
	"strings"

	"github.com/jinterlante1206/docref/internal/pipeline"
)

const maxCandidates = 5

// suggest returns up to maxCandidates entries from pool closest to target
// by Levenshtein distance over each name's normalized form (§4.8): strip
// any generic parameter list, then lowercase. Ties break by source order,
// which pool already preserves.
func suggest(target string, pool []decl) []pipeline.Candidate {
	norm := normalize(target)
	type scored struct {
		name string
		dist int
	}
	scoredAll := make([]scored, 0, len(pool))
	for _, d := range pool {
		scoredAll = append(scoredAll, scored{name: d.name, dist: levenshtein(norm, normalize(d.name))})
	}
	sort.SliceStable(scoredAll, func(i, j int) bool {
		return scoredAll[i].dist < scoredAll[j].dist
	})
	if len(scoredAll) > maxCandidates {
		scoredAll = scoredAll[:maxCandidates]
	}
	out := make([]pipeline.Candidate, len(scoredAll))
	for i, s := range scoredAll {
		out[i] = pipeline.Candidate{Name: s.name, Distance: s.dist}
	}
	return out
}

func normalize(name string) string {
	if idx := strings.IndexByte(name, '<'); idx >= 0 {
		if end := strings.LastIndexByte(name, '>'); end > idx {
			name = name[:idx] + name[end+1:]
		}
	}
	return strings.ToLower(name)
}

// levenshtein computes classic edit distance between two strings.
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	la, lb := len(ra), len(rb)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			del := prev[j] + 1
			ins := curr[j-1] + 1
			sub := prev[j-1] + cost
			m := del
			if ins < m {
				m = ins
			}
			if sub < m {
				m = sub
			}
			curr[j] = m
		}
		prev, curr = curr, prev
	}
	return prev[lb]
}
