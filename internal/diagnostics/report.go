// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package diagnostics

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/jinterlante1206/docref/internal/freshness"
	"github.com/jinterlante1206/docref/internal/pipeline"
)

// jsonEntry is the --json shape for one EntryResult (§12); field names
// are stable API, independent of freshness.EntryResult's Go layout.
type jsonEntry struct {
	Source     string               `json:"source"`
	Target     string               `json:"target"`
	Symbol     string               `json:"symbol"`
	Verdict    string               `json:"verdict"`
	Reason     string               `json:"reason,omitempty"`
	Candidates []pipeline.Candidate `json:"candidates,omitempty"`
}

// RenderJSON writes results as a JSON array, one object per entry.
func RenderJSON(w io.Writer, results []freshness.EntryResult) error {
	out := make([]jsonEntry, 0, len(results))
	for _, r := range results {
		out = append(out, jsonEntry{
			Source:     r.Entry.Source,
			Target:     r.Entry.Target,
			Symbol:     r.Entry.Symbol,
			Verdict:    r.Verdict.String(),
			Reason:     reasonText(r.Reason),
			Candidates: r.Candidates,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

// RenderText writes one human-readable line per entry, colored when
// color is true. Used by `check` and `status`.
func RenderText(w io.Writer, results []freshness.EntryResult, color bool) {
	for _, r := range results {
		fmt.Fprintln(w, formatLine(r, color))
		if len(r.Candidates) > 0 {
			fmt.Fprintln(w, "    did you mean: "+candidateList(r.Candidates))
		}
	}
	fmt.Fprintln(w, summaryLine(results, color))
}

func formatLine(r freshness.EntryResult, color bool) string {
	loc := fmt.Sprintf("%s -> %s#%s", r.Entry.Source, r.Entry.Target, r.Entry.Symbol)
	switch r.Verdict {
	case pipeline.Fresh:
		if !color {
			return IconFresh + " " + loc
		}
		return Styles.Fresh.Render(IconFresh + " " + loc)
	case pipeline.Stale:
		if !color {
			return IconStale + " " + loc + " (stale)"
		}
		return Styles.Stale.Render(IconStale + " " + loc + " (stale)")
	default:
		reason := reasonText(r.Reason)
		if !color {
			return IconBroken + " " + loc + " (" + reason + ")"
		}
		return Styles.Broken.Render(IconBroken + " " + loc + " (" + reason + ")")
	}
}

func candidateList(candidates []pipeline.Candidate) string {
	names := make([]string, 0, len(candidates))
	for _, c := range candidates {
		names = append(names, c.Name)
	}
	out := ""
	for i, n := range names {
		if i > 0 {
			out += ", "
		}
		out += n
	}
	return out
}

func summaryLine(results []freshness.EntryResult, color bool) string {
	var fresh, stale, broken int
	for _, r := range results {
		switch r.Verdict {
		case pipeline.Fresh:
			fresh++
		case pipeline.Stale:
			stale++
		default:
			broken++
		}
	}
	line := fmt.Sprintf("%d fresh, %d stale, %d broken (of %d)", fresh, stale, broken, len(results))
	if !color {
		return line
	}
	return Styles.Bold.Render(line)
}

func reasonText(reason freshness.BrokenReason) string {
	switch reason {
	case freshness.ReasonFileMissing:
		return "file missing"
	case freshness.ReasonSymbolNotFound:
		return "symbol not found"
	case freshness.ReasonUnsupportedLanguage:
		return "unsupported language"
	case freshness.ReasonParseFailed:
		return "parse failed"
	case freshness.ReasonBrokenNamespace:
		return "broken namespace"
	default:
		return ""
	}
}
