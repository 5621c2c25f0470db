// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package diagnostics renders freshness reports for a terminal: colored
// verdict lines when attached to one, plain text or JSON otherwise.
package diagnostics

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Semantic colors for the three verdicts (§4.7) plus muted/bold helpers.
var (
	ColorFresh  = lipgloss.Color("#2CD7C7")
	ColorStale  = lipgloss.Color("#F4D03F")
	ColorBroken = lipgloss.Color("#E74C3C")
	ColorMuted  = lipgloss.Color("#5C6B73")
)

// Styles are the pre-built lipgloss styles report.go renders with. When
// stdout is not a terminal (piped into a file, CI log capture) every
// style renders as plain text — lipgloss honors this automatically via
// lipgloss.NewStyle().Foreground, but docref forces it explicitly so
// `docref check > report.txt` never embeds escape codes (§6).
var Styles = struct {
	Fresh     lipgloss.Style
	Stale     lipgloss.Style
	Broken    lipgloss.Style
	Muted     lipgloss.Style
	Bold      lipgloss.Style
	Added     lipgloss.Style
	Removed   lipgloss.Style
	HunkLabel lipgloss.Style
}{
	Fresh:     lipgloss.NewStyle().Foreground(ColorFresh),
	Stale:     lipgloss.NewStyle().Foreground(ColorStale),
	Broken:    lipgloss.NewStyle().Foreground(ColorBroken).Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorMuted),
	Bold:      lipgloss.NewStyle().Bold(true),
	Added:     lipgloss.NewStyle().Foreground(ColorFresh),
	Removed:   lipgloss.NewStyle().Foreground(ColorBroken),
	HunkLabel: lipgloss.NewStyle().Foreground(ColorMuted).Bold(true),
}

// ColorEnabled reports whether the given file descriptor looks like a
// color-capable terminal, per mattn/go-isatty — used to decide between
// styled and plain rendering, not to mutate the lipgloss styles above
// (callers pass the result into Render* functions).
func ColorEnabled(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Verdict icons, rendered in their matching semantic color by report.go.
const (
	IconFresh  = "✓"
	IconStale  = "~"
	IconBroken = "✗"
)
