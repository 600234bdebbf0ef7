// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package ux

import (
	"fmt"
	"io"
	"strings"
)

// FrontierRow is one open node in a frontier dump, in pop order.
type FrontierRow struct {
	State string
	G     int
	H     int
	F     int
}

// TraceRenderer writes a search trace in the classic format: a
// frontier dump before each expansion, one line per generated
// successor, and a final path or failure banner.
//
// Not safe for concurrent use; the search loop is single-threaded and
// so is its trace.
type TraceRenderer struct {
	w     io.Writer
	plain bool
}

// NewTraceRenderer creates a renderer writing to w. With plain set,
// output is unstyled regardless of terminal detection.
func NewTraceRenderer(w io.Writer, plain bool) *TraceRenderer {
	return &TraceRenderer{w: w, plain: plain || Plain()}
}

func (r *TraceRenderer) style(style func() string, plain string) string {
	if r.plain {
		return plain
	}
	return style()
}

// Frontier prints the open set in pop order, one row per node.
func (r *TraceRenderer) Frontier(rows []FrontierRow) {
	header := fmt.Sprintf("Frontier (%d):", len(rows))
	fmt.Fprintln(r.w, r.style(func() string { return Styles.Muted.Render(header) }, header))
	for _, row := range rows {
		cost := fmt.Sprintf("g=%d h=%d f=%d", row.G, row.H, row.F)
		fmt.Fprintf(r.w, "  %s  %s\n",
			r.style(func() string { return Styles.State.Render(row.State) }, row.State),
			r.style(func() string { return Styles.Muted.Render(cost) }, cost))
	}
}

// Expand prints the node chosen for expansion.
func (r *TraceRenderer) Expand(state string, g, h, f int) {
	cost := fmt.Sprintf("(g=%d h=%d f=%d)", g, h, f)
	fmt.Fprintf(r.w, "%s %s %s\n",
		r.style(func() string { return Styles.Bold.Render("Expand:") }, "Expand:"),
		r.style(func() string { return Styles.Highlight.Render(state) }, state),
		r.style(func() string { return Styles.Muted.Render(cost) }, cost))
}

// Generated prints one successor. New states show their initial cost;
// regenerated states show whether the offered path improved them.
func (r *TraceRenderer) Generated(state string, g, h, f int, newNode, improved bool) {
	disposition := "regenerated, no update"
	switch {
	case newNode:
		disposition = "new node"
	case improved:
		disposition = fmt.Sprintf("regenerated, updated f=%d", f)
	}
	cost := fmt.Sprintf("(g=%d h=%d f=%d)", g, h, f)
	fmt.Fprintf(r.w, "  Generated: %s %s %s\n",
		r.style(func() string { return Styles.State.Render(state) }, state),
		r.style(func() string { return Styles.Muted.Render(cost) }, cost),
		r.style(func() string { return Styles.Muted.Render("[" + disposition + "]") }, "["+disposition+"]"))
}

// Relaxed prints one node whose cost a cascade improved.
func (r *TraceRenderer) Relaxed(state string, oldG, g int) {
	line := fmt.Sprintf("  Relaxed: %s g %d -> %d", state, oldG, g)
	fmt.Fprintln(r.w, r.style(func() string { return Styles.Muted.Render(line) }, line))
}

// Path prints the solved banner and the start-to-goal path, states
// arrow-joined, each transition annotated with its move label.
func (r *TraceRenderer) Path(states, moves []string) {
	banner := fmt.Sprintf("Solved in %d moves", len(states)-1)
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.style(func() string { return Styles.Success.Render("✓ " + banner) }, banner))

	joined := strings.Join(states, " -> ")
	fmt.Fprintln(r.w, r.style(func() string { return Styles.State.Render(joined) }, joined))

	for i, move := range moves {
		line := fmt.Sprintf("  %d. %s", i+1, move)
		fmt.Fprintln(r.w, r.style(func() string { return Styles.Muted.Render(line) }, line))
	}
}

// Failure prints the exhausted banner.
func (r *TraceRenderer) Failure() {
	const banner = "No path exists from the start position"
	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, r.style(func() string { return Styles.Error.Render("✗ " + banner) }, banner))
}

// Stats prints the search counters summary line.
func (r *TraceRenderer) Stats(expanded, generated, relaxed int) {
	line := fmt.Sprintf("expanded=%d generated=%d relaxed=%d", expanded, generated, relaxed)
	fmt.Fprintln(r.w, r.style(func() string { return Styles.Muted.Render(line) }, line))
}
