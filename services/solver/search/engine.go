// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// Engine drives one search over one domain from one start state.
//
// An engine is single-use: construct with New, call Run exactly once,
// read the Result. The engine owns every node it generates; dropping it
// releases the search graph.
type Engine[S comparable] struct {
	domain   Domain[S]
	start    S
	options  Options
	table    *generated[S]
	frontier *frontier[S]

	ran      bool
	step     int
	expanded int
	relaxed  int
}

// New creates an engine for the domain, rooted at the start state.
func New[S comparable](domain Domain[S], start S, opts ...Option) *Engine[S] {
	return &Engine[S]{
		domain:   domain,
		start:    start,
		options:  applyOptions(opts),
		table:    newGenerated[S](),
		frontier: newFrontier[S](),
	}
}

// Run executes the search to a terminal outcome.
//
// Description:
//
//	Seeds the start state at cost 0 and priority equal to its heuristic,
//	then repeatedly expands the lowest-priority frontier node: each
//	successor the domain produces is either relaxed (state already
//	generated) or added as a new node at the expanding node's cost plus
//	one. A goal is recognized the moment its state is generated,
//	short-circuiting the remaining successors. The search ends Solved on
//	a generated goal, or Exhausted when the frontier empties.
//
// Inputs:
//
//	ctx - Context for cancellation; checked once per expansion
//
// Outputs:
//
//	*Result - Terminal outcome with path and counters; nil on error
//	error - ErrAlreadyRun on reuse, ErrBudgetExceeded past configured
//	        limits, or the context error if cancelled mid-search
//
// Exhaustion is not an error: a domain with no path from start to goal
// yields (Result{Outcome: OutcomeExhausted}, nil).
func (e *Engine[S]) Run(ctx context.Context) (*Result[S], error) {
	if e.ran {
		return nil, ErrAlreadyRun
	}
	e.ran = true

	started := time.Now()
	ctx, span := startSearchSpan(ctx, e.domain.Display(e.start))
	defer span.End()

	root := newNode(e.start, 0, e.domain.Heuristic(e.start), nil)
	if err := e.table.insert(root); err != nil {
		return nil, err
	}
	if e.domain.Goal(root.state) {
		return e.solved(ctx, root, started), nil
	}
	e.frontier.push(root, root.F())

	for !e.frontier.empty() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("search cancelled after %d expansions: %w", e.expanded, err)
		}
		if e.expanded >= e.options.MaxExpansions {
			return nil, fmt.Errorf("expanded %d nodes: %w", e.expanded, ErrBudgetExceeded)
		}

		goal, err := e.expand()
		if err != nil {
			return nil, err
		}
		if goal != nil {
			return e.solved(ctx, goal, started), nil
		}
	}

	if e.options.Observer != nil {
		e.options.Observer(Event{Kind: EventExhausted, Step: e.step})
	}
	result := &Result[S]{
		Outcome:   OutcomeExhausted,
		Expanded:  e.expanded,
		Generated: e.table.len(),
		Relaxed:   e.relaxed,
		Duration:  time.Since(started),
	}
	e.finish(ctx, result)
	return result, nil
}

// expand pops and expands one node. It returns the goal node if one was
// generated, or an error if the generation budget was exceeded.
func (e *Engine[S]) expand() (*Node[S], error) {
	var snap []FrontierLine
	if e.options.Observer != nil {
		snap = e.frontierLines()
	}

	n := e.frontier.pop()
	e.expanded++
	e.step = e.expanded

	if e.options.Observer != nil {
		e.options.Observer(Event{
			Kind:     EventExpand,
			Step:     e.step,
			State:    e.domain.Display(n.state),
			G:        n.g,
			H:        n.h,
			F:        n.F(),
			Frontier: snap,
		})
	}

	for _, succ := range e.domain.Successors(n.state) {
		// Skip the state we came from; relaxation would reject it anyway.
		if n.parent != nil && succ == n.parent.state {
			continue
		}

		if existing, ok := e.table.lookup(succ); ok {
			improved := existing.relax(n.g+1, n, e.frontier, e.onRelax)
			n.addChild(existing)
			if e.options.Observer != nil {
				e.options.Observer(Event{
					Kind:     EventGenerate,
					Step:     e.step,
					State:    e.domain.Display(existing.state),
					G:        existing.g,
					H:        existing.h,
					F:        existing.F(),
					Improved: improved,
				})
			}
			continue
		}

		if e.table.len() >= e.options.MaxGenerated {
			return nil, fmt.Errorf("generated %d states: %w", e.table.len(), ErrBudgetExceeded)
		}
		child := newNode(succ, n.g+1, e.domain.Heuristic(succ), n)
		if err := e.table.insert(child); err != nil {
			return nil, err
		}
		e.frontier.push(child, child.F())
		n.addChild(child)
		if e.options.Observer != nil {
			e.options.Observer(Event{
				Kind:    EventGenerate,
				Step:    e.step,
				State:   e.domain.Display(child.state),
				G:       child.g,
				H:       child.h,
				F:       child.F(),
				NewNode: true,
			})
		}
		if e.domain.Goal(succ) {
			return child, nil
		}
	}
	return nil, nil
}

// onRelax counts one cost improvement and reports it to the observer.
func (e *Engine[S]) onRelax(n *Node[S], oldG int) {
	e.relaxed++
	if e.options.Observer != nil {
		e.options.Observer(Event{
			Kind:     EventRelax,
			Step:     e.step,
			State:    e.domain.Display(n.state),
			G:        n.g,
			H:        n.h,
			F:        n.F(),
			Improved: true,
			OldG:     oldG,
		})
	}
}

// solved builds the terminal result for a generated goal node.
func (e *Engine[S]) solved(ctx context.Context, goal *Node[S], started time.Time) *Result[S] {
	if e.options.Observer != nil {
		e.options.Observer(Event{
			Kind:  EventSolved,
			Step:  e.step,
			State: e.domain.Display(goal.state),
			G:     goal.g,
			H:     goal.h,
			F:     goal.F(),
		})
	}

	path, display := e.reconstructPath(goal)
	result := &Result[S]{
		Outcome:     OutcomeSolved,
		Path:        path,
		PathDisplay: display,
		Moves:       len(path) - 1,
		Expanded:    e.expanded,
		Generated:   e.table.len(),
		Relaxed:     e.relaxed,
		Duration:    time.Since(started),
	}
	e.finish(ctx, result)
	return result
}

// reconstructPath follows parent links from the goal back to the start
// and returns the path in start-to-goal order, states and displays
// index-aligned.
func (e *Engine[S]) reconstructPath(goal *Node[S]) ([]S, []string) {
	var chain []*Node[S]
	for n := goal; n != nil; n = n.parent {
		chain = append(chain, n)
	}

	path := make([]S, len(chain))
	display := make([]string, len(chain))
	for i, n := range chain {
		j := len(chain) - 1 - i
		path[j] = n.state
		display[j] = e.domain.Display(n.state)
	}
	return path, display
}

// frontierLines renders the current frontier in pop order.
func (e *Engine[S]) frontierLines() []FrontierLine {
	nodes := e.frontier.snapshot()
	lines := make([]FrontierLine, len(nodes))
	for i, n := range nodes {
		lines[i] = FrontierLine{
			State: e.domain.Display(n.state),
			G:     n.g,
			H:     n.h,
			F:     n.F(),
		}
	}
	return lines
}

// finish records telemetry and releases the graph. The result carries
// copies only; nothing references the nodes after this.
func (e *Engine[S]) finish(ctx context.Context, result *Result[S]) {
	recordSearchMetrics(ctx, result.Duration, result.Expanded, result.Generated, result.Relaxed, result.Outcome.String())
	setSearchSpanResult(trace.SpanFromContext(ctx), result.Outcome.String(), result.Moves, result.Expanded, result.Generated)
	e.table = nil
	e.frontier = nil
}
