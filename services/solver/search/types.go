// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import "time"

// Default configuration values.
const (
	// DefaultMaxExpansions is the default maximum number of node
	// expansions per search.
	DefaultMaxExpansions = 1_000_000

	// DefaultMaxGenerated is the default maximum number of generated
	// nodes per search.
	DefaultMaxGenerated = 1_000_000
)

// Domain supplies the problem-specific half of a search: what states look
// like, how they connect, and which of them are goals.
//
// The state type S must be comparable; the engine keys its generated
// table on state value equality. Two states that compare equal are the
// same search node. Implementations must be deterministic: repeated
// calls with equal states must return equal answers, and Successors must
// return states in a stable order (successor order decides tie-breaking
// between equally promising nodes).
type Domain[S comparable] interface {
	// Goal reports whether the state satisfies the goal predicate.
	Goal(state S) bool

	// Heuristic estimates the remaining cost from the state to a goal.
	//
	// The estimate must be non-negative and admissible (never exceed the
	// true remaining cost); otherwise the first path found is not
	// guaranteed to be cheapest.
	Heuristic(state S) int

	// Successors returns every state reachable from the given state by
	// one legal move, in a stable order.
	Successors(state S) []S

	// Display renders the state for traces, logs, and results. It has
	// no identity semantics; equality is always on the state value.
	Display(state S) string
}

// Outcome is the terminal result of a search.
type Outcome int

const (
	// OutcomeSolved indicates a goal state was generated.
	OutcomeSolved Outcome = iota

	// OutcomeExhausted indicates the frontier emptied with no goal
	// state generated; no path exists from the start state.
	OutcomeExhausted
)

// String returns the string representation of the Outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomeSolved:
		return "solved"
	case OutcomeExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Result describes a completed search.
//
// Exhaustion is a normal terminal outcome, not an error: a Result with
// OutcomeExhausted and an empty Path means the search proved no path
// exists. All fields are copies; a Result stays valid after the engine
// that produced it is dropped.
type Result[S comparable] struct {
	// Outcome is the terminal state the search reached.
	Outcome Outcome

	// Path is the cheapest path found, start state first, goal state
	// last. Empty when Outcome is OutcomeExhausted. A single-element
	// path means the start state already satisfied the goal.
	Path []S

	// PathDisplay holds Display renderings of Path, index-aligned.
	PathDisplay []string

	// Moves is the number of transitions on Path: len(Path)-1, or 0
	// when no path was found.
	Moves int

	// Expanded is the number of nodes popped from the frontier.
	Expanded int

	// Generated is the number of distinct states generated, including
	// the start state.
	Generated int

	// Relaxed is the number of cost improvements applied, counting
	// every node touched by relaxation cascades.
	Relaxed int

	// Duration is the search execution time.
	Duration time.Duration
}

// Options configures engine behavior.
type Options struct {
	// MaxExpansions caps node expansions (default: 1,000,000).
	MaxExpansions int

	// MaxGenerated caps generated nodes (default: 1,000,000).
	MaxGenerated int

	// Observer, when non-nil, receives an Event for every expansion,
	// generation, relaxation, and terminal transition, in order.
	Observer Observer
}

// DefaultOptions returns sensible defaults for searches.
func DefaultOptions() Options {
	return Options{
		MaxExpansions: DefaultMaxExpansions,
		MaxGenerated:  DefaultMaxGenerated,
	}
}

// Option is a functional option for configuring an engine.
type Option func(*Options)

// WithMaxExpansions caps the number of node expansions.
//
// If n <= 0, uses default (1,000,000).
func WithMaxExpansions(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.MaxExpansions = DefaultMaxExpansions
		} else {
			o.MaxExpansions = n
		}
	}
}

// WithMaxGenerated caps the number of generated nodes.
//
// If n <= 0, uses default (1,000,000).
func WithMaxGenerated(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.MaxGenerated = DefaultMaxGenerated
		} else {
			o.MaxGenerated = n
		}
	}
}

// WithObserver attaches an event observer to the engine.
func WithObserver(obs Observer) Option {
	return func(o *Options) {
		o.Observer = obs
	}
}

// applyOptions applies functional options and returns the configured options.
func applyOptions(opts []Option) Options {
	options := DefaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	return options
}
