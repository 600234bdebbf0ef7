// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

// EventKind identifies what a search event describes.
type EventKind int

const (
	// EventExpand fires when a node is popped from the frontier for
	// expansion. The event carries a frontier snapshot taken just
	// before the pop; its first line is the expanded node.
	EventExpand EventKind = iota

	// EventGenerate fires once per successor the driver presents,
	// whether the state is new (NewNode true) or already generated.
	EventGenerate

	// EventRelax fires once per node whose cost-to-reach drops during a
	// relaxation, including every node reached by the cascade. The node
	// that triggered the cascade also appears in its EventGenerate with
	// Improved set.
	EventRelax

	// EventSolved fires when a goal state is generated. The search
	// stops; the path is on the Result.
	EventSolved

	// EventExhausted fires when the frontier empties with no goal
	// generated.
	EventExhausted
)

// String returns the string representation of the EventKind.
func (k EventKind) String() string {
	switch k {
	case EventExpand:
		return "expand"
	case EventGenerate:
		return "generate"
	case EventRelax:
		return "relax"
	case EventSolved:
		return "solved"
	case EventExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// FrontierLine is one open node in an EventExpand snapshot.
type FrontierLine struct {
	// State is the node's display string.
	State string

	// G is the node's cost-to-reach.
	G int

	// H is the node's heuristic estimate.
	H int

	// F is the node's frontier priority, G+H.
	F int
}

// Event is one step of a search trace.
//
// The engine performs no I/O of its own; it reports everything it does
// through events delivered synchronously, in order, to the observer the
// engine was configured with. Fields beyond Kind, Step, and State are
// populated per kind as documented on the EventKind constants.
type Event struct {
	// Kind identifies what happened.
	Kind EventKind

	// Step is the expansion count when the event fired. Generation and
	// relaxation events share the step of the expansion that caused
	// them; the terminal event repeats the final step.
	Step int

	// State is the display string of the subject node.
	State string

	// G is the subject node's cost-to-reach after the event.
	G int

	// H is the subject node's heuristic estimate.
	H int

	// F is the subject node's priority after the event, G+H.
	F int

	// NewNode is set on EventGenerate when the state had not been
	// generated before.
	NewNode bool

	// Improved is set on EventGenerate when regenerating the state
	// lowered its cost, and on every EventRelax.
	Improved bool

	// OldG is the cost-to-reach before an EventRelax improvement.
	OldG int

	// Frontier is the pre-pop snapshot carried by EventExpand, in pop
	// order.
	Frontier []FrontierLine
}

// Observer receives search events. Observers run synchronously on the
// search goroutine; slow observers slow the search.
type Observer func(Event)
