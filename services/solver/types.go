// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"fmt"

	"github.com/oxbowlabs/wayfind/services/solver/river"
	"github.com/oxbowlabs/wayfind/services/solver/search"
)

// StartPosition selects a bank for each of the four actors.
//
// Banks are "left" or "right" (case-insensitive, "l" and "r" accepted).
// Empty fields default to the right bank, matching the classic puzzle
// where everyone begins opposite the goal side.
type StartPosition struct {
	Farmer string `json:"farmer,omitempty"`
	Wolf   string `json:"wolf,omitempty"`
	Duck   string `json:"duck,omitempty"`
	Corn   string `json:"corn,omitempty"`
}

// State converts the position into a board state.
//
// Outputs:
//
//	river.State - The parsed state. Zero value on error.
//	error - Wraps ErrInvalidStart naming the offending field.
func (p StartPosition) State() (river.State, error) {
	var state river.State
	fields := []struct {
		name  string
		value string
		dst   *bool
	}{
		{"farmer", p.Farmer, &state.Farmer},
		{"wolf", p.Wolf, &state.Wolf},
		{"duck", p.Duck, &state.Duck},
		{"corn", p.Corn, &state.Corn},
	}
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		left, err := river.ParseBank(f.value)
		if err != nil {
			return river.State{}, fmt.Errorf("%w: %s=%q", ErrInvalidStart, f.name, f.value)
		}
		*f.dst = left
	}
	return state, nil
}

// SolveRequest is the body accepted by POST /v1/solver/solve.
type SolveRequest struct {
	// Start overrides the canonical start position. Omit it to solve
	// the classic puzzle with every actor on the right bank.
	Start *StartPosition `json:"start,omitempty"`

	// IncludeTrace attaches the full expansion trace to the response.
	// Traced solves always run fresh instead of hitting the cache.
	IncludeTrace bool `json:"include_trace,omitempty"`

	// MaxExpansions caps node expansions for this solve. Zero or
	// negative uses the server default. Solves with a custom budget
	// bypass the cache.
	MaxExpansions int `json:"max_expansions,omitempty"`
}

// PathStep is one state along the solution path.
type PathStep struct {
	// State renders the banks as "[left actors||right actors]".
	State string `json:"state"`

	// Move is the crossing that produced this state. Empty on the
	// first step.
	Move string `json:"move,omitempty"`
}

// SolveStats summarizes the work a solve performed.
type SolveStats struct {
	Expanded   int   `json:"expanded"`
	Generated  int   `json:"generated"`
	Relaxed    int   `json:"relaxed"`
	DurationMS int64 `json:"duration_ms"`
}

// TraceFrontierEntry is one open node in a frontier snapshot.
type TraceFrontierEntry struct {
	State string `json:"state"`
	G     int    `json:"g"`
	H     int    `json:"h"`
	F     int    `json:"f"`
}

// TraceEvent is the wire form of one search event.
type TraceEvent struct {
	Kind     string               `json:"kind"`
	Step     int                  `json:"step"`
	State    string               `json:"state,omitempty"`
	G        int                  `json:"g"`
	H        int                  `json:"h"`
	F        int                  `json:"f"`
	NewNode  bool                 `json:"new_node,omitempty"`
	Improved bool                 `json:"improved,omitempty"`
	OldG     int                  `json:"old_g,omitempty"`
	Frontier []TraceFrontierEntry `json:"frontier,omitempty"`
}

// traceEventFromSearch converts an engine event for the wire.
func traceEventFromSearch(ev search.Event) TraceEvent {
	out := TraceEvent{
		Kind:     ev.Kind.String(),
		Step:     ev.Step,
		State:    ev.State,
		G:        ev.G,
		H:        ev.H,
		F:        ev.F,
		NewNode:  ev.NewNode,
		Improved: ev.Improved,
		OldG:     ev.OldG,
	}
	for _, line := range ev.Frontier {
		out.Frontier = append(out.Frontier, TraceFrontierEntry{
			State: line.State,
			G:     line.G,
			H:     line.H,
			F:     line.F,
		})
	}
	return out
}

// SolveResponse carries a completed solve.
type SolveResponse struct {
	// SolveID uniquely identifies this response, cached or not.
	SolveID string `json:"solve_id"`

	// Outcome is "solved" or "exhausted".
	Outcome string `json:"outcome"`

	// Moves counts river crossings on the solution path. Zero when the
	// start already satisfies the goal and when no path exists.
	Moves int `json:"moves"`

	// Path lists the states from start to goal. Empty when the search
	// exhausted without reaching the goal.
	Path []PathStep `json:"path,omitempty"`

	Stats SolveStats `json:"stats"`

	// Cached reports whether the result came from the solve cache
	// rather than a fresh engine run.
	Cached bool `json:"cached"`

	Trace []TraceEvent `json:"trace,omitempty"`
}

// ErrorResponse is the uniform error body for handler failures.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// HealthResponse reports service liveness.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

// ReadyResponse reports service readiness.
type ReadyResponse struct {
	Ready bool `json:"ready"`
}

// StatsResponse reports solve cache counters.
type StatsResponse struct {
	CacheHits      int64 `json:"cache_hits"`
	CacheMisses    int64 `json:"cache_misses"`
	CacheEvictions int64 `json:"cache_evictions"`
	CachedSolves   int   `json:"cached_solves"`
}
