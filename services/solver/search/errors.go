// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package search provides a generic informed graph-search engine.
//
// The search package implements best-first search over an expanding state
// graph: starting from a single state, it repeatedly expands the most
// promising frontier node, generating successor states supplied by a
// domain model until a goal state is generated or the frontier empties.
// Node priority is costToReach + heuristic, so with an admissible
// heuristic the first goal found lies on a cheapest path.
//
// # Ownership Model
//
// Every node created during a search is owned by the engine's generated
// table and only by it:
//   - parent and child links between nodes are non-owning references
//   - Result carries copies of states and display strings, never nodes
//   - dropping the Engine releases the entire search graph at once
//
// # Thread Safety
//
// Engine is NOT safe for concurrent use. It is designed for:
//   - single-goroutine access for the duration of Run
//   - read-only access to the Result after Run returns
//
// Run multiple searches concurrently by creating one Engine per search.
//
// # Lifecycle
//
// A typical engine lifecycle:
//  1. Create with New(domain, startState)
//  2. Call Run(ctx) exactly once
//  3. Inspect the returned Result
//  4. Drop the engine; the search graph is released as a unit
package search

import "errors"

// Sentinel errors for search operations.
var (
	// ErrDuplicateState is returned when inserting a state into the
	// generated table that is already present. Each distinct state must
	// be generated exactly once; a duplicate insert indicates a driver
	// bug, not a domain condition.
	ErrDuplicateState = errors.New("duplicate generated state")

	// ErrAlreadyRun is returned when Run is called on an engine that has
	// already executed a search. Engines are single-use; the generated
	// table is consumed by the search and cannot be reused.
	ErrAlreadyRun = errors.New("engine has already run")

	// ErrBudgetExceeded is returned when a search exceeds its configured
	// expansion or generation budget before reaching a terminal outcome.
	ErrBudgetExceeded = errors.New("search budget exceeded")
)
