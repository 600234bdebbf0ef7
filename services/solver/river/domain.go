// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package river

import "github.com/oxbowlabs/wayfind/services/solver/search"

// Domain adapts the puzzle to the search engine's domain contract.
//
// The goal is everyone on the left bank; the heuristic is the remaining
// right-bank cargo count, which never exceeds the true number of moves
// left.
type Domain struct{}

var _ search.Domain[State] = Domain{}

// Goal reports whether the state has everyone on the left bank.
func (Domain) Goal(s State) bool { return s.Solved() }

// Heuristic estimates the moves remaining as the cargo still to ferry.
func (Domain) Heuristic(s State) int { return s.RemainingCargo() }

// Successors returns the states one legal crossing away.
func (Domain) Successors(s State) []State { return s.Successors() }

// Display renders the state in [left||right] notation.
func (Domain) Display(s State) string { return s.String() }
