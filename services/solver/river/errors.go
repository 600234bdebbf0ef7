// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package river models the farmer, wolf, duck, and corn crossing puzzle.
//
// A farmer must ferry a wolf, a duck, and a sack of corn across a river
// in a boat that holds the farmer plus at most one passenger. Left
// unsupervised, the wolf eats the duck and the duck eats the corn. A
// move is legal only if it leaves no predator alone with its prey.
//
// The package provides the puzzle state, its legal moves, and an
// adapter satisfying the search engine's domain contract.
package river

import "errors"

// Sentinel errors for puzzle inputs.
var (
	// ErrUnknownBank is returned when parsing a bank name that is
	// neither "left" nor "right".
	ErrUnknownBank = errors.New("unknown river bank")
)
