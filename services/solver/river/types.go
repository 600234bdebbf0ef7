// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package river

import (
	"fmt"
	"strings"
)

// State is one configuration of the puzzle: which bank each actor is
// on. True means the left bank. The zero value is the canonical start,
// everyone on the right bank.
type State struct {
	Farmer bool
	Wolf   bool
	Duck   bool
	Corn   bool
}

// Start returns the canonical start state: everyone on the right bank.
func Start() State { return State{} }

// Goal returns the canonical goal state: everyone on the left bank.
func Goal() State {
	return State{Farmer: true, Wolf: true, Duck: true, Corn: true}
}

// Solved reports whether everyone has reached the left bank.
func (s State) Solved() bool {
	return s.Farmer && s.Wolf && s.Duck && s.Corn
}

// RemainingCargo counts the wolf, duck, and corn still on the right
// bank. Each needs at least one crossing, so this is an admissible
// estimate of the moves left; the farmer is excluded because he steers
// every crossing.
func (s State) RemainingCargo() int {
	count := 0
	if !s.Wolf {
		count++
	}
	if !s.Duck {
		count++
	}
	if !s.Corn {
		count++
	}
	return count
}

// String renders the state as [left||right] with actors in fixed
// F, W, D, C order, e.g. "[FD||WC]" or "[||FWDC]".
func (s State) String() string {
	const letters = "FWDC"
	flags := [4]bool{s.Farmer, s.Wolf, s.Duck, s.Corn}

	var left, right strings.Builder
	for i, onLeft := range flags {
		if onLeft {
			left.WriteByte(letters[i])
		} else {
			right.WriteByte(letters[i])
		}
	}
	return "[" + left.String() + "||" + right.String() + "]"
}

// ParseBank converts a bank name into its left-bank flag. It accepts
// "left", "l", "right", and "r", case-insensitively.
func ParseBank(name string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "left", "l":
		return true, nil
	case "right", "r":
		return false, nil
	default:
		return false, fmt.Errorf("%q: %w", name, ErrUnknownBank)
	}
}

// BankName returns "left" or "right" for a left-bank flag.
func BankName(left bool) string {
	if left {
		return "left"
	}
	return "right"
}
