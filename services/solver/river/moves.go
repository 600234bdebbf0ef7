// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package river

// Move is one boat crossing: the farmer plus at most one passenger.
type Move int

const (
	// MoveFarmerWolf ferries the farmer and the wolf.
	MoveFarmerWolf Move = iota

	// MoveFarmerDuck ferries the farmer and the duck.
	MoveFarmerDuck

	// MoveFarmerCorn ferries the farmer and the corn.
	MoveFarmerCorn

	// MoveFarmerAlone ferries the farmer with an empty seat.
	MoveFarmerAlone
)

// String returns the string representation of the Move.
func (m Move) String() string {
	switch m {
	case MoveFarmerWolf:
		return "farmer+wolf"
	case MoveFarmerDuck:
		return "farmer+duck"
	case MoveFarmerCorn:
		return "farmer+corn"
	case MoveFarmerAlone:
		return "farmer"
	default:
		return "unknown"
	}
}

// Legal reports whether the move can be made from this state without
// leaving a predator alone with its prey on either bank.
func (s State) Legal(m Move) bool {
	switch m {
	case MoveFarmerWolf:
		// Taking the wolf leaves the duck behind with whatever shares
		// its bank; the duck and corn must be split.
		return s.Farmer == s.Wolf && s.Duck != s.Corn
	case MoveFarmerDuck:
		// The wolf ignores the corn, so moving the duck is always safe.
		return s.Farmer == s.Duck
	case MoveFarmerCorn:
		return s.Farmer == s.Corn && s.Wolf != s.Duck
	case MoveFarmerAlone:
		return s.Duck != s.Corn && s.Wolf != s.Duck
	default:
		return false
	}
}

// Apply returns the state after the move: the farmer crosses, carrying
// the move's passenger. Callers must check Legal first; Apply does not.
func (s State) Apply(m Move) State {
	next := s
	next.Farmer = !s.Farmer
	switch m {
	case MoveFarmerWolf:
		next.Wolf = !s.Wolf
	case MoveFarmerDuck:
		next.Duck = !s.Duck
	case MoveFarmerCorn:
		next.Corn = !s.Corn
	}
	return next
}

// moveOrder fixes the generation order of successors. The order is
// load-bearing only for tie-breaking between equally promising nodes.
var moveOrder = [4]Move{MoveFarmerWolf, MoveFarmerDuck, MoveFarmerCorn, MoveFarmerAlone}

// Moves returns the legal moves from this state, in generation order.
func (s State) Moves() []Move {
	moves := make([]Move, 0, len(moveOrder))
	for _, m := range moveOrder {
		if s.Legal(m) {
			moves = append(moves, m)
		}
	}
	return moves
}

// Successors returns the states one legal move away, in generation
// order.
func (s State) Successors() []State {
	moves := s.Moves()
	states := make([]State, len(moves))
	for i, m := range moves {
		states[i] = s.Apply(m)
	}
	return states
}

// MoveBetween identifies the single move transforming from into to.
// It returns false when the two states are not one legal move apart.
func MoveBetween(from, to State) (Move, bool) {
	for _, m := range moveOrder {
		if from.Legal(m) && from.Apply(m) == to {
			return m, true
		}
	}
	return 0, false
}
