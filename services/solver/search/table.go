// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import "fmt"

// generated is the table of every state the search has seen, keyed by
// state value. It is the single owning collection for the nodes of one
// search: parent and child links point between its values, and dropping
// the table releases the whole graph.
//
// Membership here is what makes the search a graph search rather than a
// tree search: a state reached a second time relaxes its existing node
// instead of spawning a duplicate.
type generated[S comparable] struct {
	nodes map[S]*Node[S]
}

// newGenerated creates an empty generated table.
func newGenerated[S comparable]() *generated[S] {
	return &generated[S]{nodes: make(map[S]*Node[S])}
}

// lookup returns the node for a state, if the state has been generated.
func (t *generated[S]) lookup(state S) (*Node[S], bool) {
	n, ok := t.nodes[state]
	return n, ok
}

// insert adds a node under its state. Each state may be inserted exactly
// once; a second insert returns ErrDuplicateState.
func (t *generated[S]) insert(n *Node[S]) error {
	if _, ok := t.nodes[n.state]; ok {
		return fmt.Errorf("insert %v: %w", n.state, ErrDuplicateState)
	}
	t.nodes[n.state] = n
	return nil
}

// len returns the number of generated states.
func (t *generated[S]) len() int { return len(t.nodes) }
