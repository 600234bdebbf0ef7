// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// relaxRecorder captures the improvement callbacks a relax cascade makes.
type relaxRecorder struct {
	states []string
	oldG   []int
}

func (r *relaxRecorder) callback(n *Node[string], oldG int) {
	r.states = append(r.states, n.State())
	r.oldG = append(r.oldG, oldG)
}

func TestNode_Accessors(t *testing.T) {
	parent := makeNode("p", 1, 2)
	n := newNode("n", 2, 4, parent)

	assert.Equal(t, "n", n.State())
	assert.Equal(t, 2, n.G())
	assert.Equal(t, 4, n.H())
	assert.Equal(t, 6, n.F())
	assert.Same(t, parent, n.Parent())
	assert.Nil(t, parent.Parent())
}

// Test that a cheaper path is accepted and reported.
func TestNodeRelax_AcceptsCheaperPath(t *testing.T) {
	f := newFrontier[string]()
	oldParent := makeNode("old", 4, 0)
	newParent := makeNode("new", 1, 0)
	n := newNode("n", 5, 3, oldParent)

	rec := &relaxRecorder{}
	updated := n.relax(2, newParent, f, rec.callback)

	require.True(t, updated)
	assert.Equal(t, 2, n.G())
	assert.Same(t, newParent, n.Parent())
	assert.Equal(t, []string{"n"}, rec.states)
	assert.Equal(t, []int{5}, rec.oldG)
}

// Test that equal or worse offers are rejected without side effects.
func TestNodeRelax_RejectsEqualAndWorse(t *testing.T) {
	f := newFrontier[string]()
	parent := makeNode("p", 2, 0)
	other := makeNode("other", 0, 0)
	n := newNode("n", 3, 1, parent)

	rec := &relaxRecorder{}
	assert.False(t, n.relax(3, other, f, rec.callback))
	assert.False(t, n.relax(7, other, f, rec.callback))

	assert.Equal(t, 3, n.G())
	assert.Same(t, parent, n.Parent())
	assert.Empty(t, rec.states)
}

// Test that an open node's frontier entry is re-keyed to the new priority.
func TestNodeRelax_ReKeysOpenNode(t *testing.T) {
	f := newFrontier[string]()
	blocker := makeNode("blocker", 0, 4)
	n := newNode("n", 5, 1, nil)

	f.push(blocker, blocker.F())
	f.push(n, n.F())

	// At f=6 the node sits behind the blocker; the cheaper path (g=2,
	// f=3) must move it in front.
	updated := n.relax(2, blocker, f, nil)
	require.True(t, updated)

	assert.Same(t, n, f.pop())
	assert.Same(t, blocker, f.pop())
}

// Test that relaxing an expanded node skips the re-key but still
// updates cost, parent, and children.
func TestNodeRelax_ExpandedNodeSkipsReKey(t *testing.T) {
	f := newFrontier[string]()
	newParent := makeNode("new", 0, 0)
	n := newNode("n", 4, 1, nil)
	child := newNode("c", 5, 0, n)
	n.addChild(child)

	rec := &relaxRecorder{}
	updated := n.relax(1, newParent, f, rec.callback)

	require.True(t, updated)
	assert.Equal(t, 1, n.G())
	assert.Equal(t, 2, child.G())
	assert.False(t, f.contains(n))
	assert.Equal(t, []string{"n", "c"}, rec.states)
	assert.Equal(t, []int{4, 5}, rec.oldG)
}

// Test that improvements cascade through a chain of children with the
// uniform per-move increment.
func TestNodeRelax_CascadeChain(t *testing.T) {
	f := newFrontier[string]()
	n1 := newNode("n1", 5, 0, nil)
	n2 := newNode("n2", 6, 0, n1)
	n3 := newNode("n3", 7, 0, n2)
	n1.addChild(n2)
	n2.addChild(n3)

	rec := &relaxRecorder{}
	require.True(t, n1.relax(2, nil, f, rec.callback))

	assert.Equal(t, 2, n1.G())
	assert.Equal(t, 3, n2.G())
	assert.Equal(t, 4, n3.G())
	assert.Equal(t, []string{"n1", "n2", "n3"}, rec.states)
	assert.Equal(t, []int{5, 6, 7}, rec.oldG)
}

// Test that the cascade stops at a child that already has a path at
// least as cheap.
func TestNodeRelax_CascadeStopsAtCheaperChild(t *testing.T) {
	f := newFrontier[string]()
	n1 := newNode("n1", 5, 0, nil)
	cheap := newNode("cheap", 3, 0, nil)
	grandchild := newNode("g", 4, 0, cheap)
	n1.addChild(cheap)
	cheap.addChild(grandchild)

	rec := &relaxRecorder{}
	require.True(t, n1.relax(2, nil, f, rec.callback))

	// cheap was offered 3, its current cost; nothing beyond n1 changes.
	assert.Equal(t, 3, cheap.G())
	assert.Equal(t, 4, grandchild.G())
	assert.Equal(t, []string{"n1"}, rec.states)
}

// Test that the parent link moves to the node that offered the cheaper
// path during a cascade.
func TestNodeRelax_CascadeReassignsParents(t *testing.T) {
	f := newFrontier[string]()
	shortcut := makeNode("shortcut", 0, 0)
	n := newNode("n", 4, 0, nil)
	child := newNode("c", 5, 0, n)
	n.addChild(child)

	require.True(t, n.relax(1, shortcut, f, nil))

	assert.Same(t, shortcut, n.Parent())
	assert.Same(t, n, child.Parent())
}

func TestNodeRelax_NilCallback(t *testing.T) {
	f := newFrontier[string]()
	n := newNode("n", 4, 0, nil)

	assert.True(t, n.relax(2, nil, f, nil))
	assert.Equal(t, 2, n.G())
}
