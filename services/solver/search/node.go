// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

// Node is one record of the search graph: a domain state plus the path
// bookkeeping the engine maintains around it.
//
// Nodes are created and owned by the engine's generated table. The state
// and heuristic are fixed at creation; the cost-to-reach only ever
// decreases, through relax. The parent link is the predecessor on the
// current best-known path and is reassigned whenever a cheaper path is
// found; child links record every node this one was offered as a parent
// for, so later cost improvements can propagate forward.
type Node[S comparable] struct {
	state    S
	g        int
	h        int
	parent   *Node[S]
	children []*Node[S]
}

// newNode creates a node for state reached from parent at cost g.
func newNode[S comparable](state S, g, h int, parent *Node[S]) *Node[S] {
	return &Node[S]{
		state:  state,
		g:      g,
		h:      h,
		parent: parent,
	}
}

// State returns the domain state this node wraps.
func (n *Node[S]) State() S { return n.state }

// G returns the cost of the cheapest known path from the start state to
// this node.
func (n *Node[S]) G() int { return n.g }

// H returns the heuristic estimate of the remaining cost from this node
// to a goal. Fixed at creation.
func (n *Node[S]) H() int { return n.h }

// F returns the node's priority, G()+H(): the estimated total cost of a
// cheapest path through this node.
func (n *Node[S]) F() int { return n.g + n.h }

// Parent returns the predecessor on the current best-known path, or nil
// for the start node.
func (n *Node[S]) Parent() *Node[S] { return n.parent }

// addChild records a node this one was offered as a parent for.
func (n *Node[S]) addChild(c *Node[S]) {
	n.children = append(n.children, c)
}

// relax offers the node a cheaper path.
//
// Description:
//
//	If newCost beats the current cost-to-reach, the node accepts the
//	improvement: cost and parent are updated, the node's frontier entry
//	(if still open) is re-keyed to newCost+H(), and every child is
//	recursively offered newCost+1 with this node as parent. The +1 is
//	the uniform per-move edge cost of this formulation.
//
//	A node that has already been expanded has no frontier entry; the
//	re-key is skipped but the cost update and child propagation still
//	occur, so descendants see the cheaper path immediately.
//
// Inputs:
//
//	newCost - Candidate cost-to-reach via newParent
//	newParent - Node to backtrack through on the candidate path
//	fr - Frontier to re-key when this node is still open
//	improved - Callback invoked once per node whose cost drops, with
//	           the prior cost; may be nil
//
// Outputs:
//
//	bool - True if the candidate path was cheaper and was applied
//
// The caller must never offer a cost chain that would cycle the parent
// links; the engine guarantees this by only offering costs derived from
// strictly cheaper predecessors.
func (n *Node[S]) relax(newCost int, newParent *Node[S], fr *frontier[S], improved func(n *Node[S], oldG int)) bool {
	if newCost >= n.g {
		return false
	}

	oldG := n.g
	fr.update(n, newCost+n.h)
	n.g = newCost
	n.parent = newParent

	if improved != nil {
		improved(n, oldG)
	}

	for _, c := range n.children {
		c.relax(newCost+1, n, fr, improved)
	}
	return true
}
