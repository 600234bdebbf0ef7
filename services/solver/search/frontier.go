// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import (
	"container/heap"
	"sort"
)

// frontierEntry is one open node in the frontier heap.
//
// seq is a monotonically increasing insertion stamp: entries with equal
// priority pop in insertion order. Re-keying an entry assigns a fresh
// stamp, so a re-keyed node behaves as if removed and re-inserted.
type frontierEntry[S comparable] struct {
	node     *Node[S]
	priority int
	seq      uint64
	index    int
}

// entryHeap implements heap.Interface over frontier entries, ordered by
// (priority, seq) ascending. Swap keeps each entry's index current so
// the frontier can re-key entries in place with heap.Fix.
type entryHeap[S comparable] []*frontierEntry[S]

func (h entryHeap[S]) Len() int { return len(h) }

func (h entryHeap[S]) Less(i, j int) bool {
	if h[i].priority != h[j].priority {
		return h[i].priority < h[j].priority
	}
	return h[i].seq < h[j].seq
}

func (h entryHeap[S]) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *entryHeap[S]) Push(x any) {
	entry := x.(*frontierEntry[S])
	entry.index = len(*h)
	*h = append(*h, entry)
}

func (h *entryHeap[S]) Pop() any {
	old := *h
	n := len(old)
	entry := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return entry
}

// frontier is the set of generated-but-unexpanded nodes, ordered by
// priority (lowest first, ties by insertion order).
//
// An identity map from node to entry backs O(1) membership tests and
// O(log n) re-keying. Each node holds at most one entry; pushing a node
// that is already open is a driver bug and panics.
type frontier[S comparable] struct {
	heap    entryHeap[S]
	entries map[*Node[S]]*frontierEntry[S]
	nextSeq uint64
}

// newFrontier creates an empty frontier.
func newFrontier[S comparable]() *frontier[S] {
	return &frontier[S]{
		heap:    make(entryHeap[S], 0),
		entries: make(map[*Node[S]]*frontierEntry[S]),
	}
}

// len returns the number of open nodes.
func (f *frontier[S]) len() int { return len(f.heap) }

// empty reports whether no open nodes remain.
func (f *frontier[S]) empty() bool { return len(f.heap) == 0 }

// contains reports whether the node is currently open.
func (f *frontier[S]) contains(n *Node[S]) bool {
	_, ok := f.entries[n]
	return ok
}

// push opens a node at the given priority.
func (f *frontier[S]) push(n *Node[S], priority int) {
	if _, ok := f.entries[n]; ok {
		panic("search: node pushed to frontier twice")
	}
	entry := &frontierEntry[S]{
		node:     n,
		priority: priority,
		seq:      f.nextSeq,
	}
	f.nextSeq++
	f.entries[n] = entry
	heap.Push(&f.heap, entry)
}

// pop removes and returns the open node with the lowest priority,
// breaking ties by insertion order. Popping an empty frontier is a
// driver bug and panics.
func (f *frontier[S]) pop() *Node[S] {
	if len(f.heap) == 0 {
		panic("search: pop on empty frontier")
	}
	entry := heap.Pop(&f.heap).(*frontierEntry[S])
	delete(f.entries, entry.node)
	return entry.node
}

// update re-keys the node's entry to a new priority, as if the entry
// were removed and re-inserted. Returns false without effect when the
// node is not open.
func (f *frontier[S]) update(n *Node[S], priority int) bool {
	entry, ok := f.entries[n]
	if !ok {
		return false
	}
	entry.priority = priority
	entry.seq = f.nextSeq
	f.nextSeq++
	heap.Fix(&f.heap, entry.index)
	return true
}

// snapshot returns the open nodes in pop order without disturbing the
// heap. Used for trace events; cost is O(n log n), so callers should
// only snapshot when an observer is attached.
func (f *frontier[S]) snapshot() []*Node[S] {
	entries := make([]*frontierEntry[S], len(f.heap))
	copy(entries, f.heap)
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].priority != entries[j].priority {
			return entries[i].priority < entries[j].priority
		}
		return entries[i].seq < entries[j].seq
	})
	nodes := make([]*Node[S], len(entries))
	for i, entry := range entries {
		nodes[i] = entry.node
	}
	return nodes
}
