// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"context"

	"golang.org/x/sync/singleflight"

	"github.com/oxbowlabs/wayfind/services/solver/river"
)

// solveCache stores solve results by start state and collapses
// concurrent solves for the same start into a single engine run.
//
// Only default-budget, untraced solves go through the cache; the
// Service routes everything else around it. Failed solves are never
// stored, so a transient error does not poison the key.
type solveCache struct {
	lru    *LRUCache[river.State, *SolveResponse]
	flight singleflight.Group
}

func newSolveCache(capacity int) *solveCache {
	return &solveCache{
		lru: NewLRUCache[river.State, *SolveResponse](capacity),
	}
}

// getOrSolve returns the cached response for start, running solve once
// on a miss. The bool reports whether the response was served from the
// cache or shared with a concurrent identical request.
//
// Sharers inherit the leader's run: if the leading request's context
// is canceled mid-solve, every waiter receives the cancellation error.
func (c *solveCache) getOrSolve(ctx context.Context, start river.State, solve func(context.Context) (*SolveResponse, error)) (*SolveResponse, bool, error) {
	if resp, ok := c.lru.Get(start); ok {
		return resp, true, nil
	}

	v, err, shared := c.flight.Do(start.String(), func() (any, error) {
		// Re-check under the flight: a solve that completed between
		// the miss above and this call has already populated the LRU.
		if resp, ok := c.lru.Get(start); ok {
			return resp, nil
		}

		resp, err := solve(ctx)
		if err != nil {
			return nil, err
		}
		c.lru.Set(start, resp)
		return resp, nil
	})
	if err != nil {
		return nil, false, err
	}
	return v.(*SolveResponse), shared, nil
}
