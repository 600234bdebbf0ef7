// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"context"
	"testing"

	"github.com/oxbowlabs/wayfind/services/solver/search"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_SolveCanonical(t *testing.T) {
	service := NewService(DefaultConfig())

	resp, err := service.Solve(context.Background(), SolveRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp)

	assert.Equal(t, "solved", resp.Outcome)
	assert.Equal(t, 7, resp.Moves)
	assert.NotEmpty(t, resp.SolveID)
	assert.False(t, resp.Cached)
	assert.Nil(t, resp.Trace)

	require.Len(t, resp.Path, 8)
	assert.Equal(t, "[||FWDC]", resp.Path[0].State)
	assert.Empty(t, resp.Path[0].Move)
	assert.Equal(t, "farmer+duck", resp.Path[1].Move)
	assert.Equal(t, "[FWDC||]", resp.Path[7].State)

	assert.Greater(t, resp.Stats.Expanded, 0)
	assert.Greater(t, resp.Stats.Generated, 0)
}

func TestService_SecondSolveIsCached(t *testing.T) {
	service := NewService(DefaultConfig())

	first, err := service.Solve(context.Background(), SolveRequest{})
	require.NoError(t, err)
	second, err := service.Solve(context.Background(), SolveRequest{})
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.Equal(t, first.Moves, second.Moves)
	assert.NotEqual(t, first.SolveID, second.SolveID, "cached responses get their own solve ID")

	stats := service.CacheStats()
	assert.GreaterOrEqual(t, stats.CacheHits, int64(1))
	assert.Equal(t, 1, stats.CachedSolves)
}

func TestService_InvalidStart(t *testing.T) {
	service := NewService(DefaultConfig())

	resp, err := service.Solve(context.Background(), SolveRequest{
		Start: &StartPosition{Farmer: "midstream"},
	})
	require.ErrorIs(t, err, ErrInvalidStart)
	assert.Nil(t, resp)
}

func TestService_NilContext(t *testing.T) {
	service := NewService(DefaultConfig())

	_, err := service.Solve(nil, SolveRequest{}) //nolint:staticcheck // nil guard under test
	require.ErrorIs(t, err, ErrNilContext)
}

func TestService_TraceBypassesCache(t *testing.T) {
	service := NewService(DefaultConfig())

	_, err := service.Solve(context.Background(), SolveRequest{})
	require.NoError(t, err)

	traced, err := service.Solve(context.Background(), SolveRequest{IncludeTrace: true})
	require.NoError(t, err)

	assert.False(t, traced.Cached, "traced solves run fresh")
	require.NotEmpty(t, traced.Trace)
	assert.Equal(t, "expand", traced.Trace[0].Kind)
	assert.Equal(t, "solved", traced.Trace[len(traced.Trace)-1].Kind)
	assert.Equal(t, 1, service.CacheStats().CachedSolves, "traced solve must not displace cache entries")
}

func TestService_CustomBudgetBypassesCacheAndFails(t *testing.T) {
	service := NewService(DefaultConfig())

	resp, err := service.Solve(context.Background(), SolveRequest{MaxExpansions: 1})
	require.ErrorIs(t, err, search.ErrBudgetExceeded)
	assert.Nil(t, resp)
	assert.Equal(t, 0, service.CacheStats().CachedSolves)
}

func TestService_UnsolvableStartExhausts(t *testing.T) {
	service := NewService(DefaultConfig())

	// Wolf and duck alone on the left leave no legal crossing.
	resp, err := service.Solve(context.Background(), SolveRequest{
		Start: &StartPosition{Wolf: "left", Duck: "left"},
	})
	require.NoError(t, err)

	assert.Equal(t, "exhausted", resp.Outcome)
	assert.Zero(t, resp.Moves)
	assert.Empty(t, resp.Path)
	assert.Equal(t, 1, resp.Stats.Expanded)
}

func TestService_StartAtGoal(t *testing.T) {
	service := NewService(DefaultConfig())

	resp, err := service.Solve(context.Background(), SolveRequest{
		Start: &StartPosition{Farmer: "left", Wolf: "left", Duck: "left", Corn: "left"},
	})
	require.NoError(t, err)

	assert.Equal(t, "solved", resp.Outcome)
	assert.Zero(t, resp.Moves)
	require.Len(t, resp.Path, 1)
	assert.Equal(t, "[FWDC||]", resp.Path[0].State)
}

func TestService_WarmupMarksReady(t *testing.T) {
	service := NewService(DefaultConfig())
	assert.False(t, service.Ready())

	require.NoError(t, service.Warmup(context.Background()))

	assert.True(t, service.Ready())
	assert.Equal(t, 1, service.CacheStats().CachedSolves)
}

func TestErrorReason(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{"invalid start", ErrInvalidStart, "invalid_start"},
		{"timeout", ErrSolveTimeout, "timeout"},
		{"budget", search.ErrBudgetExceeded, "budget"},
		{"canceled", context.Canceled, "canceled"},
		{"anything else", assert.AnError, "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, errorReason(tt.err))
		})
	}
}
