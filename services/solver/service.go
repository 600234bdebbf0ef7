// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/oxbowlabs/wayfind/services/solver/river"
	"github.com/oxbowlabs/wayfind/services/solver/search"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	// DefaultCacheCapacity sizes the solve result cache. The board has
	// sixteen distinct start positions, so the default caches every
	// possible solve.
	DefaultCacheCapacity = 16

	// DefaultSolveTimeout bounds a single engine run.
	DefaultSolveTimeout = 2 * time.Second
)

// =============================================================================
// Prometheus Metrics
// =============================================================================

var (
	solvesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfind_solves_total",
		Help: "Completed solves by outcome and cache disposition",
	}, []string{"outcome", "cache"})

	solveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "wayfind_solve_duration_seconds",
		Help:    "End to end solve latency including cache lookups",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.025, 0.1, 0.5},
	})

	solveErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "wayfind_solve_errors_total",
		Help: "Failed solves by reason",
	}, []string{"reason"})
)

// Config controls service behavior.
//
// The zero value is usable; NewService fills defaults for unset
// fields.
type Config struct {
	// CacheCapacity bounds the solve result cache. Zero or negative
	// uses DefaultCacheCapacity.
	CacheCapacity int

	// SolveTimeout bounds a single engine run. Zero or negative uses
	// DefaultSolveTimeout.
	SolveTimeout time.Duration

	// MaxExpansions is the expansion budget for solves that do not
	// carry their own. Zero uses the engine default.
	MaxExpansions int

	// MaxGenerated is the generation budget. Zero uses the engine
	// default.
	MaxGenerated int
}

// DefaultConfig returns the service defaults.
func DefaultConfig() Config {
	return Config{
		CacheCapacity: DefaultCacheCapacity,
		SolveTimeout:  DefaultSolveTimeout,
	}
}

// Service solves river crossing puzzles with caching and telemetry.
type Service struct {
	config Config
	cache  *solveCache
	logger *slog.Logger
	ready  atomic.Bool
}

// NewService creates a Service with the given configuration.
func NewService(config Config) *Service {
	if config.CacheCapacity <= 0 {
		config.CacheCapacity = DefaultCacheCapacity
	}
	if config.SolveTimeout <= 0 {
		config.SolveTimeout = DefaultSolveTimeout
	}
	return &Service{
		config: config,
		cache:  newSolveCache(config.CacheCapacity),
		logger: slog.Default().With("component", "solver"),
	}
}

// Solve runs or retrieves a solve for the requested start position.
//
// Description:
//
//	Validates the request, consults the result cache, and runs the
//	search engine on a miss. Traced solves and solves with a custom
//	expansion budget always run fresh and are never cached. Cached
//	responses are copies with a fresh SolveID and Cached set.
//
// Inputs:
//
//	ctx - Request context. Must not be nil. Cancellation aborts the
//	    search between expansions.
//	req - The solve request.
//
// Outputs:
//
//	*SolveResponse - The completed solve. Nil on error.
//	error - ErrInvalidStart, ErrSolveTimeout, search.ErrBudgetExceeded,
//	    or a context error.
func (s *Service) Solve(ctx context.Context, req SolveRequest) (*SolveResponse, error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	began := time.Now()

	start := river.Start()
	if req.Start != nil {
		parsed, err := req.Start.State()
		if err != nil {
			return s.finishSolve(began, start, nil, err, "none")
		}
		start = parsed
	}

	if req.IncludeTrace || req.MaxExpansions > 0 {
		resp, err := s.runSolve(ctx, start, req)
		return s.finishSolve(began, start, resp, err, "bypass")
	}

	resp, cached, err := s.cache.getOrSolve(ctx, start, func(ctx context.Context) (*SolveResponse, error) {
		return s.runSolve(ctx, start, req)
	})
	if err != nil {
		return s.finishSolve(began, start, nil, err, "miss")
	}
	if cached {
		copied := *resp
		copied.SolveID = uuid.NewString()
		copied.Cached = true
		return s.finishSolve(began, start, &copied, nil, "hit")
	}
	return s.finishSolve(began, start, resp, nil, "miss")
}

// Warmup primes the cache with the canonical solve and marks the
// service ready. Call once at startup; readiness doubles as an engine
// self-test.
func (s *Service) Warmup(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	resp, err := s.Solve(ctx, SolveRequest{})
	if err != nil {
		return fmt.Errorf("warmup solve: %w", err)
	}
	if resp.Outcome != search.OutcomeSolved.String() {
		return fmt.Errorf("warmup solve finished %s", resp.Outcome)
	}
	s.ready.Store(true)
	return nil
}

// Ready reports whether Warmup has completed.
func (s *Service) Ready() bool {
	return s.ready.Load()
}

// CacheStats reports solve cache counters for the stats endpoint.
func (s *Service) CacheStats() StatsResponse {
	hits, misses := s.cache.lru.Stats()
	return StatsResponse{
		CacheHits:      hits,
		CacheMisses:    misses,
		CacheEvictions: s.cache.lru.Evictions(),
		CachedSolves:   s.cache.lru.Len(),
	}
}

// runSolve executes one engine run and shapes the response.
func (s *Service) runSolve(ctx context.Context, start river.State, req SolveRequest) (*SolveResponse, error) {
	solveCtx, cancel := context.WithTimeout(ctx, s.config.SolveTimeout)
	defer cancel()

	maxExpansions := s.config.MaxExpansions
	if req.MaxExpansions > 0 {
		maxExpansions = req.MaxExpansions
	}
	options := []search.Option{
		search.WithMaxExpansions(maxExpansions),
		search.WithMaxGenerated(s.config.MaxGenerated),
	}

	var trace []TraceEvent
	if req.IncludeTrace {
		options = append(options, search.WithObserver(func(ev search.Event) {
			trace = append(trace, traceEventFromSearch(ev))
		}))
	}

	result, err := search.New[river.State](river.Domain{}, start, options...).Run(solveCtx)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, fmt.Errorf("solve aborted after %s: %w", s.config.SolveTimeout, ErrSolveTimeout)
		}
		return nil, err
	}

	return &SolveResponse{
		SolveID: uuid.NewString(),
		Outcome: result.Outcome.String(),
		Moves:   result.Moves,
		Path:    pathSteps(result),
		Stats: SolveStats{
			Expanded:   result.Expanded,
			Generated:  result.Generated,
			Relaxed:    result.Relaxed,
			DurationMS: result.Duration.Milliseconds(),
		},
		Trace: trace,
	}, nil
}

// finishSolve records solve metrics and a completion log line, then
// passes the result through.
func (s *Service) finishSolve(began time.Time, start river.State, resp *SolveResponse, err error, cache string) (*SolveResponse, error) {
	elapsed := time.Since(began)
	solveDuration.Observe(elapsed.Seconds())

	if err != nil {
		solvesTotal.WithLabelValues("error", cache).Inc()
		solveErrors.WithLabelValues(errorReason(err)).Inc()
		s.logger.Warn("solve failed",
			"start", start.String(),
			"cache", cache,
			"error", err.Error())
		return nil, err
	}

	solvesTotal.WithLabelValues(resp.Outcome, cache).Inc()
	s.logger.Info("solve finished",
		"solve_id", resp.SolveID,
		"start", start.String(),
		"outcome", resp.Outcome,
		"moves", resp.Moves,
		"cache", cache,
		"duration_ms", elapsed.Milliseconds())
	return resp, nil
}

// errorReason maps a solve error onto a metric label.
func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidStart):
		return "invalid_start"
	case errors.Is(err, ErrSolveTimeout):
		return "timeout"
	case errors.Is(err, search.ErrBudgetExceeded):
		return "budget"
	case errors.Is(err, context.Canceled):
		return "canceled"
	default:
		return "internal"
	}
}

// pathSteps renders the result path with the move that produced each
// state.
func pathSteps(result *search.Result[river.State]) []PathStep {
	if len(result.Path) == 0 {
		return nil
	}
	steps := make([]PathStep, len(result.Path))
	for i, state := range result.Path {
		step := PathStep{State: result.PathDisplay[i]}
		if i > 0 {
			if move, ok := river.MoveBetween(result.Path[i-1], state); ok {
				step.Move = move.String()
			}
		}
		steps[i] = step
	}
	return steps
}
