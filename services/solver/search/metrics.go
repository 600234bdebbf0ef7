// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package search

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// Package-level tracer and meter for search operations.
var (
	tracer = otel.Tracer("wayfind.search")
	meter  = otel.Meter("wayfind.search")
)

// Metrics for search runs.
var (
	searchLatency   metric.Float64Histogram
	searchTotal     metric.Int64Counter
	nodesExpanded   metric.Int64Histogram
	nodesGenerated  metric.Int64Histogram
	costRelaxations metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		searchLatency, err = meter.Float64Histogram(
			"search_duration_seconds",
			metric.WithDescription("Duration of search runs"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		searchTotal, err = meter.Int64Counter(
			"search_total",
			metric.WithDescription("Total number of search runs"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesExpanded, err = meter.Int64Histogram(
			"search_nodes_expanded",
			metric.WithDescription("Number of nodes expanded per search"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		nodesGenerated, err = meter.Int64Histogram(
			"search_nodes_generated",
			metric.WithDescription("Number of states generated per search"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		costRelaxations, err = meter.Int64Histogram(
			"search_cost_relaxations",
			metric.WithDescription("Number of cost relaxations applied per search"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}

// recordSearchMetrics records metrics for a completed search.
func recordSearchMetrics(ctx context.Context, duration time.Duration, expanded, generated, relaxed int, outcome string) {
	if err := initMetrics(); err != nil {
		return
	}

	attrs := metric.WithAttributes(attribute.String("outcome", outcome))

	searchLatency.Record(ctx, duration.Seconds(), attrs)
	searchTotal.Add(ctx, 1, attrs)
	nodesExpanded.Record(ctx, int64(expanded))
	nodesGenerated.Record(ctx, int64(generated))
	costRelaxations.Record(ctx, int64(relaxed))
}

// startSearchSpan creates a span for a search run.
func startSearchSpan(ctx context.Context, startState string) (context.Context, trace.Span) {
	return tracer.Start(ctx, "Engine.Run",
		trace.WithAttributes(
			attribute.String("search.start_state", startState),
		),
	)
}

// setSearchSpanResult sets the result attributes on a search span.
func setSearchSpanResult(span trace.Span, outcome string, moves, expanded, generated int) {
	span.SetAttributes(
		attribute.String("search.outcome", outcome),
		attribute.Int("search.moves", moves),
		attribute.Int("search.nodes_expanded", expanded),
		attribute.Int("search.nodes_generated", generated),
	)
}
