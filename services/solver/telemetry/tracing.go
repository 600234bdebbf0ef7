// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package telemetry

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// LoggerWithTrace returns a logger carrying the current trace and span
// IDs for log correlation.
//
// Description:
//
//	When the context holds a valid span, the returned logger adds
//	trace_id and span_id attributes to every record. Without a span
//	the original logger is returned unchanged, so call sites do not
//	need to branch.
//
// Inputs:
//
//	ctx - Context potentially carrying a span. May be nil.
//	logger - Base logger. Must not be nil.
//
// Example:
//
//	telemetry.LoggerWithTrace(ctx, slog.Default()).Info("solve finished")
//
// Thread Safety: Safe for concurrent use.
func LoggerWithTrace(ctx context.Context, logger *slog.Logger) *slog.Logger {
	sc := trace.SpanFromContext(ctx).SpanContext()
	if !sc.IsValid() {
		return logger
	}
	return logger.With(
		"trace_id", sc.TraceID().String(),
		"span_id", sc.SpanID().String(),
	)
}

// RecordError records an error on a span and marks the span failed.
//
// Inputs:
//
//	span - The span to record on. May be nil.
//	err - The error to record. May be nil.
//	attrs - Optional attributes recorded with the error event.
//
// Thread Safety: Safe for concurrent use.
func RecordError(span trace.Span, err error, attrs ...attribute.KeyValue) {
	if span == nil || err == nil {
		return
	}

	opts := make([]trace.EventOption, 0, 1)
	if len(attrs) > 0 {
		opts = append(opts, trace.WithAttributes(attrs...))
	}
	span.RecordError(err, opts...)
	span.SetStatus(codes.Error, err.Error())
}
