// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/oxbowlabs/wayfind/services/solver/search"
	"github.com/oxbowlabs/wayfind/services/solver/telemetry"
	"go.opentelemetry.io/otel/trace"
)

// ServiceVersion is reported by the health endpoint.
const ServiceVersion = "0.1.0"

// Handlers bundles the HTTP handlers for the solver API.
type Handlers struct {
	service *Service
	logger  *slog.Logger
}

// NewHandlers creates the handler set for a service.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{
		service: service,
		logger:  slog.Default(),
	}
}

// getOrCreateRequestID returns the request ID from the X-Request-ID
// header, generating one if absent. The ID is echoed on the response
// so callers can correlate logs.
func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}

// HandleSolve handles POST /v1/solver/solve.
//
// Description:
//
//	Parses the solve request, delegates to the service, and maps
//	service errors onto HTTP statuses. An empty body solves the
//	canonical puzzle.
//
// Responses:
//
//	200 - SolveResponse
//	400 - malformed JSON or unknown bank name
//	422 - search budget exceeded
//	504 - solve timed out
func (h *Handlers) HandleSolve(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := telemetry.LoggerWithTrace(c.Request.Context(), h.logger).
		With("request_id", requestID, "handler", "HandleSolve")

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("invalid request body", "error", err.Error())
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body: " + err.Error(),
			Code:  "INVALID_REQUEST",
		})
		return
	}

	resp, err := h.service.Solve(c.Request.Context(), req)
	if err != nil {
		h.respondSolveError(c, logger, err)
		return
	}

	logger.Debug("solve served",
		"solve_id", resp.SolveID,
		"outcome", resp.Outcome,
		"cached", resp.Cached)
	c.JSON(http.StatusOK, resp)
}

// respondSolveError maps service errors onto HTTP statuses.
func (h *Handlers) respondSolveError(c *gin.Context, logger *slog.Logger, err error) {
	telemetry.RecordError(trace.SpanFromContext(c.Request.Context()), err)

	switch {
	case errors.Is(err, ErrInvalidStart):
		logger.Warn("rejected start position", "error", err.Error())
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_START",
		})
	case errors.Is(err, search.ErrBudgetExceeded):
		logger.Warn("solve exceeded budget", "error", err.Error())
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{
			Error: err.Error(),
			Code:  "BUDGET_EXCEEDED",
		})
	case errors.Is(err, ErrSolveTimeout):
		logger.Error("solve timed out", "error", err.Error())
		c.JSON(http.StatusGatewayTimeout, ErrorResponse{
			Error: err.Error(),
			Code:  "SOLVE_TIMEOUT",
		})
	default:
		logger.Error("solve failed", "error", err.Error())
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error: "internal error",
			Code:  "INTERNAL",
		})
	}
}

// HandleStats handles GET /v1/solver/stats.
func (h *Handlers) HandleStats(c *gin.Context) {
	getOrCreateRequestID(c)
	c.JSON(http.StatusOK, h.service.CacheStats())
}

// HandleHealth handles GET /v1/solver/health.
//
// Always returns 200 while the process is serving requests.
func (h *Handlers) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:  "healthy",
		Version: ServiceVersion,
	})
}

// HandleReady handles GET /v1/solver/ready.
//
// Returns 503 with a Retry-After header until Warmup completes.
func (h *Handlers) HandleReady(c *gin.Context) {
	if !h.service.Ready() {
		c.Header("Retry-After", "1")
		c.JSON(http.StatusServiceUnavailable, ReadyResponse{Ready: false})
		return
	}
	c.JSON(http.StatusOK, ReadyResponse{Ready: true})
}
