// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import "github.com/gin-gonic/gin"

// RegisterRoutes attaches the solver endpoints to a router group.
//
// Description:
//
//	Registers the solver API under the given group:
//
//	POST /solver/solve  - run or retrieve a solve
//	GET  /solver/stats  - solve cache statistics
//	GET  /solver/health - liveness probe
//	GET  /solver/ready  - readiness probe
//
// Inputs:
//
//	rg - Router group to attach to (typically /v1). Must not be nil.
//	handlers - Handler set from NewHandlers. Must not be nil.
func RegisterRoutes(rg *gin.RouterGroup, handlers *Handlers) {
	solverGroup := rg.Group("/solver")
	{
		solverGroup.POST("/solve", handlers.HandleSolve)
		solverGroup.GET("/stats", handlers.HandleStats)
		solverGroup.GET("/health", handlers.HandleHealth)
		solverGroup.GET("/ready", handlers.HandleReady)
	}
}
