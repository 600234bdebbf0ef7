// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/oxbowlabs/wayfind/services/solver"
	"github.com/oxbowlabs/wayfind/services/solver/config"
	"github.com/oxbowlabs/wayfind/services/solver/telemetry"
	"github.com/spf13/cobra"
)

var (
	servePort   int
	configPath  string
	debugRoutes bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the solver HTTP API",
		Long: `Serve starts the solver API:

  POST /v1/solver/solve   run or retrieve a solve
  GET  /v1/solver/stats   solve cache statistics
  GET  /v1/solver/health  liveness probe
  GET  /v1/solver/ready   readiness probe
  GET  /metrics           Prometheus metrics`,
		Args: cobra.NoArgs,
		RunE: runServeCommand,
	}
)

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (overrides config)")
	serveCmd.Flags().StringVar(&configPath, "config", "", "config file path (default: WAYFIND_CONFIG or built-ins)")
	serveCmd.Flags().BoolVar(&debugRoutes, "debug", false, "enable gin debug mode and request logging")
}

func runServeCommand(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if servePort > 0 {
		cfg.Server.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdown, err := telemetry.Init(ctx, telemetry.DefaultConfig())
	if err != nil {
		return fmt.Errorf("init telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slog.Warn("telemetry shutdown", "error", err.Error())
		}
	}()

	service := solver.NewService(solver.Config{
		CacheCapacity: cfg.Solver.CacheCapacity,
		SolveTimeout:  cfg.Solver.SolveTimeout(),
		MaxExpansions: cfg.Solver.MaxExpansions,
		MaxGenerated:  cfg.Solver.MaxGenerated,
	})
	if err := service.Warmup(ctx); err != nil {
		return fmt.Errorf("warmup: %w", err)
	}

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: buildRouter(service),
	}

	errs := make(chan error, 1)
	go func() {
		slog.Info("solver API listening", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
		}
	}()

	select {
	case err := <-errs:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	slog.Info("shutting down", "grace", cfg.Server.ShutdownGrace().String())
	graceCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownGrace())
	defer cancel()
	if err := server.Shutdown(graceCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// buildRouter assembles the gin router with the solver API and the
// metrics endpoint.
func buildRouter(service *solver.Service) *gin.Engine {
	if debugRoutes {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(telemetry.Middleware("wayfind.http"))
	if debugRoutes {
		router.Use(gin.Logger())
	}

	v1 := router.Group("/v1")
	solver.RegisterRoutes(v1, solver.NewHandlers(service))
	router.GET("/metrics", gin.WrapH(telemetry.MetricsHandler()))
	return router
}
