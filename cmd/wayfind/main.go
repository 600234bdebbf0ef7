// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Command wayfind solves the farmer/wolf/duck/corn river crossing
// puzzle with an informed graph search, either once from the command
// line or as an HTTP service.
//
// Usage:
//
//	wayfind solve
//	wayfind solve --duck left --trace=false
//	wayfind serve --port 9090
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/oxbowlabs/wayfind/pkg/logging"
	"github.com/oxbowlabs/wayfind/pkg/ux"
	"github.com/spf13/cobra"
)

// Version is stamped into --version output; overridden at release
// time via -ldflags.
var Version = "0.1.0"

var (
	logLevel string
	logJSON  bool
	quiet    bool
	logger   *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "wayfind",
	Short: "A* solver for the river crossing puzzle",
	Long: `Wayfind runs an informed graph search (A*) over the classic
farmer/wolf/duck/corn river crossing puzzle: move everyone across the
river, two at a time, without ever leaving wolf+duck or duck+corn
unsupervised.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, err := logging.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("--log-level %q: %w", logLevel, err)
		}
		logger = logging.New(logging.Config{
			Level:   level,
			Service: "wayfind",
			JSON:    logJSON,
			Quiet:   quiet,
		})
		slog.SetDefault(logger.Slog())
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			logger.Close()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "minimum log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logJSON, "log-json", false, "emit logs as JSON")
	rootCmd.PersistentFlags().BoolVar(&quiet, "quiet", false, "suppress log output on stderr")

	rootCmd.AddCommand(solveCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		// The exhausted banner has already been rendered; anything
		// else is a real error the user has not seen yet.
		if !errors.Is(err, errExhausted) {
			ux.Error(err.Error())
		}
		os.Exit(1)
	}
}
