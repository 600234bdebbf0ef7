// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package config loads configuration for the wayfind daemon.
//
// Configuration merges three layers, later layers winning: built-in
// defaults, an optional YAML file, and WAYFIND_* environment
// variables. Durations are expressed in milliseconds so the YAML stays
// plain integers.
//
// Thread Safety:
//
//	Load returns a value; callers own the copy. Nothing in this
//	package mutates shared state after Load returns.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// MaxConfigFileSize is the maximum allowed config file size (1MB).
// Prevents memory issues from runaway files.
const MaxConfigFileSize = 1024 * 1024

// Defaults for the zero-value layers of Load.
const (
	DefaultHost            = "0.0.0.0"
	DefaultPort            = 8080
	DefaultShutdownGraceMS = 5000
	DefaultSolveTimeoutMS  = 2000
	DefaultCacheCapacity   = 16
)

// ErrInvalidConfig indicates a configuration value failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the root configuration for the daemon.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Solver SolverConfig `yaml:"solver"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	ShutdownGraceMS int    `yaml:"shutdown_grace_ms"`
}

// SolverConfig controls solve execution and caching.
type SolverConfig struct {
	SolveTimeoutMS int `yaml:"solve_timeout_ms"`
	MaxExpansions  int `yaml:"max_expansions"`
	MaxGenerated   int `yaml:"max_generated"`
	CacheCapacity  int `yaml:"cache_capacity"`
}

// Addr returns the host:port pair for the HTTP listener.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// ShutdownGrace returns the graceful shutdown window as a duration.
func (c ServerConfig) ShutdownGrace() time.Duration {
	return time.Duration(c.ShutdownGraceMS) * time.Millisecond
}

// SolveTimeout returns the per-solve time budget as a duration.
func (c SolverConfig) SolveTimeout() time.Duration {
	return time.Duration(c.SolveTimeoutMS) * time.Millisecond
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Host:            DefaultHost,
			Port:            DefaultPort,
			ShutdownGraceMS: DefaultShutdownGraceMS,
		},
		Solver: SolverConfig{
			SolveTimeoutMS: DefaultSolveTimeoutMS,
			CacheCapacity:  DefaultCacheCapacity,
		},
	}
}

// Load returns the effective daemon configuration.
//
// Description:
//
//	Starts from Default, merges the YAML file at path when given
//	(falling back to the WAYFIND_CONFIG environment variable), applies
//	WAYFIND_* environment overrides, and validates the result.
//
// Inputs:
//
//	path - Config file path. Empty means environment and defaults only.
//
// Outputs:
//
//	Config - The effective configuration.
//	error - Non-nil for unreadable files, malformed YAML, unknown
//	    keys, or out-of-range values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("WAYFIND_CONFIG")
	}
	if path != "" {
		if err := mergeFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile decodes the YAML file at path over cfg.
//
// Unknown keys are rejected so typos surface at startup instead of
// silently keeping defaults. An empty file keeps the defaults.
func mergeFile(cfg *Config, path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving config path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return fmt.Errorf("stat config file: %w", err)
	}
	if info.Size() > MaxConfigFileSize {
		return fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), MaxConfigFileSize)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("parsing config file %s: %w", absPath, err)
	}

	slog.Info("loaded config file", "path", absPath)
	return nil
}

// applyEnvOverrides merges WAYFIND_* environment variables over cfg.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("WAYFIND_HOST"); v != "" {
		cfg.Server.Host = v
	}
	setIntFromEnv("WAYFIND_PORT", &cfg.Server.Port)
	setIntFromEnv("WAYFIND_SHUTDOWN_GRACE_MS", &cfg.Server.ShutdownGraceMS)
	setIntFromEnv("WAYFIND_SOLVE_TIMEOUT_MS", &cfg.Solver.SolveTimeoutMS)
	setIntFromEnv("WAYFIND_MAX_EXPANSIONS", &cfg.Solver.MaxExpansions)
	setIntFromEnv("WAYFIND_MAX_GENERATED", &cfg.Solver.MaxGenerated)
	setIntFromEnv("WAYFIND_CACHE_CAPACITY", &cfg.Solver.CacheCapacity)
}

// setIntFromEnv overwrites dst when key holds a valid integer.
// Non-numeric values are logged and ignored rather than failing startup.
func setIntFromEnv(key string, dst *int) {
	v := os.Getenv(key)
	if v == "" {
		return
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("ignoring non-numeric environment override",
			"key", key,
			"value", v)
		return
	}
	*dst = n
}

// Validate checks ranges and fills zero values with defaults.
func (c *Config) Validate() error {
	if c.Server.Host == "" {
		c.Server.Host = DefaultHost
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: port %d out of range", ErrInvalidConfig, c.Server.Port)
	}
	if c.Server.ShutdownGraceMS <= 0 {
		c.Server.ShutdownGraceMS = DefaultShutdownGraceMS
	}

	if c.Solver.SolveTimeoutMS <= 0 {
		c.Solver.SolveTimeoutMS = DefaultSolveTimeoutMS
	}
	if c.Solver.MaxExpansions < 0 {
		return fmt.Errorf("%w: max_expansions must not be negative", ErrInvalidConfig)
	}
	if c.Solver.MaxGenerated < 0 {
		return fmt.Errorf("%w: max_generated must not be negative", ErrInvalidConfig)
	}
	if c.Solver.CacheCapacity <= 0 {
		c.Solver.CacheCapacity = DefaultCacheCapacity
	}
	return nil
}
