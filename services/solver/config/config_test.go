// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// clearEnv blanks every override so tests see only their own values.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"WAYFIND_CONFIG",
		"WAYFIND_HOST",
		"WAYFIND_PORT",
		"WAYFIND_SHUTDOWN_GRACE_MS",
		"WAYFIND_SOLVE_TIMEOUT_MS",
		"WAYFIND_MAX_EXPANSIONS",
		"WAYFIND_MAX_GENERATED",
		"WAYFIND_CACHE_CAPACITY",
	} {
		t.Setenv(key, "")
	}
}

// writeConfig drops a YAML file into a temp dir and returns its path.
func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "wayfind.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Server.Host != DefaultHost {
		t.Errorf("Host = %q, expected %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, expected %d", cfg.Server.Port, DefaultPort)
	}
	if cfg.Solver.SolveTimeoutMS != DefaultSolveTimeoutMS {
		t.Errorf("SolveTimeoutMS = %d, expected %d", cfg.Solver.SolveTimeoutMS, DefaultSolveTimeoutMS)
	}
	if cfg.Solver.CacheCapacity != DefaultCacheCapacity {
		t.Errorf("CacheCapacity = %d, expected %d", cfg.Solver.CacheCapacity, DefaultCacheCapacity)
	}
}

func TestLoad_DefaultsWithoutFile(t *testing.T) {
	clearEnv(t)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, expected defaults", cfg)
	}
}

func TestLoad_FileMergesOverDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 9999\nsolver:\n  max_expansions: 500\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 9999 {
		t.Errorf("Port = %d, expected 9999", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Host = %q, expected the default to survive a partial file", cfg.Server.Host)
	}
	if cfg.Solver.MaxExpansions != 500 {
		t.Errorf("MaxExpansions = %d, expected 500", cfg.Solver.MaxExpansions)
	}
}

func TestLoad_FileFromEnvVar(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 7777\n")
	t.Setenv("WAYFIND_CONFIG", path)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 7777 {
		t.Errorf("Port = %d, expected 7777 from WAYFIND_CONFIG file", cfg.Server.Port)
	}
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  listen_port: 9999\n")

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted an unknown key")
	}
}

func TestLoad_EmptyFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Load() = %+v, expected defaults for an empty file", cfg)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)

	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("Load() accepted a missing file")
	}
}

func TestLoad_OversizedFileRejected(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "big.yaml")
	if err := os.WriteFile(path, make([]byte, MaxConfigFileSize+1), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() accepted an oversized file")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAYFIND_HOST", "127.0.0.1")
	t.Setenv("WAYFIND_PORT", "9090")
	t.Setenv("WAYFIND_CACHE_CAPACITY", "4")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Host = %q, expected env override", cfg.Server.Host)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, expected 9090", cfg.Server.Port)
	}
	if cfg.Solver.CacheCapacity != 4 {
		t.Errorf("CacheCapacity = %d, expected 4", cfg.Solver.CacheCapacity)
	}
}

func TestLoad_EnvOverridesBeatFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, "server:\n  port: 9999\n")
	t.Setenv("WAYFIND_PORT", "6060")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 6060 {
		t.Errorf("Port = %d, expected the env override to win", cfg.Server.Port)
	}
}

func TestLoad_NonNumericEnvIgnored(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAYFIND_PORT", "not-a-port")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != DefaultPort {
		t.Errorf("Port = %d, expected the default after a bad override", cfg.Server.Port)
	}
}

func TestLoad_PortOutOfRange(t *testing.T) {
	clearEnv(t)
	t.Setenv("WAYFIND_PORT", "99999")

	_, err := Load("")
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Load() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate_NegativeBudgets(t *testing.T) {
	cfg := Default()
	cfg.Solver.MaxExpansions = -1
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
	}

	cfg = Default()
	cfg.Solver.MaxGenerated = -5
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Validate() error = %v, expected ErrInvalidConfig", err)
	}
}

func TestValidate_FillsZeroValues(t *testing.T) {
	var cfg Config
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if cfg != Default() {
		t.Errorf("Validate() left %+v, expected defaults", cfg)
	}
}

func TestServerConfig_Addr(t *testing.T) {
	cfg := ServerConfig{Host: "localhost", Port: 8080}
	if addr := cfg.Addr(); addr != "localhost:8080" {
		t.Errorf("Addr() = %q, expected %q", addr, "localhost:8080")
	}
}

func TestDurationAccessors(t *testing.T) {
	server := ServerConfig{ShutdownGraceMS: 1500}
	if server.ShutdownGrace() != 1500*time.Millisecond {
		t.Errorf("ShutdownGrace() = %s, expected 1.5s", server.ShutdownGrace())
	}

	solver := SolverConfig{SolveTimeoutMS: 250}
	if solver.SolveTimeout() != 250*time.Millisecond {
		t.Errorf("SolveTimeout() = %s, expected 250ms", solver.SolveTimeout())
	}
}
