// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestLevel_String(t *testing.T) {
	tests := []struct {
		level Level
		want  string
	}{
		{LevelDebug, "debug"},
		{LevelInfo, "info"},
		{LevelWarn, "warn"},
		{LevelError, "error"},
		{Level(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.level.String(); got != tt.want {
			t.Errorf("Level(%d).String() = %q, want %q", tt.level, got, tt.want)
		}
	}
}

func TestLevel_toSlogLevel(t *testing.T) {
	tests := []struct {
		level Level
		want  slog.Level
	}{
		{LevelDebug, slog.LevelDebug},
		{LevelInfo, slog.LevelInfo},
		{LevelWarn, slog.LevelWarn},
		{LevelError, slog.LevelError},
	}
	for _, tt := range tests {
		if got := tt.level.toSlogLevel(); got != tt.want {
			t.Errorf("Level(%d).toSlogLevel() = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Level
		wantErr bool
	}{
		{name: "debug", input: "debug", want: LevelDebug},
		{name: "info", input: "info", want: LevelInfo},
		{name: "warn", input: "warn", want: LevelWarn},
		{name: "warning alias", input: "warning", want: LevelWarn},
		{name: "error", input: "error", want: LevelError},
		{name: "mixed case", input: "INFO", want: LevelInfo},
		{name: "padded", input: " debug ", want: LevelDebug},
		{name: "unknown", input: "verbose", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseLevel(%q) expected error", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseLevel(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew_ZeroConfig(t *testing.T) {
	logger := New(Config{})
	if logger == nil {
		t.Fatal("New returned nil")
	}
	if logger.file != nil {
		t.Error("zero config should not open a log file")
	}
	logger.Info("test message")
}

func TestNew_WithLogDir(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelDebug,
		LogDir:  dir,
		Service: "testsvc",
		Quiet:   true,
	})
	defer logger.Close()

	logger.Info("file output test", "key", "value")

	want := "testsvc_" + time.Now().Format("2006-01-02") + ".log"
	data, err := os.ReadFile(filepath.Join(dir, want))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}

	var record map[string]any
	line := strings.SplitN(strings.TrimSpace(string(data)), "\n", 2)[0]
	if err := json.Unmarshal([]byte(line), &record); err != nil {
		t.Fatalf("log file is not JSON: %v", err)
	}
	if record["msg"] != "file output test" {
		t.Errorf("msg = %v, want %q", record["msg"], "file output test")
	}
	if record["key"] != "value" {
		t.Errorf("key = %v, want %q", record["key"], "value")
	}
	if record["service"] != "testsvc" {
		t.Errorf("service = %v, want %q", record["service"], "testsvc")
	}
}

func TestNew_WithLogDir_NoService(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{LogDir: dir, Quiet: true})
	defer logger.Close()
	logger.Info("anonymous")

	files, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}

	found := false
	for _, f := range files {
		if strings.HasPrefix(f.Name(), "wayfind_") {
			found = true
		}
	}
	if !found {
		t.Error("expected log file with 'wayfind_' prefix")
	}
}

func TestNew_UnwritableLogDir(t *testing.T) {
	// Degrades to stderr-only rather than failing.
	logger := New(Config{LogDir: "/proc/does-not-exist/logs"})
	if logger.file != nil {
		t.Error("expected no file handle for unwritable directory")
	}
	logger.Info("still works")
}

func TestDefault(t *testing.T) {
	logger := Default()
	if logger == nil {
		t.Fatal("Default returned nil")
	}
	if logger.config.Service != "wayfind" {
		t.Errorf("Default service = %q, want %q", logger.config.Service, "wayfind")
	}
	if logger.config.Level != LevelInfo {
		t.Errorf("Default level = %v, want %v", logger.config.Level, LevelInfo)
	}
}

func TestLogger_LevelFiltering(t *testing.T) {
	dir := t.TempDir()

	logger := New(Config{
		Level:   LevelWarn,
		LogDir:  dir,
		Service: "filter",
		Quiet:   true,
	})
	defer logger.Close()

	logger.Debug("dropped debug")
	logger.Info("dropped info")
	logger.Warn("kept warn")
	logger.Error("kept error")

	data, err := os.ReadFile(filepath.Join(dir, "filter_"+time.Now().Format("2006-01-02")+".log"))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	content := string(data)
	if strings.Contains(content, "dropped") {
		t.Errorf("below-level records written: %s", content)
	}
	if !strings.Contains(content, "kept warn") || !strings.Contains(content, "kept error") {
		t.Errorf("at-level records missing: %s", content)
	}
}

func TestLogger_With(t *testing.T) {
	dir := t.TempDir()

	parent := New(Config{LogDir: dir, Service: "with", Quiet: true})
	defer parent.Close()

	child := parent.With("solve_id", "abc123")
	if child == parent {
		t.Fatal("With should return a new logger")
	}
	if child.file != parent.file {
		t.Error("child should share the parent's file handle")
	}

	child.Info("child record")

	data, err := os.ReadFile(filepath.Join(dir, "with_"+time.Now().Format("2006-01-02")+".log"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "abc123") {
		t.Errorf("child attribute missing: %s", data)
	}
}

func TestLogger_Slog(t *testing.T) {
	logger := Default()
	if logger.Slog() == nil {
		t.Fatal("Slog returned nil")
	}
}

func TestLogger_Close(t *testing.T) {
	t.Run("no file", func(t *testing.T) {
		logger := New(Config{})
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})

	t.Run("with file", func(t *testing.T) {
		logger := New(Config{LogDir: t.TempDir(), Service: "closer", Quiet: true})
		logger.Info("before close")
		if err := logger.Close(); err != nil {
			t.Errorf("Close() = %v, want nil", err)
		}
	})

	t.Run("double close", func(t *testing.T) {
		logger := New(Config{LogDir: t.TempDir(), Service: "closer", Quiet: true})
		if err := logger.Close(); err != nil {
			t.Fatal(err)
		}
		if err := logger.Close(); err != nil {
			t.Errorf("second Close() = %v, want nil", err)
		}
	})
}

func TestLogger_ConcurrentUse(t *testing.T) {
	logger := New(Config{LogDir: t.TempDir(), Service: "concurrent", Quiet: true})
	defer logger.Close()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 20; j++ {
				logger.Info("concurrent record", "goroutine", n, "iteration", j)
			}
		}(i)
	}
	wg.Wait()
}

func TestMultiHandler_Enabled(t *testing.T) {
	debug := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
	errOnly := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})

	h := &multiHandler{handlers: []slog.Handler{errOnly, debug}}
	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled should be true when any handler accepts the level")
	}

	strict := &multiHandler{handlers: []slog.Handler{errOnly}}
	if strict.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("Enabled should be false when no handler accepts the level")
	}
}

func TestMultiHandler_FanOut(t *testing.T) {
	var bufA, bufB strings.Builder

	h := &multiHandler{handlers: []slog.Handler{
		slog.NewJSONHandler(&bufA, nil),
		slog.NewJSONHandler(&bufB, nil),
	}}
	logger := slog.New(h.WithAttrs([]slog.Attr{slog.String("service", "fan")}))
	logger.Info("both destinations")

	for name, buf := range map[string]*strings.Builder{"a": &bufA, "b": &bufB} {
		if !strings.Contains(buf.String(), "both destinations") {
			t.Errorf("handler %s missing record: %s", name, buf.String())
		}
		if !strings.Contains(buf.String(), "fan") {
			t.Errorf("handler %s missing WithAttrs attribute: %s", name, buf.String())
		}
	}
}

func TestMultiHandler_WithGroup(t *testing.T) {
	var buf strings.Builder
	h := &multiHandler{handlers: []slog.Handler{slog.NewJSONHandler(&buf, nil)}}

	logger := slog.New(h.WithGroup("solve"))
	logger.Info("grouped", "id", "x")

	if !strings.Contains(buf.String(), "solve") {
		t.Errorf("group missing from output: %s", buf.String())
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/.wayfind/logs", filepath.Join(home, ".wayfind/logs")},
		{"/var/log/wayfind", "/var/log/wayfind"},
		{"relative/logs", "relative/logs"},
		{"~", home},
	}
	for _, tt := range tests {
		if got := expandPath(tt.input); got != tt.want {
			t.Errorf("expandPath(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
