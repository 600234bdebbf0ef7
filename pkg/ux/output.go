// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

// Package ux provides terminal output styling for the wayfind CLI.
//
// Styling degrades automatically: when stdout is not a terminal (piped
// output, CI) every helper emits plain text, so trace output stays
// grep-able. SetPlain forces either mode.
package ux

import (
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Wayfind color palette - river greens and slate banks
var (
	// Primary palette (brightest to darkest)
	ColorRiverBright = lipgloss.Color("#3DDC97") // Bright river green - highlights, success
	ColorRiverDeep   = lipgloss.Color("#2BA878") // Deep river green - primary accents
	ColorReed        = lipgloss.Color("#7FB069") // Reed green - secondary elements
	ColorBankSlate   = lipgloss.Color("#5C6B73") // Slate bank - muted text, borders
	ColorSilt        = lipgloss.Color("#3A4750") // Silt - darker muted text

	// Semantic colors
	ColorSuccess = lipgloss.Color("#3DDC97")
	ColorWarning = lipgloss.Color("#F4D03F")
	ColorError   = lipgloss.Color("#E74C3C")
)

// Styles provides pre-configured lipgloss styles
var Styles = struct {
	Title     lipgloss.Style
	Bold      lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Highlight lipgloss.Style
	State     lipgloss.Style
}{
	Title:     lipgloss.NewStyle().Bold(true).Foreground(ColorRiverBright),
	Bold:      lipgloss.NewStyle().Bold(true),
	Muted:     lipgloss.NewStyle().Foreground(ColorBankSlate),
	Success:   lipgloss.NewStyle().Foreground(ColorSuccess),
	Warning:   lipgloss.NewStyle().Foreground(ColorWarning),
	Error:     lipgloss.NewStyle().Foreground(ColorError),
	Highlight: lipgloss.NewStyle().Foreground(ColorRiverBright).Bold(true),
	State:     lipgloss.NewStyle().Foreground(ColorReed),
}

var (
	plainMode   bool
	plainModeMu sync.RWMutex
	plainOnce   sync.Once
)

// Plain reports whether styling is currently disabled.
//
// The first call decides the default from the environment: styling is
// off when stdout is not a terminal or NO_COLOR is set.
func Plain() bool {
	plainOnce.Do(func() {
		plainModeMu.Lock()
		defer plainModeMu.Unlock()
		if _, noColor := os.LookupEnv("NO_COLOR"); noColor {
			plainMode = true
			return
		}
		fd := os.Stdout.Fd()
		plainMode = !isatty.IsTerminal(fd) && !isatty.IsCygwinTerminal(fd)
	})
	plainModeMu.RLock()
	defer plainModeMu.RUnlock()
	return plainMode
}

// SetPlain overrides terminal detection (e.g. for a --no-color flag).
func SetPlain(plain bool) {
	plainOnce.Do(func() {})
	plainModeMu.Lock()
	plainMode = plain
	plainModeMu.Unlock()
}

// render applies style unless plain mode is active.
func render(style lipgloss.Style, text string) string {
	if Plain() {
		return text
	}
	return style.Render(text)
}

// Title prints a styled title line.
func Title(text string) {
	fmt.Println(render(Styles.Title, text))
}

// Success prints a success message with checkmark.
func Success(text string) {
	if Plain() {
		fmt.Printf("OK: %s\n", text)
		return
	}
	fmt.Printf("%s %s\n", Styles.Success.Render("✓"), Styles.Success.Render(text))
}

// Warning prints a warning message to stderr.
func Warning(text string) {
	if Plain() {
		fmt.Fprintf(os.Stderr, "WARN: %s\n", text)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", Styles.Warning.Render("⚠"), Styles.Warning.Render(text))
}

// Error prints an error message to stderr.
func Error(text string) {
	if Plain() {
		fmt.Fprintf(os.Stderr, "ERROR: %s\n", text)
		return
	}
	fmt.Fprintf(os.Stderr, "%s %s\n", Styles.Error.Render("✗"), Styles.Error.Render(text))
}

// Muted prints secondary text.
func Muted(text string) {
	fmt.Println(render(Styles.Muted, text))
}
