// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the interactive terminal surface for nscmd.
package cli

import (
	"os"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// =============================================================================
// TERMINAL DETECTION
// =============================================================================

// IsTTY reports whether stdin is attached to a terminal.
func IsTTY() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// IsStdoutTTY reports whether stdout is attached to a terminal.
func IsStdoutTTY() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// ColorEnabled reports whether ANSI color should be emitted, honoring
// NO_COLOR and terminal capability.
func ColorEnabled(configColor bool) bool {
	if !configColor {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if !IsStdoutTTY() {
		return false
	}
	return termenv.ColorProfile() != termenv.Ascii
}

// TermWidth returns the terminal width in columns, or fallback when it
// cannot be determined.
func TermWidth(fallback int) int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return fallback
	}
	return w
}
