// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the interactive terminal surface for nscmd.
package cli

import (
	"math/rand"

	"github.com/charmbracelet/lipgloss"
)

// =============================================================================
// PALETTE
// =============================================================================

// Cyan - info text, namespace paths
var Cyan = lipgloss.AdaptiveColor{Light: "#0891B2", Dark: "#22D3EE"}

// Emerald - success output
var Emerald = lipgloss.AdaptiveColor{Light: "#059669", Dark: "#34D399"}

// Rose - errors, unknown commands
var Rose = lipgloss.AdaptiveColor{Light: "#E11D48", Dark: "#FB7185"}

// Slate - muted help text
var Slate = lipgloss.AdaptiveColor{Light: "#64748B", Dark: "#94A3B8"}

// =============================================================================
// STYLES
// =============================================================================

// Styles holds the rendered component styles for the interactive shell.
type Styles struct {
	Banner    lipgloss.Style
	Prompt    lipgloss.Style
	Namespace lipgloss.Style
	Error     lipgloss.Style
	Muted     lipgloss.Style

	glyph string
}

// promptColors is the classic 8-color ANSI range the prompt glyph is
// drawn from, one picked at random per session.
var promptColors = []string{"0", "1", "2", "3", "4", "5", "6", "7"}

// NewStyles builds the session styles. The banner and prompt color is
// chosen at random per session; when color is disabled all styles
// render plain. An empty glyph falls back to PromptGlyph.
func NewStyles(color bool, glyph string) Styles {
	if glyph == "" {
		glyph = PromptGlyph
	}
	if !color {
		return Styles{glyph: glyph}
	}

	accent := lipgloss.Color(promptColors[rand.Intn(len(promptColors))])
	bold := rand.Intn(2) == 1

	return Styles{
		Banner:    lipgloss.NewStyle().Foreground(accent).Bold(bold),
		Prompt:    lipgloss.NewStyle().Foreground(accent).Bold(bold),
		Namespace: lipgloss.NewStyle().Foreground(Cyan),
		Error:     lipgloss.NewStyle().Foreground(Rose),
		Muted:     lipgloss.NewStyle().Foreground(Slate),
		glyph:     glyph,
	}
}

// PromptGlyph is the default marker rendered at the start of each
// input line.
const PromptGlyph = "└─▪"

// Glyph returns the configured prompt marker.
func (s Styles) Glyph() string {
	if s.glyph == "" {
		return PromptGlyph
	}
	return s.glyph
}

// RenderPrompt renders the interactive prompt for the given namespace
// path, e.g. "\nmain.foo\n└─▪ ".
func (s Styles) RenderPrompt(namespace string) string {
	return "\n" + s.Namespace.Render(namespace) + "\n" + s.Prompt.Render(s.Glyph()) + " "
}
