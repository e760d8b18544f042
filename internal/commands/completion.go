// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import "strings"

// =============================================================================
// COMPLETER
// =============================================================================

// Completer produces ordered tab-completion candidates over a registry.
// Candidates is a pure function of its inputs and the (immutable)
// namespace map, re-evaluated from scratch on every query; stateful
// line-editing protocols are handled by adapters, not here.
type Completer struct {
	reg  *Registry
	sess *Session
}

// NewCompleter creates a completer over reg. The session supplies the
// current namespace that relative resolution starts from; nil means
// completion always starts at the root.
func NewCompleter(reg *Registry, sess *Session) *Completer {
	return &Completer{reg: reg, sess: sess}
}

// Candidates returns the completion candidates for the partial token
// being edited, given the whole line buffer.
//
// The line is resolved through the namespace resolver to find the
// namespace in effect, then candidates are gathered in a fixed order:
// the root name (only when completing the first word), the immediate
// sub-namespace segments, and the command names visible there when
// non-namespace tokens remain. Duplicates are removed, order is stable
// for a fixed registry and input.
func (c *Completer) Candidates(partial, line string) []string {
	if c.reg == nil || c.reg.Len() == 0 {
		return nil
	}

	var current *Descriptor
	if c.sess != nil {
		current = c.sess.Current()
	}
	target, rest := c.reg.Resolve(Tokenize(strings.TrimSpace(line)), current)

	var out []string
	seen := make(map[string]bool)
	add := func(cand string) {
		if !seen[cand] {
			seen[cand] = true
			out = append(out, cand)
		}
	}

	// The root name is offered only at the very start of the line.
	if atLineStart(partial, line) && strings.HasPrefix(RootName, partial) {
		add(RootName)
	}

	for _, seg := range c.reg.Children(target.Path) {
		if strings.HasPrefix(seg, partial) {
			add(seg)
		}
	}

	if len(rest) > 0 {
		for _, name := range target.commandNames() {
			if strings.HasPrefix(name, partial) {
				add(name)
			}
		}
		// Past the command name, ask the operation for argument hints.
		if len(rest) >= 2 {
			if op := target.resolveOp(rest[0]); op != nil && op.Complete != nil {
				for _, hint := range op.Complete(partial) {
					if strings.HasPrefix(hint, partial) {
						add(hint)
					}
				}
			}
		}
	}

	return out
}

// atLineStart reports whether the partial token is the first word of
// the line, i.e. nothing but whitespace precedes it.
func atLineStart(partial, line string) bool {
	return strings.TrimSpace(strings.TrimSuffix(line, partial)) == ""
}
