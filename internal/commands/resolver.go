// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

// Resolve determines which namespace a tokenized line addresses and
// which tokens are left over as command + arguments.
//
// The search is greedy longest-prefix in two passes:
//
//  1. Relative: grow a candidate path token by token under current;
//     the longest existing path wins. Growth stops at the first token
//     that does not extend a live path.
//  2. Absolute: only when the relative pass consumed zero tokens,
//     repeat the same growth from the root of the tree.
//
// When neither pass consumes a token the line stays in the current
// namespace and every token becomes dispatcher input. Relative-first
// ordering is what lets a local sub-namespace shadow an identically
// named one under the root.
func (r *Registry) Resolve(tokens []string, current *Descriptor) (*Descriptor, []string) {
	if current == nil {
		current = r.root
	}

	if d, rest, ok := r.grow(current.Path+PathDelim, tokens); ok {
		return d, rest
	}
	if d, rest, ok := r.grow("", tokens); ok {
		return d, rest
	}
	return current, tokens
}

// grow appends tokens to prefix one at a time, tracking the longest
// candidate that exists in the namespace map. ok is false when not even
// the first token matched.
func (r *Registry) grow(prefix string, tokens []string) (*Descriptor, []string, bool) {
	var (
		last      *Descriptor
		rest      []string
		candidate string
	)
	for i, tok := range tokens {
		if i == 0 {
			candidate = prefix + tok
		} else {
			candidate += PathDelim + tok
		}
		d, ok := r.byPath[candidate]
		if !ok {
			break
		}
		last = d
		rest = tokens[i+1:]
	}
	if last == nil {
		return nil, nil, false
	}
	return last, rest, true
}
