// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import "sort"

// =============================================================================
// OPERATION DEFINITION
// =============================================================================

// OpFunc executes an operation. The bool reports whether the string is
// real output: a command may succeed while producing nothing, which is
// distinct from the command not existing.
type OpFunc func(args []string) (string, bool)

// HelpFunc returns dynamic help text for an operation.
type HelpFunc func() string

// CompleteFunc returns completion hints for an operation's arguments.
type CompleteFunc func(partial string) []string

// Op is one named operation on a handler.
type Op struct {
	// Name is the command name users type (e.g. "helloworld")
	Name string

	// Run executes the operation
	Run OpFunc

	// Help optionally produces help text on demand
	Help HelpFunc

	// Doc is static fallback help, shown when Help is not set
	Doc string

	// Complete optionally provides argument completion hints
	Complete CompleteFunc
}

// =============================================================================
// HANDLER
// =============================================================================

// Handler is a unit of operations reachable at one namespace. Operations
// are registered explicitly by name; there is no reflective member
// lookup. Descendant namespaces inherit operations they do not declare
// themselves.
type Handler struct {
	ops map[string]*Op
}

// NewHandler creates an empty handler.
func NewHandler() *Handler {
	return &Handler{ops: make(map[string]*Op)}
}

// Register adds an operation, replacing any previous one with the same
// name. Returns the handler for chaining.
func (h *Handler) Register(op *Op) *Handler {
	if op != nil && op.Name != "" {
		h.ops[op.Name] = op
	}
	return h
}

// Op returns the operation registered under name, or nil.
func (h *Handler) Op(name string) *Op {
	return h.ops[name]
}

// Names returns the handler's own operation names, sorted.
func (h *Handler) Names() []string {
	names := make([]string, 0, len(h.ops))
	for name := range h.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Descriptor is a handler's position in the namespace tree. Descriptors
// are created during tree declaration and immutable once Build succeeds.
type Descriptor struct {
	// Name is this unit's own path segment ("main" for the root)
	Name string

	// Path is the full dot-joined namespace path, set by Build
	Path string

	parent  *Descriptor
	handler *Handler
}

// Parent returns the parent descriptor, or nil for the root.
func (d *Descriptor) Parent() *Descriptor {
	return d.parent
}

// Handler returns the handler instance mounted at this descriptor.
func (d *Descriptor) Handler() *Handler {
	return d.handler
}

// resolveOp finds the operation visible at this namespace: the
// descriptor's own handler first, then each ancestor up to the root.
func (d *Descriptor) resolveOp(name string) *Op {
	for cur := d; cur != nil; cur = cur.parent {
		if cur.handler == nil {
			continue
		}
		if op := cur.handler.Op(name); op != nil {
			return op
		}
	}
	return nil
}

// commandNames returns every operation name visible at this namespace,
// own and inherited, sorted and deduplicated.
func (d *Descriptor) commandNames() []string {
	seen := make(map[string]bool)
	for cur := d; cur != nil; cur = cur.parent {
		if cur.handler == nil {
			continue
		}
		for name := range cur.handler.ops {
			seen[name] = true
		}
	}
	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
