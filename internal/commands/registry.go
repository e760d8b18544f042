// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import (
	"fmt"
	"sort"
	"strings"
)

// =============================================================================
// DELIMITERS
// =============================================================================

const (
	// RootName is the fixed name of the root namespace.
	RootName = "main"

	// TokenDelim separates command-line tokens.
	TokenDelim = " "

	// PathDelim separates namespace path segments.
	PathDelim = "."
)

// =============================================================================
// CONFIGURATION ERROR
// =============================================================================

// ConfigurationError reports an invalid handler tree declaration. It is
// fatal: a registry that fails to build must not be used.
type ConfigurationError struct {
	Path   string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Path == "" {
		return "invalid namespace configuration: " + e.Reason
	}
	return fmt.Sprintf("invalid namespace configuration at %q: %s", e.Path, e.Reason)
}

// =============================================================================
// TREE DECLARATION
// =============================================================================

// Tree is a declared handler hierarchy. Each unit names itself and
// points at its parent explicitly; namespace paths are computed by
// walking those references when the tree is built.
type Tree struct {
	root  *Descriptor
	nodes []*Descriptor
}

// NewTree creates a tree whose root is named "main" and carries the
// given handler. A nil handler mounts an empty one.
func NewTree(rootHandler *Handler) *Tree {
	if rootHandler == nil {
		rootHandler = NewHandler()
	}
	root := &Descriptor{Name: RootName, handler: rootHandler}
	return &Tree{
		root:  root,
		nodes: []*Descriptor{root},
	}
}

// Root returns the root descriptor.
func (t *Tree) Root() *Descriptor {
	return t.root
}

// Namespace declares a child namespace under parent. A nil parent
// mounts under the root. A nil handler mounts an empty handler, which
// still inherits every ancestor operation.
func (t *Tree) Namespace(parent *Descriptor, name string, h *Handler) *Descriptor {
	if parent == nil {
		parent = t.root
	}
	if h == nil {
		h = NewHandler()
	}
	d := &Descriptor{Name: name, parent: parent, handler: h}
	t.nodes = append(t.nodes, d)
	return d
}

// Build computes every namespace path and freezes the tree into a
// Registry. It fails with a ConfigurationError when a non-root unit has
// no name or two units resolve to the same path.
func (t *Tree) Build() (*Registry, error) {
	byPath := make(map[string]*Descriptor, len(t.nodes))

	for _, d := range t.nodes {
		if d != t.root && d.Name == "" {
			parentPath := "?"
			if d.parent != nil {
				parentPath = pathOf(d.parent)
			}
			return nil, &ConfigurationError{
				Path:   parentPath,
				Reason: "namespace unit has no name",
			}
		}
		if strings.Contains(d.Name, PathDelim) || strings.Contains(d.Name, TokenDelim) {
			return nil, &ConfigurationError{
				Path:   d.Name,
				Reason: "namespace name contains a delimiter",
			}
		}

		d.Path = pathOf(d)
		if _, dup := byPath[d.Path]; dup {
			return nil, &ConfigurationError{
				Path:   d.Path,
				Reason: "duplicate namespace path",
			}
		}
		byPath[d.Path] = d
	}

	paths := make([]string, 0, len(byPath))
	for p := range byPath {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	return &Registry{
		root:   t.root,
		byPath: byPath,
		paths:  paths,
	}, nil
}

// pathOf joins a descriptor's ancestry names root-first.
func pathOf(d *Descriptor) string {
	var segs []string
	for cur := d; cur != nil; cur = cur.parent {
		segs = append(segs, cur.Name)
	}
	// Ancestry was collected leaf-first, a path reads root-first.
	for i, j := 0, len(segs)-1; i < j; i, j = i+1, j-1 {
		segs[i], segs[j] = segs[j], segs[i]
	}
	return strings.Join(segs, PathDelim)
}

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is the immutable namespace map of one interpreter session:
// every reachable namespace path mapped to its descriptor and handler
// singleton. Built once, read-only afterward.
type Registry struct {
	root   *Descriptor
	byPath map[string]*Descriptor
	paths  []string
}

// Root returns the root descriptor ("main").
func (r *Registry) Root() *Descriptor {
	return r.root
}

// Lookup returns the descriptor at a full namespace path.
func (r *Registry) Lookup(path string) (*Descriptor, bool) {
	d, ok := r.byPath[path]
	return d, ok
}

// Paths returns every namespace path, sorted. The slice is shared and
// must not be modified.
func (r *Registry) Paths() []string {
	return r.paths
}

// Len returns the number of namespaces.
func (r *Registry) Len() int {
	return len(r.byPath)
}

// Children returns the immediate child segments of the namespace at
// path, sorted and deduplicated.
func (r *Registry) Children(path string) []string {
	prefix := path + PathDelim
	seen := make(map[string]bool)
	var segs []string
	for _, p := range r.paths {
		if !strings.HasPrefix(p, prefix) {
			continue
		}
		seg, _, _ := strings.Cut(p[len(prefix):], PathDelim)
		if seg != "" && !seen[seg] {
			seen[seg] = true
			segs = append(segs, seg)
		}
	}
	sort.Strings(segs)
	return segs
}
