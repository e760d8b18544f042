// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import (
	"errors"
	"reflect"
	"testing"
)

// helloHandler returns a handler with a single helloworld operation.
func helloHandler(out string) *Handler {
	return NewHandler().Register(&Op{
		Name: "helloworld",
		Doc:  "prints " + out,
		Run: func(args []string) (string, bool) {
			return out, true
		},
	})
}

// buildTestRegistry declares the reference scenario tree:
// main -> foo (helloworld) -> bar (no own commands).
func buildTestRegistry(t *testing.T) *Registry {
	t.Helper()
	tree := NewTree(NewHandler())
	foo := tree.Namespace(tree.Root(), "foo", helloHandler("Hello, foo!"))
	tree.Namespace(foo, "bar", NewHandler())
	reg, err := tree.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	return reg
}

func TestBuildPaths(t *testing.T) {
	reg := buildTestRegistry(t)

	want := []string{"main", "main.foo", "main.foo.bar"}
	if !reflect.DeepEqual(reg.Paths(), want) {
		t.Errorf("Paths() = %v, want %v", reg.Paths(), want)
	}

	for _, p := range want {
		if _, ok := reg.Lookup(p); !ok {
			t.Errorf("Lookup(%q) not found", p)
		}
	}
	if _, ok := reg.Lookup("foo"); ok {
		t.Error("Lookup(\"foo\") found a bare segment, want full paths only")
	}
}

func TestBuildDeterministic(t *testing.T) {
	// Identical declarations always yield identical path sets and
	// parent links.
	a := buildTestRegistry(t)
	b := buildTestRegistry(t)

	if !reflect.DeepEqual(a.Paths(), b.Paths()) {
		t.Errorf("path sets differ: %v vs %v", a.Paths(), b.Paths())
	}
	for _, p := range a.Paths() {
		da, _ := a.Lookup(p)
		db, _ := b.Lookup(p)
		pa, pb := "", ""
		if da.Parent() != nil {
			pa = da.Parent().Path
		}
		if db.Parent() != nil {
			pb = db.Parent().Path
		}
		if pa != pb {
			t.Errorf("parent of %q differs: %q vs %q", p, pa, pb)
		}
	}
}

func TestBuildDuplicatePath(t *testing.T) {
	tree := NewTree(nil)
	tree.Namespace(tree.Root(), "foo", nil)
	tree.Namespace(tree.Root(), "foo", nil)

	_, err := tree.Build()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Build() error = %v, want ConfigurationError", err)
	}
	if cfgErr.Path != "main.foo" {
		t.Errorf("ConfigurationError.Path = %q, want %q", cfgErr.Path, "main.foo")
	}
}

func TestBuildMissingName(t *testing.T) {
	tree := NewTree(nil)
	tree.Namespace(tree.Root(), "", nil)

	_, err := tree.Build()
	var cfgErr *ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Build() error = %v, want ConfigurationError", err)
	}
}

func TestBuildDelimiterInName(t *testing.T) {
	tree := NewTree(nil)
	tree.Namespace(tree.Root(), "fo.o", nil)
	if _, err := tree.Build(); err == nil {
		t.Error("Build() accepted a name containing the path delimiter")
	}
}

func TestChildren(t *testing.T) {
	tree := NewTree(nil)
	foo := tree.Namespace(tree.Root(), "foo", nil)
	tree.Namespace(foo, "bar", nil)
	tree.Namespace(foo, "baz", nil)
	tree.Namespace(tree.Root(), "zed", nil)
	reg, err := tree.Build()
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	tests := []struct {
		path string
		want []string
	}{
		{"main", []string{"foo", "zed"}},
		{"main.foo", []string{"bar", "baz"}},
		{"main.foo.bar", nil},
		{"main.zed", nil},
	}

	for _, tc := range tests {
		got := reg.Children(tc.path)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("Children(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestOpInheritance(t *testing.T) {
	reg := buildTestRegistry(t)

	bar, _ := reg.Lookup("main.foo.bar")
	op := bar.resolveOp("helloworld")
	if op == nil {
		t.Fatal("resolveOp(helloworld) on main.foo.bar = nil, want inherited op")
	}
	out, ok := op.Run(nil)
	if !ok || out != "Hello, foo!" {
		t.Errorf("inherited op returned (%q, %v), want (%q, true)", out, ok, "Hello, foo!")
	}

	// Own registrations shadow inherited ones.
	bar.Handler().Register(&Op{
		Name: "helloworld",
		Run: func(args []string) (string, bool) {
			return "Hello, bar!", true
		},
	})
	out, _ = bar.resolveOp("helloworld").Run(nil)
	if out != "Hello, bar!" {
		t.Errorf("own op returned %q, want %q", out, "Hello, bar!")
	}
}

func TestCommandNamesIncludeInherited(t *testing.T) {
	reg := buildTestRegistry(t)
	bar, _ := reg.Lookup("main.foo.bar")
	bar.Handler().Register(&Op{Name: "local", Run: func([]string) (string, bool) { return "", false }})

	want := []string{"helloworld", "local"}
	if got := bar.commandNames(); !reflect.DeepEqual(got, want) {
		t.Errorf("commandNames() = %v, want %v", got, want)
	}
}
