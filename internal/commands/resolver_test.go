// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import (
	"reflect"
	"testing"
)

func TestResolve(t *testing.T) {
	reg := buildTestRegistry(t)
	foo, _ := reg.Lookup("main.foo")
	bar, _ := reg.Lookup("main.foo.bar")

	tests := []struct {
		name     string
		tokens   []string
		current  *Descriptor
		wantPath string
		wantRest []string
	}{
		{
			name:     "absolute navigation from root",
			tokens:   []string{"main", "foo"},
			current:  reg.Root(),
			wantPath: "main.foo",
			wantRest: nil,
		},
		{
			name:     "relative child",
			tokens:   []string{"foo"},
			current:  reg.Root(),
			wantPath: "main.foo",
			wantRest: nil,
		},
		{
			name:     "relative grandchild in one line",
			tokens:   []string{"foo", "bar"},
			current:  reg.Root(),
			wantPath: "main.foo.bar",
			wantRest: nil,
		},
		{
			name:     "greedy longest match wins, leftover is command",
			tokens:   []string{"foo", "bar", "helloworld"},
			current:  reg.Root(),
			wantPath: "main.foo.bar",
			wantRest: []string{"helloworld"},
		},
		{
			name:     "no namespace match keeps current, all tokens remain",
			tokens:   []string{"helloworld", "x", "y"},
			current:  foo,
			wantPath: "main.foo",
			wantRest: []string{"helloworld", "x", "y"},
		},
		{
			name:     "absolute pass only when relative matched nothing",
			tokens:   []string{"main", "foo", "bar", "helloworld"},
			current:  foo,
			wantPath: "main.foo.bar",
			wantRest: []string{"helloworld"},
		},
		{
			name:     "relative match shadows root lookup",
			tokens:   []string{"bar"},
			current:  foo,
			wantPath: "main.foo.bar",
			wantRest: nil,
		},
		{
			name:     "growth stops at first miss",
			tokens:   []string{"foo", "nope", "bar"},
			current:  reg.Root(),
			wantPath: "main.foo",
			wantRest: []string{"nope", "bar"},
		},
		{
			name:     "nil current defaults to root",
			tokens:   []string{"foo"},
			current:  nil,
			wantPath: "main.foo",
			wantRest: nil,
		},
		{
			name:     "empty token slice",
			tokens:   nil,
			current:  bar,
			wantPath: "main.foo.bar",
			wantRest: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, rest := reg.Resolve(tt.tokens, tt.current)
			if d.Path != tt.wantPath {
				t.Errorf("Resolve() namespace = %q, want %q", d.Path, tt.wantPath)
			}
			if len(rest) != 0 || len(tt.wantRest) != 0 {
				if !reflect.DeepEqual(rest, tt.wantRest) {
					t.Errorf("Resolve() rest = %v, want %v", rest, tt.wantRest)
				}
			}
		})
	}
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"foo bar", []string{"foo", "bar"}},
		{"  foo   bar ", []string{"foo", "bar"}},
		{"", nil},
		{"   ", nil},
		{"one", []string{"one"}},
	}

	for _, tc := range tests {
		got := Tokenize(tc.input)
		if len(got) != len(tc.want) {
			t.Errorf("Tokenize(%q) = %v, want %v", tc.input, got, tc.want)
			continue
		}
		for i := range got {
			if got[i] != tc.want[i] {
				t.Errorf("Tokenize(%q) = %v, want %v", tc.input, got, tc.want)
				break
			}
		}
	}
}
