// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package iomux selects and operates interpreter input and output.
package iomux

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// queueReader is a LineReader fed from a fixed slice, for interactive
// tests without a terminal.
type queueReader struct {
	lines []string
}

func (r *queueReader) ReadLine(prompt string) (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func drain(t *testing.T, s *Source) []string {
	t.Helper()
	var out []string
	for {
		line, err := s.Next("")
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Next() error: %v", err)
		}
		out = append(out, line)
	}
}

func TestSourceFromList(t *testing.T) {
	s := NewSource([]string{"a", "b", "c"}, nil, zerolog.Nop())
	if s.Method() != MethodList {
		t.Errorf("Method() = %v, want %v", s.Method(), MethodList)
	}
	if s.Interactive() {
		t.Error("Interactive() = true for list input")
	}

	got := drain(t, s)
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("drained %v, want FIFO order a,b,c", got)
	}

	// Reading past the end keeps yielding the sentinel.
	if _, err := s.Next(""); !errors.Is(err, io.EOF) {
		t.Errorf("Next() after drain = %v, want io.EOF", err)
	}
}

func TestSourceFromString(t *testing.T) {
	s := NewSource("main foo\nhelloworld\n", nil, zerolog.Nop())
	if s.Method() != MethodString {
		t.Errorf("Method() = %v, want %v", s.Method(), MethodString)
	}

	got := drain(t, s)
	// Trailing newline yields a trailing empty command, which the
	// dispatcher treats as a no-op.
	want := []string{"main foo", "helloworld", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("drained %v, want %v", got, want)
	}
}

func TestSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cmds.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewSource(path, nil, zerolog.Nop())
	if s.Method() != MethodFile {
		t.Errorf("Method() = %v, want %v", s.Method(), MethodFile)
	}
	got := drain(t, s)
	if strings.Join(got, ",") != "one,two" {
		t.Errorf("drained %v, want one,two", got)
	}
}

func TestSourceUnsupportedFallsBack(t *testing.T) {
	s := NewSource(42, &queueReader{lines: []string{"hi"}}, zerolog.Nop())
	if s.Method() != MethodInteractive {
		t.Errorf("Method() = %v, want interactive fallback", s.Method())
	}
	line, err := s.Next("> ")
	if err != nil || line != "hi" {
		t.Errorf("Next() = (%q, %v), want (hi, nil)", line, err)
	}
}

func TestSourceInteractive(t *testing.T) {
	s := NewSource(nil, &queueReader{lines: []string{"x"}}, zerolog.Nop())
	if !s.Interactive() {
		t.Fatal("Interactive() = false for nil input")
	}
	got := drain(t, s)
	if len(got) != 1 || got[0] != "x" {
		t.Errorf("drained %v, want [x]", got)
	}
}

func TestSourceSetReader(t *testing.T) {
	s := NewSource(nil, nil, zerolog.Nop())
	s.SetReader(&queueReader{lines: []string{"wired"}})

	got := drain(t, s)
	if len(got) != 1 || got[0] != "wired" {
		t.Errorf("drained %v, want [wired]", got)
	}

	// nil is ignored, the reader stays
	s.SetReader(nil)
}

func TestWriterConsoleAndLog(t *testing.T) {
	w := NewWriter(SinkConsole, "", zerolog.Nop())
	var buf bytes.Buffer
	w.SetConsole(&buf)

	w.Write("Hello, foo!")
	w.Write("again")

	if buf.String() != "Hello, foo!\nagain\n" {
		t.Errorf("console = %q", buf.String())
	}
	// The output log is always appended to, regardless of flags.
	log := w.OutputLog()
	if len(log) != 2 || log[0] != "Hello, foo!" || log[1] != "again" {
		t.Errorf("OutputLog() = %v", log)
	}
}

func TestWriterAccumulator(t *testing.T) {
	w := NewWriter(SinkAccumulator, "", zerolog.Nop())
	w.Write("a")
	w.Write("b")
	if w.Accumulated() != "a\nb\n" {
		t.Errorf("Accumulated() = %q, want %q", w.Accumulated(), "a\nb\n")
	}
}

func TestWriterFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("prior\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// K results append exactly K lines, prior contents untouched.
	w := NewWriter(SinkFile, path, zerolog.Nop())
	for _, r := range []string{"one", "two", "three"} {
		if err := w.Write(r); err != nil {
			t.Fatalf("Write(%q) error: %v", r, err)
		}
	}

	// A fresh session appends again instead of truncating.
	w2 := NewWriter(SinkFile, path, zerolog.Nop())
	w2.Write("four")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "prior\none\ntwo\nthree\nfour\n" {
		t.Errorf("file = %q", data)
	}

	// The fresh writer's log starts empty.
	if got := w2.OutputLog(); len(got) != 1 {
		t.Errorf("fresh OutputLog() = %v, want 1 entry", got)
	}
}

func TestWriterFileWithoutPath(t *testing.T) {
	w := NewWriter(SinkFile, "", zerolog.Nop())
	if w.Flags().Has(SinkFile) {
		t.Error("file sink stayed enabled without a path")
	}
	if !w.Flags().Has(SinkConsole) {
		t.Error("writer did not fall back to console")
	}
}

func TestWriterCombinedSinks(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	w := NewWriter(SinkConsole|SinkAccumulator|SinkFile, path, zerolog.Nop())
	var buf bytes.Buffer
	w.SetConsole(&buf)

	w.Write("all")

	if buf.String() != "all\n" {
		t.Errorf("console = %q", buf.String())
	}
	if w.Accumulated() != "all\n" {
		t.Errorf("accumulator = %q", w.Accumulated())
	}
	data, _ := os.ReadFile(path)
	if string(data) != "all\n" {
		t.Errorf("file = %q", data)
	}
	if len(w.OutputLog()) != 1 {
		t.Errorf("OutputLog() = %v", w.OutputLog())
	}
}
