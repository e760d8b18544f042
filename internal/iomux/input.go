// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package iomux selects and operates interpreter input and output.
package iomux

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// LineDelim separates commands in string input.
const LineDelim = "\n"

// =============================================================================
// INPUT METHOD
// =============================================================================

// InputMethod identifies how a source was configured.
type InputMethod int

const (
	// MethodInteractive blocks on a LineReader for every read.
	MethodInteractive InputMethod = iota
	// MethodFile read all lines of a file eagerly at construction.
	MethodFile
	// MethodString split a command string on newlines at construction.
	MethodString
	// MethodList queued a caller-supplied slice as-is.
	MethodList
)

func (m InputMethod) String() string {
	switch m {
	case MethodInteractive:
		return "interactive"
	case MethodFile:
		return "file"
	case MethodString:
		return "string"
	case MethodList:
		return "list"
	default:
		return fmt.Sprintf("InputMethod(%d)", int(m))
	}
}

// =============================================================================
// LINE READER
// =============================================================================

// LineReader is the external collaborator behind interactive input.
// ReadLine blocks until a full line is available; any error (EOF,
// interrupt) terminates the run loop as if input were exhausted.
type LineReader interface {
	ReadLine(prompt string) (string, error)
}

// StdinReader is the plain LineReader over standard input, used when no
// line-editing implementation is wired in.
type StdinReader struct {
	scanner *bufio.Scanner
	out     io.Writer
}

// NewStdinReader creates a StdinReader that echoes prompts to stdout.
func NewStdinReader() *StdinReader {
	return &StdinReader{
		scanner: bufio.NewScanner(os.Stdin),
		out:     os.Stdout,
	}
}

// ReadLine prints the prompt and blocks for one line.
func (r *StdinReader) ReadLine(prompt string) (string, error) {
	if prompt != "" {
		fmt.Fprint(r.out, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

// =============================================================================
// SOURCE
// =============================================================================

// Source yields command lines one at a time, either interactively or
// from a FIFO queue filled at construction.
type Source struct {
	method InputMethod
	queue  []string
	reader LineReader
	log    zerolog.Logger
}

// NewSource selects the input method from the shape of cmdIn:
//
//	nil      -> interactive, blocking on reader
//	string   -> an existing file path is read line by line; any other
//	            string is split on newlines
//	[]string -> queued as-is
//
// An unsupported value logs a warning and falls back to interactive.
// A nil reader defaults to plain stdin.
func NewSource(cmdIn any, reader LineReader, log zerolog.Logger) *Source {
	if reader == nil {
		reader = NewStdinReader()
	}
	s := &Source{
		method: MethodInteractive,
		reader: reader,
		log:    log,
	}

	switch in := cmdIn.(type) {
	case nil:

	case string:
		if _, err := os.Stat(in); err == nil {
			lines, err := readCommandFile(in)
			if err != nil {
				log.Warn().Err(err).Str("path", in).Msg("failed to read command file, falling back to interactive")
				return s
			}
			log.Info().Str("path", in).Int("commands", len(lines)).Msg("reading commands from file")
			s.method = MethodFile
			s.queue = lines
		} else {
			log.Warn().Str("input", in).Msg("no such path, assuming command input string")
			s.method = MethodString
			for _, line := range strings.Split(in, LineDelim) {
				s.queue = append(s.queue, strings.TrimSpace(line))
			}
		}

	case []string:
		log.Info().Int("commands", len(in)).Msg("adding commands from input list")
		s.method = MethodList
		s.queue = append(s.queue, in...)

	default:
		log.Error().Type("type", cmdIn).Msg("unsupported command input type, defaulting to interactive")
	}

	return s
}

// SetReader replaces the interactive line reader. Call before the
// first Next; a nil reader is ignored.
func (s *Source) SetReader(r LineReader) {
	if r != nil {
		s.reader = r
	}
}

// readCommandFile reads every line of a command file eagerly.
func readCommandFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	return lines, scanner.Err()
}

// Method returns the selected input method.
func (s *Source) Method() InputMethod {
	return s.method
}

// Interactive reports whether reads block on the line reader.
func (s *Source) Interactive() bool {
	return s.method == MethodInteractive
}

// Next yields the next command line. Non-interactive sources pop the
// FIFO queue and return io.EOF once drained; interactive sources block
// on the reader and surface its error unchanged.
func (s *Source) Next(prompt string) (string, error) {
	if s.method == MethodInteractive {
		return s.reader.ReadLine(prompt)
	}
	if len(s.queue) == 0 {
		return "", io.EOF
	}
	line := s.queue[0]
	s.queue = s.queue[1:]
	return line, nil
}
