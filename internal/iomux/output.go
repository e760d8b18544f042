// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package iomux selects and operates interpreter input and output.
package iomux

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// =============================================================================
// SINK FLAGS
// =============================================================================

// SinkFlags selects output destinations. Flags combine with bitwise or;
// the in-memory output log is not a flag because it is always on.
type SinkFlags uint8

const (
	// SinkConsole writes result + newline to the console stream.
	SinkConsole SinkFlags = 1 << iota
	// SinkAccumulator appends result + newline to an in-memory string.
	SinkAccumulator
	// SinkFile appends result + newline to a file, reopening it on
	// every write. Durability over throughput: a crash mid-session
	// loses nothing already flushed.
	SinkFile
)

// Has reports whether all bits of other are set.
func (f SinkFlags) Has(other SinkFlags) bool {
	return f&other == other
}

// =============================================================================
// WRITER
// =============================================================================

// Writer fans one result out to every configured sink and records it in
// the append-only output log. The log survives across command
// invocations for the life of the writer; a new interpreter gets a new
// writer and therefore a fresh log.
type Writer struct {
	flags    SinkFlags
	console  io.Writer
	acc      strings.Builder
	filePath string
	outlog   []string
	log      zerolog.Logger
}

// NewWriter creates a writer for the given sink combination. Requesting
// SinkFile without a path is an unsupported configuration: it logs a
// warning and degrades to the console sink. Zero flags default to the
// console.
func NewWriter(flags SinkFlags, filePath string, log zerolog.Logger) *Writer {
	if flags == 0 {
		flags = SinkConsole
	}
	if flags.Has(SinkFile) && filePath == "" {
		log.Warn().Msg("file sink requested without a path, falling back to console")
		flags = (flags &^ SinkFile) | SinkConsole
	}
	return &Writer{
		flags:    flags,
		console:  os.Stdout,
		filePath: filePath,
		log:      log,
	}
}

// SetConsole redirects the console sink.
func (w *Writer) SetConsole(out io.Writer) {
	if out != nil {
		w.console = out
	}
}

// Flags returns the active sink combination.
func (w *Writer) Flags() SinkFlags {
	return w.flags
}

// Write appends one result to every enabled sink, newline-terminated,
// and records the raw result in the output log.
func (w *Writer) Write(result string) error {
	if w.flags.Has(SinkConsole) {
		fmt.Fprint(w.console, result+LineDelim)
	}

	if w.flags.Has(SinkAccumulator) {
		w.acc.WriteString(result + LineDelim)
	}

	if w.flags.Has(SinkFile) {
		if err := w.appendFile(result); err != nil {
			w.log.Error().Err(err).Str("path", w.filePath).Msg("file sink write failed")
			return err
		}
	}

	w.outlog = append(w.outlog, result)
	return nil
}

// appendFile opens, appends and closes the output file for one result.
func (w *Writer) appendFile(result string) error {
	f, err := os.OpenFile(w.filePath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(result + LineDelim)
	return err
}

// Accumulated returns everything written to the accumulator sink.
func (w *Writer) Accumulated() string {
	return w.acc.String()
}

// OutputLog returns a copy of the ordered record of every result ever
// written through this writer.
func (w *Writer) OutputLog() []string {
	out := make([]string, len(w.outlog))
	copy(out, w.outlog)
	return out
}
