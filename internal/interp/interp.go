// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package interp wires the command registry, the input source and the
// output sinks into a run loop.
package interp

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/ropbear/nscmd/internal/commands"
	"github.com/ropbear/nscmd/internal/iomux"
	"github.com/ropbear/nscmd/internal/storage"
	"github.com/ropbear/nscmd/internal/telemetry"
)

// =============================================================================
// OPTIONS
// =============================================================================

// Options configures an Interpreter.
type Options struct {
	// Input selects the command source by shape: nil for interactive,
	// a string for a file path or literal command string, a []string
	// for a queued batch.
	Input any

	// Reader supplies interactive lines. Defaults to stdin.
	Reader iomux.LineReader

	// Output selects the sinks results fan out to.
	Output iomux.SinkFlags

	// OutFile is the file sink path, required when Output includes
	// SinkFile.
	OutFile string

	// Prompt renders the prompt for a namespace path. Defaults to
	// "path> ".
	Prompt func(namespace string) string

	// Logger is the structured logger. Defaults to a disabled logger.
	Logger *zerolog.Logger

	// Stats, when set, records dispatch telemetry.
	Stats *telemetry.Tracker

	// Transcript, when set, persists every dispatched line.
	Transcript *storage.TranscriptStore
}

func defaultPrompt(namespace string) string {
	return namespace + "> "
}

// =============================================================================
// INTERPRETER
// =============================================================================

// Interpreter drives the read/dispatch/write loop over a command
// registry.
type Interpreter struct {
	reg    *commands.Registry
	sess   *commands.Session
	disp   *commands.Dispatcher
	source *iomux.Source
	writer *iomux.Writer
	prompt func(string) string

	log        zerolog.Logger
	transcript *storage.TranscriptStore
}

// New builds an Interpreter from a built registry.
func New(reg *commands.Registry, opts Options) *Interpreter {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}

	prompt := opts.Prompt
	if prompt == nil {
		prompt = defaultPrompt
	}

	sess := commands.NewSession(reg)
	disp := commands.NewDispatcher(reg, log)
	if opts.Stats != nil {
		disp.SetRecorder(opts.Stats)
	}

	return &Interpreter{
		reg:        reg,
		sess:       sess,
		disp:       disp,
		source:     iomux.NewSource(opts.Input, opts.Reader, log),
		writer:     iomux.NewWriter(opts.Output, opts.OutFile, log),
		prompt:     prompt,
		log:        log,
		transcript: opts.Transcript,
	}
}

// Session returns the interpreter's namespace session.
func (in *Interpreter) Session() *commands.Session {
	return in.sess
}

// Completer returns a completer bound to the interpreter's session.
func (in *Interpreter) Completer() *commands.Completer {
	return commands.NewCompleter(in.reg, in.sess)
}

// SetReader attaches an interactive line reader after construction,
// so a reader whose completion is bound to this interpreter's session
// can be wired in. Call before Run.
func (in *Interpreter) SetReader(r iomux.LineReader) {
	in.source.SetReader(r)
}

// Interactive reports whether input comes from a live prompt.
func (in *Interpreter) Interactive() bool {
	return in.source.Interactive()
}

// SetConsole redirects the console sink and the dispatcher's direct
// console writes (tests, captured output).
func (in *Interpreter) SetConsole(w io.Writer) {
	in.writer.SetConsole(w)
	in.disp.SetConsole(w)
}

// Accumulated returns the accumulator sink contents.
func (in *Interpreter) Accumulated() string {
	return in.writer.Accumulated()
}

// OutputLog returns every result produced so far, regardless of sinks.
func (in *Interpreter) OutputLog() []string {
	return in.writer.OutputLog()
}

// =============================================================================
// RUN LOOP
// =============================================================================

// Run reads lines until the source is exhausted or a quit command is
// dispatched. Input errors other than EOF are returned.
func (in *Interpreter) Run() error {
	for {
		line, err := in.source.Next(in.prompt(in.sess.Path()))
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("input failed: %w", err)
		}

		if err := in.Dispatch(line); err != nil {
			if errors.Is(err, commands.ErrQuit) {
				return nil
			}
			return err
		}
	}
}

// Dispatch runs a single line through the dispatcher, records it, and
// fans any result out to the sinks.
func (in *Interpreter) Dispatch(line string) error {
	// The dispatcher restores the session after argument-bearing
	// commands, so the namespace a command runs in must be resolved
	// before dispatch.
	tokens := commands.Tokenize(line)
	namespace := in.sess.Path()
	if len(tokens) > 0 {
		target, _ := in.reg.Resolve(tokens, in.sess.Current())
		namespace = target.Path
	}

	out, ok, err := in.disp.ParseAndDispatch(in.sess, line)
	if err != nil {
		return err
	}

	if len(tokens) > 0 {
		in.record(namespace, line, out, ok)
	}

	if ok {
		if werr := in.writer.Write(out); werr != nil {
			in.log.Error().Err(werr).Msg("output write failed")
		}
	}
	return nil
}

func (in *Interpreter) record(namespace, line, out string, ok bool) {
	if in.transcript == nil {
		return
	}
	if err := in.transcript.Append(namespace, line, out, ok); err != nil {
		in.log.Warn().Err(err).Msg("transcript append failed")
	}
}

// RunBatch dispatches a list of lines and returns the output log. It
// is a convenience for embedding: quit terminates the batch early
// without error.
func RunBatch(reg *commands.Registry, lines []string) ([]string, error) {
	in := New(reg, Options{
		Input:  lines,
		Output: iomux.SinkAccumulator,
	})
	in.SetConsole(os.Stdout)
	if err := in.Run(); err != nil {
		return in.OutputLog(), err
	}
	return in.OutputLog(), nil
}
