// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import (
	"errors"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
)

// =============================================================================
// SESSION STATE
// =============================================================================

// Session holds the mutable current-namespace state of one interpreter.
// There is exactly one mutator (the dispatcher), so no locking is
// needed; the namespace map itself is immutable.
type Session struct {
	current *Descriptor
}

// NewSession creates a session positioned at the registry root.
func NewSession(reg *Registry) *Session {
	return &Session{current: reg.Root()}
}

// Current returns the descriptor of the active namespace.
func (s *Session) Current() *Descriptor {
	return s.current
}

// Path returns the active namespace path.
func (s *Session) Path() string {
	return s.current.Path
}

// =============================================================================
// DISPATCHER
// =============================================================================

// OpKind selects which capability of an operation Exec invokes.
type OpKind int

const (
	// OpCommand invokes the operation itself.
	OpCommand OpKind = iota
	// OpHelp invokes the operation's help counterpart.
	OpHelp
)

// ErrQuit is returned by ParseAndDispatch when a quit/exit builtin ran.
// It is a control signal, not a failure.
var ErrQuit = errors.New("interpreter quit")

// Recorder receives dispatch events. Implementations must tolerate
// being called once per processed line from a single goroutine.
type Recorder interface {
	RecordCommand(namespace, name string)
	RecordUnknown(namespace, name string)
	RecordNavigation(namespace string)
}

// Dispatcher resolves command lines against a registry and invokes the
// matching operations.
type Dispatcher struct {
	reg      *Registry
	log      zerolog.Logger
	console  io.Writer
	recorder Recorder
}

// NewDispatcher creates a dispatcher over reg. The console writer,
// used only by the clear builtin, defaults to stdout.
func NewDispatcher(reg *Registry, log zerolog.Logger) *Dispatcher {
	return &Dispatcher{
		reg:     reg,
		log:     log,
		console: os.Stdout,
	}
}

// SetConsole redirects the terminal-only output of builtins.
func (d *Dispatcher) SetConsole(w io.Writer) {
	if w != nil {
		d.console = w
	}
}

// SetRecorder attaches a dispatch event recorder.
func (d *Dispatcher) SetRecorder(r Recorder) {
	d.recorder = r
}

// =============================================================================
// PER-LINE FLOW
// =============================================================================

// Tokenize splits a raw command line on the token delimiter. Empty
// tokens from repeated delimiters are dropped.
func Tokenize(line string) []string {
	var tokens []string
	for _, tok := range strings.Split(line, TokenDelim) {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// ParseAndDispatch processes one command line end to end: tokenize,
// resolve the namespace, execute any remaining tokens as a command.
//
// Navigation is durable only for pure navigation lines: when tokens
// remain after resolution the saved session state is restored once the
// command returns, so argument-bearing commands never move the session.
// The returned error is ErrQuit after a quit/exit builtin and nil
// otherwise; unknown commands are logged, never errors.
func (d *Dispatcher) ParseAndDispatch(sess *Session, line string) (string, bool, error) {
	tokens := Tokenize(line)
	if len(tokens) == 0 {
		return d.empty()
	}

	saved := sess.current

	target, rest := d.reg.Resolve(tokens, sess.current)
	sess.current = target

	if len(rest) == 0 {
		d.log.Debug().Str("namespace", target.Path).Msg("entered namespace")
		if d.recorder != nil {
			d.recorder.RecordNavigation(target.Path)
		}
		return "", false, nil
	}

	out, ok, err := d.Exec(sess, target, rest[0], rest[1:], OpCommand)
	sess.current = saved
	return out, ok, err
}

// empty handles an empty input line.
func (d *Dispatcher) empty() (string, bool, error) {
	d.log.Debug().Msg("empty command line")
	return "", false, nil
}

// =============================================================================
// EXECUTION
// =============================================================================

// Exec invokes the capability named by kind for the command name on the
// namespace's operation set.
//
// For OpCommand, the reserved global builtins are consulted first so
// local handlers cannot shadow them; an unmatched name then routes to
// the unknown-command fallback, which logs and reports no output. For
// OpHelp a missing counterpart simply reports no output: the help
// builtin is responsible for falling back to static doc text.
func (d *Dispatcher) Exec(sess *Session, target *Descriptor, name string, args []string, kind OpKind) (string, bool, error) {
	if kind == OpCommand {
		if g, ok := globals[name]; ok {
			return g.run(d, sess, target, args)
		}
	}

	op := target.resolveOp(name)

	switch kind {
	case OpCommand:
		if op == nil || op.Run == nil {
			return d.unknown(target, name, args)
		}
		if d.recorder != nil {
			d.recorder.RecordCommand(target.Path, name)
		}
		out, ok := op.Run(args)
		return out, ok, nil

	case OpHelp:
		if op == nil || op.Help == nil {
			return "", false, nil
		}
		return op.Help(), true, nil
	}

	return "", false, nil
}

// unknown is the default handler for a command that resolved nowhere.
// It logs the offending line and produces no output; the session
// continues.
func (d *Dispatcher) unknown(target *Descriptor, name string, args []string) (string, bool, error) {
	line := strings.Join(append([]string{name}, args...), TokenDelim)
	d.log.Error().
		Str("namespace", target.Path).
		Str("command", line).
		Msg("unknown command")
	if d.recorder != nil {
		d.recorder.RecordUnknown(target.Path, name)
	}
	return "", false, nil
}
