// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
package commands

import (
	"sort"
	"strings"

	"github.com/ropbear/nscmd/internal/util"
)

// =============================================================================
// RESERVED GLOBAL COMMANDS
// =============================================================================

// ansiClear clears the screen and homes the cursor.
const ansiClear = "\x1b[2J\x1b[H"

type globalFunc func(d *Dispatcher, sess *Session, target *Descriptor, args []string) (string, bool, error)

type global struct {
	doc string
	run globalFunc
}

// globals are available in every namespace and always resolve to these
// implementations, regardless of local handler registrations.
var globals = map[string]global{
	"quit": {
		doc: "terminate the interpreter",
		run: func(d *Dispatcher, sess *Session, target *Descriptor, args []string) (string, bool, error) {
			return "", false, ErrQuit
		},
	},
	"exit": {
		doc: "terminate the interpreter",
		run: func(d *Dispatcher, sess *Session, target *Descriptor, args []string) (string, bool, error) {
			return "", false, ErrQuit
		},
	},
	"clear": {
		doc: "clear the terminal",
		run: func(d *Dispatcher, sess *Session, target *Descriptor, args []string) (string, bool, error) {
			// Terminal-only side effect, bypasses the output sinks.
			d.console.Write([]byte(ansiClear))
			return "", false, nil
		},
	},
}

// help is registered here: runHelp reads globals, so it cannot appear
// in the map literal.
func init() {
	globals["help"] = global{
		doc: "show global commands, sub-namespaces and local commands; help <name> for one command",
		run: runHelp,
	}
}

// GlobalNames returns the reserved command names, sorted.
func GlobalNames() []string {
	names := make([]string, 0, len(globals))
	for name := range globals {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsGlobal reports whether name is a reserved global command.
func IsGlobal(name string) bool {
	_, ok := globals[name]
	return ok
}

// =============================================================================
// HELP ASSEMBLY
// =============================================================================

// runHelp implements the help builtin. Without arguments it assembles
// the namespace-aware overview; with an argument it resolves help for
// that single command, trying the operation's help capability before
// its static doc text.
func runHelp(d *Dispatcher, sess *Session, target *Descriptor, args []string) (string, bool, error) {
	if len(args) > 0 {
		return helpFor(d, sess, target, args[0])
	}
	return helpOverview(d, target), true, nil
}

// helpFor produces help for one named command.
func helpFor(d *Dispatcher, sess *Session, target *Descriptor, name string) (string, bool, error) {
	if g, ok := globals[name]; ok {
		return name + ": " + g.doc, true, nil
	}

	if out, ok, err := d.Exec(sess, target, name, nil, OpHelp); err != nil || ok {
		return out, ok, err
	}

	// Secondary strategy: the operation's static doc text.
	if op := target.resolveOp(name); op != nil && op.Doc != "" {
		return name + ": " + op.Doc, true, nil
	}

	return "no help available for '" + name + "'", true, nil
}

// helpOverview lists the reserved globals, the immediate sub-namespaces
// and the commands visible at the target namespace.
func helpOverview(d *Dispatcher, target *Descriptor) string {
	var b strings.Builder

	b.WriteString("global commands:\n")
	b.WriteString("  " + strings.Join(GlobalNames(), "  ") + "\n")

	if subs := d.reg.Children(target.Path); len(subs) > 0 {
		b.WriteString("namespaces in " + target.Path + ":\n")
		b.WriteString("  " + strings.Join(subs, "  ") + "\n")
	}

	names := target.commandNames()
	if len(names) == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	width := 0
	for _, name := range names {
		if len(name) > width {
			width = len(name)
		}
	}

	b.WriteString("commands:\n")
	for _, name := range names {
		doc := ""
		if op := target.resolveOp(name); op != nil {
			doc = op.Doc
		}
		if doc == "" {
			b.WriteString("  " + name + "\n")
			continue
		}
		b.WriteString("  " + util.PadWidth(name, width+2) + util.TruncateRunes(doc, 60) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
