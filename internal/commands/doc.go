// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package commands implements the namespace command engine for nscmd.
//
// Handlers are mounted into a dot-delimited namespace tree rooted at
// "main". A command line is resolved greedily against the tree (current
// namespace first, then root), the leftover tokens are dispatched as a
// command with arguments, and navigation-only lines durably move the
// session into the resolved namespace.
//
// # Key Types
//
//   - Handler: a unit of named operations mounted at one namespace
//   - Tree / Registry: declared handler hierarchy and the immutable
//     namespace map built from it
//   - Session: the mutable current-namespace state of one interpreter
//   - Dispatcher: resolves and executes command lines
//   - Completer: ordered tab-completion candidates over the same tree
//
// # Usage
//
// Declare a tree and dispatch a line:
//
//	tree := commands.NewTree(rootHandler)
//	foo := tree.Namespace(tree.Root(), "foo", fooHandler)
//	tree.Namespace(foo, "bar", commands.NewHandler())
//	reg, err := tree.Build()
//
//	sess := commands.NewSession(reg)
//	disp := commands.NewDispatcher(reg, logger)
//	out, ok, err := disp.ParseAndDispatch(sess, "main foo helloworld")
//
// Get completions:
//
//	comp := commands.NewCompleter(reg, sess)
//	comp.Candidates("he", "he")
//	// Returns ["helloworld"]
package commands
