// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the interactive terminal surface for nscmd.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"

	"github.com/ropbear/nscmd/internal/commands"
)

// =============================================================================
// INTERACTIVE LINE READER
// =============================================================================

// Liner is an interactive line reader with history and tab completion.
// It satisfies the prompt/read contract the interpreter expects for
// interactive input.
type Liner struct {
	state       *liner.State
	historyPath string
	log         zerolog.Logger
}

// NewLiner creates an interactive reader. Tab completion is driven by
// the namespace completer; history is loaded from historyPath when the
// file exists.
func NewLiner(completer *commands.Completer, historyPath string, log zerolog.Logger) *Liner {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	state.SetTabCompletionStyle(liner.TabPrints)

	if completer != nil {
		state.SetWordCompleter(func(line string, pos int) (string, []string, string) {
			head, partial := splitAtWord(line[:pos])
			return head, completer.Candidates(partial, line[:pos]), line[pos:]
		})
	}

	l := &Liner{state: state, historyPath: historyPath, log: log}
	l.loadHistory()
	return l
}

// ReadLine prompts and reads one line. Any prompt text before the
// final newline is printed directly so multi-line prompts render above
// the edit line. Ctrl-C ends the session the same way exhausted input
// does.
func (l *Liner) ReadLine(prompt string) (string, error) {
	edit := prompt
	if i := strings.LastIndex(prompt, "\n"); i >= 0 {
		fmt.Fprint(os.Stdout, prompt[:i+1])
		edit = prompt[i+1:]
	}

	line, err := l.state.Prompt(edit)
	if err == liner.ErrPromptAborted {
		return "", io.EOF
	}
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(line) != "" {
		l.state.AppendHistory(line)
	}
	return line, nil
}

// Close saves history and restores the terminal.
func (l *Liner) Close() error {
	l.saveHistory()
	return l.state.Close()
}

func (l *Liner) loadHistory() {
	if l.historyPath == "" {
		return
	}
	f, err := os.Open(l.historyPath)
	if err != nil {
		return
	}
	defer f.Close()
	if _, err := l.state.ReadHistory(f); err != nil {
		l.log.Debug().Err(err).Str("path", l.historyPath).Msg("could not read history")
	}
}

func (l *Liner) saveHistory() {
	if l.historyPath == "" {
		return
	}
	f, err := os.OpenFile(l.historyPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		l.log.Debug().Err(err).Str("path", l.historyPath).Msg("could not save history")
		return
	}
	defer f.Close()
	if _, err := l.state.WriteHistory(f); err != nil {
		l.log.Debug().Err(err).Str("path", l.historyPath).Msg("could not write history")
	}
}

// splitAtWord splits the text before the cursor into everything up to
// the word being completed and the word itself.
func splitAtWord(before string) (head, partial string) {
	i := strings.LastIndex(before, commands.TokenDelim)
	if i < 0 {
		return "", before
	}
	return before[:i+1], before[i+1:]
}
