// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package telemetry tracks per-session interpreter usage statistics.
package telemetry

import (
	"encoding/json"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ropbear/nscmd/internal/util"
)

// =============================================================================
// TRACKER
// =============================================================================

// Tracker counts dispatch events for one interpreter session. It
// implements the dispatcher's Recorder interface. The interpreter loop
// is single-threaded, but snapshots may be taken from handlers while a
// command runs, so access is still guarded.
type Tracker struct {
	mu sync.Mutex

	sessionID string
	startTime time.Time

	commands    map[string]int // "namespace command" -> invocations
	namespaces  map[string]int // namespace -> dispatches landed there
	unknown     int
	navigations int
}

// NewTracker creates a tracker with a fresh session ID.
func NewTracker() *Tracker {
	return &Tracker{
		sessionID:  uuid.NewString(),
		startTime:  time.Now(),
		commands:   make(map[string]int),
		namespaces: make(map[string]int),
	}
}

// SessionID returns the tracker's session identifier.
func (t *Tracker) SessionID() string {
	return t.sessionID
}

// RecordCommand counts one executed command in a namespace.
func (t *Tracker) RecordCommand(namespace, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.commands[namespace+" "+name]++
	t.namespaces[namespace]++
}

// RecordUnknown counts one unknown-command fallback.
func (t *Tracker) RecordUnknown(namespace, name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.unknown++
	t.namespaces[namespace]++
}

// RecordNavigation counts one durable namespace change.
func (t *Tracker) RecordNavigation(namespace string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.navigations++
}

// =============================================================================
// SNAPSHOT
// =============================================================================

// Stats is a point-in-time view of a session's usage.
type Stats struct {
	SessionID   string         `json:"session_id"`
	StartTime   time.Time      `json:"start_time"`
	Commands    map[string]int `json:"commands"`
	Namespaces  map[string]int `json:"namespaces"`
	Unknown     int            `json:"unknown"`
	Navigations int            `json:"navigations"`
	Total       int            `json:"total"`
}

// Snapshot returns a copy of the current counters.
func (t *Tracker) Snapshot() Stats {
	t.mu.Lock()
	defer t.mu.Unlock()

	s := Stats{
		SessionID:   t.sessionID,
		StartTime:   t.startTime,
		Commands:    make(map[string]int, len(t.commands)),
		Namespaces:  make(map[string]int, len(t.namespaces)),
		Unknown:     t.unknown,
		Navigations: t.navigations,
	}
	for k, v := range t.commands {
		s.Commands[k] = v
		s.Total += v
	}
	for k, v := range t.namespaces {
		s.Namespaces[k] = v
	}
	return s
}

// TopCommands returns the n most-invoked "namespace command" keys,
// ordered by count descending, then alphabetically.
func (t *Tracker) TopCommands(n int) []string {
	s := t.Snapshot()
	keys := make([]string, 0, len(s.Commands))
	for k := range s.Commands {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if s.Commands[keys[i]] != s.Commands[keys[j]] {
			return s.Commands[keys[i]] > s.Commands[keys[j]]
		}
		return keys[i] < keys[j]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	return keys
}

// Save persists a snapshot as JSON. The write is atomic so a crash
// never leaves a truncated stats file.
func (t *Tracker) Save(path string) error {
	data, err := json.MarshalIndent(t.Snapshot(), "", "  ")
	if err != nil {
		return err
	}
	return util.AtomicWriteFile(path, data, 0600)
}
