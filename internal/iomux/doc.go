// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package iomux selects and operates the input source and output sinks
// of an interpreter session.
//
// Input is chosen by the shape of a single configuration value: nil for
// interactive reads, a string holding either an existing file path or
// newline-separated commands, or a []string queued as-is. All
// non-interactive sources drain a FIFO queue and end with io.EOF.
//
// Output sinks combine as bit flags (console, accumulator, file); the
// in-memory output log is always appended to regardless of flags.
package iomux
