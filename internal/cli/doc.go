// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the interactive terminal surface for nscmd:
// terminal capability detection, the styled prompt and banner, and a
// history-backed line reader with tab completion.
//
// # Key Types
//
//   - Styles: lipgloss styles for the banner, prompt and errors
//   - Liner: interactive line reader with history and completion
//
// # Usage
//
//	styles := cli.NewStyles(cli.ColorEnabled(cfg.UI.Color), cfg.UI.Prompt)
//	fmt.Print(cli.Banner(styles, "nscmd"))
//	reader := cli.NewLiner(completer, cfg.HistoryPath(), log)
//	defer reader.Close()
//	line, err := reader.ReadLine(styles.RenderPrompt("main"))
package cli
