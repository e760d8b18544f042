// nscmd - a hierarchical namespace command interpreter.
//
// Copyright (c) 2025 ropbear
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ropbear/nscmd/internal/cli"
	"github.com/ropbear/nscmd/internal/commands"
	"github.com/ropbear/nscmd/internal/config"
	"github.com/ropbear/nscmd/internal/interp"
	"github.com/ropbear/nscmd/internal/iomux"
	"github.com/ropbear/nscmd/internal/observability"
	"github.com/ropbear/nscmd/internal/storage"
	"github.com/ropbear/nscmd/internal/telemetry"
)

// Version information (set at build time)
var (
	Version   = "1.0.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

const appName = "nscmd"

func main() {
	var (
		cmdString  = flag.String("c", "", "command string or command file to execute")
		outFile    = flag.String("o", "", "append results to this file")
		quiet      = flag.Bool("quiet", false, "suppress console output (accumulate only)")
		logLevel   = flag.String("log-level", "", "log level (trace|debug|info|warn|error|off)")
		noBanner   = flag.Bool("no-banner", false, "skip the startup banner")
		version    = flag.Bool("version", false, "print version and exit")
		transcript = flag.Bool("transcript", false, "record this session to the transcript database")
	)
	flag.Parse()

	if *version {
		fmt.Printf("%s %s (%s, %s)\n", appName, Version, GitCommit, BuildDate)
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", appName, err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *noBanner {
		cfg.UI.Banner = false
	}
	if *outFile != "" {
		cfg.Output.File = *outFile
	}
	config.SetGlobal(cfg)

	log := observability.InitLogger(appName, cfg.Log.Level)

	stats := telemetry.NewTracker()
	reg, err := buildRegistry(stats)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid command tree")
	}

	var store *storage.TranscriptStore
	if *transcript || cfg.Transcript.Enabled {
		store, err = storage.OpenTranscript(cfg.TranscriptPath(), stats.SessionID())
		if err != nil {
			log.Warn().Err(err).Msg("transcript disabled")
		} else {
			defer store.Close()
		}
	}

	opts := interp.Options{
		Logger:     &log,
		Stats:      stats,
		Transcript: store,
		OutFile:    cfg.Output.File,
	}

	var input any
	if *cmdString != "" {
		input = *cmdString
	} else if args := flag.Args(); len(args) > 0 {
		input = strings.Join(args, commands.TokenDelim)
	}
	opts.Input = input

	switch {
	case *quiet:
		opts.Output = iomux.SinkAccumulator
	case cfg.Output.File != "":
		opts.Output = iomux.SinkConsole | iomux.SinkFile
	default:
		opts.Output = iomux.SinkConsole
	}

	interactive := input == nil && cli.IsTTY()
	styles := cli.NewStyles(cli.ColorEnabled(cfg.UI.Color), cfg.UI.Prompt)

	if interactive {
		if err := config.EnsureConfigDir(); err != nil {
			log.Debug().Err(err).Msg("could not create config dir")
		}
		opts.Prompt = styles.RenderPrompt
	} else if input == nil {
		// piped stdin: no prompt noise on stdout
		opts.Prompt = func(string) string { return "" }
	}

	// The liner completes against this interpreter's live session, so
	// the reader is attached after construction.
	in := interp.New(reg, opts)
	if interactive {
		reader := cli.NewLiner(in.Completer(), cfg.HistoryPath(), log)
		defer reader.Close()
		in.SetReader(reader)

		if cfg.UI.Banner {
			fmt.Print(cli.Banner(styles, appName))
		}
	}

	if err := in.Run(); err != nil {
		log.Error().Err(err).Msg("interpreter failed")
		os.Exit(1)
	}

	if *quiet {
		fmt.Print(in.Accumulated())
	}
}

// buildRegistry assembles the demo command tree:
//
//	main            version, stats, history
//	└── foo         helloworld
//	    └── bar     (inherits helloworld)
func buildRegistry(stats *telemetry.Tracker) (*commands.Registry, error) {
	root := commands.NewHandler().
		Register(&commands.Op{
			Name: "version",
			Doc:  "print the interpreter version",
			Run: func(args []string) (string, bool) {
				return fmt.Sprintf("%s %s", appName, Version), true
			},
		}).
		Register(&commands.Op{
			Name: "stats",
			Doc:  "show dispatch statistics for this session",
			Run: func(args []string) (string, bool) {
				snap := stats.Snapshot()
				var b strings.Builder
				fmt.Fprintf(&b, "session %s\n", snap.SessionID)
				fmt.Fprintf(&b, "commands:    %d\n", snap.Total)
				fmt.Fprintf(&b, "navigations: %d\n", snap.Navigations)
				fmt.Fprintf(&b, "unknown:     %d", snap.Unknown)
				for _, name := range stats.TopCommands(5) {
					fmt.Fprintf(&b, "\n  %s", name)
				}
				return b.String(), true
			},
		}).
		Register(&commands.Op{
			Name: "history",
			Doc:  "show recent transcript entries",
			Help: func() string {
				return "history [n]\n\nShow the last n transcript entries (default 10).\nRequires the transcript to be enabled."
			},
			Run: func(args []string) (string, bool) {
				cfg := config.Global()
				store, err := storage.OpenTranscript(cfg.TranscriptPath(), stats.SessionID())
				if err != nil {
					return fmt.Sprintf("transcript unavailable: %v", err), true
				}
				defer store.Close()

				limit := 10
				if len(args) > 0 {
					if n, err := strconv.Atoi(args[0]); err == nil && n > 0 {
						limit = n
					}
				}
				entries, err := store.Recent(limit)
				if err != nil {
					return fmt.Sprintf("transcript unavailable: %v", err), true
				}
				if len(entries) == 0 {
					return "no transcript entries yet", true
				}

				var b strings.Builder
				for i, e := range entries {
					if i > 0 {
						b.WriteString("\n")
					}
					fmt.Fprintf(&b, "[%s] %s", e.Namespace, e.Input)
				}
				return b.String(), true
			},
		})

	foo := commands.NewHandler().Register(&commands.Op{
		Name: "helloworld",
		Doc:  "print a friendly greeting",
		Run: func(args []string) (string, bool) {
			return "Hello, foo!", true
		},
	})

	tree := commands.NewTree(root)
	fooNS := tree.Namespace(tree.Root(), "foo", foo)
	tree.Namespace(fooNS, "bar", commands.NewHandler())

	return tree.Build()
}
