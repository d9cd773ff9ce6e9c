// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Program kdlprint parses KDL documents and prints their structure.
//
// By default, kdlprint prints the stream of parser events for each file, one
// per line and indented by nesting depth. With --tree, it assembles each
// document and prints its nodes in tag form:
//
//	<name key=value values...>
//	  <child></child>
//	</name>
//
// With --json, it prints the assembled nodes as JSON.
//
// Syntax errors are reported with the offending source line and a caret
// marking the position of the error.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// settings are the command-line settings for kdlprint.
type settings struct {
	Tree       bool
	JSON       bool
	Compact    bool
	Verbose    bool
	MaxDepth   int
	MaxEntries int
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var cfg settings
	cmd := &cobra.Command{
		Use:   "kdlprint [flags] file...",
		Short: "Print the structure of KDL documents",
		Long: `Parse each named KDL document and print its structure.

By default the parser events are printed. Use --tree to print the assembled
nodes, or --json to print them as JSON. Use "-" to read standard input.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(stderr, cfg.Verbose)
			var nfail int
			for _, path := range args {
				if err := printFile(stdout, stderr, logger, path, cfg); err != nil {
					level.Error(logger).Log("msg", "print failed", "file", path, "err", err)
					nfail++
				}
			}
			if nfail != 0 {
				return fmt.Errorf("%d of %d files failed", nfail, len(args))
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.BoolVar(&cfg.Tree, "tree", false, "Print the assembled nodes instead of events")
	fs.BoolVar(&cfg.JSON, "json", false, "Print the assembled nodes as JSON")
	fs.BoolVar(&cfg.Compact, "compact", false, "Print JSON without insignificant whitespace")
	fs.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Enable debug logging")
	fs.IntVar(&cfg.MaxDepth, "max-depth", 0, "Maximum node nesting depth (0 means unlimited)")
	fs.IntVar(&cfg.MaxEntries, "max-entries", 0, "Maximum properties or values per node (0 means unlimited)")
	cmd.MarkFlagsMutuallyExclusive("tree", "json")
	return cmd
}

// newLogger returns a logfmt logger writing to w. Debug messages are logged
// only if verbose is true.
func newLogger(w io.Writer, verbose bool) log.Logger {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(w))
	if verbose {
		return level.NewFilter(logger, level.AllowDebug())
	}
	return level.NewFilter(logger, level.AllowInfo())
}
