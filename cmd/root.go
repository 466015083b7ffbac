// Package cmd implements the CLI commands for docpipe using Cobra.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/docpipe/config"
)

var (
	cfg         = config.Load()
	flagVerbose bool
)

var rootCmd = &cobra.Command{
	Use:   "docpipe",
	Short: "docpipe — turn Google Docs HTML exports into documentation-site HTML",
	Long: `docpipe normalizes HTML exported from Google Docs into the constrained HTML
dialect served by the documentation site: editor cruft and the generated table
of contents are removed, redirector links are unwrapped, and markdown-style code
fences become <pre>/<tt> elements.

Usage:
  docpipe process <source> [flags]
  docpipe serve [flags]`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log pipeline details to stderr")
}

// newLogger builds the CLI logger; diagnostics go to stderr so that
// --stdout output stays clean.
func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if flagVerbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
