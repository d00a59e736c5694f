// Package cmd contains the CLI commands for triage.
package cmd

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Version is the current version of triage.
	Version = "0.1.0"

	verbose      bool
	outputFormat string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "triage",
	Short: "Dependency-aware risk triage for code review",
	Long: `triage scans a diff, builds a dependency graph of the touched code,
and scores each changed entity by classification, change type, public-API
exposure, and blast radius across the graph.

Global Flags:
  --format   Output format: yaml (default) | json
  --verbose  Enable debug logging

Examples:
  triage analyze                       # review the working tree against HEAD
  triage analyze --commit HEAD~1       # review a single commit
  triage analyze --range main..HEAD    # review a commit range
  triage analyze --format json`,
	Version:           Version,
	SilenceUsage:      true,
	PersistentPreRunE: setupLogging,
}

// Execute adds all child commands to the root command and runs it. Called
// once by main.main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "", "Output format: yaml (default) | json")
}

// setupLogging configures logrus with a text formatter: info level by
// default, debug with -v.
func setupLogging(cmd *cobra.Command, args []string) error {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	} else {
		logrus.SetLevel(logrus.InfoLevel)
	}
	return nil
}
