package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/entitytriage/triage/internal/config"
	"github.com/entitytriage/triage/internal/gitscope"
	"github.com/entitytriage/triage/internal/triage"
)

var (
	analyzeCommit string
	analyzeRange  string
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Review the changes in a git scope",
	Long: `analyze resolves a scope (a single commit, a commit range, or the
working tree against HEAD by default), builds a dependency graph of the
affected repository, and scores every changed entity by risk.`,
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().StringVar(&analyzeCommit, "commit", "", "Review a single commit (diffed against its parent)")
	analyzeCmd.Flags().StringVar(&analyzeRange, "range", "", "Review a commit range, e.g. main..HEAD")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	repoRoot, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := config.Load(repoRoot)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	scope, err := resolveScope(analyzeCommit, analyzeRange)
	if err != nil {
		return err
	}

	result, err := triage.Analyze(cmd.Context(), repoRoot, scope, triage.Options{
		ImpactCap: cfg.Impact.Cap,
	})
	if err != nil {
		return fmt.Errorf("analyzing scope: %w", err)
	}

	format := outputFormat
	if format == "" {
		format = cfg.Output.Format
	}

	return writeResult(cmd, result, format)
}

// resolveScope turns the analyze subcommand's flags into a gitscope.Scope.
// --commit and --range are mutually exclusive; with neither set, the scope
// defaults to the working tree against HEAD.
func resolveScope(commit, rng string) (gitscope.Scope, error) {
	if commit != "" && rng != "" {
		return gitscope.Scope{}, fmt.Errorf("--commit and --range are mutually exclusive")
	}

	if commit != "" {
		return gitscope.Scope{Commit: commit}, nil
	}

	if rng != "" {
		parts := strings.SplitN(rng, "..", 2)
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return gitscope.Scope{}, fmt.Errorf("--range must be of the form <from>..<to>, got %q", rng)
		}
		return gitscope.Scope{From: parts[0], To: parts[1]}, nil
	}

	return gitscope.Scope{}, nil
}

func writeResult(cmd *cobra.Command, result interface{}, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	default:
		enc := yaml.NewEncoder(cmd.OutOrStdout())
		defer enc.Close()
		return enc.Encode(result)
	}
}
