package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tierdocs",
	Short: "Generate platform support documentation from target info documents",
	Long: `tierdocs merges target info documents with the targets and cfg values reported
by the compiler, then writes one page per target, a summary, and the tier
tables and target list of the platform support chapter.

A target info document is named after a glob pattern, for example
target_infos/*-apple-darwin.md, and applies to every target it matches.
Every pattern must match at least one target and no field may be set by
two matching documents.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  20 - Target info document could not be parsed
  21 - Two documents set the same field for one target
  22 - A pattern matched no target
  23 - A static file lacks a region marker
  24 - The fact provider failed
  25 - Generated files are out of date (check)`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
