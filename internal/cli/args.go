package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// OptionalProjectPath accepts at most one project_path argument.
func OptionalProjectPath(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	return nil
}

// RequireTargetName validates a <target> argument followed by an optional project_path.
// Returns a helpful error message with usage and examples if missing or too many.
func RequireTargetName(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <target>: %w

Usage: %s

Example:
  %s x86_64-unknown-linux-gnu

Use 'tierdocs list' to see all targets.`, tierdocs.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts at most 2 arg(s), received %d", len(args))
	}
	return nil
}

// RequirePattern validates a <pattern> argument followed by an optional project_path.
// Returns a helpful error message with usage and examples if missing or too many.
func RequirePattern(cmd *cobra.Command, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf(`missing required argument: <pattern>: %w

Usage: %s

Example:
  %s 'riscv64*-linux-*' --tier 2 --maintainer @ferris`, tierdocs.ErrUsage, cmd.UseLine(), cmd.CommandPath())
	}
	if len(args) > 2 {
		return fmt.Errorf("accepts at most 2 arg(s), received %d", len(args))
	}
	return nil
}
