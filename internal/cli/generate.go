package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/internal/generate"
)

var generateCmd = &cobra.Command{
	Use:   "generate [project_path]",
	Short: "Generate the platform support pages",
	Long: `Generate resolves every target reported by the fact provider against the
target info documents and writes:

  <out>/platform-support/targets/<target>.md   one page per target
  <out>/platform-support/targets/SUMMARY.md    index of the target pages
  <out>/platform-support/targets.md            TARGET region
  <out>/platform-support.md                    tier table regions

Nothing is written unless every phase succeeds. Files whose content is
already up to date are left untouched.

Arguments:
  project_path    Directory containing tierdocs.yaml (default: current directory)

Examples:
  # Use the rustc on PATH
  tierdocs generate

  # Offline, from a recorded fact file
  tierdocs generate ./book --facts facts.yaml

  # Include target spec metadata from a nightly compiler
  tierdocs generate --rustc ~/.cargo/bin/rustc --spec-metadata`,
	Args: OptionalProjectPath,
	RunE: runGenerate,
}

var checkCmd = &cobra.Command{
	Use:   "check [project_path]",
	Short: "Verify that the generated pages are up to date",
	Long: `Check renders everything generate would write, compares it with the files
on disk and prints a unified diff for every file that differs. Line ending
and trailing whitespace differences are ignored.

Exits with code 25 when any file is out of date. Nothing is written.

Examples:
  tierdocs check
  tierdocs check ./book --facts facts.yaml`,
	Args: OptionalProjectPath,
	RunE: runCheck,
}

var (
	generateFlags runFlagValues
	checkFlags    runFlagValues
)

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(checkCmd)
	addRunFlags(generateCmd, &generateFlags)
	addRunFlags(checkCmd, &checkFlags)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, projectArg(args, 0), &generateFlags)
	if err != nil {
		return err
	}

	ctx, cancel := runContext(s.settings.Timeout)
	defer cancel()

	plan, err := s.generator.Plan(ctx, s.config)
	if err != nil {
		return wrapTimeout(ctx, err, s.settings.Timeout)
	}

	report, err := generate.Emit(plan, s.fs)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	status := newStatus(cmd.ErrOrStderr())
	for _, p := range report.Written {
		s.logger.Verbose("Wrote %s", p)
	}
	status.Success("Generated docs for %d targets in %s (%d written, %d unchanged)",
		len(plan.Targets), plan.Root, len(report.Written), len(report.Unchanged))
	return nil
}

func runCheck(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, projectArg(args, 0), &checkFlags)
	if err != nil {
		return err
	}

	ctx, cancel := runContext(s.settings.Timeout)
	defer cancel()

	plan, err := s.generator.Plan(ctx, s.config)
	if err != nil {
		return wrapTimeout(ctx, err, s.settings.Timeout)
	}

	diffs, err := generate.Diff(plan, s.fs)
	if err != nil {
		return err
	}

	status := newStatus(cmd.ErrOrStderr())
	if len(diffs) == 0 {
		status.Success("%d generated files are up to date", len(plan.Outputs))
		return nil
	}

	for _, d := range diffs {
		fmt.Fprint(cmd.OutOrStdout(), d.Diff)
	}
	for _, d := range diffs {
		if d.Missing {
			status.Fail("%s is missing", d.Path)
		} else {
			status.Fail("%s is out of date", d.Path)
		}
	}
	return generate.Check(diffs)
}
