package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/internal/config"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/internal/logging"
	"github.com/vvka-141/tierdocs/internal/scaffold"
	"github.com/vvka-141/tierdocs/internal/tui"
	"github.com/vvka-141/tierdocs/internal/tui/wizards"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

var newCmd = &cobra.Command{
	Use:   "new <pattern> [project_path]",
	Short: "Create a target info document",
	Long: `New writes <target_info>/<pattern>.md with the given tier and maintainers
and one empty heading per section of the vocabulary. Remove the headings
the document should not declare, so that broader documents can supply them.

On a terminal, a wizard asks for the tier and the maintainers unless
--tier or --maintainer is given. An existing document for the same pattern,
in either format, is never overwritten.

Examples:
  tierdocs new 'riscv64gc-unknown-*'
  tierdocs new x86_64-unknown-redox --tier 3 --maintainer @ferris
  tierdocs new '*-apple-*' ./book --maintainer @ferris --maintainer 'Jane Doe'`,
	Args: RequirePattern,
	RunE: runNew,
}

var newFlags struct {
	tier        string
	maintainers []string
	targetInfo  string
}

func init() {
	rootCmd.AddCommand(newCmd)

	newCmd.Flags().StringVar(&newFlags.tier, "tier", "",
		"Support tier of the matching targets: 1, 2 or 3 (default: unset)")
	newCmd.Flags().StringSliceVar(&newFlags.maintainers, "maintainer", nil,
		"Maintainer, a GitHub handle like @ferris or a plain name\n"+
			"Can be specified multiple times")
	newCmd.Flags().StringVar(&newFlags.targetInfo, "target-info", "",
		"Directory of target info documents\n"+
			"Precedence: --target-info > tierdocs.yaml target_info > <project>/target_infos")
}

func runNew(cmd *cobra.Command, args []string) error {
	pattern := args[0]
	if err := scaffold.ValidatePattern(pattern); err != nil {
		return err
	}

	settings, err := config.LoadSettings(projectArg(args, 1), os.LookupEnv)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("target-info") {
		settings.TargetInfoPath = newFlags.targetInfo
	}

	opts, err := targetInfoOptions(cmd, pattern)
	if err != nil {
		return err
	}
	if opts == nil {
		newStatus(cmd.ErrOrStderr()).Plain("Cancelled, nothing written")
		return nil
	}
	opts.Sections = settings.Sections

	scaffolder := scaffold.NewScaffolder(filesystem.NewOSFileSystem(), logging.NewConsoleLogger(getVerboseFlag(cmd)))
	dest, err := scaffolder.NewTargetInfo(settings.TargetInfoPath, pattern, *opts)
	if err != nil {
		return err
	}

	status := newStatus(cmd.ErrOrStderr())
	status.Success("Created %s", dest)
	status.Item("Fill in or remove the section headings")
	status.Item("Run 'tierdocs generate' to render the pages")
	return nil
}

// targetInfoOptions reads the frontmatter values from flags or, on a
// terminal without flags, from the wizard. It returns nil when the wizard
// was cancelled.
func targetInfoOptions(cmd *cobra.Command, pattern string) (*scaffold.TargetInfoOptions, error) {
	useFlags := cmd.Flags().Changed("tier") || cmd.Flags().Changed("maintainer")
	if !useFlags && tui.IsInteractive() {
		result, err := wizards.RunTargetWizard(pattern)
		if err != nil {
			return nil, fmt.Errorf("wizard failed: %w", err)
		}
		if result.Cancelled {
			return nil, nil
		}
		return &scaffold.TargetInfoOptions{Tier: result.Tier, Maintainers: result.Maintainers}, nil
	}

	opts := &scaffold.TargetInfoOptions{Maintainers: newFlags.maintainers}
	if newFlags.tier != "" {
		tier, err := tierdocs.ParseTier(newFlags.tier)
		if err != nil {
			return nil, fmt.Errorf("--tier: %w: %w", tierdocs.ErrUsage, err)
		}
		opts.Tier = &tier
	}
	return opts, nil
}
