package cli

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/internal/logging"
	"github.com/vvka-141/tierdocs/internal/scaffold"
)

var initCmd = &cobra.Command{
	Use:   "init <target_path>",
	Short: "Initialize a new tierdocs project",
	Long: `Initialize a tierdocs project into the specified directory.

The project contains:
- tierdocs.yaml with the default settings commented out
- target_infos/ with one example target info document
- src/platform-support.md and src/platform-support/targets.md with the
  region markers generate fills in

Target directory must be empty or non-existent.

Examples:
  tierdocs init .                # Initialize in current directory
  tierdocs init ./book           # Initialize in ./book`,
	Args: cobra.ExactArgs(1),
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	targetPath := args[0]

	projectName := filepath.Base(targetPath)
	if projectName == "." || projectName == ".." {
		cwd, err := os.Getwd()
		if err == nil {
			projectName = filepath.Base(cwd)
		} else {
			projectName = "project"
		}
	}

	scaffolder := scaffold.NewScaffolder(filesystem.NewOSFileSystem(), logging.NewConsoleLogger(getVerboseFlag(cmd)))
	files, err := scaffolder.CreateProject(projectName, targetPath)
	if err != nil {
		return err
	}

	status := newStatus(cmd.ErrOrStderr())
	status.Success("Project initialized in '%s'", targetPath)
	for _, f := range files {
		status.Item("%s", f)
	}

	status.Plain("\nNext steps:")
	if targetPath != "." {
		status.Plain("  cd %s", targetPath)
	}
	status.Plain("  tierdocs new '<pattern>'")
	status.Plain("  tierdocs generate")
	return nil
}
