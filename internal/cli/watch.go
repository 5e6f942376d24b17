package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/internal/checksum"
	"github.com/vvka-141/tierdocs/internal/files/scanner"
	"github.com/vvka-141/tierdocs/internal/generate"
	"github.com/vvka-141/tierdocs/internal/watch"
)

var watchCmd = &cobra.Command{
	Use:   "watch [project_path]",
	Short: "Regenerate whenever a target info document changes",
	Long: `Watch runs generate once, then again each time a document in the target
info directory is added, removed or edited. Failed runs are reported and
watching continues, so a document can be fixed in place.

The timeout applies to each run. Stop with Ctrl+C.

Examples:
  tierdocs watch
  tierdocs watch ./book --facts facts.yaml`,
	Args: OptionalProjectPath,
	RunE: runWatch,
}

var (
	watchFlags    runFlagValues
	watchDebounce time.Duration
)

func init() {
	rootCmd.AddCommand(watchCmd)
	addRunFlags(watchCmd, &watchFlags)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce,
		"Quiet period after the last change before regenerating")
}

func runWatch(cmd *cobra.Command, args []string) error {
	s, err := newSession(cmd, projectArg(args, 0), &watchFlags)
	if err != nil {
		return err
	}
	status := newStatus(cmd.ErrOrStderr())

	regenerate := func(ctx context.Context) error {
		runCtx, cancel := ctx, context.CancelFunc(func() {})
		if s.settings.Timeout > 0 {
			runCtx, cancel = context.WithTimeout(ctx, s.settings.Timeout)
		}
		defer cancel()

		plan, err := s.generator.Plan(runCtx, s.config)
		if err != nil {
			return wrapTimeout(runCtx, err, s.settings.Timeout)
		}
		report, err := generate.Emit(plan, s.fs)
		if err != nil {
			return err
		}
		status.Success("Generated docs for %d targets (%d written, %d unchanged)",
			len(plan.Targets), len(report.Written), len(report.Unchanged))
		return nil
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	w := watch.NewWatcher(s.settings.TargetInfoPath, scanner.NewScannerWithFS(checksum.New(), s.fs), s.logger, regenerate).
		WithDebounce(watchDebounce)
	return w.Run(ctx)
}
