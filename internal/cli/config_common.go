package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vvka-141/tierdocs/internal/checksum"
	"github.com/vvka-141/tierdocs/internal/config"
	"github.com/vvka-141/tierdocs/internal/facts"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/internal/files/scanner"
	"github.com/vvka-141/tierdocs/internal/generate"
	"github.com/vvka-141/tierdocs/internal/logging"
	"github.com/vvka-141/tierdocs/internal/tui"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// runFlagValues holds the flags shared by every command that runs the generator.
type runFlagValues struct {
	out          string
	targetInfo   string
	rustc        string
	factsFile    string
	workers      int
	specMetadata bool
	timeout      time.Duration
}

func addRunFlags(cmd *cobra.Command, flags *runFlagValues) {
	cmd.Flags().StringVar(&flags.out, "out", "",
		"Documentation source directory receiving the output\n"+
			"Precedence: --out > tierdocs.yaml output > <project>/src")
	cmd.Flags().StringVar(&flags.targetInfo, "target-info", "",
		"Directory of target info documents\n"+
			"Precedence: --target-info > tierdocs.yaml target_info > <project>/target_infos")
	cmd.Flags().StringVar(&flags.rustc, "rustc", "",
		"Compiler queried for targets and cfg values\n"+
			"Precedence: --rustc > $TIERDOCS_RUSTC > tierdocs.yaml facts.rustc > rustc")
	cmd.Flags().StringVar(&flags.factsFile, "facts", "",
		"Read target facts from a YAML file instead of running the compiler\n"+
			"Precedence: --facts > $TIERDOCS_FACTS_FILE > tierdocs.yaml facts.file")
	cmd.Flags().IntVar(&flags.workers, "workers", 0,
		"Targets processed concurrently (default: number of CPUs)")
	cmd.Flags().BoolVar(&flags.specMetadata, "spec-metadata", false,
		"Also read the compiler's target spec JSON (sets RUSTC_BOOTSTRAP=1)")
	cmd.Flags().DurationVar(&flags.timeout, "timeout", 0,
		"Timeout for the whole run (default 5m)\n"+
			"Examples: 30s, 5m, 1h30m")
}

// projectArg returns the optional project directory argument at index i.
func projectArg(args []string, i int) string {
	if len(args) > i {
		return args[i]
	}
	return "."
}

// resolveSettings layers the explicitly set flags over .env, environment,
// tierdocs.yaml and the defaults.
func resolveSettings(cmd *cobra.Command, projectPath string, flags *runFlagValues) (config.Settings, error) {
	settings, err := config.LoadSettings(projectPath, os.LookupEnv)
	if err != nil {
		return settings, err
	}

	changed := cmd.Flags().Changed
	if changed("out") {
		settings.OutputPath = flags.out
	}
	if changed("target-info") {
		settings.TargetInfoPath = flags.targetInfo
	}
	if changed("rustc") {
		settings.Rustc = flags.rustc
	}
	if changed("facts") {
		settings.FactsFile = flags.factsFile
	}
	if changed("workers") {
		settings.Workers = flags.workers
	}
	if changed("spec-metadata") {
		settings.SpecMetadata = flags.specMetadata
	}
	if changed("timeout") {
		settings.Timeout = flags.timeout
	}
	return settings, nil
}

func logSettings(logger tierdocs.Logger, settings config.Settings) {
	logger.Verbose("Target info: %s", settings.TargetInfoPath)
	logger.Verbose("Output: %s", settings.OutputPath)
	if settings.FactsFile != "" {
		logger.Verbose("Facts: %s", settings.FactsFile)
	} else {
		logger.Verbose("Facts: %s (spec metadata: %t)", settings.Rustc, settings.SpecMetadata)
	}
}

// newProvider selects the static fact file when one is configured and the
// compiler otherwise.
func newProvider(settings config.Settings, fsProvider filesystem.FileSystemProvider) (tierdocs.FactProvider, error) {
	if settings.FactsFile != "" {
		provider, err := facts.LoadStaticProvider(fsProvider, settings.FactsFile)
		if err != nil {
			return nil, err
		}
		return provider, nil
	}
	return facts.NewRustcProvider(settings.Rustc, settings.SpecMetadata), nil
}

// session bundles what a command needs to run the generator.
type session struct {
	settings  config.Settings
	config    tierdocs.GenerateConfig
	generator *generate.Generator
	logger    tierdocs.Logger
	fs        *filesystem.OSFileSystem
}

func newSession(cmd *cobra.Command, projectPath string, flags *runFlagValues) (*session, error) {
	verbose := getVerboseFlag(cmd)
	logger := logging.NewConsoleLogger(verbose)

	settings, err := resolveSettings(cmd, projectPath, flags)
	if err != nil {
		return nil, err
	}
	logSettings(logger, settings)

	fsProvider := filesystem.NewOSFileSystem()
	provider, err := newProvider(settings, fsProvider)
	if err != nil {
		return nil, err
	}

	return &session{
		settings:  settings,
		config:    settings.GenerateConfig(verbose),
		generator: generate.NewGenerator(scanner.NewScannerWithFS(checksum.New(), fsProvider), provider, logger, fsProvider),
		logger:    logger,
		fs:        fsProvider,
	}, nil
}

// runContext is cancelled on Ctrl+C, SIGTERM or when timeout elapses.
// A zero timeout means no deadline.
func runContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	if timeout <= 0 {
		return ctx, stop
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	return ctx, func() {
		cancel()
		stop()
	}
}

// newStatus styles status lines only when w is a terminal.
func newStatus(w io.Writer) *tui.Status {
	if f, ok := w.(*os.File); ok {
		return tui.NewStatus(f)
	}
	return tui.NewPlainStatus(w)
}

func wrapTimeout(ctx context.Context, err error, timeout time.Duration) error {
	if err != nil && ctx.Err() == context.DeadlineExceeded {
		return fmt.Errorf("run exceeded timeout of %s: %w\n\nHint: raise --timeout or the timeout in %s", timeout, err, tierdocs.ConfigFileName)
	}
	return err
}
