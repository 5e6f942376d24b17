package tierdocs

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Generation completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitParseError        = 20 // Target info document could not be parsed
	ExitConflict          = 21 // Singleton field supplied by two sources
	ExitUnusedPattern     = 22 // Pattern matched no target
	ExitMarkerMissing     = 23 // Static file lacks a region marker
	ExitFactProviderError = 24 // Fact provider failed
	ExitOutOfDate         = 25 // check found stale generated files
)

const (
	// ConfigFileName is the project configuration file.
	ConfigFileName = "tierdocs.yaml"

	// DefaultTargetInfoDir is where target info documents live, relative to the project.
	DefaultTargetInfoDir = "target_infos"

	// DefaultOutputDir is the root of the documentation tree, relative to the project.
	DefaultOutputDir = "src"

	// DefaultRustc is the compiler invoked by the fact provider.
	DefaultRustc = "rustc"

	// DefaultTimeout bounds an entire generation run.
	DefaultTimeout = 5 * time.Minute

	// TargetPagesDir is where per-target pages go, relative to the output directory.
	TargetPagesDir = "platform-support/targets"

	// TargetListFile holds the TARGET region, relative to the output directory.
	TargetListFile = "platform-support/targets.md"

	// PlatformSupportFile holds the tier table regions, relative to the output directory.
	PlatformSupportFile = "platform-support.md"

	// TargetTableLinkPrefix is the link prefix used by tier table rows,
	// which live in PlatformSupportFile.
	TargetTableLinkPrefix = "platform-support/targets"

	// TargetListLinkPrefix is the link prefix used by the TARGET region,
	// which lives in TargetListFile.
	TargetListLinkPrefix = "targets"
)
