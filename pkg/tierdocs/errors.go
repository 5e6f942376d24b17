package tierdocs

import (
	"errors"
	"strings"
)

var usageErrorPrefixes = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// Sentinel errors for the failure classes of a generation run.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	plan, err := generator.Plan(ctx, config)
//	if errors.Is(err, tierdocs.ErrConflict) {
//	    // Two target info documents declare the same field for one target
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrUsage indicates the command line was used incorrectly.
	ErrUsage = errors.New("usage error")

	// ErrParse indicates a target info document could not be parsed.
	ErrParse = errors.New("parse error")

	// ErrConflict indicates a singleton field is supplied by more than one matching source.
	ErrConflict = errors.New("merge conflict")

	// ErrUnusedPattern indicates a pattern matched no target.
	ErrUnusedPattern = errors.New("unused pattern")

	// ErrMarkerNotFound indicates a static file lacks a region marker.
	ErrMarkerNotFound = errors.New("marker not found")

	// ErrFactProvider indicates the fact provider failed.
	ErrFactProvider = errors.New("fact provider failed")

	// ErrOutOfDate indicates generated files differ from the checked-in ones.
	ErrOutOfDate = errors.New("generated files are out of date")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrUsage):
		return ExitUsageError
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrParse):
		return ExitParseError
	case errors.Is(err, ErrConflict):
		return ExitConflict
	case errors.Is(err, ErrUnusedPattern):
		return ExitUnusedPattern
	case errors.Is(err, ErrMarkerNotFound):
		return ExitMarkerMissing
	case errors.Is(err, ErrFactProvider):
		return ExitFactProviderError
	case errors.Is(err, ErrOutOfDate):
		return ExitOutOfDate
	}

	// cobra reports flag and argument misuse as plain errors
	errStr := err.Error()
	for _, prefix := range usageErrorPrefixes {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
