package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/vvka-141/tierdocs/internal/checksum"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// FileDiff is the unified diff between a file on disk and its planned content.
type FileDiff struct {
	Path    string
	Missing bool
	Diff    string
}

// OutOfDateError reports generated files that differ from a fresh plan.
type OutOfDateError struct {
	Diffs []FileDiff
}

func (e *OutOfDateError) Error() string {
	paths := make([]string, len(e.Diffs))
	for i, d := range e.Diffs {
		paths[i] = d.Path
	}
	return fmt.Sprintf("%d generated files are out of date: %s\n\nHint: run 'tierdocs generate' and commit the result",
		len(e.Diffs), strings.Join(paths, ", "))
}

func (e *OutOfDateError) Unwrap() error {
	return tierdocs.ErrOutOfDate
}

// Diff compares every output of plan with the file on disk. Line ending and
// trailing whitespace differences are ignored. Missing files are reported
// as a diff against empty content.
func Diff(plan *Plan, fsProvider filesystem.FileSystemProvider) ([]FileDiff, error) {
	calculator := checksum.New()
	var diffs []FileDiff

	for _, out := range plan.Outputs {
		target := filepath.Join(plan.Root, filepath.FromSlash(out.Path))

		existing, err := fsProvider.ReadFile(target)
		missing := errors.Is(err, fs.ErrNotExist)
		if err != nil && !missing {
			return nil, fmt.Errorf("reading %s: %w", target, err)
		}

		if !missing && calculator.CalculateNormalized(existing) == calculator.CalculateNormalized([]byte(out.Content)) {
			continue
		}

		text, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
			A:        difflib.SplitLines(checksum.Normalize(string(existing))),
			B:        difflib.SplitLines(checksum.Normalize(out.Content)),
			FromFile: "a/" + out.Path,
			ToFile:   "b/" + out.Path,
			Context:  3,
		})
		if err != nil {
			return nil, fmt.Errorf("diffing %s: %w", out.Path, err)
		}

		diffs = append(diffs, FileDiff{Path: out.Path, Missing: missing, Diff: text})
	}

	return diffs, nil
}

// Check returns an *OutOfDateError when diffs is not empty.
func Check(diffs []FileDiff) error {
	if len(diffs) == 0 {
		return nil
	}
	return &OutOfDateError{Diffs: diffs}
}
