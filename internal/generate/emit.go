package generate

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/vvka-141/tierdocs/internal/checksum"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
)

// EmitReport lists the output paths Emit wrote and the ones it left alone.
type EmitReport struct {
	Written   []string
	Unchanged []string
}

// Emit writes the outputs of plan below plan.Root. Files whose content
// already matches byte for byte are not rewritten.
func Emit(plan *Plan, fsProvider filesystem.WritableFileSystem) (*EmitReport, error) {
	calculator := checksum.New()
	report := &EmitReport{}

	for _, out := range plan.Outputs {
		target := filepath.Join(plan.Root, filepath.FromSlash(out.Path))
		content := []byte(out.Content)

		existing, err := fsProvider.ReadFile(target)
		switch {
		case err == nil:
			if calculator.CalculateRaw(existing) == calculator.CalculateRaw(content) {
				report.Unchanged = append(report.Unchanged, out.Path)
				continue
			}
		case !errors.Is(err, fs.ErrNotExist):
			return report, fmt.Errorf("reading %s: %w", target, err)
		}

		if err := fsProvider.WriteFile(target, content); err != nil {
			return report, fmt.Errorf("writing %s: %w", target, err)
		}
		report.Written = append(report.Written, out.Path)
	}

	return report, nil
}
