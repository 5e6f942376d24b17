package tierdocs

import (
	"errors"
	"fmt"
	"time"
)

// GenerateConfig contains all parameters needed for a generation run.
type GenerateConfig struct {
	// TargetInfoPath is the directory containing target info documents
	TargetInfoPath string

	// OutputPath is the root of the documentation tree that receives the output
	OutputPath string

	// Sections is the section vocabulary shared by the parser and the renderer
	Sections SectionVocabulary

	// Workers bounds the number of targets fetched and resolved concurrently
	Workers int

	// Timeout is the global timeout for the entire run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the GenerateConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *GenerateConfig) Validate() error {
	var errs []error

	if c.TargetInfoPath == "" {
		errs = append(errs, fmt.Errorf("TargetInfoPath is required: %w", ErrInvalidConfig))
	}

	if c.OutputPath == "" {
		errs = append(errs, fmt.Errorf("OutputPath is required: %w", ErrInvalidConfig))
	}

	if len(c.Sections) == 0 {
		errs = append(errs, fmt.Errorf("section vocabulary cannot be empty: %w", ErrInvalidConfig))
	}

	seen := make(map[string]bool, len(c.Sections))
	for _, name := range c.Sections {
		if seen[name] {
			errs = append(errs, fmt.Errorf("section %q is listed twice: %w", name, ErrInvalidConfig))
		}
		seen[name] = true
	}

	if c.Workers < 0 {
		errs = append(errs, fmt.Errorf("workers cannot be negative: %w", ErrInvalidConfig))
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// TargetInfoScanner discovers and parses target info documents.
// Implementations must be safe for concurrent use by multiple goroutines.
type TargetInfoScanner interface {
	// ScanDirectory parses every target info document in a directory, in
	// file name order. It stops at the first document that fails to parse.
	ScanDirectory(path string, sections SectionVocabulary) ([]*TargetInfo, error)
}
