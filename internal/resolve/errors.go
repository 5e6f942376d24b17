package resolve

import (
	"fmt"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// ConflictKind names the singleton field that two sources both supplied.
type ConflictKind string

const (
	MultipleTierSources     ConflictKind = "MultipleTierSources"
	MultipleSectionSources  ConflictKind = "MultipleSectionSources"
	MultipleMetadataSources ConflictKind = "MultipleMetadataSources"
)

// ConflictError reports a singleton field supplied by two matching sources.
type ConflictError struct {
	Target  string
	Kind    ConflictKind
	Section string // set for MultipleSectionSources
	First   string // source that supplied the field first
	Second  string // source that supplied it again
}

func (e *ConflictError) Error() string {
	var field string
	switch e.Kind {
	case MultipleTierSources:
		field = "tier"
	case MultipleSectionSources:
		field = fmt.Sprintf("section %q", e.Section)
	case MultipleMetadataSources:
		field = "metadata"
	default:
		field = string(e.Kind)
	}

	return fmt.Sprintf("target %s: %s is declared by both %s and %s\n\n"+
		"Hint: Add a more specific pattern that declares %s for %s, and remove it from the broader ones.",
		e.Target, field, e.First, e.Second, field, e.Target)
}

// Unwrap makes every ConflictError match tierdocs.ErrConflict.
func (e *ConflictError) Unwrap() error {
	return tierdocs.ErrConflict
}

// UnusedPatternError reports a document or nested metadata rule that matched no target.
type UnusedPatternError struct {
	Pattern         string
	MetadataPattern string // set when the unused pattern is a nested metadata rule
	Source          string
}

func (e *UnusedPatternError) Error() string {
	if e.MetadataPattern != "" {
		return fmt.Sprintf("metadata pattern %q in %s (%s) does not match any target",
			e.MetadataPattern, e.Pattern, e.Source)
	}
	return fmt.Sprintf("pattern %q (%s) does not match any target", e.Pattern, e.Source)
}

// Unwrap makes every UnusedPatternError match tierdocs.ErrUnusedPattern.
func (e *UnusedPatternError) Unwrap() error {
	return tierdocs.ErrUnusedPattern
}

// PatternError reports a malformed glob pattern.
type PatternError struct {
	Pattern         string
	MetadataPattern string
	Source          string
}

func (e *PatternError) Error() string {
	if e.MetadataPattern != "" {
		return fmt.Sprintf("%s: invalid metadata pattern %q", e.Source, e.MetadataPattern)
	}
	return fmt.Sprintf("%s: invalid pattern %q", e.Source, e.Pattern)
}

// Unwrap makes every PatternError match tierdocs.ErrParse.
func (e *PatternError) Unwrap() error {
	return tierdocs.ErrParse
}
