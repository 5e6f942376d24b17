package resolve

import (
	"fmt"
	"sync/atomic"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

type entry struct {
	info  *tierdocs.TargetInfo
	rules []*rule
	used  atomic.Bool
}

type rule struct {
	meta tierdocs.TargetMetadata
	used atomic.Bool
}

// Store holds every target info document in declaration order together with
// its usage flags.
type Store struct {
	entries []*entry
}

// NewStore validates every pattern and builds a Store.
// Declaration order is the order of infos.
func NewStore(infos []*tierdocs.TargetInfo) (*Store, error) {
	store := &Store{entries: make([]*entry, 0, len(infos))}
	seen := make(map[string]string, len(infos))

	for _, info := range infos {
		if info == nil {
			return nil, fmt.Errorf("target info cannot be nil")
		}
		if !doublestar.ValidatePattern(info.Pattern) {
			return nil, &PatternError{Pattern: info.Pattern, Source: info.Source}
		}
		if previous, ok := seen[info.Pattern]; ok {
			return nil, fmt.Errorf("pattern %q is declared by both %s and %s: %w",
				info.Pattern, previous, info.Source, tierdocs.ErrParse)
		}
		seen[info.Pattern] = info.Source

		e := &entry{info: info}
		for _, meta := range info.Metadata {
			if !doublestar.ValidatePattern(meta.Pattern) {
				return nil, &PatternError{Pattern: info.Pattern, MetadataPattern: meta.Pattern, Source: info.Source}
			}
			e.rules = append(e.rules, &rule{meta: meta})
		}
		store.entries = append(store.entries, e)
	}

	return store, nil
}

// Len returns the number of documents in the store.
func (s *Store) Len() int {
	return len(s.entries)
}

// MatchingPatterns returns the patterns of every document matching target, in
// declaration order. It does not mark anything used.
func (s *Store) MatchingPatterns(target string) []string {
	var patterns []string
	for _, e := range s.entries {
		if match(e.info.Pattern, target) {
			patterns = append(patterns, e.info.Pattern)
		}
	}
	return patterns
}

// match is an anchored, case-sensitive glob match. Patterns are validated in
// NewStore, so the error return of doublestar.Match cannot occur.
func match(pattern, target string) bool {
	ok, err := doublestar.Match(pattern, target)
	return err == nil && ok
}
