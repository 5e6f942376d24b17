package resolve

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// Resolve merges every matching document into the record of one target and
// marks the matching documents and nested rules as used.
//
// Documents are visited in declaration order. That order decides the order of
// maintainers and which source is reported first in a conflict.
func (s *Store) Resolve(target string) (*tierdocs.TargetDocs, error) {
	docs := &tierdocs.TargetDocs{Name: target}

	var tierSource, metadataSource string
	sectionSources := make(map[string]string)

	for _, e := range s.entries {
		info := e.info
		if !match(info.Pattern, target) {
			continue
		}
		e.used.Store(true)

		docs.Maintainers = append(docs.Maintainers, info.Maintainers...)

		if info.Tier != nil {
			if tierSource != "" {
				return nil, &ConflictError{
					Target: target,
					Kind:   MultipleTierSources,
					First:  tierSource,
					Second: info.Pattern,
				}
			}
			docs.Tier = tierdocs.TierPtr(*info.Tier)
			tierSource = info.Pattern
		}

		for _, section := range info.Sections {
			if first, ok := sectionSources[section.Name]; ok {
				return nil, &ConflictError{
					Target:  target,
					Kind:    MultipleSectionSources,
					Section: section.Name,
					First:   first,
					Second:  info.Pattern,
				}
			}
			sectionSources[section.Name] = info.Pattern
			docs.Sections = append(docs.Sections, section)
		}

		for _, r := range e.rules {
			if !match(r.meta.Pattern, target) {
				continue
			}
			r.used.Store(true)

			source := fmt.Sprintf("%s (metadata %s)", info.Pattern, r.meta.Pattern)
			if metadataSource != "" {
				return nil, &ConflictError{
					Target: target,
					Kind:   MultipleMetadataSources,
					First:  metadataSource,
					Second: source,
				}
			}
			metadataSource = source
			docs.Metadata = &tierdocs.ResolvedMetadata{
				Notes:     r.meta.Notes,
				Std:       r.meta.Std,
				Host:      r.meta.Host,
				Footnotes: append([]tierdocs.Footnote(nil), r.meta.Footnotes...),
			}
		}
	}

	return docs, nil
}

// ResolveAll resolves targets concurrently with at most workers goroutines
// (unbounded when workers <= 0). Results are in the order of targets. The
// first error cancels the remaining work and is returned.
func (s *Store) ResolveAll(ctx context.Context, targets []string, workers int) ([]*tierdocs.TargetDocs, error) {
	results := make([]*tierdocs.TargetDocs, len(targets))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, target := range targets {
		i, target := i, target
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			docs, err := s.Resolve(target)
			if err != nil {
				return err
			}
			results[i] = docs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
