package resolve

import (
	"errors"
)

// Validate reports every document and nested metadata rule that has not
// matched any target yet. Call it after every known target was resolved.
// The returned error joins one *UnusedPatternError per unused pattern.
func (s *Store) Validate() error {
	var errs []error

	for _, e := range s.entries {
		if !e.used.Load() {
			errs = append(errs, &UnusedPatternError{
				Pattern: e.info.Pattern,
				Source:  e.info.Source,
			})
		}
		for _, r := range e.rules {
			if !r.used.Load() {
				errs = append(errs, &UnusedPatternError{
					Pattern:         e.info.Pattern,
					MetadataPattern: r.meta.Pattern,
					Source:          e.info.Source,
				})
			}
		}
	}

	return errors.Join(errs...)
}
