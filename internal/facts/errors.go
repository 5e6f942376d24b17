package facts

import (
	"fmt"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// Error reports a fact provider failure for one target (or for the target
// list when Target is empty).
type Error struct {
	Target string
	Err    error
}

func (e *Error) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("listing targets: %v", e.Err)
	}
	return fmt.Sprintf("fetching facts for %s: %v", e.Target, e.Err)
}

// Unwrap exposes both tierdocs.ErrFactProvider and the underlying cause.
func (e *Error) Unwrap() []error {
	return []error{tierdocs.ErrFactProvider, e.Err}
}
