package render

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// MarkerError reports a region marker missing from a static file.
type MarkerError struct {
	Region string
	Marker string
}

func (e *MarkerError) Error() string {
	return fmt.Sprintf("region %s: marker %q not found\n\n"+
		"Hint: Add the lines %q and %q where the generated content belongs.",
		e.Region, e.Marker, StartMarker(e.Region), EndMarker(e.Region))
}

// Unwrap makes every MarkerError match tierdocs.ErrMarkerNotFound.
func (e *MarkerError) Unwrap() error {
	return tierdocs.ErrMarkerNotFound
}

// StartMarker returns the line opening a generated region.
func StartMarker(region string) string {
	return fmt.Sprintf("<!-- %s SECTION START -->", region)
}

// EndMarker returns the line closing a generated region.
func EndMarker(region string) string {
	return fmt.Sprintf("<!-- %s SECTION END -->", region)
}

// ReplaceRegion replaces the text between the first start marker of region and
// the first end marker after it. The markers and all text outside them are kept.
func ReplaceRegion(content, region, replacement string) (string, error) {
	start, end := StartMarker(region), EndMarker(region)

	pre, rest, ok := strings.Cut(content, start)
	if !ok {
		return "", &MarkerError{Region: region, Marker: start}
	}

	_, post, ok := strings.Cut(rest, end)
	if !ok {
		return "", &MarkerError{Region: region, Marker: end}
	}

	var b strings.Builder
	b.Grow(len(pre) + len(start) + len(replacement) + len(end) + len(post) + 2)
	b.WriteString(pre)
	b.WriteString(start)
	b.WriteByte('\n')
	b.WriteString(replacement)
	b.WriteByte('\n')
	b.WriteString(end)
	b.WriteString(post)
	return b.String(), nil
}
