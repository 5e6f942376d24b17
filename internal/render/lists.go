package render

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// TargetListRegion is the marker region of platform-support/targets.md.
const TargetListRegion = "TARGET"

// TargetList renders the bulleted list of target pages for platform-support/targets.md.
func TargetList(targets []*tierdocs.TargetDocs, linkPrefix string) string {
	lines := make([]string, 0, len(targets))
	for _, t := range targets {
		lines = append(lines, fmt.Sprintf("- [%s](%s/%s.md)", t.Name, linkPrefix, t.Name))
	}
	return strings.Join(lines, "\n")
}

// Summary renders the SUMMARY.md index that sits next to the target pages.
func Summary(targets []*tierdocs.TargetDocs) string {
	var b strings.Builder
	b.WriteString("# All targets\n")
	for _, t := range targets {
		fmt.Fprintf(&b, "- [%s](./%s.md)\n", t.Name, t.Name)
	}
	return b.String()
}
