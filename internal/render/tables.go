package render

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// TierTable describes one generated table of platform-support.md.
type TierTable struct {
	// Region is the marker name the table is spliced into
	Region string

	// Filter selects the targets listed in the table
	Filter func(*tierdocs.TargetDocs) bool

	// IncludeStd adds the std support column
	IncludeStd bool

	// IncludeHost adds the host tools column
	IncludeHost bool
}

// DefaultTierTables returns the four tables of platform-support.md.
func DefaultTierTables() []TierTable {
	return []TierTable{
		{
			Region: "TIER1HOST",
			Filter: func(d *tierdocs.TargetDocs) bool { return d.HasTier(tierdocs.TierOne) },
		},
		{
			Region: "TIER2HOST",
			Filter: func(d *tierdocs.TargetDocs) bool { return d.HasTier(tierdocs.TierTwo) && d.HasHostTools() },
		},
		{
			Region:     "TIER2",
			Filter:     func(d *tierdocs.TargetDocs) bool { return d.HasTier(tierdocs.TierTwo) && !d.HasHostTools() },
			IncludeStd: true,
		},
		{
			Region:      "TIER3",
			Filter:      func(d *tierdocs.TargetDocs) bool { return d.HasTier(tierdocs.TierThree) },
			IncludeStd:  true,
			IncludeHost: true,
		},
	}
}

// Glyph renders a tri-state table cell.
func Glyph(s tierdocs.TriState) string {
	switch s {
	case tierdocs.TriStateTrue:
		return "✓"
	case tierdocs.TriStateFalse:
		return " "
	default:
		return "?"
	}
}

// RenderTable renders the rows of one tier table followed by the footnotes
// its rows reference. Each footnote is listed once, in first-seen order.
func RenderTable(targets []*tierdocs.TargetDocs, table TierTable, linkPrefix string) string {
	var rows []string
	var footnotes []tierdocs.Footnote
	seen := make(map[string]bool)

	for _, target := range targets {
		if table.Filter != nil && !table.Filter(target) {
			continue
		}

		meta := target.Metadata
		notes := "unknown"
		std, host := "?", "?"

		if meta != nil {
			notes = meta.Notes
			std, host = Glyph(meta.Std), Glyph(meta.Host)

			if len(meta.Footnotes) > 0 {
				refs := make([]string, 0, len(meta.Footnotes))
				for _, f := range meta.Footnotes {
					refs = append(refs, f.Reference())
					if !seen[f.Name] {
						seen[f.Name] = true
						footnotes = append(footnotes, f)
					}
				}
				notes = notes + " " + strings.Join(refs, " ")
			}
		}

		var row strings.Builder
		fmt.Fprintf(&row, "[`%s`](%s/%s.md)", target.Name, linkPrefix, target.Name)
		if table.IncludeStd {
			row.WriteString(" | " + std)
		}
		if table.IncludeHost {
			row.WriteString(" | " + host)
		}
		row.WriteString(" | " + notes)
		rows = append(rows, row.String())
	}

	var b strings.Builder
	b.WriteString(strings.Join(rows, "\n"))
	for _, f := range footnotes {
		fmt.Fprintf(&b, "\n\n%s: %s", f.Reference(), f.Content)
	}
	return b.String()
}

// PlatformSupport splices every table into the content of platform-support.md.
func PlatformSupport(content string, targets []*tierdocs.TargetDocs, tables []TierTable, linkPrefix string) (string, error) {
	for _, table := range tables {
		var err error
		content, err = ReplaceRegion(content, table.Region, RenderTable(targets, table, linkPrefix))
		if err != nil {
			return "", err
		}
	}
	return content, nil
}
