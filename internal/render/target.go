package render

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

const (
	unknownSection  = "Unknown."
	noMaintainers   = "This target does not have any maintainers!"
	maintainedBy    = "This target is maintained by:"
	cfgIntroduction = "This target defines the following target-specific cfg values:"
)

// TargetPage renders the page of one target. Sections are emitted in
// vocabulary order; missing ones read "Unknown.".
func TargetPage(docs *tierdocs.TargetDocs, facts tierdocs.Facts, sections tierdocs.SectionVocabulary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", docs.Name)
	if facts.Spec != nil && facts.Spec.Description != "" {
		fmt.Fprintf(&b, "*%s*\n\n", strings.TrimSpace(facts.Spec.Description))
	}
	fmt.Fprintf(&b, "**Tier: %s**\n\n", tierdocs.TierLabel(docs.Tier))

	writeSection(&b, "Maintainers", maintainersSection(docs.Maintainers))

	for _, name := range sections {
		content, ok := docs.Section(name)
		if !ok {
			content = unknownSection
		}
		writeSection(&b, name, content)
	}

	writeSection(&b, "cfg", cfgSection(facts.Cfg))

	return b.String()
}

func writeSection(b *strings.Builder, name, content string) {
	b.WriteString("## ")
	b.WriteString(strings.TrimSpace(name))
	b.WriteByte('\n')
	b.WriteString(strings.TrimSpace(content))
	b.WriteString("\n\n")
}

func maintainersSection(maintainers []string) string {
	if len(maintainers) == 0 {
		return noMaintainers
	}

	lines := make([]string, 0, len(maintainers)+1)
	lines = append(lines, maintainedBy)
	for _, m := range maintainers {
		lines = append(lines, "- "+Maintainer(m))
	}
	return strings.Join(lines, "\n")
}

// Maintainer renders a GitHub handle ("@name", no spaces) as a profile link
// and anything else as literal text.
func Maintainer(m string) string {
	handle, ok := strings.CutPrefix(m, "@")
	if !ok || strings.Contains(m, " ") {
		return m
	}
	return fmt.Sprintf("[@%s](https://github.com/%s)", handle, handle)
}

func cfgSection(cfg []tierdocs.KeyValue) string {
	lines := make([]string, 0, len(cfg)+1)
	lines = append(lines, cfgIntroduction)
	for _, kv := range cfg {
		if kv.Value == "" {
			lines = append(lines, fmt.Sprintf("- `%s`", kv.Key))
			continue
		}
		lines = append(lines, fmt.Sprintf("- `%s` = `%s`", kv.Key, kv.Value))
	}
	return strings.Join(lines, "\n")
}
