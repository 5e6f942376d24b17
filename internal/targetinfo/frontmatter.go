package targetinfo

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

const delimiter = "---"

// document is a target info document split at its frontmatter delimiters.
type document struct {
	frontmatter     string
	frontmatterLine int // 1-based line of the opening delimiter
	body            []string
	bodyLine        int // 1-based line of the closing delimiter
}

// splitDocument locates the first two delimiter lines. Text before the first
// delimiter is ignored; a third delimiter is ordinary body text.
func splitDocument(file, content string) (*document, error) {
	lines := strings.Split(content, "\n")

	openIdx, closeIdx := -1, -1
	for i, line := range lines {
		if strings.TrimSuffix(line, "\r") != delimiter {
			continue
		}
		if openIdx < 0 {
			openIdx = i
			continue
		}
		closeIdx = i
		break
	}

	if closeIdx < 0 {
		return nil, &ParseError{
			File:    file,
			Message: "missing frontmatter",
			Hint:    "Target info documents must start with a frontmatter block delimited by two \"---\" lines.\n\n" + frontmatterHint,
		}
	}

	// The newline before the closing delimiter belongs to the frontmatter, so a
	// trailing block scalar keeps its final line break.
	frontmatter := strings.Join(lines[openIdx+1:closeIdx], "\n")
	if frontmatter != "" {
		frontmatter += "\n"
	}

	return &document{
		frontmatter:     frontmatter,
		frontmatterLine: openIdx + 1,
		body:            lines[closeIdx+1:],
		bodyLine:        closeIdx + 1,
	}, nil
}

type rawFrontmatter struct {
	Tier        *tierdocs.Tier `yaml:"tier"`
	Maintainers []string       `yaml:"maintainers"`
	Metadata    []rawMetadata  `yaml:"metadata"`
}

type rawMetadata struct {
	Pattern   *string            `yaml:"pattern"`
	Notes     *string            `yaml:"notes"`
	Std       *tierdocs.TriState `yaml:"std"`
	Host      *tierdocs.TriState `yaml:"host"`
	Footnotes []rawFootnote      `yaml:"footnotes"`

	line int // document line of the entry, 0 when unknown
}

type rawFootnote struct {
	Name    *string `yaml:"name" toml:"name"`
	Content *string `yaml:"content" toml:"content"`

	line int
}

// decodeFrontmatter strictly decodes the YAML block. Empty frontmatter is allowed.
func decodeFrontmatter(file string, doc *document) (*rawFrontmatter, error) {
	var fm rawFrontmatter

	decoder := yaml.NewDecoder(strings.NewReader(doc.frontmatter))
	decoder.KnownFields(true)
	if err := decoder.Decode(&fm); err != nil && !errors.Is(err, io.EOF) {
		msg, line := rebaseYAMLError(err, doc.frontmatterLine)
		return nil, &ParseError{
			File:    file,
			Line:    line,
			Message: "invalid frontmatter: " + msg,
			Hint:    frontmatterHint,
		}
	}

	annotateLines(&fm, doc)
	return &fm, nil
}

// annotateLines records the document line of every metadata entry and
// footnote so that missing-field errors point at the entry itself.
func annotateLines(fm *rawFrontmatter, doc *document) {
	var root yaml.Node
	if err := yaml.Unmarshal([]byte(doc.frontmatter), &root); err != nil || len(root.Content) == 0 {
		return
	}

	entries := mappingValue(root.Content[0], "metadata")
	if entries == nil || entries.Kind != yaml.SequenceNode {
		return
	}
	for i, entry := range entries.Content {
		if i >= len(fm.Metadata) {
			break
		}
		fm.Metadata[i].line = doc.frontmatterLine + entry.Line

		footnotes := mappingValue(entry, "footnotes")
		if footnotes == nil || footnotes.Kind != yaml.SequenceNode {
			continue
		}
		for j, footnote := range footnotes.Content {
			if j >= len(fm.Metadata[i].Footnotes) {
				break
			}
			fm.Metadata[i].Footnotes[j].line = doc.frontmatterLine + footnote.Line
		}
	}
}

func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

// buildMetadata checks required fields and converts raw rules into domain values.
func buildMetadata(file string, raw []rawMetadata) ([]tierdocs.TargetMetadata, error) {
	var result []tierdocs.TargetMetadata

	for i, m := range raw {
		missingAt := func(line int, field string) error {
			return &ParseError{
				File:    file,
				Line:    line,
				Message: fmt.Sprintf("metadata[%d]: missing required field %q", i, field),
				Hint:    frontmatterHint,
			}
		}
		missing := func(field string) error { return missingAt(m.line, field) }

		switch {
		case m.Pattern == nil:
			return nil, missing("pattern")
		case m.Notes == nil:
			return nil, missing("notes")
		case m.Std == nil:
			return nil, missing("std")
		case m.Host == nil:
			return nil, missing("host")
		}

		meta := tierdocs.TargetMetadata{
			Pattern: *m.Pattern,
			Notes:   *m.Notes,
			Std:     *m.Std,
			Host:    *m.Host,
		}

		for j, f := range m.Footnotes {
			if f.Name == nil {
				return nil, missingAt(f.line, fmt.Sprintf("footnotes[%d].name", j))
			}
			if f.Content == nil {
				return nil, missingAt(f.line, fmt.Sprintf("footnotes[%d].content", j))
			}
			meta.Footnotes = append(meta.Footnotes, tierdocs.Footnote{
				Name:    *f.Name,
				Content: collapseNewlines(*f.Content),
			})
		}

		result = append(result, meta)
	}

	return result, nil
}

// collapseNewlines keeps footnotes on one line so they stay inside a table footnote.
func collapseNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	return strings.ReplaceAll(s, "\n", " ")
}
