package targetinfo

import (
	"fmt"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

const (
	fencePrefix   = "```"
	sectionPrefix = "## "
)

// Parse parses a Markdown target info document.
//
// Parameters:
//   - name: Pattern of the document (file name without extension)
//   - source: Path used in error messages
//   - content: Full document text
//   - sections: Allowed section names
//
// All errors are *ParseError values wrapping tierdocs.ErrParse.
func Parse(name, source, content string, sections tierdocs.SectionVocabulary) (*tierdocs.TargetInfo, error) {
	doc, err := splitDocument(source, content)
	if err != nil {
		return nil, err
	}

	fm, err := decodeFrontmatter(source, doc)
	if err != nil {
		return nil, err
	}

	metadata, err := buildMetadata(source, fm.Metadata)
	if err != nil {
		return nil, err
	}

	body, err := scanBody(source, doc, sections)
	if err != nil {
		return nil, err
	}

	return &tierdocs.TargetInfo{
		Pattern:     name,
		Source:      source,
		Tier:        fm.Tier,
		Maintainers: fm.Maintainers,
		Sections:    body,
		Metadata:    metadata,
	}, nil
}

// bodyScanner is the two-state line scanner over a document body.
type bodyScanner struct {
	file       string
	vocabulary tierdocs.SectionVocabulary
	inFence    bool
	sections   []tierdocs.Section
	contents   []*strings.Builder
}

func scanBody(file string, doc *document, vocabulary tierdocs.SectionVocabulary) ([]tierdocs.Section, error) {
	s := &bodyScanner{file: file, vocabulary: vocabulary}

	for idx, raw := range doc.body {
		line := strings.TrimSuffix(raw, "\r")
		if err := s.scanLine(line, doc.bodyLine+idx+1); err != nil {
			return nil, err
		}
	}

	for i := range s.sections {
		s.sections[i].Content = strings.TrimSpace(s.contents[i].String())
	}
	return s.sections, nil
}

func (s *bodyScanner) scanLine(line string, number int) error {
	switch {
	case strings.HasPrefix(line, fencePrefix):
		s.inFence = !s.inFence
		return s.appendLine(line, number)

	case s.inFence:
		return s.appendLine(line, number)

	case strings.HasPrefix(line, sectionPrefix):
		return s.openSection(strings.TrimPrefix(line, sectionPrefix), number)

	case strings.HasPrefix(line, "#"):
		return &ParseError{
			File:    s.file,
			Line:    number,
			Message: fmt.Sprintf("the only allowed headings are `## `: `%s`", line),
			Hint:    "Use \"## <section>\" for sections. Headings inside ``` fences are kept as text.",
		}

	default:
		return s.appendLine(line, number)
	}
}

func (s *bodyScanner) openSection(name string, number int) error {
	if !s.vocabulary.Contains(name) {
		return &ParseError{
			File:    s.file,
			Line:    number,
			Message: fmt.Sprintf("`%s` is not an allowed section name", name),
			Hint:    "Section names must be one of: " + strings.Join(s.vocabulary, ", "),
		}
	}

	for _, existing := range s.sections {
		if existing.Name == name {
			return &ParseError{
				File:    s.file,
				Line:    number,
				Message: fmt.Sprintf("section `%s` is declared more than once", name),
				Hint:    "Merge the duplicate sections into one.",
			}
		}
	}

	s.sections = append(s.sections, tierdocs.Section{Name: name})
	s.contents = append(s.contents, &strings.Builder{})
	return nil
}

func (s *bodyScanner) appendLine(line string, number int) error {
	if len(s.sections) == 0 {
		if strings.TrimSpace(line) == "" {
			return nil
		}
		return &ParseError{
			File:    s.file,
			Line:    number,
			Message: "content is not allowed before the first section heading",
			Hint:    "Start the body with a \"## <section>\" heading.",
		}
	}

	current := s.contents[len(s.contents)-1]
	current.WriteString(line)
	current.WriteByte('\n')
	return nil
}
