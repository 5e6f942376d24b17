package targetinfo

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

type legacyDocument struct {
	Tier        any               `toml:"tier"`
	Maintainers []string          `toml:"maintainers"`
	Sections    map[string]string `toml:"sections"`
	Metadata    []legacyMetadata  `toml:"metadata"`
}

type legacyMetadata struct {
	Pattern   *string       `toml:"pattern"`
	Notes     *string       `toml:"notes"`
	Std       any           `toml:"std"`
	Host      any           `toml:"host"`
	Footnotes []rawFootnote `toml:"footnotes"`
}

const legacyHint = "Legacy documents are TOML:\n" +
	"  tier = \"3\"\n" +
	"  maintainers = [\"@handle\"]\n" +
	"  [sections]\n" +
	"  \"Requirements\" = \"...\"\n" +
	"  [[metadata]]\n" +
	"  pattern = \"<glob>\"\n" +
	"  notes = \"...\"\n" +
	"  std = true\n" +
	"  host = \"unknown\"\n\n" +
	"Consider converting the document to Markdown with `tierdocs new`."

// ParseLegacyTOML parses the older TOML form of a target info document.
// Sections are emitted in vocabulary order.
func ParseLegacyTOML(name, source, content string, sections tierdocs.SectionVocabulary) (*tierdocs.TargetInfo, error) {
	var doc legacyDocument

	decoder := toml.NewDecoder(strings.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&doc); err != nil {
		return nil, wrapTOMLError(err, source)
	}

	info := &tierdocs.TargetInfo{
		Pattern:     name,
		Source:      source,
		Maintainers: doc.Maintainers,
	}

	if doc.Tier != nil {
		tier, err := tierdocs.ParseTier(fmt.Sprint(doc.Tier))
		if err != nil {
			return nil, &ParseError{File: source, Message: err.Error(), Hint: legacyHint}
		}
		info.Tier = &tier
	}

	names := make([]string, 0, len(doc.Sections))
	for sectionName := range doc.Sections {
		names = append(names, sectionName)
	}
	sort.Strings(names)
	for _, sectionName := range names {
		if !sections.Contains(sectionName) {
			return nil, &ParseError{
				File:    source,
				Message: fmt.Sprintf("`%s` is not an allowed section name", sectionName),
				Hint:    "Section names must be one of: " + strings.Join(sections, ", "),
			}
		}
	}
	for _, sectionName := range sections {
		if content, ok := doc.Sections[sectionName]; ok {
			info.Sections = append(info.Sections, tierdocs.Section{
				Name:    sectionName,
				Content: strings.TrimSpace(content),
			})
		}
	}

	raw := make([]rawMetadata, 0, len(doc.Metadata))
	for i, m := range doc.Metadata {
		std, err := legacyTriState(source, i, "std", m.Std)
		if err != nil {
			return nil, err
		}
		host, err := legacyTriState(source, i, "host", m.Host)
		if err != nil {
			return nil, err
		}
		raw = append(raw, rawMetadata{
			Pattern:   m.Pattern,
			Notes:     m.Notes,
			Std:       std,
			Host:      host,
			Footnotes: m.Footnotes,
		})
	}

	metadata, err := buildMetadata(source, raw)
	if err != nil {
		return nil, err
	}
	info.Metadata = metadata

	return info, nil
}

// legacyTriState accepts TOML booleans as well as the strings "true", "false" and "unknown".
func legacyTriState(source string, index int, field string, value any) (*tierdocs.TriState, error) {
	if value == nil {
		return nil, nil
	}
	state, err := tierdocs.ParseTriState(fmt.Sprint(value))
	if err != nil {
		return nil, &ParseError{
			File:    source,
			Message: fmt.Sprintf("metadata[%d].%s: %v", index, field, err),
			Hint:    legacyHint,
		}
	}
	return &state, nil
}

func wrapTOMLError(err error, source string) error {
	var strictErr *toml.StrictMissingError
	if errors.As(err, &strictErr) && len(strictErr.Errors) > 0 {
		first := strictErr.Errors[0]
		row, _ := first.Position()
		return &ParseError{
			File:    source,
			Line:    row,
			Message: fmt.Sprintf("unknown field %s", strings.Join(first.Key(), ".")),
			Hint:    legacyHint,
		}
	}

	var decodeErr *toml.DecodeError
	if errors.As(err, &decodeErr) {
		row, _ := decodeErr.Position()
		return &ParseError{
			File:    source,
			Line:    row,
			Message: "invalid TOML: " + decodeErr.Error(),
			Hint:    legacyHint,
		}
	}

	return &ParseError{File: source, Message: "invalid TOML: " + err.Error(), Hint: legacyHint}
}
