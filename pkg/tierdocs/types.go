package tierdocs

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Tier is the support tier of a target.
type Tier int

const (
	TierOne Tier = iota + 1
	TierTwo
	TierThree
)

// ParseTier parses the textual form used in target info documents ("1", "2" or "3").
func ParseTier(s string) (Tier, error) {
	switch strings.TrimSpace(s) {
	case "1":
		return TierOne, nil
	case "2":
		return TierTwo, nil
	case "3":
		return TierThree, nil
	default:
		return 0, fmt.Errorf("invalid tier %q, must be one of \"1\", \"2\", \"3\"", s)
	}
}

// String returns "1", "2" or "3".
func (t Tier) String() string {
	switch t {
	case TierOne:
		return "1"
	case TierTwo:
		return "2"
	case TierThree:
		return "3"
	default:
		return fmt.Sprintf("Tier(%d)", int(t))
	}
}

// IsValid returns true if the Tier is a defined value.
func (t Tier) IsValid() bool {
	return t >= TierOne && t <= TierThree
}

// UnmarshalText accepts both quoted and bare scalars in YAML and TOML.
func (t *Tier) UnmarshalText(text []byte) error {
	parsed, err := ParseTier(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// UnmarshalYAML reports invalid tiers as type errors so the decoder keeps the line number.
func (t *Tier) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: tier must be a scalar", node.Line)}}
	}
	parsed, err := ParseTier(node.Value)
	if err != nil {
		return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: %v", node.Line, err)}}
	}
	*t = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (t Tier) MarshalText() ([]byte, error) {
	if !t.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid tier %d", int(t))
	}
	return []byte(t.String()), nil
}

// TierLabel renders an optional tier. An absent tier is a valid state and renders as "UNKNOWN".
func TierLabel(t *Tier) string {
	if t == nil {
		return "UNKNOWN"
	}
	return t.String()
}

// TierPtr returns a pointer to t.
func TierPtr(t Tier) *Tier {
	return &t
}

// TriState is a boolean that may also be explicitly unknown.
// The zero value is not valid; documents must state true, false or unknown.
type TriState int

const (
	TriStateTrue TriState = iota + 1
	TriStateFalse
	TriStateUnknown
)

// ParseTriState parses "true", "false" or "unknown".
func ParseTriState(s string) (TriState, error) {
	switch strings.TrimSpace(s) {
	case "true":
		return TriStateTrue, nil
	case "false":
		return TriStateFalse, nil
	case "unknown":
		return TriStateUnknown, nil
	default:
		return 0, fmt.Errorf("invalid value %q, must be one of true, false, unknown", s)
	}
}

func (s TriState) String() string {
	switch s {
	case TriStateTrue:
		return "true"
	case TriStateFalse:
		return "false"
	case TriStateUnknown:
		return "unknown"
	default:
		return fmt.Sprintf("TriState(%d)", int(s))
	}
}

// IsValid returns true if the TriState is a defined value.
func (s TriState) IsValid() bool {
	return s >= TriStateTrue && s <= TriStateUnknown
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *TriState) UnmarshalText(text []byte) error {
	parsed, err := ParseTriState(string(text))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (s *TriState) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: expected true, false or unknown", node.Line)}}
	}
	parsed, err := ParseTriState(node.Value)
	if err != nil {
		return &yaml.TypeError{Errors: []string{fmt.Sprintf("line %d: %v", node.Line, err)}}
	}
	*s = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s TriState) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("cannot marshal invalid tri-state %d", int(s))
	}
	return []byte(s.String()), nil
}

// Footnote is a named note attached to a row of a tier table.
type Footnote struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// Reference returns the Markdown footnote marker, e.g. "[^musl]".
func (f Footnote) Reference() string {
	return "[^" + f.Name + "]"
}

// TargetMetadata is a nested rule of a target info document. Its pattern is
// only evaluated for targets that the enclosing document's pattern matches.
type TargetMetadata struct {
	Pattern   string     `yaml:"pattern"`
	Notes     string     `yaml:"notes"`
	Std       TriState   `yaml:"std"`
	Host      TriState   `yaml:"host"`
	Footnotes []Footnote `yaml:"footnotes,omitempty"`
}

// Section is one "## <name>" block of a target info document.
type Section struct {
	Name    string `yaml:"name"`
	Content string `yaml:"content"`
}

// TargetInfo is one parsed target info document. The pattern is taken from
// the file name and is matched against target names as a glob.
type TargetInfo struct {
	Pattern     string
	Source      string
	Tier        *Tier
	Maintainers []string
	Sections    []Section
	Metadata    []TargetMetadata
}

// Section returns the content of the named section and whether it was declared.
func (t *TargetInfo) Section(name string) (string, bool) {
	return findSection(t.Sections, name)
}

// ResolvedMetadata is the metadata block adopted by a single target.
type ResolvedMetadata struct {
	Notes     string     `yaml:"notes"`
	Std       TriState   `yaml:"std"`
	Host      TriState   `yaml:"host"`
	Footnotes []Footnote `yaml:"footnotes,omitempty"`
}

// TargetDocs is the merged documentation of one concrete target.
type TargetDocs struct {
	Name        string            `yaml:"name"`
	Tier        *Tier             `yaml:"tier,omitempty"`
	Maintainers []string          `yaml:"maintainers"`
	Sections    []Section         `yaml:"sections"`
	Metadata    *ResolvedMetadata `yaml:"metadata,omitempty"`
}

// Section returns the content of the named section and whether any source declared it.
func (d *TargetDocs) Section(name string) (string, bool) {
	return findSection(d.Sections, name)
}

// HasHostTools reports whether the target's metadata declares host tools.
func (d *TargetDocs) HasHostTools() bool {
	return d.Metadata != nil && d.Metadata.Host == TriStateTrue
}

// HasTier reports whether the target resolved to the given tier.
func (d *TargetDocs) HasTier(t Tier) bool {
	return d.Tier != nil && *d.Tier == t
}

func findSection(sections []Section, name string) (string, bool) {
	for _, s := range sections {
		if s.Name == name {
			return s.Content, true
		}
	}
	return "", false
}
