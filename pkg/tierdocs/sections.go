package tierdocs

import "slices"

// SectionVocabulary is the ordered set of section names a target info
// document may declare. The parser validates against it and the renderer
// emits sections in its order, so both must be given the same value.
type SectionVocabulary []string

// DefaultSections is the section vocabulary of the platform support docs.
var DefaultSections = SectionVocabulary{
	"Requirements",
	"Testing",
	"Building",
	"Cross compilation",
	"Building Rust programs",
}

// Contains reports whether name is an allowed section name.
func (v SectionVocabulary) Contains(name string) bool {
	return slices.Contains(v, name)
}

// Index returns the position of name in the vocabulary, or -1.
func (v SectionVocabulary) Index(name string) int {
	return slices.Index(v, name)
}
