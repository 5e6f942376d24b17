// Package targetinfo parses target info documents into tierdocs.TargetInfo values.
//
// # Document Format
//
// A target info document is a Markdown file whose name (without extension) is a
// glob pattern matched against target names. It starts with a YAML frontmatter
// block followed by a sectioned body:
//
//	---
//	tier: "3"
//	maintainers: ["@ferris"]
//	metadata:
//	  - pattern: "x86_64-demo-*"
//	    notes: "Demo OS"
//	    std: true
//	    host: false
//	---
//
//	## Requirements
//
//	The target needs a demo kernel.
//
// The frontmatter is the text between the first two lines consisting of exactly
// "---". Unknown frontmatter keys are rejected.
//
// # Body Rules
//
// The body is scanned one line at a time:
//   - "## <name>" opens a section; name must be in the section vocabulary and
//     may appear only once per document
//   - any other heading outside a code fence is an error
//   - lines between ``` fences are taken verbatim, headings included
//   - non-blank text before the first section is an error
//
// Section bodies are trimmed of surrounding whitespace.
//
// # Legacy Format
//
// ParseLegacyTOML accepts the older TOML form, where sections are a table
// keyed by section name.
package targetinfo
