package targetinfo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

// ParseError is a structured parse failure with the position in the original document.
type ParseError struct {
	File    string // Path of the document
	Line    int    // 1-based line number (0 if unknown)
	Message string // Primary error message
	Hint    string // Actionable suggestion for fixing
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	location := e.File
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", e.File, e.Line)
	}

	msg := fmt.Sprintf("target info error in %s: %s", location, e.Message)
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

// Unwrap makes every ParseError match tierdocs.ErrParse.
func (e *ParseError) Unwrap() error {
	return tierdocs.ErrParse
}

var yamlLineRegex = regexp.MustCompile(`line (\d+)`)

// rebaseYAMLError shifts the line numbers in a yaml.v3 error message by offset
// and returns the rewritten message along with the first line it mentions.
func rebaseYAMLError(err error, offset int) (string, int) {
	first := 0
	msg := yamlLineRegex.ReplaceAllStringFunc(err.Error(), func(m string) string {
		n, convErr := strconv.Atoi(strings.TrimPrefix(m, "line "))
		if convErr != nil {
			return m
		}
		if first == 0 {
			first = n + offset
		}
		return fmt.Sprintf("line %d", n+offset)
	})
	msg = strings.TrimPrefix(msg, "yaml: ")
	return msg, first
}

const frontmatterHint = "Expected format:\n" +
	"  ---\n" +
	"  tier: \"1\" | \"2\" | \"3\"          (optional)\n" +
	"  maintainers: [\"@handle\", ...]     (optional)\n" +
	"  metadata:                          (optional)\n" +
	"    - pattern: \"<glob>\"\n" +
	"      notes: \"...\"\n" +
	"      std: true | false | unknown\n" +
	"      host: true | false | unknown\n" +
	"      footnotes: [{name: \"...\", content: \"...\"}]\n" +
	"  ---"
