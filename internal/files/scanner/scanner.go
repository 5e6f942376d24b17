package scanner

import (
	"fmt"
	"path"
	"strings"

	"github.com/vvka-141/tierdocs/internal/checksum"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/internal/targetinfo"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

const (
	markdownExt = ".md"
	legacyExt   = ".toml"
)

// Scanner discovers and parses target info documents.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided calculator and fsProvider are also thread-safe.
type Scanner struct {
	calculator checksum.Calculator
	fsProvider filesystem.FileSystemProvider
}

// NewScanner creates a new scanner over the OS filesystem.
// Panics if calculator is nil.
func NewScanner(calculator checksum.Calculator) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: filesystem.NewOSFileSystem(),
	}
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// Panics if calculator or fsProvider is nil.
func NewScannerWithFS(calculator checksum.Calculator, fsProvider filesystem.FileSystemProvider) *Scanner {
	if calculator == nil {
		panic("calculator cannot be nil")
	}
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	return &Scanner{
		calculator: calculator,
		fsProvider: fsProvider,
	}
}

// document is a discovered, not yet parsed, target info file.
type document struct {
	pattern string
	path    string
	legacy  bool
	content []byte
}

// ScanDirectory parses every target info document in sourcePath, in file
// name order. It stops at the first document that fails to parse.
func (s *Scanner) ScanDirectory(sourcePath string, sections tierdocs.SectionVocabulary) ([]*tierdocs.TargetInfo, error) {
	docs, err := s.discover(sourcePath)
	if err != nil {
		return nil, err
	}

	infos := make([]*tierdocs.TargetInfo, 0, len(docs))
	for _, doc := range docs {
		parse := targetinfo.Parse
		if doc.legacy {
			parse = targetinfo.ParseLegacyTOML
		}

		info, err := parse(doc.pattern, doc.path, string(doc.content), sections)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", doc.path, err)
		}
		infos = append(infos, info)
	}

	return infos, nil
}

// Fingerprint returns a checksum over the names and contents of every
// document in sourcePath. It changes only when a document is added, removed,
// renamed or edited.
func (s *Scanner) Fingerprint(sourcePath string) (string, error) {
	docs, err := s.discover(sourcePath)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, doc := range docs {
		b.WriteString(doc.path)
		b.WriteByte(0)
		b.WriteString(s.calculator.CalculateRaw(doc.content))
		b.WriteByte('\n')
	}
	return s.calculator.CalculateRaw([]byte(b.String())), nil
}

func (s *Scanner) discover(sourcePath string) ([]document, error) {
	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open target info directory: %w", err)
	}

	var docs []document
	seen := make(map[string]string)

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		relPath := file.RelativePath()
		if relPath == "." || isHidden(relPath) {
			return nil
		}

		if file.Info().IsDir() || strings.Contains(relPath, "/") {
			return &targetinfo.ParseError{
				File:    file.Path(),
				Message: "nested directories are not supported",
				Hint:    "Keep every target info document directly inside the target info directory.",
			}
		}

		name := file.Info().Name()
		ext := path.Ext(name)
		if ext != markdownExt && ext != legacyExt {
			return &targetinfo.ParseError{
				File:    file.Path(),
				Message: "target info files must end with .md (or .toml for the legacy format)",
			}
		}

		pattern := strings.TrimSuffix(name, ext)
		if previous, ok := seen[pattern]; ok {
			return &targetinfo.ParseError{
				File:    file.Path(),
				Message: fmt.Sprintf("pattern %q is already declared by %s", pattern, previous),
				Hint:    "Each pattern may be declared by one document only. Remove the legacy .toml copy after converting it.",
			}
		}
		seen[pattern] = file.Path()

		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", file.Path(), err)
		}

		docs = append(docs, document{
			pattern: pattern,
			path:    file.Path(),
			legacy:  ext == legacyExt,
			content: content,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return docs, nil
}

// isHidden reports whether any segment of a slash-separated relative path starts with a dot.
func isHidden(relPath string) bool {
	for _, segment := range strings.Split(relPath, "/") {
		if strings.HasPrefix(segment, ".") {
			return true
		}
	}
	return false
}

// Verify Scanner implements the interface at compile time
var _ tierdocs.TargetInfoScanner = (*Scanner)(nil)
