package scaffold

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"

	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

//go:embed all:templates
var templatesFS embed.FS

const projectTemplate = "templates/project"

// ErrExists is returned instead of overwriting an existing file or a non-empty directory.
var ErrExists = errors.New("already exists")

// TargetInfoOptions are the frontmatter values of a new target info document.
type TargetInfoOptions struct {
	Tier        *tierdocs.Tier
	Maintainers []string
	Sections    tierdocs.SectionVocabulary
}

// Scaffolder creates projects and target info documents.
type Scaffolder struct {
	fsProvider filesystem.WritableFileSystem
	templates  filesystem.FileSystemProvider
	logger     tierdocs.Logger
}

// NewScaffolder creates a Scaffolder writing through fsProvider.
func NewScaffolder(fsProvider filesystem.WritableFileSystem, logger tierdocs.Logger) *Scaffolder {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Scaffolder{
		fsProvider: fsProvider,
		templates:  filesystem.NewEmbedFileSystem(templatesFS, projectTemplate),
		logger:     logger,
	}
}

// CreateProject copies the project template into targetPath, which must be
// empty or missing. It returns the created files relative to targetPath.
func (s *Scaffolder) CreateProject(projectName, targetPath string) ([]string, error) {
	empty, err := s.isDirectoryEmpty(targetPath)
	if err != nil {
		return nil, err
	}
	if !empty {
		return nil, fmt.Errorf("target directory '%s' is not empty: %w\n\nHint: choose a new directory for the project", targetPath, ErrExists)
	}

	dir, err := s.templates.Open(".")
	if err != nil {
		return nil, fmt.Errorf("opening project template: %w", err)
	}

	var created []string
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if file.Info().IsDir() {
			return nil
		}

		content, err := file.ReadContent()
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", file.RelativePath(), err)
		}
		content = []byte(strings.ReplaceAll(string(content), "{{PROJECT_NAME}}", projectName))

		dest := filepath.Join(targetPath, filepath.FromSlash(file.RelativePath()))
		s.logger.Verbose("Creating file: %s", file.RelativePath())
		if err := s.fsProvider.WriteFile(dest, content); err != nil {
			return fmt.Errorf("failed to write file %s: %w", dest, err)
		}
		created = append(created, file.RelativePath())
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(created)
	return created, nil
}

func (s *Scaffolder) isDirectoryEmpty(p string) (bool, error) {
	info, err := s.fsProvider.Stat(p)
	if errors.Is(err, fs.ErrNotExist) {
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check directory: %w", err)
	}
	if !info.IsDir() {
		return false, fmt.Errorf("'%s' exists but is not a directory: %w", p, ErrExists)
	}

	dir, err := s.fsProvider.Open(p)
	if err != nil {
		return false, err
	}

	errNotEmpty := errors.New("not empty")
	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return err
		}
		if file.RelativePath() != "." {
			return errNotEmpty
		}
		return nil
	})
	if errors.Is(err, errNotEmpty) {
		return false, nil
	}
	return err == nil, err
}

// ValidatePattern checks that pattern can name a target info document.
func ValidatePattern(pattern string) error {
	switch {
	case pattern == "":
		return fmt.Errorf("pattern cannot be empty: %w", tierdocs.ErrInvalidConfig)
	case strings.ContainsAny(pattern, `/\`):
		return fmt.Errorf("pattern %q cannot contain path separators: %w", pattern, tierdocs.ErrInvalidConfig)
	case strings.HasPrefix(pattern, "."):
		return fmt.Errorf("pattern %q cannot start with a dot: %w", pattern, tierdocs.ErrInvalidConfig)
	case !doublestar.ValidatePattern(pattern):
		return fmt.Errorf("pattern %q is not a valid glob: %w", pattern, tierdocs.ErrInvalidConfig)
	}
	return nil
}

// NewTargetInfo writes <dir>/<pattern>.md with the given frontmatter and one
// empty heading per section. It refuses to replace an existing document of
// the same pattern, in either format.
func (s *Scaffolder) NewTargetInfo(dir, pattern string, opts TargetInfoOptions) (string, error) {
	if err := ValidatePattern(pattern); err != nil {
		return "", err
	}

	for _, ext := range []string{".md", ".toml"} {
		existing := filepath.Join(dir, pattern+ext)
		if _, err := s.fsProvider.Stat(existing); err == nil {
			return "", fmt.Errorf("%s: %w\n\nHint: edit the existing document instead", existing, ErrExists)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
	}

	content, err := RenderTargetInfo(opts)
	if err != nil {
		return "", err
	}

	dest := filepath.Join(dir, pattern+".md")
	if err := s.fsProvider.WriteFile(dest, []byte(content)); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", dest, err)
	}
	s.logger.Verbose("Created %s", dest)
	return dest, nil
}

type frontmatter struct {
	Tier        *tierdocs.Tier `yaml:"tier,omitempty"`
	Maintainers []string       `yaml:"maintainers,omitempty"`
}

// RenderTargetInfo renders the content of a new target info document.
func RenderTargetInfo(opts TargetInfoOptions) (string, error) {
	var b strings.Builder
	b.WriteString("---\n")

	fm := frontmatter{Tier: opts.Tier, Maintainers: opts.Maintainers}
	if fm.Tier != nil || len(fm.Maintainers) > 0 {
		data, err := yaml.Marshal(fm)
		if err != nil {
			return "", fmt.Errorf("rendering frontmatter: %w", err)
		}
		b.Write(data)
	}
	b.WriteString("---\n")

	for _, name := range opts.Sections {
		b.WriteString("\n## " + name + "\n")
	}
	return b.String(), nil
}
