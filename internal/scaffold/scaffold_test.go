package scaffold

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tierdocs/internal/checksum"
	"github.com/vvka-141/tierdocs/internal/config"
	"github.com/vvka-141/tierdocs/internal/facts"
	"github.com/vvka-141/tierdocs/internal/files/filesystem"
	"github.com/vvka-141/tierdocs/internal/files/scanner"
	"github.com/vvka-141/tierdocs/internal/generate"
	"github.com/vvka-141/tierdocs/internal/logging"
	"github.com/vvka-141/tierdocs/internal/targetinfo"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

func newMemoryScaffolder() (*Scaffolder, *filesystem.MemoryFileSystem) {
	mfs := filesystem.NewMemoryFileSystem("/work")
	return NewScaffolder(mfs, logging.NewNullLogger()), mfs
}

func TestNewScaffolder_NilArgs(t *testing.T) {
	assert.Panics(t, func() { NewScaffolder(nil, logging.NewNullLogger()) })
	assert.Panics(t, func() { NewScaffolder(filesystem.NewMemoryFileSystem("/"), nil) })
}

func TestCreateProject(t *testing.T) {
	s, mfs := newMemoryScaffolder()

	files, err := s.CreateProject("demo-book", "/work/book")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"src/platform-support.md",
		"src/platform-support/targets.md",
		"target_infos/x86_64-unknown-linux-gnu.md",
		"tierdocs.yaml",
	}, files)

	cfg, err := mfs.ReadFile("/work/book/tierdocs.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(cfg), "configuration for demo-book")
	assert.NotContains(t, string(cfg), "{{PROJECT_NAME}}")
}

func TestCreateProject_RefusesNonEmpty(t *testing.T) {
	s, mfs := newMemoryScaffolder()
	mfs.AddFile("book/notes.txt", "keep me")

	_, err := s.CreateProject("demo", "/work/book")
	assert.True(t, errors.Is(err, ErrExists))

	mfs.AddFile("plain-file", "x")
	_, err = s.CreateProject("demo", "/work/plain-file")
	assert.True(t, errors.Is(err, ErrExists))
}

func TestCreateProject_EmptyDirectoryOnDisk(t *testing.T) {
	dir := t.TempDir()
	s := NewScaffolder(filesystem.NewOSFileSystem(), logging.NewNullLogger())

	files, err := s.CreateProject("disk", dir)
	require.NoError(t, err)
	for _, f := range files {
		_, err := os.Stat(filepath.Join(dir, filepath.FromSlash(f)))
		assert.NoError(t, err, f)
	}

	_, err = s.CreateProject("disk", dir)
	assert.True(t, errors.Is(err, ErrExists))
}

// The project template must generate cleanly as shipped.
func TestCreateProject_Generates(t *testing.T) {
	s, mfs := newMemoryScaffolder()
	_, err := s.CreateProject("demo", "/work/book")
	require.NoError(t, err)

	data, err := mfs.ReadFile("/work/book/tierdocs.yaml")
	require.NoError(t, err)
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, config.ConfigFileName), data, 0644))
	projectCfg, err := config.Load(dir)
	require.NoError(t, err)

	settings := config.Defaults("/work/book")
	require.NoError(t, settings.ApplyFile(projectCfg))

	provider, err := facts.NewStaticProvider(facts.StaticFile{Targets: []facts.StaticTarget{
		{Name: "x86_64-unknown-linux-gnu", Cfg: []string{`target_os="linux"`}},
	}})
	require.NoError(t, err)

	g := generate.NewGenerator(scanner.NewScannerWithFS(checksum.New(), mfs), provider, logging.NewNullLogger(), mfs)
	plan, err := g.Plan(context.Background(), settings.GenerateConfig(false))
	require.NoError(t, err)
	assert.Len(t, plan.Outputs, 4)
}

func TestValidatePattern(t *testing.T) {
	tests := []struct {
		pattern string
		valid   bool
	}{
		{"x86_64-unknown-linux-gnu", true},
		{"*-apple-*", true},
		{"riscv{32,64}*", true},
		{"", false},
		{"a/b", false},
		{`a\b`, false},
		{".hidden", false},
		{"[unclosed", false},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			err := ValidatePattern(tt.pattern)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.True(t, errors.Is(err, tierdocs.ErrInvalidConfig), "got: %v", err)
			}
		})
	}
}

func TestNewTargetInfo(t *testing.T) {
	s, mfs := newMemoryScaffolder()

	dest, err := s.NewTargetInfo("/work/target_infos", "aarch64-demo-*", TargetInfoOptions{
		Tier:        tierdocs.TierPtr(tierdocs.TierThree),
		Maintainers: []string{"@ferris", "Jane Doe"},
		Sections:    tierdocs.DefaultSections,
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/work/target_infos", "aarch64-demo-*.md"), dest)

	data, err := mfs.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "---\n"+
		"tier: \"3\"\n"+
		"maintainers:\n    - '@ferris'\n    - Jane Doe\n"+
		"---\n\n"+
		"## Requirements\n\n## Testing\n\n## Building\n\n## Cross compilation\n\n## Building Rust programs\n",
		string(data))

	info, err := targetinfo.Parse("aarch64-demo-*", dest, string(data), tierdocs.DefaultSections)
	require.NoError(t, err)
	assert.Equal(t, "3", tierdocs.TierLabel(info.Tier))
	assert.Equal(t, []string{"@ferris", "Jane Doe"}, info.Maintainers)
	assert.Len(t, info.Sections, len(tierdocs.DefaultSections))
}

func TestNewTargetInfo_EmptyFrontmatter(t *testing.T) {
	content, err := RenderTargetInfo(TargetInfoOptions{Sections: tierdocs.SectionVocabulary{"Testing"}})
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n\n## Testing\n", content)
}

func TestNewTargetInfo_RefusesOverwrite(t *testing.T) {
	s, mfs := newMemoryScaffolder()
	mfs.AddFile("target_infos/x86_64-*.toml", "tier = \"1\"\n")
	mfs.AddFile("target_infos/arm-*.md", "---\n---\n")

	for _, pattern := range []string{"x86_64-*", "arm-*"} {
		_, err := s.NewTargetInfo("/work/target_infos", pattern, TargetInfoOptions{})
		assert.True(t, errors.Is(err, ErrExists), pattern)
	}

	data, err := mfs.ReadFile("target_infos/arm-*.md")
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n", string(data))

	_, err = s.NewTargetInfo("/work/target_infos", "../escape", TargetInfoOptions{})
	assert.True(t, errors.Is(err, tierdocs.ErrInvalidConfig))
}
