package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/tierdocs/internal/config"
	"github.com/vvka-141/tierdocs/internal/facts"
	"github.com/vvka-141/tierdocs/internal/tui"
	"github.com/vvka-141/tierdocs/pkg/tierdocs"
)

const factsYAML = `targets:
  - name: x86_64-unknown-linux-gnu
    cfg:
      - target_arch="x86_64"
      - target_os="linux"
      - unix
  - name: x86_64-unknown-freebsd
    cfg:
      - target_os="freebsd"
`

// newProject initializes a project in a temp dir and points the fact
// provider at a static fact file.
func newProject(t *testing.T) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), "book")
	require.NoError(t, runInit(captured(t, initCmd), []string{dir}))

	// Widen the example document so that both targets are covered.
	src := filepath.Join(dir, "target_infos", "x86_64-unknown-linux-gnu.md")
	data, err := os.ReadFile(src)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target_infos", "x86_64-unknown-*.md"), data, 0644))
	require.NoError(t, os.Remove(src))

	factsPath := filepath.Join(dir, "facts.yaml")
	require.NoError(t, os.WriteFile(factsPath, []byte(factsYAML), 0644))
	t.Setenv(config.EnvFactsFile, factsPath)
	t.Setenv(config.EnvRustc, "")
	t.Setenv(config.EnvWorkers, "")
	return dir
}

// captured redirects the output of cmd into buffers for the duration of the test.
func captured(t *testing.T, cmd *cobra.Command) *cobra.Command {
	t.Helper()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	t.Cleanup(func() {
		cmd.SetOut(nil)
		cmd.SetErr(nil)
	})
	return cmd
}

func stdout(cmd *cobra.Command) string {
	return cmd.OutOrStdout().(*bytes.Buffer).String()
}

func stderr(cmd *cobra.Command) string {
	return cmd.ErrOrStderr().(*bytes.Buffer).String()
}

func TestGenerateThenCheck(t *testing.T) {
	dir := newProject(t)

	gen := captured(t, generateCmd)
	require.NoError(t, runGenerate(gen, []string{dir}))
	assert.Contains(t, stderr(gen), "Generated docs for 2 targets")

	page, err := os.ReadFile(filepath.Join(dir, "src", "platform-support", "targets", "x86_64-unknown-freebsd.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(page), "# x86_64-unknown-freebsd\n"))

	check := captured(t, checkCmd)
	require.NoError(t, runCheck(check, []string{dir}))
	assert.Contains(t, stderr(check), "up to date")
	assert.Empty(t, stdout(check))

	// Generating again leaves every file alone.
	gen = captured(t, generateCmd)
	require.NoError(t, runGenerate(gen, []string{dir}))
	assert.Contains(t, stderr(gen), "0 written")
}

func TestCheck_OutOfDate(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, runGenerate(captured(t, generateCmd), []string{dir}))

	summary := filepath.Join(dir, "src", "platform-support", "targets", "SUMMARY.md")
	require.NoError(t, os.WriteFile(summary, []byte("# All targets\n"), 0644))

	check := captured(t, checkCmd)
	err := runCheck(check, []string{dir})
	require.Error(t, err)
	assert.Equal(t, tierdocs.ExitOutOfDate, tierdocs.ExitCodeForError(err))
	assert.Contains(t, stdout(check), "--- a/platform-support/targets/SUMMARY.md")
	assert.Contains(t, stdout(check), "+- [x86_64-unknown-linux-gnu](./x86_64-unknown-linux-gnu.md)")
	assert.Contains(t, stderr(check), "platform-support/targets/SUMMARY.md is out of date")
}

func TestGenerate_UnusedPattern(t *testing.T) {
	dir := newProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "target_infos", "sparc-*.md"), []byte("---\n---\n"), 0644))

	err := runGenerate(captured(t, generateCmd), []string{dir})
	require.Error(t, err)
	assert.Equal(t, tierdocs.ExitUnusedPattern, tierdocs.ExitCodeForError(err))

	_, statErr := os.Stat(filepath.Join(dir, "src", "platform-support", "targets", "SUMMARY.md"))
	assert.True(t, os.IsNotExist(statErr), "nothing may be written when a run fails")
}

func TestGenerate_MissingFactsFile(t *testing.T) {
	dir := newProject(t)
	t.Setenv(config.EnvFactsFile, filepath.Join(dir, "missing.yaml"))

	err := runGenerate(captured(t, generateCmd), []string{dir})
	require.Error(t, err)
	assert.Equal(t, tierdocs.ExitFactProviderError, tierdocs.ExitCodeForError(err))
}

func TestResolve(t *testing.T) {
	dir := newProject(t)

	cmd := captured(t, resolveCmd)
	require.NoError(t, runResolve(cmd, []string{"x86_64-unknown-linux-gnu", dir}))

	out := stdout(cmd)
	assert.Contains(t, out, "name: x86_64-unknown-linux-gnu\n")
	assert.Contains(t, out, "tier: \"1\"\n")
	assert.Contains(t, out, "patterns:\n")
	assert.Contains(t, out, "- x86_64-unknown-*\n")
}

func TestList(t *testing.T) {
	dir := newProject(t)

	cmd := captured(t, listCmd)
	require.NoError(t, runList(cmd, []string{dir}))
	lines := strings.Split(strings.TrimSpace(stdout(cmd)), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "TARGET"))

	listMatch = "*-freebsd"
	t.Cleanup(func() { listMatch = "" })
	cmd = captured(t, listCmd)
	require.NoError(t, runList(cmd, []string{dir}))
	lines = strings.Split(strings.TrimSpace(stdout(cmd)), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "x86_64-unknown-freebsd")
	assert.Contains(t, lines[1], "x86_64-unknown-*")
}

func TestList_InvalidMatch(t *testing.T) {
	listMatch = "[unclosed"
	t.Cleanup(func() { listMatch = "" })

	err := runList(captured(t, listCmd), []string{t.TempDir()})
	assert.Equal(t, tierdocs.ExitUsageError, tierdocs.ExitCodeForError(err))
}

func TestNew(t *testing.T) {
	dir := newProject(t)
	cmd := captured(t, newCmd)
	require.NoError(t, cmd.Flags().Set("tier", "3"))
	require.NoError(t, cmd.Flags().Set("maintainer", "@ferris"))
	t.Cleanup(func() {
		newFlags.tier, newFlags.maintainers = "", nil
		cmd.Flags().Lookup("tier").Changed = false
		cmd.Flags().Lookup("maintainer").Changed = false
	})

	require.NoError(t, runNew(cmd, []string{"riscv64-*", dir}))
	assert.Contains(t, stderr(cmd), "Created")

	data, err := os.ReadFile(filepath.Join(dir, "target_infos", "riscv64-*.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "---\ntier: \"3\"\nmaintainers:\n"))

	err = runNew(cmd, []string{"riscv64-*", dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestNew_InvalidInput(t *testing.T) {
	t.Setenv(tui.EnvNonInteractive, "1")

	err := runNew(captured(t, newCmd), []string{"../escape", t.TempDir()})
	assert.Equal(t, tierdocs.ExitConfigError, tierdocs.ExitCodeForError(err))

	newFlags.tier = "4"
	t.Cleanup(func() { newFlags.tier = "" })
	_, err = targetInfoOptions(newCmd, "arm-*")
	assert.Equal(t, tierdocs.ExitUsageError, tierdocs.ExitCodeForError(err))
}

func TestInit_NonEmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("data"), 0644))

	err := runInit(captured(t, initCmd), []string{dir})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not empty")
}

func TestResolveSettings_Precedence(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, tierdocs.ConfigFileName),
		[]byte("output: docs\nworkers: 2\ntimeout: 1m\nfacts:\n  rustc: /opt/rustc\n"), 0644))
	t.Setenv(config.EnvRustc, "")
	t.Setenv(config.EnvFactsFile, "")
	t.Setenv(config.EnvWorkers, "6")

	cmd := &cobra.Command{Use: "generate"}
	var flags runFlagValues
	addRunFlags(cmd, &flags)
	require.NoError(t, cmd.Flags().Set("rustc", "/usr/bin/rustc"))

	settings, err := resolveSettings(cmd, dir, &flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "docs"), settings.OutputPath, "file over default")
	assert.Equal(t, 6, settings.Workers, "environment over file")
	assert.Equal(t, "/usr/bin/rustc", settings.Rustc, "flag over file")
	assert.Equal(t, time.Minute, settings.Timeout)
	assert.Equal(t, filepath.Join(dir, tierdocs.DefaultTargetInfoDir), settings.TargetInfoPath)

	require.NoError(t, cmd.Flags().Set("workers", "1"))
	require.NoError(t, cmd.Flags().Set("timeout", "10s"))
	settings, err = resolveSettings(cmd, dir, &flags)
	require.NoError(t, err)
	assert.Equal(t, 1, settings.Workers, "flag over environment")
	assert.Equal(t, 10*time.Second, settings.Timeout)
}

func TestNewProvider(t *testing.T) {
	settings := config.Defaults(t.TempDir())
	provider, err := newProvider(settings, nil)
	require.NoError(t, err)
	assert.IsType(t, &facts.RustcProvider{}, provider)
}

func TestRunContext(t *testing.T) {
	ctx, cancel := runContext(0)
	_, hasDeadline := ctx.Deadline()
	assert.False(t, hasDeadline)
	cancel()
	assert.Error(t, ctx.Err())

	ctx, cancel = runContext(time.Hour)
	defer cancel()
	_, hasDeadline = ctx.Deadline()
	assert.True(t, hasDeadline)
}

func TestCommandArgs(t *testing.T) {
	for _, cmd := range []*cobra.Command{generateCmd, checkCmd, listCmd, watchCmd} {
		err := cmd.Args(cmd, []string{"a", "b"})
		assert.Equal(t, tierdocs.ExitUsageError, tierdocs.ExitCodeForError(err), cmd.Name())
	}
	for _, cmd := range []*cobra.Command{resolveCmd, newCmd} {
		err := cmd.Args(cmd, nil)
		assert.Equal(t, tierdocs.ExitUsageError, tierdocs.ExitCodeForError(err), cmd.Name())
	}
	assert.Error(t, initCmd.Args(initCmd, nil))
}
