package filesystem

import (
	"errors"
	"io/fs"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryFileSystem_Walk(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("target_infos/b.md", "b")
	mfs.AddFile("target_infos/a.md", "a")
	mfs.AddFile("src/platform-support.md", "tables")

	dir, err := mfs.Open("target_infos")
	require.NoError(t, err)

	var files []string
	err = dir.Walk(func(file File, err error) error {
		require.NoError(t, err)
		if !file.Info().IsDir() {
			files = append(files, file.RelativePath())
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a.md", "b.md"}, files)
}

func TestMemoryFileSystem_ReadFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("target_infos/a.md", "---\n---\n")

	content, err := mfs.ReadFile("/project/target_infos/a.md")
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n", string(content))

	content, err = mfs.ReadFile("target_infos/a.md")
	require.NoError(t, err)
	assert.Equal(t, "---\n---\n", string(content))

	_, err = mfs.ReadFile("target_infos")
	require.Error(t, err)

	_, err = mfs.ReadFile("missing.md")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_Stat(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("a.md", "x")

	info, err := mfs.Stat("/project/a.md")
	require.NoError(t, err)
	assert.False(t, info.IsDir())
	assert.Equal(t, "a.md", info.Name())
	assert.Equal(t, int64(1), info.Size())

	info, err = mfs.Stat("/project")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	_, err = mfs.Stat("nope")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_Open_Errors(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")
	mfs.AddFile("a.md", "x")

	_, err := mfs.Open("a.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")

	_, err = mfs.Open("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMemoryFileSystem_WriteFile(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")

	require.NoError(t, mfs.WriteFile("src/platform-support/targets/a.md", []byte("# a\n")))

	content, err := mfs.ReadFile("src/platform-support/targets/a.md")
	require.NoError(t, err)
	assert.Equal(t, "# a\n", string(content))

	info, err := mfs.Stat("src/platform-support/targets")
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	require.NoError(t, mfs.WriteFile("src/platform-support/targets/a.md", []byte("# b\n")))
	content, err = mfs.ReadFile("src/platform-support/targets/a.md")
	require.NoError(t, err)
	assert.Equal(t, "# b\n", string(content))

	err = mfs.WriteFile("src/platform-support", []byte("x"))
	require.Error(t, err)
}

func TestMemoryFileSystem_ConcurrentAccess(t *testing.T) {
	mfs := NewMemoryFileSystem("/project")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = mfs.WriteFile("out/file.md", []byte{byte('a' + i)})
			_, _ = mfs.ReadFile("out/file.md")
		}(i)
	}
	wg.Wait()

	content, err := mfs.ReadFile("out/file.md")
	require.NoError(t, err)
	assert.Len(t, content, 1)
}
