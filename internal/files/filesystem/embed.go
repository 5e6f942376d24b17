package filesystem

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// embedFile implements File interface for embed.FS
type embedFile struct {
	embedFS *embed.FS
	absPath string // path within embed.FS (always uses forward slashes)
	relPath string
	info    fs.FileInfo
}

func (f *embedFile) Path() string         { return f.absPath }
func (f *embedFile) RelativePath() string { return f.relPath }
func (f *embedFile) Info() FileInfo       { return f.info }

func (f *embedFile) ReadContent() ([]byte, error) {
	return f.embedFS.ReadFile(f.absPath)
}

// embedDirectory implements Directory interface for embed.FS
type embedDirectory struct {
	embedFS *embed.FS
	absPath string
}

func (d *embedDirectory) Path() string { return d.absPath }

func (d *embedDirectory) Walk(fn func(File, error) error) error {
	return fs.WalkDir(d.embedFS, d.absPath, func(filePath string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}

		info, err := entry.Info()
		if err != nil {
			return fn(nil, fmt.Errorf("failed to get file info for %s: %w", filePath, err))
		}

		relPath := "."
		if filePath != d.absPath {
			relPath = strings.TrimPrefix(filePath, d.absPath+"/")
		}

		return fn(&embedFile{
			embedFS: d.embedFS,
			absPath: filePath,
			relPath: relPath,
			info:    info,
		}, nil)
	})
}

// EmbedFileSystem is a read-only FileSystemProvider over an embed.FS.
type EmbedFileSystem struct {
	embedFS embed.FS
	root    string
}

// NewEmbedFileSystem wraps an embed.FS, treating root as the top of the tree.
func NewEmbedFileSystem(embedFS embed.FS, root string) *EmbedFileSystem {
	return &EmbedFileSystem{
		embedFS: embedFS,
		root:    path.Clean(root),
	}
}

func (efs *EmbedFileSystem) resolve(p string) string {
	p = strings.ReplaceAll(p, "\\", "/")
	if p == "" || p == "." {
		return efs.root
	}
	return path.Join(efs.root, strings.TrimPrefix(p, "/"))
}

// Open implements FileSystemProvider.Open
func (efs *EmbedFileSystem) Open(openPath string) (Directory, error) {
	absPath := efs.resolve(openPath)

	// ReadDir only succeeds on directories
	if _, err := efs.embedFS.ReadDir(absPath); err != nil {
		return nil, fmt.Errorf("failed to open directory %s: %w", openPath, err)
	}

	return &embedDirectory{embedFS: &efs.embedFS, absPath: absPath}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (efs *EmbedFileSystem) ReadFile(filePath string) ([]byte, error) {
	content, err := efs.embedFS.ReadFile(efs.resolve(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	return content, nil
}

// Stat implements FileSystemProvider.Stat
func (efs *EmbedFileSystem) Stat(statPath string) (FileInfo, error) {
	info, err := fs.Stat(efs.embedFS, efs.resolve(statPath))
	if err != nil {
		return nil, fmt.Errorf("failed to stat path %s: %w", statPath, err)
	}
	return info, nil
}
