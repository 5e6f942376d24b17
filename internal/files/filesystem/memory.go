package filesystem

import (
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// memoryFileInfo implements fs.FileInfo for in-memory files
type memoryFileInfo struct {
	name    string
	size    int64
	mode    fs.FileMode
	modTime time.Time
	isDir   bool
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.isDir }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryFile implements File interface for in-memory files
type memoryFile struct {
	absPath string
	relPath string
	content []byte
	info    fs.FileInfo
}

func (f *memoryFile) Path() string         { return f.absPath }
func (f *memoryFile) RelativePath() string { return f.relPath }
func (f *memoryFile) Info() FileInfo       { return f.info }

func (f *memoryFile) ReadContent() ([]byte, error) {
	return f.content, nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.entriesUnder(d.absPath)

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].absPath < entries[j].absPath
	})

	for _, entry := range entries {
		var callbackErr error
		func() {
			defer func() {
				if r := recover(); r != nil {
					callbackErr = fmt.Errorf("walk callback panicked at %s: %v", entry.absPath, r)
				}
			}()

			callbackErr = fn(entry, nil)
		}()

		if callbackErr != nil {
			return callbackErr
		}
	}

	return nil
}

// MemoryFileSystem implements WritableFileSystem in memory. It is safe for
// concurrent use.
type MemoryFileSystem struct {
	mu    sync.RWMutex
	files map[string]*memoryFile // absolute path -> file
	root  string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	root = path.Clean(filepath.ToSlash(root))

	mfs := &MemoryFileSystem{
		files: make(map[string]*memoryFile),
		root:  root,
	}
	mfs.files[root] = newMemoryDir(root, ".")

	return mfs
}

func newMemoryDir(absPath, relPath string) *memoryFile {
	return &memoryFile{
		absPath: absPath,
		relPath: relPath,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			mode:    0755 | fs.ModeDir,
			modTime: time.Now(),
			isDir:   true,
		},
	}
}

// resolve maps a relative or absolute path onto the virtual tree.
func (mfs *MemoryFileSystem) resolve(p string) string {
	p = filepath.ToSlash(p)
	switch {
	case p == "" || p == ".":
		return mfs.root
	case path.IsAbs(p):
		return path.Clean(p)
	default:
		return path.Join(mfs.root, p)
	}
}

func (mfs *MemoryFileSystem) relative(absPath string) string {
	rel, err := filepath.Rel(mfs.root, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(rel)
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(path string, content string) {
	mfs.AddFileWithTime(path, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.put(filePath, []byte(content), modTime)
}

func (mfs *MemoryFileSystem) put(filePath string, content []byte, modTime time.Time) {
	absPath := mfs.resolve(filePath)

	mfs.files[absPath] = &memoryFile{
		absPath: absPath,
		relPath: mfs.relative(absPath),
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}

	mfs.ensureDirectoriesExist(absPath)
}

// ensureDirectoriesExist creates directory entries for all parent directories
func (mfs *MemoryFileSystem) ensureDirectoriesExist(filePath string) {
	dir := path.Dir(filePath)
	if dir == "." || dir == "/" || dir == mfs.root {
		return
	}
	if _, exists := mfs.files[dir]; exists {
		return
	}

	mfs.files[dir] = newMemoryDir(dir, mfs.relative(dir))
	mfs.ensureDirectoriesExist(dir)
}

// entriesUnder returns all files and directories under the given path
func (mfs *MemoryFileSystem) entriesUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	basePath = filepath.ToSlash(basePath)
	var entries []*memoryFile

	for p, file := range mfs.files {
		var matched bool
		if basePath == "/" {
			matched = strings.HasPrefix(p, "/")
		} else {
			matched = p == basePath || strings.HasPrefix(p, basePath+"/")
		}

		if matched {
			walked := *file
			walked.relPath = "."
			if p != basePath {
				walked.relPath = strings.TrimPrefix(p, strings.TrimSuffix(basePath, "/")+"/")
			}
			entries = append(entries, &walked)
		}
	}

	return entries
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.resolve(openPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	if file, exists := mfs.files[absPath]; exists {
		if !file.info.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", openPath)
		}
		return &memoryDirectory{absPath: absPath, fs: mfs}, nil
	}

	return nil, fmt.Errorf("directory not found: %s: %w", openPath, fs.ErrNotExist)
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	absPath := mfs.resolve(filePath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if file.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}

	return append([]byte(nil), file.content...), nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	absPath := mfs.resolve(statPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	file, exists := mfs.files[absPath]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}

	return file.info, nil
}

// WriteFile implements WritableFileSystem.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	absPath := mfs.resolve(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if existing, ok := mfs.files[absPath]; ok && existing.info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	mfs.put(absPath, append([]byte(nil), data...), time.Now())
	return nil
}
