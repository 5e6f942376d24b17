// Package filesystem provides the filesystem seam used to read target info
// documents and write generated Markdown.
//
// Key interfaces:
//   - FileSystemProvider: read access (directory walks, file reads, stat)
//   - WritableFileSystem: FileSystemProvider plus WriteFile for the emitter
//   - Directory: a directory that can be traversed
//   - File: an individual file with metadata and content
//
// Implementations:
//   - OSFileSystem: the real filesystem
//   - MemoryFileSystem: in-memory tree for tests and dry runs
//   - EmbedFileSystem: read-only view over an embed.FS (scaffold templates)
//
// Missing paths are reported with errors wrapping fs.ErrNotExist in every
// implementation, so callers can use errors.Is(err, fs.ErrNotExist).
package filesystem
