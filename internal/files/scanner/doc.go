// Package scanner discovers and parses target info documents.
//
// The scanner is responsible for:
//   - Listing the documents of a target info directory (*.md and legacy *.toml)
//   - Deriving each document's pattern from its file name
//   - Parsing every document, stopping at the first failure
//   - Fingerprinting the directory so watchers can ignore no-op events
//
// Hidden files and directories are skipped. Any other file type, and any
// nested directory, is an error.
//
// The scanner is filesystem-agnostic through filesystem.FileSystemProvider,
// so tests run against filesystem.MemoryFileSystem.
package scanner
