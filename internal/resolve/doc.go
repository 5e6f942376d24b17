// Package resolve merges overlapping target info documents into one record per target.
//
// A Store holds every parsed document in declaration order. Resolving a
// target walks the documents whose glob pattern matches it:
//
//   - maintainers accumulate in document order
//   - tier, each section and the nested metadata block are singletons; a
//     second matching source is a *ConflictError
//   - nested metadata rules are only evaluated when their document matches
//
// Every document and every nested rule records whether it matched anything.
// Validate reports the ones that never did, after all targets are resolved.
//
// Glob matching uses github.com/bmatcuk/doublestar/v4: anchored,
// case-sensitive, with *, ?, [...] classes and {a,b} alternation.
//
// # Thread Safety
//
// Resolve and ResolveAll may run concurrently. The only shared mutable state
// is the usage flags, which are atomic and only ever go from false to true.
package resolve
