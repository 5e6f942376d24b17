// Package checksum provides content hashing for generated Markdown.
//
// Two checksums are computed:
//
//   - Raw checksum: hash of the exact bytes (decides whether a file is rewritten)
//   - Normalized checksum: hash after normalizing line endings and trailing
//     whitespace (decides whether a checked-in file is out of date, so a CRLF
//     checkout does not fail `tierdocs check`)
//
// # Normalization Strategy
//
//  1. Convert CRLF and lone CR line endings to LF
//  2. Strip trailing spaces and tabs from every line
//  3. Drop trailing blank lines
//
// Case and interior whitespace are significant in Markdown and are kept.
//
// # Example Usage
//
//	calculator := checksum.New()
//	if calculator.CalculateRaw(existing) == calculator.CalculateRaw(rendered) {
//	    // skip the write
//	}
//
// # Thread Safety
//
// SHA256 is safe for concurrent use by multiple goroutines.
package checksum
