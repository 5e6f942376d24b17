// Package files groups the file-related sub-packages:
//   - filesystem: filesystem abstraction with OS, in-memory and embed implementations
//   - scanner: discovery and parsing of target info documents
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/tierdocs/internal/checksum"
//	    "github.com/vvka-141/tierdocs/internal/files/scanner"
//	)
//
//	docScanner := scanner.NewScanner(checksum.New())
//	infos, err := docScanner.ScanDirectory("./target_infos", tierdocs.DefaultSections)
package files
