// Package files groups file access for the icon pipeline:
//   - filesystem: storage abstraction with OS and in-memory implementations
//   - scanner: vendor source discovery driven by icon rules
//
// # Usage
//
//	import (
//	    "github.com/vvka-141/pumlicons/internal/checksum"
//	    "github.com/vvka-141/pumlicons/internal/files/scanner"
//	)
//
//	s := scanner.NewScanner(checksum.New())
//	sources, err := s.Scan(rule)
package files
