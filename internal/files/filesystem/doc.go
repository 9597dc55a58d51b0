// Package filesystem provides the storage abstraction used to read vendor
// icon sources and write generated artifacts.
//
// Key interfaces:
//   - FileSystemProvider: read, walk and write access to a tree of files
//   - Directory: Represents a directory that can be traversed
//   - File: Represents an individual file with metadata and content
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem
