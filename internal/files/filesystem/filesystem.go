package filesystem

import (
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual file with its metadata and content accessor
type File interface {
	// Path returns the path of the file as the provider addresses it
	Path() string

	// RelativePath returns the slash-separated path relative to the walked directory
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// ReadContent returns the file's content
	ReadContent() ([]byte, error)
}

// Directory represents a directory that can be traversed to discover files
type Directory interface {
	// Path returns the path to the directory
	Path() string

	// Walk traverses the directory tree in lexical order, calling fn for each
	// file and directory. If fn returns an error, walking stops.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is the storage used for vendor sources and generated
// artifacts.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// ReadFile reads a specific file at the given path
	ReadFile(path string) ([]byte, error)

	// ReadDir returns the entries of a directory, sorted by name.
	ReadDir(path string) ([]FileInfo, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// WriteFile writes data to path, creating parent directories.
	WriteFile(path string, data []byte) error

	// MkdirAll creates a directory and any missing parents.
	MkdirAll(path string) error

	// RemoveAll removes path and everything below it. A missing path is not an error.
	RemoveAll(path string) error
}

// Exists reports whether path exists in provider.
func Exists(provider FileSystemProvider, path string) bool {
	_, err := provider.Stat(path)
	return err == nil
}
