// Package scanner discovers vendor icon files.
//
// Each icon rule names a directory and a doublestar glob; the scanner walks
// the directory through a filesystem.FileSystemProvider, keeps the matching
// files, classifies them by extension and records a content checksum. The
// result is ordered case-insensitively by path so that every run resolves
// icons in the same order.
package scanner
