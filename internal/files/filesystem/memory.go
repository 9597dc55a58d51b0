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
}

func (f *memoryFileInfo) Name() string       { return f.name }
func (f *memoryFileInfo) Size() int64        { return f.size }
func (f *memoryFileInfo) Mode() fs.FileMode  { return f.mode }
func (f *memoryFileInfo) ModTime() time.Time { return f.modTime }
func (f *memoryFileInfo) IsDir() bool        { return f.mode.IsDir() }
func (f *memoryFileInfo) Sys() interface{}   { return nil }

// memoryEntry is a file or directory stored under its absolute virtual path.
type memoryEntry struct {
	content []byte
	info    *memoryFileInfo
}

// memoryFile is a snapshot of an entry handed to Walk callbacks.
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
	return append([]byte(nil), f.content...), nil
}

// memoryDirectory implements Directory interface for in-memory filesystem
type memoryDirectory struct {
	absPath string
	fs      *MemoryFileSystem
}

func (d *memoryDirectory) Path() string { return d.absPath }

func (d *memoryDirectory) Walk(fn func(File, error) error) error {
	entries := d.fs.snapshotUnder(d.absPath)

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

// MemoryFileSystem implements FileSystemProvider in memory. Relative paths
// resolve against root. It is safe for concurrent use.
type MemoryFileSystem struct {
	mu      sync.RWMutex
	entries map[string]*memoryEntry
	root    string
}

// NewMemoryFileSystem creates a new in-memory filesystem.
// The root path is normalized to use forward slashes.
func NewMemoryFileSystem(root string) *MemoryFileSystem {
	mfs := &MemoryFileSystem{
		entries: make(map[string]*memoryEntry),
		root:    path.Clean(filepath.ToSlash(root)),
	}
	mfs.mkdirLocked(mfs.root)
	return mfs
}

// AddFile adds a file to the in-memory filesystem
func (mfs *MemoryFileSystem) AddFile(filePath string, content string) {
	mfs.AddFileWithTime(filePath, content, time.Now())
}

// AddFileWithTime adds a file with a specific modification time
func (mfs *MemoryFileSystem) AddFileWithTime(filePath string, content string, modTime time.Time) {
	mfs.mu.Lock()
	defer mfs.mu.Unlock()
	mfs.putLocked(mfs.abs(filePath), []byte(content), modTime)
}

// Files returns the absolute paths of all regular files, sorted.
func (mfs *MemoryFileSystem) Files() []string {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var files []string
	for p, e := range mfs.entries {
		if !e.info.IsDir() {
			files = append(files, p)
		}
	}
	sort.Strings(files)
	return files
}

func (mfs *MemoryFileSystem) abs(p string) string {
	p = filepath.ToSlash(p)
	if p == "" || p == "." {
		return mfs.root
	}
	if !path.IsAbs(p) {
		p = path.Join(mfs.root, p)
	}
	return path.Clean(p)
}

func (mfs *MemoryFileSystem) putLocked(absPath string, content []byte, modTime time.Time) {
	mfs.entries[absPath] = &memoryEntry{
		content: content,
		info: &memoryFileInfo{
			name:    path.Base(absPath),
			size:    int64(len(content)),
			mode:    0644,
			modTime: modTime,
		},
	}
	mfs.mkdirLocked(path.Dir(absPath))
}

// mkdirLocked creates dir and its parents.
func (mfs *MemoryFileSystem) mkdirLocked(dir string) {
	for {
		if _, exists := mfs.entries[dir]; exists {
			return
		}
		mfs.entries[dir] = &memoryEntry{
			info: &memoryFileInfo{
				name:    path.Base(dir),
				mode:    0755 | fs.ModeDir,
				modTime: time.Now(),
			},
		}
		parent := path.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}

func isUnder(p, base string) bool {
	if base == "/" {
		return strings.HasPrefix(p, "/")
	}
	return p == base || strings.HasPrefix(p, base+"/")
}

// snapshotUnder returns the entries below basePath sorted by path.
func (mfs *MemoryFileSystem) snapshotUnder(basePath string) []*memoryFile {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	var files []*memoryFile
	for p, e := range mfs.entries {
		if !isUnder(p, basePath) {
			continue
		}
		rel := strings.TrimPrefix(strings.TrimPrefix(p, basePath), "/")
		if rel == "" {
			rel = "."
		}
		files = append(files, &memoryFile{absPath: p, relPath: rel, content: e.content, info: e.info})
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].absPath < files[j].absPath
	})
	return files
}

// Open implements FileSystemProvider.Open
func (mfs *MemoryFileSystem) Open(openPath string) (Directory, error) {
	absPath := mfs.abs(openPath)

	mfs.mu.RLock()
	e, exists := mfs.entries[absPath]
	mfs.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("directory not found: %s", openPath)
	}
	if !e.info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", openPath)
	}
	return &memoryDirectory{absPath: absPath, fs: mfs}, nil
}

// ReadFile implements FileSystemProvider.ReadFile
func (mfs *MemoryFileSystem) ReadFile(filePath string) ([]byte, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[mfs.abs(filePath)]
	if !exists {
		return nil, fmt.Errorf("file not found: %s: %w", filePath, fs.ErrNotExist)
	}
	if e.info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	return append([]byte(nil), e.content...), nil
}

// ReadDir implements FileSystemProvider.ReadDir
func (mfs *MemoryFileSystem) ReadDir(dirPath string) ([]FileInfo, error) {
	absPath := mfs.abs(dirPath)

	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[absPath]
	if !exists || !e.info.IsDir() {
		return nil, fmt.Errorf("failed to read directory: %s: %w", dirPath, fs.ErrNotExist)
	}

	var infos []FileInfo
	for p, child := range mfs.entries {
		if p != absPath && path.Dir(p) == absPath {
			infos = append(infos, child.info)
		}
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].Name() < infos[j].Name()
	})
	return infos, nil
}

// Stat implements FileSystemProvider.Stat
func (mfs *MemoryFileSystem) Stat(statPath string) (FileInfo, error) {
	mfs.mu.RLock()
	defer mfs.mu.RUnlock()

	e, exists := mfs.entries[mfs.abs(statPath)]
	if !exists {
		return nil, fmt.Errorf("path not found: %s: %w", statPath, fs.ErrNotExist)
	}
	return e.info, nil
}

// WriteFile implements FileSystemProvider.WriteFile
func (mfs *MemoryFileSystem) WriteFile(filePath string, data []byte) error {
	absPath := mfs.abs(filePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if e, exists := mfs.entries[absPath]; exists && e.info.IsDir() {
		return fmt.Errorf("path is a directory, not a file: %s", filePath)
	}
	mfs.putLocked(absPath, append([]byte(nil), data...), time.Now())
	return nil
}

// MkdirAll implements FileSystemProvider.MkdirAll
func (mfs *MemoryFileSystem) MkdirAll(dirPath string) error {
	absPath := mfs.abs(dirPath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	if e, exists := mfs.entries[absPath]; exists && !e.info.IsDir() {
		return fmt.Errorf("path is a file, not a directory: %s", dirPath)
	}
	mfs.mkdirLocked(absPath)
	return nil
}

// RemoveAll implements FileSystemProvider.RemoveAll
func (mfs *MemoryFileSystem) RemoveAll(removePath string) error {
	absPath := mfs.abs(removePath)

	mfs.mu.Lock()
	defer mfs.mu.Unlock()

	for p := range mfs.entries {
		if isUnder(p, absPath) {
			delete(mfs.entries, p)
		}
	}
	return nil
}
