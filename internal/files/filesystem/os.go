package filesystem

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const (
	dirMode  fs.FileMode = 0o755
	fileMode fs.FileMode = 0o644
)

type osFile struct {
	path    string
	relPath string
	info    fs.FileInfo
}

func (f *osFile) Path() string                 { return f.path }
func (f *osFile) RelativePath() string         { return f.relPath }
func (f *osFile) Info() FileInfo               { return f.info }
func (f *osFile) ReadContent() ([]byte, error) { return os.ReadFile(f.path) }

type osDirectory struct {
	root string
}

func (d *osDirectory) Path() string { return d.root }

// Walk visits the tree in lexical order. The root itself is reported with
// the relative path ".".
func (d *osDirectory) Walk(fn func(File, error) error) error {
	return filepath.WalkDir(d.root, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fn(nil, err)
		}
		info, err := entry.Info()
		if err != nil {
			return fn(nil, err)
		}
		rel, err := filepath.Rel(d.root, p)
		if err != nil {
			return fn(nil, fmt.Errorf("relative path of %s: %w", p, err))
		}
		return fn(&osFile{path: p, relPath: filepath.ToSlash(rel), info: info}, nil)
	})
}

// OSFileSystem is the FileSystemProvider backed by the local disk. Relative
// paths resolve against the working directory.
type OSFileSystem struct{}

func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (p *OSFileSystem) Open(path string) (Directory, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("path is not a directory: %s", path)
	}
	return &osDirectory{root: filepath.Clean(path)}, nil
}

func (p *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func (p *OSFileSystem) ReadDir(path string) ([]FileInfo, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}
	infos := make([]FileInfo, 0, len(entries))
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", entry.Name(), err)
		}
		infos = append(infos, info)
	}
	return infos, nil
}

func (p *OSFileSystem) Stat(path string) (FileInfo, error) {
	return os.Stat(path)
}

// WriteFile replaces path atomically: the data goes to a temp file in the
// same directory which is then renamed over the target. An existing file
// keeps its permission bits, so upgraded diagrams stay as the user left them.
func (p *OSFileSystem) WriteFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	mode := fileMode
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func (p *OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, dirMode)
}

func (p *OSFileSystem) RemoveAll(path string) error {
	return os.RemoveAll(path)
}
