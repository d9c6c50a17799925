package resource

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog/log"
)

// Dir is a repository of files below a root directory.
type Dir struct {
	root string
}

// NewDir returns a repository rooted at root.
func NewDir(root string) Dir {
	return Dir{root: root}
}

// Resource returns the file for p. Paths containing ".." are rejected.
func (d Dir) Resource(ctx context.Context, p string) (Resource, error) {
	rel, err := cleanPath(p)
	if err != nil {
		return nil, err
	}
	log.Trace().Str("root", d.root).Str("path", rel).Msg("Resolving file resource")
	return &File{
		name: rel,
		path: filepath.Join(d.root, filepath.FromSlash(rel)),
	}, nil
}

// File is a resource backed by a file on disk.
// Metadata is read from the file system on every call.
type File struct {
	name string
	path string
}

// NewFile returns a handle for the file at path, named by path.
func NewFile(path string) *File {
	return &File{name: filepath.ToSlash(path), path: path}
}

func (f *File) Name() string {
	return f.name
}

func (f *File) String() string {
	return f.name
}

func (f *File) stat() os.FileInfo {
	fi, err := os.Stat(f.path)
	if err != nil || fi.IsDir() {
		return nil
	}
	return fi
}

func (f *File) Exists() bool {
	return f.stat() != nil
}

func (f *File) LastModified() time.Time {
	if fi := f.stat(); fi != nil {
		return fi.ModTime()
	}
	return time.Time{}
}

func (f *File) Length() int64 {
	if fi := f.stat(); fi != nil {
		return fi.Size()
	}
	return 0
}

func (f *File) Open() (io.ReadCloser, error) {
	return os.Open(f.path)
}
