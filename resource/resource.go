// Package resource provides the resource handles served by static responses
// and the repositories they are looked up in.
package resource

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"
)

// ErrInvalidPath is returned for paths that escape the repository root.
var ErrInvalidPath = errors.New("invalid resource path")

// Resource is a handle to a named piece of content with metadata.
// A handle may refer to a resource that does not exist.
type Resource interface {
	// Name is the repository path of the resource.
	Name() string
	Exists() bool
	LastModified() time.Time
	// Length is the size of the content in bytes.
	Length() int64
	// Open returns a reader for the content. The caller must close it.
	Open() (io.ReadCloser, error)
}

// Repository resolves paths to resources.
// A missing resource is not an error: the returned handle reports
// Exists() == false.
type Repository interface {
	Resource(ctx context.Context, path string) (Resource, error)
}

// cleanPath normalizes a repository path to a relative, slash separated form.
func cleanPath(p string) (string, error) {
	if strings.ContainsRune(p, 0) || strings.Contains(p, "\\") {
		return "", ErrInvalidPath
	}
	for _, segment := range strings.Split(p, "/") {
		if segment == ".." {
			return "", ErrInvalidPath
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+p), "/")
	if cleaned == "" {
		return "", ErrInvalidPath
	}
	return cleaned, nil
}
