// Package render provides the template renderer used by responses.
package render

import (
	"html/template"
	"io/fs"
	"strings"

	"github.com/pkg/errors"
)

// Renderer renders a named template with the given data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// Func adapts a function to the Renderer interface.
type Func func(name string, data any) (string, error)

func (f Func) Render(name string, data any) (string, error) {
	return f(name, data)
}

// Templates renders html/template files from a file system.
type Templates struct {
	t *template.Template
}

// ParseFS parses all templates in fsys matching the patterns.
// Templates are named by their base file name.
func ParseFS(fsys fs.FS, patterns ...string) (*Templates, error) {
	t, err := template.ParseFS(fsys, patterns...)
	if err != nil {
		return nil, errors.Wrap(err, "parse templates")
	}
	return &Templates{t: t}, nil
}

// Render executes the named template. Execution errors are returned as they are.
func (t *Templates) Render(name string, data any) (string, error) {
	var sb strings.Builder
	if err := t.t.ExecuteTemplate(&sb, name, data); err != nil {
		return "", err
	}
	return sb.String(), nil
}
