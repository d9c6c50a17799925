// Package mimetype maps resource names to MIME types by file extension.
package mimetype

import (
	"mime"
	"path"
	"strings"
)

// Default is returned for names without a known extension.
const Default = "application/octet-stream"

// builtin takes precedence over the system tables so lookups do not depend
// on the host's mime.types files.
var builtin = map[string]string{
	".css":   "text/css",
	".csv":   "text/csv",
	".gif":   "image/gif",
	".htm":   "text/html",
	".html":  "text/html",
	".ico":   "image/x-icon",
	".jpeg":  "image/jpeg",
	".jpg":   "image/jpeg",
	".js":    "application/javascript",
	".json":  "application/json",
	".md":    "text/markdown",
	".pdf":   "application/pdf",
	".png":   "image/png",
	".svg":   "image/svg+xml",
	".txt":   "text/plain",
	".wasm":  "application/wasm",
	".webp":  "image/webp",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".xml":   "application/xml",
	".zip":   "application/zip",
}

// Lookup returns the MIME type for name, based on its extension.
func Lookup(name string) string {
	ext := strings.ToLower(path.Ext(name))
	if ext == "" {
		return Default
	}
	if t, ok := builtin[ext]; ok {
		return t
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return Default
}
