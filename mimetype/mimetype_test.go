package mimetype

import "testing"

func TestLookup(t *testing.T) {
	tests := map[string]string{
		"index.html":      "text/html",
		"/a/b/STYLE.CSS":  "text/css",
		"logo.png":        "image/png",
		"README":          Default,
		"archive.unknown": Default,
		"dir.d/file":      Default,
	}
	for name, want := range tests {
		if got := Lookup(name); got != want {
			t.Fatalf("Lookup(%q) = %q, want %q", name, got, want)
		}
	}
}
