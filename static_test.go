package respond

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/resource"
)

// memResource is a resource held in memory that records how it is opened.
type memResource struct {
	name     string
	data     string
	modified time.Time
	exists   bool
	opened   int
	closed   int
}

func (m *memResource) Name() string            { return m.name }
func (m *memResource) Exists() bool            { return m.exists }
func (m *memResource) LastModified() time.Time { return m.modified }
func (m *memResource) Length() int64           { return int64(len(m.data)) }

func (m *memResource) Open() (io.ReadCloser, error) {
	m.opened++
	return &trackedReader{Reader: strings.NewReader(m.data), res: m}, nil
}

type trackedReader struct {
	io.Reader
	res *memResource
}

func (r *trackedReader) Close() error {
	r.res.closed++
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestStaticFromRepository(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "style.css", "body{}")
	c := Config{Resources: resource.NewDir(dir)}

	res, err := c.Static(context.Background(), "style.css", "")
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if res.Status != http.StatusOK {
		t.Fatalf("Status is %d", res.Status)
	}
	if ct := res.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Fatalf("Content-Type is %s", ct)
	}
	if got := readBody(t, res); got != "body{}" {
		t.Fatalf("Body is %q", got)
	}
}

func TestStaticContentTypeOverride(t *testing.T) {
	res, err := Static(context.Background(), &memResource{name: "a.css", exists: true}, "text/plain")
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if ct := res.Header.Get("Content-Type"); ct != "text/plain" {
		t.Fatalf("Content-Type is %s", ct)
	}
}

func TestStaticMissingIsNotFound(t *testing.T) {
	c := Config{Resources: resource.NewDir(t.TempDir())}

	res, err := c.Static(context.Background(), "missing.txt", "")
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if res.Status != http.StatusNotFound {
		t.Fatalf("Status is %d", res.Status)
	}
	if got := readBody(t, res); !strings.Contains(got, "missing.txt") {
		t.Fatalf("Body is %q", got)
	}
}

func TestStaticTraversalIsNotFound(t *testing.T) {
	c := Config{Resources: resource.NewDir(t.TempDir())}

	res, err := c.Static(context.Background(), "../etc/passwd", "")
	if err != nil || res.Status != http.StatusNotFound {
		t.Fatalf("Status %d, err %v", res.Status, err)
	}
}

func TestStaticInvalidArgument(t *testing.T) {
	_, err := Static(context.Background(), 42, "")

	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("Error is %v", err)
	}
}

func TestStaticDigest(t *testing.T) {
	modified := time.UnixMilli(1700000000000)
	res := &memResource{name: "a.txt", data: "hello", modified: modified, exists: true}

	result, _ := Static(context.Background(), res, "")
	digest, ok := body.DigestOf(result.Body)
	if !ok {
		t.Fatal("Expected digest")
	}
	want := strconv.FormatInt(1700000000000, 36) + strconv.FormatInt(5, 36)
	if digest != want {
		t.Fatalf("Digest is %s, want %s", digest, want)
	}
	if res.opened != 0 {
		t.Fatal("Digest should not open the resource")
	}
}

func TestStaticDigestIgnoresContent(t *testing.T) {
	modified := time.UnixMilli(1700000000000)
	a, _ := Static(context.Background(), &memResource{name: "a", data: "aaaa", modified: modified, exists: true}, "")
	b, _ := Static(context.Background(), &memResource{name: "b", data: "bbbb", modified: modified, exists: true}, "")

	da, _ := body.DigestOf(a.Body)
	db, _ := body.DigestOf(b.Body)
	if da != db {
		t.Fatalf("Digests differ: %s %s", da, db)
	}
}

func TestStaticStreamsChunks(t *testing.T) {
	data := strings.Repeat("x", staticChunkSize*2+100)
	res := &memResource{name: "big.bin", data: data, exists: true}
	result, _ := Static(context.Background(), res, "")

	var sizes []int
	var got strings.Builder
	err := result.Body.ForEach(func(chunk []byte) error {
		sizes = append(sizes, len(chunk))
		got.Write(chunk)
		return nil
	})
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if got.String() != data {
		t.Fatal("Streamed content differs")
	}
	if len(sizes) != 3 || sizes[0] != staticChunkSize || sizes[2] != 100 {
		t.Fatalf("Chunk sizes are %v", sizes)
	}
	if err := body.Close(result.Body); err != nil || res.closed != 1 {
		t.Fatalf("Closed %d times, err %v", res.closed, err)
	}
}

func TestStaticCloseWithoutIteration(t *testing.T) {
	res := &memResource{name: "a", data: "a", exists: true}
	result, _ := Static(context.Background(), res, "")

	if err := body.Close(result.Body); err != nil {
		t.Fatalf("Error: %v", err)
	}
	if err := body.Close(result.Body); err != nil {
		t.Fatalf("Error on second close: %v", err)
	}
	if res.opened != 0 || res.closed != 0 {
		t.Fatalf("Opened %d, closed %d", res.opened, res.closed)
	}
}

func TestStaticCloseIdempotent(t *testing.T) {
	res := &memResource{name: "a", data: "abc", exists: true}
	result, _ := Static(context.Background(), res, "")

	if _, err := body.ReadAll(result.Body); err != nil {
		t.Fatalf("Error: %v", err)
	}
	body.Close(result.Body)
	if res.closed != 1 {
		t.Fatalf("Closed %d times", res.closed)
	}
}

func TestStaticIsOneShot(t *testing.T) {
	res := &memResource{name: "a", data: "abc", exists: true}
	result, _ := Static(context.Background(), res, "")

	body.ReadAll(result.Body)
	err := result.Body.ForEach(func([]byte) error { return nil })
	if !errors.Is(err, body.ErrConsumed) {
		t.Fatalf("Error is %v", err)
	}
}
