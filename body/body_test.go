package body

import (
	"errors"
	"strings"
	"testing"

	"github.com/always-cache/respond/pkg/buffer"
)

type closeCounter struct {
	Producer
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestBufferedIsOneShot(t *testing.T) {
	p := FromBuffer(buffer.New("hello"))
	b, err := ReadAll(p)
	if err != nil || string(b) != "hello" {
		t.Fatalf("Body is %q, err %v", b, err)
	}
	if err := p.ForEach(func([]byte) error { return nil }); !errors.Is(err, ErrConsumed) {
		t.Fatalf("Second iteration returned %v", err)
	}
}

func TestBufferedHasNoDigest(t *testing.T) {
	if _, ok := DigestOf(FromBuffer(buffer.New("x"))); ok {
		t.Fatal("Plain buffered body should not have a digest")
	}
	d, ok := DigestOf(FromBufferWithDigest(buffer.New("x")))
	if !ok || d != buffer.New("x").Digest() {
		t.Fatalf("Digest is %q (%v)", d, ok)
	}
}

func TestChunksStopOnError(t *testing.T) {
	stop := errors.New("stop")
	var got []string
	err := FromStrings("a", "b", "c").ForEach(func(chunk []byte) error {
		got = append(got, string(chunk))
		if len(got) == 2 {
			return stop
		}
		return nil
	})
	if !errors.Is(err, stop) {
		t.Fatalf("Error is %v", err)
	}
	if strings.Join(got, "") != "ab" {
		t.Fatalf("Got chunks %v", got)
	}
}

func TestDrainClosesOnError(t *testing.T) {
	p := &closeCounter{Producer: FromStrings("a", "b")}
	err := Drain(p, func([]byte) error { return errors.New("write failed") })
	if err == nil {
		t.Fatal("Expected error")
	}
	if p.closed != 1 {
		t.Fatalf("Closed %d times", p.closed)
	}
}

func TestEmpty(t *testing.T) {
	b, err := ReadAll(Empty())
	if err != nil || len(b) != 0 {
		t.Fatalf("Empty body is %q, err %v", b, err)
	}
	if _, ok := DigestOf(Empty()); ok {
		t.Fatal("Empty body should not have a digest")
	}
}

func TestWriteTo(t *testing.T) {
	var sb strings.Builder
	n, err := WriteTo(&sb, FromStrings("Not ", "Found"))
	if err != nil || n != 9 || sb.String() != "Not Found" {
		t.Fatalf("Wrote %d bytes %q, err %v", n, sb.String(), err)
	}
}
