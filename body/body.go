// Package body provides the response body producers exchanged in a result.
//
// A Producer pushes its content to a callback, chunk by chunk. Producers are
// one-shot: iterating a second time is not supported. Optional capabilities are
// expressed as additional interfaces: Digester for conditional requests and
// io.Closer for releasing underlying resources.
package body

import (
	"bytes"
	"errors"
	"io"
	"sync"

	"github.com/always-cache/respond/pkg/buffer"

	"go.uber.org/multierr"
)

// ErrConsumed is returned when a one-shot producer is iterated again.
var ErrConsumed = errors.New("body already consumed")

// Producer is a lazy, push-based source of body chunks.
// The chunk passed to fn is only valid until fn returns.
// An error returned by fn stops the iteration and is returned by ForEach.
type Producer interface {
	ForEach(fn func(chunk []byte) error) error
}

// Digester is implemented by producers that can fingerprint their content.
// The digest is an opaque, unquoted string.
type Digester interface {
	Digest() string
}

// once guards the one-shot contract of the in-memory producers.
type once struct {
	mu   sync.Mutex
	done bool
}

func (o *once) start() error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.done {
		return ErrConsumed
	}
	o.done = true
	return nil
}

// Buffered is a producer backed by a buffer. It has no digest.
type Buffered struct {
	once
	buf *buffer.Buffer
}

// FromBuffer wraps buf without a digest capability.
func FromBuffer(buf *buffer.Buffer) *Buffered {
	return &Buffered{buf: buf}
}

func (b *Buffered) ForEach(fn func([]byte) error) error {
	if err := b.start(); err != nil {
		return err
	}
	if b.buf.Len() == 0 {
		return nil
	}
	return fn(b.buf.Bytes())
}

// Buffer returns the underlying buffer.
func (b *Buffered) Buffer() *buffer.Buffer {
	return b.buf
}

// DigestBuffered is a buffered producer whose digest is the buffer digest.
type DigestBuffered struct {
	Buffered
}

// FromBufferWithDigest wraps buf and exposes its content digest.
func FromBufferWithDigest(buf *buffer.Buffer) *DigestBuffered {
	return &DigestBuffered{Buffered{buf: buf}}
}

func (b *DigestBuffered) Digest() string {
	return b.buf.Digest()
}

// Chunks is a producer of fixed string chunks.
type Chunks struct {
	once
	chunks []string
}

// FromStrings returns a producer emitting each string as one chunk.
func FromStrings(chunks ...string) *Chunks {
	return &Chunks{chunks: chunks}
}

func (c *Chunks) ForEach(fn func([]byte) error) error {
	if err := c.start(); err != nil {
		return err
	}
	for _, chunk := range c.chunks {
		if chunk == "" {
			continue
		}
		if err := fn([]byte(chunk)); err != nil {
			return err
		}
	}
	return nil
}

type empty struct{}

func (empty) ForEach(func([]byte) error) error { return nil }

// Empty returns a producer without content.
func Empty() Producer {
	return empty{}
}

// DigestOf returns the digest of p and whether p supports digests.
func DigestOf(p Producer) (string, bool) {
	if d, ok := p.(Digester); ok {
		return d.Digest(), true
	}
	return "", false
}

// Close releases the resources held by p, if it holds any.
func Close(p Producer) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Drain iterates p and closes it afterwards, whether or not the iteration failed.
func Drain(p Producer, fn func([]byte) error) (err error) {
	defer func() {
		err = multierr.Append(err, Close(p))
	}()
	if p == nil {
		return nil
	}
	return p.ForEach(fn)
}

// ReadAll drains p into a byte slice.
func ReadAll(p Producer) ([]byte, error) {
	var buf bytes.Buffer
	err := Drain(p, func(chunk []byte) error {
		_, err := buf.Write(chunk)
		return err
	})
	return buf.Bytes(), err
}

// WriteTo drains p into w and returns the number of bytes written.
func WriteTo(w io.Writer, p Producer) (int64, error) {
	var n int64
	err := Drain(p, func(chunk []byte) error {
		written, err := w.Write(chunk)
		n += int64(written)
		return err
	})
	return n, err
}
