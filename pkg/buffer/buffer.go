package buffer

import (
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"fmt"
)

// Buffer is an append-only, resettable accumulator for response bodies
// and header values.
type Buffer struct {
	b bytes.Buffer
}

// New returns a buffer holding the concatenation of values.
func New(values ...any) *Buffer {
	b := &Buffer{}
	return b.Append(values...)
}

// Append writes the string form of each value, without separators.
func (b *Buffer) Append(values ...any) *Buffer {
	for _, v := range values {
		b.b.WriteString(String(v))
	}
	return b
}

// AppendLine is Append followed by CRLF.
func (b *Buffer) AppendLine(values ...any) *Buffer {
	b.Append(values...)
	b.b.WriteString("\r\n")
	return b
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	return b.b.Write(p)
}

func (b *Buffer) Bytes() []byte {
	return b.b.Bytes()
}

func (b *Buffer) String() string {
	return b.b.String()
}

func (b *Buffer) Len() int {
	return b.b.Len()
}

// Reset empties the buffer.
func (b *Buffer) Reset() {
	b.b.Reset()
}

// Digest returns the hex encoded MD5 sum of the current content.
func (b *Buffer) Digest() string {
	sum := md5.Sum(b.b.Bytes())
	return hex.EncodeToString(sum[:])
}

// String converts a value the way the buffer stores it.
// Byte slices are taken verbatim, not formatted as a list of numbers.
func String(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case *Buffer:
		return v.String()
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}
