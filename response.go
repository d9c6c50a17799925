package respond

import (
	"errors"
	"net/http"
	"strings"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
	"github.com/always-cache/respond/pkg/buffer"
	"github.com/always-cache/respond/render"
	"github.com/always-cache/respond/rfc9110"

	"github.com/rs/zerolog/log"
)

// ErrNoRenderer is returned by Render when no renderer is configured.
var ErrNoRenderer = errors.New("no renderer configured")

const (
	debugLineStart = `<div class="debug-line" style="background: yellow;` +
		`color: black; border-top: 1px solid black;">`
	debugLineEnd = "</div>"
)

// Response builds a single response. It is owned by the request handling it
// and must not be shared between goroutines.
type Response struct {
	status      int
	charset     string
	contentType string
	header      *header.Map
	buf         *buffer.Buffer
	debugBuf    *buffer.Buffer
	renderer    render.Renderer
	digest      bool
	result      *Result
}

// New creates a response using the default config and writes values to its
// body, exactly as Write would.
func New(values ...any) *Response {
	return DefaultConfig().NewResponse(values...)
}

// NewResponse creates a response from the config and writes values to its
// body, exactly as Write would.
func (c Config) NewResponse(values ...any) *Response {
	r := &Response{
		status:      http.StatusOK,
		charset:     c.charset(),
		contentType: c.contentType(),
		header:      header.New(),
		buf:         buffer.New(),
		renderer:    c.Renderer,
		digest:      c.DigestBuffered,
	}
	return r.Write(values...)
}

// Write appends the values to the body, separated by single spaces.
func (r *Response) Write(values ...any) *Response {
	writeSeparated(r.buf, values)
	return r
}

// Writeln is Write followed by CRLF.
func (r *Response) Writeln(values ...any) *Response {
	r.Write(values...)
	r.buf.Append("\r\n")
	return r
}

func writeSeparated(b *buffer.Buffer, values []any) {
	for i, v := range values {
		if i > 0 {
			b.Append(" ")
		}
		b.Append(v)
	}
}

// Render renders the named template with data and appends the output to the
// body. Errors from the renderer are returned unchanged.
func (r *Response) Render(name string, data any) error {
	if r.renderer == nil {
		return ErrNoRenderer
	}
	out, err := r.renderer.Render(name, data)
	if err != nil {
		return err
	}
	r.buf.Append(out)
	return nil
}

// Debug adds a highlighted diagnostic line. Debug lines are collected apart
// from the body and appended to it by FlushDebug or Close.
func (r *Response) Debug(values ...any) {
	if r.debugBuf == nil {
		r.debugBuf = buffer.New()
	}
	r.debugBuf.Append(debugLineStart)
	writeSeparated(r.debugBuf, values)
	r.debugBuf.AppendLine(debugLineEnd)
}

// FlushDebug moves the collected debug lines to the body.
func (r *Response) FlushDebug() {
	if r.debugBuf == nil || r.debugBuf.Len() == 0 {
		return
	}
	r.buf.Append(r.debugBuf)
	r.debugBuf.Reset()
}

// Redirect turns the response into a 303 See Other to location.
// It does not stop further writes to the body.
func (r *Response) Redirect(location any) {
	r.status = http.StatusSeeOther
	r.header.Set("Location", buffer.String(location))
}

func (r *Response) Status() int {
	return r.status
}

func (r *Response) SetStatus(status int) *Response {
	r.status = status
	return r
}

func (r *Response) Charset() string {
	return r.charset
}

func (r *Response) SetCharset(charset string) *Response {
	r.charset = charset
	return r
}

func (r *Response) ContentType() string {
	return r.contentType
}

// SetContentType sets the content type added on Close, unless a
// Content-Type header is set explicitly.
func (r *Response) SetContentType(contentType string) *Response {
	r.contentType = contentType
	return r
}

// EnableDigest makes the closed body expose a digest of its content.
func (r *Response) EnableDigest() *Response {
	r.digest = true
	return r
}

// Header returns the first value of the header key.
func (r *Response) Header(key string) string {
	return r.header.Get(key)
}

// SetHeader sets a header, replacing any values set before.
// Setting Content-Type also updates the content type and, if the value has a
// charset parameter, the charset.
func (r *Response) SetHeader(key string, value any) *Response {
	v := buffer.String(value)
	if strings.EqualFold(key, "content-type") {
		r.contentType = v
		if charset := rfc9110.MediaTypeParam(v, "charset"); charset != "" {
			r.charset = charset
		}
	}
	r.header.Set(key, v)
	return r
}

// AddHeader adds a header value, keeping the values set before.
func (r *Response) AddHeader(key string, value any) *Response {
	r.header.Add(key, buffer.String(value))
	return r
}

// Close finishes the response and returns its result.
// Debug lines are flushed to the body and Content-Type is set from the
// content type and charset unless set explicitly. The result is a snapshot:
// changing the response afterwards does not affect it. Closing again returns
// the same result.
func (r *Response) Close() Result {
	if r.result != nil {
		return *r.result
	}
	r.FlushDebug()
	if r.contentType != "" && !r.header.Has("Content-Type") {
		contentType := r.contentType
		if r.charset != "" && rfc9110.MediaTypeParam(contentType, "charset") == "" {
			contentType += "; charset=" + r.charset
		}
		r.header.Set("Content-Type", contentType)
	}

	content := buffer.New(r.buf.Bytes())
	var b body.Producer = body.FromBuffer(content)
	if r.digest {
		b = body.FromBufferWithDigest(content)
	}
	r.result = &Result{
		Status: r.status,
		Header: r.header.Clone(),
		Body:   b,
	}
	log.Trace().Int("status", r.status).Int("length", content.Len()).Msg("Closed response")
	return *r.result
}
