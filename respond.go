// Package respond builds HTTP responses as (status, headers, body) results.
//
// Handlers return a Result, either directly or by filling a Response builder
// and closing it. Middleware such as the conditional GET handling in the etag
// package inspects and rewrites results, and Serve writes them to a
// net/http ResponseWriter.
package respond

import (
	"errors"
	"net/http"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
)

var (
	// ErrInvalidArgument is returned when a static response is requested
	// for something that is neither a path nor a resource.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Result is the protocol tuple exchanged between handlers, middleware and
// the transport. Body is iterable exactly once.
type Result struct {
	Status int
	Header *header.Map
	Body   body.Producer
}

// Handler produces the result for a request.
type Handler interface {
	Serve(r *http.Request) (Result, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(r *http.Request) (Result, error)

func (f HandlerFunc) Serve(r *http.Request) (Result, error) {
	return f(r)
}

// BuilderFunc is a handler that fills a fresh Response.
// The response is closed into a result after the function returns.
type BuilderFunc func(r *http.Request, res *Response) error

func (f BuilderFunc) Serve(r *http.Request) (Result, error) {
	return DefaultConfig().Builder(f).Serve(r)
}

// Middleware wraps a handler.
type Middleware func(next Handler) Handler
