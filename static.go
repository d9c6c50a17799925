package respond

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"sync"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
	"github.com/always-cache/respond/mimetype"
	"github.com/always-cache/respond/resource"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const staticChunkSize = 8192

// Static returns a result streaming a resource, resolved in the default
// config's repository when ref is a path. See Config.Static.
func Static(ctx context.Context, ref any, contentType string) (Result, error) {
	return DefaultConfig().Static(ctx, ref, contentType)
}

// Static returns a result streaming a resource.
//
// ref is either a path, resolved in the configured repository, or a
// resource.Resource. A missing resource, or a path outside the repository,
// gives a 404 result. The content type is detected from the resource name
// unless contentType is given.
func (c Config) Static(ctx context.Context, ref any, contentType string) (Result, error) {
	var res resource.Resource
	switch ref := ref.(type) {
	case string:
		r, err := c.resources().Resource(ctx, ref)
		if errors.Is(err, resource.ErrInvalidPath) {
			log.Debug().Str("path", ref).Msg("Rejected static path")
			return NotFound(ref), nil
		}
		if err != nil {
			return Result{}, errors.Wrapf(err, "resolving %s", ref)
		}
		res = r
	case resource.Resource:
		res = ref
	default:
		return Result{}, errors.Wrapf(ErrInvalidArgument, "static response for %T", ref)
	}

	if !res.Exists() {
		return NotFound(res.Name()), nil
	}
	if contentType == "" {
		contentType = mimetype.Lookup(res.Name())
	}
	h := header.New()
	h.Set("Content-Type", contentType)
	return Result{
		Status: http.StatusOK,
		Header: h,
		Body:   &StaticBody{res: res},
	}, nil
}

// StaticBody streams the content of a resource. The input is opened on
// iteration and released by Close.
type StaticBody struct {
	res resource.Resource

	mu       sync.Mutex
	consumed bool
	input    io.ReadCloser
}

// Digest fingerprints the resource by its modification time and length,
// without reading the content.
func (b *StaticBody) Digest() string {
	return strconv.FormatInt(b.res.LastModified().UnixMilli(), 36) +
		strconv.FormatInt(b.res.Length(), 36)
}

func (b *StaticBody) ForEach(fn func([]byte) error) error {
	input, err := b.open()
	if err != nil {
		return err
	}
	buf := make([]byte, staticChunkSize)
	for {
		n, err := input.Read(buf)
		if n > 0 {
			if err := fn(buf[:n]); err != nil {
				return err
			}
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Wrapf(err, "reading %s", b.res.Name())
		}
	}
}

func (b *StaticBody) open() (io.ReadCloser, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.consumed {
		return nil, errors.Wrap(body.ErrConsumed, b.res.Name())
	}
	b.consumed = true
	input, err := b.res.Open()
	if err != nil {
		return nil, errors.Wrapf(err, "opening %s", b.res.Name())
	}
	log.Trace().Str("resource", b.res.Name()).Msg("Opened static resource")
	b.input = input
	return input, nil
}

// Close releases the input, if it was opened. Closing again is a no-op.
func (b *StaticBody) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.input == nil {
		return nil
	}
	err := b.input.Close()
	b.input = nil
	return err
}
