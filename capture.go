package respond

import (
	"net/http"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
	tee "github.com/always-cache/respond/pkg/response-writer-tee"

	"github.com/rs/zerolog/log"
)

// Capture adapts a net/http handler. The handler's output is saved in memory
// and returned as a result whose body exposes a content digest.
func Capture(h http.Handler) Handler {
	return HandlerFunc(func(r *http.Request) (Result, error) {
		saver := tee.NewResponseSaver(nil)
		h.ServeHTTP(saver, r)
		log.Trace().
			Int("status", saver.StatusCode()).
			Int("length", saver.Body().Len()).
			Msg("Captured response")
		return Result{
			Status: saver.StatusCode(),
			Header: header.FromHTTP(saver.Header()),
			Body:   body.FromBufferWithDigest(saver.Body()),
		}, nil
	})
}
