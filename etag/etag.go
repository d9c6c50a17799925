// Package etag implements conditional GET for respond handlers.
//
// Successful results whose body can compute a digest get an ETag header. When
// the request's If-None-Match lists that tag, the result is rewritten to
// 304 Not Modified without a body.
package etag

import (
	"net/http"
	"strings"

	"github.com/always-cache/respond"
	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
	"github.com/always-cache/respond/rfc9110"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type Config struct {
	// Logger to use. The global zerolog logger is used if nil.
	Logger *zerolog.Logger
}

// ETag is the conditional GET middleware. It keeps no state between
// requests and is safe for concurrent use.
type ETag struct {
	logger *zerolog.Logger
}

func New(config Config) *ETag {
	return &ETag{logger: config.Logger}
}

func (e *ETag) getLogger() *zerolog.Logger {
	if e.logger != nil {
		return e.logger
	}
	return &log.Logger
}

var std = New(Config{})

// Middleware wraps next with the default configuration.
func Middleware(next respond.Handler) respond.Handler {
	return std.Middleware(next)
}

// Handler wraps a net/http handler. Its output is captured in memory so that
// it can be fingerprinted.
func Handler(next http.Handler) http.Handler {
	return respond.Serve(std.Middleware(respond.Capture(next)))
}

// Middleware returns a handler applying conditional GET to the results of next.
func (e *ETag) Middleware(next respond.Handler) respond.Handler {
	return respond.HandlerFunc(func(r *http.Request) (respond.Result, error) {
		tags := rfc9110.ParseIfNoneMatch(r.Header)

		res, err := next.Serve(r)
		if err != nil {
			return res, err
		}
		return e.apply(r, tags, res), nil
	})
}

func (e *ETag) apply(r *http.Request, tags []string, res respond.Result) respond.Result {
	if res.Status != http.StatusOK {
		skipped.WithLabelValues("status").Inc()
		return res
	}
	digest, ok := body.DigestOf(res.Body)
	if !ok {
		skipped.WithLabelValues("no_digest").Inc()
		return res
	}
	digests.Inc()

	etag := rfc9110.Quote(digest)
	if res.Header == nil {
		res.Header = header.New()
	}
	res.Header.Set("ETag", etag)

	if !rfc9110.Matches(tags, etag) {
		e.logRequest(r, etag, res.Status)
		return res
	}

	if err := body.Close(res.Body); err != nil {
		e.getLogger().Warn().Err(err).Msg("Could not close discarded body")
	}
	res.Status = http.StatusNotModified
	res.Body = body.Empty()
	notModified.Inc()
	e.logRequest(r, etag, res.Status)
	return res
}

func (e *ETag) logRequest(r *http.Request, etag string, status int) {
	e.getLogger().Debug().
		Str("method", r.Method).
		Str("url", r.URL.String()).
		Str("sourceIp", getRequestSourceIp(r)).
		Str("component", "etag").
		Str("etag", etag).
		Int("status", status).
		Msg("Applied entity tag")
}

func getRequestSourceIp(r *http.Request) string {
	// RemoteAddr is in the format:
	// 1.2.3.4:10000 for ipv4
	// [1:2:3]:10000 for ipv6
	ipAndPort := r.RemoteAddr
	portSepIdx := strings.LastIndex(ipAndPort, ":")
	if portSepIdx < 0 {
		return ipAndPort
	}
	return ipAndPort[:portSepIdx]
}
