package respond

import (
	"net/http"
	"sync/atomic"

	"github.com/always-cache/respond/render"
	"github.com/always-cache/respond/resource"
)

const (
	defaultCharset     = "utf-8"
	defaultContentType = "text/html"
)

// Config holds the defaults for responses.
type Config struct {
	// Charset appended to the Content-Type of builder responses. Defaults to utf-8.
	Charset string `yaml:"charset"`
	// ContentType of builder responses. Defaults to text/html.
	ContentType string `yaml:"contentType"`
	// DigestBuffered makes builder bodies expose a content digest,
	// so that they take part in conditional requests.
	DigestBuffered bool `yaml:"digestBuffered"`
	// Renderer used by Response.Render.
	Renderer render.Renderer `yaml:"-"`
	// Resources is the repository static paths are resolved in.
	// The current directory is used if nil.
	Resources resource.Repository `yaml:"-"`
}

var defaults atomic.Pointer[Config]

// SetDefaultConfig sets the configuration used by New, Static and the other
// package level factories. It is meant to be called once at startup.
func SetDefaultConfig(c Config) {
	defaults.Store(&c)
}

// DefaultConfig returns the configuration set with SetDefaultConfig.
func DefaultConfig() Config {
	if c := defaults.Load(); c != nil {
		return *c
	}
	return Config{}
}

func (c Config) charset() string {
	if c.Charset != "" {
		return c.Charset
	}
	return defaultCharset
}

func (c Config) contentType() string {
	if c.ContentType != "" {
		return c.ContentType
	}
	return defaultContentType
}

func (c Config) resources() resource.Repository {
	if c.Resources != nil {
		return c.Resources
	}
	return resource.NewDir(".")
}

// Builder returns a handler that fills responses created from this config.
func (c Config) Builder(f BuilderFunc) Handler {
	return HandlerFunc(func(r *http.Request) (Result, error) {
		res := c.NewResponse()
		if err := f(r, res); err != nil {
			return Result{}, err
		}
		return res.Close(), nil
	})
}
