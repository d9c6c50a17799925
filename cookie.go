package respond

import (
	"net/url"
	"strings"
	"time"

	"github.com/always-cache/respond/pkg/buffer"
	"github.com/always-cache/respond/rfc9110"
)

// SessionCookie as the days argument of SetCookie sets no expiry, so the
// cookie lasts for the browser session.
const SessionCookie = -1

// CookieOptions are the optional attributes of a cookie.
type CookieOptions struct {
	// Path defaults to "/".
	Path string
	// Domain is lower-cased. The current domain is used if empty.
	Domain   string
	Secure   bool
	HttpOnly bool
}

var (
	now = time.Now

	newlineRemover = strings.NewReplacer("\r", "", "\n", "")
)

// SetCookie adds a Set-Cookie header. Cookies set before are kept.
//
// days is the number of days until the cookie expires, counted as 24 hour
// periods. 0 deletes the cookie immediately, a negative value (SessionCookie)
// makes it a session cookie. Line breaks are removed from the value, as it may
// be user provided.
func (r *Response) SetCookie(name, value string, days int, opts *CookieOptions) *Response {
	r.AddHeader("Set-Cookie", formatCookie(name, value, days, opts))
	return r
}

func formatCookie(name, value string, days int, opts *CookieOptions) string {
	b := buffer.New(name, "=", newlineRemover.Replace(value))
	if days >= 0 {
		expires := time.Unix(0, 0)
		if days > 0 {
			expires = now().UTC().AddDate(0, 0, days)
		}
		b.Append("; expires=", rfc9110.CookieDate(expires))
	}
	if opts == nil {
		opts = &CookieOptions{}
	}
	path := opts.Path
	if path == "" {
		path = "/"
	}
	b.Append("; path=", (&url.URL{Path: newlineRemover.Replace(path)}).EscapedPath())
	if opts.Domain != "" {
		b.Append("; domain=", strings.ToLower(newlineRemover.Replace(opts.Domain)))
	}
	if opts.Secure {
		b.Append("; secure")
	}
	if opts.HttpOnly {
		b.Append("; HttpOnly")
	}
	return b.String()
}
