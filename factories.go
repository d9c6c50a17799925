package respond

import (
	"encoding/xml"
	"html"
	"net/http"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
	"github.com/always-cache/respond/render"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

const defaultErrorMessage = "Something went wrong."

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSON returns a response containing the JSON representation of v.
func JSON(v any) (*Response, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "encoding json response")
	}
	return New(b).SetContentType("application/json"), nil
}

// XML returns a response containing an XML document. Strings and byte slices
// are used as they are, other values are marshalled.
func XML(v any) (*Response, error) {
	var doc []byte
	switch v := v.(type) {
	case string:
		doc = []byte(v)
	case []byte:
		doc = v
	default:
		var err error
		if doc, err = xml.Marshal(v); err != nil {
			return nil, errors.Wrap(err, "encoding xml response")
		}
	}
	return New(doc).SetContentType("application/xml"), nil
}

// Skin returns a response with the rendered template name as its body.
func Skin(r render.Renderer, name string, data any) (*Response, error) {
	out, err := r.Render(name, data)
	if err != nil {
		return nil, err
	}
	return New(out), nil
}

// Redirect returns a 303 See Other result pointing to location.
func Redirect(location string) Result {
	h := header.New()
	h.Set("Location", location)
	return Result{
		Status: http.StatusSeeOther,
		Header: h,
		Body:   body.FromStrings("See other: " + location),
	}
}

// NotFound returns an HTML 404 result for location.
func NotFound(location string) Result {
	const msg = "Not Found"
	h := header.New()
	h.Set("Content-Type", "text/html")
	return Result{
		Status: http.StatusNotFound,
		Header: h,
		Body: body.FromStrings(
			"<html><title>", msg, "</title>",
			"<body><h2>", msg, "</h2>",
			"<p>The requested URL ", html.EscapeString(location),
			" was not found on the server.</p>",
			"</body></html>",
		),
	}
}

// Error returns a plain text 500 result. An empty msg is replaced by a
// generic message.
func Error(msg string) Result {
	if msg == "" {
		msg = defaultErrorMessage
	}
	h := header.New()
	h.Set("Content-Type", "text/plain")
	return Result{
		Status: http.StatusInternalServerError,
		Header: h,
		Body:   body.FromStrings(msg),
	}
}
