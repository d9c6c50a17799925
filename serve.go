package respond

import (
	"net/http"

	"github.com/always-cache/respond/body"

	"github.com/rs/zerolog/log"
)

// Serve adapts a handler to net/http. Handler errors are logged and answered
// with an Error result.
func Serve(h Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := h.Serve(r)
		if err != nil {
			log.Error().Err(err).Str("path", r.URL.Path).Msg("Handler failed")
			if res.Body != nil {
				if err := body.Close(res.Body); err != nil {
					log.Warn().Err(err).Msg("Could not close body")
				}
			}
			res = Error("")
		}
		Write(w, r, res)
	})
}

// Write writes a result to w. The body is always closed, also when it is not
// sent because the request or the status do not allow one.
func Write(w http.ResponseWriter, r *http.Request, res Result) {
	if res.Header != nil {
		res.Header.WriteTo(w.Header())
	}
	status := res.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.WriteHeader(status)

	if res.Body == nil {
		return
	}
	if !bodyAllowed(r, status) {
		if err := body.Close(res.Body); err != nil {
			log.Warn().Err(err).Msg("Could not close body")
		}
		return
	}
	_, err := body.WriteTo(w, res.Body)
	if err != nil {
		log.Warn().Err(err).Str("path", r.URL.Path).Msg("Could not write body")
	}
}

func bodyAllowed(r *http.Request, status int) bool {
	if r.Method == http.MethodHead {
		return false
	}
	switch {
	case status >= 100 && status < 200:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}
