package respond

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/always-cache/respond/body"
	"github.com/always-cache/respond/header"
	tee "github.com/always-cache/respond/pkg/response-writer-tee"

	"github.com/go-chi/chi/v5"
	"github.com/google/go-cmp/cmp"
)

type closeCounter struct {
	body.Producer
	closed int
}

func (c *closeCounter) Close() error {
	c.closed++
	return nil
}

func TestServeWritesResult(t *testing.T) {
	h := BuilderFunc(func(r *http.Request, res *Response) error {
		res.SetCookie("a", "1", SessionCookie, nil)
		res.SetCookie("b", "2", SessionCookie, nil)
		res.Write("Hello world")
		return nil
	})
	req := httptest.NewRequest("GET", "/", nil)
	rr := httptest.NewRecorder()

	Serve(h).ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Status is %d", rr.Code)
	}
	if diff := cmp.Diff([]string{"a=1; path=/", "b=2; path=/"}, rr.Result().Header.Values("Set-Cookie")); diff != "" {
		t.Fatalf("Set-Cookie (-want +got):\n%s", diff)
	}
	if body, err := io.ReadAll(rr.Result().Body); err != nil || fmt.Sprintf("%s", body) != "Hello world" {
		t.Fatalf("Body is %s", body)
	}
}

func TestServeHandlerError(t *testing.T) {
	h := HandlerFunc(func(*http.Request) (Result, error) {
		return Result{}, errors.New("failed")
	})
	rr := httptest.NewRecorder()

	Serve(h).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError || rr.Body.String() != defaultErrorMessage {
		t.Fatalf("Status %d, body %q", rr.Code, rr.Body.String())
	}
}

func TestServeHandlerErrorClosesBody(t *testing.T) {
	b := &closeCounter{Producer: body.FromStrings("partial")}
	h := HandlerFunc(func(*http.Request) (Result, error) {
		return Result{Status: http.StatusOK, Header: header.New(), Body: b}, errors.New("failed")
	})
	rr := httptest.NewRecorder()

	Serve(h).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Code != http.StatusInternalServerError || rr.Body.String() != defaultErrorMessage {
		t.Fatalf("Status %d, body %q", rr.Code, rr.Body.String())
	}
	if b.closed != 1 {
		t.Fatalf("Body of failed result closed %d times", b.closed)
	}
}

func TestServeClosesSkippedBody(t *testing.T) {
	for _, tc := range []struct {
		method string
		status int
	}{
		{"HEAD", http.StatusOK},
		{"GET", http.StatusNotModified},
		{"GET", http.StatusNoContent},
	} {
		b := &closeCounter{Producer: body.FromStrings("content")}
		h := HandlerFunc(func(*http.Request) (Result, error) {
			return Result{Status: tc.status, Header: header.New(), Body: b}, nil
		})
		rr := httptest.NewRecorder()

		Serve(h).ServeHTTP(rr, httptest.NewRequest(tc.method, "/", nil))

		if rr.Body.Len() != 0 {
			t.Fatalf("%s %d: body is %q", tc.method, tc.status, rr.Body.String())
		}
		if b.closed != 1 {
			t.Fatalf("%s %d: closed %d times", tc.method, tc.status, b.closed)
		}
	}
}

func TestServeClosesWrittenBody(t *testing.T) {
	b := &closeCounter{Producer: body.FromStrings("a", "b")}
	h := HandlerFunc(func(*http.Request) (Result, error) {
		return Result{Status: http.StatusOK, Header: header.New(), Body: b}, nil
	})
	rr := httptest.NewRecorder()

	Serve(h).ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))

	if rr.Body.String() != "ab" || b.closed != 1 {
		t.Fatalf("Body %q, closed %d times", rr.Body.String(), b.closed)
	}
}

func TestServeWithChi(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/items/{id}", Serve(BuilderFunc(func(r *http.Request, res *Response) error {
		res.Write("item", chi.URLParam(r, "id"))
		return nil
	})).ServeHTTP)
	rr := httptest.NewRecorder()

	r.ServeHTTP(rr, httptest.NewRequest("GET", "/items/7", nil))

	if rr.Body.String() != "item 7" {
		t.Fatalf("Body is %q", rr.Body.String())
	}
}

func TestCapture(t *testing.T) {
	h := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("Hello "))
		w.Write([]byte("world"))
	})

	res, err := Capture(h).Serve(httptest.NewRequest("GET", "/", nil))
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if res.Status != http.StatusCreated || res.Header.Get("Content-Type") != "text/plain" {
		t.Fatalf("Status %d, content type %s", res.Status, res.Header.Get("Content-Type"))
	}
	if _, ok := body.DigestOf(res.Body); !ok {
		t.Fatal("Captured body should have a digest")
	}
	if got := readBody(t, res); got != "Hello world" {
		t.Fatalf("Body is %q", got)
	}
}

func TestCaptureDefaultsToOK(t *testing.T) {
	h := http.HandlerFunc(func(http.ResponseWriter, *http.Request) {})

	res, _ := Capture(h).Serve(httptest.NewRequest("GET", "/", nil))
	if res.Status != http.StatusOK {
		t.Fatalf("Status is %d", res.Status)
	}
}

func TestResponseSaverTees(t *testing.T) {
	rr := httptest.NewRecorder()
	saver := tee.NewResponseSaver(rr)

	saver.Header().Set("X-Test", "1")
	saver.Write([]byte("Hello"))
	saver.WriteHeader(http.StatusTeapot)

	if rr.Code != http.StatusOK || rr.Header().Get("X-Test") != "1" || rr.Body.String() != "Hello" {
		t.Fatalf("Status %d, body %q", rr.Code, rr.Body.String())
	}
	if saver.StatusCode() != http.StatusOK || saver.Body().String() != "Hello" {
		t.Fatalf("Saved status %d, body %q", saver.StatusCode(), saver.Body().String())
	}
}
