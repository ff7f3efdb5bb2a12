// Package transport provides the HTTP round-trip implementations the request
// executor can be built with: a live client and an in-process handler.
package transport

import (
	"net/http"
	"net/http/httptest"
	"time"
)

// Doer performs a single HTTP round trip.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// NewHTTP returns a live client. A zero timeout keeps the platform default.
func NewHTTP(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Handler serves requests through an http.Handler without opening a socket.
type Handler struct {
	handler http.Handler
}

// NewHandler wraps h, typically the fixture server router.
func NewHandler(h http.Handler) *Handler {
	return &Handler{handler: h}
}

// Do runs the handler and returns the recorded response.
func (t *Handler) Do(req *http.Request) (*http.Response, error) {
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	rec := httptest.NewRecorder()
	t.handler.ServeHTTP(rec, req)
	if err := req.Context().Err(); err != nil {
		return nil, err
	}
	res := rec.Result()
	res.Request = req
	return res, nil
}
