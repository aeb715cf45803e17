// File: response.go
// Title: Response Tracking and HTTP Middleware
// Description: Wraps http.ResponseWriter to capture the status code and
//              body size and to signal response completion exactly once.
//              Request logging defers its console write until that signal
//              fires. Also provides a net/http middleware wiring the
//              wrapper into a handler chain.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with one-shot completion

package logfan

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/google/uuid"
)

// requestIDHeader carries the request identifier assigned by Middleware
const requestIDHeader = "X-Request-Id"

// Response wraps an http.ResponseWriter, capturing the status code and the
// number of body bytes written, and notifying registered callbacks exactly
// once when the response finishes.
type Response struct {
	http.ResponseWriter

	mu        sync.Mutex
	status    int
	written   int64
	finished  bool
	callbacks []func()
}

// NewResponse wraps a response writer for tracking. The wrapped writer may
// be nil when the response originates outside net/http; Status and
// ContentLength then report what was recorded explicitly.
func NewResponse(w http.ResponseWriter) *Response {
	return &Response{ResponseWriter: w, status: http.StatusOK}
}

// WriteHeader records the status code before delegating
func (r *Response) WriteHeader(code int) {
	r.mu.Lock()
	r.status = code
	r.mu.Unlock()
	if r.ResponseWriter != nil {
		r.ResponseWriter.WriteHeader(code)
	}
}

// Write counts body bytes before delegating
func (r *Response) Write(b []byte) (int, error) {
	n := len(b)
	var err error
	if r.ResponseWriter != nil {
		n, err = r.ResponseWriter.Write(b)
	}
	r.mu.Lock()
	r.written += int64(n)
	r.mu.Unlock()
	return n, err
}

// Flush implements http.Flusher for streaming handlers
func (r *Response) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Status returns the recorded status code
func (r *Response) Status() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// ContentLength returns the response's Content-Length header if set, else
// the number of body bytes written, else the empty string.
func (r *Response) ContentLength() string {
	if r.ResponseWriter != nil {
		if cl := r.Header().Get("Content-Length"); cl != "" {
			return cl
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.written > 0 {
		return strconv.FormatInt(r.written, 10)
	}
	return ""
}

// SetStatus records a status code without writing headers. Intended for
// responses not backed by an http.ResponseWriter.
func (r *Response) SetStatus(code int) {
	r.mu.Lock()
	r.status = code
	r.mu.Unlock()
}

// OnFinish registers a callback to run when the response finishes. Each
// callback runs at most once; if the response never finishes it never
// runs. Registering after completion runs the callback immediately.
func (r *Response) OnFinish(fn func()) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		fn()
		return
	}
	r.callbacks = append(r.callbacks, fn)
	r.mu.Unlock()
}

// Finish signals that the response is complete, whether it ended normally
// or with an error. Only the first call has any effect.
func (r *Response) Finish() {
	r.mu.Lock()
	if r.finished {
		r.mu.Unlock()
		return
	}
	r.finished = true
	callbacks := r.callbacks
	r.callbacks = nil
	r.mu.Unlock()

	for _, fn := range callbacks {
		fn()
	}
}

// Middleware returns a handler that logs every request/response pair
// through the logger and assigns a request identifier when the inbound
// request carries none. The request log line is written when the response
// finishes, after the wrapped handler returns.
func Middleware(logger *Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get(requestIDHeader) == "" {
			req.Header.Set(requestIDHeader, uuid.NewString())
		}

		res := NewResponse(w)
		logger.Request(req, res)
		defer res.Finish()

		next.ServeHTTP(res, req)
	})
}
