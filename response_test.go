// File: response_test.go
// Title: Response Tracking Tests
// Description: Tests for status/body capture, one-shot completion
//              semantics, and the request logging middleware.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation

package logfan

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestResponseDefaults(t *testing.T) {
	res := NewResponse(httptest.NewRecorder())

	if res.Status() != http.StatusOK {
		t.Errorf("Status() = %d, want 200 before any write", res.Status())
	}
	if res.ContentLength() != "" {
		t.Errorf("ContentLength() = %q, want empty before any write", res.ContentLength())
	}
}

func TestResponseCapture(t *testing.T) {
	rec := httptest.NewRecorder()
	res := NewResponse(rec)

	res.WriteHeader(http.StatusNotFound)
	if _, err := res.Write([]byte("not found")); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	if res.Status() != http.StatusNotFound {
		t.Errorf("Status() = %d, want 404", res.Status())
	}
	if res.ContentLength() != "9" {
		t.Errorf("ContentLength() = %q, want 9", res.ContentLength())
	}
	if rec.Code != http.StatusNotFound || rec.Body.String() != "not found" {
		t.Error("capture must delegate to the underlying writer")
	}
}

func TestResponseContentLengthHeaderWins(t *testing.T) {
	res := NewResponse(httptest.NewRecorder())
	res.Header().Set("Content-Length", "1024")
	res.Write([]byte("short"))

	if res.ContentLength() != "1024" {
		t.Errorf("ContentLength() = %q, header should win over counted bytes", res.ContentLength())
	}
}

func TestResponseWithoutWriter(t *testing.T) {
	res := NewResponse(nil)
	res.SetStatus(http.StatusAccepted)
	res.Write([]byte("body"))

	if res.Status() != http.StatusAccepted {
		t.Errorf("Status() = %d, want 202", res.Status())
	}
	if res.ContentLength() != "4" {
		t.Errorf("ContentLength() = %q, want 4", res.ContentLength())
	}
}

func TestResponseFinishOnce(t *testing.T) {
	res := NewResponse(nil)

	count := 0
	res.OnFinish(func() { count++ })
	res.OnFinish(nil)

	res.Finish()
	res.Finish()

	if count != 1 {
		t.Errorf("callback ran %d times, want exactly once", count)
	}
}

func TestResponseOnFinishAfterCompletion(t *testing.T) {
	res := NewResponse(nil)
	res.Finish()

	called := false
	res.OnFinish(func() { called = true })

	if !called {
		t.Error("callbacks registered after completion should run immediately")
	}
}

func TestMiddleware(t *testing.T) {
	l, out := newTestLogger(t, Options{
		Console: &ConsoleOptions{Formats: &FormatOptions{Request: "dev"}},
	}, nil)

	handler := Middleware(l, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("ok"))
	}))

	req := httptest.NewRequest("POST", "/items", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated || rec.Body.String() != "ok" {
		t.Error("middleware must pass the response through unchanged")
	}
	if req.Header.Get("X-Request-Id") == "" {
		t.Error("middleware should assign a request identifier")
	}

	line := out.String()
	if !strings.HasPrefix(line, "POST /items 201 ") || !strings.HasSuffix(line, "ms - 2\n") {
		t.Errorf("request line = %q, want dev format after the handler returns", line)
	}
}

func TestMiddlewareKeepsRequestID(t *testing.T) {
	l := MustNew(Options{})
	handler := Middleware(l, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-Id", "abc-123")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if got := req.Header.Get("X-Request-Id"); got != "abc-123" {
		t.Errorf("X-Request-Id = %q, inbound identifiers must be kept", got)
	}
}

func TestMiddlewareLogsOnPanicPath(t *testing.T) {
	l, out := newTestLogger(t, Options{
		Console: &ConsoleOptions{Formats: &FormatOptions{Request: "dev"}},
	}, nil)

	handler := Middleware(l, http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		panic("handler blew up")
	}))

	func() {
		defer func() { recover() }()
		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/", nil))
	}()

	if !strings.Contains(out.String(), "500") {
		t.Errorf("request line = %q, completion must fire even when the handler panics", out.String())
	}
}

func BenchmarkResponseWrite(b *testing.B) {
	res := NewResponse(nil)
	payload := bytes.Repeat([]byte("x"), 64)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		res.Write(payload)
	}
}
