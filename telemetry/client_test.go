// File: client_test.go
// Title: Telemetry Client Tests
// Description: Tests for fail-fast construction, envelope shapes, batch
//              shipping, and deferred request recording.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation

package telemetry

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/mstrecker/logfan"
)

// capture collects every batch the client ships
type capture struct {
	mu      sync.Mutex
	batches []batch
}

func (c *capture) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		body, _ := io.ReadAll(req.Body)
		var b batch
		if err := json.Unmarshal(body, &b); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		c.mu.Lock()
		c.batches = append(c.batches, b)
		c.mu.Unlock()
	})
}

func (c *capture) items() []envelope {
	c.mu.Lock()
	defer c.mu.Unlock()
	var all []envelope
	for _, b := range c.batches {
		all = append(all, b.Items...)
	}
	return all
}

func newTestClient(t *testing.T, opts Options) (*Client, *capture) {
	t.Helper()
	cap := &capture{}
	server := httptest.NewServer(cap.handler())
	t.Cleanup(server.Close)

	opts.Provider = ProviderApplicationInsights
	if opts.Key == "" {
		opts.Key = "test-key"
	}
	opts.Endpoint = server.URL
	if opts.FlushInterval == 0 {
		opts.FlushInterval = time.Hour
	}

	client, err := New(opts)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(client.Close)
	return client, cap
}

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"missing provider", Options{Key: "k"}},
		{"unsupported provider", Options{Provider: "statsd", Key: "k"}},
		{"missing key", Options{Provider: ProviderApplicationInsights}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if err == nil {
				t.Fatal("New() should fail fast")
			}
			var cfgErr *logfan.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Errorf("error type = %T, want *logfan.ConfigError", err)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Provider != ProviderApplicationInsights {
		t.Errorf("provider = %q, want %q", opts.Provider, ProviderApplicationInsights)
	}
	if opts.Endpoint != DefaultEndpoint {
		t.Errorf("endpoint = %q, want default ingestion endpoint", opts.Endpoint)
	}
	if opts.BatchSize != 100 || opts.FlushInterval != 5*time.Second {
		t.Error("batching defaults should match the documented values")
	}
}

func TestEnvelopes(t *testing.T) {
	client, cap := newTestClient(t, Options{})

	client.TrackTrace("hello", logfan.TelemetryWarning, map[string]string{"source": "db"})
	client.TrackException(errors.New("boom"))
	client.TrackException(nil)
	client.TrackEvent("user.created", map[string]interface{}{"id": "u1"})
	client.TrackMetric("queue_depth", 7)
	client.TrackDependency("db", "SELECT 1", 12*time.Millisecond, false)

	client.Flush(nil)

	items := cap.items()
	if len(items) != 5 {
		t.Fatalf("shipped %d items, want 5", len(items))
	}

	trace := items[0]
	if trace.Kind != "trace" || trace.Message != "hello" || trace.Severity != "Warning" {
		t.Errorf("trace envelope = %+v", trace)
	}
	if trace.Key != "test-key" || trace.ID == "" || trace.Time == "" {
		t.Error("every envelope must carry id, time, and the access key")
	}
	if trace.Properties["source"] != "db" {
		t.Error("trace properties should carry the source tag")
	}

	if items[1].Kind != "exception" || items[1].Message != "boom" {
		t.Errorf("exception envelope = %+v", items[1])
	}
	if items[2].Kind != "event" || items[2].Name != "user.created" {
		t.Errorf("event envelope = %+v", items[2])
	}
	if items[3].Kind != "metric" || items[3].Value != 7 {
		t.Errorf("metric envelope = %+v", items[3])
	}

	dep := items[4]
	if dep.Kind != "dependency" || dep.Name != "db" || dep.Command != "SELECT 1" {
		t.Errorf("dependency envelope = %+v", dep)
	}
	if dep.Success == nil || *dep.Success {
		t.Error("dependency failure should ship success=false")
	}
}

func TestBatchSizeTriggersFlush(t *testing.T) {
	client, cap := newTestClient(t, Options{BatchSize: 3})

	for i := 0; i < 3; i++ {
		client.TrackMetric("m", float64(i))
	}

	deadline := time.After(2 * time.Second)
	for len(cap.items()) < 3 {
		select {
		case <-deadline:
			t.Fatal("full batch should flush without an explicit Flush call")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestTrackRequestDeferred(t *testing.T) {
	client, cap := newTestClient(t, Options{})

	req := httptest.NewRequest("GET", "/a", nil)
	res := logfan.NewResponse(httptest.NewRecorder())
	res.SetStatus(http.StatusTeapot)

	client.TrackRequest(req, res)
	client.Flush(nil)
	if len(cap.items()) != 0 {
		t.Fatal("request envelope must wait for the response to finish")
	}

	res.Finish()
	client.Flush(nil)

	items := cap.items()
	if len(items) != 1 {
		t.Fatalf("shipped %d items, want 1", len(items))
	}
	if items[0].Kind != "request" || items[0].Method != "GET" || items[0].URL != "/a" {
		t.Errorf("request envelope = %+v", items[0])
	}
	if items[0].Status != http.StatusTeapot {
		t.Errorf("request status = %d, want the finished status", items[0].Status)
	}
}

func TestTrackRequestNilGuard(t *testing.T) {
	client, cap := newTestClient(t, Options{})

	client.TrackRequest(nil, nil)
	client.Flush(nil)

	if len(cap.items()) != 0 {
		t.Error("nil request/response must record nothing")
	}
}

func TestFlushCallback(t *testing.T) {
	client, _ := newTestClient(t, Options{})

	called := false
	client.Flush(func() { called = true })
	if !called {
		t.Error("Flush should invoke the completion callback")
	}
}

func TestCloseShipsRemaining(t *testing.T) {
	cap := &capture{}
	server := httptest.NewServer(cap.handler())
	defer server.Close()

	client, err := New(Options{
		Provider:      ProviderApplicationInsights,
		Key:           "k",
		Endpoint:      server.URL,
		FlushInterval: time.Hour,
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	client.TrackMetric("pending", 1)
	client.Close()
	client.Close()

	if len(cap.items()) != 1 {
		t.Errorf("shipped %d items on close, want 1", len(cap.items()))
	}
}

func TestTransportFailureDropsBatch(t *testing.T) {
	client, err := New(Options{
		Provider:      ProviderApplicationInsights,
		Key:           "k",
		Endpoint:      "http://127.0.0.1:1",
		FlushInterval: time.Hour,
		HTTPClient:    &http.Client{Timeout: 100 * time.Millisecond},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer client.Close()

	client.TrackMetric("m", 1)
	client.Flush(nil)

	client.mu.Lock()
	remaining := len(client.buffer)
	client.mu.Unlock()
	if remaining != 0 {
		t.Error("a failed ship must not requeue the batch")
	}
}
