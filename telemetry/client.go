// File: client.go
// Title: Telemetry Client Implementation
// Description: Implements the logfan telemetry sink contract with a
//              buffered batching client. Items are wrapped in JSON
//              envelopes and POSTed to the ingestion endpoint when the
//              buffer fills, on a periodic tick, or on an explicit flush.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with size and interval flush

package telemetry

import (
	"bytes"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/mstrecker/logfan"
)

// ProviderApplicationInsights is the only provider this client accepts
const ProviderApplicationInsights = "applicationinsights"

// DefaultEndpoint is the ingestion endpoint used when none is configured
const DefaultEndpoint = "https://dc.services.visualstudio.com/v2/track"

// Options configures a Client.
type Options struct {
	// Provider must be ProviderApplicationInsights; anything else fails
	// construction
	Provider string

	// Key is the backend access key, stamped into every envelope
	Key string

	// Endpoint overrides the ingestion endpoint (default DefaultEndpoint)
	Endpoint string

	// BatchSize triggers a flush when the buffer reaches it (default 100)
	BatchSize int

	// FlushInterval is the periodic flush cadence (default 5s)
	FlushInterval time.Duration

	// HTTPClient overrides the transport (default: 10s timeout client)
	HTTPClient *http.Client
}

// DefaultOptions returns the default client configuration
func DefaultOptions() Options {
	return Options{
		Provider:      ProviderApplicationInsights,
		Endpoint:      DefaultEndpoint,
		BatchSize:     100,
		FlushInterval: 5 * time.Second,
	}
}

// envelope is the wire form of one telemetry item
type envelope struct {
	ID         string                 `json:"id"`
	Kind       string                 `json:"kind"`
	Time       string                 `json:"time"`
	Key        string                 `json:"iKey"`
	Message    string                 `json:"message,omitempty"`
	Severity   string                 `json:"severityLevel,omitempty"`
	Name       string                 `json:"name,omitempty"`
	Value      float64                `json:"value,omitempty"`
	Command    string                 `json:"command,omitempty"`
	DurationMS int64                  `json:"durationMs,omitempty"`
	Success    *bool                  `json:"success,omitempty"`
	Method     string                 `json:"method,omitempty"`
	URL        string                 `json:"url,omitempty"`
	Status     int                    `json:"status,omitempty"`
	Properties map[string]interface{} `json:"properties,omitempty"`
}

// batch is the wire form of one ingestion request
type batch struct {
	Items []envelope `json:"items"`
}

// Client is a buffered telemetry sink. It satisfies logfan.TelemetrySink
// and is safe for concurrent use.
type Client struct {
	key      string
	endpoint string
	client   *http.Client

	mu        sync.Mutex
	buffer    []envelope
	batchSize int

	flushInterval time.Duration
	stopCh        chan struct{}
	doneCh        chan struct{}
	stopOnce      sync.Once
}

var _ logfan.TelemetrySink = (*Client)(nil)

// New constructs a Client. An unrecognized or missing provider, or a
// missing key, is a fatal configuration error raised here, not deferred
// to first use.
func New(opts Options) (*Client, error) {
	if opts.Provider != ProviderApplicationInsights {
		return nil, &logfan.ConfigError{Field: "telemetry.provider", Reason: "unsupported provider " + opts.Provider}
	}
	if opts.Key == "" {
		return nil, &logfan.ConfigError{Field: "telemetry.key", Reason: "access key is required"}
	}
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = 100
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = 5 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: 10 * time.Second}
	}

	c := &Client{
		key:           opts.Key,
		endpoint:      opts.Endpoint,
		client:        opts.HTTPClient,
		buffer:        make([]envelope, 0, opts.BatchSize),
		batchSize:     opts.BatchSize,
		flushInterval: opts.FlushInterval,
		stopCh:        make(chan struct{}),
		doneCh:        make(chan struct{}),
	}
	go c.flushLoop()
	return c, nil
}

// newEnvelope stamps the common fields of an item
func (c *Client) newEnvelope(kind string) envelope {
	return envelope{
		ID:   uuid.NewString(),
		Kind: kind,
		Time: time.Now().UTC().Format(time.RFC3339Nano),
		Key:  c.key,
	}
}

// TrackTrace records a leveled message
func (c *Client) TrackTrace(message string, severity logfan.TelemetrySeverity, properties map[string]string) {
	env := c.newEnvelope("trace")
	env.Message = message
	env.Severity = severity.String()
	if len(properties) > 0 {
		env.Properties = make(map[string]interface{}, len(properties))
		for k, v := range properties {
			env.Properties[k] = v
		}
	}
	c.enqueue(env)
}

// TrackException records an error
func (c *Client) TrackException(err error) {
	if err == nil {
		return
	}
	env := c.newEnvelope("exception")
	env.Message = err.Error()
	c.enqueue(env)
}

// TrackEvent records a named event with an optional property record
func (c *Client) TrackEvent(name string, properties map[string]interface{}) {
	env := c.newEnvelope("event")
	env.Name = name
	env.Properties = properties
	c.enqueue(env)
}

// TrackMetric records a named measurement
func (c *Client) TrackMetric(name string, value float64) {
	env := c.newEnvelope("metric")
	env.Name = name
	env.Value = value
	c.enqueue(env)
}

// TrackDependency records a dependency/service call result
func (c *Client) TrackDependency(source, command string, elapsed time.Duration, success bool) {
	env := c.newEnvelope("dependency")
	env.Name = source
	env.Command = command
	env.DurationMS = elapsed.Milliseconds()
	ok := success
	env.Success = &ok
	c.enqueue(env)
}

// TrackRequest records a request/response pair. The envelope is built when
// the response finishes so the status code and duration are final; if the
// response never finishes, nothing is recorded.
func (c *Client) TrackRequest(req *http.Request, res *logfan.Response) {
	if req == nil || res == nil {
		return
	}
	start := time.Now()
	method := req.Method
	target := req.RequestURI
	if target == "" && req.URL != nil {
		target = req.URL.RequestURI()
	}
	res.OnFinish(func() {
		env := c.newEnvelope("request")
		env.Method = method
		env.URL = target
		env.Status = res.Status()
		env.DurationMS = time.Since(start).Milliseconds()
		c.enqueue(env)
	})
}

// Flush ships everything buffered and then invokes done
func (c *Client) Flush(done func()) {
	c.flush()
	if done != nil {
		done()
	}
}

// Close stops the flush loop and ships any remaining items
func (c *Client) Close() {
	c.stopOnce.Do(func() {
		close(c.stopCh)
	})
	<-c.doneCh
}

// enqueue buffers an item and triggers a flush when the batch is full
func (c *Client) enqueue(env envelope) {
	c.mu.Lock()
	c.buffer = append(c.buffer, env)
	shouldFlush := len(c.buffer) >= c.batchSize
	c.mu.Unlock()

	if shouldFlush {
		go c.flush()
	}
}

// flushLoop periodically flushes the buffer until Close
func (c *Client) flushLoop() {
	defer close(c.doneCh)

	ticker := time.NewTicker(c.flushInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			c.flush()
			return
		case <-ticker.C:
			c.flush()
		}
	}
}

// flush ships the buffered batch. Transport failures drop the batch; the
// entries were already written to the console sink.
func (c *Client) flush() {
	c.mu.Lock()
	if len(c.buffer) == 0 {
		c.mu.Unlock()
		return
	}
	items := c.buffer
	c.buffer = make([]envelope, 0, c.batchSize)
	c.mu.Unlock()

	body, err := json.Marshal(batch{Items: items})
	if err != nil {
		return
	}

	resp, err := c.client.Post(c.endpoint, "application/json", bytes.NewReader(body))
	if err != nil {
		return
	}
	resp.Body.Close()
}
