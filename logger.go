// File: logger.go
// Title: Logging Facade
// Description: Implements the Logger facade callers interact with. Every
//              public method is a pure gate-then-forward: validate the
//              arguments, apply the configured gates, and fan out to
//              whichever sinks are present. Also defines the telemetry
//              sink contract and the severity mapping onto it.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with console/telemetry fan-out

package logfan

import (
	"net/http"
	"time"
)

// TelemetrySeverity is the severity scale of the telemetry backend
type TelemetrySeverity int

const (
	TelemetryVerbose TelemetrySeverity = iota
	TelemetryInformation
	TelemetryWarning
	TelemetryError
	TelemetryCritical
)

// String returns the backend's name for the severity
func (s TelemetrySeverity) String() string {
	switch s {
	case TelemetryVerbose:
		return "Verbose"
	case TelemetryInformation:
		return "Information"
	case TelemetryWarning:
		return "Warning"
	case TelemetryError:
		return "Error"
	case TelemetryCritical:
		return "Critical"
	default:
		return "Unknown"
	}
}

// telemetrySeverity maps a message severity onto the telemetry scale.
// Errors have their own dedicated exception call and never map through
// here.
func telemetrySeverity(level Severity) TelemetrySeverity {
	switch level {
	case SeverityInfo:
		return TelemetryInformation
	case SeverityWarning:
		return TelemetryWarning
	default:
		return TelemetryVerbose
	}
}

// TelemetrySink is the contract of the external telemetry backend. The
// logger only needs to know a sink is present and calls these operations
// by contract; failures inside a sink are the sink's own responsibility
// and are not caught by the facade.
type TelemetrySink interface {
	TrackTrace(message string, severity TelemetrySeverity, properties map[string]string)
	TrackException(err error)
	TrackEvent(name string, properties map[string]interface{})
	TrackMetric(name string, value float64)
	TrackDependency(source, command string, elapsed time.Duration, success bool)
	TrackRequest(req *http.Request, res *Response)
	Flush(done func())
}

// Logger is the facade coordinating gating and fan-out. It is constructed
// once from Options and immutable thereafter; concurrent use from multiple
// goroutines is safe by construction.
type Logger struct {
	cfg       *settings
	console   *Console
	telemetry TelemetrySink
}

// New constructs a Logger. Structurally invalid options fail fast here;
// per-call argument mistakes later are silent no-ops.
func New(opts Options) (*Logger, error) {
	cfg, err := normalizeOptions(opts)
	if err != nil {
		return nil, err
	}

	l := &Logger{
		cfg:       cfg,
		telemetry: opts.Telemetry,
	}
	if cfg.console != nil {
		l.console = newConsole(cfg.console, cfg.name)
	}
	return l, nil
}

// MustNew constructs a Logger and panics on invalid options
func MustNew(opts Options) *Logger {
	l, err := New(opts)
	if err != nil {
		panic(err)
	}
	return l
}

// Name returns the logger's identifier
func (l *Logger) Name() string {
	return l.cfg.name
}

// Threshold returns the configured severity threshold for messages
func (l *Logger) Threshold() Severity {
	return l.cfg.threshold
}

// sourceAllowed applies the optional allow-list. Untagged calls always
// pass; with no allow-list configured, all sources pass.
func (l *Logger) sourceAllowed(source string) bool {
	if l.cfg.allow == nil || source == "" {
		return true
	}
	_, ok := l.cfg.allow[source]
	return ok
}

// firstSource extracts the optional source tag from a variadic parameter
func firstSource(source []string) string {
	if len(source) > 0 {
		return source[0]
	}
	return ""
}

// message is the shared gate for debug/info/warn
func (l *Logger) message(level Severity, message, source string) {
	if !l.cfg.messages || message == "" || !level.Covers(l.cfg.threshold) {
		return
	}
	if !l.sourceAllowed(source) {
		return
	}

	if l.console != nil {
		switch level {
		case SeverityDebug:
			l.console.Debug(message, source)
		case SeverityInfo:
			l.console.Info(message, source)
		case SeverityWarning:
			l.console.Warn(message, source)
		}
	}
	if l.telemetry != nil {
		var properties map[string]string
		if source != "" {
			properties = map[string]string{"source": source}
		}
		l.telemetry.TrackTrace(message, telemetrySeverity(level), properties)
	}
}

// Debug logs a debug message, optionally tagged with a source
func (l *Logger) Debug(message string, source ...string) {
	l.message(SeverityDebug, message, firstSource(source))
}

// Info logs an informational message, optionally tagged with a source
func (l *Logger) Info(message string, source ...string) {
	l.message(SeverityInfo, message, firstSource(source))
}

// Warn logs a warning message, optionally tagged with a source
func (l *Logger) Warn(message string, source ...string) {
	l.message(SeverityWarning, message, firstSource(source))
}

// Error logs a genuine error value. The errors category gate applies; a
// nil error is a silent no-op.
func (l *Logger) Error(err error) {
	if !l.cfg.errors || err == nil {
		return
	}
	if l.console != nil {
		l.console.Error(err)
	}
	if l.telemetry != nil {
		l.telemetry.TrackException(err)
	}
}

// Event logs a named structured event with an optional property record
func (l *Logger) Event(name string, properties map[string]interface{}) {
	if !l.cfg.events || name == "" {
		return
	}
	if l.console != nil {
		l.console.Event(name, properties)
	}
	if l.telemetry != nil {
		l.telemetry.TrackEvent(name, properties)
	}
}

// Metric logs a named numeric measurement
func (l *Logger) Metric(name string, value float64) {
	if !l.cfg.metrics || name == "" {
		return
	}
	if l.console != nil {
		l.console.Metric(name, value)
	}
	if l.telemetry != nil {
		l.telemetry.TrackMetric(name, value)
	}
}

// Trace logs a dependency/service call. Success defaults to true when
// omitted. The allow-list, when configured, filters by source.
func (l *Logger) Trace(source, command string, elapsed time.Duration, success ...bool) {
	if !l.cfg.services || !l.sourceAllowed(source) {
		return
	}
	if l.cfg.allow != nil && source == "" {
		return
	}
	ok := true
	if len(success) > 0 {
		ok = success[0]
	}
	if l.console != nil {
		l.console.Trace(source, command, elapsed, ok)
	}
	if l.telemetry != nil {
		l.telemetry.TrackDependency(source, command, elapsed, ok)
	}
}

// Request logs an HTTP request/response pair. The console line is deferred
// until the response finishes; telemetry is notified immediately.
func (l *Logger) Request(req *http.Request, res *Response) {
	if !l.cfg.requests || req == nil || res == nil {
		return
	}
	if l.console != nil {
		l.console.Request(req, res)
	}
	if l.telemetry != nil {
		l.telemetry.TrackRequest(req, res)
	}
}

// Flush asks the telemetry sink to flush pending items, invoking done when
// the flush completes. Without a telemetry sink, done runs immediately.
func (l *Logger) Flush(done func()) {
	if l.telemetry != nil {
		l.telemetry.Flush(done)
		return
	}
	if done != nil {
		done()
	}
}
