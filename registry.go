// File: registry.go
// Title: Process-Wide Logger Registry
// Description: Optional single-assignment holder for one Logger, used by
//              stateless pass-through functions. Dependency injection is
//              the preferred way to share a Logger; the registry exists as
//              compatibility sugar and is write-once by design.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with write-once semantics

package logfan

import (
	"net/http"
	"sync"
	"time"

	"github.com/pkg/errors"
)

var (
	registryMu sync.Mutex
	registered *Logger
)

// ErrAlreadyConfigured reports a second Configure call
var ErrAlreadyConfigured = errors.New("logfan: already configured")

// ErrNotConfigured reports registry use before Configure
var ErrNotConfigured = errors.New("logfan: not configured")

// Configure constructs the process-wide Logger exactly once. A second call
// fails without touching the stored instance.
func Configure(opts Options) (*Logger, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registered != nil {
		return nil, ErrAlreadyConfigured
	}
	logger, err := New(opts)
	if err != nil {
		return nil, err
	}
	registered = logger
	return logger, nil
}

// Instance returns the process-wide Logger, or an error before Configure
func Instance() (*Logger, error) {
	registryMu.Lock()
	defer registryMu.Unlock()

	if registered == nil {
		return nil, ErrNotConfigured
	}
	return registered, nil
}

// MustInstance returns the process-wide Logger and panics before Configure.
// Registry misuse is a programmer error that fails loudly, unlike per-call
// logging mistakes which are silent.
func MustInstance() *Logger {
	logger, err := Instance()
	if err != nil {
		panic(err)
	}
	return logger
}

// resetRegistry clears the stored instance. Tests only.
func resetRegistry() {
	registryMu.Lock()
	registered = nil
	registryMu.Unlock()
}

// Pass-through functions using the process-wide Logger. Each panics when
// no Logger has been configured.

// Debug logs a debug message through the process-wide Logger
func Debug(message string, source ...string) {
	MustInstance().Debug(message, source...)
}

// Info logs an informational message through the process-wide Logger
func Info(message string, source ...string) {
	MustInstance().Info(message, source...)
}

// Warn logs a warning message through the process-wide Logger
func Warn(message string, source ...string) {
	MustInstance().Warn(message, source...)
}

// Error logs an error through the process-wide Logger
func Error(err error) {
	MustInstance().Error(err)
}

// Event logs a structured event through the process-wide Logger
func Event(name string, properties map[string]interface{}) {
	MustInstance().Event(name, properties)
}

// Metric logs a measurement through the process-wide Logger
func Metric(name string, value float64) {
	MustInstance().Metric(name, value)
}

// Trace logs a dependency call through the process-wide Logger
func Trace(source, command string, elapsed time.Duration, success ...bool) {
	MustInstance().Trace(source, command, elapsed, success...)
}

// Request logs a request/response pair through the process-wide Logger
func Request(req *http.Request, res *Response) {
	MustInstance().Request(req, res)
}

// Flush flushes pending telemetry through the process-wide Logger
func Flush(done func()) {
	MustInstance().Flush(done)
}
