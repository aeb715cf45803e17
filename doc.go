// Package logfan is a lightweight, configurable logging facade for
// server-side applications.
//
// Package: logfan
// Title: Logging Facade with Console and Telemetry Fan-Out
// Description: This package provides a unified API for emitting leveled
//              messages, errors, structured events, metrics, and
//              dependency traces, fanning each call out to zero or more
//              configured sinks: a formatted console writer and an
//              external telemetry backend. Calls are gated by a severity
//              threshold, per-category enablement flags, and an optional
//              source allow-list.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation
//
// Features:
// - Four ordered severity levels with loose-input parsing
// - Per-category enablement: messages, errors, events, metrics, services, requests
// - Optional source allow-list filtering message and trace calls
// - Console prefixing ([timestamp][name][level][source]) and coloring by
//   level or source
// - Request logging with asynchronous duration measurement in two line
//   formats (short and dev)
// - Pluggable telemetry sink contract with a buffered client in the
//   telemetry subpackage
// - Options loading from TOML or YAML files
// - Optional write-once process-wide registry with pass-through functions
//
// Usage:
//
//	logger, err := logfan.New(logfan.Options{
//	    Name: "dev-logger",
//	    Console: &logfan.ConsoleOptions{
//	        Prefix: true,
//	        Color: logfan.ColorOptions{
//	            Levels: map[string]logfan.Color{"warning": logfan.ColorYellow},
//	        },
//	    },
//	})
//	if err != nil {
//	    // configuration mistakes fail fast at construction
//	}
//
//	logger.Info("service started")
//	logger.Warn("cache miss ratio high", "cache")
//	logger.Metric("queue_depth", 42)
//	logger.Trace("dev-db", "SELECT 1", 15*time.Millisecond)
//
//	// HTTP request logging via middleware
//	http.ListenAndServe(":8080", logfan.Middleware(logger, mux))
//
// Per-call argument mistakes never panic or return errors; a logging call
// must be safe from anywhere, including error handlers. Construction-time
// and registry-misuse mistakes fail loudly instead.
package logfan
