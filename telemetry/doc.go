// Package telemetry implements the telemetry sink contract against an
// ingestion endpoint.
//
// Package: telemetry
// Title: Buffered Telemetry Client
// Description: This package provides a buffered, batching client for the
//              telemetry backend the logfan facade forwards to. Items are
//              collected into an in-memory buffer and shipped as JSON
//              envelope batches, either when the buffer fills or on a
//              periodic flush. Transport failures are swallowed; entries
//              were already visible on the console sink.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with batch shipping
package telemetry
