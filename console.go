// File: console.go
// Title: Console Sink
// Description: Implements the formatted console sink. Each operation runs
//              the gate-format-print sequence: check the per-category
//              enablement flag, build the display message, apply prefixer
//              then colorizer, and write to the stream selected by
//              severity. Request logging defers its write until the
//              response signals completion.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with per-severity streams

package logfan

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// Console renders log calls as formatted text lines. It is stateless
// between calls apart from its fixed configuration.
type Console struct {
	// per-severity streams; debug, info and warn default to stdout and
	// error to stderr, but the host may route them separately
	logOut  io.Writer
	infoOut io.Writer
	warnOut io.Writer
	errOut  io.Writer

	prefix   prefixFunc
	colorize colorizeFunc

	errorStacks   bool
	requestFormat requestFormat

	events   bool
	metrics  bool
	services bool
}

// newConsole builds a console sink from normalized settings.
func newConsole(c *consoleSettings, name string) *Console {
	return &Console{
		logOut:        os.Stdout,
		infoOut:       os.Stdout,
		warnOut:       os.Stdout,
		errOut:        os.Stderr,
		prefix:        newPrefixer(c.prefix, name),
		colorize:      newColorizer(c),
		errorStacks:   c.errorStacks,
		requestFormat: c.requestFormat,
		events:        c.events,
		metrics:       c.metrics,
		services:      c.services,
	}
}

// stream returns the destination for the given severity
func (c *Console) stream(level Severity) io.Writer {
	switch level {
	case SeverityInfo:
		return c.infoOut
	case SeverityWarning:
		return c.warnOut
	case SeverityError:
		return c.errOut
	default:
		return c.logOut
	}
}

// write runs the shared prefix-colorize-print sequence. An empty message
// or an invalid level suppresses output silently; logging must never crash
// the caller.
func (c *Console) write(level Severity, message, source string) {
	if message == "" || !level.Valid() {
		return
	}
	line := message
	if c.prefix != nil {
		line = c.prefix(level, source) + line
	}
	if c.colorize != nil {
		line = c.colorize(line, level, source)
	}
	fmt.Fprintln(c.stream(level), line)
}

// Debug prints a debug message. Severity gating already happened in the
// facade, so messages always format when the sink exists.
func (c *Console) Debug(message, source string) {
	c.write(SeverityDebug, message, source)
}

// Info prints an informational message
func (c *Console) Info(message, source string) {
	c.write(SeverityInfo, message, source)
}

// Warn prints a warning message
func (c *Console) Warn(message, source string) {
	c.write(SeverityWarning, message, source)
}

// Error prints an error. With stack rendering configured, errors carrying
// a stack trace are expanded; otherwise the error's message text is used,
// falling back to a literal placeholder.
func (c *Console) Error(err error) {
	c.write(SeverityError, errorDisplay(err, c.errorStacks), "")
}

// Event prints a structured event: the name, then a compact JSON rendering
// of the property record when one is supplied.
func (c *Console) Event(name string, properties map[string]interface{}) {
	if !c.events || name == "" {
		return
	}
	message := name
	if len(properties) > 0 {
		if rendered, err := json.Marshal(properties); err == nil {
			message = name + ": " + string(rendered)
		}
	}
	c.write(SeverityInfo, message, "")
}

// Metric prints a metric as "{name}={value}"
func (c *Console) Metric(name string, value float64) {
	if !c.metrics || name == "" {
		return
	}
	c.write(SeverityInfo, name+"="+strconv.FormatFloat(value, 'f', -1, 64), "")
}

// Trace prints a dependency call result, prefixed with the source name in
// brackets when one is given.
func (c *Console) Trace(source, command string, elapsed time.Duration, success bool) {
	if !c.services {
		return
	}
	phrase := "executed"
	if !success {
		phrase = "failed to execute"
	}
	message := fmt.Sprintf("%s [%s] in %d ms", phrase, command, elapsed.Milliseconds())
	if source != "" {
		message = "[" + source + "] " + message
	}
	c.write(SeverityInfo, message, source)
}

// Request captures a start timestamp and registers a one-shot completion
// callback on the response; the line is built and printed only once the
// response signals it has finished. If the response never finishes,
// nothing is printed.
func (c *Console) Request(req *http.Request, res *Response) {
	if req == nil || res == nil {
		return
	}
	start := time.Now()
	res.OnFinish(func() {
		line := requestLine(req, res, time.Since(start), c.requestFormat)
		c.write(SeverityInfo, line, "")
	})
}

// stackTracer matches errors that carry a captured stack trace
type stackTracer interface {
	StackTrace() errors.StackTrace
}

// errorDisplay builds the display message for an error per the configured
// rendering mode.
func errorDisplay(err error, stacks bool) string {
	if err == nil {
		return "Unknown error"
	}
	if stacks && carriesStack(err) {
		return fmt.Sprintf("%+v", err)
	}
	if message := err.Error(); message != "" {
		return message
	}
	return "Unknown error"
}

// carriesStack walks the unwrap chain looking for a captured stack trace
func carriesStack(err error) bool {
	for err != nil {
		if _, ok := err.(stackTracer); ok {
			return true
		}
		unwrapper, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = unwrapper.Unwrap()
	}
	return false
}
