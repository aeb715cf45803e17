// File: format.go
// Title: Message Formatting
// Description: Implements the pure closure builders the console sink uses
//              to decorate outgoing lines: the bracketed prefix builder,
//              the level/source colorizer, and the request line renderer
//              with its two literal formats.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with short and dev formats

package logfan

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"
)

// requestFormat selects one of the two request line renderings
type requestFormat int

const (
	// requestShort renders
	// "{addr} - {method} {url} HTTP/{version} {status} {length} - {ms} ms"
	requestShort requestFormat = iota

	// requestDev renders "{method} {url} {status} {ms} ms - {length}"
	requestDev
)

// timestampLayout renders a full ISO-8601 UTC instant
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

// prefixFunc builds the bracketed prefix for a line. A nil prefixFunc
// means no prefix is configured.
type prefixFunc func(level Severity, source string) string

// colorizeFunc decorates a rendered line. A nil colorizeFunc means no
// color is configured.
type colorizeFunc func(message string, level Severity, source string) string

// newPrefixer returns a prefix builder for the enabled segments, or nil
// when every segment is off. Segment order is fixed: timestamp, name,
// level, source. The timestamp is captured when the prefix is built, which
// is the time of the print operation.
func newPrefixer(opts *PrefixOptions, name string) prefixFunc {
	if opts == nil {
		return nil
	}
	segments := *opts
	return func(level Severity, source string) string {
		var b strings.Builder
		if segments.Timestamp {
			b.WriteByte('[')
			b.WriteString(time.Now().UTC().Format(timestampLayout))
			b.WriteByte(']')
		}
		if segments.Name {
			b.WriteByte('[')
			b.WriteString(name)
			b.WriteByte(']')
		}
		if segments.Level {
			b.WriteByte('[')
			b.WriteString(level.String())
			b.WriteByte(']')
		}
		if segments.Source && source != "" {
			b.WriteByte('[')
			b.WriteString(source)
			b.WriteByte(']')
		}
		b.WriteString(": ")
		return b.String()
	}
}

// newColorizer returns a colorizer for the configured mapping, or nil when
// no color configuration is present. Level-based lookup takes precedence
// over source-based lookup; when neither matches the message passes
// through unmodified.
func newColorizer(c *consoleSettings) colorizeFunc {
	if c == nil || !c.hasColor() {
		return nil
	}
	return func(message string, level Severity, source string) string {
		color, ok := c.pickColor(level, source)
		if !ok {
			return message
		}
		return color.Paint(message)
	}
}

// pickColor resolves the color for a line: uniform color first, then the
// level mapping, then the source mapping.
func (c *consoleSettings) pickColor(level Severity, source string) (Color, bool) {
	if c.hasUniform {
		return c.uniform, true
	}
	if color, ok := c.levelColors[level]; ok {
		return color, true
	}
	if source != "" {
		if color, ok := c.sourceColors[source]; ok {
			return color, true
		}
	}
	return Color(""), false
}

// requestLine renders one line of text for a completed request/response
// pair. It returns the empty string when the request is absent.
func requestLine(req *http.Request, res *Response, elapsed time.Duration, format requestFormat) string {
	if req == nil || res == nil {
		return ""
	}

	target := req.RequestURI
	if target == "" && req.URL != nil {
		target = req.URL.RequestURI()
	}
	version := fmt.Sprintf("%d.%d", req.ProtoMajor, req.ProtoMinor)
	length := res.ContentLength()
	if length == "" {
		length = "-"
	}
	ms := elapsed.Milliseconds()

	if format == requestDev {
		return fmt.Sprintf("%s %s %d %d ms - %s",
			req.Method, target, res.Status(), ms, length)
	}
	return fmt.Sprintf("%s - %s %s HTTP/%s %d %s - %d ms",
		clientAddress(req), req.Method, target, version, res.Status(), length, ms)
}

// clientAddress resolves the client address for the short request format.
// A forwarded address set by an upstream proxy wins over the connection's
// remote address.
func clientAddress(req *http.Request) string {
	if fwd := req.Header.Get("X-Forwarded-For"); fwd != "" {
		if idx := strings.IndexByte(fwd, ','); idx >= 0 {
			fwd = fwd[:idx]
		}
		return strings.TrimSpace(fwd)
	}
	if host, _, err := net.SplitHostPort(req.RemoteAddr); err == nil {
		return host
	}
	return req.RemoteAddr
}
