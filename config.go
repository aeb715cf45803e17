// File: config.go
// Title: Configuration Surface and Normalization
// Description: Defines the public options accepted at construction time and
//              resolves them once into a fully-normalized internal settings
//              record. Loosely-shaped fields (boolean shorthands, color
//              unions) are only inspected here, never at call time.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with per-category enablement

package logfan

import (
	"fmt"
)

// Options configures a Logger. The zero value produces a logger with every
// category enabled, a debug threshold, and no sinks.
type Options struct {
	// Name is a free-form identifier included in console prefixes
	Name string

	// Log selects which categories are enabled and the severity threshold
	// for plain messages. Nil means all categories enabled at debug.
	Log *CategoryOptions

	// Console configures the console sink. Nil means no console output.
	Console *ConsoleOptions

	// Telemetry is an externally supplied sink the logger forwards to.
	// The logger holds a reference only; the caller owns its lifecycle.
	Telemetry TelemetrySink

	// Sources is an optional allow-list of source names. When present,
	// message and trace calls tagged with an unlisted source are
	// suppressed even if their category is enabled.
	Sources []string
}

// CategoryOptions carries per-category enablement. For the boolean fields,
// nil means "use default enabled" and an explicit false disables the
// category entirely.
type CategoryOptions struct {
	// Messages is the severity threshold for debug/info/warn calls: a
	// level name, a numeric rank, or a boolean shorthand (true = debug,
	// false = messages disabled). Nil or unparseable keeps the default.
	Messages interface{}

	Errors   *bool
	Events   *bool
	Metrics  *bool
	Services *bool
	Requests *bool
}

// ConsoleOptions configures the console sink's formatting behavior.
type ConsoleOptions struct {
	// Prefix is either a boolean shorthand (true = all segments on) or a
	// PrefixOptions value selecting individual segments.
	Prefix interface{}

	// Formats selects per-category rendering choices
	Formats *FormatOptions

	// Color is either a single Color (or color name string) applied
	// uniformly, or a ColorOptions value mapping levels and sources to
	// colors.
	Color interface{}
}

// PrefixOptions selects which bracketed segments the prefixer emits, in
// the fixed order timestamp, name, level, source.
type PrefixOptions struct {
	Timestamp bool `toml:"timestamp" yaml:"timestamp"`
	Name      bool `toml:"name" yaml:"name"`
	Level     bool `toml:"level" yaml:"level"`
	Source    bool `toml:"source" yaml:"source"`
}

// FormatOptions carries per-category console rendering choices.
type FormatOptions struct {
	// Errors selects error rendering: "message" (default) or "stack"
	Errors string `toml:"errors" yaml:"errors"`

	// Request selects the request line format: "short" (default) or "dev"
	Request string `toml:"request" yaml:"request"`

	// Events, Metrics and Services toggle whether those categories
	// produce console output at all. Nil means enabled.
	Events   *bool `toml:"events" yaml:"events"`
	Metrics  *bool `toml:"metrics" yaml:"metrics"`
	Services *bool `toml:"services" yaml:"services"`
}

// ColorOptions maps severity levels and source names to colors. A level
// match takes precedence over a source match.
type ColorOptions struct {
	Levels  map[string]Color
	Sources map[string]Color
}

// ConfigError reports an invalid construction-time option. Configuration
// mistakes fail loudly and immediately, unlike per-call argument mistakes
// which are silent no-ops.
type ConfigError struct {
	Field  string
	Reason string
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("logfan: invalid %s: %s", e.Field, e.Reason)
}

// settings is the fully-normalized configuration a Logger runs on. It is
// resolved once at construction and read-only afterward.
type settings struct {
	name string

	messages  bool
	threshold Severity

	errors   bool
	events   bool
	metrics  bool
	services bool
	requests bool

	// allow is nil when no allow-list is configured (all sources pass)
	allow map[string]struct{}

	console *consoleSettings
}

// consoleSettings is the normalized form of ConsoleOptions.
type consoleSettings struct {
	prefix *PrefixOptions // nil = no prefix

	errorStacks   bool
	requestFormat requestFormat

	events   bool
	metrics  bool
	services bool

	hasUniform   bool
	uniform      Color
	levelColors  map[Severity]Color
	sourceColors map[string]Color
}

// hasColor reports whether any color configuration is present
func (c *consoleSettings) hasColor() bool {
	return c.hasUniform || len(c.levelColors) > 0 || len(c.sourceColors) > 0
}

// enabled dereferences an optional boolean flag, defaulting to enabled
func enabled(flag *bool) bool {
	if flag == nil {
		return true
	}
	return *flag
}

// normalizeOptions resolves the public options into settings, failing fast
// on structurally invalid input.
func normalizeOptions(opts Options) (*settings, error) {
	s := &settings{
		name:      opts.Name,
		messages:  true,
		threshold: DefaultSeverity(),
		errors:    true,
		events:    true,
		metrics:   true,
		services:  true,
		requests:  true,
	}

	if opts.Log != nil {
		if v, isBool := opts.Log.Messages.(bool); isBool && !v {
			s.messages = false
		} else if level, ok := ParseSeverity(opts.Log.Messages); ok {
			s.threshold = level
		}
		s.errors = enabled(opts.Log.Errors)
		s.events = enabled(opts.Log.Events)
		s.metrics = enabled(opts.Log.Metrics)
		s.services = enabled(opts.Log.Services)
		s.requests = enabled(opts.Log.Requests)
	}

	if opts.Sources != nil {
		allow := make(map[string]struct{}, len(opts.Sources))
		for _, src := range opts.Sources {
			if src == "" {
				return nil, &ConfigError{Field: "sources", Reason: "source names must be non-empty strings"}
			}
			allow[src] = struct{}{}
		}
		s.allow = allow
	}

	if opts.Console != nil {
		console, err := normalizeConsole(opts.Console)
		if err != nil {
			return nil, err
		}
		s.console = console
	}

	return s, nil
}

// normalizeConsole resolves ConsoleOptions into consoleSettings.
func normalizeConsole(opts *ConsoleOptions) (*consoleSettings, error) {
	c := &consoleSettings{
		requestFormat: requestShort,
		events:        true,
		metrics:       true,
		services:      true,
	}

	switch p := opts.Prefix.(type) {
	case nil:
	case bool:
		if p {
			c.prefix = &PrefixOptions{Timestamp: true, Name: true, Level: true, Source: true}
		}
	case PrefixOptions:
		c.prefix = &p
	case *PrefixOptions:
		if p != nil {
			prefix := *p
			c.prefix = &prefix
		}
	default:
		return nil, &ConfigError{Field: "console.prefix", Reason: fmt.Sprintf("unsupported type %T", opts.Prefix)}
	}
	if c.prefix != nil && !c.prefix.Timestamp && !c.prefix.Name && !c.prefix.Level && !c.prefix.Source {
		c.prefix = nil
	}

	if opts.Formats != nil {
		switch opts.Formats.Errors {
		case "", "message":
		case "stack":
			c.errorStacks = true
		default:
			return nil, &ConfigError{Field: "console.formats.errors", Reason: fmt.Sprintf("unknown mode %q", opts.Formats.Errors)}
		}
		switch opts.Formats.Request {
		case "", "short":
		case "dev":
			c.requestFormat = requestDev
		default:
			return nil, &ConfigError{Field: "console.formats.request", Reason: fmt.Sprintf("unknown format %q", opts.Formats.Request)}
		}
		c.events = enabled(opts.Formats.Events)
		c.metrics = enabled(opts.Formats.Metrics)
		c.services = enabled(opts.Formats.Services)
	}

	// Color values are resolved lazily at first paint; only the structure
	// of the mapping is checked here.
	switch col := opts.Color.(type) {
	case nil:
	case Color:
		c.hasUniform = true
		c.uniform = col
	case string:
		c.hasUniform = true
		c.uniform = Color(col)
	case ColorOptions:
		if err := c.setColorMaps(col); err != nil {
			return nil, err
		}
	case *ColorOptions:
		if col != nil {
			if err := c.setColorMaps(*col); err != nil {
				return nil, err
			}
		}
	default:
		return nil, &ConfigError{Field: "console.color", Reason: fmt.Sprintf("unsupported type %T", opts.Color)}
	}

	return c, nil
}

// setColorMaps normalizes a structured color mapping. Level keys must name
// one of the four severities.
func (c *consoleSettings) setColorMaps(opts ColorOptions) error {
	if len(opts.Levels) > 0 {
		c.levelColors = make(map[Severity]Color, len(opts.Levels))
		for name, color := range opts.Levels {
			level, ok := ParseSeverity(name)
			if !ok {
				return &ConfigError{Field: "console.color.levels", Reason: fmt.Sprintf("unknown level %q", name)}
			}
			c.levelColors[level] = color
		}
	}
	if len(opts.Sources) > 0 {
		c.sourceColors = make(map[string]Color, len(opts.Sources))
		for name, color := range opts.Sources {
			c.sourceColors[name] = color
		}
	}
	return nil
}
