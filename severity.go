// File: severity.go
// Title: Severity Level Definitions
// Description: Defines the ordered severity levels used to gate message
//              logging and the parser that normalizes loosely-typed
//              configuration input into a canonical level.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with four ordered levels

package logfan

// Severity represents the importance of a logged message
type Severity int

const (
	// SeverityDebug is the least severe level, used for development detail
	SeverityDebug Severity = iota

	// SeverityInfo represents general informational messages
	SeverityInfo

	// SeverityWarning indicates potentially harmful situations
	SeverityWarning

	// SeverityError is the most severe level handled by message logging
	SeverityError
)

// String returns the string representation of the severity
func (s Severity) String() string {
	switch s {
	case SeverityDebug:
		return "debug"
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Rank returns the numeric rank of the severity (higher = more severe)
func (s Severity) Rank() int {
	return int(s)
}

// Valid reports whether the severity is one of the four defined levels
func (s Severity) Valid() bool {
	return s >= SeverityDebug && s <= SeverityError
}

// Covers reports whether a message at this severity passes the given
// minimum threshold
func (s Severity) Covers(min Severity) bool {
	return s >= min
}

// ParseSeverity normalizes loosely-typed configuration input into a
// canonical severity. It accepts a numeric rank, a level name, or a
// boolean shorthand (true means SeverityDebug). Unrecognized input yields
// ok=false, never a fabricated default; the default level is applied by
// the caller, not here. Level names match case-sensitively.
func ParseSeverity(value interface{}) (Severity, bool) {
	switch v := value.(type) {
	case Severity:
		if v.Valid() {
			return v, true
		}
	case int:
		if s := Severity(v); s.Valid() {
			return s, true
		}
	case int64:
		if s := Severity(v); s.Valid() {
			return s, true
		}
	case float64:
		if s := Severity(int(v)); float64(int(v)) == v && s.Valid() {
			return s, true
		}
	case string:
		switch v {
		case "debug":
			return SeverityDebug, true
		case "info":
			return SeverityInfo, true
		case "warning":
			return SeverityWarning, true
		case "error":
			return SeverityError, true
		}
	case bool:
		if v {
			return SeverityDebug, true
		}
	}
	return Severity(0), false
}

// AllSeverities returns all defined severities in rank order
func AllSeverities() []Severity {
	return []Severity{
		SeverityDebug,
		SeverityInfo,
		SeverityWarning,
		SeverityError,
	}
}

// DefaultSeverity returns the threshold applied when none is configured
func DefaultSeverity() Severity {
	return SeverityDebug
}
