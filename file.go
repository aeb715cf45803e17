// File: file.go
// Title: Options File Loading
// Description: Loads logger options from TOML or YAML files with format
//              auto-detection by extension. The file schema mirrors the
//              construction-time options; the telemetry section carries
//              provider credentials the caller turns into a sink.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with TOML/YAML support

package logfan

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk form of Options plus telemetry credentials.
type FileConfig struct {
	Name      string               `toml:"name" yaml:"name"`
	Log       *LogFileConfig       `toml:"log" yaml:"log"`
	Console   *ConsoleFileConfig   `toml:"console" yaml:"console"`
	Telemetry *TelemetryFileConfig `toml:"telemetry" yaml:"telemetry"`
	Sources   []string             `toml:"sources" yaml:"sources"`
}

// LogFileConfig mirrors CategoryOptions for file decoding.
type LogFileConfig struct {
	Messages interface{} `toml:"messages" yaml:"messages"`
	Errors   *bool       `toml:"errors" yaml:"errors"`
	Events   *bool       `toml:"events" yaml:"events"`
	Metrics  *bool       `toml:"metrics" yaml:"metrics"`
	Services *bool       `toml:"services" yaml:"services"`
	Requests *bool       `toml:"requests" yaml:"requests"`
}

// ConsoleFileConfig mirrors ConsoleOptions for file decoding. A present
// section enables the console sink unless Enabled is explicitly false.
type ConsoleFileConfig struct {
	Enabled *bool            `toml:"enabled" yaml:"enabled"`
	Prefix  *PrefixOptions   `toml:"prefix" yaml:"prefix"`
	Formats *FormatOptions   `toml:"formats" yaml:"formats"`
	Color   *ColorFileConfig `toml:"color" yaml:"color"`
}

// ColorFileConfig selects either a uniform color or a structured mapping.
type ColorFileConfig struct {
	Uniform string           `toml:"uniform" yaml:"uniform"`
	Levels  map[string]Color `toml:"levels" yaml:"levels"`
	Sources map[string]Color `toml:"sources" yaml:"sources"`
}

// TelemetryFileConfig carries telemetry backend credentials. The caller
// constructs a sink from these and injects it into Options.
type TelemetryFileConfig struct {
	Provider string `toml:"provider" yaml:"provider"`
	Key      string `toml:"key" yaml:"key"`
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
}

// LoadFile reads a FileConfig from a TOML or YAML file, detecting the
// format from the file extension.
func LoadFile(path string) (*FileConfig, error) {
	if path == "" {
		return nil, &ConfigError{Field: "path", Reason: "config file path cannot be empty"}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "logfan: reading config file %s", path)
	}

	var fc FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &fc); err != nil {
			return nil, errors.Wrapf(err, "logfan: parsing TOML config %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, errors.Wrapf(err, "logfan: parsing YAML config %s", path)
		}
	default:
		return nil, &ConfigError{Field: "path", Reason: "unsupported config format " + filepath.Ext(path)}
	}

	return &fc, nil
}

// Options converts the file form into construction Options. The telemetry
// section is not converted here; build a sink from Telemetry and assign it
// to the returned Options before calling New.
func (fc *FileConfig) Options() Options {
	opts := Options{
		Name:    fc.Name,
		Sources: fc.Sources,
	}

	if fc.Log != nil {
		opts.Log = &CategoryOptions{
			Messages: fc.Log.Messages,
			Errors:   fc.Log.Errors,
			Events:   fc.Log.Events,
			Metrics:  fc.Log.Metrics,
			Services: fc.Log.Services,
			Requests: fc.Log.Requests,
		}
	}

	if fc.Console != nil && enabled(fc.Console.Enabled) {
		console := &ConsoleOptions{Formats: fc.Console.Formats}
		if fc.Console.Prefix != nil {
			console.Prefix = *fc.Console.Prefix
		}
		if fc.Console.Color != nil {
			if fc.Console.Color.Uniform != "" {
				console.Color = Color(fc.Console.Color.Uniform)
			} else if len(fc.Console.Color.Levels) > 0 || len(fc.Console.Color.Sources) > 0 {
				console.Color = ColorOptions{
					Levels:  fc.Console.Color.Levels,
					Sources: fc.Console.Color.Sources,
				}
			}
		}
		opts.Console = console
	}

	return opts
}
