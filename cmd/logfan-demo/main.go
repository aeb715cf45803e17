// File: main.go
// Title: Demo Binary
// Description: Small CLI exercising the logfan facade: emits one call per
//              category against the configured sinks, and optionally runs
//              an HTTP server with request logging middleware.
// Version: v0.1.0
// Created: 2026-08-28
// Modified: 2026-08-28
//
// Change History:
// - 2026-08-28 v0.1.0: Initial implementation with emit and serve commands

package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mstrecker/logfan"
	"github.com/mstrecker/logfan/telemetry"
)

var (
	cfgFile string
	addr    string
)

var rootCmd = &cobra.Command{
	Use:   "logfan-demo",
	Short: "Exercise the logfan logging facade",
	Long: `logfan-demo drives the logfan facade through every logging
category against the configured sinks.

Commands:
  emit   - log one call per category and exit
  serve  - run an HTTP server with request logging middleware`,
}

var emitCmd = &cobra.Command{
	Use:   "emit",
	Short: "Log one call per category and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger()
		if err != nil {
			return err
		}

		logger.Debug("starting demo run")
		logger.Info("connected to backing store", "dev-db")
		logger.Warn("cache miss ratio above threshold", "cache")
		logger.Error(errors.New("demo failure"))
		logger.Event("demo.completed", map[string]interface{}{"categories": 6})
		logger.Metric("queue_depth", 42)
		logger.Trace("dev-db", "SELECT 1", 15*time.Millisecond)
		logger.Trace("dev-db", "SELECT * FROM missing", 7*time.Millisecond, false)

		done := make(chan struct{})
		logger.Flush(func() { close(done) })
		<-done
		return nil
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run an HTTP server with request logging",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger, err := buildLogger()
		if err != nil {
			return err
		}

		mux := http.NewServeMux()
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			fmt.Fprintln(w, "ok")
		})

		logger.Info("listening on " + addr)
		return http.ListenAndServe(addr, logfan.Middleware(logger, mux))
	},
}

// buildLogger constructs the demo logger, from a config file when one is
// given and from built-in defaults otherwise.
func buildLogger() (*logfan.Logger, error) {
	if cfgFile == "" {
		return logfan.New(logfan.Options{
			Name: "logfan-demo",
			Console: &logfan.ConsoleOptions{
				Prefix: true,
				Color: logfan.ColorOptions{
					Levels: map[string]logfan.Color{
						"warning": logfan.ColorYellow,
						"error":   logfan.ColorRed,
					},
				},
			},
		})
	}

	fc, err := logfan.LoadFile(cfgFile)
	if err != nil {
		return nil, err
	}
	opts := fc.Options()
	if fc.Telemetry != nil {
		sink, err := telemetry.New(telemetry.Options{
			Provider: fc.Telemetry.Provider,
			Key:      fc.Telemetry.Key,
			Endpoint: fc.Telemetry.Endpoint,
		})
		if err != nil {
			return nil, err
		}
		opts.Telemetry = sink
	}
	return logfan.New(opts)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (TOML or YAML)")
	serveCmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(emitCmd)
	rootCmd.AddCommand(serveCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
