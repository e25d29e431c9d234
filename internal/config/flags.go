package config

import (
	"flag"
	"fmt"
	"os"
)

// SimConfig holds the command-line options for the tracker simulation
// binary. It is deliberately small: the simulation drives a fixed set of
// scripted scenarios, so there is no client count, ramp rate, or stream
// URL to parse the way the orchestration CLI this is modeled on does.
type SimConfig struct {
	Headless    bool
	LogFormat   string
	LogLevel    string
	Verbose     bool
	MetricsAddr string
}

// DefaultSimConfig returns the simulation binary's flag defaults.
func DefaultSimConfig() *SimConfig {
	return &SimConfig{
		Headless:    false,
		LogFormat:   "text",
		LogLevel:    "info",
		Verbose:     false,
		MetricsAddr: ":9090",
	}
}

// ParseSimFlags parses the vrqtrack-sim command line.
func ParseSimFlags() (*SimConfig, error) {
	cfg := DefaultSimConfig()

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `vrqtrack-sim - replays scripted frame-event scenarios through a render quality tracker

Usage:
  vrqtrack-sim [flags]

Flags:
`)
		flag.PrintDefaults()
	}

	flag.BoolVar(&cfg.Headless, "headless", cfg.Headless, "Skip the terminal dashboard and print one final snapshot as text")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, `Log format: "json" or "text"`)
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, `Log level: "debug", "info", "warn", or "error"`)
	flag.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Verbose logging (equivalent to -log-level debug)")
	flag.StringVar(&cfg.MetricsAddr, "metrics", cfg.MetricsAddr, "Prometheus metrics address")

	flag.Parse()

	return cfg, nil
}
