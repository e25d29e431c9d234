// Package main provides the vrqtrack-sim CLI entry point.
//
// vrqtrack-sim replays a fixed trace of frame-lifecycle events through a
// render quality tracker and renders its live metrics snapshot, either as
// a terminal dashboard or, in -headless mode, as one final text report.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"vrqtrack/internal/config"
	"vrqtrack/internal/tui"
	"vrqtrack/internal/vrqexport"
	"vrqtrack/internal/vrqlog"
	"vrqtrack/internal/vrqtrack"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "-version", "--version", "version":
			fmt.Printf("vrqtrack-sim %s\n", version)
			return 0
		}
	}

	cfg, err := config.ParseSimFlags()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing flags: %v\n", err)
		return 1
	}

	var logger *slog.Logger
	if cfg.Headless {
		logger = vrqlog.NewLogger(cfg.LogFormat, cfg.LogLevel, cfg.Verbose)
	} else {
		// The dashboard owns the terminal; route logs to a discard
		// sink so they never interleave with bubbletea's redraws.
		logger = vrqlog.NewLoggerWithWriter(io.Discard, cfg.LogFormat, cfg.LogLevel)
	}
	vrqlog.SetDefault(logger)

	trackerCfg := config.DefaultConfiguration()
	if err := config.Validate(&trackerCfg); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		return 1
	}

	tr := vrqtrack.New(vrqtrack.TrackerConfig{Configuration: trackerCfg, Logger: logger})

	collector := vrqexport.NewCollector(vrqexport.CollectorConfig{
		FreezeDurationMsBuckets: trackerCfg.FreezeDurationMsHistogramBuckets,
		JudderScoreMsBuckets:    trackerCfg.JudderScoreHistogramBuckets,
	})

	metricsServer := vrqexport.NewServer(cfg.MetricsAddr, logger)
	metricsServer.Start()
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		metricsServer.Shutdown(ctx)
	}()

	logger.Info("starting", "version", version, "metrics_addr", cfg.MetricsAddr, "headless", cfg.Headless)

	if cfg.Headless {
		return runHeadless(tr, collector)
	}
	return runDashboard(tr, collector)
}

// runHeadless replays every scenario immediately and prints one final
// text report, for scripting and CI.
func runHeadless(tr *vrqtrack.Tracker, collector *vrqexport.Collector) int {
	printBanner()

	for _, s := range scenarios() {
		s.run(tr)
	}

	m := tr.Metrics()
	collector.Observe(m)
	printSnapshot(m)
	return 0
}

// runDashboard replays the scenarios one at a time, pacing them so the
// terminal dashboard visibly progresses, and blocks until the user quits.
func runDashboard(tr *vrqtrack.Tracker, collector *vrqexport.Collector) int {
	printBanner()

	model := tui.New(tui.Config{Source: tr})
	program := tea.NewProgram(model, tea.WithAltScreen())

	go func() {
		for _, s := range scenarios() {
			s.run(tr)
			collector.Observe(tr.Metrics())
			tui.SendMetrics(program, tr.Metrics())
			time.Sleep(1200 * time.Millisecond)
		}
	}()

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "dashboard error: %v\n", err)
		return 1
	}
	return 0
}

func printBanner() {
	fmt.Println()
	fmt.Println("╔═══════════════════════════════════════════════════╗")
	fmt.Println("║                   vrqtrack-sim                    ║")
	fmt.Println("║   Render Quality Tracker — scripted event replay  ║")
	fmt.Println("╚═══════════════════════════════════════════════════╝")
	fmt.Println()
}

func printSnapshot(m vrqtrack.Metrics) {
	fmt.Printf("frame_released_count:  %d\n", m.FrameReleasedCount)
	fmt.Printf("frame_rendered_count:  %d\n", m.FrameRenderedCount)
	fmt.Printf("frame_dropped_count:   %d\n", m.FrameDroppedCount)
	fmt.Printf("frame_skipped_count:   %d\n", m.FrameSkippedCount)
	fmt.Println()
	fmt.Printf("content_frame_rate:    %.3f\n", m.ContentFrameRate)
	fmt.Printf("desired_frame_rate:    %.3f\n", m.DesiredFrameRate)
	fmt.Printf("actual_frame_rate:     %.3f\n", m.ActualFrameRate)
	fmt.Println()
	fmt.Printf("freeze_score:          %d\n", m.FreezeScore)
	fmt.Printf("freeze_rate:           %.6f\n", m.FreezeRate)
	fmt.Printf("judder_score:          %d\n", m.JudderScore)
	fmt.Printf("judder_rate:           %.6f\n", m.JudderRate)
	fmt.Println()
	fmt.Printf("freeze_duration_samples: %d (sum %d ms)\n", m.FreezeDurationMsHistogram.Count(), m.FreezeDurationMsHistogram.Sum())
	fmt.Printf("freeze_distance_samples: %d\n", m.FreezeDistanceMsHistogram.Count())
	fmt.Printf("judder_score_samples:    %d (sum %d)\n", m.JudderScoreHistogram.Count(), m.JudderScoreHistogram.Sum())
}
