package tui

import (
	"strings"
	"testing"

	"vrqtrack/internal/config"
	"vrqtrack/internal/vrqtrack"
)

func TestRenderDashboardWithStats(t *testing.T) {
	m := New(Config{})
	tr := vrqtrack.New(vrqtrack.TrackerConfig{Configuration: config.DefaultConfiguration()})
	tr.OnFrameReleasedAt(0, 0)
	tr.OnFrameRendered(0, 0)

	m.metrics = tr.Metrics()
	m.haveStats = true

	out := m.renderDashboard()
	if !strings.Contains(out, "Frame Counters") {
		t.Error("dashboard should render the frame counters section")
	}
	if !strings.Contains(out, "Detected Frame Rates") {
		t.Error("dashboard should render the frame rates section")
	}
	if !strings.Contains(out, "Freeze Duration") {
		t.Error("dashboard should render the freeze histogram section")
	}
}

func TestHistogramBarScalesToMax(t *testing.T) {
	if bar := histogramBar(0, 0, 10); !strings.Contains(bar, "░") {
		t.Error("an empty histogram (max 0) should render an unfilled bar")
	}
	full := histogramBar(10, 10, 10)
	if strings.Contains(full, "░") {
		t.Errorf("a bucket at the max count should render fully filled, got %q", full)
	}
}
