package vrqtrack

import (
	"testing"
	"time"

	"vrqtrack/internal/config"
	"vrqtrack/internal/framerate"
)

// mockClock provides deterministic time for tests that exercise
// OnFrameReleased's monotonic-now path.
type mockClock struct {
	now time.Time
}

func (c *mockClock) Now() time.Time { return c.now }

func newTracker() *Tracker {
	return New(TrackerConfig{Configuration: config.DefaultConfiguration()})
}

func TestSteady60fpsNoDrops(t *testing.T) {
	tr := newTracker()

	contentTimes := []int64{0, 16_667, 33_334, 50_001, 66_668}
	for i, ct := range contentTimes {
		tr.OnFrameReleasedAt(ct, ct*1000)
		tr.OnFrameRendered(ct, ct*1000+int64(i)) // actual render times track content closely
	}

	m := tr.Metrics()
	if m.FrameRenderedCount != 5 {
		t.Errorf("FrameRenderedCount = %d, want 5", m.FrameRenderedCount)
	}
	if m.FrameDroppedCount != 0 {
		t.Errorf("FrameDroppedCount = %d, want 0", m.FrameDroppedCount)
	}
	if m.FreezeDurationMsHistogram.Count() != 0 {
		t.Errorf("freeze count = %d, want 0", m.FreezeDurationMsHistogram.Count())
	}
	if m.JudderScoreHistogram.Count() != 0 {
		t.Errorf("judder count = %d, want 0", m.JudderScoreHistogram.Count())
	}
}

func TestOneDropProducesFreeze(t *testing.T) {
	tr := newTracker()

	release := func(ct int64) { tr.OnFrameReleasedAt(ct, ct*1000) }
	render := func(ct, actualUs int64) { tr.OnFrameRendered(ct, actualUs*1000) }

	release(0)
	release(16_667)
	release(33_334)
	release(50_001)
	release(66_668)

	render(0, 0)
	render(16_667, 16_667)
	// frame at content 33334 is never rendered — it is dropped when frame
	// at 50001 renders.
	render(50_001, 50_000)
	render(66_668, 66_667)

	m := tr.Metrics()
	if m.FrameDroppedCount != 1 {
		t.Errorf("FrameDroppedCount = %d, want 1", m.FrameDroppedCount)
	}
	if got := m.FreezeDurationMsHistogram.Count(); got != 1 {
		t.Errorf("freeze samples = %d, want 1", got)
	}
	if got := m.FreezeDistanceMsHistogram.Count(); got != 0 {
		t.Errorf("freeze-distance samples = %d, want 0 (first freeze has no prior)", got)
	}
}

func TestBackwardSeekResetsRingsNotCounters(t *testing.T) {
	tr := newTracker()

	tr.OnFrameReleasedAt(0, 0)
	tr.OnFrameRendered(0, 0)
	tr.OnFrameReleasedAt(16_667, 16_667_000)
	tr.OnFrameRendered(16_667, 16_667_000)
	tr.OnFrameReleasedAt(33_334, 33_334_000)
	tr.OnFrameRendered(33_334, 33_334_000)

	before := tr.Metrics()

	// Backward seek back to content time 0.
	tr.OnFrameReleasedAt(0, 40_000_000)

	if tr.contentRing.At(0) != -1 {
		t.Errorf("content ring should be cleared after discontinuity reset")
	}

	tr.OnFrameRendered(0, 40_000_000)

	after := tr.Metrics()
	if after.FrameRenderedCount != before.FrameRenderedCount+1 {
		t.Errorf("FrameRenderedCount should keep accumulating across a discontinuity")
	}
	// The reset cleared lastRenderTimeUs, so the render right after it has
	// no prior render to measure from and must not register as a freeze.
	if after.FreezeDurationMsHistogram.Count() != before.FreezeDurationMsHistogram.Count() {
		t.Errorf("render immediately after discontinuity should not produce a freeze sample")
	}
}

func Test32PulldownSuppressesJudder(t *testing.T) {
	tr := newTracker()

	// Six data points give the actual-duration ring all five slots it
	// needs (the first update never yields a delta); content advances at
	// a steady 41667us, actual alternates ~33333/~50000 (24fps-on-60Hz).
	contentTimes := []int64{0, 41_667, 83_334, 125_001, 166_668, 208_335}
	actualTimes := []int64{0, 33_333, 83_333, 116_666, 166_666, 200_000}

	for i := range contentTimes {
		tr.OnFrameReleasedAt(contentTimes[i], actualTimes[i]*1000)
		tr.OnFrameRendered(contentTimes[i], actualTimes[i]*1000)
	}

	m := tr.Metrics()
	if m.ActualFrameRate != framerate.Pulldown3_2 {
		t.Errorf("ActualFrameRate = %v, want Pulldown3_2", m.ActualFrameRate)
	}
	if got := m.JudderScoreHistogram.Count(); got != 0 {
		t.Errorf("judder samples = %d, want 0 (suppressed by pulldown gate)", got)
	}
}

func TestTunnelBAfterPRelease(t *testing.T) {
	tr := newTracker()

	// Establish a real session first: otherwise the B-frame release made by
	// the second OnTunnelFrameQueued call below would be the session's
	// first release, and the initial discontinuity reset it triggers would
	// wipe the hold set by the first call before it is ever used.
	tr.OnFrameReleasedAt(0, 0)
	tr.OnFrameRendered(0, 0)

	tr.OnTunnelFrameQueued(100)
	tr.OnTunnelFrameQueued(50) // B-frame: released immediately, hold keeps 100

	if tr.tunnelHoldContentTimeUs != 100 {
		t.Fatalf("tunnel hold = %d, want 100", tr.tunnelHoldContentTimeUs)
	}

	tr.OnFrameRendered(100, 1_000_000)

	if tr.tunnelHoldContentTimeUs != absent {
		t.Errorf("tunnel hold should be cleared after tail release")
	}
	m := tr.Metrics()
	if m.FrameRenderedCount != 2 {
		t.Errorf("FrameRenderedCount = %d, want 2", m.FrameRenderedCount)
	}
}

func TestSkipsDiscardedBeforeFirstRenderCountedAfter(t *testing.T) {
	tr := newTracker()

	tr.OnFrameSkipped(0)
	tr.OnFrameSkipped(1)
	tr.OnFrameReleasedAt(0, 0)
	tr.OnFrameRendered(0, 0)

	m := tr.Metrics()
	if m.FrameSkippedCount != 0 {
		t.Errorf("FrameSkippedCount = %d, want 0 (skips before first render are discarded)", m.FrameSkippedCount)
	}

	tr.OnFrameSkipped(20_000)
	tr.OnFrameSkipped(30_000)
	tr.OnFrameReleasedAt(33_334, 33_334_000)
	tr.OnFrameRendered(33_334, 33_334_000)

	m = tr.Metrics()
	if m.FrameSkippedCount != 2 {
		t.Errorf("FrameSkippedCount = %d, want 2", m.FrameSkippedCount)
	}
	if m.FrameDroppedCount != 2 {
		t.Errorf("FrameDroppedCount = %d, want 2 (AreSkippedFramesDropped defaults true)", m.FrameDroppedCount)
	}
}

func TestClearWipesEverything(t *testing.T) {
	tr := newTracker()
	tr.OnFrameReleasedAt(0, 0)
	tr.OnFrameRendered(0, 0)
	tr.OnFrameReleasedAt(16_667, 16_667_000)
	tr.OnFrameRendered(16_667, 16_667_000)

	tr.Clear()

	m := tr.Metrics()
	if m.FrameReleasedCount != 0 || m.FrameRenderedCount != 0 || m.FrameDroppedCount != 0 || m.FrameSkippedCount != 0 {
		t.Errorf("counters not zero after Clear(): %+v", m)
	}
	if m.ContentFrameRate != framerate.Undetermined || m.ActualFrameRate != framerate.Undetermined {
		t.Errorf("frame rates not Undetermined after Clear()")
	}
	if m.FreezeDurationMsHistogram.Count() != 0 || m.JudderScoreHistogram.Count() != 0 {
		t.Errorf("histograms not empty after Clear()")
	}
}

func TestOnFrameReleasedUsesClockWhenNoDesiredTime(t *testing.T) {
	clock := &mockClock{now: time.Unix(100, 0)}
	tr := New(TrackerConfig{Configuration: config.DefaultConfiguration(), Clock: clock})

	tr.OnFrameReleased(0)
	if len(tr.expectedQueue) != 1 {
		t.Fatal("expected one queued frame")
	}
	wantUs := clock.now.UnixMicro()
	if got := tr.expectedQueue[0].desiredRenderTimeUs; got != wantUs {
		t.Errorf("desiredRenderTimeUs = %d, want %d (from injected clock)", got, wantUs)
	}
}

func TestDisabledTrackerIgnoresEvents(t *testing.T) {
	cfg := config.DefaultConfiguration()
	cfg.Enabled = false
	tr := New(TrackerConfig{Configuration: cfg})

	tr.OnFrameReleasedAt(0, 0)
	tr.OnFrameRendered(0, 0)

	m := tr.Metrics()
	if m.FrameReleasedCount != 0 || m.FrameRenderedCount != 0 {
		t.Errorf("disabled tracker should ignore all events, got %+v", m)
	}
}
