// Package vrqtrack implements the render quality tracker: a
// single-threaded, event-driven state machine that turns per-frame
// lifecycle notifications from a media-playback pipeline into running
// smoothness metrics.
package vrqtrack

import (
	"log/slog"

	"vrqtrack/internal/config"
	"vrqtrack/internal/durationring"
	"vrqtrack/internal/framerate"
	"vrqtrack/internal/histogram"
)

// absent is the sentinel used throughout the tracker's internal state for
// "no value yet" timestamps and an empty tunnel hold slot.
const absent int64 = durationring.Absent

// durationRingCapacity is the minimum window size the frame-rate and
// pulldown detectors require.
const durationRingCapacity = 5

// frameInfo is a queued release awaiting its render or drop resolution.
type frameInfo struct {
	contentTimeUs      int64
	desiredRenderTimeUs int64
}

// TrackerConfig bundles a Tracker's configuration with its injectable
// collaborators. Clock and Logger default to production values when left
// zero.
type TrackerConfig struct {
	config.Configuration
	Clock  Clock
	Logger *slog.Logger
}

// Tracker owns all mutable render-quality state for one playback session.
// Every method must be called from the tracker's single owning thread;
// Tracker performs no locking of its own.
type Tracker struct {
	cfg    config.Configuration
	clock  Clock
	logger *slog.Logger

	metrics          Metrics
	renderDurationMs int64

	tunnelHoldContentTimeUs int64
	pendingSkipped          []int64
	expectedQueue           []frameInfo

	lastContentTimeUs   int64
	lastRenderTimeUs    int64
	lastFreezeEndTimeUs int64

	contentRing *durationring.Ring
	desiredRing *durationring.Ring
	actualRing  *durationring.Ring
}

// New constructs a Tracker. cfg.Clock and cfg.Logger default to a
// wall-clock Clock and slog.Default() respectively.
func New(cfg TrackerConfig) *Tracker {
	clock := cfg.Clock
	if clock == nil {
		clock = realClock{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	t := &Tracker{
		cfg:    cfg.Configuration,
		clock:  clock,
		logger: logger,
	}
	t.metrics.FreezeDurationMsHistogram = histogram.New(cfg.FreezeDurationMsHistogramBuckets)
	t.metrics.FreezeDistanceMsHistogram = histogram.New(cfg.FreezeDistanceMsHistogramBuckets)
	t.metrics.JudderScoreHistogram = histogram.New(cfg.JudderScoreHistogramBuckets)
	t.metrics.ContentFrameRate = framerate.Undetermined
	t.metrics.DesiredFrameRate = framerate.Undetermined
	t.metrics.ActualFrameRate = framerate.Undetermined
	t.contentRing = durationring.New(durationRingCapacity)
	t.desiredRing = durationring.New(durationRingCapacity)
	t.actualRing = durationring.New(durationRingCapacity)
	t.resetSession()
	return t
}

// resetSession restores every field except the accumulated metrics and
// renderDurationMs to their initial empty values. Used by both New and
// discontinuity resets, which share this exact set of fields.
func (t *Tracker) resetSession() {
	t.tunnelHoldContentTimeUs = absent
	t.pendingSkipped = t.pendingSkipped[:0]
	t.expectedQueue = t.expectedQueue[:0]
	t.lastContentTimeUs = absent
	t.lastRenderTimeUs = absent
	t.lastFreezeEndTimeUs = absent
	t.contentRing.Reset()
	t.desiredRing.Reset()
	t.actualRing.Reset()
}

// Clear wipes the tracker back to its just-constructed state, including
// accumulated metrics — the only operation that does so mid-session.
func (t *Tracker) Clear() {
	t.resetSession()
	t.renderDurationMs = 0
	t.metrics = Metrics{
		FreezeDurationMsHistogram: histogram.New(t.cfg.FreezeDurationMsHistogramBuckets),
		FreezeDistanceMsHistogram: histogram.New(t.cfg.FreezeDistanceMsHistogramBuckets),
		JudderScoreHistogram:      histogram.New(t.cfg.JudderScoreHistogramBuckets),
		ContentFrameRate:          framerate.Undetermined,
		DesiredFrameRate:          framerate.Undetermined,
		ActualFrameRate:           framerate.Undetermined,
	}
}

// OnFrameReleased notifies the tracker that a frame has been handed from
// the decoder to the renderer, using the wall clock for the desired
// render time.
func (t *Tracker) OnFrameReleased(contentTimeUs int64) {
	if !t.cfg.Enabled {
		return
	}
	t.onFrameReleased(contentTimeUs, t.nowUs())
}

// OnFrameReleasedAt is OnFrameReleased with an explicit desired render
// time in nanoseconds, for pipelines that already know when a frame is
// meant to appear.
func (t *Tracker) OnFrameReleasedAt(contentTimeUs, desiredRenderTimeNs int64) {
	if !t.cfg.Enabled {
		return
	}
	t.onFrameReleased(contentTimeUs, desiredRenderTimeNs/1000)
}

func (t *Tracker) onFrameReleased(contentTimeUs, desiredRenderTimeUs int64) {
	t.resetIfDiscontinuity(contentTimeUs, desiredRenderTimeUs)

	t.metrics.FrameReleasedCount++
	t.expectedQueue = append(t.expectedQueue, frameInfo{
		contentTimeUs:       contentTimeUs,
		desiredRenderTimeUs: desiredRenderTimeUs,
	})
	t.lastContentTimeUs = contentTimeUs
}

// OnFrameSkipped notifies the tracker that the decoder discarded a frame
// before it reached the render queue. Skips observed before the first
// render are discarded outright — they are almost always the product of
// an initial seek, not a quality problem.
func (t *Tracker) OnFrameSkipped(contentTimeUs int64) {
	if !t.cfg.Enabled {
		return
	}
	if t.lastRenderTimeUs == absent {
		return
	}
	t.pendingSkipped = append(t.pendingSkipped, contentTimeUs)
}

// OnFrameRendered notifies the tracker that a frame was actually
// displayed at actualRenderTimeNs.
func (t *Tracker) OnFrameRendered(contentTimeUs, actualRenderTimeNs int64) {
	if !t.cfg.Enabled {
		return
	}

	actualRenderTimeUs := actualRenderTimeNs / 1000

	if t.lastRenderTimeUs != absent {
		t.renderDurationMs += (actualRenderTimeUs - t.lastRenderTimeUs) / 1000
	}

	for _, skipped := range t.pendingSkipped {
		t.processMetricsForSkippedFrame(skipped)
	}
	t.pendingSkipped = t.pendingSkipped[:0]

	if t.tunnelHoldContentTimeUs != absent && contentTimeUs == t.tunnelHoldContentTimeUs {
		t.releaseTunnelHold()
	}

	next := t.popExpectedRenderedFrame(contentTimeUs)
	t.processMetricsForRenderedFrame(next.contentTimeUs, next.desiredRenderTimeUs, actualRenderTimeUs)

	t.lastRenderTimeUs = actualRenderTimeUs
}

// popExpectedRenderedFrame drains the expected-rendered queue up to and
// including the entry matching contentTimeUs, treating every entry popped
// before the match as a dropped frame. If contentTimeUs arrives earlier
// than the queue's head, the head is used as the resolution and a warning
// is logged instead of tearing down tracker state.
func (t *Tracker) popExpectedRenderedFrame(contentTimeUs int64) frameInfo {
	for len(t.expectedQueue) > 0 {
		next := t.expectedQueue[0]
		t.expectedQueue = t.expectedQueue[1:]

		if contentTimeUs == next.contentTimeUs {
			return next
		}
		if contentTimeUs < next.contentTimeUs {
			t.logger.Warn("rendered frame precedes expected queue head",
				"rendered_content_time_us", contentTimeUs,
				"expected_content_time_us", next.contentTimeUs,
			)
			return next
		}
		t.processMetricsForDroppedFrame(next.contentTimeUs, next.desiredRenderTimeUs)
	}
	return frameInfo{contentTimeUs: absent, desiredRenderTimeUs: absent}
}

// OnTunnelFrameQueued notifies the tracker of a decode-to-display queue
// event for tunnel-mode playback, where the decoder may queue a B-frame
// ahead of the P-frame it references. At most one frame is ever held,
// under the assumption that a mini-GOP never references more than one
// future P-frame.
func (t *Tracker) OnTunnelFrameQueued(contentTimeUs int64) {
	if !t.cfg.Enabled {
		return
	}

	if t.tunnelHoldContentTimeUs == absent {
		t.tunnelHoldContentTimeUs = contentTimeUs
		return
	}

	if contentTimeUs < t.tunnelHoldContentTimeUs {
		// Incoming frame is the B-frame referencing the held P-frame;
		// release it immediately and keep holding the P-frame.
		t.releaseQueuedTunnelFrame(contentTimeUs)
		return
	}

	held := t.tunnelHoldContentTimeUs
	t.tunnelHoldContentTimeUs = contentTimeUs
	t.releaseQueuedTunnelFrame(held)
}

func (t *Tracker) releaseTunnelHold() {
	t.releaseQueuedTunnelFrame(t.tunnelHoldContentTimeUs)
	t.tunnelHoldContentTimeUs = absent
}

// releaseQueuedTunnelFrame treats a tunnel queue event as a release with
// no meaningful desired render time.
func (t *Tracker) releaseQueuedTunnelFrame(contentTimeUs int64) {
	t.onFrameReleased(contentTimeUs, 0)
}

// nowUs reads the injected clock in microseconds.
func (t *Tracker) nowUs() int64 {
	return t.clock.Now().UnixMicro()
}
