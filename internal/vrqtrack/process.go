package vrqtrack

import (
	"vrqtrack/internal/classify"
	"vrqtrack/internal/framerate"
)

// processMetricsForSkippedFrame accounts for a frame the decoder dropped
// before it ever reached the render queue.
func (t *Tracker) processMetricsForSkippedFrame(contentTimeUs int64) {
	t.metrics.FrameSkippedCount++

	if t.cfg.AreSkippedFramesDropped {
		t.processMetricsForDroppedFrame(contentTimeUs, absent)
		return
	}

	t.contentRing.Update(contentTimeUs)
	t.desiredRing.Update(absent)
	t.actualRing.Update(absent)
	framerate.Update(&t.metrics.ContentFrameRate, t.contentRing, t.cfg.FrameRateDetectionToleranceUs)
}

// processMetricsForDroppedFrame accounts for a frame the renderer
// discarded before display.
func (t *Tracker) processMetricsForDroppedFrame(contentTimeUs, desiredRenderTimeUs int64) {
	t.metrics.FrameDroppedCount++

	t.contentRing.Update(contentTimeUs)
	t.desiredRing.Update(desiredRenderTimeUs)
	t.actualRing.Update(absent)

	framerate.Update(&t.metrics.ContentFrameRate, t.contentRing, t.cfg.FrameRateDetectionToleranceUs)
	framerate.Update(&t.metrics.DesiredFrameRate, t.desiredRing, t.cfg.FrameRateDetectionToleranceUs)
}

// processMetricsForRenderedFrame accounts for a frame that was actually
// displayed, updating all three duration rings and frame rates and
// invoking the freeze and judder classifiers.
func (t *Tracker) processMetricsForRenderedFrame(contentTimeUs, desiredRenderTimeUs, actualRenderTimeUs int64) {
	if t.metrics.FirstRenderTimeUs == 0 {
		t.metrics.FirstRenderTimeUs = actualRenderTimeUs
	}
	t.metrics.FrameRenderedCount++

	if contentTimeUs == absent {
		// The expected queue had already drained (this render immediately
		// follows a discontinuity reset); there is nothing to compare
		// this frame's timing against.
		return
	}

	t.contentRing.Update(contentTimeUs)
	t.desiredRing.Update(desiredRenderTimeUs)
	t.actualRing.Update(actualRenderTimeUs)

	framerate.Update(&t.metrics.ContentFrameRate, t.contentRing, t.cfg.FrameRateDetectionToleranceUs)
	framerate.Update(&t.metrics.DesiredFrameRate, t.desiredRing, t.cfg.FrameRateDetectionToleranceUs)
	framerate.Update(&t.metrics.ActualFrameRate, t.actualRing, t.cfg.FrameRateDetectionToleranceUs)

	t.processFreeze(actualRenderTimeUs)
	t.processJudder()
}

func (t *Tracker) processFreeze(actualRenderTimeUs int64) {
	// Slot 1 of the actual ring is also absent when the previous render was
	// the first since a reset and had no earlier render to measure from. A
	// dropped or skipped frame in that position leaves its content duration
	// in the content ring, so a freeze also requires that slot to be filled.
	if t.contentRing.At(1) == absent {
		return
	}

	isFreeze, durationMs, distanceMs, hasDistance := classify.Freeze(
		t.actualRing, actualRenderTimeUs, t.lastRenderTimeUs, t.lastFreezeEndTimeUs,
	)
	if !isFreeze {
		return
	}

	t.metrics.FreezeDurationMsHistogram.Insert(int32(durationMs))
	if hasDistance {
		t.metrics.FreezeDistanceMsHistogram.Insert(int32(distanceMs))
	}
	t.lastFreezeEndTimeUs = actualRenderTimeUs
}

func (t *Tracker) processJudder() {
	score := classify.Judder(t.actualRing, t.contentRing, t.cfg.JudderErrorToleranceUs)
	if score == 0 {
		return
	}
	t.metrics.JudderScoreHistogram.Insert(int32(score))
}
