package vrqtrack

// resetIfDiscontinuity inspects an incoming release against the last seen
// content and render times and, if it looks like a seek rather than
// continuous playback, wipes session state (but not accumulated metrics).
// Returns true when a reset occurred.
func (t *Tracker) resetIfDiscontinuity(contentTimeUs, desiredRenderTimeUs int64) bool {
	if t.lastContentTimeUs == absent {
		t.logger.Info("discontinuity_detected", "direction", "initial", "content_time_us", contentTimeUs)
		t.resetSession()
		return true
	}

	if contentTimeUs < t.lastContentTimeUs {
		magnitudeMs := (t.lastContentTimeUs - contentTimeUs) / 1000
		t.logger.Info("discontinuity_detected", "direction", "backward", "delta_ms", magnitudeMs)
		t.resetSession()
		return true
	}

	contentFrameDeltaUs := contentTimeUs - t.lastContentTimeUs
	if contentFrameDeltaUs > int64(t.cfg.MaxExpectedContentFrameDurationUs) {
		desiredFrameDeltaUs := desiredRenderTimeUs - t.lastRenderTimeUs
		delta := contentFrameDeltaUs - desiredFrameDeltaUs
		if abs64(delta) < int64(t.cfg.ContentTimeAdvancedForLiveContentToleranceUs) {
			// A live-content frame drop, not a seek: the render pipeline
			// simply fell behind by roughly the same amount the content
			// jumped forward. No reset.
			return false
		}

		magnitudeMs := contentFrameDeltaUs / 1000
		t.logger.Info("discontinuity_detected", "direction", "forward", "delta_ms", magnitudeMs)
		t.resetSession()
		return true
	}

	return false
}

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}
