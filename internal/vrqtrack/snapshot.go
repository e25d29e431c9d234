package vrqtrack

// Metrics returns the tracker's current metrics snapshot with the four
// derived scalars recomputed from the underlying histograms and counters.
// The returned value shares its histogram pointers with the tracker's own
// state; callers needing a cross-thread copy must synchronize themselves.
func (t *Tracker) Metrics() Metrics {
	if !t.cfg.Enabled {
		return t.metrics
	}

	m := t.metrics

	m.FreezeScore = scoreFromHistogram(m.FreezeDurationMsHistogram, t.cfg.FreezeDurationMsHistogramToScore)
	m.FreezeRate = safeDiv(m.FreezeDurationMsHistogram.Sum(), t.renderDurationMs)
	m.JudderScore = scoreFromHistogram(m.JudderScoreHistogram, t.cfg.JudderScoreHistogramToScore)
	m.JudderRate = safeDiv(m.JudderScoreHistogram.Count(), m.FrameReleasedCount+m.FrameSkippedCount)

	return m
}
