// Package classify decides, from duration-ring snapshots alone, whether a
// rendered frame should register a freeze sample, a freeze-distance
// sample, and/or a judder score.
package classify

import "vrqtrack/internal/durationring"

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

// Freeze reports whether the most recently rendered frame closes a freeze
// gap: the previous slot of the actual-duration ring is absent and a frame
// has rendered before. That slot is absent when at least one frame dropped
// between renders, and also right after the first render following a
// reset; the tracker screens out the latter case before calling Freeze.
// When isFreeze is true, freezeDurationMs is always valid;
// freezeDistanceMs/hasDistance are valid only when a prior freeze had
// already ended (lastFreezeEndTimeUs != durationring.Absent).
func Freeze(actual *durationring.Ring, actualRenderTimeUs, lastRenderTimeUs, lastFreezeEndTimeUs int64) (isFreeze bool, freezeDurationMs, freezeDistanceMs int64, hasDistance bool) {
	if actual.At(1) != durationring.Absent || lastRenderTimeUs == durationring.Absent {
		return false, 0, 0, false
	}

	isFreeze = true
	freezeDurationMs = (actualRenderTimeUs - lastRenderTimeUs) / 1000

	if lastFreezeEndTimeUs != durationring.Absent {
		hasDistance = true
		freezeDistanceMs = (lastRenderTimeUs - lastFreezeEndTimeUs) / 1000
	}
	return isFreeze, freezeDurationMs, freezeDistanceMs, hasDistance
}

// Judder scores the frame in slot 1 of the two rings (the "previous"
// rendered frame relative to the frame that just rendered), returning a
// non-negative judder score in milliseconds, or 0 when any gating
// condition rejects the sample: slots 0/1/2 not all present, half-rate or
// paused playback, error within tolerance, or an error too small relative
// to the content frame duration (which would otherwise misclassify 3:2
// pulldown as judder).
func Judder(actual, content *durationring.Ring, toleranceUs int32) int64 {
	a0, a1, a2 := actual.At(0), actual.At(1), actual.At(2)
	c0, c1, c2 := content.At(0), content.At(1), content.At(2)
	if a0 == durationring.Absent || a1 == durationring.Absent || a2 == durationring.Absent ||
		c0 == durationring.Absent || c1 == durationring.Absent || c2 == durationring.Absent {
		return 0
	}

	if a1 >= 2*c1 {
		return 0
	}

	err := a1 - c1
	if abs64(err) < int64(toleranceUs) {
		return 0
	}

	prevErr := a2 - c2
	if abs64(prevErr) >= int64(toleranceUs) {
		err = abs64(err) + abs64(err+prevErr)
	}

	if abs64(err) < c1/4 {
		return 0
	}

	return abs64(err) / 1000
}
