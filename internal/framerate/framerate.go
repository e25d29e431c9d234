// Package framerate detects a stable frame rate, including 3:2 pulldown,
// from a short sliding window of frame durations.
package framerate

import "vrqtrack/internal/durationring"

// Undetermined is returned when the ring does not yet contain enough
// stable samples to compute a rate. Compare by equality only.
const Undetermined float64 = -1

// Pulldown3_2 is the sentinel for 24fps content displayed on a 60Hz
// pipeline via alternating 2- and 3-vsync holds. Compare by equality only,
// never arithmetic.
const Pulldown3_2 float64 = -2

const (
	pulldownShortUs = 33_333
	pulldownLongUs  = 50_000
)

func abs64(v int64) int64 {
	if v < 0 {
		return -v
	}
	return v
}

func withinTolerance(a, b int64, toleranceUs int32) bool {
	return abs64(a-b) <= int64(toleranceUs)
}

// Detect returns the frame rate implied by the ring's three most recent
// slots, or Undetermined/Pulldown3_2 when no stable simple rate is found.
func Detect(ring *durationring.Ring, toleranceUs int32) float64 {
	d0, d1, d2 := ring.At(0), ring.At(1), ring.At(2)
	if d0 == durationring.Absent || d1 == durationring.Absent || d2 == durationring.Absent {
		return Undetermined
	}

	if withinTolerance(d0, d1, toleranceUs) && withinTolerance(d0, d2, toleranceUs) {
		if d0 <= 0 {
			return Undetermined
		}
		return 1_000_000 / float64(d0)
	}

	if is32Pulldown(ring, toleranceUs) {
		return Pulldown3_2
	}
	return Undetermined
}

// is32Pulldown checks the ring's five most recent slots for the
// alternating ~33.3ms/~50ms cadence of 24fps-on-60Hz pulldown.
func is32Pulldown(ring *durationring.Ring, toleranceUs int32) bool {
	if ring.Len() < 5 {
		return false
	}
	d0, d1, d2, d3, d4 := ring.At(0), ring.At(1), ring.At(2), ring.At(3), ring.At(4)
	if d0 == durationring.Absent || d1 == durationring.Absent || d2 == durationring.Absent ||
		d3 == durationring.Absent || d4 == durationring.Absent {
		return false
	}

	if !withinTolerance(d0, d2, toleranceUs) || !withinTolerance(d1, d3, toleranceUs) || !withinTolerance(d0, d4, toleranceUs) {
		return false
	}

	shortLong := withinTolerance(d0, pulldownShortUs, toleranceUs) && withinTolerance(d1, pulldownLongUs, toleranceUs)
	longShort := withinTolerance(d0, pulldownLongUs, toleranceUs) && withinTolerance(d1, pulldownShortUs, toleranceUs)
	return shortLong || longShort
}

// Update overwrites *current only when Detect finds a non-Undetermined
// rate, so a previously detected rate sticks through transient
// instability rather than reverting to Undetermined.
func Update(current *float64, ring *durationring.Ring, toleranceUs int32) {
	if rate := Detect(ring, toleranceUs); rate != Undetermined {
		*current = rate
	}
}
