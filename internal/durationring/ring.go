// Package durationring implements the fixed-capacity, shift-registered
// duration window used to detect frame rate, freeze, and judder from a
// sequence of event timestamps.
package durationring

// Absent is the sentinel stored in a ring slot (or as the prior timestamp)
// when no value is available yet, or when the corresponding frame was not
// rendered.
const Absent int64 = -1

// Ring is a fixed-capacity sliding window of signed durations. Slot 0 is
// the most recent; slot Capacity()-1 is the oldest. It is paired with a
// "prior timestamp" that Update uses to turn absolute timestamps into
// durations.
type Ring struct {
	slots          []int64
	priorTimestamp int64
}

// New returns a Ring with the given capacity, which must be at least 5 —
// the minimum window the frame-rate and 3:2-pulldown detectors require.
// New panics if capacity is smaller than that.
func New(capacity int) *Ring {
	if capacity < 5 {
		panic("durationring: capacity must be at least 5")
	}
	r := &Ring{slots: make([]int64, capacity)}
	r.Reset()
	return r
}

// Update shifts every slot one step older and fills slot 0.
//
// If newTimestampUs is Absent, slot 0 becomes Absent and the prior
// timestamp is left untouched — this models a frame that did not occur
// (a skip or drop) without losing the timeline needed to compute the next
// real duration.
//
// Otherwise slot 0 becomes newTimestampUs - priorTimestamp (or Absent if
// there was no prior timestamp yet), and the prior timestamp advances to
// newTimestampUs.
func (r *Ring) Update(newTimestampUs int64) {
	copy(r.slots[1:], r.slots[:len(r.slots)-1])

	if newTimestampUs == Absent {
		r.slots[0] = Absent
		return
	}

	if r.priorTimestamp == Absent {
		r.slots[0] = Absent
	} else {
		r.slots[0] = newTimestampUs - r.priorTimestamp
	}
	r.priorTimestamp = newTimestampUs
}

// At returns the duration stored in slot i.
func (r *Ring) At(i int) int64 { return r.slots[i] }

// Len returns the ring's capacity.
func (r *Ring) Len() int { return len(r.slots) }

// Reset clears every slot and the prior timestamp back to Absent.
func (r *Ring) Reset() {
	for i := range r.slots {
		r.slots[i] = Absent
	}
	r.priorTimestamp = Absent
}
