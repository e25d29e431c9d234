package durationring

import "testing"

func TestUpdateComputesDurations(t *testing.T) {
	r := New(5)

	r.Update(1000)
	if got := r.At(0); got != Absent {
		t.Errorf("first update: At(0) = %d, want Absent (no prior timestamp)", got)
	}

	r.Update(1500)
	if got := r.At(0); got != 500 {
		t.Errorf("second update: At(0) = %d, want 500", got)
	}
	if got := r.At(1); got != Absent {
		t.Errorf("second update: At(1) = %d, want Absent", got)
	}

	r.Update(1800)
	if got := r.At(0); got != 300 {
		t.Errorf("third update: At(0) = %d, want 300", got)
	}
	if got := r.At(1); got != 500 {
		t.Errorf("third update: At(1) = %d, want 500", got)
	}
}

func TestUpdateAbsentDoesNotAdvancePrior(t *testing.T) {
	r := New(5)
	r.Update(1000)
	r.Update(1500) // At(0) = 500, priorTimestamp = 1500

	r.Update(Absent)
	if got := r.At(0); got != Absent {
		t.Errorf("Update(Absent): At(0) = %d, want Absent", got)
	}

	// priorTimestamp must still be 1500, so the next real update measures
	// from there, not from the absent slot.
	r.Update(2000)
	if got := r.At(0); got != 500 {
		t.Errorf("update after Absent: At(0) = %d, want 500 (measured from last real timestamp)", got)
	}
}

func TestReset(t *testing.T) {
	r := New(5)
	r.Update(1000)
	r.Update(1500)
	r.Reset()

	for i := 0; i < r.Len(); i++ {
		if got := r.At(i); got != Absent {
			t.Errorf("At(%d) after Reset = %d, want Absent", i, got)
		}
	}

	// After reset, priorTimestamp is gone too.
	r.Update(5000)
	if got := r.At(0); got != Absent {
		t.Errorf("first update after Reset: At(0) = %d, want Absent", got)
	}
}

func TestNewPanicsBelowMinimumCapacity(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New(4) did not panic")
		}
	}()
	New(4)
}
