package vrqtrack

import "time"

// Clock reads the current time. Injected so tests can drive the tracker
// with deterministic timestamps instead of the wall clock.
type Clock interface {
	Now() time.Time
}

// realClock is the production Clock, backed by time.Now.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }
