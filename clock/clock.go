// Package clock provides the monotonic timestamps that drive every device poll.
// An Instant is only meaningful relative to another Instant from the same Source.
package clock

import (
	"math"
	"time"
)

// Instant is a monotonic point in time, counted in milliseconds since the
// epoch of the Source that produced it.
type Instant uint64

// Epoch is the zero Instant. Devices use it as their reset baseline.
const Epoch Instant = 0

// maxMillis is the largest millisecond count that still fits in a time.Duration.
const maxMillis = uint64(math.MaxInt64 / int64(time.Millisecond))

// Source supplies monotonic timestamps.
type Source interface {
	Now() Instant
}

// Since returns the duration elapsed from earlier to i.
// It reports false when earlier is after i (the clock went backwards or
// wrapped) or when the difference overflows a time.Duration.
func (i Instant) Since(earlier Instant) (time.Duration, bool) {
	if i < earlier {
		return 0, false
	}
	diff := uint64(i - earlier)
	if diff > maxMillis {
		return 0, false
	}
	return time.Duration(diff) * time.Millisecond, true
}

// Add returns i shifted forward by d, truncated to whole milliseconds.
// Negative durations are ignored and the result saturates instead of wrapping.
func (i Instant) Add(d time.Duration) Instant {
	if d <= 0 {
		return i
	}
	ms := uint64(d / time.Millisecond)
	if ms > math.MaxUint64-uint64(i) {
		return Instant(math.MaxUint64)
	}
	return i + Instant(ms)
}

// Millis returns the raw millisecond count.
func (i Instant) Millis() uint64 {
	return uint64(i)
}

// System is a Source backed by the process monotonic clock.
// Its epoch is the moment it was created.
type System struct {
	start time.Time
}

// NewSystem creates a System source whose epoch is now.
func NewSystem() *System {
	return &System{start: time.Now()}
}

// Now returns the milliseconds elapsed since the source was created.
func (s *System) Now() Instant {
	// time.Since uses the monotonic reading, so wall clock steps do not leak in.
	return Instant(time.Since(s.start) / time.Millisecond)
}
