package clock

import "time"

// Fake is a manually driven Source for tests.
type Fake struct {
	// Current is the Instant returned by the next Now call.
	Current Instant

	// Step, if non-zero, advances Current after every Now call.
	Step time.Duration

	// Calls counts Now invocations.
	Calls int
}

// NewFake creates a Fake starting at the given instant.
func NewFake(start Instant) *Fake {
	return &Fake{Current: start}
}

// Now returns the current instant and then applies Step.
func (f *Fake) Now() Instant {
	f.Calls++
	now := f.Current
	f.Current = f.Current.Add(f.Step)
	return now
}

// Set moves the clock to an absolute instant, backwards included.
func (f *Fake) Set(i Instant) {
	f.Current = i
}

// Advance moves the clock forward by d.
func (f *Fake) Advance(d time.Duration) {
	f.Current = f.Current.Add(d)
}
