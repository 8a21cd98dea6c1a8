package hw

import "errors"

// FakeInput is a test double that returns scripted levels.
type FakeInput struct {
	// Levels contains scripted raw levels to return.
	// Each call to Sample() consumes the next level.
	Levels []bool

	// index tracks current position in Levels
	index int

	// SampleError, if set, will be returned by Sample()
	SampleError error
}

// NewFakeInput creates a FakeInput with the given levels.
func NewFakeInput(levels ...bool) *FakeInput {
	return &FakeInput{Levels: levels}
}

// Sample returns the next scripted level.
// If levels are exhausted, returns the last level repeatedly.
func (f *FakeInput) Sample() (bool, error) {
	if f.SampleError != nil {
		return false, f.SampleError
	}

	if len(f.Levels) == 0 {
		return false, errors.New("no levels configured")
	}

	level := f.Levels[f.index]
	if f.index < len(f.Levels)-1 {
		f.index++
	}

	return level, nil
}

// Set replaces the script with a single level that repeats forever.
func (f *FakeInput) Set(level bool) {
	f.Levels = []bool{level}
	f.index = 0
}

// Reset rewinds to the beginning of the script.
func (f *FakeInput) Reset() {
	f.index = 0
}

// FakeOutput is a test double that records every driven level.
type FakeOutput struct {
	// Level is the currently driven level.
	Level bool

	// History contains every level passed to Drive, in order.
	History []bool

	// DriveError, if set, will be returned by Drive() and the level is kept.
	DriveError error

	// ReadError, if set, will be returned by DrivenLevel().
	ReadError error
}

// NewFakeOutput creates a FakeOutput initially driven to level.
func NewFakeOutput(level bool) *FakeOutput {
	return &FakeOutput{Level: level}
}

// Drive records the level.
func (f *FakeOutput) Drive(level bool) error {
	if f.DriveError != nil {
		return f.DriveError
	}
	f.Level = level
	f.History = append(f.History, level)
	return nil
}

// DrivenLevel returns the last driven level.
func (f *FakeOutput) DrivenLevel() (bool, error) {
	if f.ReadError != nil {
		return false, f.ReadError
	}
	return f.Level, nil
}

// Toggles counts level changes across History, starting from initial.
func (f *FakeOutput) Toggles(initial bool) int {
	n := 0
	prev := initial
	for _, l := range f.History {
		if l != prev {
			n++
		}
		prev = l
	}
	return n
}
