// Package hw defines the digital line contracts that devices are built on.
// Real implementations drive or sample a physical GPIO line.
// The fakes in this package allow testing without hardware.
package hw

import "fmt"

// OutputLine is a digital output that can be driven and read back.
type OutputLine interface {
	// Drive sets the physical level of the line (true = high).
	Drive(level bool) error

	// DrivenLevel returns the level the line is currently driven to.
	DrivenLevel() (bool, error)
}

// InputLine is a digital input whose level can be sampled.
type InputLine interface {
	// Sample returns the current raw level of the line (true = high).
	Sample() (bool, error)
}

// OutputFault reports a failure to drive or read back an output line.
type OutputFault struct {
	Op  string // "drive" or "read back"
	Err error
}

func (e *OutputFault) Error() string {
	return fmt.Sprintf("output fault: %s: %v", e.Op, e.Err)
}

func (e *OutputFault) Unwrap() error {
	return e.Err
}

// InputFault reports a failure to sample an input line.
type InputFault struct {
	Op  string
	Err error
}

func (e *InputFault) Error() string {
	return fmt.Sprintf("input fault: %s: %v", e.Op, e.Err)
}

func (e *InputFault) Unwrap() error {
	return e.Err
}
