//go:build !linux

package gpio

import "errors"

var errUnsupported = errors.New("gpio: not supported on this platform (requires Linux)")

// Chip is not available on non-Linux platforms.
type Chip struct{}

// Open returns an error on non-Linux platforms.
func Open(name string) (*Chip, error) {
	return nil, errUnsupported
}

// Input is not implemented on non-Linux platforms.
func (c *Chip) Input(offset int, bias Bias) (*Input, error) {
	return nil, errUnsupported
}

// Output is not implemented on non-Linux platforms.
func (c *Chip) Output(offset int, activeLow bool) (*Output, error) {
	return nil, errUnsupported
}

// Close is not implemented on non-Linux platforms.
func (c *Chip) Close() error {
	return nil
}

// Input is not available on non-Linux platforms.
type Input struct{}

// Sample is not implemented on non-Linux platforms.
func (i *Input) Sample() (bool, error) {
	return false, errUnsupported
}

// Output is not available on non-Linux platforms.
type Output struct{}

// Drive is not implemented on non-Linux platforms.
func (o *Output) Drive(level bool) error {
	return errUnsupported
}

// DrivenLevel is not implemented on non-Linux platforms.
func (o *Output) DrivenLevel() (bool, error) {
	return false, errUnsupported
}
