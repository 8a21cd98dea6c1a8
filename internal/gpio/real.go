//go:build linux

package gpio

import (
	"fmt"

	"github.com/warthog618/go-gpiocdev"
)

// Chip is an open GPIO chip that hands out lines.
type Chip struct {
	chip  *gpiocdev.Chip
	lines []*gpiocdev.Line
}

// Open opens the named GPIO chip, e.g. "gpiochip0".
func Open(name string) (*Chip, error) {
	chip, err := gpiocdev.NewChip(name)
	if err != nil {
		return nil, fmt.Errorf("open gpio chip %s: %w", name, err)
	}
	return &Chip{chip: chip}, nil
}

// Input requests offset as an input line with the given bias.
func (c *Chip) Input(offset int, bias Bias) (*Input, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsInput}
	switch bias {
	case BiasPullUp:
		opts = append(opts, gpiocdev.WithPullUp)
	case BiasPullDown:
		opts = append(opts, gpiocdev.WithPullDown)
	default:
		opts = append(opts, gpiocdev.WithBiasDisabled)
	}

	line, err := c.chip.RequestLine(offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("request input pin %d: %w", offset, err)
	}
	c.lines = append(c.lines, line)
	return &Input{line: line}, nil
}

// Output requests offset as an output line, initially inactive.
// With activeLow the physical level is inverted so Drive(true) pulls the pin low.
func (c *Chip) Output(offset int, activeLow bool) (*Output, error) {
	opts := []gpiocdev.LineReqOption{gpiocdev.AsOutput(0)}
	if activeLow {
		opts = append(opts, gpiocdev.AsActiveLow)
	}

	line, err := c.chip.RequestLine(offset, opts...)
	if err != nil {
		return nil, fmt.Errorf("request output pin %d: %w", offset, err)
	}
	c.lines = append(c.lines, line)
	return &Output{line: line}, nil
}

// Close releases all requested lines and the chip.
// Lines are reconfigured to input with pull-down (matching Pi boot defaults)
// before closing so an indicator is not left lit across a restart.
func (c *Chip) Close() error {
	var errs []error

	for _, line := range c.lines {
		if err := line.Reconfigure(gpiocdev.AsInput, gpiocdev.WithPullDown); err != nil {
			errs = append(errs, fmt.Errorf("reconfigure pin %d: %w", line.Offset(), err))
		}
		if err := line.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close pin %d: %w", line.Offset(), err))
		}
	}
	c.lines = nil

	if c.chip != nil {
		if err := c.chip.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close chip: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close errors: %v", errs)
	}
	return nil
}

// Input is a requested input line.
type Input struct {
	line *gpiocdev.Line
}

// Sample returns the raw level of the pin (true = high).
func (i *Input) Sample() (bool, error) {
	v, err := i.line.Value()
	if err != nil {
		return false, fmt.Errorf("read pin %d: %w", i.line.Offset(), err)
	}
	return v == 1, nil
}

// Output is a requested output line.
type Output struct {
	line *gpiocdev.Line
}

// Drive sets the logical level of the pin.
func (o *Output) Drive(level bool) error {
	v := 0
	if level {
		v = 1
	}
	if err := o.line.SetValue(v); err != nil {
		return fmt.Errorf("set pin %d: %w", o.line.Offset(), err)
	}
	return nil
}

// DrivenLevel reads back the logical level the pin is driven to.
func (o *Output) DrivenLevel() (bool, error) {
	v, err := o.line.Value()
	if err != nil {
		return false, fmt.Errorf("read back pin %d: %w", o.line.Offset(), err)
	}
	return v == 1, nil
}
