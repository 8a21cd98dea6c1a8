// Package indicator drives an on/off output line with optional timed effects.
//
// An Indicator does nothing on its own: the owner calls Poll with the current
// instant, at whatever cadence it likes, and the indicator advances its effect
// and drives the line. Effect timing can only be as fine as the poll cadence.
// An Indicator must be owned by a single goroutine.
package indicator

import (
	"errors"
	"time"

	"github.com/sweeney/pollio/clock"
	"github.com/sweeney/pollio/hw"
)

// Indicator is an output line with a manual on/off level and an optional effect.
// While an effect is installed it alone decides the driven level.
type Indicator struct {
	line   hw.OutputLine
	on     bool
	effect *Effect
}

// New binds an indicator to line. It starts logically off with no effect.
func New(line hw.OutputLine) *Indicator {
	return &Indicator{line: line}
}

// IsOn reports the manual on/off level used when no effect is installed.
func (i *Indicator) IsOn() bool {
	return i.on
}

// SetOn turns the indicator on at the next poll, unless an effect is active.
func (i *Indicator) SetOn() {
	i.on = true
}

// SetOff turns the indicator off at the next poll, unless an effect is active.
func (i *Indicator) SetOff() {
	i.on = false
}

// Toggle flips the manual level.
func (i *Indicator) Toggle() {
	i.on = !i.on
}

// SetEffect installs e, discarding any effect already in place.
// The new effect takes over the line at the next poll.
func (i *Indicator) SetEffect(e Effect) {
	i.effect = &e
}

// ExtendCurrentEffect replaces the lifetime limit of the installed effect.
// d is measured from the effect start, not from now. Does nothing when no
// effect is installed.
func (i *Indicator) ExtendCurrentEffect(d time.Duration) {
	if i.effect != nil {
		i.effect.SetTotalDuration(d)
	}
}

// Effect returns a copy of the installed effect.
func (i *Indicator) Effect() (Effect, bool) {
	if i.effect == nil {
		return Effect{}, false
	}
	return *i.effect, true
}

// ClearEffect removes the installed effect and switches the indicator off.
// The manual level from before the effect is not restored.
func (i *Indicator) ClearEffect() {
	i.effect = nil
	i.on = false
}

// Poll advances the effect state machine to now and drives the line.
// Line failures are returned as *hw.OutputFault.
func (i *Indicator) Poll(now clock.Instant) error {
	fx := i.effect
	if fx == nil {
		return i.drive(i.on)
	}

	if total, ok := fx.TotalDuration(); ok {
		if elapsed, ok := fx.TimeElapsed(now); ok && elapsed > total {
			i.ClearEffect()
			return i.drive(false)
		}
	}

	switch fx.kind.Type {
	case KindPulse:
		if !fx.HasStarted() {
			if err := i.drive(true); err != nil {
				return err
			}
			fx.start(now)
			return nil
		}
		if elapsed, ok := fx.CycleElapsed(now); ok && elapsed > fx.kind.Length {
			i.ClearEffect()
			return i.drive(false)
		}

	case KindBlink:
		// The first poll only sets the timing baseline; the line keeps its
		// current level until the first period has gone by.
		if !fx.HasStarted() {
			fx.start(now)
			return nil
		}
		if elapsed, ok := fx.CycleElapsed(now); ok && elapsed >= fx.kind.Length {
			level, err := i.line.DrivenLevel()
			if err != nil {
				return wrapOutput("read back", err)
			}
			if err := i.drive(!level); err != nil {
				return err
			}
			fx.StartNewCycle(now)
		}
	}

	return nil
}

func (i *Indicator) drive(level bool) error {
	if err := i.line.Drive(level); err != nil {
		return wrapOutput("drive", err)
	}
	return nil
}

func wrapOutput(op string, err error) error {
	var fault *hw.OutputFault
	if errors.As(err, &fault) {
		return err
	}
	return &hw.OutputFault{Op: op, Err: err}
}
