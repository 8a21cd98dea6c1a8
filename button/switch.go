// Package button tracks a momentary switch across polls.
//
// A Switch reports press/release edges and how long each state lasted. Like
// the indicator, it only changes inside Poll, so its resolution is the poll
// cadence chosen by the owner. A Switch must be owned by a single goroutine.
package button

import (
	"context"
	"errors"
	"runtime"
	"time"

	"github.com/sweeney/pollio/clock"
	"github.com/sweeney/pollio/hw"
)

// Switch is a momentary input with edge detection and state durations.
type Switch struct {
	line     hw.InputLine
	polarity Polarity

	pressed      bool
	changed      bool
	lastChangeAt clock.Instant
	prevState    time.Duration
}

// New binds a switch to line. The polarity is fixed for the switch lifetime.
// The switch starts released with its last change at clock.Epoch.
func New(line hw.InputLine, polarity Polarity) *Switch {
	return &Switch{line: line, polarity: polarity}
}

// Polarity returns the polarity chosen at construction.
func (s *Switch) Polarity() Polarity {
	return s.polarity
}

// Poll samples the line and records a transition if the logical state changed.
//
// Durations are only computed on a transition. Use CurrentStateDuration to
// ask how long the current state has lasted so far.
// A sampling failure is returned as *hw.InputFault; HasChanged is then false
// and no other state is touched.
func (s *Switch) Poll(now clock.Instant) error {
	level, err := s.line.Sample()
	if err != nil {
		s.changed = false
		var fault *hw.InputFault
		if errors.As(err, &fault) {
			return err
		}
		return &hw.InputFault{Op: "sample", Err: err}
	}

	pressed := s.polarity.Pressed(level)
	if pressed == s.pressed {
		s.changed = false
		return nil
	}

	// An out-of-order timestamp has no meaningful duration; record zero.
	s.prevState, _ = s.CurrentStateDuration(now)
	s.pressed = pressed
	s.lastChangeAt = now
	s.changed = true
	return nil
}

// HasChanged reports whether the most recent Poll saw a transition.
func (s *Switch) HasChanged() bool {
	return s.changed
}

// IsPressed reports the logical pressed state.
func (s *Switch) IsPressed() bool {
	return s.pressed
}

// IsReleased reports the logical released state.
func (s *Switch) IsReleased() bool {
	return !s.pressed
}

// PressedFor returns how long the switch was held during its last press.
//
// It only answers while the switch is released: right after a poll that saw
// the release it is the length of that press. While the switch is pressed it
// reports false. It is not "time since the last press".
func (s *Switch) PressedFor() (time.Duration, bool) {
	if s.pressed {
		return 0, false
	}
	return s.prevState, true
}

// ReleasedFor returns how long the switch sat released before the current
// press. It only answers while the switch is pressed, mirroring PressedFor.
func (s *Switch) ReleasedFor() (time.Duration, bool) {
	if !s.pressed {
		return 0, false
	}
	return s.prevState, true
}

// PrevStateDuration returns the length of the last completed state.
func (s *Switch) PrevStateDuration() time.Duration {
	return s.prevState
}

// LastChangeAt returns the instant of the last transition.
func (s *Switch) LastChangeAt() clock.Instant {
	return s.lastChangeAt
}

// CurrentStateDuration returns how long the switch has been in its current
// state at now. It reports false if now precedes the last transition.
func (s *Switch) CurrentStateDuration(now clock.Instant) (time.Duration, bool) {
	return now.Since(s.lastChangeAt)
}

// Reset returns the switch to released with zeroed timing, without touching
// the line.
func (s *Switch) Reset() {
	s.pressed = false
	s.changed = false
	s.lastChangeAt = clock.Epoch
	s.prevState = 0
}

// Wait polls as fast as possible until a poll reports a transition.
// It never times out: a switch that never changes blocks forever.
func (s *Switch) Wait(src clock.Source) error {
	for {
		if err := s.Poll(src.Now()); err != nil {
			return err
		}
		if s.changed {
			return nil
		}
		runtime.Gosched()
	}
}

// WaitContext polls every interval until a poll reports a transition or ctx
// is done. It returns on the same poll Wait would, at interval granularity.
// A non-positive interval polls as fast as Wait does.
func (s *Switch) WaitContext(ctx context.Context, src clock.Source, every time.Duration) error {
	var tick <-chan time.Time
	if every > 0 {
		ticker := time.NewTicker(every)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		if err := s.Poll(src.Now()); err != nil {
			return err
		}
		if s.changed {
			return nil
		}

		if tick == nil {
			if err := ctx.Err(); err != nil {
				return err
			}
			runtime.Gosched()
			continue
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick:
		}
	}
}
