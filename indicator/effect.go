package indicator

import (
	"errors"
	"fmt"
	"time"

	"github.com/sweeney/pollio/clock"
)

// ErrInvalidFrequency is returned by Blink for rates that do not give a
// period of at least one millisecond.
var ErrInvalidFrequency = errors.New("indicator: blink frequency must be between 1 and 1000 Hz")

// KindType selects how an effect behaves.
type KindType int

const (
	// KindPulse is a single on-phase that does not repeat.
	KindPulse KindType = iota
	// KindBlink toggles the output every period.
	KindBlink
)

func (k KindType) String() string {
	switch k {
	case KindPulse:
		return "PULSE"
	case KindBlink:
		return "BLINK"
	default:
		return fmt.Sprintf("KindType(%d)", int(k))
	}
}

// Kind is an effect type together with its timing parameter.
type Kind struct {
	Type KindType
	// Length is the on-phase of a pulse or the toggle period of a blink.
	Length time.Duration
}

// Pulse returns a single pulse lasting d.
func Pulse(d time.Duration) Kind {
	return Kind{Type: KindPulse, Length: d}
}

// Blink returns a blink at hz toggles per second.
// The period is 1000/hz milliseconds with the remainder truncated, so 3 Hz
// blinks every 333ms rather than 333.3ms.
func Blink(hz uint) (Kind, error) {
	if hz == 0 || hz > 1000 {
		return Kind{}, ErrInvalidFrequency
	}
	return BlinkEvery(time.Duration(1000/hz) * time.Millisecond), nil
}

// BlinkEvery returns a blink that toggles every period.
func BlinkEvery(period time.Duration) Kind {
	return Kind{Type: KindBlink, Length: period}
}

func (k Kind) String() string {
	return fmt.Sprintf("%s(%s)", k.Type, k.Length)
}

// Effect is a visual effect together with the timing checkpoints an
// Indicator keeps while running it. Create one with NewEffect and hand it to
// Indicator.SetEffect; after that only the indicator's Poll mutates it.
type Effect struct {
	kind Kind

	total    time.Duration
	hasTotal bool

	started        bool
	startedAt      clock.Instant
	cycleStartedAt clock.Instant
}

// NewEffect creates an effect with no lifetime limit.
func NewEffect(kind Kind) Effect {
	return Effect{kind: kind}
}

// Kind returns the effect type.
func (e *Effect) Kind() Kind {
	return e.kind
}

// SetTotalDuration bounds the whole lifetime of the effect, whatever its kind.
func (e *Effect) SetTotalDuration(d time.Duration) {
	e.total = d
	e.hasTotal = true
}

// TotalDuration returns the lifetime limit, if one is set.
func (e *Effect) TotalDuration() (time.Duration, bool) {
	return e.total, e.hasTotal
}

// HasStarted reports whether a poll has processed the effect yet.
func (e *Effect) HasStarted() bool {
	return e.started
}

// StartedAt returns the instant of the first poll that processed the effect.
func (e *Effect) StartedAt() (clock.Instant, bool) {
	return e.startedAt, e.started
}

// TimeElapsed returns the time since the effect started.
// It reports false before the first poll or if now precedes the start.
func (e *Effect) TimeElapsed(now clock.Instant) (time.Duration, bool) {
	if !e.started {
		return 0, false
	}
	return now.Since(e.startedAt)
}

// CycleElapsed returns the time since the current cycle started, with the
// same absent cases as TimeElapsed.
func (e *Effect) CycleElapsed(now clock.Instant) (time.Duration, bool) {
	if !e.started {
		return 0, false
	}
	return now.Since(e.cycleStartedAt)
}

// StartNewCycle restarts cycle timing at now.
func (e *Effect) StartNewCycle(now clock.Instant) {
	e.cycleStartedAt = now
}

func (e *Effect) start(now clock.Instant) {
	e.started = true
	e.startedAt = now
	e.cycleStartedAt = now
}
