// Package panel ties one button and one indicator together into a small
// control surface: the button drives the indicator through press gestures.
package panel

import (
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sweeney/pollio/button"
	"github.com/sweeney/pollio/clock"
	"github.com/sweeney/pollio/indicator"
	"github.com/sweeney/pollio/internal/logic"
)

// Config holds the effect timings used by the panel.
type Config struct {
	// Pulse is the length of the heartbeat pulse.
	Pulse time.Duration
	// Blink is the blink effect started by a long press.
	Blink indicator.Kind
	// BlinkFor bounds a blink started by a long press. Zero blinks until
	// cleared. A short press while blinking pushes the end out by BlinkFor.
	BlinkFor time.Duration
	// LongPress is the hold time that turns a release into a long press.
	LongPress time.Duration
}

// State is a point-in-time view of the panel for status reporting.
type State struct {
	Pressed   bool
	Baselined bool
	LedOn     bool
	Effect    string
	Counts    logic.EventCounts
}

// Panel owns a switch, an indicator and the detector between them.
// Like its devices it must be driven from a single goroutine.
type Panel struct {
	cfg      Config
	sw       *button.Switch
	led      *indicator.Indicator
	detector *logic.Detector
}

// New creates a panel. startTime is the wall time used for event timestamps
// and heartbeat uptime.
func New(sw *button.Switch, led *indicator.Indicator, cfg Config, startTime time.Time) *Panel {
	return &Panel{
		cfg:      cfg,
		sw:       sw,
		led:      led,
		detector: logic.NewDetector(cfg.LongPress, startTime),
	}
}

// Tick polls the button, applies any gesture to the indicator and then polls
// the indicator, so a gesture is visible on the same tick.
// Errors from either device are joined; the indicator is still polled when
// the button faulted.
func (p *Panel) Tick(now clock.Instant, wall time.Time) ([]logic.Event, error) {
	var events []logic.Event

	swErr := p.sw.Poll(now)
	if swErr == nil {
		events = p.detector.Process(p.sw, wall)
		for _, e := range events {
			p.apply(e, now)
		}
	}

	ledErr := p.led.Poll(now)
	return events, errors.Join(swErr, ledErr)
}

func (p *Panel) apply(e logic.Event, now clock.Instant) {
	fx, active := p.led.Effect()
	blinking := active && fx.Kind().Type == indicator.KindBlink

	switch e.Type {
	case logic.EventReleased:
		if blinking {
			if p.cfg.BlinkFor > 0 {
				elapsed, _ := fx.TimeElapsed(now)
				p.led.ExtendCurrentEffect(elapsed + p.cfg.BlinkFor)
				log.Debug().Dur("until", elapsed+p.cfg.BlinkFor).Msg("blink extended")
			}
			return
		}
		if active {
			// Only the heartbeat pulse gets here; it yields to the user.
			p.led.ClearEffect()
			log.Debug().Msg("heartbeat pulse cut short")
		}
		p.led.Toggle()
		log.Debug().Bool("on", p.led.IsOn()).Msg("indicator toggled")

	case logic.EventLongPress:
		if blinking {
			p.led.ClearEffect()
			log.Debug().Msg("blink cleared")
			return
		}
		blink := indicator.NewEffect(p.cfg.Blink)
		if p.cfg.BlinkFor > 0 {
			blink.SetTotalDuration(p.cfg.BlinkFor)
		}
		p.led.SetEffect(blink)
		log.Debug().Stringer("effect", p.cfg.Blink).Msg("blink started")
	}
}

// Heartbeat checks the heartbeat interval and, when one is due, flashes a
// pulse on an idle indicator. An indicator that is on or running an effect is
// left alone.
func (p *Panel) Heartbeat(wall time.Time, interval time.Duration) *logic.HeartbeatData {
	hb := p.detector.CheckHeartbeat(wall, interval)
	if hb == nil {
		return nil
	}
	if _, active := p.led.Effect(); !active && !p.led.IsOn() && p.cfg.Pulse > 0 {
		p.led.SetEffect(indicator.NewEffect(indicator.Pulse(p.cfg.Pulse)))
	}
	return hb
}

// State returns the current panel state.
func (p *Panel) State() State {
	s := State{
		Pressed:   p.sw.IsPressed(),
		Baselined: p.detector.IsBaselined(),
		LedOn:     p.led.IsOn(),
		Counts:    p.detector.EventCounts(),
	}
	if fx, ok := p.led.Effect(); ok {
		s.Effect = fx.Kind().String()
	}
	return s
}
