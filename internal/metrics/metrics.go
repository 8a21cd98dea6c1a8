// Package metrics emits panel metrics to a DogStatsD agent.
package metrics

import (
	"github.com/DataDog/datadog-go/statsd"
	"github.com/rs/zerolog/log"

	"github.com/sweeney/pollio/internal/logic"
)

// Recorder receives panel measurements.
type Recorder interface {
	Event(e logic.Event)
	Levels(pressed, manualOn, effect bool)
	Fault(device string)
	Close() error
}

// Statsd sends metrics over UDP to a DogStatsD agent.
type Statsd struct {
	client *statsd.Client
}

// New creates a Statsd recorder. An empty addr returns a Nop recorder.
func New(addr, namespace string, tags []string) (Recorder, error) {
	if addr == "" {
		return Nop{}, nil
	}

	client, err := statsd.New(addr)
	if err != nil {
		return nil, err
	}
	client.Namespace = namespace
	client.Tags = tags

	log.Info().
		Str("addr", addr).
		Str("namespace", namespace).
		Strs("tags", tags).
		Msg("statsd metrics initialized")

	return &Statsd{client: client}, nil
}

// Event counts a button event and records how long the previous state lasted.
func (s *Statsd) Event(e logic.Event) {
	tags := []string{"event:" + string(e.Type)}
	s.warn("button.events", s.client.Incr("button.events", tags, 1))
	if e.Held > 0 {
		s.warn("button.held", s.client.Timing("button.held", e.Held, tags, 1))
	}
}

// Levels records the button state, the manual indicator level and whether
// an effect currently owns the indicator.
func (s *Statsd) Levels(pressed, manualOn, effect bool) {
	s.warn("button.pressed", s.client.Gauge("button.pressed", boolGauge(pressed), nil, 1))
	s.warn("indicator.manual_on", s.client.Gauge("indicator.manual_on", boolGauge(manualOn), nil, 1))
	s.warn("indicator.effect", s.client.Gauge("indicator.effect", boolGauge(effect), nil, 1))
}

// Fault counts a device fault.
func (s *Statsd) Fault(device string) {
	s.warn("faults", s.client.Incr("faults", []string{"device:" + device}, 1))
}

func (s *Statsd) warn(metric string, err error) {
	if err != nil {
		log.Warn().Err(err).Str("metric", metric).Msg("failed to emit metric")
	}
}

// Close flushes and closes the client.
func (s *Statsd) Close() error {
	return s.client.Close()
}

func boolGauge(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Nop discards all metrics.
type Nop struct{}

func (Nop) Event(logic.Event)       {}
func (Nop) Levels(bool, bool, bool) {}
func (Nop) Fault(string)            {}
func (Nop) Close() error            { return nil }
