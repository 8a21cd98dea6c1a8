// Package status provides a thread-safe status tracker for the pollio daemon.
// The poll loop writes to it and HTTP handlers read from it.
package status

import (
	"sync"
	"time"

	"github.com/sweeney/pollio/internal/logic"
)

// Config contains daemon configuration for display.
type Config struct {
	PollMs      int64
	LongPressMs int64
	BlinkHz     uint
	HeartbeatMs int64
	Polarity    string
	Broker      string
	WSBroker    string
	HTTPAddr    string
}

// Panel is the button/indicator part of a snapshot.
type Panel struct {
	Pressed   bool
	Baselined bool
	LedOn     bool
	Effect    string // empty when no effect is running
	Counts    logic.EventCounts
}

// Snapshot is a point-in-time view of daemon state.
// It is a value type, safe to use after the lock is released.
type Snapshot struct {
	Panel
	Faults        int
	LastFault     string
	StartTime     time.Time
	Now           time.Time
	MQTTConnected bool
	Config        Config
}

// Uptime returns the duration since the daemon started.
func (s Snapshot) Uptime() time.Duration {
	return s.Now.Sub(s.StartTime)
}

// Tracker holds mutable daemon state behind an RWMutex.
type Tracker struct {
	mu   sync.RWMutex
	snap Snapshot
	now  func() time.Time
}

// NewTracker creates a Tracker with the given start time and config.
func NewTracker(startTime time.Time, cfg Config) *Tracker {
	return &Tracker{
		snap: Snapshot{
			StartTime: startTime,
			Config:    cfg,
		},
		now: time.Now,
	}
}

// Update sets the panel state.
// Called from the run loop on every tick.
func (t *Tracker) Update(p Panel) {
	t.mu.Lock()
	t.snap.Panel = p
	t.mu.Unlock()
}

// RecordFault counts a device fault and keeps its message.
func (t *Tracker) RecordFault(err error) {
	t.mu.Lock()
	t.snap.Faults++
	t.snap.LastFault = err.Error()
	t.mu.Unlock()
}

// SetMQTTConnected sets the MQTT connection status.
func (t *Tracker) SetMQTTConnected(connected bool) {
	t.mu.Lock()
	t.snap.MQTTConnected = connected
	t.mu.Unlock()
}

// Snapshot returns a point-in-time copy of the daemon state.
// The Now field is set to the current time at the moment of the call.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.RLock()
	s := t.snap
	t.mu.RUnlock()
	s.Now = t.now()
	return s
}
