package logic

import "time"

// Detector converts switch transitions into events.
type Detector struct {
	longPress     time.Duration
	baselined     bool
	pressed       bool
	startTime     time.Time
	eventCounts   EventCounts
	lastHeartbeat time.Time
}

// NewDetector creates a detector that reports releases held for at least
// longPress as LONG_PRESS. A zero longPress disables long presses.
// The startTime is used for calculating uptime in heartbeat events.
func NewDetector(longPress time.Duration, startTime time.Time) *Detector {
	return &Detector{
		longPress:     longPress,
		startTime:     startTime,
		lastHeartbeat: startTime,
	}
}

// Process inspects a switch right after it was polled and returns any events.
// The first call only establishes the baseline: a button already held at
// startup does not produce a press.
func (d *Detector) Process(sw SwitchState, now time.Time) []Event {
	if !d.baselined {
		d.baselined = true
		d.pressed = sw.IsPressed()
		return nil
	}

	if !sw.HasChanged() || sw.IsPressed() == d.pressed {
		return nil
	}
	d.pressed = sw.IsPressed()

	event := Event{Timestamp: now, Pressed: d.pressed}
	if d.pressed {
		event.Type = EventPressed
		event.Idle, _ = sw.ReleasedFor()
		d.eventCounts.Pressed++
		return []Event{event}
	}

	event.Held, _ = sw.PressedFor()
	if d.longPress > 0 && event.Held >= d.longPress {
		event.Type = EventLongPress
		d.eventCounts.LongPress++
	} else {
		event.Type = EventReleased
		d.eventCounts.Released++
	}
	return []Event{event}
}

// IsBaselined returns whether the detector has established a baseline.
func (d *Detector) IsBaselined() bool {
	return d.baselined
}

// CurrentState returns the last pressed state seen by the detector.
func (d *Detector) CurrentState() bool {
	return d.pressed
}

// EventCounts returns a copy of the event counters.
func (d *Detector) EventCounts() EventCounts {
	return d.eventCounts
}

// CheckHeartbeat returns heartbeat data if the interval has elapsed since the
// last heartbeat (or startup). Returns nil if not yet baselined, if the
// interval has not elapsed, or if interval is <= 0 (disabled).
func (d *Detector) CheckHeartbeat(now time.Time, interval time.Duration) *HeartbeatData {
	if interval <= 0 {
		return nil
	}

	if !d.baselined {
		return nil
	}

	if now.Sub(d.lastHeartbeat) < interval {
		return nil
	}

	d.lastHeartbeat = now
	return &HeartbeatData{
		Timestamp: now,
		Uptime:    now.Sub(d.startTime),
		Counts:    d.eventCounts,
	}
}
