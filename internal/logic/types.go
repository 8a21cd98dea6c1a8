// Package logic turns polled switch state into discrete button events.
// This package has NO hardware or network dependencies.
// Wall time is always injectable via time.Time parameters.
package logic

import "time"

// EventType represents a button transition event.
type EventType string

const (
	EventPressed   EventType = "PRESSED"
	EventReleased  EventType = "RELEASED"
	EventLongPress EventType = "LONG_PRESS"
)

// Event represents a button transition to be published.
type Event struct {
	Timestamp time.Time
	Type      EventType
	// Pressed is the logical state after the transition.
	Pressed bool
	// Held is how long the button was pressed (release events only).
	Held time.Duration
	// Idle is how long the button was released before this press (press events only).
	Idle time.Duration
}

// SwitchState is the read side of a polled switch.
type SwitchState interface {
	HasChanged() bool
	IsPressed() bool
	PressedFor() (time.Duration, bool)
	ReleasedFor() (time.Duration, bool)
}

// EventCounts tracks the number of each event type since startup.
type EventCounts struct {
	Pressed   int
	Released  int
	LongPress int
}

// HeartbeatData contains information for a heartbeat event.
type HeartbeatData struct {
	Timestamp time.Time
	Uptime    time.Duration
	Counts    EventCounts
}
