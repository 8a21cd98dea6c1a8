package status

import (
	"encoding/json"
	"time"
)

// StatusJSON is the top-level JSON envelope for status output.
type StatusJSON struct {
	Status StatusInner `json:"status"`
}

// StatusInner contains the status details.
type StatusInner struct {
	Event         string     `json:"event,omitempty"`
	Reason        string     `json:"reason,omitempty"`
	Button        string     `json:"button"`
	Indicator     string     `json:"indicator"`
	Effect        string     `json:"effect,omitempty"`
	Ready         bool       `json:"ready"`
	Faults        int        `json:"faults"`
	LastFault     string     `json:"last_fault,omitempty"`
	UptimeSeconds int64      `json:"uptime_seconds"`
	StartTime     string     `json:"start_time"`
	Timestamp     string     `json:"timestamp"`
	MQTT          MQTTStatus `json:"mqtt"`
	Counts        CountsJSON `json:"event_counts"`
	Config        ConfigJSON `json:"config"`
}

// MQTTStatus reports MQTT connection state.
type MQTTStatus struct {
	Connected bool   `json:"connected"`
	Broker    string `json:"broker"`
}

// CountsJSON is the JSON representation of event counts.
type CountsJSON struct {
	Pressed   int `json:"pressed"`
	Released  int `json:"released"`
	LongPress int `json:"long_press"`
}

// ConfigJSON is the JSON representation of daemon config.
type ConfigJSON struct {
	PollMs      int64  `json:"poll_ms"`
	LongPressMs int64  `json:"long_press_ms"`
	BlinkHz     uint   `json:"blink_hz"`
	HeartbeatMs int64  `json:"heartbeat_ms"`
	Polarity    string `json:"polarity"`
	Broker      string `json:"broker"`
	HTTPAddr    string `json:"http_addr"`
}

// ButtonState returns PRESSED, RELEASED, or UNKNOWN before the first poll.
func (s Snapshot) ButtonState() string {
	if !s.Baselined {
		return "UNKNOWN"
	}
	if s.Pressed {
		return "PRESSED"
	}
	return "RELEASED"
}

// IndicatorState returns EFFECT while an effect runs, otherwise ON or OFF.
func (s Snapshot) IndicatorState() string {
	switch {
	case s.Effect != "":
		return "EFFECT"
	case s.LedOn:
		return "ON"
	default:
		return "OFF"
	}
}

func buildInner(snap Snapshot) StatusInner {
	return StatusInner{
		Button:        snap.ButtonState(),
		Indicator:     snap.IndicatorState(),
		Effect:        snap.Effect,
		Ready:         snap.Baselined,
		Faults:        snap.Faults,
		LastFault:     snap.LastFault,
		UptimeSeconds: int64(snap.Uptime().Truncate(time.Second).Seconds()),
		StartTime:     snap.StartTime.UTC().Format(time.RFC3339),
		Timestamp:     snap.Now.UTC().Format(time.RFC3339),
		MQTT:          MQTTStatus{Connected: snap.MQTTConnected, Broker: snap.Config.Broker},
		Counts: CountsJSON{
			Pressed:   snap.Counts.Pressed,
			Released:  snap.Counts.Released,
			LongPress: snap.Counts.LongPress,
		},
		Config: ConfigJSON{
			PollMs:      snap.Config.PollMs,
			LongPressMs: snap.Config.LongPressMs,
			BlinkHz:     snap.Config.BlinkHz,
			HeartbeatMs: snap.Config.HeartbeatMs,
			Polarity:    snap.Config.Polarity,
			Broker:      snap.Config.Broker,
			HTTPAddr:    snap.Config.HTTPAddr,
		},
	}
}

// FormatJSON returns the JSON status for the web endpoint (no event/reason).
func FormatJSON(snap Snapshot) []byte {
	data, _ := json.MarshalIndent(StatusJSON{Status: buildInner(snap)}, "", "  ")
	return data
}

// FormatStatusEvent returns the JSON status for an MQTT system event.
func FormatStatusEvent(snap Snapshot, event, reason string) []byte {
	inner := buildInner(snap)
	inner.Event = event
	inner.Reason = reason

	data, _ := json.Marshal(StatusJSON{Status: inner})
	return data
}
