package mqtt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/sweeney/pollio/internal/logic"
)

func TestFormatPayload(t *testing.T) {
	event := logic.Event{
		Timestamp: time.Date(2026, 2, 2, 22, 18, 12, 0, time.UTC),
		Type:      logic.EventReleased,
		Pressed:   false,
		Held:      240 * time.Millisecond,
	}

	payload, err := FormatPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"button":{"timestamp":"2026-02-02T22:18:12Z","event":"RELEASED","pressed":false,"held_ms":240}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatPayloadAllEventTypes(t *testing.T) {
	tests := []struct {
		event       logic.Event
		wantEvent   string
		wantPressed bool
		wantHeld    int64
		wantIdle    int64
	}{
		{logic.Event{Type: logic.EventPressed, Pressed: true, Idle: 5 * time.Second}, "PRESSED", true, 0, 5000},
		{logic.Event{Type: logic.EventReleased, Held: 120 * time.Millisecond}, "RELEASED", false, 120, 0},
		{logic.Event{Type: logic.EventLongPress, Held: 2 * time.Second}, "LONG_PRESS", false, 2000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.wantEvent, func(t *testing.T) {
			tt.event.Timestamp = time.Now()
			payload, err := FormatPayload(tt.event)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			var parsed Payload
			if err := json.Unmarshal(payload, &parsed); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}

			if parsed.Button.Event != tt.wantEvent {
				t.Errorf("event: got %s, want %s", parsed.Button.Event, tt.wantEvent)
			}
			if parsed.Button.Pressed != tt.wantPressed {
				t.Errorf("pressed: got %v, want %v", parsed.Button.Pressed, tt.wantPressed)
			}
			if parsed.Button.HeldMs != tt.wantHeld {
				t.Errorf("held_ms: got %d, want %d", parsed.Button.HeldMs, tt.wantHeld)
			}
			if parsed.Button.IdleMs != tt.wantIdle {
				t.Errorf("idle_ms: got %d, want %d", parsed.Button.IdleMs, tt.wantIdle)
			}
		})
	}
}

func TestFormatPayloadTimezoneConversion(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	event := logic.Event{
		Timestamp: time.Date(2026, 2, 2, 23, 0, 0, 500000000, loc),
		Type:      logic.EventPressed,
		Pressed:   true,
	}

	payload, _ := FormatPayload(event)
	var parsed Payload
	json.Unmarshal(payload, &parsed)

	if parsed.Button.Timestamp != "2026-02-02T22:00:00.5Z" {
		t.Errorf("expected UTC timestamp, got %s", parsed.Button.Timestamp)
	}
}

func TestTopic(t *testing.T) {
	if Topic != "pollio/button/events" {
		t.Errorf("unexpected topic: %s", Topic)
	}
	if TopicSystem != "pollio/system" {
		t.Errorf("unexpected system topic: %s", TopicSystem)
	}
}

func TestFormatSystemPayloadExactJSON(t *testing.T) {
	event := SystemEvent{
		Timestamp: time.Date(2026, 2, 3, 10, 0, 0, 0, time.UTC),
		Event:     "SHUTDOWN",
		Reason:    "SIGTERM",
	}

	payload, err := FormatSystemPayload(event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := `{"system":{"timestamp":"2026-02-03T10:00:00Z","event":"SHUTDOWN","reason":"SIGTERM"}}`
	if string(payload) != want {
		t.Errorf("payload:\n got %s\nwant %s", payload, want)
	}
}

func TestFormatSystemPayloadOmitsEmptyReason(t *testing.T) {
	payload, _ := FormatSystemPayload(SystemEvent{Timestamp: time.Now(), Event: "RECONNECTED"})

	var raw map[string]map[string]any
	if err := json.Unmarshal(payload, &raw); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if _, ok := raw["system"]["reason"]; ok {
		t.Error("reason should be omitted when empty")
	}
}

func TestFormatSystemPayloadRawPassthrough(t *testing.T) {
	raw := []byte(`{"status":{"event":"STARTUP"}}`)
	payload, err := FormatSystemPayload(SystemEvent{Event: "STARTUP", RawPayload: raw})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(payload) != string(raw) {
		t.Errorf("expected raw payload passthrough, got %s", payload)
	}
}

func TestFakePublisher(t *testing.T) {
	f := NewFakePublisher()

	event := logic.Event{Timestamp: time.Now(), Type: logic.EventPressed, Pressed: true}
	if err := f.Publish(event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(f.Events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(f.Events))
	}
	if f.Events[0].Type != logic.EventPressed {
		t.Errorf("unexpected event type: %s", f.Events[0].Type)
	}
	if len(f.Payloads) != 1 {
		t.Errorf("expected 1 payload, got %d", len(f.Payloads))
	}
}

func TestFakePublisherError(t *testing.T) {
	f := NewFakePublisher()
	f.PublishError = errors.New("simulated error")

	if err := f.Publish(logic.Event{}); err == nil {
		t.Error("expected error")
	}
	if len(f.Events) != 0 {
		t.Error("failed publish should not record event")
	}
}

func TestFakePublisherPublishSystem(t *testing.T) {
	f := NewFakePublisher()

	event := SystemEvent{Timestamp: time.Now(), Event: "HEARTBEAT", Retained: true}
	if err := f.PublishSystem(event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(f.SystemEvents) != 1 || !f.SystemEvents[0].Retained {
		t.Errorf("expected retained system event, got %+v", f.SystemEvents)
	}

	f.PublishSystemError = errors.New("simulated error")
	if err := f.PublishSystem(event); err == nil {
		t.Error("expected error")
	}
}

func TestFakePublisherReset(t *testing.T) {
	f := NewFakePublisher()
	f.Publish(logic.Event{Type: logic.EventPressed})
	f.PublishSystem(SystemEvent{Event: "STARTUP"})
	f.Close()
	f.Connected = true

	f.Reset()

	if len(f.Events) != 0 || len(f.Payloads) != 0 || len(f.SystemEvents) != 0 || len(f.SystemPayloads) != 0 {
		t.Error("expected recorded data to be cleared")
	}
	if f.Closed || f.Connected {
		t.Error("expected flags to be cleared")
	}
}

func TestNopPublisher(t *testing.T) {
	var p Publisher = NopPublisher{}
	if err := p.Publish(logic.Event{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := p.PublishSystem(SystemEvent{}); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if (NopPublisher{}).IsConnected() {
		t.Error("nop publisher is never connected")
	}
}
