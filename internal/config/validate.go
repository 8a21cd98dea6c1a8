package config

import (
	"fmt"

	"github.com/sweeney/pollio/button"
	"github.com/sweeney/pollio/indicator"
	"github.com/sweeney/pollio/internal/gpio"
)

// Validate checks configuration correctness.
// It performs declarative validation only.
// It MUST NOT mutate configuration.
func Validate(cfg *Config) error {
	if cfg.Chip == "" {
		return fmt.Errorf("chip must be set")
	}
	if cfg.Poll <= 0 {
		return fmt.Errorf("poll must be positive, got %s", cfg.Poll)
	}
	if cfg.Heartbeat < 0 {
		return fmt.Errorf("heartbeat must not be negative, got %s", cfg.Heartbeat)
	}

	// ------------------------------------------------------------
	// PINS
	// ------------------------------------------------------------

	if cfg.Button.Pin == nil {
		return fmt.Errorf("button.pin must be set")
	}
	if cfg.Indicator.Pin == nil {
		return fmt.Errorf("indicator.pin must be set")
	}
	if *cfg.Button.Pin < 0 || *cfg.Indicator.Pin < 0 {
		return fmt.Errorf("pins must not be negative")
	}
	if *cfg.Button.Pin == *cfg.Indicator.Pin {
		return fmt.Errorf("button.pin and indicator.pin both use pin %d", *cfg.Button.Pin)
	}
	if _, err := button.ParsePolarity(cfg.Button.Polarity); err != nil {
		return fmt.Errorf("button.polarity: %w", err)
	}
	if _, err := gpio.ParseBias(cfg.Button.Bias); err != nil {
		return fmt.Errorf("button.bias: %w", err)
	}

	// ------------------------------------------------------------
	// EFFECTS
	// ------------------------------------------------------------

	if _, err := indicator.Blink(cfg.Effects.BlinkHz); err != nil {
		return fmt.Errorf("effects.blink_hz: %w", err)
	}
	if cfg.Effects.Pulse < 0 || cfg.Effects.BlinkFor < 0 || cfg.Effects.LongPress < 0 {
		return fmt.Errorf("effects durations must not be negative")
	}
	if cfg.Effects.Pulse > 0 && cfg.Effects.Pulse < cfg.Poll {
		return fmt.Errorf("effects.pulse (%s) is shorter than poll (%s)", cfg.Effects.Pulse, cfg.Poll)
	}

	if cfg.MQTT.Broker != "" && cfg.MQTT.ClientID == "" {
		return fmt.Errorf("mqtt.client_id must be set when mqtt.broker is set")
	}

	return nil
}
