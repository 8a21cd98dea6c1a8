// Package config loads the daemon configuration file.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Chip      string        `yaml:"chip"`
	Poll      time.Duration `yaml:"poll"`
	Heartbeat time.Duration `yaml:"heartbeat"`
	HTTP      string        `yaml:"http"`
	LogLevel  string        `yaml:"log_level"`

	Button    ButtonConfig    `yaml:"button"`
	Indicator IndicatorConfig `yaml:"indicator"`
	Effects   EffectsConfig   `yaml:"effects"`
	MQTT      MQTTConfig      `yaml:"mqtt"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// ---- DEVICES ----

type ButtonConfig struct {
	Pin      *int   `yaml:"pin"`
	Polarity string `yaml:"polarity"` // pressed-on-high | pressed-on-low
	Bias     string `yaml:"bias"`     // none | pull-up | pull-down
}

type IndicatorConfig struct {
	Pin       *int `yaml:"pin"`
	ActiveLow bool `yaml:"active_low"`
}

// ---- EFFECTS ----

type EffectsConfig struct {
	Pulse     time.Duration `yaml:"pulse"`
	BlinkHz   uint          `yaml:"blink_hz"`
	BlinkFor  time.Duration `yaml:"blink_for"`
	LongPress time.Duration `yaml:"long_press"`
}

// ---- OUTPUTS ----

type MQTTConfig struct {
	Broker   string `yaml:"broker"` // empty disables publishing
	ClientID string `yaml:"client_id"`
	WSBroker string `yaml:"ws_broker"` // websocket URL the status page subscribes to
}

type MetricsConfig struct {
	StatsdAddr string   `yaml:"statsd_addr"` // empty disables metrics
	Namespace  string   `yaml:"namespace"`
	Tags       []string `yaml:"tags"`
}

// Default returns the configuration used for any field the file omits.
func Default() Config {
	return Config{
		Chip:      "gpiochip0",
		Poll:      10 * time.Millisecond,
		Heartbeat: 15 * time.Minute,
		HTTP:      ":8080",
		LogLevel:  "info",
		Button: ButtonConfig{
			Polarity: "pressed-on-low",
			Bias:     "pull-up",
		},
		Effects: EffectsConfig{
			Pulse:     150 * time.Millisecond,
			BlinkHz:   4,
			BlinkFor:  10 * time.Second,
			LongPress: 800 * time.Millisecond,
		},
		MQTT: MQTTConfig{
			ClientID: "pollio",
		},
		Metrics: MetricsConfig{
			Namespace: "pollio.",
		},
	}
}

// Load reads path on top of Default and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of Default and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
