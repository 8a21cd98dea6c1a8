// Command pollio watches a push button on a GPIO line, drives an indicator
// from its gestures and publishes button events to MQTT.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/sweeney/pollio/button"
	"github.com/sweeney/pollio/clock"
	"github.com/sweeney/pollio/hw"
	"github.com/sweeney/pollio/indicator"
	"github.com/sweeney/pollio/internal/config"
	"github.com/sweeney/pollio/internal/gpio"
	"github.com/sweeney/pollio/internal/logging"
	"github.com/sweeney/pollio/internal/metrics"
	"github.com/sweeney/pollio/internal/mqtt"
	"github.com/sweeney/pollio/internal/panel"
	"github.com/sweeney/pollio/internal/status"
	"github.com/sweeney/pollio/internal/web"
)

func main() {
	configPath := flag.String("config", "/etc/pollio/config.yaml", "Path to YAML config file")
	logLevel := flag.String("log-level", "", "Log level override (debug, info, warn, error)")
	printState := flag.Bool("print-state", false, "Print current button and indicator state and exit")

	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.InitDefault(logging.ParseLevel(*logLevel))
		log.Fatal().Err(err).Str("path", *configPath).Msg("failed to load config")
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	logging.InitDefault(logging.ParseLevel(cfg.LogLevel))

	if err := run(cfg, *printState); err != nil {
		log.Fatal().Err(err).Msg("fatal")
	}
}

func run(cfg *config.Config, printState bool) error {
	polarity, err := button.ParsePolarity(cfg.Button.Polarity)
	if err != nil {
		return err
	}
	bias, err := gpio.ParseBias(cfg.Button.Bias)
	if err != nil {
		return err
	}
	blink, err := indicator.Blink(cfg.Effects.BlinkHz)
	if err != nil {
		return err
	}

	// Initialize GPIO
	chip, err := gpio.Open(cfg.Chip)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	defer chip.Close()

	input, err := chip.Input(*cfg.Button.Pin, bias)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}
	output, err := chip.Output(*cfg.Indicator.Pin, cfg.Indicator.ActiveLow)
	if err != nil {
		return fmt.Errorf("init gpio: %w", err)
	}

	// Print state mode
	if printState {
		return printCurrentState(input, output, polarity)
	}

	mono := clock.NewSystem()
	startTime := time.Now()

	sw := button.New(input, polarity)
	led := indicator.New(output)
	p := panel.New(sw, led, panel.Config{
		Pulse:     cfg.Effects.Pulse,
		Blink:     blink,
		BlinkFor:  cfg.Effects.BlinkFor,
		LongPress: cfg.Effects.LongPress,
	}, startTime)

	// Initialize MQTT
	var publisher interface {
		mqtt.Publisher
		mqtt.ConnectionStatus
	} = mqtt.NopPublisher{}
	if cfg.MQTT.Broker != "" {
		rp, err := mqtt.NewRealPublisher(cfg.MQTT.Broker, cfg.MQTT.ClientID)
		if err != nil {
			return fmt.Errorf("init mqtt: %w", err)
		}
		publisher = rp
	} else {
		log.Warn().Msg("no mqtt broker configured, events will not be published")
	}
	defer publisher.Close()

	recorder, err := metrics.New(cfg.Metrics.StatsdAddr, cfg.Metrics.Namespace, cfg.Metrics.Tags)
	if err != nil {
		return fmt.Errorf("init metrics: %w", err)
	}
	defer recorder.Close()

	// Initialize status tracker (before STARTUP so snapshot is available)
	tracker := status.NewTracker(startTime, status.Config{
		PollMs:      cfg.Poll.Milliseconds(),
		LongPressMs: cfg.Effects.LongPress.Milliseconds(),
		BlinkHz:     cfg.Effects.BlinkHz,
		HeartbeatMs: cfg.Heartbeat.Milliseconds(),
		Polarity:    polarity.String(),
		Broker:      cfg.MQTT.Broker,
		WSBroker:    resolveWSBroker(cfg.MQTT.WSBroker, cfg.MQTT.Broker),
		HTTPAddr:    cfg.HTTP,
	})

	// Publish startup event with full status snapshot
	tracker.SetMQTTConnected(publisher.IsConnected())
	snap := tracker.Snapshot()
	startupEvent := mqtt.SystemEvent{
		Timestamp:  snap.Now,
		Event:      "STARTUP",
		Retained:   true,
		RawPayload: status.FormatStatusEvent(snap, "STARTUP", ""),
	}
	if err := publisher.PublishSystem(startupEvent); err != nil {
		log.Error().Err(err).Msg("failed to publish startup event")
	} else {
		log.Info().Msg("published startup event")
	}

	// Start HTTP status server
	if cfg.HTTP != "" {
		srv := web.New(cfg.HTTP, tracker)
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				log.Error().Err(err).Msg("http server error")
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Info().Str("addr", cfg.HTTP).Msg("http status server listening")
	}

	log.Info().
		Dur("poll", cfg.Poll).
		Dur("long_press", cfg.Effects.LongPress).
		Stringer("blink", blink).
		Str("polarity", polarity.String()).
		Int("button_pin", *cfg.Button.Pin).
		Int("indicator_pin", *cfg.Indicator.Pin).
		Dur("heartbeat", cfg.Heartbeat).
		Msg("started")

	ticker := time.NewTicker(cfg.Poll)
	defer ticker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	return runLoop(loopDeps{
		panel:      p,
		publisher:  publisher,
		mqttStatus: publisher,
		tracker:    tracker,
		metrics:    recorder,
		heartbeat:  cfg.Heartbeat,
		mono:       mono,
		now:        time.Now,
	}, ticker.C, sigCh)
}

// loopDeps is everything the poll loop touches.
// tracker, mqttStatus and metrics may be nil.
type loopDeps struct {
	panel      *panel.Panel
	publisher  mqtt.Publisher
	mqttStatus mqtt.ConnectionStatus
	tracker    *status.Tracker
	metrics    metrics.Recorder
	heartbeat  time.Duration
	mono       clock.Source
	now        func() time.Time
}

func runLoop(d loopDeps, tick <-chan time.Time, sig <-chan os.Signal) error {
	if d.metrics == nil {
		d.metrics = metrics.Nop{}
	}

	for {
		select {
		case s := <-sig:
			log.Info().Stringer("signal", s).Msg("shutting down")
			signalName := "UNKNOWN"
			if s == syscall.SIGINT {
				signalName = "SIGINT"
			} else if s == syscall.SIGTERM {
				signalName = "SIGTERM"
			}
			event := mqtt.SystemEvent{
				Timestamp: d.now(),
				Event:     "SHUTDOWN",
				Reason:    signalName,
				Retained:  true,
			}
			if d.tracker != nil {
				d.refreshTracker()
				snap := d.tracker.Snapshot()
				event.RawPayload = status.FormatStatusEvent(snap, "SHUTDOWN", signalName)
			}
			if err := d.publisher.PublishSystem(event); err != nil {
				log.Error().Err(err).Msg("failed to publish shutdown event")
			} else {
				log.Info().Msg("published shutdown event")
			}
			return nil

		case <-tick:
			wall := d.now()
			events, err := d.panel.Tick(d.mono.Now(), wall)
			if err != nil {
				d.reportFault(err)
			}

			for _, event := range events {
				log.Info().
					Str("event", string(event.Type)).
					Dur("held", event.Held).
					Dur("idle", event.Idle).
					Msg("button event")
				d.metrics.Event(event)
				if err := d.publisher.Publish(event); err != nil {
					// Don't crash on publish failure
					log.Error().Err(err).Str("event", string(event.Type)).Msg("publish error")
				}
			}

			state := d.panel.State()
			d.metrics.Levels(state.Pressed, state.LedOn, state.Effect != "")

			if !state.Baselined {
				// Still waiting for baseline
				continue
			}

			// Check for heartbeat
			if hb := d.panel.Heartbeat(wall, d.heartbeat); hb != nil {
				log.Info().
					Dur("uptime", hb.Uptime).
					Int("pressed", hb.Counts.Pressed).
					Int("released", hb.Counts.Released).
					Int("long_press", hb.Counts.LongPress).
					Msg("heartbeat")

				hbEvent := mqtt.SystemEvent{
					Timestamp: hb.Timestamp,
					Event:     "HEARTBEAT",
				}
				if d.tracker != nil {
					d.refreshTracker()
					snap := d.tracker.Snapshot()
					hbEvent.RawPayload = status.FormatStatusEvent(snap, "HEARTBEAT", "")
				}
				if err := d.publisher.PublishSystem(hbEvent); err != nil {
					log.Error().Err(err).Msg("heartbeat publish error")
				}
			}

			// Update status tracker for HTTP consumers
			if d.tracker != nil {
				d.refreshTracker()
			}
		}
	}
}

func (d loopDeps) refreshTracker() {
	d.tracker.Update(status.Panel(d.panel.State()))
	if d.mqttStatus != nil {
		d.tracker.SetMQTTConnected(d.mqttStatus.IsConnected())
	}
}

// reportFault logs a device fault and counts it per device.
func (d loopDeps) reportFault(err error) {
	var in *hw.InputFault
	if errors.As(err, &in) {
		d.metrics.Fault("button")
	}
	var out *hw.OutputFault
	if errors.As(err, &out) {
		d.metrics.Fault("indicator")
	}
	if d.tracker != nil {
		d.tracker.RecordFault(err)
	}
	log.Error().Err(err).Msg("device fault")
}

func printCurrentState(input hw.InputLine, output hw.OutputLine, polarity button.Polarity) error {
	raw, err := input.Sample()
	if err != nil {
		return fmt.Errorf("read button: %w", err)
	}
	lit, err := output.DrivenLevel()
	if err != nil {
		return fmt.Errorf("read indicator: %w", err)
	}

	buttonState := "RELEASED"
	if polarity.Pressed(raw) {
		buttonState = "PRESSED"
	}
	fmt.Printf("button: %s, indicator: %s\n", buttonState, onOff(lit))
	return nil
}

func onOff(on bool) string {
	if on {
		return "ON"
	}
	return "OFF"
}

// resolveWSBroker converts the mqtt.ws_broker setting into a concrete URL.
// "=broker" derives ws://host:9001 from the TCP broker address; empty disables.
func resolveWSBroker(ws, broker string) string {
	if ws != "=broker" {
		return ws
	}
	if broker == "" {
		return ""
	}
	u, err := url.Parse(broker)
	if err != nil {
		log.Warn().Err(err).Str("broker", broker).Msg("ws_broker: cannot parse broker")
		return ""
	}
	u.Scheme = "ws"
	u.Host = u.Hostname() + ":9001"
	return u.String()
}
