package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dshills/vtconsole/internal/keyboard"
)

// Config holds every vtconsole setting.
type Config struct {
	Display  DisplayConfig  `toml:"display" yaml:"display"`
	Terminal TerminalConfig `toml:"terminal" yaml:"terminal"`
	Keyboard KeyboardConfig `toml:"keyboard" yaml:"keyboard"`
	Bell     BellConfig     `toml:"bell" yaml:"bell"`
	Serial   SerialConfig   `toml:"serial" yaml:"serial"`
	Logging  LoggingConfig  `toml:"logging" yaml:"logging"`
}

// DisplayConfig sizes the character grid.
type DisplayConfig struct {
	Width  int `toml:"width" yaml:"width"`
	Height int `toml:"height" yaml:"height"`
}

// TerminalConfig configures the escape sequence interpreter.
type TerminalConfig struct {
	Answerback         string `toml:"answerback" yaml:"answerback"`
	SubstituteCharsets bool   `toml:"substitute_charsets" yaml:"substitute_charsets"`
	StripBit7          bool   `toml:"strip_bit7" yaml:"strip_bit7"`
	TabInterval        int    `toml:"tab_interval" yaml:"tab_interval"`
}

// KeyboardConfig configures key decoding and repeat.
type KeyboardConfig struct {
	Layout         string   `toml:"layout" yaml:"layout"`
	RepeatDelay    Duration `toml:"repeat_delay" yaml:"repeat_delay"`
	RepeatInterval Duration `toml:"repeat_interval" yaml:"repeat_interval"`
	TickInterval   Duration `toml:"tick_interval" yaml:"tick_interval"`
}

// BellConfig configures the BEL tone.
type BellConfig struct {
	Enabled    bool     `toml:"enabled" yaml:"enabled"`
	Frequency  float64  `toml:"frequency" yaml:"frequency"`
	Duration   Duration `toml:"duration" yaml:"duration"`
	Volume     float64  `toml:"volume" yaml:"volume"`
	SampleRate int      `toml:"sample_rate" yaml:"sample_rate"`
}

// SerialConfig configures the link to the emulated machine. An empty Port
// means the console talks to stdin and stdout instead.
type SerialConfig struct {
	Port     string `toml:"port" yaml:"port"`
	BaudRate uint   `toml:"baud_rate" yaml:"baud_rate"`
	DataBits uint   `toml:"data_bits" yaml:"data_bits"`
	StopBits uint   `toml:"stop_bits" yaml:"stop_bits"`
	Parity   string `toml:"parity" yaml:"parity"`
}

// LoggingConfig configures the logger. An empty File logs to stderr.
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns the built-in defaults.
func Default() *Config {
	return &Config{
		Display: DisplayConfig{
			Width:  80,
			Height: 30,
		},
		Terminal: TerminalConfig{
			TabInterval: 8,
		},
		Keyboard: KeyboardConfig{
			Layout:         "us",
			RepeatDelay:    Duration(keyboard.DefaultRepeatDelay),
			RepeatInterval: Duration(keyboard.DefaultRepeatInterval),
			TickInterval:   Duration(keyboard.DefaultTickInterval),
		},
		Bell: BellConfig{
			Enabled:    true,
			Frequency:  800,
			Duration:   Duration(100 * time.Millisecond),
			Volume:     0.3,
			SampleRate: 44100,
		},
		Serial: SerialConfig{
			BaudRate: 115200,
			DataBits: 8,
			StopBits: 1,
			Parity:   "none",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks every setting and returns all problems joined.
func (c *Config) Validate() error {
	var v validator

	v.check(c.Display.Width >= 2 && c.Display.Width <= 1024, "display.width", "must be between 2 and 1024", c.Display.Width)
	v.check(c.Display.Height >= 2 && c.Display.Height <= 1024, "display.height", "must be between 2 and 1024", c.Display.Height)

	v.check(c.Terminal.TabInterval >= 0, "terminal.tab_interval", "must not be negative", c.Terminal.TabInterval)

	_, err := keyboard.LayoutByName(c.Keyboard.Layout)
	v.check(err == nil, "keyboard.layout", "must be one of us, jp", c.Keyboard.Layout)
	v.check(c.Keyboard.RepeatDelay >= Duration(time.Millisecond), "keyboard.repeat_delay", "must be at least 1ms", c.Keyboard.RepeatDelay)
	v.check(c.Keyboard.RepeatInterval >= Duration(time.Millisecond), "keyboard.repeat_interval", "must be at least 1ms", c.Keyboard.RepeatInterval)
	v.check(c.Keyboard.TickInterval > 0 && c.Keyboard.TickInterval <= c.Keyboard.RepeatInterval,
		"keyboard.tick_interval", "must be positive and no longer than repeat_interval", c.Keyboard.TickInterval)

	if c.Bell.Enabled {
		v.check(c.Bell.Frequency > 0 && c.Bell.Frequency < float64(c.Bell.SampleRate)/2,
			"bell.frequency", "must be positive and below half the sample rate", c.Bell.Frequency)
		v.check(c.Bell.Duration > 0, "bell.duration", "must be positive", c.Bell.Duration)
		v.check(c.Bell.Volume >= 0 && c.Bell.Volume <= 1, "bell.volume", "must be between 0 and 1", c.Bell.Volume)
		v.check(c.Bell.SampleRate > 0, "bell.sample_rate", "must be positive", c.Bell.SampleRate)
	}

	if c.Serial.Port != "" {
		v.check(c.Serial.BaudRate > 0, "serial.baud_rate", "must be positive", c.Serial.BaudRate)
		v.check(c.Serial.DataBits >= 5 && c.Serial.DataBits <= 8, "serial.data_bits", "must be between 5 and 8", c.Serial.DataBits)
		v.check(c.Serial.StopBits == 1 || c.Serial.StopBits == 2, "serial.stop_bits", "must be 1 or 2", c.Serial.StopBits)
		switch strings.ToLower(c.Serial.Parity) {
		case "", "none", "odd", "even":
		default:
			v.fail("serial.parity", "must be one of none, odd, even", c.Serial.Parity)
		}
	}

	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		v.fail("logging.level", "must be one of debug, info, warn, error", c.Logging.Level)
	}

	return v.err()
}

type validator struct {
	errs []error
}

func (v *validator) check(ok bool, field, msg string, value any) {
	if !ok {
		v.fail(field, msg, value)
	}
}

func (v *validator) fail(field, msg string, value any) {
	v.errs = append(v.errs, &ValidationError{Field: field, Message: msg, Value: value})
}

func (v *validator) err() error {
	return errors.Join(v.errs...)
}

// Duration is a time.Duration written as a Go duration string ("500ms").
type Duration time.Duration

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// String implements fmt.Stringer.
func (d Duration) String() string {
	return time.Duration(d).String()
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	return d.UnmarshalText([]byte(node.Value))
}
