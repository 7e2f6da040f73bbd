package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// envSetter parses an environment value into one setting.
type envSetter func(c *Config, val string) error

// envSettings maps dotted setting paths to their setters.
var envSettings = map[string]envSetter{
	"display.width":  intSetter(func(c *Config) *int { return &c.Display.Width }),
	"display.height": intSetter(func(c *Config) *int { return &c.Display.Height }),

	"terminal.answerback":          stringSetter(func(c *Config) *string { return &c.Terminal.Answerback }),
	"terminal.substitute_charsets": boolSetter(func(c *Config) *bool { return &c.Terminal.SubstituteCharsets }),
	"terminal.strip_bit7":          boolSetter(func(c *Config) *bool { return &c.Terminal.StripBit7 }),
	"terminal.tab_interval":        intSetter(func(c *Config) *int { return &c.Terminal.TabInterval }),

	"keyboard.layout":          stringSetter(func(c *Config) *string { return &c.Keyboard.Layout }),
	"keyboard.repeat_delay":    durationSetter(func(c *Config) *Duration { return &c.Keyboard.RepeatDelay }),
	"keyboard.repeat_interval": durationSetter(func(c *Config) *Duration { return &c.Keyboard.RepeatInterval }),
	"keyboard.tick_interval":   durationSetter(func(c *Config) *Duration { return &c.Keyboard.TickInterval }),

	"bell.enabled":     boolSetter(func(c *Config) *bool { return &c.Bell.Enabled }),
	"bell.frequency":   floatSetter(func(c *Config) *float64 { return &c.Bell.Frequency }),
	"bell.duration":    durationSetter(func(c *Config) *Duration { return &c.Bell.Duration }),
	"bell.volume":      floatSetter(func(c *Config) *float64 { return &c.Bell.Volume }),
	"bell.sample_rate": intSetter(func(c *Config) *int { return &c.Bell.SampleRate }),

	"serial.port":      stringSetter(func(c *Config) *string { return &c.Serial.Port }),
	"serial.baud_rate": uintSetter(func(c *Config) *uint { return &c.Serial.BaudRate }),
	"serial.data_bits": uintSetter(func(c *Config) *uint { return &c.Serial.DataBits }),
	"serial.stop_bits": uintSetter(func(c *Config) *uint { return &c.Serial.StopBits }),
	"serial.parity":    stringSetter(func(c *Config) *string { return &c.Serial.Parity }),

	"logging.level": stringSetter(func(c *Config) *string { return &c.Logging.Level }),
	"logging.file":  stringSetter(func(c *Config) *string { return &c.Logging.File }),
}

// envAliases are short names that do not follow the SECTION_KEY pattern.
var envAliases = map[string]string{
	EnvPrefix + "LOG_LEVEL": "logging.level",
	EnvPrefix + "LOG_FILE":  "logging.file",
	EnvPrefix + "PORT":      "serial.port",
	EnvPrefix + "LAYOUT":    "keyboard.layout",
}

// applyEnv overlays every recognized prefixed variable onto c. Unrecognized
// prefixed variables are ignored.
func (l *Loader) applyEnv(c *Config) error {
	for _, kv := range l.environ() {
		name, _, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(name, EnvPrefix) {
			continue
		}

		path, ok := envAliases[name]
		if !ok {
			path = envToPath(name)
		}
		set, ok := envSettings[path]
		if !ok {
			continue
		}

		val, _ := l.lookup(name)
		if err := set(c, val); err != nil {
			return fmt.Errorf("%s=%q: %w", name, val, err)
		}
	}
	return nil
}

// envToPath converts VTCONSOLE_KEYBOARD_REPEAT_DELAY to keyboard.repeat_delay.
func envToPath(env string) string {
	name := strings.ToLower(strings.TrimPrefix(env, EnvPrefix))
	section, key, ok := strings.Cut(name, "_")
	if !ok {
		return name
	}
	return section + "." + key
}

func stringSetter(field func(*Config) *string) envSetter {
	return func(c *Config, val string) error {
		*field(c) = val
		return nil
	}
}

func intSetter(field func(*Config) *int) envSetter {
	return func(c *Config, val string) error {
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil {
			return ErrInvalidValue
		}
		*field(c) = n
		return nil
	}
}

func uintSetter(field func(*Config) *uint) envSetter {
	return func(c *Config, val string) error {
		n, err := strconv.ParseUint(strings.TrimSpace(val), 10, 0)
		if err != nil {
			return ErrInvalidValue
		}
		*field(c) = uint(n)
		return nil
	}
}

func floatSetter(field func(*Config) *float64) envSetter {
	return func(c *Config, val string) error {
		f, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return ErrInvalidValue
		}
		*field(c) = f
		return nil
	}
}

func boolSetter(field func(*Config) *bool) envSetter {
	return func(c *Config, val string) error {
		switch strings.ToLower(strings.TrimSpace(val)) {
		case "true", "yes", "on", "1":
			*field(c) = true
		case "false", "no", "off", "0", "":
			*field(c) = false
		default:
			return ErrInvalidValue
		}
		return nil
	}
}

func durationSetter(field func(*Config) *Duration) envSetter {
	return func(c *Config, val string) error {
		d, err := time.ParseDuration(strings.TrimSpace(val))
		if err != nil {
			return ErrInvalidValue
		}
		*field(c) = Duration(d)
		return nil
	}
}
