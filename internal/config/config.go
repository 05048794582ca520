package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Color modes
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds the settings shared by the command-line tools
type Config struct {
	// Color is one of auto, always or never
	Color string `toml:"color"`
	// Verbosity is passed to commonlog.Configure
	Verbosity int `toml:"verbosity"`
	// Trace enables debug logging of parser invocations
	Trace bool `toml:"trace"`
}

// Default returns the settings used when no config file is given.
func Default() Config {
	return Config{Color: ColorAuto}
}

// Load reads a TOML file on top of the defaults. An empty path yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); err != nil {
		return cfg, errors.Wrapf(err, "config file %s", path)
	}
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "failed to decode %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}
	return cfg, cfg.Validate()
}

// Validate rejects unknown color modes and negative verbosity.
func (c Config) Validate() error {
	switch c.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return errors.Errorf("invalid color mode %q (want auto, always or never)", c.Color)
	}
	if c.Verbosity < 0 {
		return errors.Errorf("verbosity must not be negative, got %d", c.Verbosity)
	}
	return nil
}

// LogVerbosity returns the commonlog verbosity, raised to debug when tracing.
func (c Config) LogVerbosity() int {
	if c.Trace && c.Verbosity < 2 {
		return 2
	}
	return c.Verbosity
}
