// Package config provides TOML configuration loading for cmd/jq255ctl.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

const defaultLogLevel = "NOTICE"

var defaultLogging = Logging{
	Disable: false,
	File:    "",
	Level:   defaultLogLevel,
}

// Config is the jq255ctl command-line front end configuration.
type Config struct {
	// Curve selects the default group: "jq255e" or "jq255s".
	Curve string

	// HashName is the default hash-name label mixed into the
	// domain-separated challenge and key-derivation hashes.
	HashName string

	// Encoding selects how binary arguments and outputs are rendered on
	// the command line: "hex" or "base64".
	Encoding string

	Logging Logging
}

// Logging is the jq255ctl logging configuration.
type Logging struct {
	// Disable disables logging entirely.
	Disable bool

	// File specifies the log file, if omitted stdout will be used.
	File string

	// Level specifies the log level.
	Level string
}

func (lCfg *Logging) validate() error {
	lvl := strings.ToUpper(lCfg.Level)
	switch lvl {
	case "ERROR", "WARNING", "NOTICE", "INFO", "DEBUG":
	case "":
		lCfg.Level = defaultLogLevel
		return nil
	default:
		return fmt.Errorf("config: Logging: Level '%v' is invalid", lCfg.Level)
	}
	lCfg.Level = lvl
	return nil
}

// Validate returns nil if the config is valid and otherwise an error.
func (cfg *Config) Validate() error {
	switch cfg.Curve {
	case "", "jq255e", "jq255s":
	default:
		return errors.New("config: Curve must be 'jq255e' or 'jq255s'")
	}
	switch cfg.Encoding {
	case "", "hex", "base64":
	default:
		return errors.New("config: Encoding must be 'hex' or 'base64'")
	}
	return cfg.Logging.validate()
}

// Default returns a Config populated with the jq255ctl defaults.
func Default() *Config {
	return &Config{
		Curve:    "jq255e",
		Encoding: "hex",
		Logging:  defaultLogging,
	}
}

// Load parses and validates the provided buffer b as a config file body and
// returns the Config.
func Load(b []byte) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(string(b), cfg)
	if err != nil {
		return nil, err
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		return nil, fmt.Errorf("config: undecoded keys in config file: %v", undecoded)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFile loads, parses and validates the provided file and returns the
// Config. A missing file is not an error; the defaults are returned instead,
// since the config file is optional.
func LoadFile(f string) (*Config, error) {
	if f == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(f)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}
	return Load(b)
}
