// Package config loads the settings of the deci command.
package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/ChiliNoodles/Deci"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the YAML configuration of the deci command:
//
//	scale: 2
//	rounding: half_even
//	log_level: warn
//	log_file: ./logs/deci.log
type Config struct {
	// Scale is the number of digits after the decimal point used by
	// division and rounding. Nil means unlimited division and no rounding.
	Scale    *int              `yaml:"scale"`
	Rounding deci.RoundingMode `yaml:"rounding"`
	LogLevel string            `yaml:"log_level"`
	LogFile  string            `yaml:"log_file"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Rounding: deci.RoundHalfEven,
		LogLevel: "info",
	}
}

// Load reads the YAML file at path on top of [Default] and applies
// environment overrides (see [Config.ApplyEnv]).
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrap(err, "reading config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, errors.Wrapf(err, "parsing config %s", path)
		}
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

// ApplyEnv overrides settings from DECI_SCALE, DECI_ROUNDING, LOG_LEVEL and
// LOG_FILE when they are set.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := strings.TrimSpace(getenv("DECI_SCALE")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrapf(err, "parsing DECI_SCALE")
		}
		c.Scale = &n
	}
	if v := strings.TrimSpace(getenv("DECI_ROUNDING")); v != "" {
		m, err := deci.ParseRoundingMode(v)
		if err != nil {
			return errors.Wrap(err, "parsing DECI_ROUNDING")
		}
		c.Rounding = m
	}
	if v := strings.TrimSpace(getenv("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(getenv("LOG_FILE")); v != "" {
		c.LogFile = v
	}
	return nil
}

// Validate checks the scale.
func (c Config) Validate() error {
	if c.Scale != nil && *c.Scale < 0 {
		return errors.Wrapf(deci.ErrValidation, "scale %d is negative", *c.Scale)
	}
	return nil
}
