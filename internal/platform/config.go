package platform

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Environment variables overriding the config file.
const (
	EnvDataDir     = "PLANNER_DATA_DIR"
	EnvAdapter     = "PLANNER_ADAPTER"
	EnvFormat      = "PLANNER_FORMAT"
	EnvReadOnly    = "PLANNER_READ_ONLY"
	EnvEventBuffer = "PLANNER_EVENT_BUFFER"
	EnvVerbose     = "PLANNER_VERBOSE"
)

// Config is the optional .planner.yaml stored in the data directory.
// Zero values mean "use the default".
type Config struct {
	Adapter     string `yaml:"adapter,omitempty"`
	Format      string `yaml:"format,omitempty"`
	ReadOnly    bool   `yaml:"read_only,omitempty"`
	EventBuffer int    `yaml:"event_buffer,omitempty"`
	Verbose     bool   `yaml:"verbose,omitempty"`
}

// LoadConfig reads dir/.planner.yaml (a missing file is not an error) and
// then applies PLANNER_* environment overrides.
func LoadConfig(dir string) (Config, error) {
	cfg, err := ReadConfigFile(filepath.Join(dir, ConfigFileName))
	if err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ReadConfigFile decodes a YAML config file. Unknown keys are rejected.
func ReadConfigFile(path string) (Config, error) {
	var cfg Config
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// WriteConfigFile stores cfg as YAML at path.
func WriteConfigFile(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ApplyEnv overrides fields from environment variables found by lookup.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvAdapter); ok && v != "" {
		c.Adapter = v
	}
	if v, ok := lookup(EnvFormat); ok && v != "" {
		c.Format = v
	}
	if v, ok := lookup(EnvReadOnly); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvReadOnly, err)
		}
		c.ReadOnly = b
	}
	if v, ok := lookup(EnvEventBuffer); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvEventBuffer, err)
		}
		c.EventBuffer = n
	}
	if v, ok := lookup(EnvVerbose); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvVerbose, err)
		}
		c.Verbose = b
	}
	return nil
}

// Options converts the config into functional options. Options passed
// after these take precedence.
func (c Config) Options() []Option {
	var opts []Option
	if c.Adapter != "" {
		opts = append(opts, WithAdapter(c.Adapter))
	}
	if c.Format != "" {
		opts = append(opts, WithFormat(c.Format))
	}
	if c.ReadOnly {
		opts = append(opts, WithReadOnly(true))
	}
	if c.EventBuffer > 0 {
		opts = append(opts, WithEventBuffer(c.EventBuffer))
	}
	return opts
}
