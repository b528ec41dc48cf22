package config

import "time"

// CurrentConfigVersion is the schema version for the config file.
// Increment when making breaking changes to the config structure.
const CurrentConfigVersion = 1

// Defaults and limits for the polling loop.
const (
	DefaultInterval       = 2 * time.Second
	MinInterval           = 500 * time.Millisecond
	DefaultCommandTimeout = 1500 * time.Millisecond
	DefaultHistorySize    = 20
)

// Config represents the complete .wifimon.yaml configuration file.
type Config struct {
	Version int `yaml:"version" mapstructure:"version"`

	// Interval between acquisitions in the monitor loop.
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`

	// CommandTimeout bounds one acquisition, including any fallback command.
	// Must be shorter than Interval.
	CommandTimeout time.Duration `yaml:"command_timeout" mapstructure:"command_timeout"`

	// HistorySize is the number of samples kept for sparklines.
	HistorySize int `yaml:"history_size" mapstructure:"history_size"`

	// Interface restricts Linux probes to one wireless device. Empty means
	// whatever the tools report first.
	Interface string `yaml:"interface" mapstructure:"interface"`

	// Estimation is "synthetic" or "unavailable".
	Estimation string `yaml:"estimation" mapstructure:"estimation"`

	Log    LogConfig    `yaml:"log" mapstructure:"log"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	// Level is one of debug, info, warn, error, off.
	Level string `yaml:"level" mapstructure:"level"`

	// File receives log output. Empty means stderr, except in the dashboard
	// where logs are dropped so they don't tear the screen.
	File string `yaml:"file" mapstructure:"file"`
}

// OutputConfig controls terminal output formatting.
type OutputConfig struct {
	// Color mode: "auto", "always", or "never".
	// "auto" disables color when output is piped.
	Color string `yaml:"color" mapstructure:"color"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Version:        CurrentConfigVersion,
		Interval:       DefaultInterval,
		CommandTimeout: DefaultCommandTimeout,
		HistorySize:    DefaultHistorySize,
		Estimation:     "synthetic",
		Log: LogConfig{
			Level: "info",
		},
		Output: OutputConfig{
			Color: "auto",
		},
	}
}
