package config

import (
	"bytes"
	"os"
	"path/filepath"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"gopkg.in/yaml.v3"
)

// fileConfig is the on-disk shape. Durations are written as strings like
// "2s" because yaml.v3 would otherwise emit nanoseconds.
type fileConfig struct {
	Version        int          `yaml:"version"`
	Interval       string       `yaml:"interval"`
	CommandTimeout string       `yaml:"command_timeout"`
	HistorySize    int          `yaml:"history_size"`
	Interface      string       `yaml:"interface,omitempty"`
	Estimation     string       `yaml:"estimation"`
	Log            LogConfig    `yaml:"log"`
	Output         OutputConfig `yaml:"output"`
}

const fileHeader = "# wifimon configuration\n# Environment variables override these values, e.g. WIFIMON_INTERVAL=5s\n\n"

// Marshal renders cfg as YAML with a short header.
func Marshal(cfg *Config) ([]byte, error) {
	fc := fileConfig{
		Version:        cfg.Version,
		Interval:       cfg.Interval.String(),
		CommandTimeout: cfg.CommandTimeout.String(),
		HistorySize:    cfg.HistorySize,
		Interface:      cfg.Interface,
		Estimation:     cfg.Estimation,
		Log:            cfg.Log,
		Output:         cfg.Output,
	}

	var buf bytes.Buffer
	buf.WriteString(fileHeader)
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(fc); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	if err := enc.Close(); err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig, "Failed to encode config", "")
	}
	return buf.Bytes(), nil
}

// Save validates cfg and writes it to path, creating parent directories.
func Save(cfg *Config, path string) error {
	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := Marshal(cfg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot create config directory",
			"Check permissions on "+filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot write config file",
			"Check permissions on "+path)
	}
	return nil
}
