package config

import (
	"fmt"
	"slices"
	"strings"

	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/util"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// Validate checks the config for errors and returns a structured error
// describing the first problem found.
func Validate(cfg *Config) error {
	if cfg.Version > CurrentConfigVersion {
		return errors.New(errors.ErrConfig,
			fmt.Sprintf("This config is from the future (version %d, but wifimon only knows up to %d)", cfg.Version, CurrentConfigVersion),
			"Upgrade wifimon or regenerate the file with 'wifimon init --force'")
	}

	checks := []func(*Config) error{
		validateTiming,
		validateHistory,
		validateEstimation,
		validateLog,
		validateOutput,
	}
	for _, check := range checks {
		if err := check(cfg); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Invalid configuration",
				"Fix the value in your .wifimon.yaml or the matching WIFIMON_ environment variable")
		}
	}
	return nil
}

// validateTiming keeps one acquisition shorter than one tick so a hung tool
// can cost at most a single missed update.
func validateTiming(cfg *Config) error {
	if cfg.Interval < MinInterval {
		return fmt.Errorf("interval %v is too short - minimum is %v", cfg.Interval, MinInterval)
	}
	if cfg.CommandTimeout <= 0 {
		return fmt.Errorf("command_timeout must be positive (got %v)", cfg.CommandTimeout)
	}
	if cfg.CommandTimeout >= cfg.Interval {
		return fmt.Errorf("command_timeout (%v) must be shorter than interval (%v)", cfg.CommandTimeout, cfg.Interval)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if cfg.HistorySize < 1 || cfg.HistorySize > 3600 {
		return fmt.Errorf("history_size needs to be 1-3600 (got %d)", cfg.HistorySize)
	}
	return nil
}

var (
	estimationModes = []string{string(wifi.EstimateSynthetic), string(wifi.EstimateUnavailable)}
	logLevels       = []string{"debug", "info", "warn", "error", "off"}
	colorModes      = []string{"auto", "always", "never"}
)

func validateEstimation(cfg *Config) error {
	_, err := wifi.ParseEstimationMode(cfg.Estimation)
	return withHint(err, cfg.Estimation, estimationModes)
}

func validateLog(cfg *Config) error {
	_, err := logger.ParseLevel(cfg.Log.Level)
	return withHint(err, cfg.Log.Level, logLevels)
}

// validateOutput checks output configuration.
func validateOutput(cfg *Config) error {
	color := strings.ToLower(cfg.Output.Color)
	if color == "" || slices.Contains(colorModes, color) {
		return nil
	}
	return withHint(
		fmt.Errorf("output.color '%s' isn't valid - use one of: %s", cfg.Output.Color, util.JoinOrNone(colorModes)),
		cfg.Output.Color, colorModes)
}

// withHint appends a did-you-mean for near-miss values.
func withHint(err error, value string, valid []string) error {
	if err == nil {
		return nil
	}
	if hint := util.DidYouMean(value, valid); hint != "" {
		return fmt.Errorf("%w - %s", err, hint)
	}
	return err
}
