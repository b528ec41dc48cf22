package doctor

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rileyhilliard/wifimon/internal/config"
)

// ConfigFileCheck reports which config file is in use. A missing file only
// warns since wifimon runs on defaults.
type ConfigFileCheck struct {
	ConfigPath string // Explicit path, or empty to search
	FixPath    string // Where Fix writes defaults; empty means ./.wifimon.yaml
}

func (c *ConfigFileCheck) Name() string     { return "config_file" }
func (c *ConfigFileCheck) Category() string { return CategoryConfig }

func (c *ConfigFileCheck) Run(ctx context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Error finding config: %v", err),
			Suggestion: "Check file permissions or run 'wifimon init' to create a config",
		}
	}

	if path == "" {
		return CheckResult{
			Status:     StatusWarn,
			Message:    "No config file found, using defaults",
			Suggestion: "Run 'wifimon init' or 'wifimon doctor --fix' to create a .wifimon.yaml config file",
			Fixable:    true,
		}
	}

	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Config file: %s", filepath.Base(path)),
	}
}

// Fix writes the default config.
func (c *ConfigFileCheck) Fix() error {
	path := c.FixPath
	if path == "" {
		path = config.ConfigFileName
	}
	return config.Save(config.DefaultConfig(), path)
}

// ConfigSchemaCheck verifies the config parses and passes validation.
type ConfigSchemaCheck struct {
	ConfigPath string
}

func (c *ConfigSchemaCheck) Name() string     { return "config_schema" }
func (c *ConfigSchemaCheck) Category() string { return CategoryConfig }

func (c *ConfigSchemaCheck) Run(ctx context.Context) CheckResult {
	path, err := config.Find(c.ConfigPath)
	if err != nil {
		// ConfigFileCheck reports this
		return CheckResult{
			Status:  StatusFail,
			Message: "Cannot validate schema: config file not accessible",
		}
	}

	cfg, err := config.Load(path)
	if err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Failed to load config: %v", err),
			Suggestion: "Check the YAML syntax in your config file",
		}
	}

	if err := config.Validate(cfg); err != nil {
		return CheckResult{
			Status:     StatusFail,
			Message:    fmt.Sprintf("Schema error: %v", err),
			Suggestion: "Fix the configuration errors in your .wifimon.yaml",
		}
	}

	if path == "" {
		return CheckResult{
			Status:  StatusPass,
			Message: fmt.Sprintf("Defaults valid (interval %v, history %d)", cfg.Interval, cfg.HistorySize),
		}
	}
	return CheckResult{
		Status:  StatusPass,
		Message: fmt.Sprintf("Schema valid (interval %v, history %d)", cfg.Interval, cfg.HistorySize),
	}
}

func (c *ConfigSchemaCheck) Fix() error {
	return nil // Schema issues require manual intervention
}

// NewConfigChecks creates all config-related checks.
func NewConfigChecks(configPath string) []Check {
	return []Check{
		&ConfigFileCheck{ConfigPath: configPath},
		&ConfigSchemaCheck{ConfigPath: configPath},
	}
}
