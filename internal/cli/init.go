package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// InitOptions holds options for the init command.
type InitOptions struct {
	Dir            string // Directory to write into; empty means the current one
	Overwrite      bool   // Overwrite existing config without asking
	NonInteractive bool   // Skip prompts, use defaults
	Interface      string // Pre-specified wireless interface
}

// initAnswers are the values the wizard collects, as strings for huh.
type initAnswers struct {
	Interval   string
	Estimation string
	Interface  string
	Color      string
}

// Init creates a new .wifimon.yaml configuration file.
func Init(opts InitOptions, out io.Writer) error {
	configPath := filepath.Join(opts.Dir, config.ConfigFileName)

	if _, err := os.Stat(configPath); err == nil && !opts.Overwrite {
		if opts.NonInteractive {
			return errors.New(errors.ErrConfig,
				fmt.Sprintf("Config file already exists: %s", configPath),
				"Use --force to overwrite")
		}

		var overwrite bool
		form := huh.NewForm(
			huh.NewGroup(
				huh.NewConfirm().
					Title(fmt.Sprintf("Config file '%s' already exists. Overwrite?", config.ConfigFileName)).
					Value(&overwrite),
			),
		)
		if err := form.Run(); err != nil {
			return errors.WrapWithCode(err, errors.ErrConfig,
				"Failed to get user input",
				"Try running with --force to overwrite")
		}
		if !overwrite {
			fmt.Fprintln(out, "Cancelled.")
			return nil
		}
	}

	defaults := config.DefaultConfig()
	answers := initAnswers{
		Interval:   defaults.Interval.String(),
		Estimation: defaults.Estimation,
		Interface:  opts.Interface,
		Color:      defaults.Output.Color,
	}

	if !opts.NonInteractive {
		if err := askInitQuestions(&answers); err != nil {
			return err
		}
	}

	cfg, err := answers.apply(defaults)
	if err != nil {
		return err
	}
	if err := config.Save(cfg, configPath); err != nil {
		return err
	}

	fmt.Fprintf(out, "%s Created %s\n\n", ui.SymbolSuccess, configPath)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  wifimon doctor   - Check tools and config")
	fmt.Fprintln(out, "  wifimon status   - Read the connection once")
	fmt.Fprintln(out, "  wifimon monitor  - Live dashboard")
	return nil
}

func askInitQuestions(a *initAnswers) error {
	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewInput().
				Title("Refresh interval").
				Description("How often the dashboard reads the connection").
				Placeholder("2s").
				Value(&a.Interval).
				Validate(func(s string) error {
					_, err := parseInterval(strings.TrimSpace(s), config.DefaultInterval)
					return err
				}),
			huh.NewSelect[string]().
				Title("Missing noise and rates").
				Description("Some tools don't report noise floor or link rates").
				Options(
					huh.NewOption("Estimate them (marked ~estimated)", "synthetic"),
					huh.NewOption("Show them as unavailable", "unavailable"),
				).
				Value(&a.Estimation),
			huh.NewSelect[string]().
				Title("Colors").
				Options(
					huh.NewOption("Auto", "auto"),
					huh.NewOption("Always", "always"),
					huh.NewOption("Never", "never"),
				).
				Value(&a.Color),
		),
	}

	if probe.DetectPlatform() == probe.PlatformLinux {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().
				Title("Wireless interface (optional)").
				Description("Leave empty to use whichever interface nmcli reports").
				Placeholder("wlan0").
				Value(&a.Interface).
				Validate(func(s string) error {
					if strings.ContainsAny(strings.TrimSpace(s), " \t") {
						return fmt.Errorf("interface name cannot contain whitespace")
					}
					return nil
				}),
		))
	}

	if err := huh.NewForm(groups...).Run(); err != nil {
		return errors.WrapWithCode(err, errors.ErrConfig,
			"Failed to get user input",
			"Check terminal compatibility or use --non-interactive flag")
	}
	return nil
}

// apply copies the answers onto base. The command timeout shrinks with
// short intervals so it stays inside one tick.
func (a initAnswers) apply(base *config.Config) (*config.Config, error) {
	cfg := *base

	interval, err := parseInterval(strings.TrimSpace(a.Interval), base.Interval)
	if err != nil {
		return nil, err
	}
	cfg.Interval = interval
	if cfg.CommandTimeout >= interval {
		cfg.CommandTimeout = (interval * 3 / 4).Truncate(time.Millisecond)
	}

	cfg.Estimation = a.Estimation
	cfg.Interface = strings.TrimSpace(a.Interface)
	cfg.Output.Color = a.Color
	return &cfg, nil
}

// initCommand is the implementation called by the cobra command.
func initCommand(force, nonInteractive bool, out io.Writer) error {
	return Init(InitOptions{
		Overwrite:      force,
		NonInteractive: nonInteractive || !isTerminal(os.Stdin),
		Interface:      interfaceFlag,
	}, out)
}
