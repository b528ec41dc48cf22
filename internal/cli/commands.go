package cli

import (
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/wifimon/internal/errors"
)

// Command-specific flags
var (
	monitorIntervalFlag string
	doctorFix           bool
	initForce           bool
	initNonInteractive  bool
)

// statusCmd reads the current connection once
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current wireless connection",
	Long: `Read the active wireless connection once and print its metrics,
health score and any alerts.

Values the platform tools don't report (noise floor, link rates on some
systems) are estimated and marked ~estimated, unless estimation is set to
"unavailable" in your config.

Examples:
  wifimon status
  wifimon status --json
  wifimon status -i wlan1`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusCommand(cmd.Context(), currentConfig(), cmd.OutOrStdout())
	},
}

// scanCmd lists nearby networks
var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "List nearby wireless networks",
	Long: `Scan for nearby networks, strongest signal first.

A failed scan prints an empty list with a warning rather than an error.

Examples:
  wifimon scan
  wifimon scan --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return scanCommand(cmd.Context(), currentConfig(), cmd.OutOrStdout())
	},
}

// monitorCmd starts the TUI dashboard
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Live connection dashboard",
	Long: `Start an interactive TUI dashboard that re-reads the connection on an
interval and charts signal and SNR trends.

Keyboard shortcuts:
  q / Ctrl+C  Quit
  r           Force refresh
  n           Scan nearby networks
  Tab         Toggle the networks view
  Enter       Connection details
  Esc         Back
  ?           Show help

Examples:
  wifimon monitor
  wifimon monitor --interval 5s`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if machineMode {
			return errors.New(errors.ErrConfig,
				"The dashboard has no JSON mode",
				"Use 'wifimon status --json' for machine-readable readings")
		}
		cfg := currentConfig()
		interval, err := parseInterval(monitorIntervalFlag, cfg.Interval)
		if err != nil {
			return err
		}
		return monitorCommand(cmd.Context(), cfg, interval)
	},
}

// doctorCmd diagnoses tooling and configuration issues
var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose tooling and config issues",
	Long: `Run diagnostic checks to identify and fix common issues.

Checks:
  - Platform support and OS details
  - Wireless tools on PATH (netsh, airport, nmcli, iwconfig)
  - Configuration validity
  - A live connection read

Examples:
  wifimon doctor
  wifimon doctor --fix
  wifimon doctor --json`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setupLenient,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.Context(), currentConfig(), cmd.OutOrStdout(), doctorFix)
	},
}

// initCmd creates a new .wifimon.yaml configuration
var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .wifimon.yaml configuration",
	Long: `Create a .wifimon.yaml file in the current directory.

Prompts for the refresh interval, estimation policy, colors and (on Linux)
the wireless interface. Without a terminal, or with --non-interactive, the
defaults are written.

Examples:
  wifimon init
  wifimon init --force
  wifimon init --non-interactive`,
	Args:              cobra.NoArgs,
	PersistentPreRunE: setupLenient,
	RunE: func(cmd *cobra.Command, args []string) error {
		return initCommand(initForce, initNonInteractive, cmd.OutOrStdout())
	},
}

// completionCmd generates shell completion scripts
var completionCmd = &cobra.Command{
	Use:   "completion [bash|zsh|fish|powershell]",
	Short: "Generate shell completion script",
	Long: `Generate shell completion scripts for wifimon.

Examples:
  # Bash
  wifimon completion bash > /etc/bash_completion.d/wifimon

  # Zsh
  wifimon completion zsh > "${fpath[1]}/_wifimon"

  # Fish
  wifimon completion fish > ~/.config/fish/completions/wifimon.fish`,
	ValidArgs: []string{"bash", "zsh", "fish", "powershell"},
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		switch args[0] {
		case "bash":
			return rootCmd.GenBashCompletion(out)
		case "zsh":
			return rootCmd.GenZshCompletion(out)
		case "fish":
			return rootCmd.GenFishCompletion(out, true)
		case "powershell":
			return rootCmd.GenPowerShellCompletion(out)
		default:
			return errors.New(errors.ErrExec,
				"Unknown shell: "+args[0],
				"Supported shells: bash, zsh, fish, powershell")
		}
	},
}

func init() {
	// monitor command flags
	monitorCmd.Flags().StringVar(&monitorIntervalFlag, "interval", "", "refresh interval (e.g., 2s, 5s, 1m); default from config")

	// doctor command flags
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")

	// init command flags
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite existing config")
	initCmd.Flags().BoolVar(&initNonInteractive, "non-interactive", false, "write defaults without prompting")

	// Register all commands
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
}
