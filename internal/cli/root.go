package cli

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/ui"
)

// Global flags
var (
	cfgFile       string
	noColor       bool
	verbose       bool
	interfaceFlag string
)

// loaded is the resolved configuration for the current invocation.
var (
	loaded     *config.Config
	loadedPath string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wifimon",
	Short: "WiFi connection telemetry for the terminal",
	Long: `wifimon reads the active wireless connection through the platform's own
tools (netsh on Windows, airport on macOS, nmcli or iwconfig on Linux),
normalizes the readings, scores link health and flags problems.

Examples:
  wifimon status
  wifimon scan --json
  wifimon monitor --interval 5s`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./.wifimon.yaml or ~/.config/wifimon/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&machineMode, "json", false, "machine-readable JSON output")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVarP(&interfaceFlag, "interface", "i", "", "wireless interface to read (Linux only)")
}

// errSilentExit fails the command after its output has already been written.
var errSilentExit = stderrors.New("exit status 1")

// Execute runs the root command and exits non-zero on failure. An interrupt
// cancels the command's context.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if !stderrors.Is(err, errSilentExit) {
			reportError(os.Stdout, os.Stderr, err)
		}
		os.Exit(1)
	}
}

// reportError prints err as a JSON envelope in machine mode, or as the
// structured message otherwise.
func reportError(stdout, stderr io.Writer, err error) {
	if machineMode {
		_ = WriteJSONFromError(stdout, err)
		return
	}
	msg := err.Error()
	if !strings.HasPrefix(msg, "✗") {
		msg = "✗ " + msg
	}
	fmt.Fprintln(stderr, strings.TrimRight(msg, "\n"))
}

// Config returns the --config flag value.
func Config() string {
	return cfgFile
}

// setup loads config and applies color and logging settings before any
// subcommand runs.
func setup(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		return err
	}
	return applyConfig(cfg, path)
}

// setupLenient falls back to defaults when the config is broken, so doctor
// can still run and report the problem.
func setupLenient(cmd *cobra.Command, args []string) error {
	cfg, path, err := config.LoadOrDefault(cfgFile)
	if err != nil {
		cfg, path = config.DefaultConfig(), ""
	}
	return applyConfig(cfg, path)
}

func applyConfig(cfg *config.Config, path string) error {
	if interfaceFlag != "" {
		cfg.Interface = interfaceFlag
	}
	loaded, loadedPath = cfg, path

	colorMode := cfg.Output.Color
	if noColor || machineMode {
		colorMode = ui.ColorNever
	}
	if err := ui.SetColorMode(colorMode, os.Stdout); err != nil {
		return err
	}

	log, err := newLogger(cfg, os.Stderr, "")
	if err != nil {
		return err
	}
	logger.SetDefault(log)
	logger.Default().Debug("config: %s", describeConfigPath(path))
	return nil
}

// newLogger builds the console logger for one-shot commands. --verbose
// forces debug.
func newLogger(cfg *config.Config, w io.Writer, component string) (logger.Logger, error) {
	level, err := logLevel(cfg)
	if err != nil {
		return nil, err
	}
	return logger.NewConsole(w, level, component, !noColor && !machineMode), nil
}

func logLevel(cfg *config.Config) (zerolog.Level, error) {
	if verbose {
		return zerolog.DebugLevel, nil
	}
	return logger.ParseLevel(cfg.Log.Level)
}

func describeConfigPath(path string) string {
	if path == "" {
		return "defaults (no config file found)"
	}
	return path
}

// currentConfig returns the loaded config, or defaults when setup has not
// run (tests calling command functions directly).
func currentConfig() *config.Config {
	if loaded == nil {
		return config.DefaultConfig()
	}
	return loaded
}
