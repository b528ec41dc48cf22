package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/monitor"
)

// parseInterval validates the --interval flag. Empty means the config value.
func parseInterval(flag string, fallback time.Duration) (time.Duration, error) {
	if flag == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(flag)
	if err != nil {
		return 0, errors.WrapWithCode(err, errors.ErrConfig,
			fmt.Sprintf("Invalid interval: %s", flag),
			"Use a valid duration like 2s, 5s, or 1m")
	}
	if parsed < config.MinInterval {
		return 0, errors.New(errors.ErrConfig,
			"Interval too short",
			fmt.Sprintf("Minimum interval is %v so the wireless tools have time to answer", config.MinInterval))
	}
	return parsed, nil
}

// monitorLogger sends logs to log.file, or drops them so they don't tear
// the alternate screen. The returned cleanup must be called on exit.
func monitorLogger(cfg *config.Config) (logger.Logger, func(), error) {
	if cfg.Log.File == "" {
		return logger.Noop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Cannot open log file",
			"Check log.file in your config points at a writable path")
	}
	level, err := logLevel(cfg)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger.New(f, level, "monitor"), func() { f.Close() }, nil
}

// monitorCommand starts the TUI dashboard.
func monitorCommand(ctx context.Context, cfg *config.Config, interval time.Duration) error {
	log, cleanup, err := monitorLogger(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	estimator, err := newEstimator(cfg)
	if err != nil {
		return err
	}

	// A probe call must fit inside one tick.
	svcCfg := *cfg
	if svcCfg.CommandTimeout >= interval {
		svcCfg.CommandTimeout = interval * 3 / 4
	}
	svc := newService(&svcCfg, log)

	poller := monitor.NewPoller(svc, monitor.PollerOptions{
		Interval:    interval,
		HistorySize: cfg.HistorySize,
		Estimator:   estimator,
		Meter:       monitor.NewThroughputMeter(nil),
		Logger:      log,
	})

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := monitor.NewModel(poller, svc, string(svc.Platform()))
	go poller.Run(ctx)

	log.Info("monitor started: platform=%s interval=%v", svc.Platform(), interval)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if err != nil && ctx.Err() == nil {
		return errors.WrapWithCode(err, errors.ErrExec,
			"Dashboard stopped unexpectedly",
			"Try a larger terminal, or use 'wifimon status' for a one-shot read")
	}
	return nil
}
