package cli

import (
	"context"

	"github.com/rileyhilliard/wifimon/internal/config"
	"github.com/rileyhilliard/wifimon/internal/errors"
	"github.com/rileyhilliard/wifimon/internal/logger"
	"github.com/rileyhilliard/wifimon/internal/probe"
	"github.com/rileyhilliard/wifimon/internal/wifi"
)

// wirelessService is the acquisition boundary the commands use.
// *probe.Service implements it.
type wirelessService interface {
	GetConnectionMetrics(ctx context.Context) probe.Response[*wifi.ConnectionSnapshot]
	ScanNetworks(ctx context.Context) probe.Response[[]wifi.NetworkEntry]
	Platform() probe.Platform
	Tools() []probe.Tool
}

// newService builds the local service. Tests replace it with a fake.
var newService = func(cfg *config.Config, log logger.Logger) wirelessService {
	return probe.NewLocalService(cfg.Interface, probe.ServiceOptions{
		Timeout: cfg.CommandTimeout,
		Logger:  log,
	})
}

// newEstimator builds the estimator for the configured policy.
func newEstimator(cfg *config.Config) (*wifi.Estimator, error) {
	mode, err := wifi.ParseEstimationMode(cfg.Estimation)
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.ErrConfig,
			"Invalid estimation mode",
			"Set estimation to 'synthetic' or 'unavailable'")
	}
	return wifi.NewEstimator(mode, nil), nil
}

// responseError turns a failed acquisition into the structured CLI error.
func responseError(what string, code string, err error) error {
	errCode := errors.ErrProbe
	switch code {
	case probe.CodeUnsupportedPlatform:
		errCode = errors.ErrPlatform
	case probe.CodeParseFailed:
		errCode = errors.ErrParse
	}
	return errors.WrapWithCode(err, errCode, what, suggestionFor(code))
}
