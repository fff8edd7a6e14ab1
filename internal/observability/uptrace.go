package observability

import (
	"context"
	"strings"

	"github.com/uptrace/uptrace-go/uptrace"
	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

// startTracing installs the global OpenTelemetry providers and, when log export
// is on, mirrors structured logs to Uptrace. Disabled tracing still clears any
// mirror left from a previous start.
func startTracing(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	if !cfg.UptraceEnabled || strings.TrimSpace(cfg.UptraceDSN) == "" {
		logging.SetMirror(nil)
		logger.Debug("uptrace off", "enabled", cfg.UptraceEnabled)
		return nil, nil
	}

	uptrace.ConfigureOpentelemetry(
		uptrace.WithDSN(cfg.UptraceDSN),
		uptrace.WithServiceName(cfg.ServiceName),
		uptrace.WithServiceVersion(cfg.ServiceVersion),
		uptrace.WithDeploymentEnvironment(cfg.AppEnv),
		uptrace.WithResourceAttributes(
			attribute.String("career.storage_driver", cfg.StorageDriver),
			attribute.Int("career.season_length", cfg.Game.SeasonLength),
			attribute.Int("career.team_count", cfg.Game.TeamCount),
		),
		uptrace.WithLoggingEnabled(cfg.UptraceLogsEnabled),
	)

	var mirror logging.MirrorFunc
	if cfg.UptraceLogsEnabled {
		mirror = newUptraceLogMirror(cfg.ServiceVersion)
	}
	logging.SetMirror(mirror)

	logger.Info("uptrace on", "service", cfg.ServiceName, "env", cfg.AppEnv, "logs", cfg.UptraceLogsEnabled)
	return func(ctx context.Context) error {
		logging.SetMirror(nil)
		return uptrace.Shutdown(ctx)
	}, nil
}
