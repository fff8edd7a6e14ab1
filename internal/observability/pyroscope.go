package observability

import (
	"strconv"

	"github.com/grafana/pyroscope-go"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

// Match simulation dominates CPU and the save codec dominates allocations,
// so those are the profiles uploaded.
var careerProfileTypes = []pyroscope.ProfileType{
	pyroscope.ProfileCPU,
	pyroscope.ProfileAllocObjects,
	pyroscope.ProfileAllocSpace,
	pyroscope.ProfileInuseSpace,
	pyroscope.ProfileGoroutines,
}

func startProfiler(cfg config.Config, logger *logging.Logger) (*pyroscope.Profiler, error) {
	if !cfg.PyroscopeEnabled {
		logger.Debug("pyroscope off")
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName:   cfg.PyroscopeAppName,
		ServerAddress:     cfg.PyroscopeServerAddress,
		AuthToken:         cfg.PyroscopeAuthToken,
		BasicAuthUser:     cfg.PyroscopeBasicAuthUser,
		BasicAuthPassword: cfg.PyroscopeBasicAuthPassword,
		UploadRate:        cfg.PyroscopeUploadRate,
		Tags:              profileTags(cfg),
		ProfileTypes:      careerProfileTypes,
	})
	if err != nil {
		return nil, err
	}

	logger.Info("pyroscope on", "server", cfg.PyroscopeServerAddress, "app", cfg.PyroscopeAppName)
	return profiler, nil
}

func profileTags(cfg config.Config) map[string]string {
	return map[string]string{
		"env":           cfg.AppEnv,
		"service":       cfg.ServiceName,
		"storage":       cfg.StorageDriver,
		"season_length": strconv.Itoa(cfg.Game.SeasonLength),
		"finals_size":   strconv.Itoa(cfg.Game.FinalsSize),
	}
}
