package config

import (
	"testing"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/footy-career/internal/domain/career"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.StorageDriver != StorageMemory {
		t.Fatalf("unexpected storage driver: %s", cfg.StorageDriver)
	}
	if cfg.Game != engine.DefaultConfig() {
		t.Fatalf("unexpected game config: %+v", cfg.Game)
	}
	if cfg.LogLevel != logging.LevelInfo {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
	if cfg.BalanceWorkers != 8 {
		t.Fatalf("unexpected balance workers: %d", cfg.BalanceWorkers)
	}
	if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
		t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", `foo=bar, uptrace-dsn="https://token@api.uptrace.dev?grpc=4317"`)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DBApplicationNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "career-api")
	t.Setenv("DB_APPLICATION_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBApplicationName != "career-api" {
		t.Fatalf("unexpected DBApplicationName: %q", cfg.DBApplicationName)
	}

	t.Setenv("DB_APPLICATION_NAME", "career-batch")
	if cfg, err = Load(); err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DBApplicationName != "career-batch" {
		t.Fatalf("unexpected DBApplicationName: %q", cfg.DBApplicationName)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("APP_SERVICE_NAME", "career-api")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "career-api" {
		t.Fatalf("unexpected PyroscopeAppName: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_StorageDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	t.Run("redis", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", " Redis ")
		t.Setenv("REDIS_ADDR", "cache:6380")
		t.Setenv("REDIS_DB", "2")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StorageDriver != StorageRedis || cfg.RedisAddr != "cache:6380" || cfg.RedisDB != 2 {
			t.Fatalf("unexpected redis config: %+v", cfg)
		}
	})

	t.Run("unknown", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORAGE_DRIVER")
		}
	})

	t.Run("negative redis db", func(t *testing.T) {
		t.Setenv("STORAGE_DRIVER", StorageRedis)
		t.Setenv("REDIS_DB", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative REDIS_DB")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_TTL", "90s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.CacheEnabled {
		t.Fatalf("expected CacheEnabled=false")
	}
	if cfg.CacheTTL != 90*time.Second {
		t.Fatalf("unexpected CacheTTL: %s", cfg.CacheTTL)
	}

	t.Setenv("CACHE_TTL", "0s")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for non-positive CACHE_TTL")
	}
}

func TestLoad_StorageBreaker(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BreakerEnabled || cfg.BreakerFailureThreshold != 5 || cfg.BreakerOpenTimeout != 15*time.Second {
		t.Fatalf("unexpected breaker defaults: %v %d %s", cfg.BreakerEnabled, cfg.BreakerFailureThreshold, cfg.BreakerOpenTimeout)
	}

	t.Setenv("STORAGE_BREAKER_FAILURE_THRESHOLD", "0")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for zero STORAGE_BREAKER_FAILURE_THRESHOLD")
	}

	t.Setenv("STORAGE_BREAKER_FAILURE_THRESHOLD", "3")
	t.Setenv("STORAGE_BREAKER_OPEN_TIMEOUT", "nope")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for malformed STORAGE_BREAKER_OPEN_TIMEOUT")
	}
}

func TestLoad_LogFileOptions(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("LOG_FILE", "/var/log/footy/career.log")
	t.Setenv("LOG_MAX_SIZE_MB", "20")
	t.Setenv("APP_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	opts := cfg.LogOptions()
	if opts.File != "/var/log/footy/career.log" || opts.MaxSizeMB != 20 || opts.MaxBackups != 5 {
		t.Fatalf("unexpected log options: %+v", opts)
	}
	if cfg.LogLevel != logging.LevelDebug {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

func TestLoad_GameConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("GAME_SEASON_LENGTH", "10")
	t.Setenv("GAME_TEAM_COUNT", "8")
	t.Setenv("GAME_FINALS_SIZE", "4")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Game.SeasonLength != 10 || cfg.Game.TeamCount != 8 || cfg.Game.FinalsSize != 4 {
		t.Fatalf("unexpected game config: %+v", cfg.Game)
	}
}

func TestLoad_GameConfigValidation(t *testing.T) {
	cases := map[string]string{
		"GAME_FINALS_SIZE":   "6",
		"GAME_TEAM_COUNT":    "1",
		"GAME_SEASON_LENGTH": "abc",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv(key, value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for %s=%s", key, value)
			}
		})
	}

	t.Run("finals larger than league", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("GAME_TEAM_COUNT", "6")
		t.Setenv("GAME_FINALS_SIZE", "8")
		_, err := Load()
		if !crerr.Is(err, career.ErrConfiguration) {
			t.Fatalf("expected configuration error, got %v", err)
		}
	})
}
