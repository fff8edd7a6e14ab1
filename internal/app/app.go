package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/interfaces/httpapi"
	"github.com/riskibarqy/footy-career/internal/metrics"
	"github.com/riskibarqy/footy-career/internal/platform/id"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
	"github.com/riskibarqy/footy-career/internal/usecase"
)

// NewHTTPServer wires storage, the engine and the HTTP API. The returned
// cleanup closes storage connections and must run after the server stops.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	eng, err := engine.New(cfg.Game)
	if err != nil {
		return nil, nil, fmt.Errorf("build engine: %w", err)
	}

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	m := metrics.New()
	careerSvc := usecase.NewCareerService(eng, store.slots, store.hallOfFame, id.NewUUIDGenerator(), m, logger)

	handler := httpapi.NewHandler(careerSvc, logger)
	router := httpapi.NewRouter(handler, m.Handler(), logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("app wired",
		"storage", cfg.StorageDriver,
		"cache_enabled", cfg.CacheEnabled,
		"season_length", cfg.Game.SeasonLength,
		"team_count", cfg.Game.TeamCount,
	)

	return server, store.close, nil
}

// NewBalanceService builds the offline balance runner with its own metrics registry.
func NewBalanceService(cfg config.Config, logger *logging.Logger) (*usecase.BalanceService, *metrics.Metrics, error) {
	eng, err := engine.New(cfg.Game)
	if err != nil {
		return nil, nil, fmt.Errorf("build engine: %w", err)
	}
	m := metrics.New()
	return usecase.NewBalanceService(eng, m, logger), m, nil
}
