package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	goredis "github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/domain/saveslot"
	cacherepo "github.com/riskibarqy/footy-career/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/footy-career/internal/infrastructure/repository/guard"
	"github.com/riskibarqy/footy-career/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footy-career/internal/infrastructure/repository/postgres"
	redisrepo "github.com/riskibarqy/footy-career/internal/infrastructure/repository/redis"
	basecache "github.com/riskibarqy/footy-career/internal/platform/cache"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
	"github.com/riskibarqy/footy-career/internal/platform/resilience"
)

const storagePingTimeout = 5 * time.Second

type storage struct {
	slots      saveslot.Repository
	hallOfFame saveslot.HallOfFameRepository
	closers    []func() error
}

func (s storage) close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func openStorage(ctx context.Context, cfg config.Config, logger *logging.Logger) (storage, error) {
	var (
		out storage
		err error
	)

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		out, err = openPostgres(ctx, cfg)
	case config.StorageRedis:
		out, err = openRedis(ctx, cfg)
	case config.StorageMemory, "":
		out = storage{
			slots:      memory.NewSaveSlotRepository(),
			hallOfFame: memory.NewHallOfFameRepository(),
		}
	default:
		return storage{}, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
	}
	if err != nil {
		return storage{}, err
	}

	remote := cfg.StorageDriver == config.StoragePostgres || cfg.StorageDriver == config.StorageRedis
	if remote && cfg.BreakerEnabled {
		breaker := resilience.NewBreaker(resilience.BreakerConfig{
			FailureThreshold: cfg.BreakerFailureThreshold,
			OpenTimeout:      cfg.BreakerOpenTimeout,
		}, guard.IsBackendFailure)
		out.slots = guard.NewSaveSlotRepository(out.slots, breaker)
		out.hallOfFame = guard.NewHallOfFameRepository(out.hallOfFame, breaker)
	}
	// The memory driver already serves from process memory.
	if remote && cfg.CacheEnabled {
		out.slots = cacherepo.NewSaveSlotRepository(out.slots, basecache.NewStore(cfg.CacheTTL))
		logger.Info("save slot cache enabled", "ttl", cfg.CacheTTL.String())
	}
	return out, nil
}

func openPostgres(ctx context.Context, cfg config.Config) (storage, error) {
	dsn, dbName := postgresDSN(cfg.DBURL, cfg.DBApplicationName)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbName),
		otelsql.WithQueryFormatter(traceQuery),
	)
	if err != nil {
		return storage{}, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return storage{}, fmt.Errorf("ping postgres: %w", err)
	}

	return storage{
		slots:      postgres.NewSaveSlotRepository(db),
		hallOfFame: postgres.NewHallOfFameRepository(db),
		closers:    []func() error{closeDB(db)},
	}, nil
}

func closeDB(db *sqlx.DB) func() error {
	return db.Close
}

func openRedis(ctx context.Context, cfg config.Config) (storage, error) {
	client := goredis.NewClient(&goredis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, storagePingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return storage{}, fmt.Errorf("ping redis: %w", err)
	}

	return storage{
		slots:      redisrepo.NewSaveSlotRepository(client, cfg.RedisKeyPrefix),
		hallOfFame: redisrepo.NewHallOfFameRepository(client, cfg.RedisKeyPrefix),
		closers:    []func() error{client.Close},
	}, nil
}
