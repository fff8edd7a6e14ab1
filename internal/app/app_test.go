package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/footy-career/internal/config"
	"github.com/riskibarqy/footy-career/internal/engine"
	"github.com/riskibarqy/footy-career/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/footy-career/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		HTTPAddr:           ":0",
		ReadTimeout:        time.Second,
		WriteTimeout:       time.Second,
		CORSAllowedOrigins: []string{"*"},
		StorageDriver:      config.StorageMemory,
		CacheEnabled:       true,
		CacheTTL:           time.Minute,
		Game:               engine.DefaultConfig(),
	}
}

func TestOpenStorage_MemorySkipsCache(t *testing.T) {
	store, err := openStorage(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)

	_, ok := store.slots.(*memory.SaveSlotRepository)
	assert.True(t, ok, "memory driver should not be wrapped by the cache")
	assert.NoError(t, store.close())
}

func TestOpenStorage_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.StorageDriver = "sqlite"

	_, err := openStorage(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_ServesHealthz(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = cleanup() })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHTTPServer_RejectsBadGameConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.Game.TeamCount = 1

	_, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}
