package server

import (
	"context"
	"testing"
	"time"

	"github.com/dmitrijs2005/translingo/internal/logging"
	"github.com/dmitrijs2005/translingo/internal/server/config"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.Storage = config.StorageMemory
	cfg.ListenAddr = "127.0.0.1:0"
	cfg.ShutdownTimeout = time.Second
	return cfg
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig(), logging.Discard())
	require.NoError(t, err)
	require.Nil(t, app.db)
	require.NoError(t, app.Close())
}

func TestNewApp_UnknownStorage(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage = "redis"

	_, err := NewApp(context.Background(), cfg, logging.Discard())
	require.ErrorContains(t, err, `unknown storage "redis"`)
}

func TestNewApp_PostgresUnreachable(t *testing.T) {
	cfg := memoryConfig()
	cfg.Storage = config.StoragePostgres
	cfg.DatabaseDSN = "postgres://user:pw@127.0.0.1:1/none?sslmode=disable&connect_timeout=1"

	_, err := NewApp(context.Background(), cfg, logging.Discard())
	require.ErrorContains(t, err, "db init error")
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := memoryConfig()
	cfg.OpenAIAPIKey = "sk-test"

	app, err := NewApp(context.Background(), cfg, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	require.NoError(t, app.Run(ctx))
}
