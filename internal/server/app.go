// Package server wires configuration, storage, services and the HTTP API
// into a runnable application with graceful shutdown.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/translingo/internal/logging"
	"github.com/dmitrijs2005/translingo/internal/server/config"
	"github.com/dmitrijs2005/translingo/internal/server/httpapi"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/translingo/internal/server/services"
	"github.com/hashicorp/go-cleanhttp"
)

type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB
	server *httpapi.Server
}

// openStorage returns the repository manager for cfg.Storage and, for
// Postgres, the migrated connection.
func openStorage(ctx context.Context, cfg *config.Config) (repomanager.RepositoryManager, *sql.DB, error) {
	switch cfg.Storage {
	case config.StorageMemory:
		return repomanager.NewMemoryRepositoryManager(), nil, nil
	case config.StoragePostgres:
		db, err := repomanager.OpenPostgres(ctx, cfg.DatabaseDSN)
		if err != nil {
			return nil, nil, fmt.Errorf("db init error: %w", err)
		}
		m := repomanager.NewPostgresRepositoryManager()
		if err := m.RunMigrations(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, fmt.Errorf("migrations error: %w", err)
		}
		return m, db, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage %q", cfg.Storage)
	}
}

func NewApp(ctx context.Context, cfg *config.Config, logger logging.Logger) (*App, error) {
	rm, db, err := openStorage(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var completer services.Completer
	if cfg.OpenAIAPIKey != "" {
		completer = services.NewOpenAICompleter(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAIBaseURL, cleanhttp.DefaultPooledClient())
	} else {
		logger.Warn(ctx, "OPENAI_API_KEY is not set, /translate will answer 503")
	}

	us := services.NewUserService(db, rm, cfg)
	ts := services.NewTranslationService(completer)

	hs := services.NewHistoryService(db, rm)

	srv := httpapi.NewServer(cfg.ListenAddr, logger, us, ts, hs, cfg.ShutdownTimeout)

	return &App{config: cfg, logger: logger, db: db, server: srv}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is canceled or a termination signal arrives, then
// releases the database.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...", "storage", app.config.Storage)

	app.initSignalHandler(cancelFunc)

	err := app.server.Run(ctx)
	if cerr := app.Close(); cerr != nil {
		app.logger.Error(ctx, "closing database", "error", cerr)
	}
	return err
}

func (app *App) Close() error {
	if app.db == nil {
		return nil
	}
	return app.db.Close()
}
