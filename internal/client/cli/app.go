package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/config"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/translingo/internal/client/services"
	"github.com/dmitrijs2005/translingo/internal/client/storage"
	"github.com/dmitrijs2005/translingo/internal/logging"
)

type App struct {
	sessions   services.SessionManager
	translator services.TranslationService
	history    services.HistoryService
	logger     logging.Logger
	reader     *bufio.Reader
	out        io.Writer

	// route is the screen the user is on; pending waits for the session
	// manager to settle before it replaces route.
	route   models.Route
	pending models.Navigation

	closers []io.Closer
}

func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.ServerURL, c.RequestTimeout)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := storage.New(metadata.NewSQLiteRepository(db))
	quota := services.NewGuestQuota(store, c.GuestLimit, logger)
	sessions := services.NewSessionManager(apiClient, store, services.SessionOptions{
		Locale:                  c.Locale,
		InitDelay:               c.InitDelay,
		ResetGuestQuotaOnSignIn: c.ResetGuestQuotaOnSignIn,
		Quota:                   quota,
		Logger:                  logger,
	})
	translator := services.NewTranslationService(apiClient, sessions, quota, logger)
	history := services.NewHistoryService(apiClient, sessions, logger)

	return &App{
		sessions:   sessions,
		translator: translator,
		history:    history,
		logger:     logger,
		reader:     bufio.NewReader(os.Stdin),
		out:        os.Stdout,
		closers:    []io.Closer{apiClient, dbCloser{db}},
	}, nil
}

type dbCloser struct{ db *sql.DB }

func (d dbCloser) Close() error { return d.db.Close() }

// Run starts the background initialization and blocks in the REPL until the
// user exits or ctx is done.
func (a *App) Run(ctx context.Context) error {
	defer a.close()

	fmt.Fprintln(a.out, "Welcome to Translingo (type 'help' for commands)")

	go func() {
		if _, err := a.sessions.Initialize(ctx); err != nil && !errors.Is(err, services.ErrDisposed) {
			a.logger.Warn(ctx, "initialization interrupted", "error", err)
		}
	}()

	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
	return nil
}

func (a *App) close() {
	a.sessions.Dispose()
	for _, c := range a.closers {
		if err := c.Close(); err != nil {
			a.logger.Warn(context.Background(), "close", "error", err)
		}
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Snapshot().Authenticated()
}

// navigate stages n; it is applied by applyNavigation once settled.
func (a *App) navigate(n models.Navigation) {
	if n.Pending() {
		a.pending = n
	}
	a.applyNavigation()
}

func (a *App) applyNavigation() {
	if !a.pending.Pending() || !a.sessions.Snapshot().Settled() {
		return
	}
	a.route = a.pending.Route
	a.pending = models.Navigation{}
	a.logger.Debug(context.Background(), "navigated", "route", a.route)
}

func (a *App) getStatus() string {
	a.applyNavigation()

	snap := a.sessions.Snapshot()
	switch {
	case snap.IsLoading:
		return "loading"
	case snap.Authenticated():
		return fmt.Sprintf("%s %s>%s", snap.Session.User.Email, snap.Preferences.DefaultFromLang, snap.Preferences.DefaultToLang)
	default:
		return fmt.Sprintf("guest %s>%s", snap.Preferences.DefaultFromLang, snap.Preferences.DefaultToLang)
	}
}
