package repomanager

import (
	"context"
	"database/sql"
	"sync"

	"github.com/dmitrijs2005/translingo/internal/dbx"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/translations"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/users"
)

// MemoryRepositoryManager hands out the same in-memory repositories for any
// DBTX, including nil. WithTx serializes callers instead of offering
// rollback.
type MemoryRepositoryManager struct {
	txMu         sync.Mutex
	users        *users.MemoryRepository
	sessions     *sessions.MemoryRepository
	translations *translations.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users:        users.NewMemoryRepository(),
		sessions:     sessions.NewMemoryRepository(),
		translations: translations.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Sessions(dbx.DBTX) sessions.Repository { return m.sessions }

func (m *MemoryRepositoryManager) Translations(dbx.DBTX) translations.Repository {
	return m.translations
}

func (m *MemoryRepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}
