// Package repomanager vends repository implementations for one storage
// backend and owns its schema migrations and transactions.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/translingo/internal/dbx"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/sessions"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/translations"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Sessions(db dbx.DBTX) sessions.Repository
	Translations(db dbx.DBTX) translations.Repository

	// WithTx runs fn atomically where the backend supports it.
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
}
