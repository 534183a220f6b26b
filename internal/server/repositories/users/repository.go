// Package users stores accounts. PostgresRepository backs production,
// MemoryRepository backs the in-memory server mode and tests.
package users

import (
	"context"

	"github.com/dmitrijs2005/translingo/internal/server/models"
)

type Repository interface {
	// Create stores user, assigning an id when it has none. A duplicate
	// email yields common.ErrorAlreadyExists.
	Create(ctx context.Context, user *models.User) (*models.User, error)

	// GetByEmail and GetByID return common.ErrorNotFound for unknown users.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)

	// UpdatePreferences sets the default translation direction.
	UpdatePreferences(ctx context.Context, id, fromLang, toLang string) error
}
