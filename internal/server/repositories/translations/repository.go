// Package translations stores each user's translation history, with
// PostgreSQL and in-memory implementations.
package translations

import (
	"context"

	"github.com/dmitrijs2005/translingo/internal/server/models"
)

type Repository interface {
	// Create stores t, assigning an id and creation time when missing.
	Create(ctx context.Context, t *models.Translation) error

	// ListByUser returns the user's entries of one kind, newest first.
	ListByUser(ctx context.Context, userID string, kind models.TranslationKind) ([]models.Translation, error)

	// Delete removes one entry owned by userID. An entry that does not
	// exist or belongs to someone else yields common.ErrorNotFound.
	Delete(ctx context.Context, userID, id string) error

	// DeleteAll removes every entry of the user and reports how many went.
	DeleteAll(ctx context.Context, userID string) (int64, error)
}
