// Package sessions declares the server-side repository contract for issued
// session tokens, with PostgreSQL and in-memory implementations.
package sessions

import (
	"context"
	"time"

	"github.com/dmitrijs2005/translingo/internal/server/models"
)

// Repository defines operations for recording, looking up and revoking
// sessions.
type Repository interface {
	// Create stores s, assigning an id when it has none.
	Create(ctx context.Context, s *models.Session) error

	// FindByToken returns the session for token, or common.ErrorNotFound.
	FindByToken(ctx context.Context, token string) (*models.Session, error)

	// Delete removes a session by its token string. Deleting a non-existent
	// token is not an error.
	Delete(ctx context.Context, token string) error

	// DeleteExpired purges sessions that expired before now and reports how
	// many were removed.
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}
