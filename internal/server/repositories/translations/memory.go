package translations

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/translingo/internal/common"
	"github.com/dmitrijs2005/translingo/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps history in process memory, in insertion order.
type MemoryRepository struct {
	mu      sync.RWMutex
	entries []models.Translation
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(ctx context.Context, t *models.Translation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, *t)
	return nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID string, kind models.TranslationKind) ([]models.Translation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []models.Translation{}
	for i := len(r.entries) - 1; i >= 0; i-- {
		if e := r.entries[i]; e.UserID == userID && e.Kind == kind {
			result = append(result, e)
		}
	}
	return result, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, userID, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := slices.IndexFunc(r.entries, func(e models.Translation) bool { return e.ID == id && e.UserID == userID })
	if i < 0 {
		return common.ErrorNotFound
	}
	r.entries = slices.Delete(r.entries, i, i+1)
	return nil
}

func (r *MemoryRepository) DeleteAll(ctx context.Context, userID string) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	before := len(r.entries)
	r.entries = slices.DeleteFunc(r.entries, func(e models.Translation) bool { return e.UserID == userID })
	return int64(before - len(r.entries)), nil
}
