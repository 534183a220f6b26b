package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/storage"
	"github.com/dmitrijs2005/translingo/internal/logging"
)

const DefaultGuestLimit = 5

// GuestQuota meters unauthenticated usage per modality against a single
// limit. Counters live in the local cache and only grow; Reset is the one
// way down.
type GuestQuota struct {
	store  *storage.Store
	limit  int
	logger logging.Logger
}

// NewGuestQuota falls back to DefaultGuestLimit for a non-positive limit.
func NewGuestQuota(store *storage.Store, limit int, logger logging.Logger) *GuestQuota {
	if limit <= 0 {
		limit = DefaultGuestLimit
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &GuestQuota{store: store, limit: limit, logger: logger}
}

func (q *GuestQuota) Limit() int { return q.limit }

func (q *GuestQuota) Count(ctx context.Context, m models.Modality) (int, error) {
	if !m.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownModality, m)
	}
	return q.store.GuestCount(ctx, m)
}

// Increment records one completed guest action and returns the new count.
func (q *GuestQuota) Increment(ctx context.Context, m models.Modality) (int, error) {
	n, err := q.Count(ctx, m)
	if err != nil {
		return 0, err
	}
	n++
	if err := q.store.SetGuestCount(ctx, m, n); err != nil {
		return 0, err
	}
	return n, nil
}

// Check returns how many guest actions remain for m, or ErrGuestLimitReached.
func (q *GuestQuota) Check(ctx context.Context, m models.Modality) (int, error) {
	n, err := q.Count(ctx, m)
	if err != nil {
		return 0, err
	}
	if n >= q.limit {
		return 0, ErrGuestLimitReached
	}
	return q.limit - n, nil
}

// Do runs fn under the quota. Authenticated callers bypass the gate
// entirely. For guests the counter advances only after fn succeeds.
func (q *GuestQuota) Do(ctx context.Context, m models.Modality, authenticated bool, fn func(ctx context.Context) error) error {
	if authenticated {
		return fn(ctx)
	}

	if _, err := q.Check(ctx, m); err != nil {
		return err
	}
	if err := fn(ctx); err != nil {
		return err
	}

	n, err := q.Increment(ctx, m)
	if err != nil {
		// fn already ran, so the caller still sees success
		q.logger.Warn(ctx, "guest counter not advanced", "modality", m, "error", err)
		return nil
	}
	q.logger.Debug(ctx, "guest action counted", "modality", m, "count", n, "limit", q.limit)
	return nil
}

func (q *GuestQuota) Reset(ctx context.Context, m models.Modality) error {
	if !m.Valid() {
		return fmt.Errorf("%w: %q", ErrUnknownModality, m)
	}
	return q.store.RemoveGuestCount(ctx, m)
}

func (q *GuestQuota) ResetAll(ctx context.Context) error {
	var errs []error
	for _, m := range models.Modalities() {
		if err := q.Reset(ctx, m); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
