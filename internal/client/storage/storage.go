// Package storage is the device-local cache the session manager reconciles
// against at start-up. It maps the cache keys onto a metadata.Repository and
// encodes structured values as JSON.
//
// Every failure, including a stored value that no longer decodes, is reported
// wrapped in ErrLocalStorage. Writes are durable on return and atomic per key;
// there is no cross-key transaction.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/repositories/metadata"
)

const (
	KeyUser            = "user"
	KeySignedSessionID = "signed_session_id"
	KeyPreferences     = "preferences"

	guestCounterPrefix = "guest_count_"
)

var ErrLocalStorage = errors.New("local storage failure")

// GuestCounterKey is the key holding the guest usage counter for m.
func GuestCounterKey(m models.Modality) string {
	return guestCounterPrefix + string(m)
}

type Store struct {
	repo metadata.Repository
}

func New(repo metadata.Repository) *Store {
	return &Store{repo: repo}
}

// Get returns the raw value under key and whether it was present.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	v, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %w", ErrLocalStorage, key, err)
	}
	if v == nil {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.repo.Set(ctx, key, value); err != nil {
		return fmt.Errorf("%w: set %s: %w", ErrLocalStorage, key, err)
	}
	return nil
}

func (s *Store) Remove(ctx context.Context, key string) error {
	if err := s.repo.Delete(ctx, key); err != nil {
		return fmt.Errorf("%w: remove %s: %w", ErrLocalStorage, key, err)
	}
	return nil
}

func (s *Store) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return false, fmt.Errorf("%w: decode %s: %w", ErrLocalStorage, key, err)
	}
	return true, nil
}

func (s *Store) setJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %w", ErrLocalStorage, key, err)
	}
	return s.Set(ctx, key, raw)
}

// User returns the cached user record or nil when none is stored.
func (s *Store) User(ctx context.Context) (*models.User, error) {
	var u models.User
	ok, err := s.getJSON(ctx, KeyUser, &u)
	if err != nil || !ok {
		return nil, err
	}
	return &u, nil
}

func (s *Store) SetUser(ctx context.Context, u models.User) error {
	return s.setJSON(ctx, KeyUser, u)
}

func (s *Store) RemoveUser(ctx context.Context) error {
	return s.Remove(ctx, KeyUser)
}

// SignedSessionID returns the cached bearer token, "" when absent.
func (s *Store) SignedSessionID(ctx context.Context) (string, error) {
	raw, _, err := s.Get(ctx, KeySignedSessionID)
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func (s *Store) SetSignedSessionID(ctx context.Context, token string) error {
	return s.Set(ctx, KeySignedSessionID, []byte(token))
}

func (s *Store) RemoveSignedSessionID(ctx context.Context) error {
	return s.Remove(ctx, KeySignedSessionID)
}

// Preferences returns the cached preferences and whether any were stored.
func (s *Store) Preferences(ctx context.Context) (models.Preferences, bool, error) {
	var p models.Preferences
	ok, err := s.getJSON(ctx, KeyPreferences, &p)
	if err != nil || !ok {
		return models.Preferences{}, false, err
	}
	return p, true, nil
}

func (s *Store) SetPreferences(ctx context.Context, p models.Preferences) error {
	return s.setJSON(ctx, KeyPreferences, p)
}

func (s *Store) RemovePreferences(ctx context.Context) error {
	return s.Remove(ctx, KeyPreferences)
}

// GuestCount returns the stored counter for m, 0 when absent.
func (s *Store) GuestCount(ctx context.Context, m models.Modality) (int, error) {
	key := GuestCounterKey(m)
	raw, ok, err := s.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(string(raw))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: decode %s: invalid counter %q", ErrLocalStorage, key, raw)
	}
	return n, nil
}

func (s *Store) SetGuestCount(ctx context.Context, m models.Modality, n int) error {
	return s.Set(ctx, GuestCounterKey(m), []byte(strconv.Itoa(n)))
}

func (s *Store) RemoveGuestCount(ctx context.Context, m models.Modality) error {
	return s.Remove(ctx, GuestCounterKey(m))
}
