package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/logging"
)

// HistoryService reads and prunes the signed-in user's translation history
// and looks up supported languages. History calls use the current session
// token and fail with ErrNotSignedIn for guests.
type HistoryService interface {
	List(ctx context.Context, kind models.Modality) ([]client.HistoryItem, error)
	Delete(ctx context.Context, id string) error
	Clear(ctx context.Context) error
	Languages(ctx context.Context, query string) ([]client.Language, error)
}

type historyService struct {
	client   client.Client
	sessions SessionManager
	logger   logging.Logger
}

func NewHistoryService(c client.Client, sessions SessionManager, logger logging.Logger) HistoryService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &historyService{client: c, sessions: sessions, logger: logger.With("component", "history")}
}

func (s *historyService) token() (string, error) {
	snap := s.sessions.Snapshot()
	if !snap.Settled() {
		return "", ErrSessionBusy
	}
	if !snap.Authenticated() {
		return "", ErrNotSignedIn
	}
	return snap.Session.SignedSessionID, nil
}

func (s *historyService) List(ctx context.Context, kind models.Modality) ([]client.HistoryItem, error) {
	if kind != models.ModalityText && kind != models.ModalityVoice {
		return nil, fmt.Errorf("history: %w: %q", ErrUnknownModality, kind)
	}
	token, err := s.token()
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	items, err := s.client.ListTranslations(ctx, token, kind)
	if err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return items, nil
}

func (s *historyService) Delete(ctx context.Context, id string) error {
	token, err := s.token()
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := s.client.DeleteTranslation(ctx, token, strings.TrimSpace(id)); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	s.logger.Debug(ctx, "history entry deleted", "id", id)
	return nil
}

func (s *historyService) Clear(ctx context.Context) error {
	token, err := s.token()
	if err != nil {
		return fmt.Errorf("history: %w", err)
	}
	if err := s.client.ClearTranslations(ctx, token); err != nil {
		return fmt.Errorf("history: %w", err)
	}
	s.logger.Info(ctx, "history cleared")
	return nil
}

// Languages needs no session.
func (s *historyService) Languages(ctx context.Context, query string) ([]client.Language, error) {
	langs, err := s.client.SearchLanguages(ctx, strings.TrimSpace(query))
	if err != nil {
		return nil, fmt.Errorf("languages: %w", err)
	}
	return langs, nil
}
