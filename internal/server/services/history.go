package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/translingo/internal/common"
	"github.com/dmitrijs2005/translingo/internal/server/models"
	"github.com/dmitrijs2005/translingo/internal/server/repositories/repomanager"
	"github.com/google/uuid"
)

// HistoryEntry is what a client submits to be kept in its history.
type HistoryEntry struct {
	FromLang       string `json:"fromLang"`
	ToLang         string `json:"toLang"`
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
}

// HistoryService keeps the per-user translation history. Callers pass the
// user id of an already validated session.
type HistoryService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewHistoryService(db *sql.DB, m repomanager.RepositoryManager) *HistoryService {
	return &HistoryService{db: db, repomanager: m}
}

func (s *HistoryService) Save(ctx context.Context, userID string, kind models.TranslationKind, e HistoryEntry) (*models.Translation, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	t := &models.Translation{
		UserID:         userID,
		Kind:           kind,
		FromLang:       strings.TrimSpace(e.FromLang),
		ToLang:         strings.TrimSpace(e.ToLang),
		OriginalText:   e.OriginalText,
		TranslatedText: e.TranslatedText,
	}
	if t.FromLang == "" || t.ToLang == "" || strings.TrimSpace(t.OriginalText) == "" || strings.TrimSpace(t.TranslatedText) == "" {
		return nil, ErrEntryRequired
	}

	if err := s.repomanager.Translations(s.db).Create(ctx, t); err != nil {
		return nil, fmt.Errorf("error saving translation: %w", err)
	}
	return t, nil
}

func (s *HistoryService) List(ctx context.Context, userID string, kind models.TranslationKind) ([]models.Translation, error) {
	if !kind.Valid() {
		return nil, ErrUnknownKind
	}
	list, err := s.repomanager.Translations(s.db).ListByUser(ctx, userID, kind)
	if err != nil {
		return nil, fmt.Errorf("error loading translations: %w", err)
	}
	return list, nil
}

// Delete removes one entry. Ids that are not UUIDs cannot exist and are
// reported as not found without touching storage.
func (s *HistoryService) Delete(ctx context.Context, userID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrTranslationNotFound
	}
	if err := s.repomanager.Translations(s.db).Delete(ctx, userID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return ErrTranslationNotFound
		}
		return fmt.Errorf("error deleting translation: %w", err)
	}
	return nil
}

// Clear drops every entry of both kinds.
func (s *HistoryService) Clear(ctx context.Context, userID string) (int64, error) {
	n, err := s.repomanager.Translations(s.db).DeleteAll(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("error clearing translations: %w", err)
	}
	return n, nil
}
