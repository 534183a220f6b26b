package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/logging"
)

// TranslationService runs text translations on behalf of the current actor.
// Guests are metered on the text modality. Signed-in users are not metered
// and their translations are added to the account history. Nothing runs
// until the session manager has settled.
type TranslationService interface {
	Translate(ctx context.Context, text string, from, to models.LanguageCode) (*client.TranslateResult, error)
	// Remaining reports how many guest translations are left, -1 when
	// the actor is signed in.
	Remaining(ctx context.Context) (int, error)
}

type translationService struct {
	client   client.Client
	sessions SessionManager
	quota    *GuestQuota
	logger   logging.Logger
}

func NewTranslationService(c client.Client, sessions SessionManager, quota *GuestQuota, logger logging.Logger) TranslationService {
	if logger == nil {
		logger = logging.Discard()
	}
	return &translationService{client: c, sessions: sessions, quota: quota, logger: logger.With("component", "translate")}
}

// Translate falls back to server-side detection when from is empty and to
// the preferred target language when to is empty.
func (s *translationService) Translate(ctx context.Context, text string, from, to models.LanguageCode) (*client.TranslateResult, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyText
	}

	snap := s.sessions.Snapshot()
	if !snap.Settled() {
		return nil, fmt.Errorf("translate: %w", ErrSessionBusy)
	}
	if to == "" {
		to = snap.Preferences.DefaultToLang
	}
	if to == "" {
		return nil, fmt.Errorf("translate: %w", ErrInvalidPreferences)
	}
	if from == "" {
		from = client.SourceAuto
	}

	var token string
	authenticated := snap.Authenticated()
	if authenticated {
		token = snap.Session.SignedSessionID
	}

	var res *client.TranslateResult
	err := s.quota.Do(ctx, models.ModalityText, authenticated, func(ctx context.Context) error {
		var err error
		res, err = s.client.Translate(ctx, token, client.TranslateRequest{Text: text, SourceLang: from, TargetLang: to})
		return err
	})
	if err != nil {
		s.logger.Warn(ctx, "translation failed", "error", err)
		return nil, fmt.Errorf("translate: %w", err)
	}

	s.logger.Debug(ctx, "translated", "from", res.DetectedLang, "to", to)
	if authenticated {
		s.record(ctx, token, text, from, to, res)
	}
	return res, nil
}

// record adds a signed-in translation to the account history. Failures are
// logged and otherwise ignored; the translation itself already succeeded.
func (s *translationService) record(ctx context.Context, token, text string, from, to models.LanguageCode, res *client.TranslateResult) {
	if from == client.SourceAuto && res.DetectedLang != "" {
		from = res.DetectedLang
	}
	entry := client.HistoryEntry{FromLang: from, ToLang: to, OriginalText: text, TranslatedText: res.TranslatedText}
	if _, err := s.client.SaveTranslation(ctx, token, models.ModalityText, entry); err != nil {
		s.logger.Warn(ctx, "could not save translation to history", "error", err)
	}
}

func (s *translationService) Remaining(ctx context.Context) (int, error) {
	if s.sessions.Snapshot().Authenticated() {
		return -1, nil
	}
	n, err := s.quota.Count(ctx, models.ModalityText)
	if err != nil {
		return 0, err
	}
	return max(s.quota.Limit()-n, 0), nil
}
