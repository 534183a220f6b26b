package client

import (
	"context"
	"time"

	"github.com/dmitrijs2005/translingo/internal/client/models"
)

// Client is the contract with the remote session store and translation API.
// Token-taking methods send it as a bearer credential.
type Client interface {
	Close() error
	Register(ctx context.Context, email string, password []byte) error
	Login(ctx context.Context, email string, password []byte) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (map[string]any, error)
	UpdatePreferences(ctx context.Context, token string, prefs models.Preferences) error
	Translate(ctx context.Context, token string, req TranslateRequest) (*TranslateResult, error)

	SaveTranslation(ctx context.Context, token string, kind models.Modality, entry HistoryEntry) (*HistoryItem, error)
	ListTranslations(ctx context.Context, token string, kind models.Modality) ([]HistoryItem, error)
	DeleteTranslation(ctx context.Context, token, id string) error
	ClearTranslations(ctx context.Context, token string) error
	SearchLanguages(ctx context.Context, query string) ([]Language, error)
}

// LoginResult is what the login endpoint returned. Either field may be
// missing; callers decide whether a partial result counts as success.
type LoginResult struct {
	User  *models.User
	Token string
}

// SourceAuto asks the server to detect the source language.
const SourceAuto = "auto"

type TranslateRequest struct {
	Text       string              `json:"text"`
	SourceLang models.LanguageCode `json:"sourceLang"`
	TargetLang models.LanguageCode `json:"targetLang"`
}

type TranslateResult struct {
	TranslatedText string              `json:"translatedText"`
	DetectedLang   models.LanguageCode `json:"detectedLang"`
}

// HistoryEntry is a finished translation submitted to the account history.
type HistoryEntry struct {
	FromLang       models.LanguageCode `json:"fromLang"`
	ToLang         models.LanguageCode `json:"toLang"`
	OriginalText   string              `json:"original_text"`
	TranslatedText string              `json:"translated_text"`
}

// HistoryItem is a stored history entry.
type HistoryItem struct {
	ID   string          `json:"id"`
	Kind models.Modality `json:"type"`
	HistoryEntry
	CreatedAt time.Time `json:"createdAt"`
}

type Language struct {
	Code models.LanguageCode `json:"code"`
	Name string              `json:"name"`
}
