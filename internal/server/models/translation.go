package models

import "time"

// TranslationKind separates typed-in text from transcribed speech in the
// history. Each kind is listed on its own.
type TranslationKind string

const (
	KindText  TranslationKind = "text"
	KindVoice TranslationKind = "voice"
)

func (k TranslationKind) Valid() bool {
	return k == KindText || k == KindVoice
}

// Translation is one entry of a user's translation history.
type Translation struct {
	ID             string          `json:"id"`
	UserID         string          `json:"-"`
	Kind           TranslationKind `json:"type"`
	FromLang       string          `json:"fromLang"`
	ToLang         string          `json:"toLang"`
	OriginalText   string          `json:"original_text"`
	TranslatedText string          `json:"translated_text"`
	CreatedAt      time.Time       `json:"createdAt"`
}
