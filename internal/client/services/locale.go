package services

import (
	"strings"

	"github.com/dmitrijs2005/translingo/internal/client/models"
	"golang.org/x/text/language"
)

const (
	langEnglish models.LanguageCode = "en"
	langHebrew  models.LanguageCode = "he"
)

// BaseLanguage reduces a device locale such as "he_IL.UTF-8" or "fr-CA" to
// its base language code. It returns "" when the locale names no language.
func BaseLanguage(locale string) models.LanguageCode {
	l := strings.TrimSpace(locale)
	if i := strings.IndexAny(l, ".@"); i >= 0 {
		l = l[:i]
	}
	if l == "" || l == "C" || l == "POSIX" {
		return ""
	}

	tag, err := language.Parse(strings.ReplaceAll(l, "_", "-"))
	if err != nil {
		return ""
	}
	base, conf := tag.Base()
	if conf != language.Exact {
		return ""
	}
	return models.LanguageCode(base.String())
}

// FallbackPreferences derives preferences from the device language:
// translate from it, into Hebrew, or into English when it already is Hebrew.
func FallbackPreferences(locale models.LanguageCode) models.Preferences {
	from := locale
	if from == "" {
		from = langEnglish
	}
	return models.Preferences{DefaultFromLang: from, DefaultToLang: defaultTarget(from)}
}

func defaultTarget(from models.LanguageCode) models.LanguageCode {
	if from == langHebrew {
		return langEnglish
	}
	return langHebrew
}

// PreferencesFor uses the languages declared on the account and fills what
// is missing. A missing source comes from the device locale. A missing
// target is derived from the resolved source, not the locale, so an account
// with only a source language never ends up translating into itself.
func PreferencesFor(u *models.User, locale models.LanguageCode) models.Preferences {
	if u == nil {
		return FallbackPreferences(locale)
	}
	p := models.Preferences{DefaultFromLang: u.DefaultFromLang, DefaultToLang: u.DefaultToLang}
	if p.DefaultFromLang == "" {
		p.DefaultFromLang = FallbackPreferences(locale).DefaultFromLang
	}
	if p.DefaultToLang == "" {
		p.DefaultToLang = defaultTarget(p.DefaultFromLang)
	}
	return p
}
