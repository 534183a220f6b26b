package services

import (
	"strings"
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// supportedLanguages are the codes the translator is offered for.
var supportedLanguages = []string{
	"af", "ar", "hy", "az", "be", "bs", "bg", "ca", "zh", "hr", "cs", "da",
	"nl", "en", "et", "fi", "fr", "gl", "de", "el", "he", "hi", "hu", "is",
	"id", "it", "ja", "kn", "kk", "ko", "lv", "lt", "mk", "ms", "mr", "mi",
	"ne", "no", "fa", "pl", "pt", "ro", "ru", "sr", "sk", "sl", "es", "sw",
	"sv", "tl", "ta", "th", "tr", "uk", "ur", "vi", "cy",
}

type Language struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

var languageList = sync.OnceValue(func() []Language {
	namer := display.English.Languages()
	out := make([]Language, 0, len(supportedLanguages))
	for _, code := range supportedLanguages {
		out = append(out, Language{Code: code, Name: namer.Name(language.MustParse(code))})
	}
	return out
})

// SearchLanguages returns the supported languages whose English name or
// code contains query, ignoring case. An empty query matches everything.
func SearchLanguages(query string) []Language {
	q := strings.ToLower(strings.TrimSpace(query))
	result := []Language{}
	for _, l := range languageList() {
		if strings.Contains(strings.ToLower(l.Name), q) || strings.Contains(l.Code, q) {
			result = append(result, l)
		}
	}
	return result
}
