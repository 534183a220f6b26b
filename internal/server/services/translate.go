package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// SourceAuto asks the translator to detect the source language.
const SourceAuto = "auto"

// unknownLanguage is what the detector answers for names, brands and
// ambiguous input; such text is treated as English.
const unknownLanguage = "unknown"

const (
	detectPrompt = `You are a language detection expert. Detect the primary language of the following text and return only the language code (e.g., "en" for English, "he" for Hebrew). If the text contains multiple languages, focus on the most prominent language. If the text is a proper noun, ambiguous, or empty, return "unknown" instead of guessing. Do not provide any explanations.`

	translatePrompt = `You are a professional translator. Translate the user's message from %s to %s. If the text is a proper noun or cannot be translated into a meaningful word in the target language, transliterate it into the script of %s without translating the meaning. Respond only with the translated or transliterated text, without any explanation or context.`
)

// Completer runs one system+user chat completion and returns the reply text.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// Translation is the result of TranslationService.Translate.
type Translation struct {
	TranslatedText string `json:"translatedText"`
	DetectedLang   string `json:"detectedLang"`
}

// TranslationService detects the source language when asked to and then
// translates through a Completer.
type TranslationService struct {
	completer Completer
}

// NewTranslationService returns a service that answers
// ErrTranslatorUnavailable when c is nil.
func NewTranslationService(c Completer) *TranslationService {
	return &TranslationService{completer: c}
}

func (s *TranslationService) Translate(ctx context.Context, text, sourceLang, targetLang string) (*Translation, error) {
	targetLang = strings.TrimSpace(targetLang)
	if strings.TrimSpace(text) == "" || targetLang == "" {
		return nil, ErrTextRequired
	}
	if s.completer == nil {
		return nil, ErrTranslatorUnavailable
	}

	detected := strings.TrimSpace(sourceLang)
	if detected == "" || detected == SourceAuto {
		reply, err := s.completer.Complete(ctx, detectPrompt, text)
		if err != nil {
			return nil, fmt.Errorf("detect language: %w", err)
		}
		detected = strings.ToLower(strings.Trim(strings.TrimSpace(reply), `"'.`))
		if detected == "" || detected == unknownLanguage {
			detected = "en"
		}
	}

	if detected == targetLang {
		return &Translation{TranslatedText: text, DetectedLang: detected}, nil
	}

	reply, err := s.completer.Complete(ctx, fmt.Sprintf(translatePrompt, detected, targetLang, targetLang), text)
	if err != nil {
		return nil, fmt.Errorf("translate: %w", err)
	}

	return &Translation{TranslatedText: strings.TrimSpace(reply), DetectedLang: detected}, nil
}

// OpenAICompleter is a Completer backed by the OpenAI chat completions API.
type OpenAICompleter struct {
	client openai.Client
	model  string
}

// NewOpenAICompleter builds a completer for model. baseURL may be empty to
// use the public endpoint.
func NewOpenAICompleter(apiKey, model, baseURL string, httpClient *http.Client) *OpenAICompleter {
	opts := []option.RequestOption{option.WithAPIKey(apiKey)}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	if httpClient != nil {
		opts = append(opts, option.WithHTTPClient(httpClient))
	}
	return &OpenAICompleter{client: openai.NewClient(opts...), model: model}
}

func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(c.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(system),
			openai.UserMessage(user),
		},
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty completion")
	}
	return resp.Choices[0].Message.Content, nil
}
