package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCompleter struct {
	replies []string
	err     error
	calls   []string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls = append(f.calls, system)
	if f.err != nil {
		return "", f.err
	}
	if len(f.replies) == 0 {
		return "", errors.New("no reply queued")
	}
	r := f.replies[0]
	f.replies = f.replies[1:]
	return r, nil
}

func TestTranslate_DetectsThenTranslates(t *testing.T) {
	c := &fakeCompleter{replies: []string{" he\n", "hello"}}
	s := NewTranslationService(c)

	got, err := s.Translate(context.Background(), "שלום", SourceAuto, "en")
	require.NoError(t, err)
	assert.Equal(t, &Translation{TranslatedText: "hello", DetectedLang: "he"}, got)

	require.Len(t, c.calls, 2)
	assert.Equal(t, detectPrompt, c.calls[0])
	assert.Contains(t, c.calls[1], "from he to en")
}

func TestTranslate_UnknownDetectionMeansEnglish(t *testing.T) {
	c := &fakeCompleter{replies: []string{"unknown", "לנובו"}}
	s := NewTranslationService(c)

	got, err := s.Translate(context.Background(), "Lenovo", "", "he")
	require.NoError(t, err)
	assert.Equal(t, "en", got.DetectedLang)
	assert.Equal(t, "לנובו", got.TranslatedText)
}

func TestTranslate_SameLanguageReturnsInput(t *testing.T) {
	c := &fakeCompleter{replies: []string{"en"}}
	s := NewTranslationService(c)

	got, err := s.Translate(context.Background(), "hello", SourceAuto, "en")
	require.NoError(t, err)
	assert.Equal(t, &Translation{TranslatedText: "hello", DetectedLang: "en"}, got)
	assert.Len(t, c.calls, 1)
}

func TestTranslate_ExplicitSourceSkipsDetection(t *testing.T) {
	c := &fakeCompleter{replies: []string{"bonjour"}}
	s := NewTranslationService(c)

	got, err := s.Translate(context.Background(), "hello", "en", "fr")
	require.NoError(t, err)
	assert.Equal(t, "bonjour", got.TranslatedText)
	assert.Equal(t, "en", got.DetectedLang)
	assert.Len(t, c.calls, 1)
}

func TestTranslate_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := NewTranslationService(&fakeCompleter{}).Translate(ctx, " ", SourceAuto, "en")
	require.ErrorIs(t, err, ErrTextRequired)

	_, err = NewTranslationService(&fakeCompleter{}).Translate(ctx, "hi", SourceAuto, "")
	require.ErrorIs(t, err, ErrTextRequired)

	_, err = NewTranslationService(nil).Translate(ctx, "hi", SourceAuto, "he")
	require.ErrorIs(t, err, ErrTranslatorUnavailable)

	_, err = NewTranslationService(&fakeCompleter{err: errBoom{}}).Translate(ctx, "hi", SourceAuto, "he")
	require.ErrorIs(t, err, errBoom{})
	assert.Contains(t, err.Error(), "detect language")

	_, err = NewTranslationService(&fakeCompleter{err: errBoom{}}).Translate(ctx, "hi", "en", "he")
	assert.Contains(t, err.Error(), "translate: boom")
}

func TestOpenAICompleter(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/chat/completions") {
			http.NotFound(w, r)
			return
		}
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &got)

		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"id":"c1","object":"chat.completion","created":0,"model":"gpt-4o",
			"choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":"hola"}}]}`)
	}))
	defer srv.Close()

	c := NewOpenAICompleter("sk-test", "gpt-4o", srv.URL+"/v1/", srv.Client())

	reply, err := c.Complete(context.Background(), "system prompt", "hello")
	require.NoError(t, err)
	assert.Equal(t, "hola", reply)

	assert.Equal(t, "gpt-4o", got.Model)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "system prompt", got.Messages[0].Content)
	assert.Equal(t, "user", got.Messages[1].Role)
	assert.Equal(t, "hello", got.Messages[1].Content)
}
