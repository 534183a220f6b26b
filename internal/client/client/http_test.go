package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	method string
	path   string
	query  string
	auth   string
	body   map[string]any
}

func newTestServer(t *testing.T, status int, response string) (*HTTPClient, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.query = r.URL.RawQuery
		got.auth = r.Header.Get("Authorization")
		if r.Body != nil {
			_ = json.NewDecoder(r.Body).Decode(&got.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	c, err := NewHTTPClient(srv.URL+"/", 2*time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c, got
}

func TestNewHTTPClient_EmptyURL(t *testing.T) {
	_, err := NewHTTPClient("  ", time.Second)
	require.Error(t, err)
}

func TestLogin_DataEnvelope(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK,
		`{"success":true,"data":{"user":{"id":"7","email":"a@b.c","defaultFromLang":"fr"},"token":"tok"}}`)

	res, err := c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "tok", res.Token)
	require.Equal(t, &models.User{ID: "7", Email: "a@b.c", DefaultFromLang: "fr"}, res.User)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/login", got.path)
	assert.Empty(t, got.auth)
	assert.Equal(t, map[string]any{"email": "a@b.c", "password": "pw"}, got.body)
}

func TestLogin_TopLevelUserAndToken(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"success":true,"user":{"id":"7","email":"a@b.c"},"token":"tok"}`)

	res, err := c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)
	require.Equal(t, "tok", res.Token)
	require.Equal(t, "7", res.User.ID)
}

func TestLogin_MissingTokenIsNotATransportError(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"success":true,"data":{"user":{"id":"7"}}}`)

	res, err := c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.NoError(t, err)
	require.Empty(t, res.Token)
	require.NotNil(t, res.User)
}

func TestLogin_Rejected(t *testing.T) {
	c, _ := newTestServer(t, http.StatusBadRequest, `{"success":false,"error":"Invalid credentials"}`)

	_, err := c.Login(context.Background(), "a@b.c", []byte("bad"))
	require.ErrorIs(t, err, ErrRejected)
	require.NotErrorIs(t, err, ErrUnauthorized)
	require.Equal(t, "Invalid credentials", Message(err))

	var se *ServerError
	require.True(t, errors.As(err, &se))
	require.Equal(t, http.StatusBadRequest, se.Status)
}

func TestSuccessFalseWith200IsRejected(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"success":false,"error":"nope"}`)

	err := c.Register(context.Background(), "a@b.c", []byte("pw"))
	require.ErrorIs(t, err, ErrRejected)
	require.Equal(t, "nope", err.Error())
}

func TestValidateSession(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `{"success":true,"user":{"id":"7","email":"a@b.c"}}`)

	claims, err := c.ValidateSession(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "7", claims["id"])
	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/validate-session", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
}

func TestValidateSession_Forbidden(t *testing.T) {
	c, _ := newTestServer(t, http.StatusForbidden, `{"success":false,"error":"Invalid or expired token"}`)

	_, err := c.ValidateSession(context.Background(), "tok")
	require.ErrorIs(t, err, ErrUnauthorized)
	require.ErrorIs(t, err, ErrRejected)
}

func TestValidateSession_EmptyToken(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{}`)
	_, err := c.ValidateSession(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogoutAndPreferences_SendBearer(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `{"success":true}`)
	ctx := context.Background()

	require.NoError(t, c.Logout(ctx, "tok"))
	assert.Equal(t, "/logout", got.path)
	assert.Equal(t, "Bearer tok", got.auth)

	require.NoError(t, c.UpdatePreferences(ctx, "tok", models.Preferences{DefaultFromLang: "en", DefaultToLang: "he"}))
	assert.Equal(t, "/preferences", got.path)
	assert.Equal(t, map[string]any{"defaultFromLang": "en", "defaultToLang": "he"}, got.body)
}

func TestTranslate(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `{"translatedText":"shalom","detectedLang":"en"}`)

	res, err := c.Translate(context.Background(), "", TranslateRequest{Text: "hello", TargetLang: "he"})
	require.NoError(t, err)
	require.Equal(t, &TranslateResult{TranslatedText: "shalom", DetectedLang: "en"}, res)
	assert.Equal(t, "auto", got.body["sourceLang"])
	assert.Empty(t, got.auth)
}

func TestUnavailable_ServerDown(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := NewHTTPClient(url, time.Second)
	require.NoError(t, err)

	_, err = c.Login(context.Background(), "a@b.c", []byte("pw"))
	require.ErrorIs(t, err, ErrUnavailable)
	require.NotErrorIs(t, err, ErrRejected)
}

func TestUnavailable_GatewayStatus(t *testing.T) {
	c, _ := newTestServer(t, http.StatusServiceUnavailable, `{"success":false,"error":"translator not configured"}`)

	_, err := c.Translate(context.Background(), "", TranslateRequest{Text: "x", TargetLang: "he"})
	require.ErrorIs(t, err, ErrUnavailable)
	require.Equal(t, "translator not configured", Message(err))
}

func TestCanceledContext(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `{"success":true}`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := c.Logout(ctx, "tok")
	require.ErrorIs(t, err, context.Canceled)
	require.NotErrorIs(t, err, ErrUnavailable)
}

func TestMalformedBody(t *testing.T) {
	c, _ := newTestServer(t, http.StatusOK, `not json`)

	err := c.Register(context.Background(), "a@b.c", []byte("pw"))
	require.ErrorIs(t, err, ErrRejected)
}

func TestServerError_MessageFallback(t *testing.T) {
	err := &ServerError{Status: 500}
	require.Equal(t, "server returned 500", err.Error())
	require.Empty(t, Message(errors.New("plain")))
}

func TestSaveTranslation(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK,
		`{"success":true,"data":{"id":"t1","type":"voice","fromLang":"he","toLang":"en","original_text":"toda","translated_text":"thanks","createdAt":"2024-05-01T10:00:00Z"}}`)

	entry := HistoryEntry{FromLang: "he", ToLang: "en", OriginalText: "toda", TranslatedText: "thanks"}
	item, err := c.SaveTranslation(context.Background(), "tok", models.ModalityVoice, entry)
	require.NoError(t, err)
	assert.Equal(t, "t1", item.ID)
	assert.Equal(t, models.ModalityVoice, item.Kind)
	assert.Equal(t, entry, item.HistoryEntry)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/translations/voice", got.path)
	assert.Equal(t, "Bearer tok", got.auth)
	assert.Equal(t, "toda", got.body["original_text"])
}

func TestListTranslations(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK,
		`{"success":true,"data":[{"id":"t2","type":"text","fromLang":"en","toLang":"he","original_text":"hi","translated_text":"shalom"}]}`)

	items, err := c.ListTranslations(context.Background(), "tok", models.ModalityText)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "shalom", items[0].TranslatedText)
	assert.Equal(t, "/translations/text", got.path)
	assert.Equal(t, http.MethodGet, got.method)
}

func TestListTranslations_Forbidden(t *testing.T) {
	c, _ := newTestServer(t, http.StatusForbidden, `{"success":false,"error":"Invalid session"}`)

	_, err := c.ListTranslations(context.Background(), "tok", models.ModalityText)
	require.ErrorIs(t, err, ErrUnauthorized)
}

func TestDeleteAndClearTranslations(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `{"success":true}`)

	require.NoError(t, c.DeleteTranslation(context.Background(), "tok", "t1"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/translations/delete/t1", got.path)

	require.NoError(t, c.ClearTranslations(context.Background(), "tok"))
	assert.Equal(t, http.MethodDelete, got.method)
	assert.Equal(t, "/translations", got.path)
}

func TestSearchLanguages(t *testing.T) {
	c, got := newTestServer(t, http.StatusOK, `{"success":true,"data":[{"code":"he","name":"Hebrew"}]}`)

	langs, err := c.SearchLanguages(context.Background(), "heb rew")
	require.NoError(t, err)
	assert.Equal(t, []Language{{Code: "he", Name: "Hebrew"}}, langs)
	assert.Equal(t, "/languages", got.path)
	assert.Equal(t, "query=heb+rew", got.query)
	assert.Empty(t, got.auth)
}
