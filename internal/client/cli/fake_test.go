package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"strings"
	"testing"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/services"
	"github.com/dmitrijs2005/translingo/internal/logging"
)

func stubInputs(t *testing.T, email string, password []byte) {
	t.Helper()
	origST, origGP := getSimpleText, getPassword
	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return email, nil }
	getPassword = func(_ io.Writer) ([]byte, error) { return password, nil }
	t.Cleanup(func() {
		getSimpleText = origST
		getPassword = origGP
	})
}

// fakeSessions implements services.SessionManager.
type fakeSessions struct {
	snap services.Snapshot

	signInNav  models.Navigation
	signInErr  error
	signInUser string
	signInPass string

	registerErr   error
	registerEmail string

	setPrefsErr error
	setPrefs    models.Preferences

	signOutCalls int
	cleared      bool
	disposed     bool
}

func (f *fakeSessions) Initialize(context.Context) (services.Snapshot, error) { return f.snap, nil }

func (f *fakeSessions) SignIn(_ context.Context, email string, password []byte) (models.Navigation, error) {
	f.signInUser, f.signInPass = email, string(password)
	if f.signInErr == nil {
		f.snap.Status = models.StatusAuthenticated
		f.snap.Session = &models.Session{User: models.User{ID: "1", Email: email}, SignedSessionID: "tok"}
	}
	return f.signInNav, f.signInErr
}

func (f *fakeSessions) SignOut(context.Context) models.Navigation {
	f.signOutCalls++
	f.snap.Status = models.StatusGuest
	f.snap.Session = nil
	return models.Navigation{Route: models.RouteWelcome}
}

func (f *fakeSessions) Register(_ context.Context, email string, _ []byte) error {
	f.registerEmail = email
	return f.registerErr
}

func (f *fakeSessions) SetPreferences(_ context.Context, p models.Preferences) error {
	f.setPrefs = p
	if f.setPrefsErr == nil {
		f.snap.Preferences = p
	}
	return f.setPrefsErr
}

func (f *fakeSessions) ResetSessionButKeepPreferences(context.Context) error { return nil }
func (f *fakeSessions) ResetSession(context.Context) error                   { return nil }
func (f *fakeSessions) ClearError()                                          { f.cleared = true }
func (f *fakeSessions) Snapshot() services.Snapshot                          { return f.snap }
func (f *fakeSessions) Dispose()                                             { f.disposed = true }

// fakeTranslator implements services.TranslationService.
type fakeTranslator struct {
	res  *client.TranslateResult
	err  error
	text string
	from models.LanguageCode
	to   models.LanguageCode

	remaining int
}

func (f *fakeTranslator) Translate(_ context.Context, text string, from, to models.LanguageCode) (*client.TranslateResult, error) {
	f.text, f.from, f.to = text, from, to
	return f.res, f.err
}

func (f *fakeTranslator) Remaining(context.Context) (int, error) { return f.remaining, nil }

// fakeHistory implements services.HistoryService.
type fakeHistory struct {
	items []client.HistoryItem
	langs []client.Language
	err   error

	listKind  models.Modality
	deletedID string
	cleared   bool
	lastQuery string
}

func (f *fakeHistory) List(_ context.Context, kind models.Modality) ([]client.HistoryItem, error) {
	f.listKind = kind
	return f.items, f.err
}

func (f *fakeHistory) Delete(_ context.Context, id string) error {
	f.deletedID = id
	return f.err
}

func (f *fakeHistory) Clear(context.Context) error {
	f.cleared = f.err == nil
	return f.err
}

func (f *fakeHistory) Languages(_ context.Context, query string) ([]client.Language, error) {
	f.lastQuery = query
	return f.langs, f.err
}

func newTestApp(s *fakeSessions, tr *fakeTranslator) (*App, *bytes.Buffer) {
	return newTestAppWithHistory(s, tr, &fakeHistory{})
}

func newTestAppWithHistory(s *fakeSessions, tr *fakeTranslator, h *fakeHistory) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		sessions:   s,
		translator: tr,
		history:    h,
		logger:     logging.Discard(),
		reader:     bufio.NewReader(strings.NewReader("")),
		out:        &out,
	}, &out
}

func guestSnapshot() services.Snapshot {
	return services.Snapshot{
		Status:      models.StatusGuest,
		Preferences: models.Preferences{DefaultFromLang: "en", DefaultToLang: "he"},
	}
}
