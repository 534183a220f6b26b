package services

import (
	"context"
	"sync"
	"testing"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/translingo/internal/client/storage"
)

// ---- fake client ----

// fakeClient implements client.Client for the service tests.
type fakeClient struct {
	mu sync.Mutex

	LoginRet *client.LoginResult
	LoginErr error

	LogoutErr   error
	RegisterErr error

	ValidateRet map[string]any
	ValidateErr error
	// ValidateGate, when set, blocks ValidateSession until closed.
	ValidateGate chan struct{}

	UpdatePrefsErr error

	TranslateRet *client.TranslateResult
	TranslateErr error

	SaveErr      error
	ListRet      []client.HistoryItem
	ListErr      error
	DeleteErr    error
	ClearErr     error
	LanguagesRet []client.Language

	ValidateCalls  int
	LogoutCalls    int
	TranslateCalls int
	SaveCalls      int
	ClearCalls     int

	LastLogoutToken    string
	LastPrefsToken     string
	LastPrefs          models.Preferences
	LastTranslateToken string
	LastTranslateReq   client.TranslateRequest
	LastRegisterEmail  string
	LastLoginEmail     string
	LastLoginPassword  string
	LastSaved          client.HistoryEntry
	LastSaveToken      string
	LastHistoryToken   string
	LastListKind       models.Modality
	LastDeleteID       string
	LastQuery          string
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Register(ctx context.Context, email string, password []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastRegisterEmail = email
	return f.RegisterErr
}

func (f *fakeClient) Login(ctx context.Context, email string, password []byte) (*client.LoginResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastLoginEmail = email
	f.LastLoginPassword = string(password)
	return f.LoginRet, f.LoginErr
}

func (f *fakeClient) Logout(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LogoutCalls++
	f.LastLogoutToken = token
	return f.LogoutErr
}

func (f *fakeClient) ValidateSession(ctx context.Context, token string) (map[string]any, error) {
	f.mu.Lock()
	f.ValidateCalls++
	gate := f.ValidateGate
	f.mu.Unlock()
	if gate != nil {
		<-gate
	}
	return f.ValidateRet, f.ValidateErr
}

func (f *fakeClient) UpdatePreferences(ctx context.Context, token string, prefs models.Preferences) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastPrefsToken = token
	f.LastPrefs = prefs
	return f.UpdatePrefsErr
}

func (f *fakeClient) Translate(ctx context.Context, token string, req client.TranslateRequest) (*client.TranslateResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.TranslateCalls++
	f.LastTranslateToken = token
	f.LastTranslateReq = req
	return f.TranslateRet, f.TranslateErr
}

func (f *fakeClient) SaveTranslation(ctx context.Context, token string, kind models.Modality, entry client.HistoryEntry) (*client.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SaveCalls++
	f.LastSaveToken = token
	f.LastSaved = entry
	if f.SaveErr != nil {
		return nil, f.SaveErr
	}
	return &client.HistoryItem{ID: "h1", Kind: kind, HistoryEntry: entry}, nil
}

func (f *fakeClient) ListTranslations(ctx context.Context, token string, kind models.Modality) ([]client.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastHistoryToken = token
	f.LastListKind = kind
	return f.ListRet, f.ListErr
}

func (f *fakeClient) DeleteTranslation(ctx context.Context, token, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastHistoryToken = token
	f.LastDeleteID = id
	return f.DeleteErr
}

func (f *fakeClient) ClearTranslations(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ClearCalls++
	f.LastHistoryToken = token
	return f.ClearErr
}

func (f *fakeClient) SearchLanguages(ctx context.Context, query string) ([]client.Language, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.LastQuery = query
	return f.LanguagesRet, nil
}

func (f *fakeClient) validateCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ValidateCalls
}

// ---- helpers ----

func newStore(t *testing.T) *storage.Store {
	t.Helper()
	return storage.New(metadata.NewMemoryRepository())
}

func seedSession(t *testing.T, s *storage.Store, user models.User, token string) {
	t.Helper()
	ctx := context.Background()
	if err := s.SetUser(ctx, user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	if err := s.SetSignedSessionID(ctx, token); err != nil {
		t.Fatalf("seed token: %v", err)
	}
}
