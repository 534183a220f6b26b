// Package services contains application services for the Translingo client.
// This file defines the session lifecycle manager: start-up reconciliation of
// the local cache with the server, sign-in/sign-out/register, preference
// updates and the two reset flavours.
package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dmitrijs2005/translingo/internal/client/client"
	"github.com/dmitrijs2005/translingo/internal/client/models"
	"github.com/dmitrijs2005/translingo/internal/client/storage"
	"github.com/dmitrijs2005/translingo/internal/logging"
)

// SessionManager is the single authority on who the current actor is.
//
// Contract:
//   - Initialize: resolve the cached identity once per lifetime; later calls
//     return the resolved state.
//   - SignIn: authenticate, persist, and ask for navigation to the main route.
//   - SignOut: best-effort remote logout, then a hard reset. Never fails.
//   - Register: create an account without signing in.
//   - SetPreferences: push to the server when signed in, then persist.
//   - ResetSessionButKeepPreferences / ResetSession: soft and hard reset.
//
// Overlapping identity-changing calls are not queued. Callers are expected
// to hold them back while Snapshot().IsAuthLoading is true.
type SessionManager interface {
	Initialize(ctx context.Context) (Snapshot, error)
	SignIn(ctx context.Context, email string, password []byte) (models.Navigation, error)
	SignOut(ctx context.Context) models.Navigation
	Register(ctx context.Context, email string, password []byte) error
	SetPreferences(ctx context.Context, prefs models.Preferences) error
	ResetSessionButKeepPreferences(ctx context.Context) error
	ResetSession(ctx context.Context) error
	ClearError()
	Snapshot() Snapshot
	Dispose()
}

// Snapshot is a consistent copy of the manager state.
type Snapshot struct {
	Status        models.Status
	Session       *models.Session
	Preferences   models.Preferences
	IsLoading     bool
	IsAuthLoading bool
	Err           string
}

// Settled reports whether a navigation returned by an operation may be
// executed now.
func (s Snapshot) Settled() bool {
	return !s.IsLoading && !s.IsAuthLoading
}

func (s Snapshot) Authenticated() bool {
	return s.Status == models.StatusAuthenticated && s.Session != nil
}

// QuotaResetter clears guest counters.
type QuotaResetter interface {
	ResetAll(ctx context.Context) error
}

type SessionOptions struct {
	// Locale is the device locale, e.g. "he_IL.UTF-8".
	Locale string
	// InitDelay postpones the start-up reconciliation. Dispose or a
	// cancelled context during the delay abandons it.
	InitDelay time.Duration
	// ResetGuestQuotaOnSignIn zeroes every guest counter after a
	// successful sign-in.
	ResetGuestQuotaOnSignIn bool
	Quota                   QuotaResetter
	Logger                  logging.Logger
}

type sessionManager struct {
	client client.Client
	store  *storage.Store

	locale             models.LanguageCode
	initDelay          time.Duration
	resetQuotaOnSignIn bool
	quota              QuotaResetter
	logger             logging.Logger

	mu          sync.Mutex
	status      models.Status
	session     *models.Session
	prefs       models.Preferences
	authLoading bool
	errMsg      string
	// epoch advances on every identity change so a slow initialization
	// cannot overwrite a newer sign-in or reset.
	epoch    uint64
	initDone chan struct{}

	disposeOnce sync.Once
	disposed    chan struct{}
}

// NewSessionManager constructs a SessionManager bound to the given API
// client and local cache. Nothing is read until Initialize.
func NewSessionManager(c client.Client, store *storage.Store, opts SessionOptions) SessionManager {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	return &sessionManager{
		client:             c,
		store:              store,
		locale:             BaseLanguage(opts.Locale),
		initDelay:          opts.InitDelay,
		resetQuotaOnSignIn: opts.ResetGuestQuotaOnSignIn,
		quota:              opts.Quota,
		logger:             logger.With("component", "session"),
		status:             models.StatusUninitialized,
		disposed:           make(chan struct{}),
	}
}

func (m *sessionManager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snapshotLocked()
}

func (m *sessionManager) snapshotLocked() Snapshot {
	return Snapshot{
		Status:        m.status,
		Session:       m.session.Clone(),
		Preferences:   m.prefs,
		IsLoading:     !m.status.Terminal(),
		IsAuthLoading: m.authLoading,
		Err:           m.errMsg,
	}
}

func (m *sessionManager) ClearError() {
	m.mu.Lock()
	m.errMsg = ""
	m.mu.Unlock()
}

func (m *sessionManager) Dispose() {
	m.disposeOnce.Do(func() { close(m.disposed) })
}

func (m *sessionManager) isDisposed() bool {
	select {
	case <-m.disposed:
		return true
	default:
		return false
	}
}

// Initialize resolves the cached identity. Concurrent callers share one
// run; once resolved, further calls return the resolved snapshot without
// touching the network.
func (m *sessionManager) Initialize(ctx context.Context) (Snapshot, error) {
	for {
		if m.isDisposed() {
			return m.Snapshot(), ErrDisposed
		}

		m.mu.Lock()
		if m.status.Terminal() {
			snap := m.snapshotLocked()
			m.mu.Unlock()
			return snap, nil
		}
		if m.status == models.StatusLoading {
			done := m.initDone
			m.mu.Unlock()
			select {
			case <-done:
				continue
			case <-ctx.Done():
				return m.Snapshot(), ctx.Err()
			}
		}

		m.status = models.StatusLoading
		m.initDone = make(chan struct{})
		done := m.initDone
		epoch := m.epoch
		m.mu.Unlock()

		return m.runInitialize(ctx, done, epoch)
	}
}

func (m *sessionManager) runInitialize(ctx context.Context, done chan struct{}, epoch uint64) (Snapshot, error) {
	if m.initDelay > 0 {
		timer := time.NewTimer(m.initDelay)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			m.abandonInitialize(done)
			return m.Snapshot(), ctx.Err()
		case <-m.disposed:
			m.abandonInitialize(done)
			return m.Snapshot(), ErrDisposed
		}
	}

	// once fired, initialization always reaches a terminal state
	ctx = context.WithoutCancel(ctx)
	m.logger.Info(ctx, "initializing session")

	user, token, prefs, readErr := m.readCache(ctx)

	var validateErr error
	if readErr == nil && user.Valid() && token != "" {
		validateErr = m.validate(ctx, user, token)
	}

	m.mu.Lock()
	defer func() {
		close(done)
		m.mu.Unlock()
	}()

	if m.epoch != epoch {
		// a sign-in or reset already decided the identity
		if !m.status.Terminal() {
			m.status = m.statusLocked()
		}
		return m.snapshotLocked(), nil
	}

	switch {
	case readErr != nil:
		m.logger.Error(ctx, "read local cache", "error", readErr)
		m.errMsg = readErr.Error()
		m.prefs = prefs
		m.softResetLocked(ctx)
	case !user.Valid() || token == "":
		m.prefs = prefs
		m.softResetLocked(ctx)
		m.logger.Info(ctx, "no cached session, continuing as guest")
	case validateErr != nil:
		if errors.Is(validateErr, client.ErrUnavailable) {
			m.logger.Error(ctx, "validate session", "error", validateErr)
			m.errMsg = validateErr.Error()
		} else {
			m.logger.Warn(ctx, "cached session rejected", "error", validateErr)
		}
		m.prefs = prefs
		m.softResetLocked(ctx)
	default:
		if !prefs.Complete() {
			prefs = PreferencesFor(user, m.locale)
			m.persistPrefsLocked(ctx, prefs)
		}
		m.prefs = prefs
		m.session = models.NewSession(user, token, prefs)
		m.status = models.StatusAuthenticated
		m.logger.Info(ctx, "session restored", "user_id", user.ID)
	}

	return m.snapshotLocked(), nil
}

func (m *sessionManager) abandonInitialize(done chan struct{}) {
	m.mu.Lock()
	if m.status == models.StatusLoading {
		m.status = models.StatusUninitialized
	}
	close(done)
	m.mu.Unlock()
}

// readCache loads the three cache records. Preferences are returned even
// when the identity records fail to load.
func (m *sessionManager) readCache(ctx context.Context) (*models.User, string, models.Preferences, error) {
	prefs, _, prefsErr := m.store.Preferences(ctx)
	user, userErr := m.store.User(ctx)
	token, tokenErr := m.store.SignedSessionID(ctx)
	return user, token, prefs, errors.Join(prefsErr, userErr, tokenErr)
}

// validate asks the server whether token still authorizes user.
func (m *sessionManager) validate(ctx context.Context, user *models.User, token string) error {
	claims, err := m.client.ValidateSession(ctx, token)
	if err != nil {
		return err
	}
	if id, ok := claims["id"]; ok && fmt.Sprint(id) != user.ID {
		return fmt.Errorf("%w: token belongs to another user", client.ErrUnauthorized)
	}
	return nil
}

func (m *sessionManager) statusLocked() models.Status {
	if m.session != nil {
		return models.StatusAuthenticated
	}
	return models.StatusGuest
}

// beginAuth marks an identity-changing operation in flight and returns the
// function that ends it.
func (m *sessionManager) beginAuth() func() {
	m.mu.Lock()
	m.authLoading = true
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		m.authLoading = false
		m.mu.Unlock()
	}
}

func (m *sessionManager) fail(err *OperationError) *OperationError {
	m.mu.Lock()
	m.errMsg = err.Message
	m.mu.Unlock()
	return err
}

func (m *sessionManager) SignIn(ctx context.Context, email string, password []byte) (models.Navigation, error) {
	defer m.beginAuth()()
	m.logger.Info(ctx, "signing in", "email", email)

	res, err := m.client.Login(ctx, email, password)
	if err == nil && (res == nil || !res.User.Valid() || res.Token == "") {
		err = errIncompleteLogin
	}
	if err != nil {
		m.logger.Warn(ctx, "sign in failed", "error", err)
		m.mu.Lock()
		m.softResetLocked(ctx)
		m.mu.Unlock()
		return models.Navigation{}, m.fail(newOperationError("sign in", "Login failed", err))
	}

	prefs := PreferencesFor(res.User, m.locale)

	m.mu.Lock()
	err = errors.Join(
		m.store.SetUser(ctx, *res.User),
		m.store.SetSignedSessionID(ctx, res.Token),
		m.store.SetPreferences(ctx, prefs),
	)
	if err != nil {
		m.logger.Error(ctx, "persist session", "error", err)
		m.softResetLocked(ctx)
		m.errMsg = "Login failed"
		m.mu.Unlock()
		return models.Navigation{}, &OperationError{Op: "sign in", Message: "Login failed", Err: err}
	}
	m.prefs = prefs
	m.session = models.NewSession(res.User, res.Token, prefs)
	m.status = models.StatusAuthenticated
	m.errMsg = ""
	m.epoch++
	m.mu.Unlock()

	if m.resetQuotaOnSignIn && m.quota != nil {
		if err := m.quota.ResetAll(ctx); err != nil {
			m.logger.Warn(ctx, "reset guest quota", "error", err)
		}
	}

	m.logger.Info(ctx, "signed in", "user_id", res.User.ID)
	return models.Navigation{Route: models.RouteMain}, nil
}

func (m *sessionManager) SignOut(ctx context.Context) models.Navigation {
	defer m.beginAuth()()

	m.mu.Lock()
	var token string
	if m.session != nil {
		token = m.session.SignedSessionID
	}
	m.mu.Unlock()
	if token == "" {
		token, _ = m.store.SignedSessionID(ctx)
	}

	if token != "" {
		if err := m.client.Logout(ctx, token); err != nil {
			m.logger.Warn(ctx, "remote logout failed, clearing local session anyway", "error", err)
		}
	}

	if err := m.ResetSession(ctx); err != nil {
		m.logger.Warn(ctx, "clear local session", "error", err)
	}
	m.logger.Info(ctx, "signed out")
	return models.Navigation{Route: models.RouteWelcome}
}

// ResetSession is the hard reset: identity and preferences are dropped.
// In-memory state is cleared even when the cache cannot be written.
func (m *sessionManager) ResetSession(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	err := errors.Join(
		m.store.RemoveUser(ctx),
		m.store.RemoveSignedSessionID(ctx),
		m.store.RemovePreferences(ctx),
	)
	m.session = nil
	m.prefs = models.Preferences{}
	m.status = models.StatusGuest
	m.epoch++
	return err
}

// softResetLocked drops the identity and keeps usable preferences: the
// cached ones, else the in-memory ones, else the locale fallback.
func (m *sessionManager) softResetLocked(ctx context.Context) {
	if err := errors.Join(m.store.RemoveUser(ctx), m.store.RemoveSignedSessionID(ctx)); err != nil {
		m.logger.Warn(ctx, "clear cached identity", "error", err)
	}

	prefs, ok, err := m.store.Preferences(ctx)
	if err != nil || !ok || !prefs.Complete() {
		prefs = m.prefs
		if !prefs.Complete() {
			prefs = FallbackPreferences(m.locale)
		}
		m.persistPrefsLocked(ctx, prefs)
	}

	m.prefs = prefs
	m.session = nil
	m.status = models.StatusGuest
	m.epoch++
}

func (m *sessionManager) persistPrefsLocked(ctx context.Context, prefs models.Preferences) {
	if err := m.store.SetPreferences(ctx, prefs); err != nil {
		m.logger.Warn(ctx, "persist preferences", "error", err)
	}
}

func (m *sessionManager) ResetSessionButKeepPreferences(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	user, userErr := m.store.User(ctx)
	token, tokenErr := m.store.SignedSessionID(ctx)

	if userErr == nil && tokenErr == nil && token != "" && user.Valid() && m.session != nil {
		if !m.prefs.Complete() {
			prefs, ok, err := m.store.Preferences(ctx)
			if err != nil || !ok || !prefs.Complete() {
				prefs = PreferencesFor(user, m.locale)
				m.persistPrefsLocked(ctx, prefs)
			}
			m.prefs = prefs
			m.session.Preferences = prefs
		}
		return nil
	}

	m.softResetLocked(ctx)
	return errors.Join(userErr, tokenErr)
}

// Register creates the account and seeds locale-derived preferences. The
// caller stays a guest.
func (m *sessionManager) Register(ctx context.Context, email string, password []byte) error {
	defer m.beginAuth()()
	m.logger.Info(ctx, "registering", "email", email)

	if err := m.client.Register(ctx, email, password); err != nil {
		m.logger.Warn(ctx, "register failed", "error", err)
		return m.fail(newOperationError("register", "Registration failed", err))
	}

	prefs := FallbackPreferences(m.locale)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetPreferences(ctx, prefs); err != nil {
		m.errMsg = "Registration failed"
		return &OperationError{Op: "register", Message: "Registration failed", Err: err}
	}
	m.prefs = prefs
	if m.session != nil {
		m.session.Preferences = prefs
	}
	m.errMsg = ""
	return nil
}

func (m *sessionManager) SetPreferences(ctx context.Context, prefs models.Preferences) error {
	if !prefs.Complete() {
		return m.fail(&OperationError{Op: "set preferences", Message: ErrInvalidPreferences.Error(), Err: ErrInvalidPreferences})
	}
	defer m.beginAuth()()

	m.mu.Lock()
	var token string
	if m.session != nil {
		token = m.session.SignedSessionID
	}
	m.mu.Unlock()

	if token != "" {
		if err := m.client.UpdatePreferences(ctx, token, prefs); err != nil {
			m.logger.Warn(ctx, "update preferences failed", "error", err)
			return m.fail(newOperationError("set preferences", "Failed to update preferences", err))
		}
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.store.SetPreferences(ctx, prefs); err != nil {
		m.errMsg = "Failed to update preferences"
		return &OperationError{Op: "set preferences", Message: "Failed to update preferences", Err: err}
	}
	m.prefs = prefs
	if m.session != nil {
		m.session.Preferences = prefs
	}
	m.errMsg = ""
	m.logger.Info(ctx, "preferences updated", "from", prefs.DefaultFromLang, "to", prefs.DefaultToLang)
	return nil
}
